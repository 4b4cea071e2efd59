// Package fifo provides the lock-free single-producer single-consumer
// queues that move sample and spectrum blocks from the audio thread to the
// analysis thread.
package fifo

import "sync/atomic"

// DefaultCapacity is the number of blocks a queue holds before new pushes
// are dropped.
const DefaultCapacity = 30

// Fifo is a fixed-capacity ring of preallocated fixed-size float32 blocks.
// Exactly one goroutine may push and exactly one may pull. Neither side ever
// blocks or allocates; when the ring is full, Push drops the block and the
// consumer simply misses that window.
//
// Monotonic head/tail counters keep the producer and consumer on disjoint
// slots at every instant: the producer only writes slot tail%capacity after
// checking tail-head < capacity, and the consumer only reads slot
// head%capacity after checking head < tail.
type Fifo struct {
	slots     [][]float32
	head      atomic.Uint64 // next slot to pull, advanced by the consumer
	tail      atomic.Uint64 // next slot to push, advanced by the producer
	dropped   atomic.Uint64
	capacity  uint64
	blockSize int
}

// NewFifo creates a queue of capacity blocks, each blockSize samples long.
// All memory is allocated here; the queue never allocates afterwards.
func NewFifo(capacity, blockSize int) *Fifo {
	f := &Fifo{
		slots:     make([][]float32, capacity),
		capacity:  uint64(capacity),
		blockSize: blockSize,
	}
	for i := range f.slots {
		f.slots[i] = make([]float32, blockSize)
	}
	return f
}

// Push copies block into the next free slot. It returns false, dropping the
// block, when the queue is full. Producer side only.
func (f *Fifo) Push(block []float32) bool {
	tail := f.tail.Load()
	head := f.head.Load()
	if tail-head >= f.capacity {
		f.dropped.Add(1)
		return false
	}

	copy(f.slots[tail%f.capacity], block)
	f.tail.Store(tail + 1)
	return true
}

// Pull copies the oldest ready block into out and returns true, or returns
// false when the queue is empty. Consumer side only.
func (f *Fifo) Pull(out []float32) bool {
	head := f.head.Load()
	tail := f.tail.Load()
	if head == tail {
		return false
	}

	copy(out, f.slots[head%f.capacity])
	f.head.Store(head + 1)
	return true
}

// AvailableForReading returns the number of blocks ready to pull. Advisory:
// a concurrent producer may have pushed more by the time the caller acts.
func (f *Fifo) AvailableForReading() int {
	return int(f.tail.Load() - f.head.Load())
}

// Dropped returns the total number of blocks discarded by full-queue pushes.
// Diagnostic only, read off the real-time path.
func (f *Fifo) Dropped() uint64 {
	return f.dropped.Load()
}

// Capacity returns the number of slots in the ring.
func (f *Fifo) Capacity() int {
	return int(f.capacity)
}

// BlockSize returns the sample count of each slot.
func (f *Fifo) BlockSize() int {
	return f.blockSize
}
