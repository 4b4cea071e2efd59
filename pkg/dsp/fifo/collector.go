package fifo

// Collector accumulates one channel's samples from the audio callback into
// fixed-size blocks and pushes completed blocks into its queue. The audio
// thread calls OnBlock; the analysis thread drains Queue().
type Collector struct {
	queue    *Fifo
	buf      []float32
	fill     int
	prepared bool
}

// NewCollector creates an unprepared collector. Prepare must be called
// before any audio is delivered.
func NewCollector() *Collector {
	return &Collector{}
}

// Prepare sizes the accumulator and queue slots. Not real-time safe: it
// allocates, and must only be called while no audio is being processed.
func (c *Collector) Prepare(blockSize int) {
	c.buf = make([]float32, blockSize)
	c.queue = NewFifo(DefaultCapacity, blockSize)
	c.fill = 0
	c.prepared = true
}

// OnBlock appends every sample of the callback block to the accumulator,
// pushing each completed block into the queue. A full queue drops the block
// silently; the analyzer misses that window and the audio path is
// unaffected. Calling OnBlock before Prepare is a programmer error.
func (c *Collector) OnBlock(samples []float32) {
	if !c.prepared {
		panic("fifo: Collector.OnBlock called before Prepare")
	}

	for _, s := range samples {
		c.buf[c.fill] = s
		c.fill++
		if c.fill == len(c.buf) {
			c.queue.Push(c.buf)
			c.fill = 0
		}
	}
}

// Queue returns the queue of completed blocks. Nil until Prepare is called.
func (c *Collector) Queue() *Fifo {
	return c.queue
}

// BlockSize returns the accumulator length, or 0 before Prepare.
func (c *Collector) BlockSize() int {
	return len(c.buf)
}
