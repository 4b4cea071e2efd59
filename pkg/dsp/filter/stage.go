package filter

import (
	"math"
	"sync/atomic"
)

// Values this small in the feedback path are flushed to zero at the end of
// every block. Subnormal floats cause large CPU spikes on some hardware.
const denormalFloor = 1e-25

// Stage is a single second-order IIR section. Coefficients are replaced by a
// single pointer swap, so block-rate updates never require the processing
// call to pause. The delay state deliberately survives bypass toggles;
// resetting it on every toggle clicks worse than the brief transient of
// stale state.
type Stage struct {
	coeffs   atomic.Pointer[Coefficients]
	bypassed atomic.Bool

	// Transposed direct form II state. Two state variables keep the
	// section well behaved when coefficients change between blocks.
	s1, s2 float64
}

// NewStage creates a stage with a unity response, active.
func NewStage() *Stage {
	s := &Stage{}
	s.coeffs.Store(Unity())
	return s
}

// SetCoefficients installs a new coefficient set. Safe to call while another
// goroutine is inside Process; the running block finishes with whichever set
// it loaded.
func (s *Stage) SetCoefficients(c *Coefficients) {
	if c == nil {
		return
	}
	s.coeffs.Store(c)
}

// Coefficients returns the currently installed coefficient set.
func (s *Stage) Coefficients() *Coefficients {
	return s.coeffs.Load()
}

// SetBypassed bypasses or re-engages the stage.
func (s *Stage) SetBypassed(bypassed bool) {
	s.bypassed.Store(bypassed)
}

// Bypassed reports whether the stage currently passes audio unmodified.
func (s *Stage) Bypassed() bool {
	return s.bypassed.Load()
}

// Reset clears the delay state.
func (s *Stage) Reset() {
	s.s1, s.s2 = 0, 0
}

// Process applies the difference equation in place - no allocations.
func (s *Stage) Process(buffer []float32) {
	if s.bypassed.Load() {
		return
	}

	c := s.coeffs.Load()
	b0, b1, b2 := c.B0, c.B1, c.B2
	a1, a2 := c.A1, c.A2
	s1, s2 := s.s1, s.s2

	for i := range buffer {
		x := float64(buffer[i])
		y := b0*x + s1
		s1 = b1*x - a1*y + s2
		s2 = b2*x - a2*y
		buffer[i] = float32(y)
	}

	if math.Abs(s1) < denormalFloor {
		s1 = 0
	}
	if math.Abs(s2) < denormalFloor {
		s2 = 0
	}
	s.s1, s.s2 = s1, s2
}
