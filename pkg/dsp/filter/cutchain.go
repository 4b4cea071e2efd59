package filter

// CutChain is an ordered cascade of NumSlopes second-order sections
// implementing a steep low-cut or high-cut. Only the first slope.Sections()
// stages are ever active; the rest stay bypassed.
type CutChain struct {
	stages [NumSlopes]*Stage
}

// NewCutChain creates a chain with every stage bypassed.
func NewCutChain() *CutChain {
	c := &CutChain{}
	for i := range c.stages {
		c.stages[i] = NewStage()
		c.stages[i].SetBypassed(true)
	}
	return c
}

// Configure installs coefficients and activates stages 0..slope. Every stage
// is bypassed first, unconditionally, so a slope decrease can never leave a
// stale active stage behind. When off is true the whole chain stays bypassed
// and coeffs is not read at all - callers may pass stale or nil sets.
func (c *CutChain) Configure(coeffs []*Coefficients, slope Slope, off bool) {
	for _, st := range c.stages {
		st.SetBypassed(true)
	}

	if off {
		return
	}

	n := slope.Sections()
	if n > len(coeffs) {
		n = len(coeffs)
	}
	for i := 0; i < n; i++ {
		c.stages[i].SetCoefficients(coeffs[i])
		c.stages[i].SetBypassed(false)
	}
}

// Process runs the buffer through all active stages in order.
func (c *CutChain) Process(buffer []float32) {
	for _, st := range c.stages {
		st.Process(buffer)
	}
}

// Stage returns the stage at position i.
func (c *CutChain) Stage(i int) *Stage {
	return c.stages[i]
}

// Reset clears the delay state of every stage.
func (c *CutChain) Reset() {
	for _, st := range c.stages {
		st.Reset()
	}
}
