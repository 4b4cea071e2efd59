package filter

// NumPeakBands is the number of parametric bell bands in a channel chain.
const NumPeakBands = 5

// ChannelChain processes one audio channel end to end through the fixed
// topology LowCut -> Peak[0..NumPeakBands-1] -> HighCut. Channels never
// interact; a stereo processor owns one chain per channel and applies the
// same coefficients to each.
type ChannelChain struct {
	lowCut  *CutChain
	peaks   [NumPeakBands]*Stage
	highCut *CutChain
}

// NewChannelChain creates a chain with both cuts bypassed and the peak
// stages at unity.
func NewChannelChain() *ChannelChain {
	c := &ChannelChain{
		lowCut:  NewCutChain(),
		highCut: NewCutChain(),
	}
	for i := range c.peaks {
		c.peaks[i] = NewStage()
	}
	return c
}

// LowCut returns the low-cut cascade.
func (c *ChannelChain) LowCut() *CutChain {
	return c.lowCut
}

// HighCut returns the high-cut cascade.
func (c *ChannelChain) HighCut() *CutChain {
	return c.highCut
}

// Peak returns the bell stage for the given band.
func (c *ChannelChain) Peak(band int) *Stage {
	return c.peaks[band]
}

// Process runs the buffer through every stage in order, in place.
func (c *ChannelChain) Process(buffer []float32) {
	c.lowCut.Process(buffer)
	for _, p := range c.peaks {
		p.Process(buffer)
	}
	c.highCut.Process(buffer)
}

// Reset clears the delay state of every stage.
func (c *ChannelChain) Reset() {
	c.lowCut.Reset()
	for _, p := range c.peaks {
		p.Reset()
	}
	c.highCut.Reset()
}
