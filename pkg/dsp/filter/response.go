package filter

import (
	"math"
	"math/cmplx"
)

// MagnitudeAt evaluates the section's transfer function magnitude at the
// given frequency. Used for the static response curve overlay, not in the
// audio path.
func (c *Coefficients) MagnitudeAt(freq, sampleRate float64) float64 {
	omega := 2.0 * math.Pi * freq / sampleRate
	z1 := cmplx.Exp(complex(0, -omega))
	z2 := z1 * z1

	num := complex(c.B0, 0) + complex(c.B1, 0)*z1 + complex(c.B2, 0)*z2
	den := complex(1, 0) + complex(c.A1, 0)*z1 + complex(c.A2, 0)*z2

	return cmplx.Abs(num / den)
}

// MagnitudeAt multiplies the responses of all non-bypassed stages. Bypassed
// stages contribute unity regardless of their installed coefficients.
func (c *CutChain) MagnitudeAt(freq, sampleRate float64) float64 {
	mag := 1.0
	for _, st := range c.stages {
		if st.Bypassed() {
			continue
		}
		mag *= st.Coefficients().MagnitudeAt(freq, sampleRate)
	}
	return mag
}

// MagnitudeAt evaluates the full cascaded response of the channel chain at
// the given frequency.
func (c *ChannelChain) MagnitudeAt(freq, sampleRate float64) float64 {
	mag := c.lowCut.MagnitudeAt(freq, sampleRate)
	for _, p := range c.peaks {
		if p.Bypassed() {
			continue
		}
		mag *= p.Coefficients().MagnitudeAt(freq, sampleRate)
	}
	return mag * c.highCut.MagnitudeAt(freq, sampleRate)
}
