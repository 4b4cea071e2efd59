// Package filter provides the IIR filter sections and cascades for the EQ.
package filter

import (
	"fmt"
	"math"
)

// Slope selects the steepness of a cut filter. Each step activates one more
// cascaded second-order section, adding 12 dB/octave of rolloff.
type Slope int

const (
	Slope12 Slope = iota
	Slope24
	Slope36
	Slope48
	Slope60
	Slope72
	Slope84
	Slope96

	// NumSlopes is the number of selectable slopes, and equals the number
	// of sections in a CutChain.
	NumSlopes = 8
)

// String returns the slope label as shown on the control surface.
func (s Slope) String() string {
	return fmt.Sprintf("%d db/Oct", 12+12*int(s))
}

// Sections returns how many second-order sections the slope activates.
func (s Slope) Sections() int {
	return int(s) + 1
}

// CutKind selects which side of the spectrum a cut cascade attenuates.
type CutKind int

const (
	// LowCut attenuates below the cutoff (highpass sections).
	LowCut CutKind = iota
	// HighCut attenuates above the cutoff (lowpass sections).
	HighCut
)

// Coefficients holds one normalized biquad section (a0 == 1). A Coefficients
// value is never mutated after creation; stages swap whole sets so the audio
// thread can never observe a half-updated section.
type Coefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// Unity returns coefficients with a flat 0 dB response.
func Unity() *Coefficients {
	return &Coefficients{B0: 1}
}

func normalize(b0, b1, b2, a0, a1, a2 float64) *Coefficients {
	inv := 1.0 / a0
	return &Coefficients{
		B0: b0 * inv,
		B1: b1 * inv,
		B2: b2 * inv,
		A1: a1 * inv,
		A2: a2 * inv,
	}
}

// MakePeak designs a parametric bell section centered at freq. Callers are
// expected to clamp parameters to sensible ranges; inputs that would be
// numerically unstable yield a unity response instead of an error.
func MakePeak(freq, q, gainDB, sampleRate float64) *Coefficients {
	if freq <= 0 || freq >= sampleRate/2 || q <= 0 {
		return Unity()
	}

	omega := 2.0 * math.Pi * freq / sampleRate
	sinOmega := math.Sin(omega)
	cosOmega := math.Cos(omega)
	A := math.Pow(10.0, gainDB/40.0)
	alpha := sinOmega / (2.0 * q)

	b0 := 1.0 + alpha*A
	b1 := -2.0 * cosOmega
	b2 := 1.0 - alpha*A
	a0 := 1.0 + alpha/A
	a1 := -2.0 * cosOmega
	a2 := 1.0 - alpha/A

	return normalize(b0, b1, b2, a0, a1, a2)
}

// MakeCut designs a Butterworth cascade for a low-cut or high-cut filter.
// It returns slope.Sections() second-order sections whose combined response
// is maximally flat in the passband and rolls off at 12 dB/octave per
// section beyond the cutoff. Section Q values come from the Butterworth pole
// angles of the full-order filter, so cascading them reproduces a single
// filter of order 2*slope.Sections().
func MakeCut(freq, sampleRate float64, slope Slope, kind CutKind) []*Coefficients {
	sections := slope.Sections()
	out := make([]*Coefficients, sections)

	if freq <= 0 || freq >= sampleRate/2 {
		for i := range out {
			out[i] = Unity()
		}
		return out
	}

	order := 2 * sections
	for k := 0; k < sections; k++ {
		theta := math.Pi * float64(2*k+1) / float64(2*order)
		q := 1.0 / (2.0 * math.Cos(theta))
		if kind == LowCut {
			out[k] = makeHighpass(freq, q, sampleRate)
		} else {
			out[k] = makeLowpass(freq, q, sampleRate)
		}
	}
	return out
}

func makeLowpass(freq, q, sampleRate float64) *Coefficients {
	omega := 2.0 * math.Pi * freq / sampleRate
	sinOmega := math.Sin(omega)
	cosOmega := math.Cos(omega)
	alpha := sinOmega / (2.0 * q)

	b0 := (1.0 - cosOmega) / 2.0
	b1 := 1.0 - cosOmega
	b2 := (1.0 - cosOmega) / 2.0
	a0 := 1.0 + alpha
	a1 := -2.0 * cosOmega
	a2 := 1.0 - alpha

	return normalize(b0, b1, b2, a0, a1, a2)
}

func makeHighpass(freq, q, sampleRate float64) *Coefficients {
	omega := 2.0 * math.Pi * freq / sampleRate
	sinOmega := math.Sin(omega)
	cosOmega := math.Cos(omega)
	alpha := sinOmega / (2.0 * q)

	b0 := (1.0 + cosOmega) / 2.0
	b1 := -(1.0 + cosOmega)
	b2 := (1.0 + cosOmega) / 2.0
	a0 := 1.0 + alpha
	a1 := -2.0 * cosOmega
	a2 := 1.0 - alpha

	return normalize(b0, b1, b2, a0, a1, a2)
}
