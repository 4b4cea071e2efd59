package filter

import (
	"math"
	"testing"
)

func TestCutChainActivation(t *testing.T) {
	for s := Slope12; s <= Slope96; s++ {
		t.Run(s.String(), func(t *testing.T) {
			chain := NewCutChain()
			chain.Configure(MakeCut(1000, 48000, s, LowCut), s, false)

			for i := 0; i < NumSlopes; i++ {
				wantActive := i < s.Sections()
				if got := !chain.Stage(i).Bypassed(); got != wantActive {
					t.Errorf("stage %d active = %v, want %v", i, got, wantActive)
				}
			}
		})
	}
}

func TestCutChainSlopeDecreaseLeavesNoStaleStages(t *testing.T) {
	chain := NewCutChain()
	chain.Configure(MakeCut(1000, 48000, Slope96, LowCut), Slope96, false)
	chain.Configure(MakeCut(1000, 48000, Slope12, LowCut), Slope12, false)

	for i := 1; i < NumSlopes; i++ {
		if !chain.Stage(i).Bypassed() {
			t.Errorf("stage %d still active after slope decrease", i)
		}
	}
}

func TestCutChainOffBypassesEverything(t *testing.T) {
	tests := []struct {
		name   string
		coeffs []*Coefficients
		slope  Slope
	}{
		{"WithCoefficients", MakeCut(1000, 48000, Slope96, LowCut), Slope96},
		{"NilCoefficients", nil, Slope48},
		{"StaleShortList", MakeCut(1000, 48000, Slope12, LowCut), Slope96},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain := NewCutChain()
			// Activate first so off has prior state to clear.
			chain.Configure(MakeCut(500, 48000, Slope48, LowCut), Slope48, false)
			chain.Configure(tt.coeffs, tt.slope, true)

			for i := 0; i < NumSlopes; i++ {
				if !chain.Stage(i).Bypassed() {
					t.Errorf("stage %d not bypassed with off=true", i)
				}
			}
		})
	}
}

func TestCutChainOffIsTransparent(t *testing.T) {
	chain := NewCutChain()
	chain.Configure(nil, Slope96, true)

	in := sineBlock(100, 48000, 512)
	out := make([]float32, len(in))
	copy(out, in)

	chain.Process(out)

	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("sample %d modified by off chain", i)
		}
	}
}

func TestCutChainAttenuatesStopband(t *testing.T) {
	const sampleRate = 48000.0

	chain := NewCutChain()
	chain.Configure(MakeCut(1000, sampleRate, Slope48, LowCut), Slope48, false)

	// 100 Hz is well inside the stopband of a 1 kHz low cut.
	buf := sineBlock(100, sampleRate, 48000)
	chain.Process(buf)

	if got := peakAmplitude(buf[len(buf)/2:]); got > 0.01 {
		t.Errorf("stopband amplitude = %f, want < 0.01", got)
	}

	// 10 kHz passes.
	chain.Reset()
	buf = sineBlock(10000, sampleRate, 48000)
	chain.Process(buf)
	if got := peakAmplitude(buf[len(buf)/2:]); math.Abs(got-1.0) > 0.05 {
		t.Errorf("passband amplitude = %f, want ~1", got)
	}
}
