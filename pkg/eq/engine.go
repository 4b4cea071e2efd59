package eq

import (
	"fmt"

	"github.com/eqstream/eqstream/pkg/dsp/fifo"
	"github.com/eqstream/eqstream/pkg/dsp/filter"
	"github.com/eqstream/eqstream/pkg/framework/debug"
	"github.com/eqstream/eqstream/pkg/framework/param"
	"github.com/eqstream/eqstream/pkg/framework/process"
)

// NumChannels is the fixed channel count of the engine.
const NumChannels = 2

// Engine processes stereo audio through two identical filter chains and
// taps the processed signal into per-channel analysis queues. Process runs
// on the audio thread and never allocates or locks after Prepare.
type Engine struct {
	params     *param.Registry
	chains     [NumChannels]*filter.ChannelChain
	collectors [NumChannels]*fifo.Collector

	sampleRate float64
	prepared   bool
}

// NewEngine creates an engine reading its controls from reg.
func NewEngine(reg *param.Registry) *Engine {
	e := &Engine{params: reg}
	for ch := range e.chains {
		e.chains[ch] = filter.NewChannelChain()
		e.collectors[ch] = fifo.NewCollector()
	}
	return e
}

// Prepare sizes all buffers for the given stream format and resets filter
// state. Must be called before Process, and again after a format change.
func (e *Engine) Prepare(sampleRate float64, maxBlockSize int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("eq: invalid sample rate %f", sampleRate)
	}
	if maxBlockSize <= 0 {
		return fmt.Errorf("eq: invalid max block size %d", maxBlockSize)
	}

	e.sampleRate = sampleRate
	for ch := range e.chains {
		e.chains[ch].Reset()
		e.collectors[ch].Prepare(maxBlockSize)
	}

	e.updateFilters()
	e.prepared = true

	debug.Debug("eq: prepared sampleRate=%.0f maxBlockSize=%d", sampleRate, maxBlockSize)
	return nil
}

// Process runs one block: refresh coefficients from the current parameter
// values, filter each channel in place, then feed the processed samples to
// the analysis collectors.
func (e *Engine) Process(ctx *process.Context) {
	if !e.prepared {
		ctx.PassThrough()
		return
	}

	e.updateFilters()

	numChannels := ctx.GetNumStereoChannels()
	for ch := 0; ch < numChannels; ch++ {
		out := ctx.Output[ch]
		copy(out, ctx.Input[ch])
		e.chains[ch].Process(out)
		e.collectors[ch].OnBlock(out)
	}
}

// updateFilters designs one coefficient set from the current settings and
// swaps it into both channels, so left and right always filter identically.
func (e *Engine) updateFilters() {
	s := SettingsFrom(e.params)

	for band := 0; band < filter.NumPeakBands; band++ {
		ps := s.Peaks[band]
		coeffs := filter.MakePeak(ps.Freq, ps.Q, ps.GainDb, e.sampleRate)
		for ch := range e.chains {
			stage := e.chains[ch].Peak(band)
			stage.SetCoefficients(coeffs)
			stage.SetBypassed(ps.Bypassed)
		}
	}

	lowOff := s.LowCutBypassed || s.LowCutOff()
	var lowCoeffs []*filter.Coefficients
	if !lowOff {
		lowCoeffs = filter.MakeCut(s.LowCutFreq, e.sampleRate, s.LowCutSlope, filter.LowCut)
	}
	for ch := range e.chains {
		e.chains[ch].LowCut().Configure(lowCoeffs, s.LowCutSlope, lowOff)
	}

	highOff := s.HighCutBypassed || s.HighCutOff()
	var highCoeffs []*filter.Coefficients
	if !highOff {
		highCoeffs = filter.MakeCut(s.HighCutFreq, e.sampleRate, s.HighCutSlope, filter.HighCut)
	}
	for ch := range e.chains {
		e.chains[ch].HighCut().Configure(highCoeffs, s.HighCutSlope, highOff)
	}
}

// ResponseMagnitude evaluates the composite transfer function magnitude at
// freq Hz. Both channels are identical, so the left chain stands for both.
func (e *Engine) ResponseMagnitude(freq float64) float64 {
	return e.chains[0].MagnitudeAt(freq, e.sampleRate)
}

// Collector returns the analysis tap for a channel, or nil out of range.
func (e *Engine) Collector(ch int) *fifo.Collector {
	if ch < 0 || ch >= NumChannels {
		return nil
	}
	return e.collectors[ch]
}

// SampleRate returns the rate set by Prepare, or 0 before it.
func (e *Engine) SampleRate() float64 {
	return e.sampleRate
}

// Params returns the registry the engine reads.
func (e *Engine) Params() *param.Registry {
	return e.params
}

// Reset clears filter delay state without touching parameters.
func (e *Engine) Reset() {
	for ch := range e.chains {
		e.chains[ch].Reset()
	}
}
