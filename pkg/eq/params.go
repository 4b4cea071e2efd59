// Package eq ties the filter chains, parameters, and analysis queues into a
// stereo equalizer engine.
package eq

import (
	"fmt"

	"github.com/eqstream/eqstream/pkg/dsp/filter"
	"github.com/eqstream/eqstream/pkg/framework/param"
)

// Parameter IDs. Peak band IDs are derived; use the ID helpers.
const (
	ParamLowCutFreq uint32 = iota
	ParamLowCutSlope
	ParamLowCutBypass
	ParamHighCutFreq
	ParamHighCutSlope
	ParamHighCutBypass

	paramPeakBase
)

const peakParamStride = 4

// Control ranges shared by every frequency knob. The cut knobs deliberately
// travel past their audible range: the low end of the low cut and the top
// end of the high cut act as an "off" position.
const (
	freqMin = 5.0
	freqMax = 22000.0

	lowCutOffBelow  = 6.0
	highCutOffAbove = 21500.0

	gainRangeDb = 24.0
	qMin        = 0.1
	qMax        = 10.0
)

// defaultPeakFreqs are the resting center frequencies of the five bands.
var defaultPeakFreqs = [filter.NumPeakBands]float64{120, 250, 500, 1000, 3200}

// PeakFreqID returns the frequency parameter ID for a peak band.
func PeakFreqID(band int) uint32 {
	return paramPeakBase + uint32(band)*peakParamStride
}

// PeakGainID returns the gain parameter ID for a peak band.
func PeakGainID(band int) uint32 {
	return paramPeakBase + uint32(band)*peakParamStride + 1
}

// PeakQID returns the Q parameter ID for a peak band.
func PeakQID(band int) uint32 {
	return paramPeakBase + uint32(band)*peakParamStride + 2
}

// PeakBypassID returns the bypass parameter ID for a peak band.
func PeakBypassID(band int) uint32 {
	return paramPeakBase + uint32(band)*peakParamStride + 3
}

// BuildRegistry creates the full parameter layout: both cut filters with
// frequency, slope, and bypass, plus five peak bands each carrying
// frequency, gain, Q, and bypass.
func BuildRegistry() *param.Registry {
	reg := param.NewRegistry()

	reg.Add(
		param.CutFrequencyParameter(ParamLowCutFreq, "LowCut Freq",
			freqMin, freqMax, lowCutOffBelow, freqMax, freqMin).Build(),
		param.SlopeParameter(ParamLowCutSlope, "LowCut Slope", filter.NumSlopes).Build(),
		param.BypassParameter(ParamLowCutBypass, "LowCut Bypass").Build(),

		param.CutFrequencyParameter(ParamHighCutFreq, "HighCut Freq",
			freqMin, freqMax, freqMin, highCutOffAbove, freqMax).Build(),
		param.SlopeParameter(ParamHighCutSlope, "HighCut Slope", filter.NumSlopes).Build(),
		param.BypassParameter(ParamHighCutBypass, "HighCut Bypass").Build(),
	)

	for band := 0; band < filter.NumPeakBands; band++ {
		prefix := fmt.Sprintf("Peak%d", band+1)
		reg.Add(
			param.FrequencyParameter(PeakFreqID(band), prefix+" Freq",
				freqMin, freqMax, defaultPeakFreqs[band]).Build(),
			param.GainParameter(PeakGainID(band), prefix+" Gain", gainRangeDb).Build(),
			param.QParameter(PeakQID(band), prefix+" Q", qMin, qMax, 1.0).Build(),
			param.BypassParameter(PeakBypassID(band), prefix+" Bypass").Build(),
		)
	}

	return reg
}
