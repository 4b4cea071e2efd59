package eq

import (
	"math"

	"github.com/eqstream/eqstream/pkg/dsp/filter"
	"github.com/eqstream/eqstream/pkg/framework/param"
)

// PeakSettings is one band's plain-value snapshot.
type PeakSettings struct {
	Freq     float64
	GainDb   float64
	Q        float64
	Bypassed bool
}

// Settings is a point-in-time snapshot of every control, read once at the
// top of a block so a single block never mixes values from two writes.
type Settings struct {
	LowCutFreq      float64
	LowCutSlope     filter.Slope
	LowCutBypassed  bool
	HighCutFreq     float64
	HighCutSlope    filter.Slope
	HighCutBypassed bool
	Peaks           [filter.NumPeakBands]PeakSettings
}

// SettingsFrom reads the current plain values out of the registry.
func SettingsFrom(reg *param.Registry) Settings {
	plain := func(id uint32) float64 {
		if p := reg.Get(id); p != nil {
			return p.GetPlainValue()
		}
		return 0
	}
	toggled := func(id uint32) bool {
		return plain(id) > 0.5
	}
	slope := func(id uint32) filter.Slope {
		s := filter.Slope(int(math.Round(plain(id))))
		if s < filter.Slope12 {
			s = filter.Slope12
		} else if s > filter.Slope96 {
			s = filter.Slope96
		}
		return s
	}

	s := Settings{
		LowCutFreq:      plain(ParamLowCutFreq),
		LowCutSlope:     slope(ParamLowCutSlope),
		LowCutBypassed:  toggled(ParamLowCutBypass),
		HighCutFreq:     plain(ParamHighCutFreq),
		HighCutSlope:    slope(ParamHighCutSlope),
		HighCutBypassed: toggled(ParamHighCutBypass),
	}

	for band := 0; band < filter.NumPeakBands; band++ {
		s.Peaks[band] = PeakSettings{
			Freq:     plain(PeakFreqID(band)),
			GainDb:   plain(PeakGainID(band)),
			Q:        plain(PeakQID(band)),
			Bypassed: toggled(PeakBypassID(band)),
		}
	}

	return s
}

// LowCutOff reports whether the low cut knob sits in its disable region.
func (s Settings) LowCutOff() bool {
	return s.LowCutFreq < lowCutOffBelow
}

// HighCutOff reports whether the high cut knob sits in its disable region.
func (s Settings) HighCutOff() bool {
	return s.HighCutFreq > highCutOffAbove
}
