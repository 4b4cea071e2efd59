package param

import (
	"fmt"
	"strings"
)

// ChoiceOption represents a single choice in a list parameter
type ChoiceOption struct {
	Value   float64
	Name    string
	Aliases []string
}

// Choice creates a parameter builder for a multiple choice parameter
func Choice(id uint32, name string, options []ChoiceOption) *Builder {
	// Create name list for formatter
	names := make([]string, len(options))
	for i, opt := range options {
		names[i] = opt.Name
	}

	// Create formatter
	formatter := func(value float64) string {
		for _, opt := range options {
			if opt.Value == value {
				return opt.Name
			}
		}
		// Fallback to index-based lookup for integer values
		index := int(value)
		if index >= 0 && index < len(names) {
			return names[index]
		}
		return "Unknown"
	}

	// Create parser
	parser := func(str string) (float64, error) {
		normalizedStr := strings.ToLower(strings.TrimSpace(str))

		// Check each option and its aliases
		for _, opt := range options {
			if strings.EqualFold(str, opt.Name) {
				return opt.Value, nil
			}
			for _, alias := range opt.Aliases {
				if strings.EqualFold(normalizedStr, strings.ToLower(alias)) {
					return opt.Value, nil
				}
			}
		}

		return 0, fmt.Errorf("unknown option: %s", str)
	}

	// Determine range and steps
	minVal := 0.0
	maxVal := float64(len(options) - 1)
	if len(options) > 0 {
		minVal = options[0].Value
		maxVal = options[len(options)-1].Value
	}

	return New(id, name).
		Range(minVal, maxVal).
		Steps(int32(len(options))).
		Default(options[0].Value).
		Formatter(formatter, parser)
}

// Common parameter helpers

// FrequencyParameter creates a standard frequency parameter
func FrequencyParameter(id uint32, name string, min, max, defaultVal float64) *Builder {
	return New(id, name).
		Range(min, max).
		Default(defaultVal).
		Unit("Hz").
		Formatter(FrequencyFormatter, FrequencyParser)
}

// CutFrequencyParameter creates a cut filter frequency parameter whose travel
// extends past [onMin, onMax]. Outside that span the filter is disabled and
// the display reads "Off".
func CutFrequencyParameter(id uint32, name string, min, max, onMin, onMax, defaultVal float64) *Builder {
	return New(id, name).
		Range(min, max).
		Default(defaultVal).
		Unit("Hz").
		Formatter(CutoffFormatter(onMin, onMax), FrequencyParser)
}

// GainParameter creates a boost/cut gain parameter centered on 0 dB
func GainParameter(id uint32, name string, rangeDB float64) *Builder {
	return New(id, name).
		Range(-rangeDB, rangeDB).
		Default(0).
		Unit("dB").
		Formatter(DecibelFormatter, DecibelParser)
}

// QParameter creates a Q/resonance parameter
func QParameter(id uint32, name string, minQ, maxQ, defaultQ float64) *Builder {
	return New(id, name).
		Range(minQ, maxQ).
		Default(defaultQ).
		Formatter(func(v float64) string {
			return fmt.Sprintf("Q: %.2f", v)
		}, nil)
}

// SlopeParameter creates a cut filter slope choice (12 to 96 dB/Oct)
func SlopeParameter(id uint32, name string, choices int) *Builder {
	options := make([]ChoiceOption, choices)
	for i := range options {
		options[i] = ChoiceOption{
			Value:   float64(i),
			Name:    fmt.Sprintf("%d dB/Oct", 12+12*i),
			Aliases: []string{fmt.Sprintf("%d", 12 + 12*i)},
		}
	}
	return Choice(id, name, options)
}

// BypassParameter creates a bypass on/off switch
func BypassParameter(id uint32, name string) *Builder {
	return Choice(id, name, []ChoiceOption{
		{Value: 0, Name: "Active"},
		{Value: 1, Name: "Bypassed"},
	}).Toggle()
}
