package param

import (
	"math"
	"testing"
)

func TestChoice(t *testing.T) {
	options := []ChoiceOption{
		{Value: 0, Name: "Off", Aliases: []string{"disabled", "none"}},
		{Value: 1, Name: "Low", Aliases: []string{"lo", "minimum"}},
		{Value: 2, Name: "Medium", Aliases: []string{"med", "mid", "normal"}},
		{Value: 3, Name: "High", Aliases: []string{"hi", "maximum"}},
	}

	param := Choice(100, "Mode", options).Build()

	t.Run("Formatter", func(t *testing.T) {
		tests := []struct {
			value    float64
			expected string
		}{
			{0, "Off"},
			{1, "Low"},
			{2, "Medium"},
			{3, "High"},
		}

		for _, test := range tests {
			// Need to normalize the value first
			normalized := test.value / 3.0 // 0-3 range
			result := param.FormatValue(normalized)
			if result != test.expected {
				t.Errorf("FormatValue(%f) = %s, want %s", test.value, result, test.expected)
			}
		}
	})

	t.Run("Parser", func(t *testing.T) {
		tests := []struct {
			input         string
			expectedPlain float64
		}{
			{"Off", 0},
			{"disabled", 0},
			{"Low", 1},
			{"lo", 1},
			{"Medium", 2},
			{"med", 2},
			{"High", 3},
			{"hi", 3},
		}

		for _, test := range tests {
			normalized, err := param.ParseValue(test.input)
			if err != nil {
				t.Errorf("ParseValue(%s) error: %v", test.input, err)
				continue
			}
			plain := param.Denormalize(normalized)
			if math.Abs(plain-test.expectedPlain) > 0.001 {
				t.Errorf("ParseValue(%s) = %f (plain), want %f", test.input, plain, test.expectedPlain)
			}
		}
	})
}

func TestGainParameter(t *testing.T) {
	param := GainParameter(200, "Band Gain", 24).Build()

	if param.Min != -24 || param.Max != 24 {
		t.Errorf("gain range should be -24..24, got %f..%f", param.Min, param.Max)
	}
	if param.Denormalize(param.DefaultValue) != 0 {
		t.Errorf("gain default should be 0 dB, got %f", param.Denormalize(param.DefaultValue))
	}

	t.Run("Formatter", func(t *testing.T) {
		tests := []struct {
			plainValue float64
			expected   string
		}{
			{0, "0.0 dB"},
			{6, "6.0 dB"},
			{-6, "-6.0 dB"},
			{24, "24.0 dB"},
		}

		for _, test := range tests {
			// Format using normalized value
			normalized := param.Normalize(test.plainValue)
			result := param.FormatValue(normalized)
			if result != test.expected {
				t.Errorf("FormatValue(%f dB) = %s, want %s", test.plainValue, result, test.expected)
			}
		}
	})

	t.Run("Parser", func(t *testing.T) {
		normalized, err := param.ParseValue("-12 dB")
		if err != nil {
			t.Errorf("ParseValue error: %v", err)
		}
		plainValue := param.Denormalize(normalized)
		if plainValue != -12 {
			t.Errorf("ParseValue(-12 dB) = %f, want -12", plainValue)
		}
	})
}

func TestFrequencyParameter(t *testing.T) {
	param := FrequencyParameter(400, "Peak Freq", 20, 20000, 1000).Build()

	// Format using normalized value
	normalized := param.Normalize(1000)
	result := param.FormatValue(normalized)
	if result != "1.00 kHz" {
		t.Errorf("FormatValue(1000 Hz) = %s, want 1.00 kHz", result)
	}
}

func TestCutFrequencyParameter(t *testing.T) {
	// Travel extends below the enable threshold so the low end reads Off.
	param := CutFrequencyParameter(401, "LowCut Freq", 5, 20000, 6, 20000, 5).Build()

	tests := []struct {
		plainValue float64
		expected   string
	}{
		{5, "Off"},
		{6, "6.0 Hz"},
		{80, "80.0 Hz"},
		{2000, "2.00 kHz"},
	}

	for _, test := range tests {
		normalized := param.Normalize(test.plainValue)
		result := param.FormatValue(normalized)
		if result != test.expected {
			t.Errorf("FormatValue(%f Hz) = %s, want %s", test.plainValue, result, test.expected)
		}
	}

	if got := param.FormatValue(param.DefaultValue); got != "Off" {
		t.Errorf("default should display Off, got %s", got)
	}
}

func TestQParameter(t *testing.T) {
	param := QParameter(402, "Peak Q", 0.1, 10, 1).Build()

	if param.Min != 0.1 || param.Max != 10 {
		t.Errorf("Q range should be 0.1..10, got %f..%f", param.Min, param.Max)
	}

	normalized := param.Normalize(0.707)
	result := param.FormatValue(normalized)
	if result != "Q: 0.71" {
		t.Errorf("FormatValue(0.707) = %s, want Q: 0.71", result)
	}
}

func TestSlopeParameter(t *testing.T) {
	param := SlopeParameter(403, "LowCut Slope", 8).Build()

	if param.StepCount != 8 {
		t.Errorf("slope should have 8 steps, got %d", param.StepCount)
	}

	t.Run("Formatter", func(t *testing.T) {
		tests := []struct {
			choice   float64
			expected string
		}{
			{0, "12 dB/Oct"},
			{1, "24 dB/Oct"},
			{3, "48 dB/Oct"},
			{7, "96 dB/Oct"},
		}

		for _, test := range tests {
			normalized := param.Normalize(test.choice)
			result := param.FormatValue(normalized)
			if result != test.expected {
				t.Errorf("FormatValue(choice %f) = %s, want %s", test.choice, result, test.expected)
			}
		}
	})

	t.Run("Parser", func(t *testing.T) {
		normalized, err := param.ParseValue("36 dB/Oct")
		if err != nil {
			t.Fatalf("ParseValue error: %v", err)
		}
		plain := param.Denormalize(normalized)
		if math.Abs(plain-2) > 0.001 {
			t.Errorf("ParseValue(36 dB/Oct) = %f, want choice 2", plain)
		}
	})
}

func TestBypassParameter(t *testing.T) {
	param := BypassParameter(500, "Peak1 Bypass").Build()

	if param.Min != 0 || param.Max != 1 {
		t.Errorf("bypass range should be 0-1, got %f-%f", param.Min, param.Max)
	}
	if param.GetValue() != 0 {
		t.Errorf("bypass should default to active, got %f", param.GetValue())
	}

	if got := param.FormatValue(0); got != "Active" {
		t.Errorf("FormatValue(0) = %s, want Active", got)
	}
	if got := param.FormatValue(1); got != "Bypassed" {
		t.Errorf("FormatValue(1) = %s, want Bypassed", got)
	}

	normalized, err := param.ParseValue("Bypassed")
	if err != nil {
		t.Fatalf("ParseValue error: %v", err)
	}
	if normalized != 1 {
		t.Errorf("ParseValue(Bypassed) = %f, want 1", normalized)
	}
}
