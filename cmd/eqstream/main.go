package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/eqstream/eqstream/pkg/dsp/filter"
	"github.com/eqstream/eqstream/pkg/eq"
	"github.com/eqstream/eqstream/pkg/framework/debug"
	"github.com/eqstream/eqstream/pkg/framework/param"
)

var version = "0.1.0"

// CLI defines the command-line interface
type CLI struct {
	Verbose bool             `short:"v" help:"Enable debug logging and output sanity checks"`
	Version kong.VersionFlag `help:"Show version information"`

	Play   PlayCmd   `cmd:"" help:"Play a WAV file through the equalizer with a live spectrum display"`
	Tone   ToneCmd   `cmd:"" help:"Play a generated test tone through the equalizer"`
	Render RenderCmd `cmd:"" help:"Process a WAV file offline and write the result"`
}

// runContext carries global flags into subcommand Run methods.
type runContext struct {
	verbose bool
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("eqstream"),
		kong.Description("Real-time stereo equalizer with a terminal spectrum analyzer"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)

	if cli.Verbose {
		debug.SetLevel(debug.LogLevelDebug)
	} else {
		debug.SetLevel(debug.LogLevelWarn)
	}

	if err := ctx.Run(&runContext{verbose: cli.Verbose}); err != nil {
		fmt.Fprintf(os.Stderr, "eqstream: %v\n", err)
		os.Exit(1)
	}
}

// eqFlags are the initial control positions, shared by every subcommand.
type eqFlags struct {
	LowCut       float64  `help:"Low cut corner frequency in Hz; below 6 leaves it off" default:"5"`
	LowCutSlope  int      `help:"Low cut slope in dB/Oct (12, 24 ... 96)" default:"12"`
	HighCut      float64  `help:"High cut corner frequency in Hz; above 21500 leaves it off" default:"22000"`
	HighCutSlope int      `help:"High cut slope in dB/Oct (12, 24 ... 96)" default:"12"`
	Band         []string `help:"Peak band setting N:FREQ:GAIN[:Q] with N in 1..5, repeatable" placeholder:"N:FREQ:GAIN[:Q]"`
}

// apply pushes the flag values into the parameter registry.
func (f *eqFlags) apply(reg *param.Registry) error {
	lowSlope, err := slopeChoice(f.LowCutSlope)
	if err != nil {
		return fmt.Errorf("--low-cut-slope: %w", err)
	}
	highSlope, err := slopeChoice(f.HighCutSlope)
	if err != nil {
		return fmt.Errorf("--high-cut-slope: %w", err)
	}

	reg.Get(eq.ParamLowCutFreq).SetPlainValue(f.LowCut)
	reg.Get(eq.ParamLowCutSlope).SetPlainValue(lowSlope)
	reg.Get(eq.ParamHighCutFreq).SetPlainValue(f.HighCut)
	reg.Get(eq.ParamHighCutSlope).SetPlainValue(highSlope)

	for _, spec := range f.Band {
		if err := applyBandSpec(reg, spec); err != nil {
			return fmt.Errorf("--band %q: %w", spec, err)
		}
	}
	return nil
}

// slopeChoice converts a dB/Oct figure to the slope parameter's plain value.
func slopeChoice(db int) (float64, error) {
	if db < 12 || db > 12*filter.NumSlopes || db%12 != 0 {
		return 0, fmt.Errorf("slope must be a multiple of 12 between 12 and %d", 12*filter.NumSlopes)
	}
	return float64(db/12 - 1), nil
}

// applyBandSpec parses one N:FREQ:GAIN[:Q] band setting.
func applyBandSpec(reg *param.Registry, spec string) error {
	parts := strings.Split(spec, ":")
	if len(parts) < 3 || len(parts) > 4 {
		return fmt.Errorf("expected N:FREQ:GAIN[:Q]")
	}

	band, err := strconv.Atoi(parts[0])
	if err != nil || band < 1 || band > filter.NumPeakBands {
		return fmt.Errorf("band number must be 1..%d", filter.NumPeakBands)
	}
	band--

	freq, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return fmt.Errorf("bad frequency %q", parts[1])
	}
	gain, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return fmt.Errorf("bad gain %q", parts[2])
	}

	reg.Get(eq.PeakFreqID(band)).SetPlainValue(freq)
	reg.Get(eq.PeakGainID(band)).SetPlainValue(gain)

	if len(parts) == 4 {
		q, err := strconv.ParseFloat(parts[3], 64)
		if err != nil {
			return fmt.Errorf("bad Q %q", parts[3])
		}
		reg.Get(eq.PeakQID(band)).SetPlainValue(q)
	}
	return nil
}
