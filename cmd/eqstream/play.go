package main

import (
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/eqstream/eqstream/pkg/eq"
	"github.com/eqstream/eqstream/pkg/framework/debug"
)

var (
	globalOtoCtx *oto.Context
	otoOnce      sync.Once
	otoInitErr   error
)

// initOto creates the process-wide playback context. oto allows exactly one
// context per process, so the first stream's sample rate wins.
func initOto(sampleRate int) (*oto.Context, error) {
	otoOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: 2,
			Format:       oto.FormatSignedInt16LE,
		}
		var ready chan struct{}
		globalOtoCtx, ready, otoInitErr = oto.NewContext(op)
		if otoInitErr == nil {
			<-ready
		}
	})
	return globalOtoCtx, otoInitErr
}

// PlayCmd plays a WAV file through the equalizer.
type PlayCmd struct {
	eqFlags
	File string `arg:"" type:"existingfile" help:"WAV file to play"`
	NoUI bool   `help:"Disable the spectrum display"`
}

func (c *PlayCmd) Run(rc *runContext) error {
	src, err := openWAV(c.File)
	if err != nil {
		return err
	}
	defer src.Close()

	return playSource(src, &c.eqFlags, rc.verbose, c.NoUI)
}

// ToneCmd plays a generated sine through the equalizer. Handy for hearing
// and seeing exactly what one band does.
type ToneCmd struct {
	eqFlags
	Freq     float64 `help:"Tone frequency in Hz" default:"440"`
	Level    float64 `help:"Tone amplitude (0..1)" default:"0.5"`
	Duration float64 `help:"Seconds to play; 0 plays until quit" default:"0"`
	Rate     int     `help:"Sample rate in Hz" default:"48000"`
	NoUI     bool    `help:"Disable the spectrum display"`
}

func (c *ToneCmd) Run(rc *runContext) error {
	if c.Level < 0 || c.Level > 1 {
		return fmt.Errorf("--level must be between 0 and 1")
	}
	src := newToneSource(c.Rate, c.Freq, c.Level, c.Duration)
	return playSource(src, &c.eqFlags, rc.verbose, c.NoUI)
}

// playSource builds the engine for a source, starts playback, and either
// blocks until the stream ends or hands control to the spectrum UI.
func playSource(src source, flags *eqFlags, verbose, noUI bool) error {
	reg := eq.BuildRegistry()
	if err := flags.apply(reg); err != nil {
		return err
	}

	engine := eq.NewEngine(reg)
	if err := engine.Prepare(float64(src.SampleRate()), blockSize); err != nil {
		return err
	}

	stream := newEOFNotifier(newProcessedStream(engine, src, verbose))

	otoCtx, err := initOto(src.SampleRate())
	if err != nil {
		return fmt.Errorf("opening audio device: %w", err)
	}

	player := otoCtx.NewPlayer(stream)
	defer player.Close()
	player.Play()
	debug.Info("playback started, sampleRate=%d", src.SampleRate())

	if noUI {
		<-stream.Done()
		// Let the device drain its internal buffer.
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		return nil
	}

	viz := eq.NewVisualizer(engine)
	return runUI(viz, reg, stream.Done())
}
