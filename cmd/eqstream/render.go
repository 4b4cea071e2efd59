package main

import (
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/eqstream/eqstream/pkg/eq"
	"github.com/eqstream/eqstream/pkg/framework/debug"
	"github.com/eqstream/eqstream/pkg/framework/process"
)

// RenderCmd processes a WAV file offline, writing 16-bit stereo output.
type RenderCmd struct {
	eqFlags
	File   string `arg:"" type:"existingfile" help:"WAV file to process"`
	Output string `short:"o" required:"" help:"Destination WAV path"`
}

func (c *RenderCmd) Run(rc *runContext) error {
	src, err := openWAV(c.File)
	if err != nil {
		return err
	}
	defer src.Close()

	reg := eq.BuildRegistry()
	if err := c.apply(reg); err != nil {
		return err
	}

	engine := eq.NewEngine(reg)
	if err := engine.Prepare(float64(src.SampleRate()), blockSize); err != nil {
		return err
	}

	outFile, err := os.Create(c.Output)
	if err != nil {
		return err
	}
	defer outFile.Close()

	enc := wav.NewEncoder(outFile, src.SampleRate(), 16, 2, 1)

	ctx := process.NewContext(blockSize, reg)
	ctx.SampleRate = float64(src.SampleRate())
	in := [2][]float32{make([]float32, blockSize), make([]float32, blockSize)}
	out := [2][]float32{make([]float32, blockSize), make([]float32, blockSize)}

	outBuf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 2,
			SampleRate:  src.SampleRate(),
		},
		Data:           make([]int, blockSize*2),
		SourceBitDepth: 16,
	}

	var total int
	for {
		frames, err := src.ReadBlock(in[0], in[1])
		if frames == 0 {
			if err == io.EOF {
				break
			}
			if err != nil {
				return fmt.Errorf("reading %s: %w", c.File, err)
			}
			break
		}

		ctx.Input = [][]float32{in[0][:frames], in[1][:frames]}
		ctx.Output = [][]float32{out[0][:frames], out[1][:frames]}
		engine.Process(ctx)

		outBuf.Data = outBuf.Data[:frames*2]
		for i := 0; i < frames; i++ {
			outBuf.Data[i*2] = int(clampInt16(out[0][i]))
			outBuf.Data[i*2+1] = int(clampInt16(out[1][i]))
		}
		if err := enc.Write(outBuf); err != nil {
			return fmt.Errorf("writing %s: %w", c.Output, err)
		}
		total += frames

		if err == io.EOF {
			break
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalizing %s: %w", c.Output, err)
	}

	debug.Info("rendered %d frames to %s", total, c.Output)
	fmt.Printf("Wrote %s (%d frames at %d Hz)\n", c.Output, total, src.SampleRate())
	return nil
}
