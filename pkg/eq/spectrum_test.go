package eq

import (
	"math"
	"testing"

	"github.com/eqstream/eqstream/pkg/dsp/analysis"
	"github.com/eqstream/eqstream/pkg/framework/process"
)

func testBounds() analysis.Bounds {
	return analysis.Bounds{X: 0, Y: 0, W: 400, H: 200}
}

func feedTone(e *Engine, ctx *process.Context, freq float64, blocks int) {
	n := 0
	for b := 0; b < blocks; b++ {
		for ch := range ctx.Input {
			for i := range ctx.Input[ch] {
				ctx.Input[ch][i] = float32(math.Sin(2 * math.Pi * freq * float64(n+i) / testSampleRate))
			}
		}
		n += len(ctx.Input[0])
		e.Process(ctx)
	}
}

func TestVisualizerSpectrumPath(t *testing.T) {
	e, ctx := newTestEngine(t)
	v := NewVisualizer(e)

	// Enough audio for several full FFT windows.
	feedTone(e, ctx, 1000, 8)
	v.Poll(testBounds())

	for ch := 0; ch < NumChannels; ch++ {
		path := v.SpectrumPath(ch)
		if len(path) == 0 {
			t.Fatalf("channel %d spectrum path is empty", ch)
		}

		// X must stay inside the viewport and never run backwards.
		b := testBounds()
		for i, pt := range path {
			if pt.X < b.X-0.001 || pt.X > b.X+b.W+0.001 {
				t.Fatalf("channel %d point %d x=%f outside bounds", ch, i, pt.X)
			}
			if i > 0 && pt.X < path[i-1].X {
				t.Fatalf("channel %d path x not monotonic at %d", ch, i)
			}
		}
	}

	if v.SpectrumPath(-1) != nil || v.SpectrumPath(NumChannels) != nil {
		t.Error("out-of-range SpectrumPath should return nil")
	}
}

func TestVisualizerSpectrumPeaksAtTone(t *testing.T) {
	e, ctx := newTestEngine(t)
	v := NewVisualizer(e)

	const toneFreq = 1000.0
	feedTone(e, ctx, toneFreq, 16)
	v.Poll(testBounds())

	path := v.SpectrumPath(0)
	if len(path) == 0 {
		t.Fatal("no spectrum path")
	}

	// The highest point (smallest y) should sit near the tone's x position.
	b := testBounds()
	best := 0
	for i, pt := range path {
		if pt.Y < path[best].Y {
			best = i
		}
	}

	// Same log-frequency mapping the path generator uses.
	norm := math.Log10(toneFreq/analysis.MinPlotFreq) / math.Log10(analysis.MaxPlotFreq/analysis.MinPlotFreq)
	wantX := float64(b.X) + norm*float64(b.W)

	if math.Abs(float64(path[best].X)-wantX) > float64(b.W)*0.05 {
		t.Errorf("spectrum peak at x=%f, want near %f", path[best].X, wantX)
	}
}

func TestVisualizerResponseCurve(t *testing.T) {
	e, _ := newTestEngine(t)
	v := NewVisualizer(e)

	b := testBounds()
	v.Poll(b)

	resp := v.ResponsePath()
	if len(resp) != responseCurvePoints {
		t.Fatalf("response path has %d points, want %d", len(resp), responseCurvePoints)
	}

	// Flat EQ: every point sits on the 0 dB midline.
	mid := b.Y + b.H/2
	for i, pt := range resp {
		if math.Abs(float64(pt.Y-mid)) > 0.5 {
			t.Fatalf("flat response point %d at y=%f, want ~%f", i, pt.Y, mid)
		}
	}
}

func TestVisualizerResponseRebuildOnChange(t *testing.T) {
	e, _ := newTestEngine(t)
	v := NewVisualizer(e)

	b := testBounds()
	v.Poll(b)
	flat := v.ResponsePath()

	// No change: polling again must not rebuild.
	v.Poll(b)
	if &v.ResponsePath()[0] != &flat[0] {
		t.Error("response should not be rebuilt without a parameter change")
	}

	// Raise a band; the notify hook marks the curve dirty.
	e.Params().Get(PeakGainID(3)).SetPlainValue(12)
	v.Poll(b)

	boosted := v.ResponsePath()
	changed := false
	for i := range boosted {
		if math.Abs(float64(boosted[i].Y-flat[i].Y)) > 1 {
			changed = true
			break
		}
	}
	if !changed {
		t.Error("response curve did not change after a 12 dB boost")
	}
}

func TestVisualizerResponseRebuildOnResize(t *testing.T) {
	e, _ := newTestEngine(t)
	v := NewVisualizer(e)

	v.Poll(testBounds())
	small := analysis.Bounds{X: 0, Y: 0, W: 100, H: 50}
	v.Poll(small)

	resp := v.ResponsePath()
	for i, pt := range resp {
		if pt.X > small.X+small.W+0.001 || pt.Y > small.Y+small.H+0.001 {
			t.Fatalf("point %d (%f, %f) outside resized bounds", i, pt.X, pt.Y)
		}
	}
}
