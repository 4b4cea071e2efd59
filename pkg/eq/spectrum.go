package eq

import (
	"sync/atomic"

	"github.com/eqstream/eqstream/pkg/dsp/analysis"
	"github.com/eqstream/eqstream/pkg/dsp/fifo"
)

// responseCurvePoints is the horizontal resolution of the response overlay.
const responseCurvePoints = 256

// PathProducer drains one channel's sample queue into an FFT analyzer and
// turns each finished spectrum into a screen-space polyline. It runs on the
// analysis thread; the queues are its only contact with the audio thread.
type PathProducer struct {
	analyzer *analysis.Analyzer
	blockBuf []float32
	specBuf  []float32
	path     analysis.Polyline
	stride   int
}

// NewPathProducer creates a producer able to pull blocks of blockSize
// samples. stride subsamples the spectrum bins; 1 keeps every bin.
func NewPathProducer(blockSize, stride int) *PathProducer {
	a := analysis.NewAnalyzer(analysis.DefaultFFTSize, analysis.DefaultFloorDb, analysis.BlackmanHarrisWindow)
	a.SetSmoothing(0.5)
	if stride < 1 {
		stride = 1
	}
	return &PathProducer{
		analyzer: a,
		blockBuf: make([]float32, blockSize),
		specBuf:  make([]float32, a.FFTSize()/2),
		stride:   stride,
	}
}

// Drain consumes everything waiting in the sample queue, runs the analyzer,
// and regenerates the path from the freshest spectrum. When no new spectrum
// arrived the previous path is returned unchanged.
func (p *PathProducer) Drain(samples *fifo.Fifo, b analysis.Bounds, sampleRate float64) analysis.Polyline {
	for samples.Pull(p.blockBuf) {
		p.analyzer.PushBlock(p.blockBuf)
	}

	fresh := false
	for p.analyzer.Spectrum().Pull(p.specBuf) {
		fresh = true
	}
	if fresh {
		p.path = analysis.GeneratePath(p.specBuf, b,
			p.analyzer.BinWidth(sampleRate), p.analyzer.FloorDb(), p.stride)
	}
	return p.path
}

// Analyzer exposes the producer's analyzer for configuration.
func (p *PathProducer) Analyzer() *analysis.Analyzer {
	return p.analyzer
}

// Visualizer polls the engine at frame rate and keeps the latest spectrum
// path per channel plus the EQ response overlay. The response curve is
// rebuilt only after a parameter actually changed (or the viewport moved);
// the changed flag is set from the parameter notify hook and claimed here
// with a compare-and-swap.
type Visualizer struct {
	engine    *Engine
	producers [NumChannels]*PathProducer

	changed atomic.Bool

	spectrumPaths [NumChannels]analysis.Polyline
	responsePath  analysis.Polyline
	bounds        analysis.Bounds
}

// NewVisualizer wires a visualizer to a prepared engine. It installs the
// registry notify hook, so create it before audio starts.
func NewVisualizer(engine *Engine) *Visualizer {
	v := &Visualizer{engine: engine}
	for ch := range v.producers {
		v.producers[ch] = NewPathProducer(engine.Collector(ch).BlockSize(), 1)
	}

	engine.Params().SetNotify(func() {
		v.changed.Store(true)
	})
	// Force an initial response build on the first poll.
	v.changed.Store(true)
	return v
}

// Poll advances the analysis side one frame: drain the audio taps, refresh
// the spectrum paths, and rebuild the response curve if anything changed.
// Call at display rate from a single goroutine.
func (v *Visualizer) Poll(b analysis.Bounds) {
	sampleRate := v.engine.SampleRate()

	for ch := range v.producers {
		queue := v.engine.Collector(ch).Queue()
		if queue == nil {
			continue
		}
		v.spectrumPaths[ch] = v.producers[ch].Drain(queue, b, sampleRate)
	}

	if v.changed.CompareAndSwap(true, false) || b != v.bounds {
		v.responsePath = analysis.ResponseCurve(v.engine.ResponseMagnitude, b,
			responseCurvePoints, -gainRangeDb, gainRangeDb)
		v.bounds = b
	}
}

// SpectrumPath returns the latest path for a channel, nil before data.
func (v *Visualizer) SpectrumPath(ch int) analysis.Polyline {
	if ch < 0 || ch >= NumChannels {
		return nil
	}
	return v.spectrumPaths[ch]
}

// ResponsePath returns the latest EQ response overlay.
func (v *Visualizer) ResponsePath() analysis.Polyline {
	return v.responsePath
}
