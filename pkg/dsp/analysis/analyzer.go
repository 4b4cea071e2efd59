// Package analysis converts buffered audio into a renderable spectrum: a
// sliding-window FFT analyzer and the generators that turn decibel bins and
// filter responses into polylines.
package analysis

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/eqstream/eqstream/pkg/dsp/fifo"
)

const (
	// DefaultFFTSize is the analyzer window length in samples.
	DefaultFFTSize = 2048
	// DefaultFloorDb is the level treated as negative infinity.
	DefaultFloorDb = -48.0
)

// Analyzer maintains a sliding history of samples and recomputes a
// magnitude-only spectrum every time a new block arrives. Results are
// decibel bins pushed into an output queue for the path generator. All
// buffers are preallocated; PushBlock never allocates.
//
// The analyzer runs entirely on the analysis thread. Only the queues it is
// fed from are shared with the audio thread.
type Analyzer struct {
	fftSize   int
	floorDb   float64
	smoothing float64

	history  []float64
	window   []float64
	windowed []float64
	bins     []complex128
	dbBins   []float32

	fft *fourier.FFT
	out *fifo.Fifo
}

// NewAnalyzer creates an analyzer with the given window size (a power of
// two) and decibel floor. The spectrum queue carries fftSize/2 bins per
// block.
func NewAnalyzer(fftSize int, floorDb float64, w Window) *Analyzer {
	a := &Analyzer{
		fftSize:  fftSize,
		floorDb:  floorDb,
		history:  make([]float64, fftSize),
		window:   makeWindowTable(w, fftSize),
		windowed: make([]float64, fftSize),
		bins:     make([]complex128, fftSize/2+1),
		dbBins:   make([]float32, fftSize/2),
		fft:      fourier.NewFFT(fftSize),
		out:      fifo.NewFifo(fifo.DefaultCapacity, fftSize/2),
	}
	for i := range a.dbBins {
		a.dbBins[i] = float32(floorDb)
	}
	return a
}

// SetSmoothing enables exponential averaging of the decibel curve. 0 (the
// default) publishes each window as-is; values toward 1 favor history.
func (a *Analyzer) SetSmoothing(smoothing float64) {
	if smoothing >= 0 && smoothing < 1 {
		a.smoothing = smoothing
	}
}

// PushBlock slides the history left by len(block), appends the new samples,
// and publishes a fresh spectrum to the output queue.
func (a *Analyzer) PushBlock(block []float32) {
	n := len(block)
	if n >= a.fftSize {
		for i := 0; i < a.fftSize; i++ {
			a.history[i] = float64(block[n-a.fftSize+i])
		}
	} else {
		copy(a.history, a.history[n:])
		base := a.fftSize - n
		for i, s := range block {
			a.history[base+i] = float64(s)
		}
	}

	a.analyze()
}

func (a *Analyzer) analyze() {
	for i, s := range a.history {
		a.windowed[i] = s * a.window[i]
	}
	a.fft.Coefficients(a.bins, a.windowed)

	half := a.fftSize / 2
	norm := float64(half)
	for i := 0; i < half; i++ {
		mag := cmplx.Abs(a.bins[i]) / norm
		if math.IsNaN(mag) || math.IsInf(mag, 0) {
			mag = 0
		}

		db := a.floorDb
		if mag > 0 {
			db = 20.0 * math.Log10(mag)
			if db < a.floorDb || math.IsNaN(db) {
				db = a.floorDb
			}
		}

		if a.smoothing > 0 {
			db = float64(a.dbBins[i])*a.smoothing + db*(1.0-a.smoothing)
		}
		a.dbBins[i] = float32(db)
	}

	a.out.Push(a.dbBins)
}

// Spectrum returns the queue of decibel-bin blocks.
func (a *Analyzer) Spectrum() *fifo.Fifo {
	return a.out
}

// FFTSize returns the window length in samples.
func (a *Analyzer) FFTSize() int {
	return a.fftSize
}

// FloorDb returns the configured negative-infinity level.
func (a *Analyzer) FloorDb() float64 {
	return a.floorDb
}

// BinWidth returns the frequency width of one bin at the given sample rate.
func (a *Analyzer) BinWidth(sampleRate float64) float64 {
	return sampleRate / float64(a.fftSize)
}
