package analysis

import "math"

// Window selects the taper applied to the history buffer before the FFT.
type Window int

const (
	// RectangularWindow applies no taper.
	RectangularWindow Window = iota
	// HannWindow is a good general-purpose taper.
	HannWindow
	// BlackmanHarrisWindow trades main-lobe width for very low sidelobes,
	// the right choice for a visual analyzer.
	BlackmanHarrisWindow
)

// makeWindowTable precomputes the window coefficients so the per-block path
// is a plain multiply.
func makeWindowTable(w Window, size int) []float64 {
	table := make([]float64, size)
	n := float64(size)

	switch w {
	case HannWindow:
		for i := range table {
			table[i] = 0.5 * (1.0 - math.Cos(2.0*math.Pi*float64(i)/(n-1.0)))
		}

	case BlackmanHarrisWindow:
		a0, a1, a2, a3 := 0.35875, 0.48829, 0.14128, 0.01168
		for i := range table {
			table[i] = a0 - a1*math.Cos(2.0*math.Pi*float64(i)/(n-1.0)) +
				a2*math.Cos(4.0*math.Pi*float64(i)/(n-1.0)) -
				a3*math.Cos(6.0*math.Pi*float64(i)/(n-1.0))
		}

	default:
		for i := range table {
			table[i] = 1.0
		}
	}

	return table
}
