package analysis

import "math"

// Frequency extent of the rendered spectrum. X coordinates are log-spaced
// between these bounds.
const (
	MinPlotFreq = 10.0
	MaxPlotFreq = 20000.0
)

// Point is one vertex of a renderable polyline.
type Point struct {
	X, Y float32
}

// Polyline is an ordered list of points connected by straight segments.
type Polyline []Point

// Bounds is the rectangle a polyline is mapped into.
type Bounds struct {
	X, Y, W, H float32
}

// Bottom returns the lowest Y edge of the rectangle.
func (b Bounds) Bottom() float32 {
	return b.Y + b.H
}

func mapFreqX(freq float64, b Bounds) float32 {
	prop := math.Log10(freq/MinPlotFreq) / math.Log10(MaxPlotFreq/MinPlotFreq)
	if prop < 0 {
		prop = 0
	} else if prop > 1 {
		prop = 1
	}
	return b.X + float32(prop)*b.W
}

func mapDbY(db, minDb, maxDb float64, b Bounds) float32 {
	prop := (db - minDb) / (maxDb - minDb)
	y := float64(b.Bottom()) - prop*float64(b.H)
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return b.Bottom()
	}
	if y < float64(b.Y) {
		y = float64(b.Y)
	} else if y > float64(b.Bottom()) {
		y = float64(b.Bottom())
	}
	return float32(y)
}

// GeneratePath maps decibel bins to a polyline in log-frequency,
// bounded-amplitude space: x from bin frequency between MinPlotFreq and
// MaxPlotFreq, y linearly from floorDb (bottom) to 0 dB (top), clipped to
// the bounds. stride > 1 emits every stride-th bin for cheaper rendering.
// Non-finite bins land on the bottom edge rather than corrupting the path.
func GeneratePath(bins []float32, b Bounds, binWidthHz, floorDb float64, stride int) Polyline {
	if stride < 1 {
		stride = 1
	}

	path := make(Polyline, 0, len(bins)/stride+1)
	for i := 0; i < len(bins); i += stride {
		freq := float64(i) * binWidthHz
		if freq > MaxPlotFreq {
			break
		}
		if freq < MinPlotFreq {
			continue
		}
		path = append(path, Point{
			X: mapFreqX(freq, b),
			Y: mapDbY(float64(bins[i]), floorDb, 0, b),
		})
	}
	return path
}

// ResponseCurve samples a magnitude evaluator at points log-spaced
// frequencies and maps the result, in decibels between minDb and maxDb,
// into the bounds. This draws the static cascaded filter response that
// overlays the live spectrum; callers recompute it only when parameters
// change.
func ResponseCurve(magnitudeAt func(freqHz float64) float64, b Bounds, points int, minDb, maxDb float64) Polyline {
	if points < 2 {
		points = 2
	}

	ratio := MaxPlotFreq / MinPlotFreq
	path := make(Polyline, 0, points)
	for i := 0; i < points; i++ {
		prop := float64(i) / float64(points-1)
		freq := MinPlotFreq * math.Pow(ratio, prop)

		db := 20.0 * math.Log10(magnitudeAt(freq))
		path = append(path, Point{
			X: b.X + float32(prop)*b.W,
			Y: mapDbY(db, minDb, maxDb, b),
		})
	}
	return path
}
