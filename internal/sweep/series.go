package sweep

import (
	"fmt"

	"eepe-mcerror/internal/eepe"
)

// Chart titles and axis labels of the error and convergence views.
const (
	Method1Title  = "Method 1: EEPE Monte Carlo Error vs. Number of MC Runs (m)"
	Method1XLabel = "Number of MC Runs (m)"
	Method1YLabel = "Calculated error_m1(EEPE)"

	ConvAdjTitle  = "Impact of m on Convergence Adjustment Factor"
	ConvAdjXLabel = "Number of MC Runs (m)"
	ConvAdjYLabel = "Convergence Adjustment Factor (convAdj(m))"

	Method2Title  = "Method 2: EEPE Monte Carlo Error vs. Number of Scenarios (N)"
	Method2XLabel = "Number of Scenarios (N)"
	Method2YLabel = "Calculated error_m2(EEPE)"

	ComparisonTitle  = "Comparison of EEPE MC Error (Method 1 vs. Method 2)"
	ComparisonXLabel = "Method"
	ComparisonYLabel = "Calculated EEPE MC Error"
)

// Point is one (x, y) pair of a swept series.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Series is an ordered set of points with the labels needed to draw it.
type Series struct {
	Name   string  `json:"name" yaml:"name"`
	Title  string  `json:"title" yaml:"title"`
	XLabel string  `json:"x_label" yaml:"x_label"`
	YLabel string  `json:"y_label" yaml:"y_label"`
	Points []Point `json:"points" yaml:"points"`
}

// NewSeries pairs xs with ys. Both slices must have the same length.
func NewSeries(name string, xs, ys []float64) (Series, error) {
	if len(xs) != len(ys) {
		return Series{}, fmt.Errorf("%w: series %q has %d x values and %d y values", eepe.ErrInvalidParameter, name, len(xs), len(ys))
	}
	points := make([]Point, len(xs))
	for i := range xs {
		points[i] = Point{X: xs[i], Y: ys[i]}
	}
	return Series{Name: name, Points: points}, nil
}

// WithLabels returns a copy of s carrying the given title and axis labels.
func (s Series) WithLabels(title, xLabel, yLabel string) Series {
	s.Title = title
	s.XLabel = xLabel
	s.YLabel = yLabel
	return s
}

// Len returns the number of points.
func (s Series) Len() int {
	return len(s.Points)
}

// XValues returns the x coordinates in order.
func (s Series) XValues() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.X
	}
	return out
}

// YValues returns the y coordinates in order.
func (s Series) YValues() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Y
	}
	return out
}
