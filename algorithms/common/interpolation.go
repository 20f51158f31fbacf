package common

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"gonum.org/v1/gonum/interp"
)

// ErrTooFewPoints is returned when fewer than two distinct abscissae remain.
var ErrTooFewPoints = errors.New("at least two distinct points are required")

// Point is a single (x, y) sample of a curve.
type Point struct {
	X float64
	Y float64
}

// Zip pairs xs with ys. Both slices must have the same length.
func Zip(xs, ys []float64) ([]Point, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("length mismatch: %d x values, %d y values", len(xs), len(ys))
	}
	points := make([]Point, len(xs))
	for i := range xs {
		points[i] = Point{X: xs[i], Y: ys[i]}
	}
	return points, nil
}

// DedupeSorted keeps the first occurrence of every X (in input order) and
// returns the survivors sorted by X ascending.
func DedupeSorted(points []Point) []Point {
	seen := make(map[float64]struct{}, len(points))
	out := make([]Point, 0, len(points))
	for _, p := range points {
		if _, dup := seen[p.X]; dup {
			continue
		}
		seen[p.X] = struct{}{}
		out = append(out, p)
	}

	slices.SortStableFunc(out, func(a, b Point) int { return cmp.Compare(a.X, b.X) })
	return out
}

// Split separates points back into abscissae and ordinates.
func Split(points []Point) (xs, ys []float64) {
	xs = make([]float64, len(points))
	ys = make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.X
		ys[i] = p.Y
	}
	return xs, ys
}

// SplineResample fits a natural cubic spline through (xs, ys) and evaluates
// it at at. xs must be strictly increasing.
func SplineResample(xs, ys, at []float64) ([]float64, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("length mismatch: %d x values, %d y values", len(xs), len(ys))
	}
	if len(xs) < 2 {
		return nil, ErrTooFewPoints
	}

	out := make([]float64, len(at))

	// two knots: the natural spline is the chord
	if len(xs) == 2 {
		slope := (ys[1] - ys[0]) / (xs[1] - xs[0])
		for i, x := range at {
			out[i] = ys[0] + slope*(x-xs[0])
		}
		return out, nil
	}

	var spline interp.NaturalCubic
	if err := spline.Fit(xs, ys); err != nil {
		return nil, fmt.Errorf("fit natural cubic spline: %w", err)
	}
	for i, x := range at {
		out[i] = spline.Predict(x)
	}
	return out, nil
}
