package common

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Basic numeric helpers shared by the spectral and pipeline packages

// Mean calculates the arithmetic mean of a slice using gonum
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return math.NaN()
	}
	return stat.Mean(data, nil)
}

// Median returns the middle value of data. For an even count it is the
// average of the two central values. data is not modified.
func Median(data []float64) float64 {
	if len(data) == 0 {
		return math.NaN()
	}

	sorted := slices.Clone(data)
	slices.Sort(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2.0
	}
	return sorted[mid]
}

// PairMean averages exactly two values. NaN propagates.
func PairMean(a, b float64) float64 {
	return (a + b) / 2.0
}

// NextPow2 returns the smallest power of two >= n (1 for n <= 1).
func NextPow2(n int) int {
	v := 1
	for v < n {
		v <<= 1
	}
	return v
}

// UniqueSorted returns the distinct values of data in ascending order.
func UniqueSorted(data []float64) []float64 {
	out := slices.Clone(data)
	slices.Sort(out)
	return slices.Compact(out)
}

// PositiveDeltas returns the strictly positive consecutive differences of data.
func PositiveDeltas(data []float64) []float64 {
	if len(data) < 2 {
		return nil
	}

	deltas := make([]float64, len(data)-1)
	floats.SubTo(deltas, data[1:], data[:len(data)-1])

	return slices.DeleteFunc(deltas, func(d float64) bool { return !(d > 0) })
}

// ArgMax returns the index of the first maximum of data, or -1 when data is
// empty. NaN values never win.
func ArgMax(data []float64) int {
	best := -1
	for i, v := range data {
		if math.IsNaN(v) {
			continue
		}
		if best < 0 || v > data[best] {
			best = i
		}
	}
	return best
}
