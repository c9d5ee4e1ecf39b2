// Package stats implements the descriptive statistics, least-squares
// regression and histogram binning behind the dashboard builders.
package stats

import (
	"math"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Description holds unrounded descriptive statistics of a sample.
type Description struct {
	Mean   float64
	Median float64
	StdDev float64 // sample (N-1) standard deviation
	Min    float64
	Max    float64
	N      int
}

// Describe computes descriptive statistics over xs. An empty sample gives
// NaN for every statistic; a single value gives a NaN StdDev.
func Describe(xs []float64) Description {
	d := Description{
		Mean:   math.NaN(),
		Median: math.NaN(),
		StdDev: math.NaN(),
		Min:    math.NaN(),
		Max:    math.NaN(),
		N:      len(xs),
	}
	if len(xs) == 0 {
		return d
	}

	d.Mean = stat.Mean(xs, nil)
	d.Median = Median(xs)
	if len(xs) > 1 {
		d.StdDev = stat.StdDev(xs, nil)
	}
	d.Min = floats.Min(xs)
	d.Max = floats.Max(xs)
	return d
}

// Median returns the middle value of xs, averaging the two middle values
// for an even count. xs is not modified.
func Median(xs []float64) float64 {
	n := len(xs)
	if n == 0 {
		return math.NaN()
	}
	sorted := make([]float64, n)
	copy(sorted, xs)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// Round rounds x to places decimals. Ties are decided on the exact
// binary value of x, so 44.825 (stored just above) rounds up and 167.975
// (stored just below) rounds down.
func Round(x float64, places int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', places, 64), 64)
	if err != nil {
		return x
	}
	return r
}
