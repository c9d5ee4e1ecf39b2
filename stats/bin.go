package stats

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// DefaultBins is the bin count used when a histogram does not ask for one.
const DefaultBins = 30

// Bin is one histogram bar. Numeric bins cover [Lo, Hi); categorical
// bins leave Lo/Hi at zero and carry the category in Label.
type Bin struct {
	Lo    float64 `json:"lo"`
	Hi    float64 `json:"hi"`
	Label string  `json:"label"`
	Count int     `json:"count"`
}

// BinFloats counts the finite values of xs into n equal-width bins
// spanning [min, max]. The last bin is closed on the right so max is
// counted. A sample with a single distinct value is widened on each side.
// NaN and ±Inf are not binned; with no finite value the result is nil.
func BinFloats(xs []float64, n int) []Bin {
	if n <= 0 {
		n = DefaultBins
	}

	sorted := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) && !math.IsInf(x, 0) {
			sorted = append(sorted, x)
		}
	}
	if len(sorted) == 0 {
		return nil
	}
	sort.Float64s(sorted)

	lo, hi := sorted[0], sorted[len(sorted)-1]
	if lo == hi {
		pad := math.Max(1, math.Abs(lo)*1e-9)
		lo = math.Max(lo-pad, -math.MaxFloat64)
		hi = math.Min(hi+pad, math.MaxFloat64)
	}

	span := hi - lo
	edges := make([]float64, n+1)
	for i := range edges {
		t := float64(i) / float64(n)
		if math.IsInf(span, 0) {
			// Range wider than MaxFloat64: interpolate without forming it.
			edges[i] = lo*(1-t) + hi*t
		} else {
			edges[i] = math.Min(lo+t*span, hi)
		}
	}
	edges[0], edges[n] = lo, hi

	dividers := make([]float64, len(edges))
	copy(dividers, edges)
	// stat.Histogram treats the last divider as exclusive.
	dividers[n] = math.Nextafter(hi, math.Inf(1))

	counts := stat.Histogram(nil, dividers, sorted, nil)

	bins := make([]Bin, n)
	for i := range bins {
		bins[i] = Bin{
			Lo:    edges[i],
			Hi:    edges[i+1],
			Label: fmt.Sprintf("%.4g–%.4g", edges[i], edges[i+1]),
			Count: int(counts[i]),
		}
	}
	return bins
}

// BinCategories counts each distinct label, in first-seen order.
func BinCategories(labels []string) []Bin {
	index := make(map[string]int)
	var bins []Bin
	for _, l := range labels {
		i, ok := index[l]
		if !ok {
			i = len(bins)
			index[l] = i
			bins = append(bins, Bin{Label: l})
		}
		bins[i].Count++
	}
	return bins
}
