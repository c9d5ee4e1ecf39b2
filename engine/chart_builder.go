package engine

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/spektr-org/statboard/dataset"
	"github.com/spektr-org/statboard/stats"
)

// ============================================================================
// CHART BUILDER — Histogram and regression figures from a Dataset
// ============================================================================
// Both builders validate the selection against the dataset's column set,
// drop rows missing the selected column(s), then describe the chart.
// No selection → empty placeholder; unknown column → ColumnNotFoundError.
// ============================================================================

// BuildHistogram describes the distribution of one column.
func BuildHistogram(ds *dataset.Dataset, column string) (*Figure, error) {
	if column == "" {
		return emptyFigure(KindHistogram), nil
	}
	if err := ds.Require(column); err != nil {
		return nil, err
	}

	view, err := ds.DropMissing(column)
	if err != nil {
		return nil, err
	}
	trace := Trace{
		Type: "histogram",
		X:    plotValues(view.Values(column)),
		Bins: binValues(view, column),
	}

	return &Figure{
		Kind: KindHistogram,
		Data: []Trace{trace},
		Layout: Layout{
			Title:        &Title{Text: fmt.Sprintf("Distribution of %s", column)},
			Height:       HistogramHeight,
			PaperBgColor: PaperBackground,
			XAxis:        &Axis{Title: Title{Text: column}},
			YAxis:        &Axis{Title: Title{Text: "count"}},
		},
	}, nil
}

// binValues bins a numeric column into equal-width bars and anything else
// by distinct value.
func binValues(view *dataset.View, column string) []stats.Bin {
	if xs, err := view.Floats(column); err == nil {
		return stats.BinFloats(xs, stats.DefaultBins)
	}
	values := view.Values(column)
	labels := make([]string, len(values))
	for i, v := range values {
		labels[i] = dataset.Format(v)
	}
	return stats.BinCategories(labels)
}

// BuildRegression fits y (yCol) on x (xCol) and describes the scatter with
// the fitted line overlaid. The regression is returned alongside the figure.
func BuildRegression(ds *dataset.Dataset, xCol, yCol string) (*Figure, *stats.Regression, error) {
	if xCol == "" || yCol == "" {
		return emptyFigure(KindScatter), nil, nil
	}
	if err := ds.Require(xCol, yCol); err != nil {
		return nil, nil, err
	}

	view, err := ds.DropMissing(xCol, yCol)
	if err != nil {
		return nil, nil, err
	}
	x, err := view.Floats(xCol)
	if err != nil {
		return nil, nil, err
	}
	y, err := view.Floats(yCol)
	if err != nil {
		return nil, nil, err
	}

	reg, err := stats.LinearRegression(x, y)
	if err != nil {
		return nil, nil, fmt.Errorf("regression of %s on %s: %w", yCol, xCol, err)
	}

	xRange := stats.Linspace(floats.Min(x), floats.Max(x), RegressionPoints)
	yPredicted := reg.Predict(xRange)

	eqText := fmt.Sprintf("y = %.2fx + %.2f", reg.Slope, reg.Intercept)
	r2Text := fmt.Sprintf("R² = %.3f", reg.RSquared)
	title := fmt.Sprintf("Linear Regression: %s vs %s<br><sub>%s | %s</sub>", yCol, xCol, eqText, r2Text)

	fig := &Figure{
		Kind: KindScatter,
		Data: []Trace{
			{
				Type: "scatter",
				Mode: "markers",
				X:    floatsToAny(x),
				Y:    floatsToAny(y),
			},
			{
				Type: "scatter",
				Mode: "lines",
				Name: RegressionLineName,
				X:    floatsToAny(xRange),
				Y:    floatsToAny(yPredicted),
				Line: &Line{Color: RegressionLineColor},
			},
		},
		Layout: Layout{
			Title:        &Title{Text: title},
			Height:       RegressionHeight,
			PaperBgColor: PaperBackground,
			XAxis:        &Axis{Title: Title{Text: xCol}},
			YAxis:        &Axis{Title: Title{Text: yCol}},
			ShowLegend:   boolPtr(true),
		},
	}
	return fig, &reg, nil
}

// ============================================================================
// HELPERS
// ============================================================================

// plotValues copies vs with NaN and ±Inf replaced by nil, which JSON
// carries as null.
func plotValues(vs []any) []any {
	out := make([]any, len(vs))
	for i, v := range vs {
		if f, ok := v.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
			continue
		}
		out[i] = v
	}
	return out
}

func floatsToAny(xs []float64) []any {
	out := make([]any, len(xs))
	for i, x := range xs {
		out[i] = x
	}
	return out
}
