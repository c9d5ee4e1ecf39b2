// Package render turns engine output into standalone artifacts: PNG images
// of histogram and regression figures, HTML for the summary table.
package render

import (
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/gonum/floats"

	"github.com/spektr-org/statboard/dataset"
	"github.com/spektr-org/statboard/engine"
)

// ============================================================================
// PNG — go-chart rendering of figures
// ============================================================================
// histogram → BarChart over the figure's precomputed bins
// scatter   → Chart with a points series and the fitted line, plus legend
// table     → unsupported (tables are rendered by the dashboard)
// ============================================================================

// DefaultWidth is the image width in pixels. Heights come from the figure.
const DefaultWidth = 1000

var (
	// ErrEmptyFigure is returned for placeholders with nothing to draw.
	ErrEmptyFigure = errors.New("figure has no data")
	// ErrUnsupportedKind is returned for figure kinds with no PNG form.
	ErrUnsupportedKind = errors.New("figure kind cannot be rendered as PNG")
)

// PNG draws fig to w.
func PNG(w io.Writer, fig *engine.Figure) error {
	if fig.IsEmpty() {
		return ErrEmptyFigure
	}
	switch fig.Kind {
	case engine.KindHistogram:
		return histogramPNG(w, fig)
	case engine.KindScatter:
		return scatterPNG(w, fig)
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedKind, fig.Kind)
}

func histogramPNG(w io.Writer, fig *engine.Figure) error {
	bins := fig.Data[0].Bins
	if len(bins) == 0 {
		return ErrEmptyFigure
	}

	bars := make([]chart.Value, len(bins))
	maxCount := 0
	for i, b := range bins {
		bars[i] = chart.Value{Value: float64(b.Count), Label: b.Label}
		if b.Count > maxCount {
			maxCount = b.Count
		}
	}

	barWidth := DefaultWidth * 3 / 4 / (len(bars) + 1)
	if barWidth < 1 {
		barWidth = 1
	}

	bc := chart.BarChart{
		Title:      plainTitle(fig.Layout.Title),
		Width:      DefaultWidth,
		Height:     heightOf(fig),
		BarWidth:   barWidth,
		BarSpacing: 4,
		Background: chart.Style{FillColor: background(fig), Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		Bars:       bars,

		// counts start at zero; a fixed range also keeps equal counts drawable
		UseBaseValue: true,
		BaseValue:    0,
		YAxis:        chart.YAxis{Range: &chart.ContinuousRange{Min: 0, Max: float64(maxCount) * 1.1}},
	}
	return bc.Render(chart.PNG, w)
}

func scatterPNG(w io.Writer, fig *engine.Figure) error {
	var (
		series     []chart.Series
		yMin, yMax = math.Inf(1), math.Inf(-1)
	)
	for _, tr := range fig.Data {
		xs, err := toFloats(tr.X)
		if err != nil {
			return err
		}
		ys, err := toFloats(tr.Y)
		if err != nil {
			return err
		}
		if len(ys) > 0 {
			yMin = math.Min(yMin, floats.Min(ys))
			yMax = math.Max(yMax, floats.Max(ys))
		}

		if tr.Mode == "lines" {
			color := chart.ColorRed
			if tr.Line != nil && tr.Line.Color != "" && tr.Line.Color != "red" {
				color = drawing.ColorFromHex(strings.TrimPrefix(tr.Line.Color, "#"))
			}
			series = append(series, chart.ContinuousSeries{
				Name:    tr.Name,
				XValues: xs,
				YValues: ys,
				Style:   chart.Style{StrokeColor: color, StrokeWidth: 2},
			})
			continue
		}

		name := tr.Name
		if name == "" {
			name = "Observations"
		}
		series = append(series, chart.ContinuousSeries{
			Name:    name,
			XValues: xs,
			YValues: ys,
			Style:   pointStyle(chart.ColorBlue),
		})
	}

	ch := chart.Chart{
		Title:      plainTitle(fig.Layout.Title),
		Width:      DefaultWidth,
		Height:     heightOf(fig),
		Background: chart.Style{FillColor: background(fig), Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		XAxis:      chart.XAxis{Name: axisName(fig.Layout.XAxis)},
		YAxis:      chart.YAxis{Name: axisName(fig.Layout.YAxis)},
		Series:     series,
	}
	// go-chart rejects a zero-height range; pad flat data
	if yMin == yMax {
		ch.YAxis.Range = &chart.ContinuousRange{Min: yMin - 1, Max: yMax + 1}
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch.Render(chart.PNG, w)
}

// pointStyle returns a style that renders points only (no connecting line).
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeColor: drawing.ColorTransparent,
		DotWidth:    4,
		DotColor:    col,
	}
}

// ============================================================================
// HELPERS
// ============================================================================

var markupTag = regexp.MustCompile(`<[^>]*>`)

// plainTitle drops plotly markup: the <br> subtitle goes in parentheses.
func plainTitle(t *engine.Title) string {
	if t == nil {
		return ""
	}
	parts := strings.SplitN(t.Text, "<br>", 2)
	title := strings.TrimSpace(markupTag.ReplaceAllString(parts[0], ""))
	if len(parts) == 2 {
		if sub := strings.TrimSpace(markupTag.ReplaceAllString(parts[1], "")); sub != "" {
			title += " (" + sub + ")"
		}
	}
	return title
}

func axisName(a *engine.Axis) string {
	if a == nil {
		return ""
	}
	return a.Title.Text
}

func heightOf(fig *engine.Figure) int {
	if fig.Layout.Height > 0 {
		return fig.Layout.Height
	}
	return engine.HistogramHeight
}

func background(fig *engine.Figure) drawing.Color {
	bg := fig.Layout.PaperBgColor
	if bg == "" {
		bg = engine.PaperBackground
	}
	return drawing.ColorFromHex(strings.TrimPrefix(bg, "#"))
}

func toFloats(values []any) ([]float64, error) {
	out := make([]float64, len(values))
	for i, v := range values {
		f, ok := dataset.ToFloat(v)
		if !ok {
			return nil, fmt.Errorf("point %d: %v is not numeric", i, v)
		}
		out[i] = f
	}
	return out, nil
}
