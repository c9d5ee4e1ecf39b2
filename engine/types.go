package engine

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/spektr-org/statboard/stats"
)

// ============================================================================
// STATBOARD ENGINE TYPES — Render-ready chart and statistics descriptions
// ============================================================================
// Figures serialize with plotly's attribute names (paper_bgcolor, xaxis,
// showlegend, ...) so the dashboard hands them to plotly.js unchanged.
// Elements serialize like Dash components: tag, style, children.
// ============================================================================

// Visual constants shared with the dashboard. Must match it exactly.
const (
	PaperBackground  = "#e5ecf6"
	TableHeight      = 700
	HistogramHeight  = 600
	RegressionHeight = 600

	RegressionPoints    = 100
	RegressionLineName  = "Regression Line"
	RegressionLineColor = "red"
)

// Figure kinds.
const (
	KindTable     = "table"
	KindHistogram = "histogram"
	KindScatter   = "scatter"
)

// ============================================================================
// FIGURE
// ============================================================================

// Figure is a chart description rendered by the dashboard.
// A figure with no traces is an empty placeholder of its kind.
type Figure struct {
	Kind   string  `json:"kind"`
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// IsEmpty reports whether f is a placeholder with nothing to draw.
func (f *Figure) IsEmpty() bool { return f == nil || len(f.Data) == 0 }

// emptyFigure returns the placeholder for a kind.
func emptyFigure(kind string) *Figure {
	return &Figure{Kind: kind, Data: []Trace{}}
}

// Trace is one data series of a figure.
type Trace struct {
	Type       string       `json:"type"` // "table", "histogram", "scatter"
	Name       string       `json:"name,omitempty"`
	Mode       string       `json:"mode,omitempty"` // "markers", "lines"
	X          []any        `json:"x,omitempty"`
	Y          []any        `json:"y,omitempty"`
	Line       *Line        `json:"line,omitempty"`
	Header     *TableHeader `json:"header,omitempty"`
	Cells      *TableCells  `json:"cells,omitempty"`
	ShowLegend *bool        `json:"showlegend,omitempty"`

	// Bins are precomputed histogram bars for renderers that do not bin.
	Bins []stats.Bin `json:"-"`
}

// Line styles a line trace.
type Line struct {
	Color string `json:"color"`
}

// TableHeader is the header row of a table trace.
type TableHeader struct {
	Values []string `json:"values"`
	Align  string   `json:"align"`
}

// TableCells holds a table trace's body, one slice per column.
type TableCells struct {
	Values [][]any `json:"values"`
	Align  string  `json:"align"`
}

// Layout is the figure-level styling.
type Layout struct {
	Title        *Title  `json:"title,omitempty"`
	Height       int     `json:"height,omitempty"`
	PaperBgColor string  `json:"paper_bgcolor,omitempty"`
	Margin       *Margin `json:"margin,omitempty"`
	XAxis        *Axis   `json:"xaxis,omitempty"`
	YAxis        *Axis   `json:"yaxis,omitempty"`
	ShowLegend   *bool   `json:"showlegend,omitempty"`
}

// Title is a figure or axis title. Text may carry plotly markup (<br>, <sub>).
type Title struct {
	Text string `json:"text"`
}

// Margin is the plot margin in pixels.
type Margin struct {
	T int `json:"t"`
	L int `json:"l"`
	R int `json:"r"`
	B int `json:"b"`
}

// Axis carries an axis title.
type Axis struct {
	Title Title `json:"title"`
}

func boolPtr(b bool) *bool { return &b }

// ============================================================================
// SUMMARY STATISTICS
// ============================================================================

// Labels of the summary rows, in display order.
const (
	MetricMean   = "Mean"
	MetricMedian = "Median"
	MetricStdDev = "Standard Deviation"
	MetricMin    = "Minimum"
	MetricMax    = "Maximum"
	MetricCount  = "Number of observations"
)

// SummaryStatistics is the six-row statistics table of one column.
type SummaryStatistics struct {
	Column  string    `json:"column"`
	Columns []string  `json:"columns"`
	Data    []StatRow `json:"data"`
}

// StatRow is one (label, value) pair. Count rows hold an integer value.
type StatRow struct {
	Metric string
	Value  float64
	Count  bool
}

// MarshalJSON encodes the row as [label, value]; NaN becomes null.
func (r StatRow) MarshalJSON() ([]byte, error) {
	var v any
	switch {
	case math.IsNaN(r.Value) || math.IsInf(r.Value, 0):
		v = nil
	case r.Count:
		v = int64(r.Value)
	default:
		v = r.Value
	}
	return json.Marshal([]any{r.Metric, v})
}

// FormattedValue renders the value for table cells. A missing statistic
// renders as an empty cell.
func (r StatRow) FormattedValue() string {
	if r.Count {
		return strconv.FormatInt(int64(r.Value), 10)
	}
	if math.IsNaN(r.Value) {
		return ""
	}
	return strconv.FormatFloat(r.Value, 'f', -1, 64)
}

// Get returns the value of a metric by label.
func (s *SummaryStatistics) Get(metric string) (float64, bool) {
	for _, r := range s.Data {
		if r.Metric == metric {
			return r.Value, true
		}
	}
	return 0, false
}

// ============================================================================
// ELEMENT — Dash-style presentational node
// ============================================================================

// Element is an HTML-like node: tag, inline style, text and children.
type Element struct {
	Tag      string            `json:"tag"`
	Style    map[string]string `json:"style,omitempty"`
	Text     string            `json:"text,omitempty"`
	Children []*Element        `json:"children,omitempty"`
}

// ============================================================================
// RESULT — Dispatcher output
// ============================================================================

// Result is the render-ready outcome of Execute.
type Result struct {
	Success bool   `json:"success"`
	Type    string `json:"type"` // request kind

	Figure       *Figure            `json:"figure,omitempty"`
	Summary      *SummaryStatistics `json:"summary,omitempty"`
	SummaryTable *Element           `json:"summaryTable,omitempty"`
	Regression   *stats.Regression  `json:"regression,omitempty"`
}
