package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/statboard/dataset"
	"github.com/spektr-org/statboard/engine"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

func sample() *dataset.Dataset {
	return dataset.MustNew([]string{"x", "y", "label"}, [][]any{
		{1, 2.0, "a"},
		{2, 4.5, "b"},
		{3, 5.5, "a"},
		{4, 8.0, "c"},
	})
}

// ============================================================================
// PNG
// ============================================================================

func TestPNGHistogram(t *testing.T) {
	fig, err := engine.BuildHistogram(sample(), "y")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, PNG(&buf, fig))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngSignature))
}

func TestPNGCategoricalHistogram(t *testing.T) {
	fig, err := engine.BuildHistogram(sample(), "label")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, PNG(&buf, fig))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngSignature))
}

func TestPNGRegression(t *testing.T) {
	fig, _, err := engine.BuildRegression(sample(), "x", "y")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, PNG(&buf, fig))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngSignature))
}

func TestPNGRejects(t *testing.T) {
	empty, err := engine.BuildHistogram(sample(), "")
	require.NoError(t, err)
	assert.ErrorIs(t, PNG(&bytes.Buffer{}, empty), ErrEmptyFigure)

	table, err := engine.BuildDataTable(sample(), nil)
	require.NoError(t, err)
	err = PNG(&bytes.Buffer{}, table)
	assert.True(t, errors.Is(err, ErrUnsupportedKind))
}

func TestPlainTitle(t *testing.T) {
	got := plainTitle(&engine.Title{Text: "Linear Regression: y vs x<br><sub>y = 2.00x + 1.00 | R² = 1.000</sub>"})
	assert.Equal(t, "Linear Regression: y vs x (y = 2.00x + 1.00 | R² = 1.000)", got)
	assert.Equal(t, "Distribution of y", plainTitle(&engine.Title{Text: "Distribution of y"}))
	assert.Empty(t, plainTitle(nil))
}

// ============================================================================
// HTML
// ============================================================================

func TestSummaryHTML(t *testing.T) {
	s, err := engine.ComputeSummary(sample(), "y")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, SummaryHTML(&buf, engine.BuildSummaryTable(s)))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "<div><h4 style=\"font-size: 24px; margin-bottom: 10px; text-align: center\">Summary Statistics</h4>"))
	assert.Contains(t, out, "border-collapse: collapse")
	assert.Contains(t, out, "<thead><tr><th>Metric</th><th>Value</th></tr></thead>")
	assert.Contains(t, out, "<tr><td>Mean</td><td>5</td></tr>")
	assert.Contains(t, out, "<tr><td>Number of observations</td><td>4</td></tr>")
}

func TestSummaryHTMLEscapes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, SummaryHTML(&buf, &engine.Element{Tag: "td", Text: "a<b"}))
	assert.Equal(t, "<td>a&lt;b</td>", buf.String())

	buf.Reset()
	require.NoError(t, SummaryHTML(&buf, nil))
	assert.Empty(t, buf.String())
}

func TestKebab(t *testing.T) {
	assert.Equal(t, "background-color", kebab("backgroundColor"))
	assert.Equal(t, "width", kebab("width"))
}
