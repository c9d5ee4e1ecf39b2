package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spektr-org/statboard/dataset"
	"github.com/spektr-org/statboard/engine"
	"github.com/spektr-org/statboard/render"
)

// writeResult renders res in format.
func writeResult(w io.Writer, res *engine.Result, format string) error {
	switch format {
	case "json", "pretty":
		return writeJSON(w, res, format)
	case "csv":
		return writeCSV(w, res)
	case "png":
		if res.Figure == nil {
			return fmt.Errorf("%s has no figure to draw", res.Type)
		}
		return render.PNG(w, res.Figure)
	case "html":
		if res.SummaryTable == nil {
			return fmt.Errorf("html output is only available for summary")
		}
		return render.SummaryHTML(w, res.SummaryTable)
	}
	return fmt.Errorf("unknown format %q", format)
}

// ============================================================================
// CSV OUTPUT — Figure data and statistics, ready for Sheets/Excel
// ============================================================================

func writeCSV(w io.Writer, res *engine.Result) error {
	cw := csv.NewWriter(w)

	switch {
	case res.Summary != nil:
		cw.Write(res.Summary.Columns)
		for _, row := range res.Summary.Data {
			cw.Write([]string{row.Metric, row.FormattedValue()})
		}

	case res.Figure == nil || res.Figure.IsEmpty():
		cw.Write([]string{"Result", "No data"})

	case res.Figure.Kind == engine.KindTable:
		writeTableCSV(cw, res.Figure.Data[0])

	case res.Figure.Kind == engine.KindHistogram:
		cw.Write([]string{"Bin", "Count"})
		for _, b := range res.Figure.Data[0].Bins {
			cw.Write([]string{b.Label, strconv.Itoa(b.Count)})
		}

	case res.Figure.Kind == engine.KindScatter:
		points := res.Figure.Data[0]
		cw.Write([]string{axisTitle(res.Figure.Layout.XAxis, "x"), axisTitle(res.Figure.Layout.YAxis, "y")})
		for i := range points.X {
			cw.Write([]string{dataset.Format(points.X[i]), dataset.Format(points.Y[i])})
		}
	}

	cw.Flush()
	return cw.Error()
}

// writeTableCSV transposes column-major table cells back into rows.
func writeTableCSV(cw *csv.Writer, tr engine.Trace) {
	if tr.Header == nil || tr.Cells == nil {
		return
	}
	cw.Write(tr.Header.Values)
	rows := 0
	if len(tr.Cells.Values) > 0 {
		rows = len(tr.Cells.Values[0])
	}
	for i := 0; i < rows; i++ {
		row := make([]string, len(tr.Cells.Values))
		for j, col := range tr.Cells.Values {
			row[j] = dataset.Format(col[i])
		}
		cw.Write(row)
	}
}

func axisTitle(a *engine.Axis, fallback string) string {
	if a == nil || a.Title.Text == "" {
		return fallback
	}
	return a.Title.Text
}

// ============================================================================
// JSON OUTPUT
// ============================================================================

func writeJSON(w io.Writer, v interface{}, format string) error {
	var out []byte
	var err error

	if format == "pretty" {
		out, err = json.MarshalIndent(v, "", "  ")
	} else {
		out, err = json.Marshal(v)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
