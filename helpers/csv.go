package helpers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spektr-org/statboard/dataset"
)

// ============================================================================
// CSV HELPER — Parses CSV data into a dataset.Dataset
// ============================================================================
// Consumer reads the CSV from wherever it lives (file, stdin, export).
// This helper turns the raw bytes into typed cells: ints, floats, bools,
// text, and nil for the usual missing-value markers.
// ============================================================================

// missingMarkers are cell values read as missing (case-insensitive).
var missingMarkers = map[string]bool{
	"":     true,
	"na":   true,
	"n/a":  true,
	"nan":  true,
	"null": true,
	"none": true,
}

// ParseCSV parses CSV bytes with a header row into a Dataset.
func ParseCSV(data []byte) (*dataset.Dataset, error) {
	return ReadCSV(bytes.NewReader(data))
}

// ReadCSV reads a header row and all records from r. Rows of the wrong
// width are skipped.
func ReadCSV(r io.Reader) (*dataset.Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	// Read header
	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}
	columns := make([]string, len(headers))
	for i, h := range headers {
		columns[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	// Read rows
	var rows [][]any
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil || len(record) != len(columns) {
			continue // skip malformed rows
		}

		row := make([]any, len(record))
		for i, val := range record {
			row[i] = ParseCell(val)
		}
		rows = append(rows, row)
	}

	return dataset.New(columns, rows)
}

// ParseCell types one CSV cell: missing marker → nil, then int64,
// float64, bool, and text as the fallback.
func ParseCell(s string) any {
	s = strings.TrimSpace(s)
	if missingMarkers[strings.ToLower(s)] {
		return nil
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	}
	return s
}

// WriteCSV writes ds as CSV with a header row. Missing cells are empty.
func WriteCSV(w io.Writer, ds *dataset.Dataset) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ds.Columns()); err != nil {
		return err
	}
	for i := 0; i < ds.Len(); i++ {
		row := ds.Row(i)
		rec := make([]string, len(row))
		for j, v := range row {
			rec[j] = dataset.Format(v)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
