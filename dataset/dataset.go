// Package dataset holds the immutable, column-ordered table that every
// chart and statistics builder reads from.
package dataset

import (
	"fmt"
)

// ============================================================================
// DATASET — Immutable column-ordered table
// ============================================================================
// Produced by a query collaborator (source package) or a CSV loader, then
// passed by reference into each builder call. Nothing mutates it after New.
//
// The column set is explicit (name → index) so selections are validated
// before any computation runs.
// ============================================================================

// Dataset is an ordered set of named columns with equal-length rows.
type Dataset struct {
	columns []string
	index   map[string]int
	rows    [][]any
}

// New builds a Dataset. Column names must be unique and every row must be
// exactly as wide as the header. Cells are normalized (see Normalize).
func New(columns []string, rows [][]any) (*Dataset, error) {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		if _, dup := index[c]; dup {
			return nil, fmt.Errorf("duplicate column %q", c)
		}
		index[c] = i
	}

	normalized := make([][]any, len(rows))
	for r, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("row %d has %d values, want %d", r, len(row), len(columns))
		}
		out := make([]any, len(row))
		for c, v := range row {
			out[c] = Normalize(v)
		}
		normalized[r] = out
	}

	cols := make([]string, len(columns))
	copy(cols, columns)

	return &Dataset{columns: cols, index: index, rows: normalized}, nil
}

// MustNew is New for fixtures and tests; it panics on invalid input.
func MustNew(columns []string, rows [][]any) *Dataset {
	ds, err := New(columns, rows)
	if err != nil {
		panic(err)
	}
	return ds
}

// FromColumns builds a Dataset from column-major data, keeping the order of names.
func FromColumns(names []string, values map[string][]any) (*Dataset, error) {
	n := -1
	for _, name := range names {
		col, ok := values[name]
		if !ok {
			return nil, fmt.Errorf("no values for column %q", name)
		}
		if n == -1 {
			n = len(col)
		} else if len(col) != n {
			return nil, fmt.Errorf("column %q has %d values, want %d", name, len(col), n)
		}
	}
	if n < 0 {
		n = 0
	}

	rows := make([][]any, n)
	for r := 0; r < n; r++ {
		row := make([]any, len(names))
		for c, name := range names {
			row[c] = values[name][r]
		}
		rows[r] = row
	}
	return New(names, rows)
}

// Empty returns a dataset with no columns and no rows.
func Empty() *Dataset {
	return &Dataset{index: map[string]int{}}
}

// Columns returns a copy of the column names in order.
func (d *Dataset) Columns() []string {
	out := make([]string, len(d.columns))
	copy(out, d.columns)
	return out
}

// Len is the number of rows.
func (d *Dataset) Len() int { return len(d.rows) }

// HasColumn reports whether name is in the column set.
func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.index[name]
	return ok
}

// Require returns a *ColumnNotFoundError listing every name not in the column set.
func (d *Dataset) Require(names ...string) error {
	var missing []string
	for _, n := range names {
		if !d.HasColumn(n) {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		return &ColumnNotFoundError{Columns: missing}
	}
	return nil
}

// Value returns the cell at row i of column name, or nil if either is out of range.
func (d *Dataset) Value(i int, name string) any {
	c, ok := d.index[name]
	if !ok || i < 0 || i >= len(d.rows) {
		return nil
	}
	return d.rows[i][c]
}

// Row returns a copy of row i.
func (d *Dataset) Row(i int) []any {
	out := make([]any, len(d.columns))
	copy(out, d.rows[i])
	return out
}

// Column returns a copy of the values of one column.
func (d *Dataset) Column(name string) ([]any, error) {
	if err := d.Require(name); err != nil {
		return nil, err
	}
	c := d.index[name]
	out := make([]any, len(d.rows))
	for i, row := range d.rows {
		out[i] = row[c]
	}
	return out, nil
}

// Select projects the dataset onto columns, in the requested order.
func (d *Dataset) Select(columns []string) (*Dataset, error) {
	if err := d.Require(columns...); err != nil {
		return nil, err
	}
	rows := make([][]any, len(d.rows))
	for r, row := range d.rows {
		out := make([]any, len(columns))
		for i, name := range columns {
			out[i] = row[d.index[name]]
		}
		rows[r] = out
	}
	return New(columns, rows)
}

// DropMissing returns a view over the rows where none of columns is missing.
func (d *Dataset) DropMissing(columns ...string) (*View, error) {
	if err := d.Require(columns...); err != nil {
		return nil, err
	}
	idx := make([]int, len(columns))
	for i, name := range columns {
		idx[i] = d.index[name]
	}

	keep := make([]int, 0, len(d.rows))
	for r, row := range d.rows {
		ok := true
		for _, c := range idx {
			if IsMissing(row[c]) {
				ok = false
				break
			}
		}
		if ok {
			keep = append(keep, r)
		}
	}
	return &View{parent: d, indices: keep}, nil
}

// All returns a view over every row.
func (d *Dataset) All() *View {
	idx := make([]int, len(d.rows))
	for i := range idx {
		idx[i] = i
	}
	return &View{parent: d, indices: idx}
}
