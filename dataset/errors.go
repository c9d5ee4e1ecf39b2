package dataset

import (
	"errors"
	"fmt"
	"strings"
)

// ErrColumnNotFound is matched (errors.Is) by every *ColumnNotFoundError.
var ErrColumnNotFound = errors.New("column not found")

// ErrNotNumeric is matched (errors.Is) by every *NotNumericError.
var ErrNotNumeric = errors.New("column is not numeric")

// ColumnNotFoundError names the selected columns missing from a dataset.
type ColumnNotFoundError struct {
	Columns []string
}

func (e *ColumnNotFoundError) Error() string {
	if len(e.Columns) == 1 {
		return fmt.Sprintf("column '%s' not found in data frame", e.Columns[0])
	}
	quoted := make([]string, len(e.Columns))
	for i, c := range e.Columns {
		quoted[i] = "'" + c + "'"
	}
	return fmt.Sprintf("columns %s not found in data frame", strings.Join(quoted, ", "))
}

func (e *ColumnNotFoundError) Is(target error) bool { return target == ErrColumnNotFound }

// NotNumericError reports the first non-numeric value met in a column
// that a statistic needs as numbers.
type NotNumericError struct {
	Column string
	Row    int
	Value  any
}

func (e *NotNumericError) Error() string {
	return fmt.Sprintf("column '%s' is not numeric: row %d holds %T %q", e.Column, e.Row, e.Value, Format(e.Value))
}

func (e *NotNumericError) Is(target error) bool { return target == ErrNotNumeric }
