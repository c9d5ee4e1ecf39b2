package dataset

// ============================================================================
// VIEW — Row subset of a Dataset (zero-copy)
// ============================================================================
// Holds indices into the parent dataset; no cell is copied until a caller
// asks for a column slice. Produced by Dataset.DropMissing and Dataset.All.
// ============================================================================

// View is a filtered subset of a parent Dataset.
type View struct {
	parent  *Dataset
	indices []int
}

// Len is the number of rows in the view.
func (v *View) Len() int { return len(v.indices) }

// Dataset returns the parent dataset.
func (v *View) Dataset() *Dataset { return v.parent }

// Value returns the cell at view row i of column name.
func (v *View) Value(i int, name string) any {
	if i < 0 || i >= len(v.indices) {
		return nil
	}
	return v.parent.Value(v.indices[i], name)
}

// Values returns the cells of one column, in view order.
func (v *View) Values(name string) []any {
	out := make([]any, len(v.indices))
	for i, r := range v.indices {
		out[i] = v.parent.Value(r, name)
	}
	return out
}

// Floats returns one column as float64. The first non-numeric value yields
// a *NotNumericError carrying its parent row number.
func (v *View) Floats(name string) ([]float64, error) {
	if err := v.parent.Require(name); err != nil {
		return nil, err
	}
	out := make([]float64, len(v.indices))
	for i, r := range v.indices {
		cell := v.parent.Value(r, name)
		f, ok := ToFloat(cell)
		if !ok {
			return nil, &NotNumericError{Column: name, Row: r, Value: cell}
		}
		out[i] = f
	}
	return out, nil
}
