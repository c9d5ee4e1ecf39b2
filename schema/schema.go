package schema

// ============================================================================
// SCHEMA — Describes the columns of a dataset for the dashboard pickers
// ============================================================================
// Auto-discovered from a loaded Dataset. The histogram, summary and
// regression pickers offer numeric columns; the table picker offers all.
// ============================================================================

// Kind classifies a column by the values it holds.
type Kind string

const (
	KindNumeric     Kind = "numeric"     // every non-missing value is a number
	KindCategorical Kind = "categorical" // at least one non-numeric value
	KindEmpty       Kind = "empty"       // all values missing
)

// Config describes the complete shape of a dataset.
type Config struct {
	Name    string       `json:"name"`
	Rows    int          `json:"rows"`
	Columns []ColumnMeta `json:"columns"`

	// Auto-discovery metadata
	DiscoveredAt string `json:"discoveredAt,omitempty"`
}

// ColumnMeta describes one column.
type ColumnMeta struct {
	Name            string   `json:"name"`
	DisplayName     string   `json:"displayName"`
	Kind            Kind     `json:"kind"`
	Missing         int      `json:"missing"`
	Distinct        int      `json:"distinct"`
	SampleValues    []string `json:"sampleValues"`
	CardinalityHint string   `json:"cardinalityHint,omitempty"` // "low", "medium", "high"
	IsTemporal      bool     `json:"isTemporal,omitempty"`
	TemporalFormat  string   `json:"temporalFormat,omitempty"`
	IsIdentifier    bool     `json:"isIdentifier,omitempty"` // unique per row
}

// ColumnNames returns every column name in dataset order.
func (c Config) ColumnNames() []string {
	names := make([]string, len(c.Columns))
	for i, col := range c.Columns {
		names[i] = col.Name
	}
	return names
}

// NumericColumns returns the names of numeric columns in dataset order.
func (c Config) NumericColumns() []string {
	return c.namesOf(KindNumeric)
}

// CategoricalColumns returns the names of categorical columns.
func (c Config) CategoricalColumns() []string {
	return c.namesOf(KindCategorical)
}

// Column looks up a column by name.
func (c Config) Column(name string) (ColumnMeta, bool) {
	for _, col := range c.Columns {
		if col.Name == name {
			return col, true
		}
	}
	return ColumnMeta{}, false
}

func (c Config) namesOf(kind Kind) []string {
	var names []string
	for _, col := range c.Columns {
		if col.Kind == kind {
			names = append(names, col.Name)
		}
	}
	return names
}
