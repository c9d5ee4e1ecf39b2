package engine

import (
	"github.com/spektr-org/statboard/dataset"
)

// ============================================================================
// TABLE BUILDER — Data table figures and the summary statistics table
// ============================================================================
// BuildDataTable   Dataset → plotly table trace (header + column-major cells)
// BuildSummaryTable SummaryStatistics → Dash-style div/h4/table element
// ============================================================================

// BuildDataTable describes ds as a table figure. With columns set, only
// those columns are shown, in the order given.
func BuildDataTable(ds *dataset.Dataset, columns []string) (*Figure, error) {
	if len(columns) > 0 {
		projected, err := ds.Select(columns)
		if err != nil {
			return nil, err
		}
		ds = projected
	}

	names := ds.Columns()
	cells := make([][]any, len(names))
	for i, name := range names {
		values, err := ds.Column(name)
		if err != nil {
			return nil, err
		}
		cells[i] = plotValues(values)
	}

	return &Figure{
		Kind: KindTable,
		Data: []Trace{{
			Type:   "table",
			Header: &TableHeader{Values: names, Align: "left"},
			Cells:  &TableCells{Values: cells, Align: "left"},
		}},
		Layout: Layout{
			PaperBgColor: PaperBackground,
			Margin:       &Margin{},
			Height:       TableHeight,
		},
	}, nil
}

// BuildSummaryTable lays out summary statistics as a heading and a
// two-column table. A nil summary gives a nil element.
func BuildSummaryTable(s *SummaryStatistics) *Element {
	if s == nil {
		return nil
	}

	headRow := &Element{Tag: "tr"}
	for _, col := range s.Columns {
		headRow.Children = append(headRow.Children, &Element{Tag: "th", Text: col})
	}

	body := &Element{Tag: "tbody"}
	for _, row := range s.Data {
		body.Children = append(body.Children, &Element{
			Tag: "tr",
			Children: []*Element{
				{Tag: "td", Text: row.Metric},
				{Tag: "td", Text: row.FormattedValue()},
			},
		})
	}

	return &Element{
		Tag: "div",
		Children: []*Element{
			{
				Tag:  "h4",
				Text: "Summary Statistics",
				Style: map[string]string{
					"textAlign":    "center",
					"fontSize":     "24px",
					"marginBottom": "10px",
				},
			},
			{
				Tag: "table",
				Style: map[string]string{
					"width":           "70%",
					"margin":          "auto",
					"borderCollapse":  "collapse",
					"borderRadius":    "10px",
					"overflow":        "hidden",
					"backgroundColor": "#f9f9f9",
				},
				Children: []*Element{
					{Tag: "thead", Children: []*Element{headRow}},
					body,
				},
			},
		},
	}
}
