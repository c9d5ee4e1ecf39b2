// Package statboard builds the charts and statistics of a table dashboard.
//
// Usage:
//
//	import "github.com/spektr-org/statboard/engine"
//
//	fig, err := engine.BuildHistogram(ds, "revenue")
//	summary, err := engine.ComputeSummary(ds, "revenue")
//	fig, reg, err := engine.BuildRegression(ds, "units", "revenue")
//
//	tables := engine.NewTableRenderer(cfg.Tables(), conn.Querier, conn.Dialect,
//	    engine.WithLogger(logger),
//	)
//	fig, err := tables.Render(ctx, &index, []string{"region", "revenue"})
//
// Figures are plotly-compatible descriptions the dashboard draws as is.
// Datasets come from the source package (SQL Server, SQLite) or from CSV
// via helpers.ReadCSV. Only table rendering touches the database; every
// other builder is a pure function of its dataset.
package statboard
