package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/spektr-org/statboard/dataset"
)

// ============================================================================
// EXECUTOR — Request dispatcher
// ============================================================================
// Entry point: Execute(ctx, req, ds, opts...)
//
// Kinds:
//   table       → TableRenderer.Render   (needs WithTableRenderer)
//   histogram   → BuildHistogram
//   summary     → ComputeSummary + BuildSummaryTable
//   regression  → BuildRegression
//
// Only the table kind touches the database. Everything else is computed
// locally over ds.
// ============================================================================

// Request kinds.
const (
	RequestTable      = "table"
	RequestHistogram  = "histogram"
	RequestSummary    = "summary"
	RequestRegression = "regression"
)

var (
	// ErrUnknownKind is returned for a Request.Kind Execute does not handle.
	ErrUnknownKind = errors.New("unknown request kind")
	// ErrNoTableRenderer is returned for table requests without WithTableRenderer.
	ErrNoTableRenderer = errors.New("no table renderer configured")
)

// IndexError reports a table index outside the configured list.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("table index %d out of range [0, %d)", e.Index, e.Len)
}

// Request selects one operation and its inputs. Unused fields are ignored.
type Request struct {
	Kind    string   `json:"kind"`
	Table   *int     `json:"table,omitempty"`
	Columns []string `json:"columns,omitempty"`
	Column  string   `json:"column,omitempty"`
	X       string   `json:"x,omitempty"`
	Y       string   `json:"y,omitempty"`
}

// Execute runs req against ds and returns a render-ready Result.
// A nil ds is treated as an empty dataset.
func Execute(ctx context.Context, req Request, ds *dataset.Dataset, opts ...Option) (*Result, error) {
	cfg := applyOptions(opts)
	if ds == nil {
		ds = dataset.Empty()
	}

	cfg.Logger.Infof("🔧 Statboard: kind=%s rows=%d column=%q x=%q y=%q",
		req.Kind, ds.Len(), req.Column, req.X, req.Y)

	res := &Result{Success: true, Type: req.Kind}

	switch req.Kind {
	case RequestTable:
		if cfg.Tables == nil {
			return nil, ErrNoTableRenderer
		}
		fig, err := cfg.Tables.Render(ctx, req.Table, req.Columns)
		if err != nil {
			return nil, err
		}
		res.Figure = fig

	case RequestHistogram:
		fig, err := BuildHistogram(ds, req.Column)
		if err != nil {
			return nil, err
		}
		res.Figure = fig

	case RequestSummary:
		s, err := ComputeSummary(ds, req.Column)
		if err != nil {
			return nil, err
		}
		res.Summary = s
		res.SummaryTable = BuildSummaryTable(s)

	case RequestRegression:
		fig, reg, err := BuildRegression(ds, req.X, req.Y)
		if err != nil {
			return nil, err
		}
		res.Figure = fig
		res.Regression = reg
		if reg != nil {
			cfg.Logger.Infof("📈 Statboard: slope=%.4f intercept=%.4f r²=%.4f n=%d",
				reg.Slope, reg.Intercept, reg.RSquared, reg.N)
		}

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, req.Kind)
	}

	return res, nil
}
