package engine

import (
	"context"

	"go.uber.org/zap"

	"github.com/spektr-org/statboard/dataset"
	"github.com/spektr-org/statboard/source"
)

// ============================================================================
// TABLE RENDERER — Configured table list → data table figure
// ============================================================================
// Index → table name (allow-list) → top rows via Querier → BuildDataTable.
// Out-of-range selections and failed fetches both degrade to an empty
// table placeholder. Fetch failures are logged, never returned.
// ============================================================================

// TableRenderer renders one of a fixed list of tables.
type TableRenderer struct {
	tables  []string
	querier source.Querier
	dialect source.Dialect
	logger  *zap.SugaredLogger
}

// NewTableRenderer builds a renderer over the given table allow-list.
// Only WithLogger is meaningful here.
func NewTableRenderer(tables []string, q source.Querier, d source.Dialect, opts ...Option) *TableRenderer {
	cfg := applyOptions(opts)
	return &TableRenderer{
		tables:  append([]string(nil), tables...),
		querier: q,
		dialect: d,
		logger:  cfg.Logger,
	}
}

// Tables returns the configured table names in order.
func (r *TableRenderer) Tables() []string {
	return append([]string(nil), r.tables...)
}

// Table resolves an index; ok is false for nil or out-of-range indices.
func (r *TableRenderer) Table(index *int) (string, bool) {
	if index == nil || *index < 0 || *index >= len(r.tables) {
		return "", false
	}
	return r.tables[*index], true
}

// Fetch returns the top rows of the table at index.
func (r *TableRenderer) Fetch(ctx context.Context, index int) (*dataset.Dataset, error) {
	table, ok := r.Table(&index)
	if !ok {
		return nil, &IndexError{Index: index, Len: len(r.tables)}
	}
	return source.FetchTop(ctx, r.querier, r.dialect, table)
}

// Render describes the selected table as a figure, projected to columns
// when given. Unknown projected columns are an error.
func (r *TableRenderer) Render(ctx context.Context, index *int, columns []string) (*Figure, error) {
	table, ok := r.Table(index)
	if !ok {
		return emptyFigure(KindTable), nil
	}

	ds, err := r.Fetch(ctx, *index)
	if err != nil {
		r.logger.Warnw("⚠️ Statboard: table fetch failed", "table", table, "error", err)
		return emptyFigure(KindTable), nil
	}

	r.logger.Debugf("📋 Statboard: %s returned %d rows", table, ds.Len())
	return BuildDataTable(ds, columns)
}
