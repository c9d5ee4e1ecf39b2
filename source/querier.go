// Package source fetches datasets for the dashboard: the Querier
// collaborator, SQL dialects, concrete database queriers and a TTL cache.
package source

import (
	"context"

	"github.com/pkg/errors"

	"github.com/spektr-org/statboard/dataset"
)

// RowLimit caps every table fetch.
const RowLimit = 20

// Querier runs a query and returns its result set as a Dataset.
type Querier interface {
	Query(ctx context.Context, query string) (*dataset.Dataset, error)
}

// FetchTop fetches the first RowLimit rows of table. table must come from
// the configured allow-list; dialects interpolate it as is.
func FetchTop(ctx context.Context, q Querier, d Dialect, table string) (*dataset.Dataset, error) {
	query := d.TopQuery(table, RowLimit)
	ds, err := q.Query(ctx, query)
	if err != nil {
		return nil, errors.Wrapf(err, "fetch table %s", table)
	}
	return ds, nil
}
