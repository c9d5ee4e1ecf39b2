package source

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/spektr-org/statboard/dataset"
)

// Cached wraps a Querier and remembers result sets by query text for a
// fixed TTL. Datasets are immutable, so cached ones are shared as is.
// Failed queries are not cached.
type Cached struct {
	next  Querier
	cache *ttlcache.Cache[string, *dataset.Dataset]
}

// NewCached returns a caching Querier in front of next.
func NewCached(next Querier, ttl time.Duration) *Cached {
	return &Cached{
		next: next,
		cache: ttlcache.New[string, *dataset.Dataset](
			ttlcache.WithTTL[string, *dataset.Dataset](ttl),
		),
	}
}

// Query returns the cached dataset for query, fetching it on a miss.
func (c *Cached) Query(ctx context.Context, query string) (*dataset.Dataset, error) {
	if item := c.cache.Get(query); item != nil {
		return item.Value(), nil
	}
	ds, err := c.next.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	c.cache.Set(query, ds, ttlcache.DefaultTTL)
	return ds, nil
}

// Len is the number of live cache entries.
func (c *Cached) Len() int { return c.cache.Len() }
