package source

import (
	"io"
	"time"

	"github.com/pkg/errors"
)

// Connection bundles a Querier with the dialect that builds its queries.
type Connection struct {
	Querier Querier
	Dialect Dialect
	closer  io.Closer
}

// Open connects to driver at dsn. A positive cacheTTL puts a Cached
// querier in front of the database.
func Open(driver, dsn string, cacheTTL time.Duration) (*Connection, error) {
	dialect, err := DialectFor(driver)
	if err != nil {
		return nil, err
	}
	if dsn == "" {
		return nil, errors.Errorf("no DSN configured for %s", dialect.Name())
	}

	var (
		q      Querier
		closer io.Closer
	)
	switch dialect {
	case MSSQL:
		db, err := OpenDB(DriverSQLServer, dsn)
		if err != nil {
			return nil, err
		}
		q, closer = db, db
	case SQLiteDialect:
		lite, err := OpenSQLite(dsn)
		if err != nil {
			return nil, err
		}
		q, closer = lite, lite
	}

	if cacheTTL > 0 {
		q = NewCached(q, cacheTTL)
	}
	return &Connection{Querier: q, Dialect: dialect, closer: closer}, nil
}

// Close releases the underlying database handle.
func (c *Connection) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer.Close()
}
