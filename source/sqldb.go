package source

import (
	"context"
	"database/sql"
	"strconv"

	_ "github.com/microsoft/go-mssqldb" // registers the "sqlserver" driver
	"github.com/pkg/errors"

	"github.com/spektr-org/statboard/dataset"
)

// DB is a Querier over any database/sql connection pool.
type DB struct {
	db *sql.DB
}

// OpenDB opens a database/sql pool for driverName.
func OpenDB(driverName, dsn string) (*DB, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", driverName)
	}
	return &DB{db: db}, nil
}

// Query runs query and scans every row.
func (d *DB) Query(ctx context.Context, query string) (*dataset.Dataset, error) {
	rows, err := d.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Wrapf(err, "query %q", query)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, errors.Wrap(err, "read columns")
	}

	var out [][]any
	for rows.Next() {
		cells := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range cells {
			ptrs[i] = &cells[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, errors.Wrap(err, "scan row")
		}
		for i, c := range cells {
			cells[i] = fromDriver(c)
		}
		out = append(out, cells)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate rows")
	}

	return dataset.New(columns, out)
}

// Close closes the pool.
func (d *DB) Close() error { return d.db.Close() }

// fromDriver turns driver bytes (DECIMAL, MONEY, ...) into numbers where
// they parse, text otherwise.
func fromDriver(v any) any {
	b, ok := v.([]byte)
	if !ok {
		return v
	}
	s := string(b)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
