package source

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/spektr-org/statboard/dataset"
)

// SQLite is a Querier over a single zombiezen SQLite connection.
// Queries are serialized on the connection.
type SQLite struct {
	mu   sync.Mutex
	conn *sqlite.Conn
}

// OpenSQLite opens (creating if needed) the database at path.
// ":memory:" gives a private in-memory database.
func OpenSQLite(path string) (*SQLite, error) {
	conn, err := sqlite.OpenConn(path, sqlite.OpenReadWrite, sqlite.OpenCreate)
	if err != nil {
		return nil, errors.Wrapf(err, "open sqlite %s", path)
	}
	return &SQLite{conn: conn}, nil
}

// ExecScript runs a semicolon-separated script, e.g. to seed fixtures.
func (s *SQLite) ExecScript(script string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return errors.Wrap(sqlitex.ExecuteScript(s.conn, script, nil), "exec script")
}

// Query runs query and maps each cell by its SQLite storage class.
func (s *SQLite) Query(ctx context.Context, query string) (*dataset.Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.conn.SetInterrupt(s.conn.SetInterrupt(ctx.Done()))

	stmt, _, err := s.conn.PrepareTransient(query)
	if err != nil {
		return nil, errors.Wrapf(err, "prepare %q", query)
	}
	defer stmt.Finalize()

	n := stmt.ColumnCount()
	columns := make([]string, n)
	for i := range columns {
		columns[i] = stmt.ColumnName(i)
	}

	var rows [][]any
	for {
		hasRow, err := stmt.Step()
		if err != nil {
			return nil, errors.Wrapf(err, "step %q", query)
		}
		if !hasRow {
			break
		}
		row := make([]any, n)
		for i := range row {
			switch stmt.ColumnType(i) {
			case sqlite.TypeInteger:
				row[i] = stmt.ColumnInt64(i)
			case sqlite.TypeFloat:
				row[i] = stmt.ColumnFloat(i)
			case sqlite.TypeText, sqlite.TypeBlob:
				row[i] = stmt.ColumnText(i)
			default:
				row[i] = nil
			}
		}
		rows = append(rows, row)
	}

	return dataset.New(columns, rows)
}

// Close closes the connection.
func (s *SQLite) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.Close()
}
