package source

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/statboard/dataset"
)

// ============================================================================
// DIALECTS
// ============================================================================

func TestMSSQLTopQuery(t *testing.T) {
	assert.Equal(t, "SELECT TOP 20 * FROM [dbo].[Sales]", MSSQL.TopQuery("Sales", RowLimit))
}

func TestSQLiteTopQuery(t *testing.T) {
	assert.Equal(t, `SELECT * FROM "Sales" LIMIT 20`, SQLiteDialect.TopQuery("Sales", RowLimit))
	assert.Equal(t, `SELECT * FROM "a""b" LIMIT 5`, SQLiteDialect.TopQuery(`a"b`, 5))
}

func TestDialectFor(t *testing.T) {
	d, err := DialectFor("SQLServer")
	require.NoError(t, err)
	assert.Equal(t, MSSQL, d)

	d, err = DialectFor("sqlite3")
	require.NoError(t, err)
	assert.Equal(t, SQLiteDialect, d)

	_, err = DialectFor("oracle")
	assert.Error(t, err)
}

// ============================================================================
// FETCH + CACHE
// ============================================================================

type countingQuerier struct {
	calls   int
	queries []string
	fail    error
}

func (c *countingQuerier) Query(_ context.Context, query string) (*dataset.Dataset, error) {
	c.calls++
	c.queries = append(c.queries, query)
	if c.fail != nil {
		return nil, c.fail
	}
	return dataset.MustNew([]string{"q"}, [][]any{{query}}), nil
}

func TestFetchTopBuildsDialectQuery(t *testing.T) {
	q := &countingQuerier{}
	ds, err := FetchTop(context.Background(), q, MSSQL, "Orders")
	require.NoError(t, err)
	assert.Equal(t, []string{"SELECT TOP 20 * FROM [dbo].[Orders]"}, q.queries)
	assert.Equal(t, "SELECT TOP 20 * FROM [dbo].[Orders]", ds.Value(0, "q"))
}

func TestFetchTopWrapsErrors(t *testing.T) {
	boom := errors.New("login failed")
	_, err := FetchTop(context.Background(), &countingQuerier{fail: boom}, MSSQL, "Orders")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "fetch table Orders")
}

func TestCachedQuerier(t *testing.T) {
	inner := &countingQuerier{}
	c := NewCached(inner, time.Hour)
	ctx := context.Background()

	a, err := c.Query(ctx, "SELECT 1")
	require.NoError(t, err)
	b, err := c.Query(ctx, "SELECT 1")
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Equal(t, 1, inner.calls)

	_, err = c.Query(ctx, "SELECT 2")
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
	assert.Equal(t, 2, c.Len())
}

func TestCachedQuerierSkipsFailures(t *testing.T) {
	inner := &countingQuerier{fail: errors.New("down")}
	c := NewCached(inner, time.Hour)

	_, err := c.Query(context.Background(), "SELECT 1")
	require.Error(t, err)
	_, err = c.Query(context.Background(), "SELECT 1")
	require.Error(t, err)
	assert.Equal(t, 2, inner.calls)
	assert.Equal(t, 0, c.Len())
}

// ============================================================================
// SQLITE
// ============================================================================

func TestSQLiteQuery(t *testing.T) {
	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.ExecScript(`
		CREATE TABLE metrics (name TEXT, qty INTEGER, price REAL);
		INSERT INTO metrics VALUES ('a', 1, 2.5);
		INSERT INTO metrics VALUES ('b', NULL, 3.5);
	`))

	ds, err := FetchTop(context.Background(), db, SQLiteDialect, "metrics")
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "qty", "price"}, ds.Columns())
	require.Equal(t, 2, ds.Len())
	assert.Equal(t, []any{"a", int64(1), 2.5}, ds.Row(0))
	assert.Nil(t, ds.Value(1, "qty"))
}

func TestSQLiteQueryCapsRows(t *testing.T) {
	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.ExecScript(`
		CREATE TABLE n (v INTEGER);
		WITH RECURSIVE c(x) AS (SELECT 1 UNION ALL SELECT x + 1 FROM c WHERE x < 50)
		INSERT INTO n SELECT x FROM c;
	`))

	ds, err := FetchTop(context.Background(), db, SQLiteDialect, "n")
	require.NoError(t, err)
	assert.Equal(t, RowLimit, ds.Len())
}

func TestSQLiteQueryBadTable(t *testing.T) {
	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	defer db.Close()

	_, err = FetchTop(context.Background(), db, SQLiteDialect, "missing")
	assert.Error(t, err)
}

func TestOpenRejectsUnknownDriverAndEmptyDSN(t *testing.T) {
	_, err := Open("oracle", "x", 0)
	assert.Error(t, err)

	_, err = Open(DriverSQLite, "", 0)
	assert.Error(t, err)
}

func TestOpenSQLiteWithCache(t *testing.T) {
	conn, err := Open(DriverSQLite, ":memory:", time.Minute)
	require.NoError(t, err)
	defer conn.Close()

	_, ok := conn.Querier.(*Cached)
	assert.True(t, ok)
	assert.Equal(t, SQLiteDialect, conn.Dialect)
}

func TestFromDriver(t *testing.T) {
	assert.Equal(t, int64(12), fromDriver([]byte("12")))
	assert.Equal(t, 12.5, fromDriver([]byte("12.50")))
	assert.Equal(t, "abc", fromDriver([]byte("abc")))
	assert.Equal(t, "x", fromDriver("x"))
}
