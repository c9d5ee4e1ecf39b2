package source

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Dialect builds the SQL text for a capped table fetch.
type Dialect interface {
	Name() string
	TopQuery(table string, n int) string
}

// Supported drivers.
const (
	DriverSQLServer = "sqlserver"
	DriverSQLite    = "sqlite"
)

var (
	// MSSQL renders `SELECT TOP n * FROM [dbo].[table]`.
	MSSQL Dialect = mssqlDialect{}
	// SQLiteDialect renders `SELECT * FROM "table" LIMIT n`.
	SQLiteDialect Dialect = sqliteDialect{}
)

type mssqlDialect struct{}

func (mssqlDialect) Name() string { return DriverSQLServer }

func (mssqlDialect) TopQuery(table string, n int) string {
	return fmt.Sprintf("SELECT TOP %d * FROM [dbo].[%s]", n, table)
}

type sqliteDialect struct{}

func (sqliteDialect) Name() string { return DriverSQLite }

func (sqliteDialect) TopQuery(table string, n int) string {
	return fmt.Sprintf(`SELECT * FROM "%s" LIMIT %d`, strings.ReplaceAll(table, `"`, `""`), n)
}

// DialectFor returns the dialect of a driver name.
func DialectFor(driver string) (Dialect, error) {
	switch strings.ToLower(driver) {
	case DriverSQLServer, "mssql":
		return MSSQL, nil
	case DriverSQLite, "sqlite3":
		return SQLiteDialect, nil
	}
	return nil, errors.Errorf("unsupported driver %q", driver)
}
