package sqlstore

import (
	"fmt"
	"strings"

	"github.com/tinytelemetry/logbook/internal/model"
)

// Dialect re-exports model.Dialect so callers can name it from the store package.
type Dialect = model.Dialect

// duckDBRowBound is DuckDB's ceiling for LIMIT and OFFSET values.
const duckDBRowBound = 1 << 62

var (
	DuckDB   = Dialect{Name: "duckdb", Driver: "duckdb", RowBound: duckDBRowBound}
	Postgres = Dialect{Name: "postgres", Driver: "postgres", NumberedParams: true}
	SQLite   = Dialect{Name: "sqlite", Driver: "sqlite"}
)

// DialectByName resolves a configured driver name.
func DialectByName(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "duckdb":
		return DuckDB, nil
	case "postgres", "postgresql", "pg":
		return Postgres, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	}
	return Dialect{}, fmt.Errorf("sqlstore: unknown driver %q (want duckdb, postgres or sqlite)", name)
}
