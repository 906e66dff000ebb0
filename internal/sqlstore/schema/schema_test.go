package schema

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	_ "github.com/duckdb/duckdb-go/v2"
	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T, driver, dsn string) *sql.DB {
	t.Helper()
	db, err := sql.Open(driver, dsn)
	if err != nil {
		t.Fatalf("open %s: %v", driver, err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestStatementsPerDialect(t *testing.T) {
	for dialect, want := range map[string]int{"duckdb": 3, "postgres": 2, "sqlite": 2} {
		stmts, err := Statements(dialect)
		if err != nil {
			t.Fatalf("Statements(%s): %v", dialect, err)
		}
		if len(stmts) != want {
			t.Errorf("Statements(%s) returned %d statements, want %d", dialect, len(stmts), want)
		}
		for _, stmt := range stmts {
			if strings.HasPrefix(stmt, "--") {
				t.Errorf("Statements(%s) kept a comment line: %q", dialect, stmt)
			}
		}
	}
}

func TestStatementsUnknownDialect(t *testing.T) {
	if _, err := Statements("oracle"); err == nil {
		t.Fatal("expected error for unknown dialect")
	}
}

func TestEnsureCreatesLogTable(t *testing.T) {
	tests := []struct {
		dialect string
		driver  string
		dsn     string
	}{
		{"duckdb", "duckdb", ""},
		{"sqlite", "sqlite", ":memory:"},
	}
	for _, tt := range tests {
		t.Run(tt.dialect, func(t *testing.T) {
			db := openTestDB(t, tt.driver, tt.dsn)
			ctx := context.Background()

			if err := Ensure(ctx, db, tt.dialect); err != nil {
				t.Fatalf("Ensure: %v", err)
			}
			// Idempotent on a second run.
			if err := Ensure(ctx, db, tt.dialect); err != nil {
				t.Fatalf("second Ensure: %v", err)
			}

			var count int64
			if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM log").Scan(&count); err != nil {
				t.Fatalf("count log: %v", err)
			}
			if count != 0 {
				t.Errorf("fresh log table has %d rows, want 0", count)
			}
		})
	}
}
