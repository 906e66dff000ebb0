// Package schema creates the log table for each supported dialect.
package schema

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"strings"
)

//go:embed ddl/*.sql
var ddl embed.FS

// Statements returns the DDL statements for a dialect, in file order.
func Statements(dialect string) ([]string, error) {
	data, err := fs.ReadFile(ddl, "ddl/"+dialect+".sql")
	if err != nil {
		return nil, fmt.Errorf("schema: no ddl for dialect %q: %w", dialect, err)
	}

	var stmts []string
	for _, part := range strings.Split(string(data), ";") {
		var lines []string
		for _, line := range strings.Split(part, "\n") {
			if strings.HasPrefix(strings.TrimSpace(line), "--") {
				continue
			}
			lines = append(lines, line)
		}
		stmt := strings.TrimSpace(strings.Join(lines, "\n"))
		if stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts, nil
}

// Ensure creates the log table and its index when missing. All statements
// run in one transaction and are idempotent.
func Ensure(ctx context.Context, db *sql.DB, dialect string) error {
	stmts, err := Statements(dialect)
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("schema: begin tx: %w", err)
	}
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			tx.Rollback()
			return fmt.Errorf("schema: executing %q: %w", firstLine(stmt), err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("schema: commit: %w", err)
	}
	return nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
