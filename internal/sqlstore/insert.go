package sqlstore

import (
	"context"
	"fmt"

	"github.com/tinytelemetry/logbook/internal/model"
)

// insertSQL is the single insert shape. The row is returned by the statement
// itself so callers never read it back.
func (s *Store) insertSQL() string {
	return fmt.Sprintf(
		"INSERT INTO log (json) VALUES (%s) RETURNING %s",
		s.dialect.Placeholder(1), s.dialect.SelectColumns(),
	)
}

// InsertLog appends one row holding content verbatim.
func (s *Store) InsertLog(ctx context.Context, content model.Document) (model.LogEntry, error) {
	ctx, cancel := s.queryCtx(ctx)
	defer cancel()

	// Bound as text: drivers send []byte as a binary blob.
	return scanEntry(s.db.QueryRowContext(ctx, s.insertSQL(), string(content)))
}
