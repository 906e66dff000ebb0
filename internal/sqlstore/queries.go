package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/tinytelemetry/logbook/internal/model"
)

// queryCtx derives a context bounded by the store's query timeout.
func (s *Store) queryCtx(parent context.Context) (context.Context, context.CancelFunc) {
	if s.QueryTimeout > 0 {
		return context.WithTimeout(parent, s.QueryTimeout)
	}
	return context.WithCancel(parent)
}

// acquireRead takes one read slot when a bound is configured.
func (s *Store) acquireRead(ctx context.Context) (func(), error) {
	sem := s.reads
	if sem == nil {
		return func() {}, nil
	}
	if err := sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	return func() { sem.Release(1) }, nil
}

// QueryLogs runs a selection statement. Rows must project
// id, document text, inserted_at in that order.
func (s *Store) QueryLogs(ctx context.Context, stmt model.Statement) ([]model.LogEntry, error) {
	ctx, cancel := s.queryCtx(ctx)
	defer cancel()

	release, err := s.acquireRead(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	rows, err := s.db.QueryContext(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]model.LogEntry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, entry)
	}
	return results, rows.Err()
}

// CountLogs runs a count statement returning a single integer.
func (s *Store) CountLogs(ctx context.Context, stmt model.Statement) (int64, error) {
	ctx, cancel := s.queryCtx(ctx)
	defer cancel()

	release, err := s.acquireRead(ctx)
	if err != nil {
		return 0, err
	}
	defer release()

	var count int64
	err = s.db.QueryRowContext(ctx, stmt.SQL, stmt.Args...).Scan(&count)
	return count, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (model.LogEntry, error) {
	var (
		entry      model.LogEntry
		doc        any
		insertedAt any
	)
	if err := row.Scan(&entry.ID, &doc, &insertedAt); err != nil {
		return entry, err
	}

	content, err := documentValue(doc)
	if err != nil {
		return entry, err
	}
	entry.Content = content

	ts, err := timeValue(insertedAt)
	if err != nil {
		return entry, err
	}
	entry.InsertedAt = ts
	return entry, nil
}

func documentValue(v any) (model.Document, error) {
	switch d := v.(type) {
	case nil:
		return nil, nil
	case []byte:
		return append(model.Document(nil), d...), nil
	case string:
		return model.Document(d), nil
	}
	return nil, fmt.Errorf("sqlstore: unexpected document type %T", v)
}

// sqliteTimeLayouts covers the text forms sqlite returns for DATETIME columns.
var sqliteTimeLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
}

func timeValue(v any) (time.Time, error) {
	var text string
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		text = t
	case []byte:
		text = string(t)
	default:
		return time.Time{}, fmt.Errorf("sqlstore: unexpected timestamp type %T", v)
	}
	for _, layout := range sqliteTimeLayouts {
		if ts, err := time.Parse(layout, text); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("sqlstore: unparseable timestamp %q", text)
}
