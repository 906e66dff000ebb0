// Package logquery turns pagination and filter inputs into a query plan
// against the log store and assembles the paginated result.
package logquery

import (
	"context"
	"fmt"

	"github.com/tinytelemetry/logbook/internal/model"
	"golang.org/x/sync/errgroup"
)

// Store is the store contract the service depends on.
type Store = model.LogStore

// Service runs list and create against an injected store. It holds no
// per-request state and caches nothing.
type Service struct {
	store Store
}

// New creates a service over store.
func New(store Store) *Service {
	return &Service{store: store}
}

// List returns one page of entries, newest first, plus count-derived metadata.
//
// The selection and the count are independent reads issued concurrently and
// not wrapped in a transaction. Under concurrent inserts TotalLogs and the
// returned page may reflect slightly different snapshots.
func (s *Service) List(ctx context.Context, p model.ListParams) (model.Page, error) {
	p = p.Normalized()
	plan := Plan(s.store.Dialect(), p)

	var (
		logs  []model.LogEntry
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		logs, err = s.store.QueryLogs(gctx, plan.Select)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.store.CountLogs(gctx, plan.Count)
		return err
	})
	if err := g.Wait(); err != nil {
		return model.Page{}, fmt.Errorf("%w: %w", ErrQueryFailed, err)
	}

	if logs == nil {
		logs = []model.LogEntry{}
	}
	return model.Page{
		Logs:        logs,
		TotalPages:  TotalPages(total, p.Limit),
		CurrentPage: p.Page,
		TotalLogs:   total,
	}, nil
}

// Create persists content as a new entry and returns it with the id and
// timestamp the store assigned. Every call appends a row.
func (s *Service) Create(ctx context.Context, content model.Document) (model.LogEntry, error) {
	if !content.IsObject() {
		return model.LogEntry{}, ErrInvalidContent
	}
	entry, err := s.store.InsertLog(ctx, content)
	if err != nil {
		return model.LogEntry{}, fmt.Errorf("%w: %w", ErrInsertFailed, err)
	}
	return entry, nil
}
