package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	_ "github.com/lib/pq"
	"github.com/tinytelemetry/logbook/internal/model"
	"github.com/tinytelemetry/logbook/internal/sqlstore/schema"
	"golang.org/x/sync/semaphore"
	_ "modernc.org/sqlite"
)

const (
	defaultQueryTimeout = 30 * time.Second
	defaultMaxOpenConns = 25
)

// Config selects and tunes the backing database.
type Config struct {
	Driver string // duckdb (default), postgres, sqlite

	// Path is the database file for duckdb and sqlite. Empty means in-memory.
	Path string

	// DSN is the connection string for postgres.
	DSN string

	QueryTimeout time.Duration
	MaxOpenConns int
}

var _ model.LogStore = (*Store)(nil)

// Store executes the log table's query shapes over database/sql.
type Store struct {
	db      *sql.DB
	dialect Dialect
	reads   *semaphore.Weighted

	// QueryTimeout bounds each call when positive.
	QueryTimeout time.Duration
}

// Open connects to the configured database and bootstraps the log table.
func Open(cfg Config) (*Store, error) {
	dialect, err := DialectByName(cfg.Driver)
	if err != nil {
		return nil, err
	}

	dsn, err := dataSource(dialect, cfg)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(dialect.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: open %s: %w", dialect.Name, err)
	}
	configurePool(db, dialect, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlstore: ping %s: %w", dialect.Name, err)
	}

	if err := schema.Ensure(ctx, db, dialect.Name); err != nil {
		db.Close()
		return nil, err
	}

	s := New(db, dialect)
	if cfg.QueryTimeout > 0 {
		s.QueryTimeout = cfg.QueryTimeout
	}
	return s, nil
}

// New wraps an already opened handle. The schema is assumed to exist.
func New(db *sql.DB, dialect Dialect) *Store {
	return &Store{
		db:           db,
		dialect:      dialect,
		QueryTimeout: defaultQueryTimeout,
	}
}

func dataSource(d Dialect, cfg Config) (string, error) {
	switch d.Name {
	case Postgres.Name:
		if cfg.DSN == "" {
			return "", fmt.Errorf("sqlstore: postgres requires a dsn")
		}
		return cfg.DSN, nil
	case SQLite.Name:
		if cfg.Path == "" {
			return ":memory:", nil
		}
	}
	if cfg.Path == "" {
		return "", nil
	}
	// Ensure parent directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
		return "", err
	}
	return cfg.Path, nil
}

func configurePool(db *sql.DB, d Dialect, cfg Config) {
	// A single sqlite :memory: database exists per connection.
	if d.Name == SQLite.Name {
		db.SetMaxOpenConns(1)
		return
	}
	maxOpen := cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = defaultMaxOpenConns
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxOpen)
	db.SetConnMaxLifetime(5 * time.Minute)
}

// Dialect reports the SQL flavour of the backing database.
func (s *Store) Dialect() Dialect {
	return s.dialect
}

// SetMaxConcurrentQueries bounds in-flight reads. n <= 0 removes the bound.
func (s *Store) SetMaxConcurrentQueries(n int) {
	if n <= 0 {
		s.reads = nil
		return
	}
	s.reads = semaphore.NewWeighted(int64(n))
}

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := s.queryCtx(ctx)
	defer cancel()
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
