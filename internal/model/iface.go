package model

import "context"

// LogReader executes the read shapes of the log table.
type LogReader interface {
	QueryLogs(ctx context.Context, stmt Statement) ([]LogEntry, error)
	CountLogs(ctx context.Context, stmt Statement) (int64, error)
}

// LogWriter appends one entry and returns it as stored.
type LogWriter interface {
	InsertLog(ctx context.Context, content Document) (LogEntry, error)
}

// LogStore is the full store contract consumed by the query service.
type LogStore interface {
	LogReader
	LogWriter
	Dialect() Dialect
}
