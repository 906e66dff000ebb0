package model

import "time"

// LogEntry is one persisted row of the log table.
// It is the canonical type for storage, the query service, and the HTTP API.
type LogEntry struct {
	ID         int64     `json:"id"`
	Content    Document  `json:"json"`
	InsertedAt time.Time `json:"inserted_at"`
}

// ListParams holds per-request pagination and filter inputs.
type ListParams struct {
	Page     int
	Limit    int
	Severity string // empty or SeverityAll = no filter
}

// Normalized returns a copy with page and limit defaulted when absent or invalid.
func (p ListParams) Normalized() ListParams {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	return p
}

// Filtered reports whether the severity predicate applies.
func (p ListParams) Filtered() bool {
	return p.Severity != "" && p.Severity != SeverityAll
}

// Page is the pagination envelope returned by a list call.
type Page struct {
	Logs        []LogEntry `json:"logs"`
	TotalPages  int64      `json:"totalPages"`
	CurrentPage int        `json:"currentPage"`
	TotalLogs   int64      `json:"totalLogs"`
}

// Statement is one SQL text with its positional arguments.
type Statement struct {
	SQL  string
	Args []any
}
