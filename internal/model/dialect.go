package model

import (
	"math"
	"strconv"
)

// Dialect describes the SQL flavour a store speaks. Query builders use it to
// render placeholders without knowing the driver.
type Dialect struct {
	Name   string // "duckdb", "postgres", "sqlite"
	Driver string // database/sql driver name

	// NumberedParams selects $1, $2, ... placeholders instead of ?.
	NumberedParams bool

	// RowBound is the largest LIMIT or OFFSET the engine accepts.
	// Zero means math.MaxInt64.
	RowBound int64
}

// MaxRowBound returns the largest value that may be bound to LIMIT or OFFSET.
func (d Dialect) MaxRowBound() int64 {
	if d.RowBound <= 0 {
		return math.MaxInt64
	}
	return d.RowBound
}

// Placeholder renders the n-th (1-based) positional parameter.
func (d Dialect) Placeholder(n int) string {
	if d.NumberedParams {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// SeverityExpr is the expression extracting the severity field from the document.
func (d Dialect) SeverityExpr() string {
	return "json->>'severity'"
}

// SelectColumns is the projection every read and RETURNING clause uses.
// The document column holds text in every dialect so it scans uniformly.
func (d Dialect) SelectColumns() string {
	return "id, json, inserted_at"
}
