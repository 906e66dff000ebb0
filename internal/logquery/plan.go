package logquery

import (
	"math"
	"strings"

	"github.com/tinytelemetry/logbook/internal/model"
)

// QueryPlan is the statement pair behind one list call.
type QueryPlan struct {
	Select model.Statement
	Count  model.Statement
	Offset int64
}

// Offset returns (page-1)*limit, clamped at math.MaxInt64 on overflow.
// Both inputs must already be normalized (>= 1).
func Offset(page, limit int) int64 {
	p, l := int64(page-1), int64(limit)
	if p > 0 && l > 0 && p > math.MaxInt64/l {
		return math.MaxInt64
	}
	return p * l
}

// TotalPages returns ceil(total/limit); zero rows means zero pages.
func TotalPages(total int64, limit int) int64 {
	if total <= 0 || limit <= 0 {
		return 0
	}
	l := int64(limit)
	return total/l + min(total%l, 1)
}

// Plan builds the selection and count statements for p in dialect d.
// Predicate arguments come first, then limit and offset. Values are always
// bound positionally and never appear in the SQL text. Limit and offset are
// clamped so their sum stays within the dialect's row bound.
func Plan(d model.Dialect, p model.ListParams) QueryPlan {
	p = p.Normalized()

	var (
		where string
		args  []any
		n     = 1
	)
	if p.Filtered() {
		where = " WHERE " + d.SeverityExpr() + " = " + d.Placeholder(n)
		args = append(args, p.Severity)
		n++
	}

	// Values past the engine's bound select nothing either way.
	bound := d.MaxRowBound()
	offset := min(Offset(p.Page, p.Limit), bound)
	limit := min(int64(p.Limit), bound-offset)

	var sel strings.Builder
	sel.WriteString("SELECT ")
	sel.WriteString(d.SelectColumns())
	sel.WriteString(" FROM log")
	sel.WriteString(where)
	sel.WriteString(" ORDER BY inserted_at DESC LIMIT ")
	sel.WriteString(d.Placeholder(n))
	sel.WriteString(" OFFSET ")
	sel.WriteString(d.Placeholder(n + 1))

	selectArgs := make([]any, 0, len(args)+2)
	selectArgs = append(selectArgs, args...)
	selectArgs = append(selectArgs, limit, offset)

	return QueryPlan{
		Select: model.Statement{SQL: sel.String(), Args: selectArgs},
		Count:  model.Statement{SQL: "SELECT COUNT(*) FROM log" + where, Args: args},
		Offset: offset,
	}
}
