package logquery

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tinytelemetry/logbook/internal/model"
	"github.com/tinytelemetry/logbook/internal/sqlstore"
)

func TestPlanPostgresDefaults(t *testing.T) {
	plan := Plan(sqlstore.Postgres, model.ListParams{})

	assert.Equal(t, "SELECT id, json, inserted_at FROM log ORDER BY inserted_at DESC LIMIT $1 OFFSET $2", plan.Select.SQL)
	assert.Equal(t, []any{int64(10), int64(0)}, plan.Select.Args)
	assert.Equal(t, "SELECT COUNT(*) FROM log", plan.Count.SQL)
	assert.Empty(t, plan.Count.Args)
}

func TestPlanPostgresSeverity(t *testing.T) {
	plan := Plan(sqlstore.Postgres, model.ListParams{Page: 2, Limit: 5, Severity: "error"})

	assert.Equal(t,
		"SELECT id, json, inserted_at FROM log WHERE json->>'severity' = $1 ORDER BY inserted_at DESC LIMIT $2 OFFSET $3",
		plan.Select.SQL)
	assert.Equal(t, []any{"error", int64(5), int64(5)}, plan.Select.Args)
	assert.Equal(t, "SELECT COUNT(*) FROM log WHERE json->>'severity' = $1", plan.Count.SQL)
	assert.Equal(t, []any{"error"}, plan.Count.Args)
	assert.Equal(t, int64(5), plan.Offset)
}

func TestPlanAllSentinelDropsPredicate(t *testing.T) {
	for _, severity := range []string{"", "all"} {
		plan := Plan(sqlstore.Postgres, model.ListParams{Page: 3, Limit: 20, Severity: severity})

		assert.NotContains(t, plan.Select.SQL, "WHERE", "severity %q", severity)
		assert.NotContains(t, plan.Count.SQL, "WHERE", "severity %q", severity)
		assert.Equal(t, []any{int64(20), int64(40)}, plan.Select.Args, "severity %q", severity)
		assert.Empty(t, plan.Count.Args, "severity %q", severity)
	}
}

func TestPlanDuckDBUsesOrdinalPlaceholders(t *testing.T) {
	plan := Plan(sqlstore.DuckDB, model.ListParams{Page: 1, Limit: 10, Severity: "warn"})

	assert.Equal(t,
		"SELECT id, json, inserted_at FROM log WHERE json->>'severity' = ? ORDER BY inserted_at DESC LIMIT ? OFFSET ?",
		plan.Select.SQL)
	assert.Equal(t, []any{"warn", int64(10), int64(0)}, plan.Select.Args)
	assert.Equal(t, "SELECT COUNT(*) FROM log WHERE json->>'severity' = ?", plan.Count.SQL)
}

func TestPlanNeverEmbedsValues(t *testing.T) {
	hostile := "error' OR '1'='1"
	plan := Plan(sqlstore.Postgres, model.ListParams{Page: 7, Limit: 13, Severity: hostile})

	for _, sql := range []string{plan.Select.SQL, plan.Count.SQL} {
		assert.NotContains(t, sql, hostile)
		assert.NotContains(t, sql, "13")
		assert.NotContains(t, sql, "78")
	}
	assert.Equal(t, hostile, plan.Select.Args[0])
	assert.Equal(t, hostile, plan.Count.Args[0])
}

func TestPlanInvalidParamsFallBackToDefaults(t *testing.T) {
	plan := Plan(sqlstore.SQLite, model.ListParams{Page: 0, Limit: -4})
	assert.Equal(t, []any{int64(10), int64(0)}, plan.Select.Args)
	assert.True(t, strings.HasSuffix(plan.Select.SQL, "LIMIT ? OFFSET ?"))
}

func TestOffset(t *testing.T) {
	tests := []struct {
		page, limit int
		want        int64
	}{
		{1, 10, 0},
		{2, 10, 10},
		{2, 5, 5},
		{7, 3, 18},
		{math.MaxInt, 2, math.MaxInt64},
	}
	for _, tt := range tests {
		if got := Offset(tt.page, tt.limit); got != tt.want {
			t.Errorf("Offset(%d, %d) = %d, want %d", tt.page, tt.limit, got, tt.want)
		}
	}
}

func TestOffsetProperty(t *testing.T) {
	for page := 1; page <= 50; page++ {
		for limit := 1; limit <= 50; limit++ {
			if got, want := Offset(page, limit), int64((page-1)*limit); got != want {
				t.Fatalf("Offset(%d, %d) = %d, want %d", page, limit, got, want)
			}
		}
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total int64
		limit int
		want  int64
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 5, 5},
		{26, 5, 6},
		{1, 1, 1},
	}
	for _, tt := range tests {
		if got := TotalPages(tt.total, tt.limit); got != tt.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.total, tt.limit, got, tt.want)
		}
	}
}

func TestTotalPagesMatchesCeil(t *testing.T) {
	for total := int64(0); total <= 200; total++ {
		for limit := 1; limit <= 30; limit++ {
			want := int64(math.Ceil(float64(total) / float64(limit)))
			if got := TotalPages(total, limit); got != want {
				t.Fatalf("TotalPages(%d, %d) = %d, want %d", total, limit, got, want)
			}
		}
	}
}

func TestPlanClampsToDialectRowBound(t *testing.T) {
	bound := sqlstore.DuckDB.MaxRowBound()

	deep := Plan(sqlstore.DuckDB, model.ListParams{Page: math.MaxInt, Limit: 10})
	assert.Equal(t, []any{int64(0), bound}, deep.Select.Args)
	assert.Equal(t, bound, deep.Offset)

	wide := Plan(sqlstore.DuckDB, model.ListParams{Page: 1, Limit: math.MaxInt})
	assert.Equal(t, []any{bound, int64(0)}, wide.Select.Args)

	pg := Plan(sqlstore.Postgres, model.ListParams{Page: math.MaxInt, Limit: 10})
	assert.Equal(t, []any{int64(0), int64(math.MaxInt64)}, pg.Select.Args)

	near := Plan(sqlstore.DuckDB, model.ListParams{Page: 2, Limit: int(bound - 5)})
	assert.Equal(t, []any{int64(5), bound - 5}, near.Select.Args)
}
