package research

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanQueries(t *testing.T) {
	orig := timeNow
	timeNow = func() time.Time { return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC) }
	defer func() { timeNow = orig }()

	queries := PlanQueries("climate change", "this week", 4)
	require.Len(t, queries, 4)

	assert.Equal(t, "climate change news this week", queries[0])
	assert.Equal(t, "climate change latest 2026", queries[1])
	assert.Equal(t, "climate change announcement this week", queries[2])
	assert.Equal(t, "breaking climate change development", queries[3])
}

func TestPlanQueriesTruncates(t *testing.T) {
	queries := PlanQueries("ai", "today", 2)
	require.Len(t, queries, 2)
	assert.Equal(t, "ai news today", queries[0])
}

func TestPlanQueriesDistinct(t *testing.T) {
	queries := PlanQueries("space", "this month", 4)
	seen := make(map[string]bool)
	for _, q := range queries {
		assert.False(t, seen[q], fmt.Sprintf("duplicate query %q", q))
		seen[q] = true
	}
}
