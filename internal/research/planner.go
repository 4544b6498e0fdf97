package research

import (
	"fmt"
	"time"
)

// overridable for tests
var timeNow = time.Now

// PlanQueries derives up to max search queries for a topic and timeframe.
// Pure string templating, no I/O.
func PlanQueries(topic, timeframe string, max int) []string {
	queries := []string{
		fmt.Sprintf("%s news %s", topic, timeframe),
		fmt.Sprintf("%s latest %d", topic, timeNow().Year()),
		fmt.Sprintf("%s announcement this week", topic),
		fmt.Sprintf("breaking %s development", topic),
	}
	if max > 0 && len(queries) > max {
		queries = queries[:max]
	}
	return queries
}
