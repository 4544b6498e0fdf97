package research

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/eventscope/eventscope/internal/pkg/cache"
	searchtypes "github.com/eventscope/eventscope/internal/websearch/types"
)

// executeSearches runs every query concurrently and waits for all of them.
// A failed or timed-out query contributes an empty list; it never aborts its
// siblings.
func (e *Engine) executeSearches(ctx context.Context, queries []string) [][]*searchtypes.SearchResult {
	results := make([][]*searchtypes.SearchResult, len(queries))

	var wg sync.WaitGroup
	for i, query := range queries {
		i, query := i, query
		wg.Add(1)
		if err := e.pool.Submit(func() {
			defer wg.Done()
			results[i] = e.searchOne(ctx, query)
		}); err != nil {
			wg.Done()
			e.log.Warn("search task rejected", zap.String("query", query), zap.Error(err))
		}
	}
	wg.Wait()

	return results
}

// searchOne answers from cache when possible, otherwise calls the provider
// under the per-query timeout and caches the trimmed result. Returns nil on
// any failure.
func (e *Engine) searchOne(ctx context.Context, query string) []*searchtypes.SearchResult {
	key := cache.SearchKey(query)
	if v, ok := e.cache.Get(key, e.config.SearchCacheTTL); ok {
		if cached, ok := v.([]*searchtypes.SearchResult); ok {
			e.log.Debug("search cache hit", zap.String("query", query))
			return cached
		}
	}

	ctx, cancel := context.WithTimeout(ctx, e.config.SearchTimeout)
	defer cancel()

	resp, err := e.search.Search(ctx, &searchtypes.SearchRequest{
		Query:      query,
		MaxResults: e.config.ResultsPerQuery,
	})
	if err != nil {
		e.log.Warn("search failed", zap.String("query", query), zap.Error(err))
		return nil
	}

	top := resp.Results
	if len(top) > e.config.ResultsPerQuery {
		top = top[:e.config.ResultsPerQuery]
	}
	e.cache.Set(key, top)
	return top
}
