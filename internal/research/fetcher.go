package research

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/eventscope/eventscope/internal/pkg/cache"
)

// fetchArticles enriches ranked articles with body content, concurrently and
// cache-checked. Failures, timeouts and thin pages just shrink the returned
// set; ranking order is preserved for the survivors.
func (e *Engine) fetchArticles(ctx context.Context, articles []*Article) []*Article {
	fetched := make([]*Article, len(articles))

	var wg sync.WaitGroup
	for i, article := range articles {
		i, article := i, article
		wg.Add(1)
		if err := e.pool.Submit(func() {
			defer wg.Done()
			fetched[i] = e.fetchOne(ctx, article)
		}); err != nil {
			wg.Done()
			e.log.Warn("fetch task rejected", zap.String("url", article.URL), zap.Error(err))
		}
	}
	wg.Wait()

	enriched := make([]*Article, 0, len(articles))
	for _, a := range fetched {
		if a != nil {
			enriched = append(enriched, a)
		}
	}
	return enriched
}

// fetchOne returns the enriched article, or nil when the page could not be
// fetched or carries too little content. Only successful fetches are cached.
func (e *Engine) fetchOne(ctx context.Context, article *Article) *Article {
	key := cache.FetchKey(article.URL)
	if v, ok := e.cache.Get(key, e.config.FetchCacheTTL); ok {
		if cached, ok := v.(*Article); ok {
			e.log.Debug("fetch cache hit", zap.String("url", article.URL))
			return cached
		}
	}

	ctx, cancel := context.WithTimeout(ctx, e.config.FetchTimeout)
	defer cancel()

	res, err := e.fetcher.Fetch(ctx, article.URL)
	if err != nil {
		e.log.Debug("fetch failed", zap.String("url", article.URL), zap.Error(err))
		return nil
	}

	content := res.Content
	wordCount := len(strings.Fields(content))
	if wordCount < e.config.MinWordCount {
		e.log.Debug("content below threshold",
			zap.String("url", article.URL),
			zap.Int("words", wordCount))
		return nil
	}
	content = truncateText(content, e.config.MaxContentLength)

	enriched := *article
	enriched.Content = content
	enriched.WordCount = wordCount

	e.cache.Set(key, &enriched)
	return &enriched
}
