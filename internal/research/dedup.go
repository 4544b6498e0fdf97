package research

import (
	"sort"

	searchtypes "github.com/eventscope/eventscope/internal/websearch/types"
)

// Some providers return this placeholder when a query matched nothing.
const placeholderURL = "https://example.com"

// Fallback relevance for results whose provider reports no score.
const defaultRelevance = 0.5

// DedupeAndRank merges per-query result lists into a single ranked article
// list: duplicate URLs are dropped (first occurrence wins), placeholder URLs
// are discarded, the remainder is sorted by descending relevance and
// truncated to limit. Deterministic given its inputs.
func DedupeAndRank(resultLists [][]*searchtypes.SearchResult, limit int) []*Article {
	seen := make(map[string]struct{})
	var articles []*Article

	for _, results := range resultLists {
		for _, r := range results {
			if r == nil || r.URL == "" || r.URL == placeholderURL {
				continue
			}
			if _, dup := seen[r.URL]; dup {
				continue
			}
			seen[r.URL] = struct{}{}

			relevance := r.Score
			if relevance == 0 {
				relevance = defaultRelevance
			}
			publication := r.Publication
			if publication == "" {
				publication = PublicationFromURL(r.URL)
			}
			articles = append(articles, &Article{
				URL:         r.URL,
				Title:       r.Title,
				Snippet:     r.Snippet,
				Publication: publication,
				Relevance:   relevance,
			})
		}
	}

	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].Relevance > articles[j].Relevance
	})
	if limit > 0 && len(articles) > limit {
		articles = articles[:limit]
	}
	return articles
}
