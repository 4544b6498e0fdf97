package research

import (
	"context"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/eventscope/eventscope/internal/pkg/cache"
	searchtypes "github.com/eventscope/eventscope/internal/websearch/types"
)

const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// verifyEvents runs the two-tier verification pass. Events with enough
// source URLs are auto-verified without any network call; of the rest, only
// the top VerifyTopN by credibility get a quick secondary check. Unverified
// events keep their low-confidence tag, they are never discarded.
func (e *Engine) verifyEvents(ctx context.Context, events []*Event) []*Event {
	var auto, uncertain []*Event
	for _, ev := range events {
		if len(ev.SourceURLs) >= e.config.AutoVerifyThreshold {
			ev.Verified = true
			ev.Confidence = ConfidenceHigh
			auto = append(auto, ev)
		} else {
			uncertain = append(uncertain, ev)
		}
	}

	sort.SliceStable(uncertain, func(i, j int) bool {
		return uncertain[i].CredibilityScore > uncertain[j].CredibilityScore
	})
	toVerify := uncertain
	if len(toVerify) > e.config.VerifyTopN {
		toVerify = toVerify[:e.config.VerifyTopN]
	}

	e.log.Info("verification triage",
		zap.Int("auto_verified", len(auto)),
		zap.Int("quick_verifying", len(toVerify)))

	var wg sync.WaitGroup
	for _, ev := range toVerify {
		ev := ev
		wg.Add(1)
		if err := e.pool.Submit(func() {
			defer wg.Done()
			e.quickVerify(ctx, ev)
		}); err != nil {
			wg.Done()
			ev.Verified = false
			ev.Confidence = ConfidenceLow
		}
	}
	wg.Wait()

	return append(auto, toVerify...)
}

// quickVerify runs one focused, cache-checked search and scans the top two
// results for the event's first two key facts. Two overlaps upgrade to
// high confidence, one to medium; none, or any error, downgrades to
// unverified/low. Never propagates a failure.
func (e *Engine) quickVerify(ctx context.Context, ev *Event) {
	ctx, cancel := context.WithTimeout(ctx, e.config.VerifyTimeout)
	defer cancel()

	query := strings.TrimSpace(ev.Event + " " + ev.Date)
	key := cache.SearchKey(query)

	var results []*searchtypes.SearchResult
	if v, ok := e.cache.Get(key, e.config.SearchCacheTTL); ok {
		results, _ = v.([]*searchtypes.SearchResult)
	}
	if results == nil {
		resp, err := e.search.Search(ctx, &searchtypes.SearchRequest{Query: query})
		if err != nil {
			e.log.Debug("quick verify search failed", zap.String("event", ev.Event), zap.Error(err))
			ev.Verified = false
			ev.Confidence = ConfidenceLow
			return
		}
		results = resp.Results
		e.cache.Set(key, results)
	}

	facts := ev.KeyFacts
	if len(facts) > 2 {
		facts = facts[:2]
	}

	overlaps := 0
	for i, r := range results {
		if i >= 2 {
			break
		}
		text := strings.ToLower(r.Title + " " + r.Snippet)
		for _, fact := range facts {
			if fact != "" && strings.Contains(text, strings.ToLower(fact)) {
				overlaps++
				break
			}
		}
	}

	switch {
	case overlaps >= 2:
		ev.Verified = true
		ev.Confidence = ConfidenceHigh
	case overlaps == 1:
		ev.Verified = true
		ev.Confidence = ConfidenceMedium
	default:
		ev.Verified = false
		ev.Confidence = ConfidenceLow
	}
}
