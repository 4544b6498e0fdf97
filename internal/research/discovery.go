package research

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
)

type topicOutcome struct {
	topic    string
	events   []*Event
	warnings []string
}

// DiscoverEvents runs the full single-topic pipeline: plan queries, search,
// dedupe, fetch, extract, score. Best-effort by design; it returns whatever
// events survived, possibly none, and never an error.
func (e *Engine) DiscoverEvents(ctx context.Context, topic, timeframe string) []*Event {
	return e.discoverTopic(ctx, topic, timeframe).events
}

func (e *Engine) discoverTopic(ctx context.Context, topic, timeframe string) *topicOutcome {
	start := time.Now()
	out := &topicOutcome{topic: topic}
	log := e.log.With(zap.String("topic", topic))

	queries := PlanQueries(topic, timeframe, e.config.MaxSearchQueries)
	log.Info("discovering events",
		zap.String("timeframe", timeframe),
		zap.Int("queries", len(queries)))

	resultLists := e.executeSearches(ctx, queries)
	articles := DedupeAndRank(resultLists, e.config.MaxSourcesToFetch)
	log.Info("unique articles found", zap.Int("count", len(articles)))

	enriched := e.fetchArticles(ctx, articles)
	log.Info("articles fetched",
		zap.Int("fetched", len(enriched)),
		zap.Int("attempted", len(articles)))

	if len(enriched) < e.config.MinSourcesFetched {
		out.warnings = append(out.warnings, fmt.Sprintf(
			"topic %q: only %d sources fetched (min %d)",
			topic, len(enriched), e.config.MinSourcesFetched))
		if len(enriched) == 0 {
			return out
		}
	}

	events := e.extractEvents(ctx, enriched, topic, timeframe)
	if len(events) < e.config.MinEventsExtracted {
		out.warnings = append(out.warnings, fmt.Sprintf(
			"topic %q: only %d events extracted (min %d)",
			topic, len(events), e.config.MinEventsExtracted))
	}

	for _, ev := range events {
		ev.CredibilityScore = Credibility(ev, enriched)
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].CredibilityScore > events[j].CredibilityScore
	})

	log.Info("discovery completed",
		zap.Int("events", len(events)),
		zap.Duration("took", time.Since(start)))

	out.events = events
	return out
}
