package research

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ConductResearch is the pipeline's public entry point. It fans out one
// discovery task per topic, merges the surviving events, optionally runs the
// verification pass across the merged set, and attaches timing and cache
// metadata. A topic that fails completely contributes zero events and is
// absent from TopicsCovered; the call itself never fails under normal
// network conditions.
func (e *Engine) ConductResearch(ctx context.Context, topics []string, timeframe string, enableVerification bool) *Result {
	start := time.Now()
	runID := uuid.NewString()
	log := e.log.With(zap.String("run_id", runID))

	log.Info("research starting",
		zap.Strings("topics", topics),
		zap.String("timeframe", timeframe),
		zap.Bool("verification", enableVerification))

	// Topic tasks run on their own goroutines, not the shared pool: they
	// submit search and fetch work to the pool and would otherwise occupy
	// workers while waiting for workers.
	outcomes := make([]*topicOutcome, len(topics))
	var wg sync.WaitGroup
	for i, topic := range topics {
		i, topic := i, topic
		wg.Add(1)
		go func() {
			defer wg.Done()
			outcomes[i] = e.discoverTopic(ctx, topic, timeframe)
		}()
	}
	wg.Wait()

	var (
		allEvents     []*Event
		topicsCovered []string
		warnings      []string
	)
	eventsPerTopic := make(map[string]int)

	for i, outcome := range outcomes {
		if outcome == nil {
			continue
		}
		warnings = append(warnings, outcome.warnings...)
		if len(outcome.events) == 0 {
			log.Warn("no events for topic", zap.String("topic", topics[i]))
			continue
		}
		topicsCovered = append(topicsCovered, outcome.topic)
		for _, ev := range outcome.events {
			ev.ResearchTopic = outcome.topic
			allEvents = append(allEvents, ev)
		}
		eventsPerTopic[outcome.topic] = len(outcome.events)
	}

	log.Info("discovery merged",
		zap.Int("events", len(allEvents)),
		zap.Int("topics_covered", len(topicsCovered)))

	var verifiedEvents []*Event
	if enableVerification && len(allEvents) > 0 {
		verifyStart := time.Now()
		verifiedEvents = e.verifyEvents(ctx, allEvents)
		log.Info("verification completed",
			zap.Int("verified_set", len(verifiedEvents)),
			zap.Duration("took", time.Since(verifyStart)))
	}

	stats := e.cache.Stats()
	result := &Result{
		RunID:          runID,
		Events:         allEvents,
		VerifiedEvents: verifiedEvents,
		TopicsCovered:  topicsCovered,
		TotalEvents:    len(allEvents),
		Metadata: Metadata{
			TopicsResearched:    topics,
			Timeframe:           timeframe,
			Duration:            time.Since(start),
			VerificationEnabled: enableVerification,
			CacheHitRate:        stats.HitRate,
			EventsPerTopic:      eventsPerTopic,
			Warnings:            warnings,
		},
	}

	log.Info("research completed",
		zap.Int("events", result.TotalEvents),
		zap.Float64("cache_hit_rate", stats.HitRate),
		zap.Duration("took", result.Metadata.Duration))

	return result
}
