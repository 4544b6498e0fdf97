package research

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	aitypes "github.com/eventscope/eventscope/internal/ai/types"
	"github.com/eventscope/eventscope/internal/webfetch"
	searchtypes "github.com/eventscope/eventscope/internal/websearch/types"
)

type fakeSearch struct {
	mu       sync.Mutex
	results  map[string][]*searchtypes.SearchResult
	fallback []*searchtypes.SearchResult
	failFor  func(query string) bool
	calls    []string
}

func (f *fakeSearch) Search(ctx context.Context, req *searchtypes.SearchRequest) (*searchtypes.SearchResponse, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req.Query)
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.failFor != nil && f.failFor(req.Query) {
		return nil, errors.New("search backend unavailable")
	}
	results := f.fallback
	if r, ok := f.results[req.Query]; ok {
		results = r
	}
	return &searchtypes.SearchResponse{Query: req.Query, Results: results, Provider: "fake"}, nil
}

func (f *fakeSearch) GetID() searchtypes.ProviderID { return "fake" }
func (f *fakeSearch) GetName() string               { return "Fake" }
func (f *fakeSearch) Validate() error               { return nil }

func (f *fakeSearch) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeSearch) calledWith(substr string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, q := range f.calls {
		if strings.Contains(q, substr) {
			return true
		}
	}
	return false
}

type fakeFetcher struct {
	mu      sync.Mutex
	content map[string]string
	err     error
	calls   int
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) (*webfetch.Result, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}
	content, ok := f.content[url]
	if !ok {
		return nil, errors.New("not found")
	}
	return &webfetch.Result{URL: url, Content: content, StatusCode: 200}, nil
}

type fakeAI struct {
	mu       sync.Mutex
	response string
	err      error
	requests []aitypes.ChatCompletionRequest
}

func (f *fakeAI) CreateChatCompletion(ctx context.Context, req aitypes.ChatCompletionRequest) (*aitypes.ChatCompletionResponse, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}
	return &aitypes.ChatCompletionResponse{
		Choices: []aitypes.Choice{{Message: aitypes.Message{Role: "assistant", Content: f.response}}},
	}, nil
}

func (f *fakeAI) Name() string { return "fake" }
func (f *fakeAI) Close() error { return nil }

// longContent yields article text comfortably above the word-count floor
func longContent(seed string) string {
	return strings.TrimSpace(strings.Repeat(seed+" development report ", 120))
}

func searchResult(url string, score float64) *searchtypes.SearchResult {
	return &searchtypes.SearchResult{
		Title:   "Article at " + url,
		URL:     url,
		Snippet: "snippet for " + url,
		Score:   score,
	}
}

const extractionResponse = `[
  {
    "event": "Acme ships a 128K context model",
    "date": "2026-08-25",
    "actors": ["Acme"],
    "key_facts": ["128K context window", "40% cheaper inference", "available in three sizes"],
    "significance": "Raises the bar for long-document workloads.",
    "source_urls": ["https://news.example.org/a", "https://tech.example.org/b", "https://wire.example.org/c"]
  },
  {
    "event": "Borealis raises a funding round",
    "date": "2026-08-27",
    "actors": ["Borealis", "Nordic Capital"],
    "key_facts": ["$200M round", "valuation doubled"],
    "significance": "Signals continued investor appetite.",
    "source_urls": ["https://biz.example.org/d"]
  }
]`

func newTestEngine(t *testing.T, search *fakeSearch, fetcher *fakeFetcher, ai *fakeAI) *Engine {
	return newTestEngineWithConfig(t, DefaultConfig(), search, fetcher, ai)
}

func newTestEngineWithConfig(t *testing.T, cfg *Config, search *fakeSearch, fetcher *fakeFetcher, ai *fakeAI) *Engine {
	t.Helper()
	engine, err := New(cfg, Deps{
		Search:  search,
		Fetcher: fetcher,
		AI:      ai,
		Logger:  zap.NewNop(),
	})
	require.NoError(t, err)
	t.Cleanup(engine.Close)
	return engine
}

func TestNewRequiresProviders(t *testing.T) {
	_, err := New(nil, Deps{AI: &fakeAI{}})
	assert.ErrorIs(t, err, ErrNoSearchProvider)

	_, err = New(nil, Deps{Search: &fakeSearch{}})
	assert.ErrorIs(t, err, ErrNoCompletionProvider)
}

func TestDiscoverEventsFullPipeline(t *testing.T) {
	urls := []string{
		"https://news.example.org/a",
		"https://tech.example.org/b",
		"https://wire.example.org/c",
		"https://biz.example.org/d",
	}
	content := make(map[string]string, len(urls))
	var fallback []*searchtypes.SearchResult
	for i, u := range urls {
		content[u] = longContent(fmt.Sprintf("story%d", i))
		fallback = append(fallback, searchResult(u, 0.9-0.1*float64(i)))
	}

	search := &fakeSearch{fallback: fallback}
	fetcher := &fakeFetcher{content: content}
	ai := &fakeAI{response: extractionResponse}
	engine := newTestEngine(t, search, fetcher, ai)

	events := engine.DiscoverEvents(context.Background(), "artificial intelligence", "this week")
	require.Len(t, events, 2)

	for _, ev := range events {
		assert.GreaterOrEqual(t, ev.CredibilityScore, 0.0)
		assert.LessOrEqual(t, ev.CredibilityScore, 10.0)
		assert.NotEmpty(t, ev.Date)
		assert.NotNil(t, ev.Actors)
		assert.NotNil(t, ev.KeyFacts)
	}
	// sorted by descending credibility; the three-source event wins
	assert.Equal(t, "Acme ships a 128K context model", events[0].Event)
	assert.GreaterOrEqual(t, events[0].CredibilityScore, events[1].CredibilityScore)

	// single batched extraction call
	require.Len(t, ai.requests, 1)
	assert.Contains(t, ai.requests[0].Messages[0].Content, "artificial intelligence")
}

func TestDiscoverEventsSearchFailure(t *testing.T) {
	search := &fakeSearch{failFor: func(string) bool { return true }}
	fetcher := &fakeFetcher{}
	ai := &fakeAI{response: extractionResponse}
	engine := newTestEngine(t, search, fetcher, ai)

	events := engine.DiscoverEvents(context.Background(), "quantum computing", "this week")
	assert.Empty(t, events)
	assert.Zero(t, fetcher.calls)
	assert.Empty(t, ai.requests)
}

func TestDiscoverEventsPartialSearchFailure(t *testing.T) {
	url := "https://only.example.org/a"
	search := &fakeSearch{
		fallback: []*searchtypes.SearchResult{searchResult(url, 0.8)},
		failFor:  func(q string) bool { return strings.Contains(q, "breaking") },
	}
	fetcher := &fakeFetcher{content: map[string]string{url: longContent("survivor")}}
	ai := &fakeAI{response: `[{"event": "Something happened", "source_urls": ["` + url + `"]}]`}
	engine := newTestEngine(t, search, fetcher, ai)

	events := engine.DiscoverEvents(context.Background(), "fusion", "this week")
	require.Len(t, events, 1)
	assert.Equal(t, "Something happened", events[0].Event)
}

func TestDiscoverEventsUnparsableExtraction(t *testing.T) {
	url := "https://news.example.org/a"
	search := &fakeSearch{fallback: []*searchtypes.SearchResult{searchResult(url, 0.9)}}
	fetcher := &fakeFetcher{content: map[string]string{url: longContent("garbled")}}
	ai := &fakeAI{response: `[{"event": "Truncated mid`}
	engine := newTestEngine(t, search, fetcher, ai)

	events := engine.DiscoverEvents(context.Background(), "robotics", "this week")
	assert.Empty(t, events)
	require.Len(t, ai.requests, 1)
}

func TestDiscoverEventsUsesSearchCache(t *testing.T) {
	url := "https://cached.example.org/a"
	search := &fakeSearch{fallback: []*searchtypes.SearchResult{searchResult(url, 0.9)}}
	fetcher := &fakeFetcher{content: map[string]string{url: longContent("cached")}}
	ai := &fakeAI{response: extractionResponse}
	engine := newTestEngine(t, search, fetcher, ai)

	engine.DiscoverEvents(context.Background(), "biotech", "this week")
	searches := search.callCount()
	fetches := fetcher.calls

	engine.DiscoverEvents(context.Background(), "biotech", "this week")
	assert.Equal(t, searches, search.callCount(), "second run should answer searches from cache")
	assert.Equal(t, fetches, fetcher.calls, "second run should answer fetches from cache")

	stats := engine.CacheStats()
	assert.Greater(t, stats.Hits, int64(0))
}

func TestConductResearchTopicIsolation(t *testing.T) {
	url := "https://alpha.example.org/a"
	search := &fakeSearch{
		fallback: []*searchtypes.SearchResult{searchResult(url, 0.9)},
		failFor:  func(q string) bool { return strings.Contains(q, "doomed") },
	}
	fetcher := &fakeFetcher{content: map[string]string{url: longContent("alpha")}}
	ai := &fakeAI{response: `[{"event": "Alpha event", "date": "2026-08-28", "source_urls": ["` + url + `"]}]`}
	engine := newTestEngine(t, search, fetcher, ai)

	result := engine.ConductResearch(context.Background(), []string{"alpha", "doomed"}, "this week", false)
	require.NotNil(t, result)

	assert.Equal(t, []string{"alpha"}, result.TopicsCovered)
	require.Len(t, result.Events, 1)
	assert.Equal(t, "alpha", result.Events[0].ResearchTopic)
	assert.Equal(t, 1, result.Metadata.EventsPerTopic["alpha"])
	assert.NotContains(t, result.Metadata.EventsPerTopic, "doomed")
	assert.Equal(t, []string{"alpha", "doomed"}, result.Metadata.TopicsResearched)
	assert.NotEmpty(t, result.RunID)
	assert.Empty(t, result.VerifiedEvents)
}

func TestConductResearchEmptyTopics(t *testing.T) {
	engine := newTestEngine(t, &fakeSearch{}, &fakeFetcher{}, &fakeAI{})

	result := engine.ConductResearch(context.Background(), nil, "this week", true)
	require.NotNil(t, result)
	assert.Empty(t, result.Events)
	assert.Empty(t, result.TopicsCovered)
	assert.Zero(t, result.TotalEvents)
}

// More concurrent topics than pool workers must not starve the pool: topic
// tasks wait on search and fetch subtasks that need those same workers.
func TestConductResearchMoreTopicsThanWorkers(t *testing.T) {
	urls := []string{"https://tiny1.example.org/a", "https://tiny2.example.org/b"}
	content := make(map[string]string, len(urls))
	var fallback []*searchtypes.SearchResult
	for i, u := range urls {
		content[u] = longContent(fmt.Sprintf("pool%d", i))
		fallback = append(fallback, searchResult(u, 0.9-0.1*float64(i)))
	}

	cfg := DefaultConfig()
	cfg.Workers = 2
	search := &fakeSearch{fallback: fallback}
	fetcher := &fakeFetcher{content: content}
	ai := &fakeAI{response: extractionResponse}
	engine := newTestEngineWithConfig(t, cfg, search, fetcher, ai)

	done := make(chan *Result, 1)
	go func() {
		done <- engine.ConductResearch(context.Background(),
			[]string{"alpha", "beta", "gamma", "delta"}, "this week", true)
	}()

	select {
	case result := <-done:
		require.NotNil(t, result)
		assert.Len(t, result.TopicsCovered, 4)
		assert.Equal(t, 8, result.TotalEvents)
	case <-time.After(30 * time.Second):
		t.Fatal("research run did not complete")
	}
}

func TestConductResearchShortfallWarning(t *testing.T) {
	// one fetchable source is below the four-source floor
	url := "https://lone.example.org/a"
	search := &fakeSearch{fallback: []*searchtypes.SearchResult{searchResult(url, 0.9)}}
	fetcher := &fakeFetcher{content: map[string]string{url: longContent("lone")}}
	ai := &fakeAI{response: `[{"event": "Lone event", "source_urls": ["` + url + `"]}]`}
	engine := newTestEngine(t, search, fetcher, ai)

	result := engine.ConductResearch(context.Background(), []string{"niche"}, "this week", false)
	require.Len(t, result.Events, 1)
	assert.NotEmpty(t, result.Metadata.Warnings)
}
