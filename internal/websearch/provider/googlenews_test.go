package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventscope/eventscope/internal/websearch/types"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>"artificial intelligence" - Google News</title>
    <item>
      <title>OpenAI ships new reasoning model - TechCrunch</title>
      <link>https://techcrunch.com/openai-reasoning</link>
      <description>OpenAI released a new model today.</description>
      <pubDate>Mon, 24 Aug 2026 12:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Meta open sources weights - The Verge</title>
      <link>https://theverge.com/meta-weights</link>
      <description>Meta published model weights.</description>
      <pubDate>Tue, 25 Aug 2026 09:30:00 GMT</pubDate>
    </item>
  </channel>
</rss>`

func newGoogleNewsTestProvider(t *testing.T, handler http.HandlerFunc) Provider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p, err := NewGoogleNewsProvider(&types.ProviderConfig{
		ID:      types.ProviderGoogleNews,
		Name:    "Google News",
		APIHost: srv.URL,
	})
	require.NoError(t, err)
	return p
}

func TestGoogleNewsProvider_Search(t *testing.T) {
	p := newGoogleNewsTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rss/search", r.URL.Path)
		assert.Equal(t, "openai news this week", r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(sampleFeed))
	})

	resp, err := p.Search(context.Background(), &types.SearchRequest{
		Query:      "openai news this week",
		MaxResults: 3,
	})
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)

	first := resp.Results[0]
	assert.Equal(t, "OpenAI ships new reasoning model", first.Title)
	assert.Equal(t, "TechCrunch", first.Publication)
	assert.Equal(t, "https://techcrunch.com/openai-reasoning", first.URL)
	assert.Equal(t, "OpenAI released a new model today.", first.Snippet)
	assert.InDelta(t, 0.9, first.Score, 1e-9)
	assert.NotEmpty(t, first.PublishedAt)

	// Feed position decays relevance.
	assert.Greater(t, first.Score, resp.Results[1].Score)
	assert.Equal(t, types.ProviderGoogleNews, resp.Provider)
}

func TestGoogleNewsProvider_Search_MaxResults(t *testing.T) {
	p := newGoogleNewsTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleFeed))
	})

	resp, err := p.Search(context.Background(), &types.SearchRequest{
		Query:      "ai",
		MaxResults: 1,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Results, 1)
}

func TestGoogleNewsProvider_Search_EmptyQuery(t *testing.T) {
	p := newGoogleNewsTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleFeed))
	})

	_, err := p.Search(context.Background(), &types.SearchRequest{Query: "   "})
	assert.ErrorIs(t, err, types.ErrEmptyQuery)
}

func TestGoogleNewsProvider_Search_HTTPError(t *testing.T) {
	p := newGoogleNewsTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := p.Search(context.Background(), &types.SearchRequest{Query: "ai"})
	var provErr *types.ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, "HTTP_503", provErr.Code)
}

func TestPositionScore(t *testing.T) {
	assert.InDelta(t, 0.9, positionScore(0), 1e-9)
	assert.InDelta(t, 0.85, positionScore(1), 1e-9)
	assert.InDelta(t, 0.3, positionScore(50), 1e-9) // floor
}
