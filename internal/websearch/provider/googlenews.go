package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/eventscope/eventscope/internal/websearch/types"
)

const defaultGoogleNewsHost = "https://news.google.com"

// GoogleNewsProvider searches the Google News RSS endpoint. It needs no API
// key, which makes it a useful fallback when no paid search provider is
// configured.
type GoogleNewsProvider struct {
	*BaseProvider
	parser *gofeed.Parser
}

// NewGoogleNewsProvider creates a new Google News RSS provider
func NewGoogleNewsProvider(config *types.ProviderConfig) (Provider, error) {
	if config.APIHost == "" {
		config.APIHost = defaultGoogleNewsHost
	}
	if config.Language == "" {
		config.Language = "en-US"
	}
	if config.Country == "" {
		config.Country = "US"
	}

	return &GoogleNewsProvider{
		BaseProvider: NewBaseProvider(config),
		parser:       gofeed.NewParser(),
	}, nil
}

// Search queries the RSS search feed and converts items to search results.
// RSS carries no relevance signal, so the score decays with feed position:
// Google News orders items by its own relevance ranking.
func (p *GoogleNewsProvider) Search(ctx context.Context, req *types.SearchRequest) (*types.SearchResponse, error) {
	startTime := time.Now()

	if strings.TrimSpace(req.Query) == "" {
		return nil, types.ErrEmptyQuery
	}

	params := url.Values{}
	params.Set("q", req.Query)
	params.Set("hl", p.config.Language)
	params.Set("gl", p.config.Country)
	params.Set("ceid", fmt.Sprintf("%s:%s", p.config.Country, strings.Split(p.config.Language, "-")[0]))

	feedURL := fmt.Sprintf("%s/rss/search?%s", p.config.APIHost, params.Encode())
	httpReq, err := http.NewRequestWithContext(ctx, "GET", feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("User-Agent", p.BuildDefaultHeaders()["User-Agent"])

	resp, err := p.DoRequest(ctx, httpReq)
	if err != nil {
		return nil, &types.ProviderError{
			Provider: p.GetID(),
			Code:     "REQUEST_FAILED",
			Message:  "Failed to fetch RSS feed",
			Err:      err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &types.ProviderError{
			Provider: p.GetID(),
			Code:     fmt.Sprintf("HTTP_%d", resp.StatusCode),
			Message:  "RSS feed request failed",
		}
	}

	feed, err := p.parser.Parse(resp.Body)
	if err != nil {
		return nil, &types.ProviderError{
			Provider: p.GetID(),
			Code:     "PARSE_FAILED",
			Message:  "Failed to parse RSS feed",
			Err:      err,
		}
	}

	maxResults := req.MaxResults
	if maxResults == 0 {
		maxResults = 10
	}

	results := make([]*types.SearchResult, 0, maxResults)
	for i, item := range feed.Items {
		if len(results) >= maxResults {
			break
		}

		link := strings.TrimSpace(item.Link)
		if link == "" {
			continue
		}

		r := &types.SearchResult{
			Title:   strings.TrimSpace(item.Title),
			URL:     link,
			Snippet: strings.TrimSpace(item.Description),
			Score:   positionScore(i),
		}
		if item.PublishedParsed != nil {
			r.PublishedAt = item.PublishedParsed.Format(time.RFC3339)
		}
		// Google News appends " - <Publication>" to item titles.
		if idx := strings.LastIndex(r.Title, " - "); idx > 0 {
			r.Publication = strings.TrimSpace(r.Title[idx+3:])
			r.Title = strings.TrimSpace(r.Title[:idx])
		}

		results = append(results, r)
	}

	return &types.SearchResponse{
		Query:      req.Query,
		Results:    results,
		TotalCount: len(results),
		Took:       time.Since(startTime).Milliseconds(),
		Provider:   p.GetID(),
	}, nil
}

// positionScore maps feed rank to a relevance score in (0,1], decaying from
// 0.9 by 0.05 per position with a floor of 0.3.
func positionScore(pos int) float64 {
	score := 0.9 - float64(pos)*0.05
	if score < 0.3 {
		return 0.3
	}
	return score
}
