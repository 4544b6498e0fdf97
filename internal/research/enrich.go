package research

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	aitypes "github.com/eventscope/eventscope/internal/ai/types"
	searchtypes "github.com/eventscope/eventscope/internal/websearch/types"
)

const (
	enrichSourceCount  = 3
	enrichFetchTimeout = 10 * time.Second
	enrichContentChars = 3000

	verificationMaxTokens   = 2000
	verificationTemperature = 0.2 // low temperature for factual cross-checking
)

type verificationPayload struct {
	Verified        bool           `json:"verified"`
	Confidence      string         `json:"confidence"`
	VerifiedFacts   []VerifiedFact `json:"verified_facts"`
	AdditionalFacts []string       `json:"additional_facts"`
	Contradictions  []string       `json:"contradictions"`
}

// VerifyAndEnrich cross-checks a single event against freshly fetched
// sources and returns an enriched copy carrying per-fact confirmation
// counts, additional facts and contradictions. It is the deep counterpart
// to the quick-verify pass and costs one search, up to three fetches and
// one completion call. On any failure the copy comes back unverified with
// the reason recorded in Contradictions; the input event is not mutated.
func (e *Engine) VerifyAndEnrich(ctx context.Context, event *Event) *Event {
	log := e.log.With(zap.String("event", event.Event))
	log.Info("verifying and enriching event")

	query := strings.TrimSpace(fmt.Sprintf("%s %s %s",
		event.Event, strings.Join(event.Actors, " "), event.Date))

	urls := e.verificationURLs(ctx, query)
	sources := e.fetchVerificationSources(ctx, urls)
	log.Info("verification sources fetched", zap.Int("count", len(sources)))

	if len(sources) == 0 {
		return enrichFailure(event, "No verification sources available")
	}

	resp, err := e.ai.CreateChatCompletion(ctx, aitypes.ChatCompletionRequest{
		Messages: []aitypes.Message{
			{Role: "user", Content: buildVerificationPrompt(event, sources)},
		},
		MaxTokens:   verificationMaxTokens,
		Temperature: verificationTemperature,
	})
	if err != nil {
		log.Warn("verification completion failed", zap.Error(err))
		return enrichFailure(event, "Verification error: "+err.Error())
	}

	payload := parseVerification(resp.Text())
	if payload == nil {
		log.Warn("failed to parse verification response")
		return enrichFailure(event, "Verification parsing failed")
	}

	enriched := *event
	enriched.Verified = payload.Verified
	enriched.Confidence = payload.Confidence
	enriched.VerifiedFacts = payload.VerifiedFacts
	enriched.AdditionalFacts = payload.AdditionalFacts
	enriched.Contradictions = payload.Contradictions
	enriched.VerificationSources = make([]string, 0, len(sources))
	for _, s := range sources {
		enriched.VerificationSources = append(enriched.VerificationSources, s.url)
	}

	log.Info("event verification completed", zap.String("confidence", enriched.Confidence))
	return &enriched
}

type verificationSource struct {
	url     string
	content string
}

func (e *Engine) verificationURLs(ctx context.Context, query string) []string {
	sctx, cancel := context.WithTimeout(ctx, e.config.SearchTimeout)
	defer cancel()

	resp, err := e.search.Search(sctx, &searchtypes.SearchRequest{
		Query:      query,
		MaxResults: enrichSourceCount,
	})
	if err != nil {
		e.log.Warn("verification search failed", zap.Error(err))
		return nil
	}

	var urls []string
	for _, r := range resp.Results {
		if r.URL == "" {
			continue
		}
		urls = append(urls, r.URL)
		if len(urls) == enrichSourceCount {
			break
		}
	}
	return urls
}

func (e *Engine) fetchVerificationSources(ctx context.Context, urls []string) []verificationSource {
	fetched := make([]*verificationSource, len(urls))

	var wg sync.WaitGroup
	for i, u := range urls {
		i, u := i, u
		wg.Add(1)
		if err := e.pool.Submit(func() {
			defer wg.Done()
			fctx, cancel := context.WithTimeout(ctx, enrichFetchTimeout)
			defer cancel()

			res, err := e.fetcher.Fetch(fctx, u)
			if err != nil {
				e.log.Debug("verification fetch failed", zap.String("url", u), zap.Error(err))
				return
			}
			fetched[i] = &verificationSource{
				url:     u,
				content: truncateText(res.Content, enrichContentChars),
			}
		}); err != nil {
			wg.Done()
		}
	}
	wg.Wait()

	var sources []verificationSource
	for _, s := range fetched {
		if s != nil {
			sources = append(sources, *s)
		}
	}
	return sources
}

func buildVerificationPrompt(event *Event, sources []verificationSource) string {
	var formatted []string
	for i, src := range sources {
		formatted = append(formatted, fmt.Sprintf("SOURCE %d (%s):\n%s", i+1, src.url, src.content))
	}

	var facts []string
	for _, f := range event.KeyFacts {
		facts = append(facts, "- "+f)
	}

	return fmt.Sprintf(`Verify this event across multiple sources:

EVENT: %s
DATE: %s
ACTORS: %s
CLAIMED FACTS:
%s

VERIFICATION SOURCES:
%s

For each claimed fact, determine:
1. Confirmed by how many sources? (0-%d)
2. Any contradictions or corrections?
3. Additional verified details from sources?

Return ONLY JSON (no markdown, no explanations):
{
  "verified": true,
  "confidence": "high",
  "verified_facts": [
    {
      "fact": "128K context window",
      "confirmed_by": 3,
      "corrections": null
    }
  ],
  "additional_facts": ["Any new verified facts found in sources"],
  "contradictions": []
}

DO NOT OUTPUT ANYTHING EXCEPT THE JSON.`,
		event.Event,
		event.Date,
		strings.Join(event.Actors, ", "),
		strings.Join(facts, "\n"),
		strings.Join(formatted, "\n\n"),
		len(sources))
}

// parseVerification uses the same two-phase tolerance as event parsing:
// strict object parse first, then the widest braced substring.
func parseVerification(raw string) *verificationPayload {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var payload verificationPayload
	if err := json.Unmarshal([]byte(raw), &payload); err == nil {
		return &payload
	}
	if sub := jsonSubstring(raw, '{', '}'); sub != "" {
		if err := json.Unmarshal([]byte(sub), &payload); err == nil {
			return &payload
		}
	}
	return nil
}

func enrichFailure(event *Event, reason string) *Event {
	enriched := *event
	enriched.Verified = false
	enriched.Confidence = ConfidenceLow
	enriched.VerifiedFacts = []VerifiedFact{}
	enriched.AdditionalFacts = []string{}
	enriched.Contradictions = []string{reason}
	return &enriched
}
