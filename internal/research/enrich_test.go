package research

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	searchtypes "github.com/eventscope/eventscope/internal/websearch/types"
)

const verificationResponse = `{
  "verified": true,
  "confidence": "high",
  "verified_facts": [
    {"fact": "128K context window", "confirmed_by": 2, "corrections": null}
  ],
  "additional_facts": ["also available on-prem"],
  "contradictions": []
}`

func enrichFixture() (*fakeSearch, *fakeFetcher, *Event) {
	search := &fakeSearch{fallback: []*searchtypes.SearchResult{
		searchResult("https://v1.example.org/a", 0.9),
		searchResult("https://v2.example.org/b", 0.8),
		searchResult("https://v3.example.org/c", 0.7),
	}}
	fetcher := &fakeFetcher{content: map[string]string{
		"https://v1.example.org/a": "confirms the 128K context window claim",
		"https://v2.example.org/b": "independent coverage of the launch",
		"https://v3.example.org/c": "third write-up",
	}}
	event := &Event{
		Event:    "Acme model launch",
		Date:     "2026-08-25",
		Actors:   []string{"Acme"},
		KeyFacts: []string{"128K context window"},
	}
	return search, fetcher, event
}

func TestVerifyAndEnrich(t *testing.T) {
	search, fetcher, event := enrichFixture()
	ai := &fakeAI{response: verificationResponse}
	engine := newTestEngine(t, search, fetcher, ai)

	enriched := engine.VerifyAndEnrich(context.Background(), event)
	require.NotNil(t, enriched)

	assert.True(t, enriched.Verified)
	assert.Equal(t, ConfidenceHigh, enriched.Confidence)
	require.Len(t, enriched.VerifiedFacts, 1)
	assert.Equal(t, "128K context window", enriched.VerifiedFacts[0].Fact)
	assert.Equal(t, 2, enriched.VerifiedFacts[0].ConfirmedBy)
	assert.Equal(t, []string{"also available on-prem"}, enriched.AdditionalFacts)
	assert.Len(t, enriched.VerificationSources, 3)

	// extractor-derived fields survive enrichment
	assert.Equal(t, event.Event, enriched.Event)
	assert.Equal(t, event.KeyFacts, enriched.KeyFacts)

	// input event untouched
	assert.False(t, event.Verified)
	assert.Empty(t, event.VerificationSources)

	// prompt carries the event and every fetched source
	require.Len(t, ai.requests, 1)
	prompt := ai.requests[0].Messages[0].Content
	assert.Contains(t, prompt, "Acme model launch")
	assert.Contains(t, prompt, "https://v2.example.org/b")
}

func TestVerifyAndEnrichNoSources(t *testing.T) {
	search := &fakeSearch{failFor: func(string) bool { return true }}
	ai := &fakeAI{response: verificationResponse}
	engine := newTestEngine(t, search, &fakeFetcher{}, ai)

	event := &Event{Event: "Unsourced event"}
	enriched := engine.VerifyAndEnrich(context.Background(), event)

	assert.False(t, enriched.Verified)
	assert.Equal(t, ConfidenceLow, enriched.Confidence)
	assert.Equal(t, []string{"No verification sources available"}, enriched.Contradictions)
	assert.Empty(t, ai.requests, "no completion call without sources")
}

func TestVerifyAndEnrichParseFailure(t *testing.T) {
	search, fetcher, event := enrichFixture()
	ai := &fakeAI{response: "I could not produce JSON, sorry."}
	engine := newTestEngine(t, search, fetcher, ai)

	enriched := engine.VerifyAndEnrich(context.Background(), event)
	assert.False(t, enriched.Verified)
	assert.Equal(t, ConfidenceLow, enriched.Confidence)
	assert.Equal(t, []string{"Verification parsing failed"}, enriched.Contradictions)
}

func TestParseVerificationMarkdownFenced(t *testing.T) {
	raw := "```json\n" + verificationResponse + "\n```"
	payload := parseVerification(raw)
	require.NotNil(t, payload)
	assert.True(t, payload.Verified)
	assert.Equal(t, "high", payload.Confidence)
}

func TestParseVerificationGarbage(t *testing.T) {
	assert.Nil(t, parseVerification(""))
	assert.Nil(t, parseVerification("plain prose"))
	assert.Nil(t, parseVerification(`{"confidence": `))
}
