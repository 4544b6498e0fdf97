package research

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	aitypes "github.com/eventscope/eventscope/internal/ai/types"
)

const (
	// One batched completion covers at most this many articles.
	maxArticlesPerExtraction = 8
	// Per-article content budget inside the prompt.
	maxPromptContentChars = 2000

	extractionMaxTokens   = 3000
	extractionTemperature = 0.3
)

// extractEvents converts all fetched articles into structured events with a
// single batched completion call. Any failure (timeout, provider error,
// unparsable output) yields an empty list; the pipeline continues with zero
// events for the topic.
func (e *Engine) extractEvents(ctx context.Context, articles []*Article, topic, timeframe string) []*Event {
	if len(articles) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, e.config.ExtractTimeout)
	defer cancel()

	resp, err := e.ai.CreateChatCompletion(ctx, aitypes.ChatCompletionRequest{
		Messages: []aitypes.Message{
			{Role: "user", Content: buildExtractionPrompt(articles, topic, timeframe)},
		},
		MaxTokens:   extractionMaxTokens,
		Temperature: extractionTemperature,
	})
	if err != nil {
		e.log.Warn("event extraction failed", zap.String("topic", topic), zap.Error(err))
		return nil
	}

	events := parseEvents(resp.Text())
	for _, ev := range events {
		normalizeEvent(ev)
	}
	return events
}

func buildExtractionPrompt(articles []*Article, topic, timeframe string) string {
	if len(articles) > maxArticlesPerExtraction {
		articles = articles[:maxArticlesPerExtraction]
	}

	var parts []string
	for i, a := range articles {
		content := truncateText(a.Content, maxPromptContentChars)
		parts = append(parts, fmt.Sprintf("ARTICLE %d:\nTitle: %s\nURL: %s\n\n%s", i+1, a.Title, a.URL, content))
	}
	articlesText := strings.Join(parts, "\n\n---\n\n")

	return fmt.Sprintf(`Extract 6-8 distinct news EVENTS from these %d articles about %s.

%s

Return ONLY JSON array of events. Each event needs:
- event: What happened (specific and clear)
- date: When (YYYY-MM-DD or "%s")
- actors: Who was involved (array)
- key_facts: 3-5 specific facts with numbers/names (array)
- significance: Why it matters (one sentence)
- source_urls: Which article URLs mention this (array)

Rules:
- Deduplicate - same event in multiple articles = one entry
- Only recent events (last 2 weeks)
- Verifiable facts only, no opinions
- Include concrete details (numbers, dates, names)

DO NOT OUTPUT ANYTHING EXCEPT THE JSON ARRAY.
[
  {
    "event": "Brief description",
    "date": "YYYY-MM-DD",
    "actors": ["Company/Person"],
    "key_facts": ["Fact 1", "Fact 2"],
    "significance": "Why it matters",
    "source_urls": ["url1"]
  }
]
`, len(articles), topic, articlesText, timeframe)
}

// parseEvents is deliberately tolerant of sloppy model output. Phase one is
// a strict parse of the whole response as an array (or a single object,
// wrapped). Phase two hunts for an array or object substring, for responses
// wrapped in markdown fences or prose. Anything unrecoverable yields nil.
func parseEvents(raw string) []*Event {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var events []*Event
	if err := json.Unmarshal([]byte(raw), &events); err == nil {
		return keepValid(events)
	}
	var single Event
	if err := json.Unmarshal([]byte(raw), &single); err == nil {
		return keepValid([]*Event{&single})
	}

	if sub := jsonSubstring(raw, '[', ']'); sub != "" && gjson.Valid(sub) {
		parsed := gjson.Parse(sub)
		if parsed.IsArray() {
			var out []*Event
			for _, item := range parsed.Array() {
				if ev := eventFromJSON(item); ev != nil {
					out = append(out, ev)
				}
			}
			if len(out) > 0 {
				return out
			}
		}
	}
	if sub := jsonSubstring(raw, '{', '}'); sub != "" && gjson.Valid(sub) {
		if parsed := gjson.Parse(sub); parsed.IsObject() {
			if ev := eventFromJSON(parsed); ev != nil {
				return []*Event{ev}
			}
		}
	}
	return nil
}

// jsonSubstring returns the widest span between the first open and the last
// close delimiter, or "" when no such span exists.
func jsonSubstring(s string, open, closing byte) string {
	start := strings.IndexByte(s, open)
	end := strings.LastIndexByte(s, closing)
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}

func eventFromJSON(item gjson.Result) *Event {
	description := item.Get("event").String()
	if description == "" {
		return nil
	}
	ev := &Event{
		Event:        description,
		Date:         item.Get("date").String(),
		Significance: item.Get("significance").String(),
		Quote:        item.Get("quote").String(),
		Confidence:   item.Get("confidence").String(),
	}
	for _, a := range item.Get("actors").Array() {
		ev.Actors = append(ev.Actors, a.String())
	}
	for _, f := range item.Get("key_facts").Array() {
		ev.KeyFacts = append(ev.KeyFacts, f.String())
	}
	for _, u := range item.Get("source_urls").Array() {
		ev.SourceURLs = append(ev.SourceURLs, u.String())
	}
	return ev
}

func keepValid(events []*Event) []*Event {
	var out []*Event
	for _, ev := range events {
		if ev != nil && ev.Event != "" {
			out = append(out, ev)
		}
	}
	return out
}

// normalizeEvent fills defaults for fields the model may omit, so downstream
// stages never see nil slices or an undated event.
func normalizeEvent(ev *Event) {
	if ev.Date == "" {
		ev.Date = timeNow().Format("2006-01-02")
	}
	if ev.Actors == nil {
		ev.Actors = []string{}
	}
	if ev.KeyFacts == nil {
		ev.KeyFacts = []string{}
	}
	if ev.SourceURLs == nil {
		ev.SourceURLs = []string{}
	}
	if ev.Confidence == "" {
		ev.Confidence = "medium"
	}
}
