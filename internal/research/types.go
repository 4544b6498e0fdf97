package research

import "time"

// Article is a single search hit, optionally enriched with fetched content.
// Identity is the URL; duplicates are removed across queries within a run.
type Article struct {
	URL         string  `json:"url"`
	Title       string  `json:"title"`
	Snippet     string  `json:"snippet"`
	Publication string  `json:"publication"`
	Relevance   float64 `json:"relevance_score"`
	Content     string  `json:"content,omitempty"`
	WordCount   int     `json:"word_count,omitempty"`
}

// Event is a structured, dated, sourced description of something that
// happened, extracted from a batch of articles. Fields added by verification
// never remove extractor-derived fields.
type Event struct {
	Event        string   `json:"event"`
	Date         string   `json:"date"`
	Actors       []string `json:"actors"`
	KeyFacts     []string `json:"key_facts"`
	Significance string   `json:"significance"`
	SourceURLs   []string `json:"source_urls"`
	Quote        string   `json:"quote"`

	CredibilityScore float64 `json:"credibility_score"`
	ImportanceScore  float64 `json:"importance_score,omitempty"`
	Verified         bool    `json:"verified"`
	Confidence       string  `json:"confidence"` // high, medium, low
	ResearchTopic    string  `json:"research_topic,omitempty"`

	// Populated by VerifyAndEnrich only.
	VerifiedFacts       []VerifiedFact `json:"verified_facts,omitempty"`
	AdditionalFacts     []string       `json:"additional_facts,omitempty"`
	Contradictions      []string       `json:"contradictions,omitempty"`
	VerificationSources []string       `json:"verification_sources,omitempty"`
}

// VerifiedFact records how strongly one claimed fact was corroborated.
type VerifiedFact struct {
	Fact        string `json:"fact"`
	ConfirmedBy int    `json:"confirmed_by"`
	Corrections string `json:"corrections,omitempty"`
}

// Result is the aggregate output of one research run. Immutable once
// returned.
type Result struct {
	RunID          string   `json:"run_id"`
	Events         []*Event `json:"events"`
	VerifiedEvents []*Event `json:"verified_events"`
	TopicsCovered  []string `json:"topics_covered"`
	TotalEvents    int      `json:"total_events"`
	Metadata       Metadata `json:"research_metadata"`
}

// Metadata carries timing and quality signals for observability. Warnings
// are quality flags (too few sources, too few events), not errors.
type Metadata struct {
	TopicsResearched    []string       `json:"topics_researched"`
	Timeframe           string         `json:"timeframe"`
	Duration            time.Duration  `json:"research_duration"`
	VerificationEnabled bool           `json:"verification_enabled"`
	CacheHitRate        float64        `json:"cache_hit_rate"`
	EventsPerTopic      map[string]int `json:"events_per_topic"`
	Warnings            []string       `json:"warnings,omitempty"`
}
