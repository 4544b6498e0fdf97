package research

import "time"

// Config holds the pipeline budgets. The defaults are what the pipeline was
// calibrated against: a full two-topic run completes in well under a minute.
// Raising the budgets trades latency for coverage.
type Config struct {
	// Search
	MaxSearchQueries int           `mapstructure:"max_search_queries"`
	ResultsPerQuery  int           `mapstructure:"results_per_query"`
	SearchTimeout    time.Duration `mapstructure:"search_timeout"`

	// Fetch
	MaxSourcesToFetch int           `mapstructure:"max_sources_to_fetch"`
	FetchTimeout      time.Duration `mapstructure:"fetch_timeout"`
	MaxContentLength  int           `mapstructure:"max_content_length"`
	MinWordCount      int           `mapstructure:"min_word_count"`
	MinSourcesFetched int           `mapstructure:"min_sources_fetched"`

	// Extraction
	ExtractTimeout     time.Duration `mapstructure:"extract_timeout"`
	MinEventsExtracted int           `mapstructure:"min_events_extracted"`

	// Verification
	VerifyTopN          int           `mapstructure:"verify_top_n"`
	VerifyTimeout       time.Duration `mapstructure:"verify_timeout"`
	AutoVerifyThreshold int           `mapstructure:"auto_verify_threshold"`

	// Caching
	SearchCacheTTL time.Duration `mapstructure:"search_cache_ttl"`
	FetchCacheTTL  time.Duration `mapstructure:"fetch_cache_ttl"`

	// Concurrency
	Workers int `mapstructure:"workers"`
}

// DefaultConfig returns the calibrated defaults
func DefaultConfig() *Config {
	return &Config{
		MaxSearchQueries: 4,
		ResultsPerQuery:  3,
		SearchTimeout:    5 * time.Second,

		MaxSourcesToFetch: 8,
		FetchTimeout:      8 * time.Second,
		MaxContentLength:  5000,
		MinWordCount:      200,
		MinSourcesFetched: 4,

		ExtractTimeout:     15 * time.Second,
		MinEventsExtracted: 4,

		VerifyTopN:          3,
		VerifyTimeout:       10 * time.Second,
		AutoVerifyThreshold: 3,

		SearchCacheTTL: 30 * time.Minute,
		FetchCacheTTL:  60 * time.Minute,

		Workers: 32,
	}
}

// withDefaults fills in zero-valued fields so a partially specified config
// still yields a working pipeline.
func (c *Config) withDefaults() *Config {
	def := DefaultConfig()
	if c == nil {
		return def
	}
	out := *c
	if out.MaxSearchQueries <= 0 {
		out.MaxSearchQueries = def.MaxSearchQueries
	}
	if out.ResultsPerQuery <= 0 {
		out.ResultsPerQuery = def.ResultsPerQuery
	}
	if out.SearchTimeout <= 0 {
		out.SearchTimeout = def.SearchTimeout
	}
	if out.MaxSourcesToFetch <= 0 {
		out.MaxSourcesToFetch = def.MaxSourcesToFetch
	}
	if out.FetchTimeout <= 0 {
		out.FetchTimeout = def.FetchTimeout
	}
	if out.MaxContentLength <= 0 {
		out.MaxContentLength = def.MaxContentLength
	}
	if out.MinWordCount <= 0 {
		out.MinWordCount = def.MinWordCount
	}
	if out.MinSourcesFetched <= 0 {
		out.MinSourcesFetched = def.MinSourcesFetched
	}
	if out.ExtractTimeout <= 0 {
		out.ExtractTimeout = def.ExtractTimeout
	}
	if out.MinEventsExtracted <= 0 {
		out.MinEventsExtracted = def.MinEventsExtracted
	}
	if out.VerifyTopN <= 0 {
		out.VerifyTopN = def.VerifyTopN
	}
	if out.VerifyTimeout <= 0 {
		out.VerifyTimeout = def.VerifyTimeout
	}
	if out.AutoVerifyThreshold <= 0 {
		out.AutoVerifyThreshold = def.AutoVerifyThreshold
	}
	if out.SearchCacheTTL <= 0 {
		out.SearchCacheTTL = def.SearchCacheTTL
	}
	if out.FetchCacheTTL <= 0 {
		out.FetchCacheTTL = def.FetchCacheTTL
	}
	if out.Workers <= 0 {
		out.Workers = def.Workers
	}
	return &out
}
