// Package eventscope exposes the event research pipeline for embedding.
// The implementation lives under internal/; this package re-exports the
// types and constructors an embedding application needs, so consumers never
// import internal paths directly.
package eventscope

import (
	aifactory "github.com/eventscope/eventscope/internal/ai/factory"
	aitypes "github.com/eventscope/eventscope/internal/ai/types"
	"github.com/eventscope/eventscope/internal/research"
	"github.com/eventscope/eventscope/internal/webfetch"
	searchprovider "github.com/eventscope/eventscope/internal/websearch/provider"
	searchtypes "github.com/eventscope/eventscope/internal/websearch/types"
)

// Pipeline core.
type (
	Engine       = research.Engine
	Config       = research.Config
	Deps         = research.Deps
	Article      = research.Article
	Event        = research.Event
	VerifiedFact = research.VerifiedFact
	Result       = research.Result
	Metadata     = research.Metadata
)

var (
	ErrNoSearchProvider     = research.ErrNoSearchProvider
	ErrNoCompletionProvider = research.ErrNoCompletionProvider
)

// New creates a research engine. See research.New.
func New(cfg *Config, deps Deps) (*Engine, error) {
	return research.New(cfg, deps)
}

// DefaultConfig returns the calibrated pipeline defaults.
func DefaultConfig() *Config {
	return research.DefaultConfig()
}

// Web search. SearchProvider is the interface custom providers implement;
// NewSearchProvider builds one of the bundled providers from config.
type (
	SearchProvider       = searchprovider.Provider
	SearchProviderConfig = searchtypes.ProviderConfig
	SearchProviderID     = searchtypes.ProviderID
	SearchRequest        = searchtypes.SearchRequest
	SearchResponse       = searchtypes.SearchResponse
	SearchResult         = searchtypes.SearchResult
)

const (
	SearchProviderTavily     = searchtypes.ProviderTavily
	SearchProviderSearXNG    = searchtypes.ProviderSearXNG
	SearchProviderGoogleNews = searchtypes.ProviderGoogleNews
)

// NewSearchProvider creates a bundled search provider from config.
func NewSearchProvider(cfg *SearchProviderConfig) (SearchProvider, error) {
	return searchprovider.NewFactory().Create(cfg)
}

// Completions.
type (
	AIProvider = aitypes.Provider
	AIConfig   = aitypes.Config
	AIVendor   = aifactory.Vendor
)

const (
	VendorOpenAI    = aifactory.VendorOpenAI
	VendorAnthropic = aifactory.VendorAnthropic
)

// NewAIProvider creates a completion provider for the given vendor.
func NewAIProvider(vendor AIVendor, cfg *AIConfig) (AIProvider, error) {
	return aifactory.New(vendor, cfg)
}

// Content fetching. Deps.Fetcher defaults to NewFetcher() when nil.
type Fetcher = webfetch.Fetcher

// NewFetcher creates the default HTTP article fetcher.
func NewFetcher() Fetcher {
	return webfetch.New()
}
