package conf

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	aitypes "github.com/eventscope/eventscope/internal/ai/types"
	"github.com/eventscope/eventscope/internal/pkg/logger"
	"github.com/eventscope/eventscope/internal/research"
	searchtypes "github.com/eventscope/eventscope/internal/websearch/types"
)

// Config aggregates all module configuration
type Config struct {
	Research research.Config            `mapstructure:"research"`
	Search   searchtypes.ProviderConfig `mapstructure:"search"`
	AI       AIConfig                   `mapstructure:"ai"`
	Log      logger.Config              `mapstructure:"log"`
}

// AIConfig selects and configures the completion provider
type AIConfig struct {
	Vendor string         `mapstructure:"vendor"` // openai, anthropic
	Config aitypes.Config `mapstructure:",squash"`
}

// LoadConfig reads configuration from the given file, layering environment
// variables and defaults underneath.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("EVENTSCOPE")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	def := research.DefaultConfig()
	v.SetDefault("research.max_search_queries", def.MaxSearchQueries)
	v.SetDefault("research.results_per_query", def.ResultsPerQuery)
	v.SetDefault("research.search_timeout", def.SearchTimeout)
	v.SetDefault("research.max_sources_to_fetch", def.MaxSourcesToFetch)
	v.SetDefault("research.fetch_timeout", def.FetchTimeout)
	v.SetDefault("research.max_content_length", def.MaxContentLength)
	v.SetDefault("research.min_word_count", def.MinWordCount)
	v.SetDefault("research.min_sources_fetched", def.MinSourcesFetched)
	v.SetDefault("research.extract_timeout", def.ExtractTimeout)
	v.SetDefault("research.min_events_extracted", def.MinEventsExtracted)
	v.SetDefault("research.verify_top_n", def.VerifyTopN)
	v.SetDefault("research.verify_timeout", def.VerifyTimeout)
	v.SetDefault("research.auto_verify_threshold", def.AutoVerifyThreshold)
	v.SetDefault("research.search_cache_ttl", def.SearchCacheTTL)
	v.SetDefault("research.fetch_cache_ttl", def.FetchCacheTTL)
	v.SetDefault("research.workers", def.Workers)

	v.SetDefault("search.id", string(searchtypes.ProviderGoogleNews))
	v.SetDefault("search.name", "Google News")

	v.SetDefault("ai.vendor", "openai")
	v.SetDefault("ai.timeout", 30*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.output", "console")
}
