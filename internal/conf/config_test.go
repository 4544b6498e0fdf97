package conf

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
research:
  max_search_queries: 6
  search_timeout: 3s

search:
  id: tavily
  name: Tavily
  api_host: https://api.tavily.com
  api_key: test-key

ai:
  vendor: anthropic
  api_key: sk-test
  model: claude-sonnet-4-20250514

log:
  level: debug
  format: console
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	// overridden values
	assert.Equal(t, 6, config.Research.MaxSearchQueries)
	assert.Equal(t, 3*time.Second, config.Research.SearchTimeout)
	assert.Equal(t, "tavily", string(config.Search.ID))
	assert.Equal(t, "anthropic", config.AI.Vendor)
	assert.Equal(t, "sk-test", config.AI.Config.APIKey)
	assert.Equal(t, "debug", config.Log.Level)

	// defaults retained where the file is silent
	assert.Equal(t, 3, config.Research.ResultsPerQuery)
	assert.Equal(t, 8, config.Research.MaxSourcesToFetch)
	assert.Equal(t, 30*time.Minute, config.Research.SearchCacheTTL)
	assert.Equal(t, 60*time.Minute, config.Research.FetchCacheTTL)
	assert.Equal(t, 30*time.Second, config.AI.Config.Timeout)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig("/nonexistent/config.yaml")
	assert.Error(t, err)
}

