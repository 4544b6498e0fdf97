package types

import (
	"errors"
	"time"
)

var ErrMissingAPIKey = errors.New("API key is required")

// Config is the shared provider configuration. BaseURL is optional; each
// provider falls back to its vendor endpoint.
type Config struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
	Model   string        `mapstructure:"model"`
}

// Validate validates the configuration and applies defaults
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	if c.Timeout == 0 {
		c.Timeout = 30 * time.Second
	}
	return nil
}
