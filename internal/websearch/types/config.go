package types

type ProviderID string

const (
	ProviderTavily     ProviderID = "tavily"
	ProviderSearXNG    ProviderID = "searxng"
	ProviderGoogleNews ProviderID = "googlenews"
)

// ProviderConfig represents search provider configuration
type ProviderConfig struct {
	ID   ProviderID `json:"id" mapstructure:"id"`
	Name string     `json:"name" mapstructure:"name"`

	// API settings
	APIHost string `json:"api_host" mapstructure:"api_host"`
	APIKey  string `json:"api_key,omitempty" mapstructure:"api_key"`

	// SearXNG basic auth
	BasicAuthUsername string `json:"basic_auth_username,omitempty" mapstructure:"basic_auth_username"`
	BasicAuthPassword string `json:"basic_auth_password,omitempty" mapstructure:"basic_auth_password"`

	// Google News feed edition settings
	Language string `json:"language,omitempty" mapstructure:"language"` // e.g. "en-US"
	Country  string `json:"country,omitempty" mapstructure:"country"`   // e.g. "US"

	// Optional settings
	Timeout    int `json:"timeout,omitempty" mapstructure:"timeout"`         // seconds
	MaxRetries int `json:"max_retries,omitempty" mapstructure:"max_retries"` // default: 3
}

// Validate validates the provider configuration
func (c *ProviderConfig) Validate() error {
	if c.ID == "" {
		return ErrInvalidProviderID
	}
	if c.Name == "" {
		return ErrInvalidProviderName
	}

	switch c.ID {
	case ProviderGoogleNews:
		// RSS endpoint, no key and the host has a default.
	case ProviderSearXNG:
		if c.APIHost == "" {
			return ErrInvalidAPIHost
		}
		if c.BasicAuthUsername != "" && c.BasicAuthPassword == "" {
			return ErrMissingBasicAuthPassword
		}
	default:
		if c.APIHost == "" {
			return ErrInvalidAPIHost
		}
		if c.APIKey == "" {
			return ErrMissingAPIKey
		}
	}

	return nil
}
