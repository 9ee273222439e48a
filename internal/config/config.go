package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/leofalp/sitebrief/core/brief"
	"github.com/leofalp/sitebrief/core/webpage"
)

// ErrMissingAPIKey is fatal: without a credential no request can be made.
var ErrMissingAPIKey = errors.New("sitebrief: no API key found; create a .env file with OPENAI_API_KEY=your-key-here or export the variable")

// Config holds everything read from the environment.
type Config struct {
	// APIKey authenticates against the chat completions API. Required.
	APIKey string `mapstructure:"openai_api_key"`

	// BaseURL overrides the API endpoint. Empty means the provider
	// default.
	BaseURL string `mapstructure:"openai_api_base_url"`

	// Model names the chat model.
	Model string `mapstructure:"sitebrief_model"`

	// UserAgent is sent with every page fetch.
	UserAgent string `mapstructure:"sitebrief_user_agent"`

	// MaxDocumentChars caps the aggregated brochure document.
	MaxDocumentChars int `mapstructure:"sitebrief_max_document_chars"`

	// FetchTimeout bounds every page fetch.
	FetchTimeout time.Duration `mapstructure:"sitebrief_fetch_timeout"`
}

// Load builds the configuration. A .env file in the working directory is
// loaded into the process environment first and wins over already-set
// variables; a missing file is fine.
func Load() (*Config, error) {
	if err := godotenv.Overload(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()

	// Secrets carry no default; binding registers the keys so Unmarshal
	// picks them up.
	if err := v.BindEnv("openai_api_key", "OPENAI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind environment: %w", err)
	}
	if err := v.BindEnv("openai_api_base_url", "OPENAI_API_BASE_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind environment: %w", err)
	}

	v.SetDefault("sitebrief_model", brief.DefaultModel)
	v.SetDefault("sitebrief_user_agent", webpage.DefaultUserAgent)
	v.SetDefault("sitebrief_max_document_chars", brief.DefaultMaxDocumentChars)
	v.SetDefault("sitebrief_fetch_timeout", webpage.DefaultTimeout)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	return &cfg, nil
}

// Validate fails when the credential is absent. Called before any network
// activity.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// KeyWarnings reports at most one non-fatal finding about the API key,
// most specific first. Empty means the key looks valid.
func (c *Config) KeyWarnings() []string {
	if c.APIKey == "" {
		return nil
	}
	if !strings.HasPrefix(c.APIKey, "sk-proj-") {
		return []string{"API key found, but it doesn't look like a project key (sk-proj-...)"}
	}
	if strings.TrimSpace(c.APIKey) != c.APIKey {
		return []string{"API key has spaces or tabs around it. Please remove them."}
	}
	return nil
}
