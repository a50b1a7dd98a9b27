package blastengine

import (
	"errors"
	"time"
)

// DefaultBaseURL is the production Blastengine API endpoint.
const DefaultBaseURL = "https://app.engn.jp/api/v1"

// Config holds Blastengine API client configuration.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	LoginID    string        `env:"BLASTENGINE_LOGIN_ID,required"`
	APIKey     string        `env:"BLASTENGINE_API_KEY,required"`
	BaseURL    string        `env:"BLASTENGINE_BASE_URL" envDefault:"https://app.engn.jp/api/v1"`
	Timeout    time.Duration `env:"BLASTENGINE_TIMEOUT" envDefault:"15s"`
	MaxRetries int           `env:"BLASTENGINE_MAX_RETRIES" envDefault:"2"`
}

// applyDefaults fills zero values so a hand-built Config behaves like an
// env-parsed one.
func (c *Config) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = 15 * time.Second
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
}

func (c *Config) validate() error {
	if c.LoginID == "" {
		return errors.Join(ErrInvalidConfig, errors.New("login id is required"))
	}
	if c.APIKey == "" {
		return errors.Join(ErrInvalidConfig, errors.New("api key is required"))
	}
	return nil
}
