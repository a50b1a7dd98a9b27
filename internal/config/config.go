// Package config aggregates environment configuration for the plugin
// process and validates delivery credentials before any API call is made.
package config

import (
	"errors"
	"regexp"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dmitrymomot/blastengine/pkg/attachments"
	"github.com/dmitrymomot/blastengine/pkg/blastengine"
	"github.com/dmitrymomot/blastengine/pkg/logger"
	"github.com/dmitrymomot/blastengine/pkg/mailer"
	bemailer "github.com/dmitrymomot/blastengine/pkg/mailer/blastengine"
)

// MinAPIKeyLength is the shortest API key accepted by credential
// validation. Blastengine keys are long random strings; anything shorter
// is a paste error, and rejecting it early avoids burning API calls on
// guaranteed 401s.
const MinAPIKeyLength = 16

// loginIDPattern matches the characters Blastengine allows in login IDs
// (usernames or email addresses).
var loginIDPattern = regexp.MustCompile(`^[A-Za-z0-9._+\-@]+$`)

// Config is the full runtime configuration of the plugin process.
type Config struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`

	// ShutdownTimeout bounds graceful drain on SIGTERM.
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	Blastengine blastengine.Config
	Sender      bemailer.Config
	Mailer      mailer.Config
	Attachments attachments.Config
	Sentry      logger.SentryConfig
}

// Load reads a local .env file if present, parses the environment into a
// Config, and validates the delivery credentials.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, errors.Join(ErrParseFailed, err)
	}

	if err := ValidateCredentials(cfg.Blastengine.LoginID, cfg.Blastengine.APIKey); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ValidateCredentials checks credential shape before any network call.
// Error messages never include the API key itself.
func ValidateCredentials(loginID, apiKey string) error {
	if loginID == "" || apiKey == "" {
		return ErrMissingCredentials
	}
	if !loginIDPattern.MatchString(loginID) {
		return ErrInvalidLoginID
	}
	if len(apiKey) < MinAPIKeyLength {
		return ErrAPIKeyTooShort
	}
	return nil
}
