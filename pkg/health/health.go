package health

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dmitrymomot/blastengine/pkg/logger"
)

const (
	defaultTimeout = 5 * time.Second

	// StatusHealthy indicates all checks passed.
	StatusHealthy = "healthy"
	// StatusUnhealthy indicates one or more checks failed.
	StatusUnhealthy = "unhealthy"
)

// CheckFunc is the standard health check function signature.
type CheckFunc func(ctx context.Context) error

// Checks is a map of named health check functions.
type Checks map[string]CheckFunc

// Response represents a health check response.
type Response struct {
	Checks map[string]Check `json:"checks,omitempty"`
	Status string           `json:"status"`
}

// Check represents the status of a single health check.
type Check struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// options holds health check configuration.
type options struct {
	logger  *slog.Logger
	timeout time.Duration
}

// Option configures health check behavior.
type Option func(*options)

// WithTimeout sets the timeout shared by all checks.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithLogger sets the logger for failed-check reporting.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func newOptions(opts ...Option) *options {
	o := &options{
		timeout: defaultTimeout,
		logger:  logger.NewNope(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

type checkResult struct {
	name  string
	check Check
}

// runChecks executes all checks in parallel under a shared deadline and
// aggregates the outcome. A check that runs out the deadline is reported
// as ErrCheckTimeout rather than a bare context error.
func runChecks(ctx context.Context, checks Checks, o *options) *Response {
	if len(checks) == 0 {
		return &Response{Status: StatusHealthy}
	}

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	results := make(chan checkResult, len(checks))
	for name, check := range checks {
		go func(name string, check CheckFunc) {
			err := check(ctx)
			if err != nil && errors.Is(err, context.DeadlineExceeded) {
				err = ErrCheckTimeout
			}

			result := Check{Status: StatusHealthy}
			if err != nil {
				result = Check{Status: StatusUnhealthy, Error: err.Error()}
				o.logger.WarnContext(ctx, "health check failed",
					slog.String("check", name),
					slog.String("error", err.Error()),
				)
			}
			results <- checkResult{name: name, check: result}
		}(name, check)
	}

	status := StatusHealthy
	collected := make(map[string]Check, len(checks))
	for range checks {
		r := <-results
		collected[r.name] = r.check
		if r.check.Status == StatusUnhealthy {
			status = StatusUnhealthy
		}
	}

	return &Response{Status: status, Checks: collected}
}
