package blastengine

import (
	"errors"
	"fmt"
)

// Sentinel errors classifying client failures.
var (
	// ErrInvalidConfig is returned by New when credentials are missing.
	ErrInvalidConfig = errors.New("blastengine: invalid configuration")

	// ErrTransport indicates a network-level failure after exhausting retries.
	ErrTransport = errors.New("blastengine: transport failure")

	// ErrRejected indicates a non-retryable 4xx response.
	ErrRejected = errors.New("blastengine: request rejected")

	// ErrUnavailable indicates a retryable status persisted through all attempts.
	ErrUnavailable = errors.New("blastengine: service unavailable")

	// ErrMalformedResponse indicates a success status whose body carried no
	// recognizable delivery identifier.
	ErrMalformedResponse = errors.New("blastengine: malformed response")
)

// APIError describes a failed API call. Message and Body are sanitized with
// pkg/redact before the error is constructed, so they are safe to log.
type APIError struct {
	kind       error
	Message    string
	Body       string
	StatusCode int // 0 for transport-level failures
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%v: status %d: %s", e.kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%v: %s", e.kind, e.Message)
}

// Unwrap exposes the classification sentinel for errors.Is.
func (e *APIError) Unwrap() error {
	return e.kind
}
