package config

import "errors"

var (
	// ErrParseFailed is returned when environment parsing fails.
	ErrParseFailed = errors.New("config: parse failed")

	// ErrInvalidLoginID is returned when the login ID contains characters
	// outside the allowed set.
	ErrInvalidLoginID = errors.New("config: login ID contains invalid characters")

	// ErrAPIKeyTooShort is returned when the API key is shorter than the
	// minimum plausible length.
	ErrAPIKeyTooShort = errors.New("config: API key too short")

	// ErrMissingCredentials is returned when login ID or API key is empty.
	ErrMissingCredentials = errors.New("config: login ID and API key are required")
)
