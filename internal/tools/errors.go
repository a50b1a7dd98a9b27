package tools

import "errors"

var (
	// ErrInvalidHeaders is returned when custom_headers is neither a JSON
	// object nor a JSON-encoded object string.
	ErrInvalidHeaders = errors.New("tools: custom_headers must be a JSON object")

	// ErrRecipientsFileUnreadable is returned when the recipients CSV
	// reference cannot be read or parsed.
	ErrRecipientsFileUnreadable = errors.New("tools: recipients file unreadable")

	// ErrTemplatesUnavailable is returned when a request names a template
	// but no template directory was configured at startup.
	ErrTemplatesUnavailable = errors.New("tools: no template directory configured")
)
