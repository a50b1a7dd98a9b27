// Package redact masks credential-looking substrings in text before it is
// logged or surfaced to a caller.
//
// The Blastengine API authenticates with a derived bearer token, and its
// error bodies occasionally echo request headers or credentials back. Every
// piece of remote-originating text in this repository passes through
// Sanitize before reaching a log sink or an error message.
//
// # Rules
//
// Sanitize applies three irreversible transformations, in order:
//
//   - "Bearer <token>" values (20+ base64 characters) become "Bearer ***",
//     matched case-insensitively
//   - bare alphanumeric runs of 32 or more characters (API keys, digests)
//     become "***"
//   - output longer than 200 characters is truncated with a marker suffix
//
// # Logging integration
//
// NewHandler wraps any slog.Handler so that log messages and string
// attribute values are sanitized on every call:
//
//	h := redact.NewHandler(slog.NewJSONHandler(os.Stdout, nil))
//	log := slog.New(h)
//	log.Info("api error", slog.String("body", rawBody)) // body is masked
package redact
