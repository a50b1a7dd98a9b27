// Package logger provides structured logging with context extraction,
// credential redaction, and Sentry integration.
//
// This package extends the standard library's log/slog with three capabilities:
// automatic context-based attribute injection, redaction of delivery
// credentials and API tokens before records reach any destination, and
// optional Sentry error reporting.
//
// # Overview
//
// The package provides:
//   - Context extractors that automatically inject request-scoped values (e.g., request IDs)
//   - A decorator pattern that wraps any slog.Handler to add extraction behavior
//   - Mandatory redaction of bearer tokens and long secret-like strings (see pkg/redact)
//   - Sentry integration for error tracking with graceful fallback when unconfigured
//   - Multi-handler support for routing logs to multiple destinations
//
// # Basic Usage
//
// Create a logger with context extractors:
//
//	// Define an extractor for request ID
//	requestIDExtractor := func(ctx context.Context) (slog.Attr, bool) {
//		if reqID, ok := ctx.Value("request_id").(string); ok && reqID != "" {
//			return slog.String("request_id", reqID), true
//		}
//		return slog.Attr{}, false
//	}
//
//	log := logger.New(requestIDExtractor)
//
//	ctx := context.WithValue(context.Background(), "request_id", "abc-123")
//	log.InfoContext(ctx, "delivery submitted", slog.Int("status", 200))
//	// Output: {"level":"INFO","msg":"delivery submitted","status":200,"request_id":"abc-123"}
//
// # Redaction
//
// Every handler built by this package is wrapped with redact.NewHandler, so
// bearer tokens and API-key-like strings never appear in stdout or Sentry
// even when a caller logs a raw error or response body.
//
// # Sentry Integration
//
// For production error tracking, use NewWithSentry:
//
//	cfg := logger.SentryConfig{
//		DSN:         os.Getenv("SENTRY_DSN"),
//		Environment: "production",
//		MinLevel:    slog.LevelWarn,
//	}
//
//	log := logger.NewWithSentry(cfg, requestIDExtractor)
//
// If SENTRY_DSN is empty, the logger gracefully falls back to stdout-only
// logging, making it safe to use the same code path in development and
// production.
package logger
