package logger

import (
	"log/slog"
	"os"

	"github.com/dmitrymomot/blastengine/pkg/redact"
)

// New creates a JSON-formatted logger with optional context extractors.
// Every record passes through the redaction handler, so remote error bodies
// and credential-looking values never reach the sink verbatim.
func New(extractors ...ContextExtractor) *slog.Logger {
	log := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	return slog.New(NewContextHandler(redact.NewHandler(log), extractors...))
}
