package tools

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrymomot/blastengine/pkg/attachments"
	"github.com/dmitrymomot/blastengine/pkg/blastengine"
	"github.com/dmitrymomot/blastengine/pkg/mailer"
	"github.com/dmitrymomot/blastengine/pkg/redact"
)

// attachmentErrors are the failures a bad attachment reference produces.
var attachmentErrors = []error{
	attachments.ErrInvalidRef,
	attachments.ErrNotFound,
	attachments.ErrAccessDenied,
	attachments.ErrFetchFailed,
	attachments.ErrEmptyFile,
	attachments.ErrTooManyFiles,
	attachments.ErrTooLarge,
	attachments.ErrDisallowedType,
}

// parameterErrors are validation failures the caller can fix by adjusting
// the tool inputs.
var parameterErrors = []error{
	mailer.ErrNoRecipient,
	mailer.ErrNoSubject,
	mailer.ErrNoSender,
	mailer.ErrNoContent,
	mailer.ErrInvalidEmail,
	mailer.ErrTooManyRecipients,
	mailer.ErrInvalidSchedule,
	mailer.ErrScheduleInPast,
	mailer.ErrTemplateNotFound,
	mailer.ErrLayoutNotFound,
	mailer.ErrRenderFailed,
	ErrInvalidHeaders,
	ErrRecipientsFileUnreadable,
	ErrTemplatesUnavailable,
}

// Hints maps an error to actionable suggestions for the workflow author.
func Hints(err error) []string {
	var hints []string

	var apiErr *blastengine.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			hints = append(hints, "Verify the Blastengine login ID and API key in the provider settings")
		case http.StatusTooManyRequests:
			hints = append(hints, "Too many requests in a short period; wait a few seconds and retry")
		case http.StatusBadRequest:
			hints = append(hints, "Check the request parameters (subject, body, recipients)")
		}
	}

	for _, target := range attachmentErrors {
		if errors.Is(err, target) {
			hints = append(hints, "Check the attachment limits: extension, size, and file count")
			break
		}
	}

	for _, target := range parameterErrors {
		if errors.Is(err, target) {
			hints = append(hints, "Check the request parameters (subject, body, recipients)")
			break
		}
	}

	return dedupeHints(hints)
}

// ErrorText formats a failure for display. The message is redacted so
// credentials from error chains never reach the workflow host.
func ErrorText(action string, err error) string {
	text := fmt.Sprintf("%s failed: %s", action, redact.Error(err))
	if hints := Hints(err); len(hints) > 0 {
		lines := make([]string, len(hints))
		for i, hint := range hints {
			lines[i] = "Hint: " + hint
		}
		text += "\n\n" + strings.Join(lines, "\n")
	}
	return text
}

func dedupeHints(hints []string) []string {
	if len(hints) < 2 {
		return hints
	}
	seen := make(map[string]struct{}, len(hints))
	out := hints[:0]
	for _, h := range hints {
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, h)
	}
	return out
}
