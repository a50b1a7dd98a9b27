package mailer

import (
	"fmt"
	"strings"
	"time"
)

// Recipient caps enforced before any remote call.
const (
	// MaxTransactionalRecipients caps each of to/cc/bcc on a transactional send.
	MaxTransactionalRecipients = 10

	// MaxBulkRecipients caps the recipient list of a bulk delivery.
	MaxBulkRecipients = 50
)

// NormalizeEmails flattens raw recipient values into a validated, ordered
// list. Each value may carry several addresses separated by commas or
// newlines. Duplicates are dropped case-insensitively, keeping the casing
// and position of the first occurrence.
func NormalizeEmails(values ...string) ([]string, error) {
	var emails []string
	for _, value := range values {
		value = strings.ReplaceAll(value, "\n", ",")
		for _, segment := range strings.Split(value, ",") {
			segment = strings.TrimSpace(segment)
			if segment == "" {
				continue
			}
			emails = append(emails, segment)
		}
	}

	deduped := make([]string, 0, len(emails))
	seen := make(map[string]struct{}, len(emails))
	for _, email := range emails {
		if err := validateEmailSyntax(email); err != nil {
			return nil, err
		}
		lowered := strings.ToLower(email)
		if _, ok := seen[lowered]; ok {
			continue
		}
		seen[lowered] = struct{}{}
		deduped = append(deduped, email)
	}
	return deduped, nil
}

// validateEmailSyntax applies the same coarse checks the delivery API does:
// exactly one @, non-empty local and domain parts, and a dot in the domain.
func validateEmailSyntax(email string) error {
	if strings.Count(email, "@") != 1 {
		return fmt.Errorf("%w: %s", ErrInvalidEmail, email)
	}
	local, domain, _ := strings.Cut(email, "@")
	if strings.TrimSpace(local) == "" || strings.TrimSpace(domain) == "" {
		return fmt.Errorf("%w: %s", ErrInvalidEmail, email)
	}
	if !strings.Contains(domain, ".") {
		return fmt.Errorf("%w: %s", ErrInvalidEmail, email)
	}
	return nil
}

// ValidateRecipients checks a normalized list against its cap.
func ValidateRecipients(emails []string, maximum int) error {
	if len(emails) == 0 {
		return ErrNoRecipient
	}
	if len(emails) > maximum {
		return fmt.Errorf("%w: %d addresses, maximum %d", ErrTooManyRecipients, len(emails), maximum)
	}
	return nil
}

// scheduleLayouts are the naive (timezone-less) timestamp forms accepted for
// scheduling. Naive values are interpreted as UTC.
var scheduleLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
}

// ParseSchedule parses an ISO 8601 schedule timestamp and verifies it lies
// strictly in the future of now. An empty value means no schedule.
func ParseSchedule(raw string, now time.Time) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		for _, layout := range scheduleLayouts {
			if naive, nerr := time.ParseInLocation(layout, raw, time.UTC); nerr == nil {
				parsed, err = naive, nil
				break
			}
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSchedule, raw)
	}

	parsed = parsed.UTC()
	if !parsed.After(now.UTC()) {
		return nil, ErrScheduleInPast
	}
	return &parsed, nil
}
