package redact

import (
	"regexp"
	"unicode/utf8"
)

// MaxLength bounds sanitized output. Longer text is truncated with a marker
// so log lines stay readable and response bodies cannot flood a sink.
const MaxLength = 200

const truncationMarker = "... (truncated)"

var (
	// Authorization header values. The derived bearer token is base64, so
	// 20+ characters from the base64 alphabet after "Bearer " is masked.
	bearerPattern = regexp.MustCompile(`(?i)Bearer\s+[A-Za-z0-9+/=]{20,}`)

	// Bare secrets: API keys and hex digests are long unbroken alphanumeric
	// runs. 32 is the shortest credential Blastengine issues.
	secretPattern = regexp.MustCompile(`[A-Za-z0-9]{32,}`)
)

// Sanitize masks bearer tokens and credential-looking substrings in s and
// truncates the result to MaxLength. The transformation is irreversible.
func Sanitize(s string) string {
	if s == "" {
		return s
	}

	s = bearerPattern.ReplaceAllString(s, "Bearer ***")
	s = secretPattern.ReplaceAllString(s, "***")

	if len(s) > MaxLength {
		// Back off to a rune boundary so truncation never emits a split
		// multibyte character.
		cut := MaxLength
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut] + truncationMarker
	}
	return s
}

// Error sanitizes an error's message. Returns an empty string for nil.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return Sanitize(err.Error())
}
