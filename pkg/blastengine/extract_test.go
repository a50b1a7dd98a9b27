package blastengine

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func TestExtractErrorMessage_FieldErrorMap(t *testing.T) {
	t.Parallel()

	body := []byte(`{"error_messages": {"to": ["is required", "must be an email"], "from": "is invalid"}}`)
	msg := extractErrorMessage(400, body)

	require.Contains(t, msg, "api error (400)")
	require.Contains(t, msg, "from: is invalid")
	require.Contains(t, msg, "to: is required")
	require.Contains(t, msg, "to: must be an email")
}

func TestExtractErrorMessage_FieldErrorMapBounded(t *testing.T) {
	t.Parallel()

	body := []byte(`{"error_messages": {"a": ["1","2","3","4","5"], "b": ["x"], "c": ["y"], "d": ["z"], "e": ["w"], "f": ["v"]}}`)
	msg := extractErrorMessage(422, body)

	// At most 3 items per field and 5 fields overall.
	require.NotContains(t, msg, "a: 4")
	require.LessOrEqual(t, strings.Count(msg, ";")+1, 5)
}

func TestExtractErrorMessage_StringShapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want string
	}{
		{"message", `{"message": "rate limited"}`, "rate limited"},
		{"error", `{"error": "bad delivery"}`, "bad delivery"},
		{"error_message", `{"error_message": "nope"}`, "nope"},
		{"errors string", `{"errors": "several things"}`, "several things"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			msg := extractErrorMessage(429, []byte(tt.body))
			require.Contains(t, msg, tt.want)
		})
	}
}

func TestExtractErrorMessage_ShapePrecedence(t *testing.T) {
	t.Parallel()

	// error_messages wins over message; message wins over error.
	body := []byte(`{"error_messages": {"subject": ["missing"]}, "message": "generic", "error": "other"}`)
	msg := extractErrorMessage(400, body)
	require.Contains(t, msg, "subject: missing")
	require.NotContains(t, msg, "generic")

	body = []byte(`{"message": "generic", "error": "other"}`)
	msg = extractErrorMessage(400, body)
	require.Contains(t, msg, "generic")
	require.NotContains(t, msg, "other")
}

func TestExtractErrorMessage_ListShape(t *testing.T) {
	t.Parallel()

	body := []byte(`{"errors": ["first", "second", "third", "fourth"]}`)
	msg := extractErrorMessage(400, body)

	require.Contains(t, msg, "first, second, third")
	require.NotContains(t, msg, "fourth")
}

func TestExtractErrorMessage_NestedObjectShape(t *testing.T) {
	t.Parallel()

	body := []byte(`{"errors": {"subject": "is required", "to": ["bad address"]}}`)
	msg := extractErrorMessage(422, body)

	require.Contains(t, msg, "subject: is required")
	require.Contains(t, msg, "to:")
}

func TestExtractErrorMessage_RawTextFallback(t *testing.T) {
	t.Parallel()

	msg := extractErrorMessage(502, []byte("<html>Bad Gateway</html>"))
	require.Contains(t, msg, "api error (502)")
	require.Contains(t, msg, "Bad Gateway")
}

func TestExtractErrorMessage_RawTextBounded(t *testing.T) {
	t.Parallel()

	// Only the first 500 bytes of an unparseable body are considered, and
	// the sanitizer truncates further.
	raw := strings.Repeat("junk ", 400)
	msg := extractErrorMessage(500, []byte(raw))
	require.Less(t, len(msg), 600)
}

func TestExtractErrorMessage_RawTextKeepsRunesWhole(t *testing.T) {
	t.Parallel()

	// The 500-byte cut of an unparseable body must land on a rune
	// boundary even when the boundary falls inside Japanese text.
	raw := strings.Repeat("a", 400) + strings.Repeat("失敗", 20)
	msg := extractErrorMessage(500, []byte(raw))

	require.True(t, utf8.ValidString(msg))
	require.Contains(t, msg, "失敗")
}

func TestExtractErrorMessage_EmptyBody(t *testing.T) {
	t.Parallel()

	require.Equal(t, "api error (503)", extractErrorMessage(503, nil))
}

func TestExtractErrorMessage_Redacts(t *testing.T) {
	t.Parallel()

	secret := strings.Repeat("AbCd1234", 5)
	msg := extractErrorMessage(401, []byte(`{"message": "token `+secret+` expired"}`))
	require.NotContains(t, msg, secret)
}

func TestExtractDeliveryID_NumericAndString(t *testing.T) {
	t.Parallel()

	id, err := extractDeliveryID(&apiResponse{status: 200, body: []byte(`{"delivery_id": "abc"}`)})
	require.NoError(t, err)
	require.Equal(t, "abc", id)

	id, err = extractDeliveryID(&apiResponse{status: 201, body: []byte(`{"id": 977}`)})
	require.NoError(t, err)
	require.Equal(t, "977", id)
}

func TestBackoff_DoublesWithoutCap(t *testing.T) {
	t.Parallel()

	require.Equal(t, "1s", backoff(0).String())
	require.Equal(t, "2s", backoff(1).String())
	require.Equal(t, "4s", backoff(2).String())
	require.Equal(t, "8s", backoff(3).String())
}
