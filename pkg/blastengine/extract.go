package blastengine

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/dmitrymomot/blastengine/pkg/redact"
)

// deliveryIDFields are the field names a delivery identifier may appear
// under, in priority order. The API is inconsistent across endpoints.
var deliveryIDFields = []string{"delivery_id", "deliveryId", "id"}

// Bounds on how much of an error body is folded into a message.
const (
	maxErrorsPerField = 3
	maxErrorFields    = 5
	maxRawErrorBytes  = 500
)

// extractDeliveryID pulls the delivery handle out of a success response.
// Returns ErrMalformedResponse when the body is not JSON or carries no
// recognizable identifier.
func extractDeliveryID(resp *apiResponse) (string, error) {
	var data map[string]any
	if err := json.Unmarshal(resp.body, &data); err != nil {
		return "", &APIError{
			kind:       ErrMalformedResponse,
			StatusCode: resp.status,
			Message:    "response is not valid JSON",
			Body:       redact.Sanitize(string(resp.body)),
		}
	}

	for _, field := range deliveryIDFields {
		if v, ok := data[field]; ok {
			if id := stringifyID(v); id != "" {
				return id, nil
			}
		}
	}

	return "", &APIError{
		kind:       ErrMalformedResponse,
		StatusCode: resp.status,
		Message:    "response contains no delivery id",
		Body:       redact.Sanitize(string(resp.body)),
	}
}

// stringifyID renders an identifier value. Blastengine returns numeric ids
// on some endpoints and strings on others.
func stringifyID(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%v", val)
	case nil:
		return ""
	default:
		return fmt.Sprint(val)
	}
}

// extractErrorMessage normalizes the API's heterogeneous error bodies into a
// single sanitized message. Shapes are tried in order of precedence: the
// per-field error_messages map, then a message/error/error_message/errors
// value as string, list, or nested object, then raw body text, then the bare
// status code.
func extractErrorMessage(status int, body []byte) string {
	var data map[string]any
	if err := json.Unmarshal(body, &data); err == nil && data != nil {
		if msg := fromFieldErrorMap(data["error_messages"]); msg != "" {
			return fmt.Sprintf("api error (%d): %s", status, msg)
		}

		for _, field := range []string{"message", "error", "error_message", "errors"} {
			v, ok := data[field]
			if !ok || v == nil {
				continue
			}
			if msg := fromErrorValue(v); msg != "" {
				return fmt.Sprintf("api error (%d): %s", status, msg)
			}
		}
	}

	if len(body) > 0 {
		raw := body
		if len(raw) > maxRawErrorBytes {
			// Cut on a rune boundary; error bodies are often Japanese text.
			cut := maxRawErrorBytes
			for cut > 0 && !utf8.RuneStart(raw[cut]) {
				cut--
			}
			raw = raw[:cut]
		}
		return fmt.Sprintf("api error (%d): %s", status, redact.Sanitize(string(raw)))
	}

	return fmt.Sprintf("api error (%d)", status)
}

// fromFieldErrorMap handles the {"error_messages": {"field": [...]}} shape.
// Keys are sorted so the assembled message is deterministic.
func fromFieldErrorMap(v any) string {
	fields, ok := v.(map[string]any)
	if !ok || len(fields) == 0 {
		return ""
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var parts []string
	for _, key := range keys {
		switch val := fields[key].(type) {
		case []any:
			for i, item := range val {
				if i == maxErrorsPerField {
					break
				}
				parts = append(parts, fmt.Sprintf("%s: %v", key, item))
			}
		case string:
			parts = append(parts, fmt.Sprintf("%s: %s", key, val))
		}
	}

	if len(parts) > maxErrorFields {
		parts = parts[:maxErrorFields]
	}
	for i, p := range parts {
		parts[i] = redact.Sanitize(p)
	}
	return strings.Join(parts, "; ")
}

// fromErrorValue handles a message value that may be a string, a list of
// strings, or a nested validation object.
func fromErrorValue(v any) string {
	switch val := v.(type) {
	case string:
		return redact.Sanitize(val)

	case []any:
		n := min(len(val), maxErrorsPerField)
		parts := make([]string, 0, n)
		for _, item := range val[:n] {
			parts = append(parts, redact.Sanitize(fmt.Sprint(item)))
		}
		return strings.Join(parts, ", ")

	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		if len(keys) > maxErrorFields {
			keys = keys[:maxErrorFields]
		}

		parts := make([]string, 0, len(keys))
		for _, key := range keys {
			switch item := val[key].(type) {
			case string, []any:
				parts = append(parts, redact.Sanitize(fmt.Sprintf("%s: %v", key, item)))
			}
		}
		return strings.Join(parts, "; ")
	}
	return ""
}
