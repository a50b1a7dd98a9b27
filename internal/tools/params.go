package tools

import (
	"encoding/json"
	"strings"
)

// TransactionalParams are the inputs of the send-transactional-email tool.
// Recipient fields accept several addresses separated by commas or newlines.
// When template is set it supplies the body (and, via frontmatter, the
// subject); text_body and html_body are ignored.
type TransactionalParams struct {
	To            string         `json:"to"`
	CC            string         `json:"cc"`
	BCC           string         `json:"bcc"`
	Subject       string         `json:"subject"`
	TextBody      string         `json:"text_body"`
	HTMLBody      string         `json:"html_body"`
	Template      string         `json:"template"`
	TemplateData  map[string]any `json:"template_data"`
	FromAddress   string         `json:"from_address"`
	FromName      string         `json:"from_name"`
	ReplyTo       string         `json:"reply_to"`
	CustomHeaders Headers        `json:"custom_headers"`
	Attachments   []string       `json:"attachments"`
}

// BulkParams are the inputs of the send-bulk-email tool. Recipients may be
// listed inline, loaded from a CSV file reference, or both.
type BulkParams struct {
	Recipients     string   `json:"recipients"`
	RecipientsFile string   `json:"recipients_file"`
	Subject        string   `json:"subject"`
	TextBody       string   `json:"text_body"`
	HTMLBody       string   `json:"html_body"`
	FromAddress    string   `json:"from_address"`
	FromName       string   `json:"from_name"`
	ScheduleAt     string   `json:"schedule_at"`
	Attachments    []string `json:"attachments"`
}

// Headers is a custom-header map that unmarshals from either a JSON object
// or a JSON-encoded object passed as a string. Workflow hosts emit both
// shapes depending on how the field was filled in.
type Headers map[string]string

func (h *Headers) UnmarshalJSON(data []byte) error {
	data = []byte(strings.TrimSpace(string(data)))
	if len(data) == 0 || string(data) == "null" {
		*h = nil
		return nil
	}

	// String form: the value is a JSON object encoded as a string.
	if data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			*h = nil
			return nil
		}
		data = []byte(raw)
	}

	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return ErrInvalidHeaders
	}

	normalized := make(Headers, len(m))
	for k, v := range m {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		normalized[k] = strings.TrimSpace(v)
	}
	if len(normalized) == 0 {
		*h = nil
		return nil
	}
	*h = normalized
	return nil
}
