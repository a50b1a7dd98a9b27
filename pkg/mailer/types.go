package mailer

import "time"

// Email represents a fully-prepared email message ready for delivery.
type Email struct {
	Headers     map[string]string // Custom headers
	Subject     string            // Email subject
	HTML        string            // HTML body content
	Text        string            // Plain text alternative
	From        string            // Sender email address
	FromName    string            // Sender display name
	ReplyTo     string            // Reply-to address
	To          []string          // Recipients (at least one required)
	CC          []string          // Carbon copy recipients
	BCC         []string          // Blind carbon copy recipients
	ScheduleAt  *time.Time        // Optional future delivery time (bulk only)
	Attachments []Attachment      // File attachments
}

// Attachment represents an email attachment with its content resolved into
// memory. Resolution from disk or object storage lives in pkg/attachments.
type Attachment struct {
	Filename    string // Display name for the attachment
	ContentType string // MIME type (e.g., "application/pdf")
	Content     []byte // Raw file content
}

// TotalAttachmentSize returns the combined size of all attachments in bytes.
func (e *Email) TotalAttachmentSize() int64 {
	var total int64
	for _, a := range e.Attachments {
		total += int64(len(a.Content))
	}
	return total
}

// RecipientCount returns the total number of addresses across to/cc/bcc.
func (e *Email) RecipientCount() int {
	return len(e.To) + len(e.CC) + len(e.BCC)
}
