// Package mailer provides the email message model, recipient and schedule
// validation, and markdown template rendering used by the delivery tools.
//
// # Overview
//
// The package separates three concerns:
//
//   - Email and Attachment model the prepared message handed to a provider
//   - Sender is the minimal provider interface; the Blastengine adapter
//     lives in the blastengine subpackage
//   - Mailer ties rendering and sending together for templated messages
//
// # Validation
//
// Recipient lists arrive from workflow hosts as free-form strings.
// NormalizeEmails splits on commas and newlines, checks address syntax, and
// de-duplicates case-insensitively while preserving first-seen casing:
//
//	emails, err := mailer.NormalizeEmails("a@b.com, c@d.com\nE@F.COM")
//	// ["a@b.com", "c@d.com", "E@F.COM"]
//
// ParseSchedule accepts ISO 8601 timestamps, treats naive values as UTC, and
// rejects anything not strictly in the future.
//
// # Templates
//
// Templates are markdown files with YAML frontmatter:
//
//	---
//	Subject: Welcome {{.Name}}
//	---
//	Hello **{{.Name}}**!
//
// The Renderer executes the body as a text/template, converts the markdown
// with goldmark, sanitizes the result with bluemonday, and wraps it in an
// HTML layout. The pre-conversion markdown doubles as the plain-text part.
//
// # Sending
//
//	m := mailer.New(sender, renderer, cfg)
//	deliveryID, err := m.Send(ctx, mailer.SendParams{
//		To:       "alice@example.com",
//		Template: "welcome.md",
//		Data:     map[string]string{"Name": "Alice"},
//	})
package mailer
