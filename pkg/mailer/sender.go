package mailer

import "context"

// Sender defines the minimal interface that delivery providers must
// implement. It accepts a fully-prepared Email and handles the actual
// delivery, returning the provider-assigned delivery identifier.
type Sender interface {
	// Send delivers an email message.
	// The Email must have To, Subject, and at least one of Text/HTML set.
	// Returns the remote delivery handle, or an error if delivery fails.
	Send(ctx context.Context, email *Email) (string, error)
}
