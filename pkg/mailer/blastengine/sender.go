// Package blastengine adapts the Blastengine API client to the
// mailer.Sender interface and exposes the bulk campaign flow.
package blastengine

import (
	"context"
	"fmt"

	"github.com/dmitrymomot/blastengine/pkg/blastengine"
	"github.com/dmitrymomot/blastengine/pkg/mailer"
)

// Sender implements mailer.Sender using the Blastengine API.
type Sender struct {
	client *blastengine.Client
	config Config
}

// New creates a new Blastengine sender around an existing client.
func New(client *blastengine.Client, cfg Config) *Sender {
	return &Sender{
		client: client,
		config: cfg,
	}
}

// Send implements mailer.Sender with a transactional delivery.
// The API addresses a single recipient per transactional send, so the first
// To address goes on the wire as-is and any remaining To addresses are
// folded into cc.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) (string, error) {
	if len(email.To) == 0 {
		return "", mailer.ErrNoRecipient
	}

	payload, err := s.buildPayload(email)
	if err != nil {
		return "", err
	}

	payload.To = email.To[0]
	payload.CC = append(append([]string{}, email.CC...), email.To[1:]...)
	payload.BCC = email.BCC

	id, err := s.client.SendTransactional(ctx, payload, convertAttachments(email.Attachments))
	if err != nil {
		return "", fmt.Errorf("blastengine: failed to send email: %w", err)
	}
	return id, nil
}

// SendCampaign delivers one message to a recipient list via the bulk flow:
// begin, register recipients, commit. The three calls run in this strict
// order against the handle the begin call returns. A ScheduleAt on the email
// reserves the delivery for that time instead of sending immediately.
func (s *Sender) SendCampaign(ctx context.Context, email *mailer.Email, recipients []string) (string, error) {
	if len(recipients) == 0 {
		return "", mailer.ErrNoRecipient
	}

	payload, err := s.buildPayload(email)
	if err != nil {
		return "", err
	}

	id, err := s.client.CreateBulk(ctx, payload, convertAttachments(email.Attachments))
	if err != nil {
		return "", fmt.Errorf("blastengine: failed to begin bulk delivery: %w", err)
	}

	if err := s.client.UpdateBulk(ctx, id, recipients); err != nil {
		return "", fmt.Errorf("blastengine: failed to register recipients: %w", err)
	}

	committed, err := s.client.CommitBulk(ctx, id, email.ScheduleAt)
	if err != nil {
		return "", fmt.Errorf("blastengine: failed to commit bulk delivery: %w", err)
	}
	return committed, nil
}

// buildPayload assembles the recipient-independent part of the wire payload.
func (s *Sender) buildPayload(email *mailer.Email) (blastengine.Payload, error) {
	from := email.From
	if from == "" {
		from = s.config.SenderEmail
	}
	if from == "" {
		return blastengine.Payload{}, mailer.ErrNoSender
	}

	name := email.FromName
	if name == "" {
		name = s.config.SenderName
	}
	if name == "" {
		// The API rejects an empty display name; fall back to the address.
		name = from
	}

	headers := make(map[string]string, len(email.Headers)+1)
	for k, v := range email.Headers {
		headers[k] = v
	}
	if email.ReplyTo != "" {
		if _, ok := headers["Reply-To"]; !ok {
			headers["Reply-To"] = email.ReplyTo
		}
	}
	if len(headers) == 0 {
		headers = nil
	}

	return blastengine.Payload{
		Subject:       email.Subject,
		From:          blastengine.Address{Email: from, Name: name},
		TextPart:      email.Text,
		HTMLPart:      email.HTML,
		Encode:        "UTF-8",
		CustomHeaders: headers,
	}, nil
}

func convertAttachments(attachments []mailer.Attachment) []blastengine.Attachment {
	if len(attachments) == 0 {
		return nil
	}
	result := make([]blastengine.Attachment, len(attachments))
	for i, a := range attachments {
		result[i] = blastengine.Attachment{
			Filename:    a.Filename,
			ContentType: a.ContentType,
			Content:     a.Content,
		}
	}
	return result
}

// Ensure Sender implements mailer.Sender.
var _ mailer.Sender = (*Sender)(nil)
