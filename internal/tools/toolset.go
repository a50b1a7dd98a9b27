package tools

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/dmitrymomot/blastengine/pkg/attachments"
	"github.com/dmitrymomot/blastengine/pkg/logger"
	"github.com/dmitrymomot/blastengine/pkg/mailer"
)

// Sender is the delivery backend the tools drive. It is satisfied by the
// Blastengine sender adapter.
type Sender interface {
	Send(ctx context.Context, email *mailer.Email) (string, error)
	SendCampaign(ctx context.Context, email *mailer.Email, recipients []string) (string, error)
}

// Toolset bundles the two email tools around a shared sender and
// attachment resolver.
type Toolset struct {
	sender    Sender
	resolver  attachments.Resolver
	templates *mailer.Mailer
	policy    *bluemonday.Policy
	cfg       mailer.Config
	log       *slog.Logger
}

// Option configures optional Toolset collaborators.
type Option func(*Toolset)

// WithTemplates enables the template parameter on the transactional tool.
// Without it, requests naming a template fail with ErrTemplatesUnavailable.
func WithTemplates(m *mailer.Mailer) Option {
	return func(t *Toolset) {
		t.templates = m
	}
}

// New creates a Toolset. A nil logger discards tool logs.
func New(sender Sender, resolver attachments.Resolver, cfg mailer.Config, log *slog.Logger, opts ...Option) *Toolset {
	if log == nil {
		log = logger.NewNope()
	}
	t := &Toolset{
		sender:   sender,
		resolver: resolver,
		policy:   bluemonday.UGCPolicy(),
		cfg:      cfg,
		log:      log,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SendTransactional validates the parameters and submits an immediate
// delivery. Beyond the first address, extra To recipients ride along as CC
// on the wire; the result still reports them as recipients.
func (t *Toolset) SendTransactional(ctx context.Context, params TransactionalParams) (Result, error) {
	to, err := mailer.NormalizeEmails(params.To)
	if err != nil {
		return Result{}, err
	}
	if err := mailer.ValidateRecipients(to, mailer.MaxTransactionalRecipients); err != nil {
		return Result{}, err
	}

	cc, err := t.optionalRecipients(params.CC, mailer.MaxTransactionalRecipients)
	if err != nil {
		return Result{}, err
	}
	bcc, err := t.optionalRecipients(params.BCC, mailer.MaxTransactionalRecipients)
	if err != nil {
		return Result{}, err
	}

	if name := strings.TrimSpace(params.Template); name != "" {
		return t.sendTemplated(ctx, params, name, to, cc, bcc)
	}

	subject := strings.TrimSpace(params.Subject)
	if subject == "" {
		return Result{}, mailer.ErrNoSubject
	}

	text, html, err := t.bodyParts(params.TextBody, params.HTMLBody)
	if err != nil {
		return Result{}, err
	}

	from, err := t.fromAddress(params.FromAddress)
	if err != nil {
		return Result{}, err
	}

	files, err := attachments.ResolveAll(ctx, t.resolver, params.Attachments)
	if err != nil {
		return Result{}, err
	}

	email := &mailer.Email{
		To:          to,
		CC:          cc,
		BCC:         bcc,
		Subject:     subject,
		Text:        text,
		HTML:        html,
		From:        from,
		FromName:    strings.TrimSpace(params.FromName),
		ReplyTo:     strings.TrimSpace(params.ReplyTo),
		Headers:     params.CustomHeaders,
		Attachments: files,
	}

	id, err := t.sender.Send(ctx, email)
	if err != nil {
		return Result{}, err
	}

	t.log.InfoContext(ctx, "transactional email queued",
		slog.String("delivery_id", id),
		slog.Int("to", len(to)),
		slog.Int("cc", len(cc)),
		slog.Int("bcc", len(bcc)),
		slog.Int("attachments", len(files)),
	)

	data := map[string]any{
		"delivery_id": id,
		"recipients":  to,
		"subject":     subject,
		"attachments": params.Attachments,
	}
	if len(cc) > 0 {
		data["cc"] = cc
	}
	if len(bcc) > 0 {
		data["bcc"] = bcc
	}

	return Result{
		Text: fmt.Sprintf("Transactional email queued (delivery ID %s)", id),
		Data: data,
	}, nil
}

// sendTemplated renders a markdown template into the message body and
// delivers the result. The template's frontmatter supplies the subject
// unless the caller overrides it.
func (t *Toolset) sendTemplated(ctx context.Context, params TransactionalParams, name string, to, cc, bcc []string) (Result, error) {
	if t.templates == nil {
		return Result{}, ErrTemplatesUnavailable
	}

	from, err := t.fromAddress(params.FromAddress)
	if err != nil {
		return Result{}, err
	}

	files, err := attachments.ResolveAll(ctx, t.resolver, params.Attachments)
	if err != nil {
		return Result{}, err
	}

	// Extra To addresses ride along as CC, matching the raw-body path.
	allCC := append(append([]string(nil), cc...), to[1:]...)

	id, err := t.templates.Send(ctx, mailer.SendParams{
		To:          to[0],
		Template:    name,
		Data:        params.TemplateData,
		Subject:     strings.TrimSpace(params.Subject),
		From:        from,
		FromName:    strings.TrimSpace(params.FromName),
		ReplyTo:     strings.TrimSpace(params.ReplyTo),
		CC:          allCC,
		BCC:         bcc,
		Headers:     params.CustomHeaders,
		Attachments: files,
	})
	if err != nil {
		return Result{}, err
	}

	t.log.InfoContext(ctx, "templated email queued",
		slog.String("delivery_id", id),
		slog.String("template", name),
		slog.Int("to", len(to)),
		slog.Int("attachments", len(files)),
	)

	data := map[string]any{
		"delivery_id": id,
		"recipients":  to,
		"template":    name,
		"attachments": params.Attachments,
	}
	if len(cc) > 0 {
		data["cc"] = cc
	}
	if len(bcc) > 0 {
		data["bcc"] = bcc
	}

	return Result{
		Text: fmt.Sprintf("Transactional email queued (delivery ID %s)", id),
		Data: data,
	}, nil
}

// SendBulk validates the parameters, gathers the recipient list from the
// inline value and the optional CSV file, and runs the campaign flow.
func (t *Toolset) SendBulk(ctx context.Context, params BulkParams) (Result, error) {
	subject := strings.TrimSpace(params.Subject)
	if subject == "" {
		return Result{}, mailer.ErrNoSubject
	}

	text, html, err := t.bodyParts(params.TextBody, params.HTMLBody)
	if err != nil {
		return Result{}, err
	}

	from, err := t.fromAddress(params.FromAddress)
	if err != nil {
		return Result{}, err
	}

	recipients, err := t.gatherRecipients(ctx, params)
	if err != nil {
		return Result{}, err
	}
	if err := mailer.ValidateRecipients(recipients, mailer.MaxBulkRecipients); err != nil {
		return Result{}, err
	}

	schedule, err := mailer.ParseSchedule(params.ScheduleAt, time.Now())
	if err != nil {
		return Result{}, err
	}

	files, err := attachments.ResolveAll(ctx, t.resolver, params.Attachments)
	if err != nil {
		return Result{}, err
	}

	email := &mailer.Email{
		Subject:     subject,
		Text:        text,
		HTML:        html,
		From:        from,
		FromName:    strings.TrimSpace(params.FromName),
		ScheduleAt:  schedule,
		Attachments: files,
	}

	id, err := t.sender.SendCampaign(ctx, email, recipients)
	if err != nil {
		return Result{}, err
	}

	t.log.InfoContext(ctx, "bulk email queued",
		slog.String("delivery_id", id),
		slog.Int("recipients", len(recipients)),
		slog.Bool("scheduled", schedule != nil),
	)

	data := map[string]any{
		"delivery_id":     id,
		"recipient_count": len(recipients),
		"subject":         subject,
		"scheduled":       schedule != nil,
	}
	text = fmt.Sprintf("Bulk email queued (delivery ID %s, %d recipients)", id, len(recipients))
	if schedule != nil {
		data["scheduled_at"] = schedule.Format(time.RFC3339)
		text += fmt.Sprintf("\nScheduled for %s", schedule.Format(time.RFC3339))
	}

	return Result{Text: text, Data: data}, nil
}

// optionalRecipients normalizes a recipient field that may be empty.
func (t *Toolset) optionalRecipients(raw string, maximum int) ([]string, error) {
	emails, err := mailer.NormalizeEmails(raw)
	if err != nil {
		return nil, err
	}
	if len(emails) == 0 {
		return nil, nil
	}
	if err := mailer.ValidateRecipients(emails, maximum); err != nil {
		return nil, err
	}
	return emails, nil
}

// bodyParts requires at least one body and fills in the plain-text
// alternative for HTML-only messages. Raw HTML from the workflow host goes
// through the same sanitizer policy as rendered templates.
func (t *Toolset) bodyParts(textBody, htmlBody string) (text, html string, err error) {
	text = strings.TrimSpace(textBody)
	html = strings.TrimSpace(htmlBody)
	if text == "" && html == "" {
		return "", "", mailer.ErrNoContent
	}
	if html != "" {
		html = t.policy.Sanitize(html)
	}
	if text == "" {
		text = t.cfg.FallbackText
	}
	return text, html, nil
}

// fromAddress validates an explicit sender address. An empty value is
// passed through so the sender adapter can apply its configured default.
func (t *Toolset) fromAddress(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	emails, err := mailer.NormalizeEmails(raw)
	if err != nil {
		return "", err
	}
	if len(emails) == 0 {
		return "", mailer.ErrNoSender
	}
	return emails[0], nil
}

// gatherRecipients merges inline recipients with the optional CSV file and
// dedupes the combined list.
func (t *Toolset) gatherRecipients(ctx context.Context, params BulkParams) ([]string, error) {
	values := []string{params.Recipients}

	if ref := strings.TrimSpace(params.RecipientsFile); ref != "" {
		file, err := t.resolver.Resolve(ctx, ref)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRecipientsFileUnreadable, err)
		}
		fromCSV, err := parseCSVRecipients(file.Content)
		if err != nil {
			return nil, err
		}
		values = append(values, fromCSV...)
	}

	return mailer.NormalizeEmails(values...)
}
