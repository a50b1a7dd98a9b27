package mailer

import "errors"

var (
	// ErrNoRecipient indicates no recipient was specified.
	ErrNoRecipient = errors.New("email must have at least one recipient")

	// ErrNoSubject indicates no subject was provided.
	ErrNoSubject = errors.New("email must have a subject")

	// ErrNoSender indicates no sender address was provided or configured.
	ErrNoSender = errors.New("email must have a sender address")

	// ErrNoContent indicates neither a text nor an HTML body was provided.
	ErrNoContent = errors.New("email must have a text or html body")

	// ErrInvalidEmail indicates a malformed email address.
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrTooManyRecipients indicates a recipient list exceeds its cap.
	ErrTooManyRecipients = errors.New("too many recipients")

	// ErrInvalidSchedule indicates an unparseable schedule timestamp.
	ErrInvalidSchedule = errors.New("invalid schedule timestamp")

	// ErrScheduleInPast indicates a schedule timestamp not strictly in the future.
	ErrScheduleInPast = errors.New("schedule timestamp must be in the future")

	// ErrTemplateNotFound indicates the template file was not found.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrLayoutNotFound indicates the layout file was not found.
	ErrLayoutNotFound = errors.New("layout not found")

	// ErrRenderFailed indicates template rendering failed.
	ErrRenderFailed = errors.New("failed to render template")

	// ErrSendFailed indicates email sending failed.
	ErrSendFailed = errors.New("failed to send email")

	// ErrInvalidFrontmatter indicates invalid YAML frontmatter.
	ErrInvalidFrontmatter = errors.New("invalid frontmatter")
)
