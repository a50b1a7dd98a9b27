package mailer

// Config holds mailer configuration.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	FallbackSubject string `env:"MAILER_FALLBACK_SUBJECT" envDefault:"Notification"`
	DefaultLayout   string `env:"MAILER_DEFAULT_LAYOUT" envDefault:"base.html"`

	// TemplatesDir points at the markdown template tree on disk, with
	// layouts under its "layouts" subdirectory. Empty disables templated
	// sending.
	TemplatesDir string `env:"MAILER_TEMPLATES_DIR" envDefault:"templates"`

	// Blastengine requires text_part on every delivery. HTML-only messages
	// get this placeholder as their plain-text alternative.
	FallbackText string `env:"MAILER_FALLBACK_TEXT" envDefault:"(HTML mail)"`
}
