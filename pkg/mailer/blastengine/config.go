package blastengine

// Config holds Blastengine sender defaults.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	SenderEmail string `env:"BLASTENGINE_FROM_EMAIL"`
	SenderName  string `env:"BLASTENGINE_FROM_NAME"`
}
