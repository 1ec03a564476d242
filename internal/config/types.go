package config

// Config holds all configuration for the application.
type Config struct {
	DBName        string `env:"DB_NAME" envDefault:"league.db"`
	MigrationsDir string `env:"MIGRATIONS_DIR" envDefault:"./migrations"`
	Port          string `env:"PORT" envDefault:"8080"`
	ProjectID     string `env:"GCP_PROJECT"`
	// PushToken must be passed as ?token= by the Pub/Sub push subscription.
	PushToken     string   `env:"PUBSUB_PUSH_TOKEN"`
	AllowedOrigin []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	// RegistrationFee is the amount, in euros, quoted in the registration email.
	RegistrationFee int `env:"REGISTRATION_FEE" envDefault:"80"`
	Turso           TursoConfig
	Auth            AuthConfig
	Email           EmailConfig
	Slack           SlackConfig
}

type TursoConfig struct {
	PrimaryURL string `env:"TURSO_PRIMARY_URL"`
	AuthToken  string `env:"TURSO_AUTH_TOKEN"`
}

// AuthConfig points at the GoTrue-compatible identity provider.
type AuthConfig struct {
	URL       string `env:"AUTH_URL,notEmpty"`
	APIKey    string `env:"AUTH_API_KEY,notEmpty"`
	JWTSecret string `env:"AUTH_JWT_SECRET"`
}

type EmailConfig struct {
	ResendAPIKey string `env:"RESEND_API_KEY"`
	From         string `env:"EMAIL_FROM" envDefault:"3lab3 <onboarding@resend.dev>"`
}

type SlackConfig struct {
	Token     string `env:"SLACK_BOT_TOKEN"`
	ChannelID string `env:"SLACK_CHANNEL_ID"`
}
