package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Provider names accepted in MAIL_PROVIDER.
const (
	ProviderResend    = "resend"
	ProviderMailgun   = "mailgun"
	ProviderZeptoMail = "zeptomail"
)

// Config holds everything the server reads from the environment at startup.
type Config struct {
	Port           string   `env:"PORT" envDefault:"8080"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	StaticDir      string   `env:"STATIC_DIR"`
	LogLevel       string   `env:"LOG_LEVEL" envDefault:"info"`
	AppEnv         string   `env:"APP_ENV" envDefault:"production"`

	Mail MailConfig
}

// MailConfig describes how submissions are relayed. Provider API keys are
// intentionally absent: they are looked up per request by Credential.
type MailConfig struct {
	Provider      string        `env:"MAIL_PROVIDER" envDefault:"resend"`
	From          string        `env:"MAIL_FROM" envDefault:"Alloc-8 <no-reply@alloc-8.co.uk>"`
	To            []string      `env:"MAIL_TO" envSeparator:"," envDefault:"info@alloc-8.co.uk"`
	SubjectPrefix string        `env:"MAIL_SUBJECT_PREFIX" envDefault:"Join the journey"`
	SendTimeout   time.Duration `env:"MAIL_SEND_TIMEOUT" envDefault:"30s"`

	ResendBaseURL  string `env:"RESEND_BASE_URL"`
	MailgunDomain  string `env:"MAILGUN_DOMAIN"`
	MailgunAPIBase string `env:"MAILGUN_API_BASE"`
	ZeptoAPIURL    string `env:"ZEPTO_API_URL"`
}

// Load reads .env (if any) and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	cfg.Mail.Provider = strings.ToLower(strings.TrimSpace(cfg.Mail.Provider))
	if cfg.Mail.SendTimeout <= 0 {
		return nil, fmt.Errorf("MAIL_SEND_TIMEOUT must be positive, got %s", cfg.Mail.SendTimeout)
	}
	if len(cfg.Mail.To) == 0 {
		return nil, fmt.Errorf("MAIL_TO must name at least one recipient")
	}

	return &cfg, nil
}

// Development reports whether APP_ENV selects development behaviour.
func (c *Config) Development() bool {
	switch strings.ToLower(c.AppEnv) {
	case "dev", "development", "local":
		return true
	}
	return false
}

// CredentialEnv is the environment variable holding the API key for the
// configured provider. Unknown providers yield "".
func (m MailConfig) CredentialEnv() string {
	switch m.Provider {
	case ProviderResend:
		return "RESEND_API_KEY"
	case ProviderMailgun:
		return "MAILGUN_API_KEY"
	case ProviderZeptoMail:
		return "ZEPTO_API_KEY"
	}
	return ""
}

// Credential reads the provider API key from the environment. It is called on
// every request so a rotated or removed key takes effect without a restart.
func (m MailConfig) Credential() (string, bool) {
	name := m.CredentialEnv()
	if name == "" {
		return "", false
	}
	key := strings.TrimSpace(os.Getenv(name))
	return key, key != ""
}
