package utils

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"alloc8-join/config"
)

// ErrUnknownProvider is returned by NewSender for an unsupported MAIL_PROVIDER.
var ErrUnknownProvider = errors.New("unknown mail provider")

// Message is one outbound notification email.
type Message struct {
	From    string
	To      []string
	ReplyTo string
	Subject string
	HTML    string
	Text    string
}

// Sender delivers a Message through a transactional email provider and
// returns the provider's message identifier.
type Sender interface {
	Send(ctx context.Context, msg Message) (string, error)
}

// NewSender builds the Sender for the configured provider using apiKey.
func NewSender(cfg config.MailConfig, apiKey string) (Sender, error) {
	httpClient := &http.Client{Timeout: cfg.SendTimeout + 5*time.Second}

	switch cfg.Provider {
	case config.ProviderResend:
		s, err := NewResendSender(apiKey, cfg.ResendBaseURL, httpClient)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.ProviderMailgun:
		s, err := NewMailgunSender(cfg.MailgunDomain, apiKey, cfg.MailgunAPIBase, httpClient)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.ProviderZeptoMail:
		return NewZeptoMailSender(apiKey, cfg.ZeptoAPIURL, httpClient), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
}
