package utils

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/mailgun/mailgun-go/v4"
)

// MailgunSender sends email via the Mailgun API.
type MailgunSender struct {
	client *mailgun.MailgunImpl
}

// NewMailgunSender requires the sending domain; apiBase selects a region
// (e.g. https://api.eu.mailgun.net/v3) and may be empty.
func NewMailgunSender(domain, apiKey, apiBase string, httpClient *http.Client) (*MailgunSender, error) {
	if domain == "" {
		return nil, errors.New("MAILGUN_DOMAIN is required")
	}

	client := mailgun.NewMailgun(domain, apiKey)
	if apiBase != "" {
		client.SetAPIBase(apiBase)
	}
	if httpClient != nil {
		client.SetClient(httpClient)
	}
	return &MailgunSender{client: client}, nil
}

func (s *MailgunSender) Send(ctx context.Context, msg Message) (string, error) {
	message := s.client.NewMessage(msg.From, msg.Subject, msg.Text, msg.To...)
	if msg.HTML != "" {
		message.SetHtml(msg.HTML)
	}
	if msg.ReplyTo != "" {
		message.SetReplyTo(msg.ReplyTo)
	}

	_, id, err := s.client.Send(ctx, message)
	if err != nil {
		return "", fmt.Errorf("mailgun: %w", err)
	}
	return id, nil
}
