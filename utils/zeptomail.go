package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/mail"
)

// ZeptoMailURL is the default ZeptoMail send endpoint.
const ZeptoMailURL = "https://api.zeptomail.in/v1.1/email"

type zeptoRecipient struct {
	Address string `json:"address"`
	Name    string `json:"name,omitempty"`
}

type zeptoAddressee struct {
	EmailAddress zeptoRecipient `json:"email_address"`
}

type zeptoRequest struct {
	From     zeptoRecipient   `json:"from"`
	To       []zeptoAddressee `json:"to"`
	ReplyTo  []zeptoRecipient `json:"reply_to,omitempty"`
	Subject  string           `json:"subject"`
	HTMLBody string           `json:"htmlbody"`
	TextBody string           `json:"textbody,omitempty"`
}

type zeptoResponse struct {
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
}

// ZeptoMailSender sends email via the ZeptoMail HTTP API.
type ZeptoMailSender struct {
	apiKey string
	url    string
	client *http.Client
}

// NewZeptoMailSender posts to url, or ZeptoMailURL when url is empty.
func NewZeptoMailSender(apiKey, url string, client *http.Client) *ZeptoMailSender {
	if url == "" {
		url = ZeptoMailURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &ZeptoMailSender{apiKey: apiKey, url: url, client: client}
}

// Send posts msg to ZeptoMail and returns its request_id
func (s *ZeptoMailSender) Send(ctx context.Context, msg Message) (string, error) {
	from, err := parseRecipient(msg.From)
	if err != nil {
		return "", fmt.Errorf("invalid from address: %w", err)
	}

	emailReq := zeptoRequest{
		From:     from,
		Subject:  msg.Subject,
		HTMLBody: msg.HTML,
		TextBody: msg.Text,
	}
	for _, to := range msg.To {
		rcpt, err := parseRecipient(to)
		if err != nil {
			return "", fmt.Errorf("invalid to address: %w", err)
		}
		emailReq.To = append(emailReq.To, zeptoAddressee{EmailAddress: rcpt})
	}
	if msg.ReplyTo != "" {
		emailReq.ReplyTo = []zeptoRecipient{{Address: msg.ReplyTo}}
	}

	jsonData, err := json.Marshal(emailReq)
	if err != nil {
		return "", fmt.Errorf("failed to marshal email request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send email: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("email send failed with status %d: %s", resp.StatusCode, string(body))
	}

	var zeptoResp zeptoResponse
	if err := json.Unmarshal(body, &zeptoResp); err != nil {
		return "", fmt.Errorf("failed to parse ZeptoMail response: %w", err)
	}

	return zeptoResp.RequestID, nil
}

// parseRecipient splits "Name <addr>" into its parts; a bare address is fine.
func parseRecipient(s string) (zeptoRecipient, error) {
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return zeptoRecipient{}, err
	}
	return zeptoRecipient{Address: addr.Address, Name: addr.Name}, nil
}
