package handlers

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	fiberutils "github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"

	"alloc8-join/config"
	"alloc8-join/models"
	"alloc8-join/utils"
)

// JoinHandler relays waitlist/feedback submissions as email.
type JoinHandler struct {
	Mail config.MailConfig
	Log  *zap.Logger

	// Credential returns the provider API key; it runs on every request.
	Credential func() (string, bool)
	// NewSender builds a provider client for one request.
	NewSender func(apiKey string) (utils.Sender, error)
}

func NewJoinHandler(mail config.MailConfig, log *zap.Logger) *JoinHandler {
	return &JoinHandler{
		Mail:       mail,
		Log:        log,
		Credential: mail.Credential,
		NewSender: func(apiKey string) (utils.Sender, error) {
			return utils.NewSender(mail, apiKey)
		},
	}
}

// Join handles POST /api/join
// Credential check, then parse, validate, render and a single send attempt
func (h *JoinHandler) Join(c *fiber.Ctx) error {
	id, err := h.join(c)
	if err != nil {
		status := statusFor(err)
		h.Log.Warn("join submission rejected",
			zap.Int("status", status),
			zap.String("request_id", requestID(c)),
			zap.Error(err))
		return c.Status(status).JSON(models.JoinResponse{OK: false, Error: err.Error()})
	}

	return c.JSON(models.JoinResponse{OK: true, ID: id})
}

func (h *JoinHandler) join(c *fiber.Ctx) (string, error) {
	apiKey, ok := h.Credential()
	if !ok {
		name := h.Mail.CredentialEnv()
		if name == "" {
			return "", &ConfigurationError{Message: fmt.Sprintf("Unsupported MAIL_PROVIDER %q", h.Mail.Provider)}
		}
		return "", &ConfigurationError{Message: "Missing " + name}
	}

	var sub models.Submission
	if err := c.BodyParser(&sub); err != nil {
		return "", err
	}
	sub.Normalize()

	if !sub.HasRequired() {
		return "", &ValidationError{Message: "Missing fields"}
	}

	html, text, err := utils.RenderJoinEmail(sub)
	if err != nil {
		return "", err
	}

	sender, err := h.NewSender(apiKey)
	if err != nil {
		return "", &ConfigurationError{Message: err.Error()}
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), h.Mail.SendTimeout)
	defer cancel()

	messageID, err := sender.Send(ctx, utils.Message{
		From:    h.Mail.From,
		To:      h.Mail.To,
		ReplyTo: sub.EmailAddress,
		Subject: utils.JoinSubject(h.Mail.SubjectPrefix, sub),
		HTML:    html,
		Text:    text,
	})
	if err != nil {
		return "", &ProviderError{Provider: h.Mail.Provider, Err: err}
	}

	h.Log.Info("join submission relayed",
		zap.String("provider", h.Mail.Provider),
		zap.String("message_id", messageID),
		zap.String("request_id", requestID(c)))

	return messageID, nil
}

func requestID(c *fiber.Ctx) string {
	// may be the client's X-Request-ID header, which fiber does not copy
	if id, ok := c.Locals("requestid").(string); ok {
		return fiberutils.CopyString(id)
	}
	return ""
}
