package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// ConfigurationError means the process is missing something it needs to
// relay submissions, typically the provider API key.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string { return e.Message }

// ValidationError means the submission itself is unusable.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ProviderError wraps a failed send.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string { return e.Err.Error() }

func (e *ProviderError) Unwrap() error { return e.Err }

// statusFor maps an error kind to its HTTP status. Anything unrecognised,
// malformed JSON included, is a 500.
func statusFor(err error) int {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}
