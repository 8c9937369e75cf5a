package domain

import (
	"context"
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidResponse indicates a backend payload failed shape validation.
	ErrInvalidResponse = errors.New("invalid response format")
)

// User-facing messages.
const (
	// MessageTransientFailure is returned by the backend stub on injected failures.
	MessageTransientFailure = "Temporary glitch. Please retry your search."

	// MessageInvalidResponse is shown when a payload fails validation.
	MessageInvalidResponse = "Invalid response format."

	// MessageFetchFailed is shown for failures without a better description.
	MessageFetchFailed = "Failed to fetch search results."
)

// APIError is a non-success response from the search backend.
type APIError struct {
	// StatusCode is the HTTP-equivalent status, e.g. 503.
	StatusCode int

	// Message is human-readable and safe to show to users.
	Message string
}

// Error implements error.
func (e *APIError) Error() string {
	return fmt.Sprintf("search backend returned %d: %s", e.StatusCode, e.Message)
}

// NewTransientError returns the 503 failure the backend stub injects.
func NewTransientError() *APIError {
	return &APIError{StatusCode: 503, Message: MessageTransientFailure}
}

// IsCanceled reports whether err is a cancellation.
// Cancellations are never surfaced to users.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}

// UserMessage maps a request failure to the text shown in the error state.
func UserMessage(err error) string {
	var apiErr *APIError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &apiErr) && apiErr.Message != "":
		return apiErr.Message
	case errors.Is(err, ErrInvalidResponse):
		return MessageInvalidResponse
	default:
		return MessageFetchFailed
	}
}
