package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the domain layer. These provide consistent, checkable
// categories for failures reported by the authentication API.
var (
	// ErrServerError means the API answered with a non-2xx status.
	ErrServerError = errors.New("server error occurred")
	// ErrInvalidResponse means a 2xx answer could not be parsed as JSON.
	ErrInvalidResponse = errors.New("invalid response format from server")
)

// Messages surfaced to users when the API gives nothing better.
const (
	MessageServerError     = "Server error occurred"
	MessageInvalidResponse = "Invalid response format from server"
)

// APIError is the normalized error returned by every auth API operation.
// Message is always human readable and safe to show to the user.
type APIError struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
	kind    error
}

// NewAPIError builds an APIError of the given category (ErrServerError or
// ErrInvalidResponse).
func NewAPIError(kind error, status int, message string) *APIError {
	return &APIError{Message: message, Status: status, kind: kind}
}

func (e *APIError) Error() string {
	return e.Message
}

// Unwrap lets callers use errors.Is against the sentinel category.
func (e *APIError) Unwrap() error {
	return e.kind
}

// GoString keeps the status visible in %#v log output.
func (e *APIError) GoString() string {
	return fmt.Sprintf("APIError{Status: %d, Message: %q}", e.Status, e.Message)
}
