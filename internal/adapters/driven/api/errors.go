package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/karmicdd/karmicdd-cli/internal/core/domain"
)

// HTTPError is returned for any response outside the 2xx range.
type HTTPError struct {
	// Status is the HTTP status code.
	Status int

	// Endpoint is the request path without query.
	Endpoint string

	// Message is the server's error message when one was sent.
	Message string
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: status %d: %s", e.Endpoint, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: status %d", e.Endpoint, e.Status)
}

// Unwrap maps the status to a domain error.
func (e *HTTPError) Unwrap() error {
	switch {
	case e.Status == http.StatusNotFound:
		return domain.ErrNotFound
	case e.Status == http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case e.Status == http.StatusTooManyRequests:
		return domain.ErrRateLimited
	case e.Status == http.StatusBadRequest, e.Status == http.StatusUnprocessableEntity:
		return domain.ErrInvalidInput
	case e.Status >= 500:
		return domain.ErrServer
	default:
		return nil
	}
}

// RateLimitError is returned when the API responds with 429.
type RateLimitError struct {
	ResetAt time.Time
}

// Error implements the error interface.
func (e *RateLimitError) Error() string {
	if e.ResetAt.IsZero() {
		return "rate limit exceeded"
	}
	return fmt.Sprintf("rate limit exceeded, resets at %s", e.ResetAt.Format(time.RFC3339))
}

// Unwrap returns domain.ErrRateLimited.
func (e *RateLimitError) Unwrap() error {
	return domain.ErrRateLimited
}

// TransportError wraps a failure to obtain a response.
type TransportError struct {
	Endpoint string
	Err      error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Endpoint, e.Err)
}

// Unwrap returns both the cause and domain.ErrTransport.
func (e *TransportError) Unwrap() []error {
	return []error{domain.ErrTransport, e.Err}
}
