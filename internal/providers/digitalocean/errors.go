package digitalocean

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/digitalocean/godo"
)

type ErrorCategory string

// Error categories for remote droplet operations
const (
	// ErrNotFound is returned when the requested droplet doesn't exist
	ErrNotFound ErrorCategory = "droplet_not_found"

	// ErrUnauthorized is returned when the API token is rejected
	ErrUnauthorized ErrorCategory = "unauthorized"

	// ErrRateLimited is returned when the API throttles the request
	ErrRateLimited ErrorCategory = "rate_limited"

	// ErrInvalidInput is returned when the request payload is rejected
	ErrInvalidInput ErrorCategory = "invalid_input"

	// ErrNetworkError is returned for network-related failures reaching the API
	ErrNetworkError ErrorCategory = "network_error"

	// ErrInternalError is returned for unexpected failures
	ErrInternalError ErrorCategory = "internal_error"
)

// Error represents a failed remote operation against the DigitalOcean
// API with context about what went wrong.
type Error struct {
	// Category for programmatic error handling
	Category ErrorCategory

	// DropletID identifies the droplet when applicable
	DropletID string

	// Message provides human-readable details
	Message string

	// Underlying is the wrapped cause of this error
	Underlying error
}

// Error returns a formatted error message
func (e *Error) Error() string {
	if e.DropletID != "" {
		return fmt.Sprintf("%s: %s [droplet: %s]", e.Category, e.Message, e.DropletID)
	}
	return fmt.Sprintf("%s: %s", e.Category, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Underlying
}

// NewAPIError creates a new remote-operation error with the specified details
func NewAPIError(category ErrorCategory, dropletID, message string, underlying error) *Error {
	return &Error{
		Category:   category,
		DropletID:  dropletID,
		Message:    message,
		Underlying: underlying,
	}
}

// IsErrorCategory checks if an error belongs to a specific error category
func IsErrorCategory(err error, category ErrorCategory) bool {
	if err == nil {
		return false
	}

	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Category == category
	}

	return false
}

// PollTimeoutError is returned when a droplet does not report a public
// address within the configured number of readiness checks.
type PollTimeoutError struct {
	DropletID int
	Attempts  int
}

func (e *PollTimeoutError) Error() string {
	return fmt.Sprintf("droplet %d did not report a public IPv4 address after %d checks", e.DropletID, e.Attempts)
}

// ClassifyAPIError classifies a godo error based on its HTTP status when
// available, falling back to message analysis.
func ClassifyAPIError(err error, dropletID string) *Error {
	if err == nil {
		return nil
	}

	var errResp *godo.ErrorResponse
	if errors.As(err, &errResp) && errResp.Response != nil {
		switch errResp.Response.StatusCode {
		case http.StatusNotFound:
			return NewAPIError(ErrNotFound, dropletID, "Droplet not found", err)
		case http.StatusUnauthorized, http.StatusForbidden:
			return NewAPIError(ErrUnauthorized, dropletID, "Access denied", err)
		case http.StatusTooManyRequests:
			return NewAPIError(ErrRateLimited, dropletID, "Request throttled", err)
		case http.StatusUnprocessableEntity, http.StatusBadRequest:
			return NewAPIError(ErrInvalidInput, dropletID, "Invalid request", err)
		}
	}

	errMsg := err.Error()
	switch {
	case contains(errMsg, "no such host", "connection refused", "timeout"):
		return NewAPIError(ErrNetworkError, dropletID, "Network error while accessing the DigitalOcean API", err)
	default:
		return NewAPIError(ErrInternalError, dropletID, "Internal error occurred", err)
	}
}

// contains checks if the error message contains any of the provided substrings
func contains(s string, substrings ...string) bool {
	for _, substr := range substrings {
		if strings.Contains(strings.ToLower(s), strings.ToLower(substr)) {
			return true
		}
	}
	return false
}
