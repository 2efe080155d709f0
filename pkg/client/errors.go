package client

import (
	"errors"
	"fmt"
)

// HTTPError represents a non-2xx HTTP response from the task API. Message is
// the backend's error field when the body carried one, the raw body otherwise.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// IsStatus returns true if err (or any wrapped error) is an HTTPError with
// the given status code. Used to tell auth failures apart from transient ones.
func IsStatus(err error, code int) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == code
	}
	return false
}

// Message extracts the backend-provided error message from err, or returns
// fallback when err carries no HTTPError. Views use this to prefer the
// server's wording over a generic one.
func Message(err error, fallback string) string {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) && httpErr.Message != "" {
		return httpErr.Message
	}
	return fallback
}
