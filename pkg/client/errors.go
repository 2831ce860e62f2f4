package client

import (
	"errors"
	"fmt"
)

// HTTPError represents a non-2xx HTTP response from the API. Message holds
// the raw response body text, or the status text when the body was empty.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// IsStatus reports whether err wraps an HTTPError with the given status code.
func IsStatus(err error, code int) bool {
	return code != 0 && StatusOf(err) == code
}

// StatusOf returns the status code of a wrapped HTTPError, or 0.
func StatusOf(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	return 0
}
