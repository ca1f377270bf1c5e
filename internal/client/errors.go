package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// APIError is the normalized form of a failure response from the backend.
// The backend emits either a {code, message} envelope or a problem-details
// style payload carrying only a title; both decode into this one shape.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code,omitempty"`
	Message    string `json:"message,omitempty"`
	Title      string `json:"title,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Title != "":
		return e.Title
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// IsAuthFailure reports whether the error is a 401 authorization failure
func (e *APIError) IsAuthFailure() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// parseAPIError decodes a failure response body into an APIError.
// Bodies that are not JSON, or carry neither message nor title, still
// produce an APIError so callers get the status code.
func parseAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}
	if len(body) > 0 {
		_ = json.Unmarshal(body, apiErr)
	}
	return apiErr
}

// ErrorMessage extracts a user-facing message from any error, following
// the fixed priority chain: backend message, backend title, fallback.
// Network errors and other non-API failures yield the fallback.
func ErrorMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		if apiErr.Title != "" {
			return apiErr.Title
		}
	}
	return fallback
}
