package yahoo

import (
	"fmt"
)

// ErrorType represents the category of error that occurred during an
// upstream call
type ErrorType string

const (
	// ErrorTypeNetwork indicates a network-level error (connection refused, DNS, etc.)
	ErrorTypeNetwork ErrorType = "network"
	// ErrorTypeRateLimit indicates the request was rejected due to rate limiting (HTTP 429)
	ErrorTypeRateLimit ErrorType = "rate_limit"
	// ErrorTypeAuth indicates the session cookie/crumb was rejected (HTTP 401)
	ErrorTypeAuth ErrorType = "auth"
	// ErrorTypeServer indicates a server error (HTTP 5xx)
	ErrorTypeServer ErrorType = "server"
	// ErrorTypeClient indicates a client error (HTTP 4xx except 401/429)
	ErrorTypeClient ErrorType = "client"
	// ErrorTypeEmpty indicates a 200 response that carried no data for a
	// non-empty request, which the upstream is known to do spuriously
	ErrorTypeEmpty ErrorType = "empty"
	// ErrorTypeUnknown indicates an error of unknown type
	ErrorTypeUnknown ErrorType = "unknown"
)

// FetchError represents a structured error from an upstream call
type FetchError struct {
	Type       ErrorType
	Retryable  bool
	StatusCode int
	Message    string
	Cause      error
}

// Error implements the error interface
func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s error (status %d): %s", e.Type, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Type, e.Message)
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *FetchError) Unwrap() error {
	return e.Cause
}

// NewNetworkError creates a network error
func NewNetworkError(cause error) *FetchError {
	return &FetchError{
		Type:      ErrorTypeNetwork,
		Retryable: true,
		Message:   "network request failed",
		Cause:     cause,
	}
}

// NewRateLimitError creates a rate limit error
func NewRateLimitError() *FetchError {
	return &FetchError{
		Type:       ErrorTypeRateLimit,
		Retryable:  true,
		StatusCode: 429,
		Message:    "rate limit exceeded",
	}
}

// NewAuthError creates an authentication error
func NewAuthError(message string) *FetchError {
	return &FetchError{
		Type:       ErrorTypeAuth,
		Retryable:  true,
		StatusCode: 401,
		Message:    message,
	}
}

// NewEmptyError creates an error for a suspicious empty-but-OK response
func NewEmptyError(message string) *FetchError {
	return &FetchError{
		Type:      ErrorTypeEmpty,
		Retryable: true,
		Message:   message,
	}
}

// ClassifyHTTPError classifies an HTTP status code into an appropriate
// FetchError
func ClassifyHTTPError(statusCode int) *FetchError {
	switch {
	case statusCode == 401:
		return NewAuthError("session rejected")
	case statusCode == 429:
		return NewRateLimitError()
	case statusCode >= 500:
		return &FetchError{
			Type:       ErrorTypeServer,
			Retryable:  true,
			StatusCode: statusCode,
			Message:    "server returned an error",
		}
	case statusCode >= 400:
		return &FetchError{
			Type:       ErrorTypeClient,
			Retryable:  false,
			StatusCode: statusCode,
			Message:    fmt.Sprintf("client error: HTTP %d", statusCode),
		}
	default:
		return &FetchError{
			Type:       ErrorTypeUnknown,
			Retryable:  false,
			StatusCode: statusCode,
			Message:    fmt.Sprintf("unexpected status code: %d", statusCode),
		}
	}
}
