package fetcher

import (
	"fmt"
)

// ErrorType represents the category of failure from a fetch operation
type ErrorType string

const (
	// ErrorTypeEmptyData indicates the source answered with zero usable observations
	ErrorTypeEmptyData ErrorType = "empty_data"
	// ErrorTypeSchemaMismatch indicates the response arrived but its shape was not the documented one
	ErrorTypeSchemaMismatch ErrorType = "schema_mismatch"
	// ErrorTypeTransport indicates a network or HTTP-level failure
	ErrorTypeTransport ErrorType = "transport"
	// ErrorTypeUnconfigured indicates the source has no credential and cannot be used at all
	ErrorTypeUnconfigured ErrorType = "unconfigured"
)

// FetchError is a structured per-ticker failure from a fetch operation
type FetchError struct {
	Type       ErrorType
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

// NewEmptyDataError reports a response that carried no price observations
func NewEmptyDataError(ticker string) *FetchError {
	return &FetchError{
		Type:    ErrorTypeEmptyData,
		Message: fmt.Sprintf("no price observations for %s", ticker),
	}
}

// NewSchemaMismatchError reports a response whose shape could not be parsed
func NewSchemaMismatchError(message string) *FetchError {
	return &FetchError{
		Type:    ErrorTypeSchemaMismatch,
		Message: message,
	}
}

// NewTransportError wraps a network-level failure
func NewTransportError(cause error) *FetchError {
	return &FetchError{
		Type:    ErrorTypeTransport,
		Message: "request failed",
		Cause:   cause,
	}
}

// NewUnconfiguredError reports a source that is missing its credential.
// This disables the source for the whole run, not just one ticker.
func NewUnconfiguredError(source string) *FetchError {
	return &FetchError{
		Type:    ErrorTypeUnconfigured,
		Message: fmt.Sprintf("%s has no API key configured", source),
	}
}

// ClassifyHTTPStatus converts a non-2xx HTTP status into a transport FetchError
func ClassifyHTTPStatus(statusCode int) *FetchError {
	return &FetchError{
		Type:       ErrorTypeTransport,
		StatusCode: statusCode,
		Message:    fmt.Sprintf("unexpected status code: %d", statusCode),
	}
}
