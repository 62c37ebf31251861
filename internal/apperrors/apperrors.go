// Package apperrors defines the error taxonomy shared by the Steam
// client, the aggregation pipeline and the HTTP surface. Errors fall
// into three kinds: bad input, missing upstream data, and upstream
// failures.
package apperrors

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ValidationError reports malformed or missing request input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidationError reports whether err is a ValidationError.
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

// NotFoundError reports that an upstream entity does not exist. Raw
// holds the upstream payload that signalled the miss, when available.
type NotFoundError struct {
	What    string
	SteamID string
	AppID   int
	Raw     json.RawMessage
}

func (e *NotFoundError) Error() string {
	switch {
	case e.AppID != 0:
		return fmt.Sprintf("%s not found for appid %d", e.What, e.AppID)
	case e.SteamID != "":
		return fmt.Sprintf("%s not found for %s", e.What, e.SteamID)
	default:
		return fmt.Sprintf("%s not found", e.What)
	}
}

// NewNotFoundError creates a NotFoundError for the named entity.
func NewNotFoundError(what string) *NotFoundError {
	return &NotFoundError{What: what}
}

// IsNotFoundError reports whether err is a NotFoundError.
func IsNotFoundError(err error) bool {
	var nferr *NotFoundError
	return errors.As(err, &nferr)
}

// UpstreamError wraps a failure talking to a Steam endpoint.
type UpstreamError struct {
	Endpoint string
	Cause    error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("steam %s request failed: %v", e.Endpoint, e.Cause)
}

func (e *UpstreamError) Unwrap() error {
	return e.Cause
}

// NewUpstreamError wraps cause as a failure of the named endpoint.
func NewUpstreamError(endpoint string, cause error) *UpstreamError {
	return &UpstreamError{Endpoint: endpoint, Cause: cause}
}

// IsUpstreamError reports whether err is an UpstreamError.
func IsUpstreamError(err error) bool {
	var uerr *UpstreamError
	return errors.As(err, &uerr)
}
