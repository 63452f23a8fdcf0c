// Package errors provides structured error types for the cache service.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrTypeValidation represents invalid construction or configuration parameters
	ErrTypeValidation ErrorType = "validation"
	// ErrTypeRemoteUnavailable represents a failed startup connectivity probe
	ErrTypeRemoteUnavailable ErrorType = "remote_unavailable"
	// ErrTypeRemoteOperation represents a failure during a remote tier operation
	ErrTypeRemoteOperation ErrorType = "remote_operation"
	// ErrTypeSerialization represents a value that cannot be encoded or decoded
	ErrTypeSerialization ErrorType = "serialization"
	// ErrTypeTimeout represents timeout errors
	ErrTypeTimeout ErrorType = "timeout"
)

// AppError represents a structured application error
type AppError struct {
	Type    ErrorType              `json:"type"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	parts := []string{string(e.Type), e.Message}

	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("cause=%v", e.Cause))
	}

	if len(e.Context) > 0 {
		contextParts := make([]string, 0, len(e.Context))
		for k, v := range e.Context {
			contextParts = append(contextParts, fmt.Sprintf("%s=%v", k, v))
		}
		parts = append(parts, fmt.Sprintf("context={%s}", strings.Join(contextParts, ", ")))
	}

	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying cause
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates a new AppError
func New(errType ErrorType, message string) *AppError {
	return &AppError{Type: errType, Message: message}
}

// Wrap wraps an existing error with a type and message
func Wrap(err error, errType ErrorType, message string) *AppError {
	return &AppError{Type: errType, Message: message, Cause: err}
}

// NewValidationError creates a validation error
func NewValidationError(message string) *AppError {
	return New(ErrTypeValidation, message)
}

// NewRemoteUnavailableError wraps a failed connectivity probe
func NewRemoteUnavailableError(err error) *AppError {
	return Wrap(err, ErrTypeRemoteUnavailable, "remote cache store unreachable")
}

// NewSerializationError wraps an encode/decode failure
func NewSerializationError(err error) *AppError {
	return Wrap(err, ErrTypeSerialization, "cache value serialization failed")
}

// IsType reports whether err is an AppError of the given type
func IsType(err error, errType ErrorType) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type == errType
	}
	return false
}
