// Package apperr defines the error taxonomy shared by the services and
// the HTTP layer.
//
// There are exactly two kinds of failure a caller has to tell apart:
//
//   - ValidationError: the client sent something unacceptable (400).
//   - UpstreamError  : a collaborator (storage, the subjects peer) failed
//     (500 / 503).
//
// Both support errors.Is against a sentinel so callers can branch without
// a type assertion, and errors.As when they need the fields.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput matches every *ValidationError.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUpstreamUnavailable matches every *UpstreamError.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

// Component names used in UpstreamError.
const (
	ComponentStorage  = "storage"
	ComponentSubjects = "subjects-service"
)

// ValidationError is a client-caused failure. Message is shown to the
// client verbatim.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// UpstreamError wraps a failure of a collaborator the service depends on.
type UpstreamError struct {
	Component string
	Op        string
	Err       error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Component, e.Op, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstreamUnavailable
}

// NewUpstreamError creates a new UpstreamError
func NewUpstreamError(component, op string, err error) *UpstreamError {
	return &UpstreamError{Component: component, Op: op, Err: err}
}
