// Package errors provides structured error types for forcegraph diagrams.
//
// Every failure the diagram core can produce is recoverable and local: the
// operation that triggered it leaves the model untouched. Errors carry a
// machine-readable [Code] so that adapters (CLI, HTTP bridge) can react
// without string matching.
//
// # Error Codes
//
//   - DUPLICATE_*: identity collisions on create
//   - MISSING_ENDPOINT: an edge references a node that does not exist
//   - UNKNOWN_ELEMENT: lookup by an absent id
//   - INVALID_*: malformed input or configuration
//
// # Usage
//
//	err := errors.New(errors.ErrCodeDuplicateNode, "node %q already exists", id)
//	if errors.Is(err, errors.ErrCodeDuplicateNode) {
//	    // skip
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Identity errors
	ErrCodeDuplicateNode   Code = "DUPLICATE_NODE"
	ErrCodeDuplicateEdge   Code = "DUPLICATE_EDGE"
	ErrCodeMissingEndpoint Code = "MISSING_ENDPOINT"
	ErrCodeUnknownElement  Code = "UNKNOWN_ELEMENT"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidState  Code = "INVALID_STATE"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// Recoverable reports whether err belongs to the local, non-fatal taxonomy
// raised by diagram operations. Internal errors and foreign errors are not
// recoverable.
func Recoverable(err error) bool {
	switch GetCode(err) {
	case ErrCodeDuplicateNode, ErrCodeDuplicateEdge, ErrCodeMissingEndpoint,
		ErrCodeUnknownElement, ErrCodeInvalidInput, ErrCodeInvalidState:
		return true
	}
	return false
}
