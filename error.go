package artfetch

import (
	"errors"
	"fmt"
)

// Error codes describing why an operation failed. Network-shaped codes cover
// both page fetches and image downloads; extraction and rendering have their
// own codes so callers can tell an environmental failure from a bug.
const (
	ECONNECTION = "connection"       // could not reach the host
	ETIMEOUT    = "timeout"          // request exceeded its deadline
	EHTTPSTATUS = "http_status"      // non-2xx response
	ENOCONTENT  = "no_content"       // every extraction heuristic came up empty
	EMALFORMED  = "malformed_markup" // markup could not be parsed at all
	EINVALID    = "invalid"          // invalid input
	EINTERNAL   = "internal"         // invariant violation; indicates a bug
)

// Error represents an application error with a machine-readable code.
type Error struct {
	// Code is one of the constants above.
	Code string

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("artfetch error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode returns the code of the error, if available.
// Returns EINTERNAL for non-application errors and "" for nil.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage returns the message of the error, if available.
// Returns a generic message for non-application errors and "" for nil.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// Errorf constructs an *Error with formatting verbs.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
