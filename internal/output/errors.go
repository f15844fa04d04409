package output

import (
	"errors"
	"fmt"
)

// Error is a structured error with code, message, and optional hint.
type Error struct {
	Code    string
	Message string
	Hint    string
	Cause   error
}

func (e *Error) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Hint)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// ExitCode returns the appropriate exit code for this error.
func (e *Error) ExitCode() int {
	return ExitCodeFor(e.Code)
}

// Error constructors for common cases.

func ErrUsage(msg string) *Error {
	return &Error{Code: CodeUsage, Message: msg}
}

func ErrUsageHint(msg, hint string) *Error {
	return &Error{Code: CodeUsage, Message: msg, Hint: hint}
}

func ErrParse(phrase string, cause error) *Error {
	return &Error{
		Code:    CodeParse,
		Message: fmt.Sprintf("could not resolve %q", phrase),
		Hint:    "Try a phrase like \"3pm\", \"next tue\", or \"in 5 days\"",
		Cause:   cause,
	}
}

func ErrCanceled() *Error {
	return &Error{Code: CodeCanceled, Message: "canceled"}
}

// AsError attempts to convert an error to an *Error.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{
		Code:    CodeInternal,
		Message: err.Error(),
		Cause:   err,
	}
}
