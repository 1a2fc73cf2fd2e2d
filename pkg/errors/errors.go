// Package errors defines the coded errors dagmatch returns at its boundaries.
//
// The graph core (pkg/dag and its subpackages) never returns errors: every
// anomaly in a graph is reported as data. Coded errors appear only where
// documents are read, limits are enforced or caches fail. The CLI prints
// them and the HTTP API turns the code into a status:
//
//	INVALID_*                 400
//	NOT_FOUND, FILE_NOT_FOUND 404
//	LIMIT_EXCEEDED            413
//	anything else             500
//
// Usage:
//
//	err := errors.New(errors.ErrCodeInvalidInput, "unknown order mode: %s", mode)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // reject the request
//	}
//
//	err = errors.Wrap(errors.ErrCodeInvalidFormat, jsonErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code is a machine-readable error category.
type Code string

const (
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// ErrCodeLimitExceeded rejects graphs larger than the configured limits.
	ErrCodeLimitExceeded Code = "LIMIT_EXCEEDED"

	ErrCodeCache       Code = "CACHE_ERROR"
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// IsInput reports whether c blames the caller's input rather than dagmatch.
func (c Code) IsInput() bool {
	switch c {
	case ErrCodeNotFound, ErrCodeFileNotFound, ErrCodeLimitExceeded:
		return true
	}
	return strings.HasPrefix(string(c), "INVALID_")
}

// Error carries a code, a message for users and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is lets errors.Is match a sentinel *Error by code and message, so a
// sentinel survives being wrapped with fmt.Errorf.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code && t.Message == e.Message
}

// New creates an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error with a formatted message around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether the first *Error in err's chain has the given code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode returns the code of the first *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message of the first *Error in err's chain
// without code or cause, or err.Error() for uncoded errors.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
