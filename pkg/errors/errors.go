// Package errors defines the coded errors sdv returns.
//
// The code tells a caller how far a failure reaches:
//   - INVALID_*: bad input or configuration; the command stops
//   - EXTRACTION_FAILED, PACKAGE_NOT_FOUND, FILE_NOT_FOUND: one project's
//     manifest could not be read; that project is dropped and the run goes on
//   - INTERNAL_ERROR: anything else
//
// Errors from this package compose with the standard library:
//
//	err := errors.Wrap(errors.ErrCodeInvalidManifest, cause, "decode %s", path)
//	errors.Is(err, errors.ErrCodeInvalidManifest) // true
//	stderrors.Is(err, cause)                      // true
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code classifies an Error.
type Code string

const (
	ErrCodeInvalidPattern    Code = "INVALID_PATTERN"
	ErrCodeInvalidSolution   Code = "INVALID_SOLUTION"
	ErrCodeInvalidProject    Code = "INVALID_PROJECT"
	ErrCodeInvalidManifest   Code = "INVALID_MANIFEST"
	ErrCodeInvalidIdentifier Code = "INVALID_IDENTIFIER"
	ErrCodeInvalidConfig     Code = "INVALID_CONFIG"

	ErrCodeFileNotFound     Code = "FILE_NOT_FOUND"
	ErrCodePackageNotFound  Code = "PACKAGE_NOT_FOUND"
	ErrCodeExtractionFailed Code = "EXTRACTION_FAILED"

	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// configuration reports whether c is one of the INVALID_* codes.
func (c Code) configuration() bool {
	return strings.HasPrefix(string(c), "INVALID_")
}

// Error carries a Code, a message for the user, and the error that caused it.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Code))
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches another *Error with the same code, so a bare &Error{Code: c}
// works as an errors.Is target.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// New returns an Error with a formatted message and no cause.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an Error with a formatted message around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

// Is reports whether any Error in err's chain has the given code.
func Is(err error, code Code) bool {
	return err != nil && errors.Is(err, &Error{Code: code})
}

// GetCode returns the code of the outermost Error in err's chain, or "" when
// there is none.
func GetCode(err error) Code {
	if e, ok := as(err); ok {
		return e.Code
	}
	return ""
}

// IsConfiguration reports whether the outermost code is an INVALID_* code.
// An extraction failure caused by a bad identifier is still an extraction
// failure.
func IsConfiguration(err error) bool {
	return GetCode(err).configuration()
}

// UserMessage renders err for a terminal: the outermost Error's message,
// followed by its cause with any codes removed. Errors without a code are
// returned as is.
func UserMessage(err error) string {
	e, ok := as(err)
	if !ok {
		return err.Error()
	}
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + UserMessage(e.Cause)
}

func as(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
