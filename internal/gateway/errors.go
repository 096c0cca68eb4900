package gateway

import (
	"github.com/cockroachdb/errors"

	"github.com/aatumaykin/cronty/internal/qstash"
	"github.com/aatumaykin/cronty/internal/timing"
	"github.com/aatumaykin/cronty/internal/validation"
)

// Code is the machine-checkable outcome of a failed operation.
type Code string

const (
	// CodeValidation: the caller's input was rejected before any network call.
	CodeValidation Code = "validation_error"
	// CodeNotFound: the referenced schedule does not exist.
	CodeNotFound Code = "not_found"
	// CodeAPIError: the backend answered with an error.
	CodeAPIError Code = "api_error"
	// CodeConnection: the backend could not be reached.
	CodeConnection Code = "connection_error"
)

// Error is the failure half of every operation result.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// CodeOf classifies any error returned by this package. Errors from
// collaborators are mapped on the fly; unknown errors count as api_error.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}

	var gErr *Error
	if errors.As(err, &gErr) {
		return gErr.Code
	}

	var (
		tErr *timing.Error
		dErr *timing.DelayError
		vErr *validation.Error
	)
	if errors.As(err, &tErr) || errors.As(err, &dErr) || errors.As(err, &vErr) {
		return CodeValidation
	}

	switch qstash.CodeOf(err) {
	case qstash.CodeNotFound:
		return CodeNotFound
	case qstash.CodeConnection:
		return CodeConnection
	}
	return CodeAPIError
}

func invalid(err error) *Error {
	return &Error{Code: CodeValidation, Message: err.Error(), Err: err}
}

// backendFailure wraps a scheduler error with the operation context.
func backendFailure(action string, err error) *Error {
	code := CodeOf(err)
	if code == CodeValidation {
		code = CodeAPIError
	}
	return &Error{
		Code:    code,
		Message: "Failed to " + action + ": " + qstash.MessageOf(err),
		Err:     err,
	}
}
