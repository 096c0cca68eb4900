package qstash

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
)

// Code classifies a failed backend call.
type Code string

const (
	CodeNotFound   Code = "not_found"
	CodeAPIError   Code = "api_error"
	CodeConnection Code = "connection_error"
)

// ErrNotFound is the sentinel every not-found Error matches with errors.Is.
var ErrNotFound = errors.New("schedule not found")

// Error is returned for every failed QStash request.
type Error struct {
	Code       Code
	StatusCode int
	Op         string
	Message    string
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("qstash %s: %s (status %d)", e.Op, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("qstash %s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrNotFound) match not-found responses.
func (e *Error) Is(target error) bool {
	return target == ErrNotFound && e.Code == CodeNotFound
}

// Operation names, used in errors, logs and not-found classification.
const (
	opPublish        = "publish"
	opCreateSchedule = "create schedule"
	opListSchedules  = "list schedules"
	opGetSchedule    = "get schedule"
	opPauseSchedule  = "pause schedule"
	opResumeSchedule = "resume schedule"
	opDeleteSchedule = "delete schedule"
)

// addressesSchedule reports whether op targets one existing schedule by id.
// A 404 from any other operation means a wrong endpoint, not a missing
// schedule.
func addressesSchedule(op string) bool {
	switch op {
	case opGetSchedule, opPauseSchedule, opResumeSchedule, opDeleteSchedule:
		return true
	}
	return false
}

// statusError maps a non-2xx response. QStash reports missing schedules
// with 404; the message check only catches servers that answer otherwise.
func statusError(op string, status int, body []byte) *Error {
	msg := apiMessage(body)
	if msg == "" {
		msg = http.StatusText(status)
	}

	code := CodeAPIError
	if addressesSchedule(op) &&
		(status == http.StatusNotFound || strings.Contains(strings.ToLower(msg), "not found")) {
		code = CodeNotFound
	}

	return &Error{Code: code, StatusCode: status, Op: op, Message: msg}
}

func connectionError(op string, err error) *Error {
	return &Error{
		Code:    CodeConnection,
		Op:      op,
		Message: err.Error(),
		Err:     errors.WithHint(err, "check QSTASH_URL and network connectivity"),
	}
}

// CodeOf returns the classification of err, or "" when err is not a
// QStash error.
func CodeOf(err error) Code {
	var qErr *Error
	if errors.As(err, &qErr) {
		return qErr.Code
	}
	return ""
}

// MessageOf returns the backend message of err, falling back to err.Error().
func MessageOf(err error) string {
	var qErr *Error
	if errors.As(err, &qErr) {
		return qErr.Message
	}
	return err.Error()
}
