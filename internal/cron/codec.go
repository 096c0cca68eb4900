// Package cron encodes cron expressions into the scheduler backend's
// "CRON_TZ=<zone> <expr>" format and decodes them back.
package cron

import (
	"fmt"
	"strings"

	"github.com/aatumaykin/cronty/internal/timing"
)

// TimezonePrefix marks the zone embedded in a combined cron string.
const TimezonePrefix = "CRON_TZ="

// DefaultTimezone is assumed when a combined string carries no zone.
const DefaultTimezone = "UTC"

// FieldCount is the number of fields in a standard cron expression.
const FieldCount = 5

const fieldExamples = "Examples: '0 9 * * 1', '30 8 * * 1-5', '0 0 1 * *'"

// ExpressionError reports a cron expression with the wrong number of fields.
type ExpressionError struct {
	Expression string
	Fields     int
}

func (e *ExpressionError) Error() string {
	return fmt.Sprintf("Invalid cron expression: '%s'. Cron requires exactly 5 fields: "+
		"minute hour day-of-month month day-of-week (got %d). %s", e.Expression, e.Fields, fieldExamples)
}

// ValidateExpression checks the field count only. What each field may
// contain is decided by the backend.
func ValidateExpression(expr string) error {
	fields := strings.Fields(expr)
	if len(fields) != FieldCount {
		return &ExpressionError{Expression: expr, Fields: len(fields)}
	}
	return nil
}

// ValidateTimezone checks that tz is a resolvable IANA zone.
func ValidateTimezone(tz string) error {
	_, err := timing.LoadTimezone(tz)
	return err
}

// Encode builds the combined cron string, e.g. "CRON_TZ=Europe/Warsaw 0 9 * * 1".
func Encode(tz, expr string) (string, error) {
	if err := ValidateExpression(expr); err != nil {
		return "", err
	}
	return TimezonePrefix + tz + " " + expr, nil
}

// Decode splits a combined cron string into expression and timezone.
// It accepts any string: without the prefix the whole input is the
// expression and the zone is UTC.
func Decode(combined string) (expr, tz string) {
	rest, ok := strings.CutPrefix(combined, TimezonePrefix)
	if !ok {
		return combined, DefaultTimezone
	}

	tz, expr, _ = strings.Cut(rest, " ")
	if tz == "" {
		tz = DefaultTimezone
	}
	return expr, tz
}
