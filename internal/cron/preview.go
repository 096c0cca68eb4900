package cron

import (
	"fmt"
	"time"

	robfig "github.com/robfig/cron/v3"
)

// standardParser accepts the same 5-field syntax plus descriptors
// (@daily, @weekly) that the backend understands.
var standardParser = robfig.NewParser(
	robfig.Minute | robfig.Hour | robfig.Dom | robfig.Month | robfig.Dow | robfig.Descriptor,
)

// NextFire previews the first occurrence of expr in zone tz strictly after
// now. The backend stays authoritative: an expression robfig cannot parse
// is not rejected by callers, they only lose the preview.
func NextFire(tz, expr string, now time.Time) (time.Time, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.Time{}, fmt.Errorf("load timezone %q: %w", tz, err)
	}

	schedule, err := standardParser.Parse(expr)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse cron expression %q: %w", expr, err)
	}

	next := schedule.Next(now.In(loc))
	if next.IsZero() {
		return time.Time{}, fmt.Errorf("cron expression %q never fires", expr)
	}
	return next, nil
}

// Parseable reports whether robfig understands the expression.
func Parseable(expr string) bool {
	_, err := standardParser.Parse(expr)
	return err == nil
}
