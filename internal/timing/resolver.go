package timing

import (
	"fmt"
	"strings"
	"time"

	"github.com/wasilibs/go-re2"
)

// TimezoneExamples is shown whenever a timezone cannot be resolved.
const TimezoneExamples = "Europe/Warsaw, Europe/London, America/New_York, America/Los_Angeles, " +
	"Asia/Tokyo, Asia/Shanghai, Australia/Sydney, UTC"

var (
	datePattern  = re2.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	clockPattern = re2.MustCompile(`^\d{2}:\d{2}$`)
)

// Layouts that carry an explicit offset. RFC3339Nano also accepts values
// without fractional seconds.
var zonedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04Z07:00",
}

// Layouts that parse but say nothing about the zone. A match means the
// caller forgot the offset.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Mode is the timing input shape a request used.
type Mode string

const (
	ModeDatetime Mode = "datetime"
	ModeSeparate Mode = "date_time_timezone"
	ModeDelay    Mode = "delay"
)

// ErrorKind classifies resolver failures.
type ErrorKind string

const (
	KindNoParameters          ErrorKind = "no_parameters"
	KindConflictingParameters ErrorKind = "conflicting_parameters"
	KindMissingTimezone       ErrorKind = "missing_timezone"
	KindMissingTime           ErrorKind = "missing_time"
	KindMalformedDatetime     ErrorKind = "malformed_datetime"
	KindInvalidTimezone       ErrorKind = "invalid_timezone"
	KindInvalidDateTime       ErrorKind = "invalid_date_time"
	KindInPast                ErrorKind = "in_past"
	KindInvalidDelay          ErrorKind = "invalid_delay"
)

// Error is returned for every input the resolver rejects. All of them are
// caller mistakes and are reported before any backend call.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Input holds the raw timing parameters of a schedule request.
// Empty strings mean "not supplied".
type Input struct {
	Datetime string
	Date     string
	Time     string
	Timezone string
	Delay    string
}

// Resolution is the validated outcome: either a not-before instant
// (ModeDatetime, ModeSeparate) or a delay string (ModeDelay).
type Resolution struct {
	Mode      Mode
	NotBefore time.Time
	Delay     string
	// Display echoes the requested time back to the caller.
	Display string
}

// Resolver validates timing input against an injectable clock.
type Resolver struct {
	now func() time.Time
}

// NewResolver creates a resolver. A nil clock falls back to time.Now.
func NewResolver(now func() time.Time) *Resolver {
	if now == nil {
		now = time.Now
	}
	return &Resolver{now: now}
}

// Resolve picks the single timing mode present in the input and validates it.
func (r *Resolver) Resolve(in Input) (Resolution, error) {
	in = trimInput(in)

	mode, err := determineMode(in)
	if err != nil {
		return Resolution{}, err
	}

	switch mode {
	case ModeDatetime:
		return r.resolveDatetime(in.Datetime)
	case ModeSeparate:
		return r.resolveSeparate(in.Date, in.Time, in.Timezone)
	default:
		delay, err := ParseDelay(in.Delay)
		if err != nil {
			return Resolution{}, &Error{Kind: KindInvalidDelay, Message: err.Error(), Err: err}
		}
		return Resolution{Mode: ModeDelay, Delay: delay, Display: delay}, nil
	}
}

func trimInput(in Input) Input {
	return Input{
		Datetime: strings.TrimSpace(in.Datetime),
		Date:     strings.TrimSpace(in.Date),
		Time:     strings.TrimSpace(in.Time),
		Timezone: strings.TrimSpace(in.Timezone),
		Delay:    strings.TrimSpace(in.Delay),
	}
}

func determineMode(in Input) (Mode, error) {
	hasDatetime := in.Datetime != ""
	hasSeparate := in.Date != "" || in.Time != "" || in.Timezone != ""
	hasDelay := in.Delay != ""

	used := 0
	for _, has := range []bool{hasDatetime, hasSeparate, hasDelay} {
		if has {
			used++
		}
	}

	switch {
	case used == 0:
		return "", &Error{
			Kind:    KindNoParameters,
			Message: "No scheduling parameters provided. Use one of: datetime (ISO 8601), date+time+timezone, or delay",
		}
	case used > 1:
		return "", &Error{
			Kind:    KindConflictingParameters,
			Message: "Multiple scheduling modes provided. Use only one of: datetime (ISO 8601), date+time+timezone, or delay",
		}
	case hasDatetime:
		return ModeDatetime, nil
	case hasDelay:
		return ModeDelay, nil
	}

	var missing []string
	if in.Time == "" {
		missing = append(missing, "time")
	}
	if in.Timezone == "" {
		missing = append(missing, "timezone")
	}
	if len(missing) > 0 {
		kind := KindMissingTimezone
		if in.Time == "" {
			kind = KindMissingTime
		}
		return "", &Error{
			Kind: kind,
			Message: fmt.Sprintf("Missing required parameters: %s. time and timezone are required, "+
				"date defaults to today in the given timezone. Timezone examples: %s",
				strings.Join(missing, ", "), TimezoneExamples),
		}
	}

	return ModeSeparate, nil
}

func (r *Resolver) resolveDatetime(value string) (Resolution, error) {
	instant, err := parseZoned(value)
	if err != nil {
		return Resolution{}, err
	}

	now := r.now().UTC()
	if !instant.After(now) {
		return Resolution{}, &Error{
			Kind: KindInPast,
			Message: fmt.Sprintf("Scheduled time must be in the future. Provided: %s, Current time (UTC): %s",
				value, now.Format(time.RFC3339)),
		}
	}

	return Resolution{Mode: ModeDatetime, NotBefore: instant, Display: value}, nil
}

func parseZoned(value string) (time.Time, error) {
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}

	for _, layout := range naiveLayouts {
		if _, err := time.Parse(layout, value); err == nil {
			return time.Time{}, &Error{
				Kind: KindMalformedDatetime,
				Message: fmt.Sprintf("ISO 8601 datetime must include timezone: %q. "+
					"Example: 2025-01-15T09:00:00+01:00 or 2025-01-15T09:00:00Z", value),
			}
		}
	}

	return time.Time{}, &Error{
		Kind: KindMalformedDatetime,
		Message: fmt.Sprintf("Invalid ISO 8601 datetime format: %q. "+
			"Example: 2025-01-15T09:00:00+01:00 or 2025-01-15T09:00:00Z", value),
	}
}

func (r *Resolver) resolveSeparate(date, clock, timezone string) (Resolution, error) {
	loc, err := LoadTimezone(timezone)
	if err != nil {
		return Resolution{}, err
	}

	if !clockPattern.MatchString(clock) {
		return Resolution{}, &Error{
			Kind:    KindInvalidDateTime,
			Message: fmt.Sprintf("Invalid time: %q. Use HH:MM (24-hour), e.g. 09:00 or 18:30", clock),
		}
	}
	if date != "" && !datePattern.MatchString(date) {
		return Resolution{}, &Error{
			Kind:    KindInvalidDateTime,
			Message: fmt.Sprintf("Invalid date: %q. Use YYYY-MM-DD, e.g. 2025-01-15", date),
		}
	}

	now := r.now()
	// "Today" is the date on the wall clock of the target zone, not UTC.
	if date == "" {
		date = now.In(loc).Format("2006-01-02")
	}

	instant, err := time.ParseInLocation("2006-01-02 15:04", date+" "+clock, loc)
	if err != nil {
		return Resolution{}, &Error{
			Kind:    KindInvalidDateTime,
			Message: fmt.Sprintf("Invalid date/time: %s %s: %v", date, clock, err),
			Err:     err,
		}
	}

	display := fmt.Sprintf("%s %s %s", date, clock, timezone)
	if !instant.After(now) {
		return Resolution{}, &Error{
			Kind: KindInPast,
			Message: fmt.Sprintf("Scheduled time must be in the future. Provided: %s, "+
				"Current time (%s): %s, Current time (UTC): %s",
				display, timezone, now.In(loc).Format("2006-01-02 15:04"), now.UTC().Format(time.RFC3339)),
		}
	}

	return Resolution{Mode: ModeSeparate, NotBefore: instant, Display: display}, nil
}

// LoadTimezone resolves an IANA zone name. Empty names and "Local" are
// rejected because they depend on the host rather than the user.
func LoadTimezone(name string) (*time.Location, error) {
	invalid := &Error{
		Kind: KindInvalidTimezone,
		Message: fmt.Sprintf("Invalid timezone: %q. Use IANA timezone format. Examples: %s",
			name, TimezoneExamples),
	}

	if name == "" || name == "Local" {
		return nil, invalid
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		invalid.Err = err
		return nil, invalid
	}

	return loc, nil
}
