// Package timing turns the time inputs an agent can send (absolute datetimes,
// date/time/timezone triples and delay strings) into what the scheduler
// backend accepts: a not-before instant or a delay string.
package timing

import (
	"fmt"
	"strings"
)

// DelayRule identifies which part of the delay grammar was violated.
type DelayRule string

const (
	DelayRuleEmpty       DelayRule = "empty"
	DelayRuleInvalidUnit DelayRule = "invalid_unit"
	DelayRuleWrongOrder  DelayRule = "wrong_order"
	DelayRuleMalformed   DelayRule = "malformed"
)

const delayExamples = `Valid examples: "1d", "2h30m", "1d10h30m50s"`

// delayUnits lists the accepted units from largest to smallest.
const delayUnits = "dhms"

// DelayError describes a rejected delay string.
type DelayError struct {
	Input string
	Rule  DelayRule
	Unit  string
}

func (e *DelayError) Error() string {
	switch e.Rule {
	case DelayRuleEmpty:
		return fmt.Sprintf("Invalid delay format: %q. At least one time unit (d, h, m, s) is required. %s", e.Input, delayExamples)
	case DelayRuleInvalidUnit:
		if e.Unit == "" {
			return fmt.Sprintf("Invalid delay format: %q. The last number has no time unit, use d, h, m or s. %s", e.Input, delayExamples)
		}
		return fmt.Sprintf("Invalid delay format: %q. Unknown time unit %q, use d, h, m or s. %s", e.Input, e.Unit, delayExamples)
	case DelayRuleWrongOrder:
		return fmt.Sprintf("Invalid delay format: %q. Units must be in order d, h, m, s and appear at most once (%q is out of order). %s", e.Input, e.Unit, delayExamples)
	default:
		return fmt.Sprintf("Invalid delay format: %q. Every unit needs a number in front of it. %s", e.Input, delayExamples)
	}
}

// ParseDelay validates a delay such as "1d10h30m" and returns it unchanged.
// The backend accepts this exact grammar, so nothing is converted.
func ParseDelay(delay string) (string, error) {
	if strings.TrimSpace(delay) == "" {
		return "", &DelayError{Input: delay, Rule: DelayRuleEmpty}
	}

	last := -1
	digits := 0
	for _, r := range delay {
		if r >= '0' && r <= '9' {
			digits++
			continue
		}

		rank := strings.IndexRune(delayUnits, r)
		if rank < 0 {
			return "", &DelayError{Input: delay, Rule: DelayRuleInvalidUnit, Unit: string(r)}
		}
		if digits == 0 {
			return "", &DelayError{Input: delay, Rule: DelayRuleMalformed, Unit: string(r)}
		}
		if rank <= last {
			return "", &DelayError{Input: delay, Rule: DelayRuleWrongOrder, Unit: string(r)}
		}

		last = rank
		digits = 0
	}

	// Trailing digits without a unit, e.g. "10" or "1h30".
	if digits > 0 {
		return "", &DelayError{Input: delay, Rule: DelayRuleInvalidUnit}
	}

	return delay, nil
}
