// Package validation checks and normalizes agent-supplied fields before
// anything reaches a backend.
package validation

import (
	"fmt"
	"strings"

	"github.com/wasilibs/go-re2"
	"golang.org/x/text/unicode/norm"
)

const (
	// MinPriority and MaxPriority bound ntfy message priorities.
	MinPriority = 1
	MaxPriority = 5
	// MaxActions is the number of action buttons ntfy accepts.
	MaxActions = 3
)

var (
	// TopicPattern: lowercase alphanumeric words joined by single dashes.
	TopicPattern = re2.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	// LabelPattern: characters QStash accepts in schedule labels.
	LabelPattern = re2.MustCompile(`^[a-zA-Z0-9._-]+$`)

	invisibleChars = re2.MustCompile(`[\x{200B}-\x{200D}\x{FEFF}\x{00AD}]`)
)

// Error is a rejected input field.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Topic checks a notification topic name.
func Topic(topic string) error {
	if !TopicPattern.MatchString(topic) {
		return &Error{
			Field: "notification_topic",
			Message: fmt.Sprintf("Invalid notification topic: '%s'. Use lowercase alphanumeric "+
				"with dashes (e.g., 'my-alerts', 'user-123-notifications')", topic),
		}
	}
	return nil
}

// Label checks an optional schedule label. Callers skip the check when
// no label was given.
func Label(label string) error {
	if !LabelPattern.MatchString(label) {
		return &Error{
			Field: "label",
			Message: fmt.Sprintf("Invalid label: '%s'. Only alphanumeric characters, hyphens, "+
				"underscores, and periods are allowed. Examples: 'daily-standup', "+
				"'weekly_report', 'reminder.v1'", label),
		}
	}
	return nil
}

// Message normalizes notification text to NFC, strips invisible and
// control characters (newlines and tabs survive) and rejects what is left
// if it is blank.
func Message(msg string) (string, error) {
	normalized := norm.NFC.String(msg)
	normalized = invisibleChars.ReplaceAllString(normalized, "")

	var b strings.Builder
	b.Grow(len(normalized))
	for _, r := range normalized {
		if r >= 32 && r != 127 || r == '\n' || r == '\t' {
			b.WriteRune(r)
		}
	}

	cleaned := strings.TrimSpace(b.String())
	if cleaned == "" {
		return "", &Error{Field: "message", Message: "Message must not be empty"}
	}
	return cleaned, nil
}

// Priority checks an ntfy priority.
func Priority(p int) error {
	if p < MinPriority || p > MaxPriority {
		return &Error{
			Field:   "priority",
			Message: fmt.Sprintf("Invalid priority: %d. Use 1-5 (1=min, 3=default, 5=urgent)", p),
		}
	}
	return nil
}

// Actions checks the number of action buttons.
func Actions(n int) error {
	if n > MaxActions {
		return &Error{
			Field:   "actions",
			Message: fmt.Sprintf("Too many actions: %d. At most %d action buttons are allowed", n, MaxActions),
		}
	}
	return nil
}

// ScheduleID checks that an id was supplied.
func ScheduleID(id string) error {
	if strings.TrimSpace(id) == "" {
		return &Error{Field: "schedule_id", Message: "schedule_id is required"}
	}
	return nil
}
