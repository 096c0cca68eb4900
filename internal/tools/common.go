package tools

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aatumaykin/cronty/internal/timing"
)

const topicPattern = `^[a-z0-9]+(-[a-z0-9]+)*$`

const topicDescription = "The notification topic to send to. " +
	"Format: lowercase alphanumeric with dashes (e.g., 'my-alerts', 'user-123-notifications')"

const timezoneDescription = "Check the user's system timezone first. " +
	"If unavailable, ask the user for their timezone. Examples: " + timing.TimezoneExamples

// parseJSON is a helper function to parse JSON arguments.
func parseJSON(jsonStr string, v interface{}) error {
	decoder := json.NewDecoder(strings.NewReader(jsonStr))
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// decodeArgs parses tool arguments. Empty input means no arguments.
func decodeArgs(tool, args string, v interface{}) error {
	if strings.TrimSpace(args) == "" {
		args = "{}"
	}
	if err := parseJSON(args, v); err != nil {
		return NewValidationError(fmt.Sprintf("Invalid arguments for %s: %v", tool, err), nil)
	}
	return nil
}

func stringProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}

func patternProp(description, pattern string) map[string]interface{} {
	p := stringProp(description)
	p["pattern"] = pattern
	return p
}

func objectSchema(properties map[string]interface{}, required ...string) map[string]interface{} {
	if required == nil {
		required = []string{}
	}
	return map[string]interface{}{
		"type":                 "object",
		"properties":           properties,
		"required":             required,
		"additionalProperties": false,
	}
}

func scheduleIDSchema(verb string) map[string]interface{} {
	return objectSchema(map[string]interface{}{
		"schedule_id": stringProp(fmt.Sprintf("The schedule ID to %s. "+
			"This ID is returned when creating a cron schedule.", verb)),
	}, "schedule_id")
}
