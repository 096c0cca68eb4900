// Package schedules reshapes backend cron schedule records into the
// external schema returned to agents.
package schedules

import "time"

// TimestampLayout renders occurrence times. Values are always UTC, so the
// offset prints as +00:00.
const TimestampLayout = "2006-01-02T15:04:05-07:00"

// Record is a cron schedule as stored by the scheduler backend, already
// converted to Go types at the client boundary.
type Record struct {
	ScheduleID       string
	Cron             string
	Destination      string
	Body             *string
	Label            *string
	Paused           bool
	NextScheduleTime *time.Time
	LastScheduleTime *time.Time
}

// Schedule is the external view of a notification schedule.
type Schedule struct {
	ScheduleID        string  `json:"schedule_id"`
	CronExpression    string  `json:"cron_expression"`
	Timezone          string  `json:"timezone"`
	NotificationTopic string  `json:"notification_topic"`
	Label             *string `json:"label"`
	Paused            bool    `json:"paused"`
	NextOccurrence    *string `json:"next_occurrence"`
	LastOccurrence    *string `json:"last_occurrence"`
	NotificationBody  *string `json:"notification_body"`
}

// FormatTimestamp renders t in UTC. A nil time stays nil.
func FormatTimestamp(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(TimestampLayout)
	return &s
}
