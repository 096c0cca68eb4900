package tools

import (
	"context"

	"github.com/aatumaykin/cronty/internal/constants"
	"github.com/aatumaykin/cronty/internal/gateway"
	"github.com/aatumaykin/cronty/internal/logger"
)

// ScheduleNotificationArgs represents the arguments for the schedule_notification tool.
type ScheduleNotificationArgs struct {
	Message           string `json:"message"`
	NotificationTopic string `json:"notification_topic"`
	Datetime          string `json:"datetime"`
	Date              string `json:"date"`
	Time              string `json:"time"`
	Timezone          string `json:"timezone"`
	Delay             string `json:"delay"`
}

// ScheduleNotificationTool schedules a one-off notification.
type ScheduleNotificationTool struct {
	gateway Gateway
	logger  *logger.Logger
}

// NewScheduleNotificationTool creates a new ScheduleNotificationTool instance.
func NewScheduleNotificationTool(gw Gateway, log *logger.Logger) *ScheduleNotificationTool {
	return &ScheduleNotificationTool{gateway: gw, logger: log}
}

// Name returns the tool name.
func (t *ScheduleNotificationTool) Name() string {
	return constants.ToolScheduleNotification
}

// Description returns a description of what the tool does.
func (t *ScheduleNotificationTool) Description() string {
	return "Schedule a one-off notification for a future time. Supports three input modes (use only one): " +
		"1. datetime: ISO 8601 format with timezone (e.g., 2025-01-15T09:00:00+01:00); " +
		"2. date + time + timezone: separate parameters, date defaults to today in that timezone; " +
		"3. delay: delay format (e.g., 1d, 2h30m, 1d10h30m50s)."
}

// Parameters returns the JSON Schema for the tool's parameters.
func (t *ScheduleNotificationTool) Parameters() map[string]interface{} {
	return objectSchema(map[string]interface{}{
		"message":            stringProp("The notification text to send"),
		"notification_topic": patternProp(topicDescription, topicPattern),
		"datetime":           stringProp("ISO 8601 datetime with timezone"),
		"date":               patternProp("Date in YYYY-MM-DD format", `^\d{4}-\d{2}-\d{2}$`),
		"time":               patternProp("Time in HH:MM format", `^\d{2}:\d{2}$`),
		"timezone":           stringProp("IANA timezone (required with time). " + timezoneDescription),
		"delay":              stringProp(`Delay format (e.g., "1d", "2h30m", "1d10h30m")`),
	}, "message", "notification_topic")
}

// Execute schedules the notification.
func (t *ScheduleNotificationTool) Execute(ctx context.Context, args string) (any, error) {
	var params ScheduleNotificationArgs
	if err := decodeArgs(t.Name(), args, &params); err != nil {
		return nil, err
	}

	t.logger.DebugCtx(ctx, "Scheduling one-off notification",
		logger.Field{Key: "topic", Value: params.NotificationTopic},
		logger.Field{Key: "has_datetime", Value: params.Datetime != ""},
		logger.Field{Key: "has_time", Value: params.Time != ""},
		logger.Field{Key: "has_delay", Value: params.Delay != ""})

	return t.gateway.ScheduleOnce(ctx, gateway.ScheduleOnceRequest{
		Message:  params.Message,
		Topic:    params.NotificationTopic,
		Datetime: params.Datetime,
		Date:     params.Date,
		Time:     params.Time,
		Timezone: params.Timezone,
		Delay:    params.Delay,
	})
}

// ScheduleCronNotificationArgs represents the arguments for the schedule_cron_notification tool.
type ScheduleCronNotificationArgs struct {
	Message           string `json:"message"`
	NotificationTopic string `json:"notification_topic"`
	Cron              string `json:"cron"`
	Timezone          string `json:"timezone"`
	Label             string `json:"label"`
}

// ScheduleCronNotificationTool creates a recurring notification schedule.
type ScheduleCronNotificationTool struct {
	gateway Gateway
	logger  *logger.Logger
}

// NewScheduleCronNotificationTool creates a new ScheduleCronNotificationTool instance.
func NewScheduleCronNotificationTool(gw Gateway, log *logger.Logger) *ScheduleCronNotificationTool {
	return &ScheduleCronNotificationTool{gateway: gw, logger: log}
}

// Name returns the tool name.
func (t *ScheduleCronNotificationTool) Name() string {
	return constants.ToolScheduleCron
}

// Description returns a description of what the tool does.
func (t *ScheduleCronNotificationTool) Description() string {
	return "Schedule a recurring notification using cron syntax. " +
		"Creates a persistent schedule that fires according to the cron pattern until it is deleted. " +
		"Determine the user's timezone from the system first and ask the user if it is unavailable."
}

// Parameters returns the JSON Schema for the tool's parameters.
func (t *ScheduleCronNotificationTool) Parameters() map[string]interface{} {
	return objectSchema(map[string]interface{}{
		"message":            stringProp("The notification text to send"),
		"notification_topic": patternProp(topicDescription, topicPattern),
		"cron": stringProp("Standard 5-field cron expression. " +
			"Fields: minute hour day-of-month month day-of-week. " +
			"Examples: '0 9 * * 1' (Mondays 9am), '30 8 * * 1-5' (weekdays 8:30am), '0 0 1 * *' (monthly)"),
		"timezone": stringProp("IANA timezone for the cron schedule. " + timezoneDescription),
		"label": patternProp("Optional label for identifying this schedule in the scheduler dashboard logs. "+
			"Only alphanumeric, hyphen, underscore, or period allowed. "+
			"Examples: 'daily-standup', 'weekly_report', 'reminder.v1'", `^[a-zA-Z0-9._-]+$`),
	}, "message", "notification_topic", "cron", "timezone")
}

// Execute creates the schedule.
func (t *ScheduleCronNotificationTool) Execute(ctx context.Context, args string) (any, error) {
	var params ScheduleCronNotificationArgs
	if err := decodeArgs(t.Name(), args, &params); err != nil {
		return nil, err
	}

	t.logger.DebugCtx(ctx, "Creating cron schedule",
		logger.Field{Key: "cron", Value: params.Cron},
		logger.Field{Key: "timezone", Value: params.Timezone})

	return t.gateway.ScheduleCron(ctx, gateway.ScheduleCronRequest{
		Message:  params.Message,
		Topic:    params.NotificationTopic,
		Cron:     params.Cron,
		Timezone: params.Timezone,
		Label:    params.Label,
	})
}
