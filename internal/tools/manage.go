package tools

import (
	"context"

	"github.com/aatumaykin/cronty/internal/constants"
	"github.com/aatumaykin/cronty/internal/gateway"
)

// ListScheduledNotificationsArgs represents the arguments for the list_scheduled_notifications tool.
type ListScheduledNotificationsArgs struct {
	NotificationTopic string `json:"notification_topic"`
}

// ListScheduledNotificationsTool lists recurring notification schedules.
type ListScheduledNotificationsTool struct {
	gateway Gateway
}

// NewListScheduledNotificationsTool creates a new ListScheduledNotificationsTool instance.
func NewListScheduledNotificationsTool(gw Gateway) *ListScheduledNotificationsTool {
	return &ListScheduledNotificationsTool{gateway: gw}
}

// Name returns the tool name.
func (t *ListScheduledNotificationsTool) Name() string {
	return constants.ToolListScheduled
}

// Description returns a description of what the tool does.
func (t *ListScheduledNotificationsTool) Description() string {
	return "List scheduled recurring notifications, optionally filtered by notification topic. " +
		"One-off notifications created with schedule_notification are pending messages, not schedules, and are not listed."
}

// Parameters returns the JSON Schema for the tool's parameters.
func (t *ListScheduledNotificationsTool) Parameters() map[string]interface{} {
	return objectSchema(map[string]interface{}{
		"notification_topic": patternProp("Optional: filter to show only schedules for this notification topic. "+
			"If not provided, returns all scheduled notifications. "+
			"Format: lowercase alphanumeric with dashes (e.g., 'my-alerts')", topicPattern),
	})
}

// ReadOnly reports that listing does not modify schedules.
func (t *ListScheduledNotificationsTool) ReadOnly() bool { return true }

// Execute lists the schedules.
func (t *ListScheduledNotificationsTool) Execute(ctx context.Context, args string) (any, error) {
	var params ListScheduledNotificationsArgs
	if err := decodeArgs(t.Name(), args, &params); err != nil {
		return nil, err
	}
	return t.gateway.List(ctx, params.NotificationTopic)
}

// ScheduleIDArgs is the argument of the pause, resume and delete tools.
type ScheduleIDArgs struct {
	ScheduleID string `json:"schedule_id"`
}

// scheduleMutationTool backs pause_schedule, resume_schedule and delete_schedule.
type scheduleMutationTool struct {
	name        string
	description string
	verb        string
	apply       func(ctx context.Context, id string) (*gateway.MutationResult, error)
}

func (t *scheduleMutationTool) Name() string { return t.name }

func (t *scheduleMutationTool) Description() string { return t.description }

func (t *scheduleMutationTool) Parameters() map[string]interface{} {
	return scheduleIDSchema(t.verb)
}

// Execute applies the mutation. A missing schedule is a result with
// success false, not a tool error.
func (t *scheduleMutationTool) Execute(ctx context.Context, args string) (any, error) {
	var params ScheduleIDArgs
	if err := decodeArgs(t.name, args, &params); err != nil {
		return nil, err
	}

	result, err := t.apply(ctx, params.ScheduleID)
	if err != nil {
		return nil, err
	}
	if result.Code == gateway.CodeNotFound {
		return &notFoundResult{MutationResult: result, Suggestion: constants.MsgSuggestListSchedules}, nil
	}
	return result, nil
}

// notFoundResult adds a recovery hint to a not-found mutation result.
type notFoundResult struct {
	*gateway.MutationResult
	Suggestion string `json:"suggestion"`
}

// NewPauseScheduleTool creates the pause_schedule tool.
func NewPauseScheduleTool(gw Gateway) Tool {
	return &scheduleMutationTool{
		name: constants.ToolPauseSchedule,
		description: "Pause a scheduled notification. The schedule stops firing but its configuration " +
			"is preserved and it can be resumed later. Pausing a paused schedule succeeds.",
		verb:  "pause",
		apply: gw.Pause,
	}
}

// NewResumeScheduleTool creates the resume_schedule tool.
func NewResumeScheduleTool(gw Gateway) Tool {
	return &scheduleMutationTool{
		name: constants.ToolResumeSchedule,
		description: "Resume a paused scheduled notification so it fires again on its cron pattern. " +
			"Resuming an active schedule succeeds.",
		verb:  "resume",
		apply: gw.Resume,
	}
}

// NewDeleteScheduleTool creates the delete_schedule tool.
func NewDeleteScheduleTool(gw Gateway) Tool {
	return &scheduleMutationTool{
		name: constants.ToolDeleteSchedule,
		description: "Delete a scheduled notification by its ID. The schedule stops firing permanently " +
			"and cannot be recovered. Use the schedule_id returned from schedule_cron_notification.",
		verb:  "delete",
		apply: gw.Delete,
	}
}
