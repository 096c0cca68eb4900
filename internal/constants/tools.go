package constants

// Tool names exposed to agents.
const (
	ToolSendPushNotification = "send_push_notification"
	ToolScheduleNotification = "schedule_notification"
	ToolScheduleCron         = "schedule_cron_notification"
	ToolListScheduled        = "list_scheduled_notifications"
	ToolPauseSchedule        = "pause_schedule"
	ToolResumeSchedule       = "resume_schedule"
	ToolDeleteSchedule       = "delete_schedule"
	ToolGetCurrentTime       = "get_current_time"
	ToolHealth               = "health"
)

// Static resources.
const (
	ResourceCronExamples = "cron://examples"
	ResourceTimezones    = "timezones://valid"
)
