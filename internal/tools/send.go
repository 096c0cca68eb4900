package tools

import (
	"context"

	"github.com/aatumaykin/cronty/internal/constants"
	"github.com/aatumaykin/cronty/internal/gateway"
	"github.com/aatumaykin/cronty/internal/logger"
)

// SendPushNotificationArgs represents the arguments for the send_push_notification tool.
type SendPushNotificationArgs struct {
	Message  string           `json:"message"`
	Topic    string           `json:"topic"`
	Title    string           `json:"title"`
	Priority *int             `json:"priority"`
	Tags     []string         `json:"tags"`
	Markdown bool             `json:"markdown"`
	Click    string           `json:"click"`
	Icon     string           `json:"icon"`
	Attach   string           `json:"attach"`
	Filename string           `json:"filename"`
	Actions  []map[string]any `json:"actions"`
}

// SendPushNotificationTool delivers a notification immediately.
type SendPushNotificationTool struct {
	gateway Gateway
	logger  *logger.Logger
}

// NewSendPushNotificationTool creates a new SendPushNotificationTool instance.
func NewSendPushNotificationTool(gw Gateway, log *logger.Logger) *SendPushNotificationTool {
	return &SendPushNotificationTool{gateway: gw, logger: log}
}

// Name returns the tool name.
func (t *SendPushNotificationTool) Name() string {
	return constants.ToolSendPushNotification
}

// Description returns a description of what the tool does.
func (t *SendPushNotificationTool) Description() string {
	return "Send an immediate push notification. Only a message is required; " +
		"the topic defaults to the server's configured topic and all other parameters are optional."
}

// Parameters returns the JSON Schema for the tool's parameters.
func (t *SendPushNotificationTool) Parameters() map[string]interface{} {
	return objectSchema(map[string]interface{}{
		"message": stringProp("The notification body text"),
		"topic":   patternProp(topicDescription+". Defaults to the configured topic.", topicPattern),
		"title":   stringProp("Notification title"),
		"priority": map[string]interface{}{
			"type":        "integer",
			"description": "Priority 1-5 (1=min, 3=default, 5=urgent)",
			"minimum":     1,
			"maximum":     5,
		},
		"tags": map[string]interface{}{
			"type":        "array",
			"description": "List of tags/emoji shortcodes",
			"items":       map[string]interface{}{"type": "string"},
		},
		"markdown": map[string]interface{}{
			"type":        "boolean",
			"description": "Enable markdown formatting",
		},
		"click":    stringProp("URL to open when notification is tapped"),
		"icon":     stringProp("URL of custom notification icon"),
		"attach":   stringProp("URL of file to attach"),
		"filename": stringProp("Filename for attachment"),
		"actions": map[string]interface{}{
			"type":        "array",
			"description": "Action buttons (max 3)",
			"maxItems":    3,
			"items":       map[string]interface{}{"type": "object"},
		},
	}, "message")
}

// Execute sends the notification.
func (t *SendPushNotificationTool) Execute(ctx context.Context, args string) (any, error) {
	var params SendPushNotificationArgs
	if err := decodeArgs(t.Name(), args, &params); err != nil {
		return nil, err
	}

	priority := 0
	if params.Priority != nil {
		priority = *params.Priority
	}
	t.logger.DebugCtx(ctx, "Sending push notification",
		logger.Field{Key: "topic", Value: params.Topic},
		logger.Field{Key: "priority", Value: priority},
		logger.Field{Key: "actions", Value: len(params.Actions)})

	return t.gateway.SendNow(ctx, gateway.SendRequest{
		Message:  params.Message,
		Topic:    params.Topic,
		Title:    params.Title,
		Priority: params.Priority,
		Tags:     params.Tags,
		Markdown: params.Markdown,
		Click:    params.Click,
		Icon:     params.Icon,
		Attach:   params.Attach,
		Filename: params.Filename,
		Actions:  params.Actions,
	})
}
