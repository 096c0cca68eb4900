package tools

import (
	"context"

	"github.com/aatumaykin/cronty/internal/constants"
)

// GetCurrentTimeTool reports the current UTC time.
type GetCurrentTimeTool struct {
	gateway Gateway
}

// NewGetCurrentTimeTool creates a new GetCurrentTimeTool instance.
func NewGetCurrentTimeTool(gw Gateway) *GetCurrentTimeTool {
	return &GetCurrentTimeTool{gateway: gw}
}

// Name returns the tool name.
func (t *GetCurrentTimeTool) Name() string {
	return constants.ToolGetCurrentTime
}

// Description returns a description of what the tool does.
func (t *GetCurrentTimeTool) Description() string {
	return "Get the current date and time in UTC. Useful for scheduling notifications " +
		"or including timestamps in messages."
}

// Parameters returns the JSON Schema for the tool's parameters.
func (t *GetCurrentTimeTool) Parameters() map[string]interface{} {
	return objectSchema(map[string]interface{}{})
}

// ReadOnly reports that the tool has no side effects.
func (t *GetCurrentTimeTool) ReadOnly() bool { return true }

// Execute returns the current time.
func (t *GetCurrentTimeTool) Execute(_ context.Context, args string) (any, error) {
	if err := decodeArgs(t.Name(), args, &struct{}{}); err != nil {
		return nil, err
	}
	return t.gateway.CurrentTime(), nil
}

// HealthTool checks that the server is configured.
type HealthTool struct {
	gateway Gateway
}

// NewHealthTool creates a new HealthTool instance.
func NewHealthTool(gw Gateway) *HealthTool {
	return &HealthTool{gateway: gw}
}

// Name returns the tool name.
func (t *HealthTool) Name() string {
	return constants.ToolHealth
}

// Description returns a description of what the tool does.
func (t *HealthTool) Description() string {
	return "Check server configuration and return health status."
}

// Parameters returns the JSON Schema for the tool's parameters.
func (t *HealthTool) Parameters() map[string]interface{} {
	return objectSchema(map[string]interface{}{})
}

// ReadOnly reports that the tool has no side effects.
func (t *HealthTool) ReadOnly() bool { return true }

// Execute reports health or the missing settings.
func (t *HealthTool) Execute(_ context.Context, args string) (any, error) {
	if err := decodeArgs(t.Name(), args, &struct{}{}); err != nil {
		return nil, err
	}
	return t.gateway.Health()
}
