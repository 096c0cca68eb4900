package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aatumaykin/cronty/internal/logger"
	"github.com/aatumaykin/cronty/internal/metrics"
)

// Tool defines the interface that all tools must implement.
// A tool is an operation an agent can call by name.
type Tool interface {
	// Name returns the unique name of the tool.
	Name() string

	// Description returns a human-readable description of what the tool does.
	// Agents read it to decide when and how to call the tool.
	Description() string

	// Parameters returns a JSON Schema object describing the tool's input parameters.
	Parameters() map[string]interface{}

	// Execute runs the tool with JSON-encoded arguments. The returned value is
	// marshalled to JSON for the caller.
	Execute(ctx context.Context, args string) (any, error)
}

// ReadOnlyTool is implemented by tools that never change backend state.
type ReadOnlyTool interface {
	Tool
	ReadOnly() bool
}

// Registry manages the collection of available tools.
// It provides thread-safe operations for registering and retrieving tools.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

// NewRegistry creates a new empty tool registry.
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]Tool),
	}
}

// Register adds a tool to the registry.
// If a tool with the same name already exists, it will be replaced.
func (r *Registry) Register(tool Tool) error {
	if tool == nil {
		return fmt.Errorf("cannot register nil tool")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	name := tool.Name()
	if name == "" {
		return fmt.Errorf("tool name cannot be empty")
	}

	r.tools[name] = tool
	return nil
}

// Get retrieves a tool by its name.
// Returns the tool and true if found, nil and false otherwise.
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tool, ok := r.tools[name]
	return tool, ok
}

// List returns all registered tools sorted by name.
func (r *Registry) List() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tools := make([]Tool, 0, len(r.tools))
	for _, tool := range r.tools {
		tools = append(tools, tool)
	}
	sort.Slice(tools, func(i, j int) bool { return tools[i].Name() < tools[j].Name() })

	return tools
}

// ToSchema returns the definitions of the registered tools sorted by name.
func (r *Registry) ToSchema() []ToolDefinition {
	tools := r.List()

	schemas := make([]ToolDefinition, 0, len(tools))
	for _, tool := range tools {
		schemas = append(schemas, ToolDefinition{
			Name:        tool.Name(),
			Description: tool.Description(),
			Parameters:  tool.Parameters(),
		})
	}

	return schemas
}

// ToolDefinition describes a tool to a client.
type ToolDefinition struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Parameters  map[string]interface{} `json:"parameters"`
}

// ToolCall is a single invocation request.
type ToolCall struct {
	// ID correlates logs for one call. Generated when empty.
	ID   string `json:"id"`
	Name string `json:"name"`

	// Arguments is a JSON string containing the tool's input parameters.
	Arguments string `json:"arguments"`
}

// ToolResult represents the result of executing a tool.
type ToolResult struct {
	ToolCallID string     `json:"tool_call_id"`
	Content    any        `json:"content,omitempty"`
	Error      *ToolError `json:"error,omitempty"`
	TimedOut   bool       `json:"timed_out,omitempty"`
}

// Text renders the result for text-only clients: the JSON content on
// success, the error description otherwise.
func (r ToolResult) Text() string {
	if r.Error != nil {
		return r.Error.ToLLMContext()
	}
	data, err := json.Marshal(r.Content)
	if err != nil {
		return fmt.Sprintf("%v", r.Content)
	}
	return string(data)
}

// ExecutionConfig represents the configuration for tool execution.
type ExecutionConfig struct {
	Timeout time.Duration // Timeout for tool execution
}

// DefaultExecutionConfig returns the default execution configuration.
// Backend clients enforce their own HTTP timeout; this bounds the whole call.
func DefaultExecutionConfig() *ExecutionConfig {
	return &ExecutionConfig{
		Timeout: 60 * time.Second,
	}
}

// Executor runs tool calls from a registry with a timeout, logging and
// metrics.
type Executor struct {
	registry *Registry
	metrics  *metrics.PrometheusMetrics
	logger   *logger.Logger
	config   ExecutionConfig
}

// NewExecutor creates an executor. Metrics may be nil.
func NewExecutor(registry *Registry, m *metrics.PrometheusMetrics, log *logger.Logger, cfg *ExecutionConfig) *Executor {
	if cfg == nil {
		cfg = DefaultExecutionConfig()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Executor{
		registry: registry,
		metrics:  m,
		logger:   log,
		config:   *cfg,
	}
}

// Registry returns the registry the executor dispatches to.
func (e *Executor) Registry() *Registry {
	return e.registry
}

// Execute runs a tool call. Failures are reported in ToolResult.Error, never
// as a Go error.
func (e *Executor) Execute(ctx context.Context, tc ToolCall) ToolResult {
	if tc.ID == "" {
		tc.ID = uuid.NewString()
	}
	log := e.logger.With(
		logger.Field{Key: "tool", Value: tc.Name},
		logger.Field{Key: "call_id", Value: tc.ID},
	)

	tool, ok := e.registry.Get(tc.Name)
	if !ok {
		log.WarnCtx(ctx, "Unknown tool requested")
		return ToolResult{
			ToolCallID: tc.ID,
			Error:      NewNotFoundError(CodeUnknownTool, fmt.Sprintf("tool not found: %s", tc.Name), ""),
		}
	}

	execCtx := ctx
	if e.config.Timeout > 0 {
		var cancel context.CancelFunc
		execCtx, cancel = context.WithTimeout(ctx, e.config.Timeout)
		defer cancel()
	}

	type toolResult struct {
		result any
		err    error
	}
	resultChan := make(chan toolResult, 1)

	done := e.metrics.StartToolCall(tc.Name)
	start := time.Now()

	go func() {
		res, err := tool.Execute(execCtx, tc.Arguments)
		resultChan <- toolResult{result: res, err: err}
	}()

	var result ToolResult
	select {
	case res := <-resultChan:
		result = ToolResult{ToolCallID: tc.ID, Content: res.result}
		if res.err != nil {
			result = ToolResult{ToolCallID: tc.ID, Error: FromError(res.err)}
		}

	case <-execCtx.Done():
		if execCtx.Err() == context.DeadlineExceeded {
			result = ToolResult{
				ToolCallID: tc.ID,
				Error: NewTimeoutError(CodeTimeout,
					fmt.Sprintf("tool execution timed out after %v", e.config.Timeout),
					map[string]any{"timeout": e.config.Timeout.String()}),
				TimedOut: true,
			}
		} else {
			result = ToolResult{
				ToolCallID: tc.ID,
				Error:      &ToolError{Code: CodeCancelled, Message: fmt.Sprintf("tool execution cancelled: %v", execCtx.Err())},
			}
		}
	}

	duration := logger.Field{Key: "duration_ms", Value: time.Since(start).Milliseconds()}
	if result.Error != nil {
		done(result.Error)
		log.WarnCtx(ctx, "Tool call failed", append(result.Error.LogFields(), duration)...)
	} else {
		done(nil)
		log.InfoCtx(ctx, "Tool call completed", duration)
	}

	return result
}

// ToJSON converts the tool definitions to JSON.
// Useful for debugging or logging.
func (r *Registry) ToJSON() (string, error) {
	schemas := r.ToSchema()
	data, err := json.MarshalIndent(schemas, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal schemas: %w", err)
	}
	return string(data), nil
}
