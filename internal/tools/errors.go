package tools

import (
	"fmt"
	"sort"

	"github.com/cockroachdb/errors"

	"github.com/aatumaykin/cronty/internal/constants"
	"github.com/aatumaykin/cronty/internal/cron"
	"github.com/aatumaykin/cronty/internal/gateway"
	"github.com/aatumaykin/cronty/internal/logger"
	"github.com/aatumaykin/cronty/internal/timing"
)

// Error codes that do not come from the gateway.
const (
	CodeUnknownTool = "unknown_tool"
	CodeTimeout     = "timeout"
	CodeCancelled   = "cancelled"
)

// ToolError - структурированная ошибка выполнения инструмента
type ToolError struct {
	Code       string         `json:"code"`                 // Код ошибки для программной обработки
	Message    string         `json:"message"`              // Человекочитаемое сообщение
	Details    map[string]any `json:"details,omitempty"`    // Дополнительные детали
	Suggestion string         `json:"suggestion,omitempty"` // Предложение по исправлению
}

// Error реализует интерфейс error
func (e *ToolError) Error() string {
	return e.Message
}

// ToLLMContext returns the message followed by the suggestion and details,
// for agents that only read text.
func (e *ToolError) ToLLMContext() string {
	result := e.Message

	if e.Suggestion != "" {
		result += fmt.Sprintf("\nSuggestion: %s", e.Suggestion)
	}

	if len(e.Details) > 0 {
		keys := make([]string, 0, len(e.Details))
		for key := range e.Details {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		result += "\nDetails:"
		for _, key := range keys {
			result += fmt.Sprintf("\n - %s: %v", key, e.Details[key])
		}
	}

	return result
}

// LogFields возвращает поля для структурированного логирования
func (e *ToolError) LogFields() []logger.Field {
	fields := []logger.Field{
		{Key: "error_code", Value: e.Code},
		{Key: "error_message", Value: e.Message},
	}
	if e.Suggestion != "" {
		fields = append(fields, logger.Field{Key: "error_suggestion", Value: e.Suggestion})
	}
	return fields
}

// NewNotFoundError создает ошибку "не найдено"
func NewNotFoundError(code, message, suggestion string) *ToolError {
	return &ToolError{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
	}
}

// NewTimeoutError создает ошибку "таймаут"
func NewTimeoutError(code, message string, details map[string]any) *ToolError {
	return &ToolError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// NewValidationError создает ошибку валидации
func NewValidationError(message string, details map[string]any) *ToolError {
	return &ToolError{
		Code:    string(gateway.CodeValidation),
		Message: message,
		Details: details,
	}
}

// FromError converts an operation error into a ToolError with the gateway
// code and, where one helps, a hint about how to fix the call.
func FromError(err error) *ToolError {
	if err == nil {
		return nil
	}

	var tErr *ToolError
	if errors.As(err, &tErr) {
		return tErr
	}

	out := &ToolError{
		Code:    string(gateway.CodeOf(err)),
		Message: err.Error(),
	}

	var (
		timingErr *timing.Error
		delayErr  *timing.DelayError
		cronErr   *cron.ExpressionError
	)
	switch {
	case errors.As(err, &cronErr):
		out.Suggestion = constants.MsgSuggestCronExamples
		out.Details = map[string]any{"fields": cronErr.Fields}
	case errors.As(err, &delayErr):
		out.Suggestion = constants.MsgSuggestDelay
		out.Details = map[string]any{"rule": string(delayErr.Rule)}
	case errors.As(err, &timingErr):
		out.Details = map[string]any{"kind": string(timingErr.Kind)}
		switch timingErr.Kind {
		case timing.KindInvalidTimezone, timing.KindMissingTimezone:
			out.Suggestion = constants.MsgSuggestTimezones
		case timing.KindConflictingParameters, timing.KindNoParameters:
			out.Suggestion = constants.MsgSuggestOneTimingMode
		}
	}

	return out
}
