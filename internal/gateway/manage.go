package gateway

import (
	"context"
	"fmt"
	"strings"

	"github.com/aatumaykin/cronty/internal/logger"
	"github.com/aatumaykin/cronty/internal/qstash"
	"github.com/aatumaykin/cronty/internal/schedules"
	"github.com/aatumaykin/cronty/internal/validation"
)

// ListResult holds the notification schedules in backend order.
type ListResult struct {
	Success   bool                 `json:"success"`
	Schedules []schedules.Schedule `json:"schedules"`
	Count     int                  `json:"count"`
}

// List returns the cron schedules that deliver to the notification server,
// optionally only those for topic.
func (s *Service) List(ctx context.Context, topic string) (*ListResult, error) {
	topic = strings.TrimSpace(topic)
	if topic != "" {
		if err := validation.Topic(topic); err != nil {
			return nil, invalid(err)
		}
	}

	records, err := s.scheduler.ListSchedules(ctx)
	if err != nil {
		s.logger.ErrorCtx(ctx, "Failed to list schedules", err)
		return nil, backendFailure("list schedules", err)
	}

	mapped := s.mapper.Map(records, topic)
	s.logger.DebugCtx(ctx, "Schedules listed",
		logger.Field{Key: "backend_total", Value: len(records)},
		logger.Field{Key: "returned", Value: len(mapped)})

	return &ListResult{Success: true, Schedules: mapped, Count: len(mapped)}, nil
}

// MutationResult reports a pause, resume or delete. A missing schedule or a
// backend failure is a result with Success false, not an error.
type MutationResult struct {
	Success      bool   `json:"success"`
	ScheduleID   string `json:"schedule_id"`
	Paused       *bool  `json:"paused,omitempty"`
	Confirmation string `json:"confirmation,omitempty"`
	Error        string `json:"error,omitempty"`
	// Code is the failure classification; empty on success.
	Code Code `json:"-"`
}

type mutation struct {
	verb     string
	past     string
	notFound string
	// paused is the state after the mutation; nil for delete.
	paused *bool
	apply  func(ctx context.Context, id string) error
}

func boolPtr(b bool) *bool { return &b }

// Pause stops a schedule from firing. Pausing a paused schedule succeeds
// without touching the backend.
func (s *Service) Pause(ctx context.Context, id string) (*MutationResult, error) {
	return s.mutate(ctx, id, mutation{
		verb:     "pause",
		past:     "paused",
		notFound: "It may have been deleted or the ID is incorrect.",
		paused:   boolPtr(true),
		apply:    s.scheduler.PauseSchedule,
	})
}

// Resume reactivates a schedule. Resuming an active schedule is a no-op.
func (s *Service) Resume(ctx context.Context, id string) (*MutationResult, error) {
	return s.mutate(ctx, id, mutation{
		verb:     "resume",
		past:     "resumed",
		notFound: "It may have been deleted or the ID is incorrect.",
		paused:   boolPtr(false),
		apply:    s.scheduler.ResumeSchedule,
	})
}

// Delete removes a schedule permanently.
func (s *Service) Delete(ctx context.Context, id string) (*MutationResult, error) {
	return s.mutate(ctx, id, mutation{
		verb:     "delete",
		past:     "deleted",
		notFound: "It may have already been deleted or the ID is incorrect.",
		apply:    s.scheduler.DeleteSchedule,
	})
}

// mutate reads the schedule first so a missing id is reported the same way
// whether the read or the mutation discovers it.
func (s *Service) mutate(ctx context.Context, id string, m mutation) (*MutationResult, error) {
	id = strings.TrimSpace(id)
	if err := validation.ScheduleID(id); err != nil {
		return nil, invalid(err)
	}

	record, err := s.scheduler.GetSchedule(ctx, id)
	if err != nil {
		return s.mutationFailure(ctx, id, m, err), nil
	}

	if m.paused != nil && record.Paused == *m.paused {
		s.logger.DebugCtx(ctx, "Schedule already in requested state",
			logger.Field{Key: "schedule_id", Value: id},
			logger.Field{Key: "paused", Value: record.Paused})
	} else if err := m.apply(ctx, id); err != nil {
		return s.mutationFailure(ctx, id, m, err), nil
	}

	s.logger.InfoCtx(ctx, "Schedule "+m.past, logger.Field{Key: "schedule_id", Value: id})

	return &MutationResult{
		Success:      true,
		ScheduleID:   id,
		Paused:       m.paused,
		Confirmation: fmt.Sprintf("Schedule %s %s successfully", id, m.past),
	}, nil
}

func (s *Service) mutationFailure(ctx context.Context, id string, m mutation, err error) *MutationResult {
	code := CodeOf(err)
	if code == CodeValidation {
		code = CodeAPIError
	}

	result := &MutationResult{ScheduleID: id, Code: code}
	if code == CodeNotFound {
		result.Error = fmt.Sprintf("Schedule not found: %s. %s", id, m.notFound)
		s.logger.InfoCtx(ctx, "Schedule not found", logger.Field{Key: "schedule_id", Value: id})
		return result
	}

	result.Error = fmt.Sprintf("Failed to %s schedule: %s", m.verb, qstash.MessageOf(err))
	s.logger.ErrorCtx(ctx, "Failed to "+m.verb+" schedule", err, logger.Field{Key: "schedule_id", Value: id})
	return result
}
