package gateway

import (
	"context"
	"strings"

	"github.com/aatumaykin/cronty/internal/cron"
	"github.com/aatumaykin/cronty/internal/logger"
	"github.com/aatumaykin/cronty/internal/qstash"
	"github.com/aatumaykin/cronty/internal/schedules"
	"github.com/aatumaykin/cronty/internal/timing"
	"github.com/aatumaykin/cronty/internal/validation"
)

// ScheduleOnceRequest is a one-off notification. Exactly one timing mode
// must be set: Datetime, Date/Time/Timezone, or Delay.
type ScheduleOnceRequest struct {
	Message  string
	Topic    string
	Datetime string
	Date     string
	Time     string
	Timezone string
	Delay    string
}

// ScheduleOnceResult carries either ScheduledTime or Delay.
type ScheduleOnceResult struct {
	Success       bool   `json:"success"`
	MessageID     string `json:"message_id"`
	ScheduledTime string `json:"scheduled_time,omitempty"`
	Delay         string `json:"delay,omitempty"`
	Confirmation  string `json:"confirmation"`
}

// ScheduleOnce enqueues a single delayed notification. Every input check
// runs before the scheduler is contacted.
func (s *Service) ScheduleOnce(ctx context.Context, req ScheduleOnceRequest) (*ScheduleOnceResult, error) {
	res, err := s.resolver.Resolve(timing.Input{
		Datetime: req.Datetime,
		Date:     req.Date,
		Time:     req.Time,
		Timezone: req.Timezone,
		Delay:    req.Delay,
	})
	if err != nil {
		return nil, invalid(err)
	}

	msg, err := validation.Message(req.Message)
	if err != nil {
		return nil, invalid(err)
	}
	topic, err := s.topic(req.Topic)
	if err != nil {
		return nil, err
	}

	dest := s.destination(topic)
	result := &ScheduleOnceResult{Success: true}

	if res.Mode == timing.ModeDelay {
		result.MessageID, err = s.scheduler.PublishDelayed(ctx, dest, msg, res.Delay)
		result.Delay = res.Delay
		result.Confirmation = "Notification scheduled with delay: " + res.Delay
	} else {
		result.MessageID, err = s.scheduler.PublishAt(ctx, dest, msg, res.NotBefore)
		result.ScheduledTime = res.Display
		result.Confirmation = "Notification scheduled for " + res.Display
	}
	if err != nil {
		s.logger.ErrorCtx(ctx, "Failed to schedule notification", err,
			logger.Field{Key: "topic", Value: topic},
			logger.Field{Key: "mode", Value: string(res.Mode)})
		return nil, backendFailure("schedule notification", err)
	}

	s.logger.InfoCtx(ctx, "Notification scheduled",
		logger.Field{Key: "topic", Value: topic},
		logger.Field{Key: "mode", Value: string(res.Mode)},
		logger.Field{Key: "message_id", Value: result.MessageID})

	return result, nil
}

// ScheduleCronRequest is a recurring notification.
type ScheduleCronRequest struct {
	Message  string
	Topic    string
	Cron     string
	Timezone string
	Label    string
}

// ScheduleCronResult echoes the combined cron string the backend stored.
type ScheduleCronResult struct {
	Success    bool   `json:"success"`
	ScheduleID string `json:"schedule_id"`
	Cron       string `json:"cron"`
	// NextFire is a local preview; omitted when it cannot be computed.
	NextFire     *string `json:"next_fire,omitempty"`
	Confirmation string  `json:"confirmation"`
}

// ScheduleCron creates a cron schedule on the scheduler backend.
func (s *Service) ScheduleCron(ctx context.Context, req ScheduleCronRequest) (*ScheduleCronResult, error) {
	expr := strings.TrimSpace(req.Cron)
	tz := strings.TrimSpace(req.Timezone)

	if err := cron.ValidateExpression(expr); err != nil {
		return nil, invalid(err)
	}
	if err := cron.ValidateTimezone(tz); err != nil {
		return nil, invalid(err)
	}
	label := strings.TrimSpace(req.Label)
	if label != "" {
		if err := validation.Label(label); err != nil {
			return nil, invalid(err)
		}
	}
	msg, err := validation.Message(req.Message)
	if err != nil {
		return nil, invalid(err)
	}
	topic, err := s.topic(req.Topic)
	if err != nil {
		return nil, err
	}

	combined, err := cron.Encode(tz, expr)
	if err != nil {
		return nil, invalid(err)
	}

	id, err := s.scheduler.CreateSchedule(ctx, qstash.CreateScheduleRequest{
		Destination: s.destination(topic),
		Cron:        combined,
		Body:        msg,
		Label:       label,
	})
	if err != nil {
		s.logger.ErrorCtx(ctx, "Failed to create cron schedule", err,
			logger.Field{Key: "topic", Value: topic},
			logger.Field{Key: "cron", Value: combined})
		return nil, backendFailure("create schedule", err)
	}

	result := &ScheduleCronResult{
		Success:      true,
		ScheduleID:   id,
		Cron:         combined,
		Confirmation: "Cron schedule created: " + combined,
	}
	if next, err := cron.NextFire(tz, expr, s.now()); err == nil {
		result.NextFire = schedules.FormatTimestamp(&next)
	} else {
		s.logger.DebugCtx(ctx, "No next-fire preview for cron expression",
			logger.Field{Key: "cron", Value: expr},
			logger.Field{Key: "reason", Value: err.Error()})
	}

	s.logger.InfoCtx(ctx, "Cron schedule created",
		logger.Field{Key: "schedule_id", Value: id},
		logger.Field{Key: "cron", Value: combined})

	return result, nil
}
