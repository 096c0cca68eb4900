// Package gateway implements the notification operations exposed to agents.
// It validates input, resolves timing and drives the scheduler and
// notification backends.
package gateway

import (
	"context"
	"strings"
	"time"

	"github.com/aatumaykin/cronty/internal/logger"
	"github.com/aatumaykin/cronty/internal/ntfy"
	"github.com/aatumaykin/cronty/internal/qstash"
	"github.com/aatumaykin/cronty/internal/schedules"
	"github.com/aatumaykin/cronty/internal/timing"
	"github.com/aatumaykin/cronty/internal/validation"
)

// Scheduler is the delayed-delivery and cron backend.
type Scheduler interface {
	PublishAt(ctx context.Context, destination, body string, notBefore time.Time) (string, error)
	PublishDelayed(ctx context.Context, destination, body, delay string) (string, error)
	CreateSchedule(ctx context.Context, req qstash.CreateScheduleRequest) (string, error)
	ListSchedules(ctx context.Context) ([]schedules.Record, error)
	GetSchedule(ctx context.Context, id string) (schedules.Record, error)
	PauseSchedule(ctx context.Context, id string) error
	ResumeSchedule(ctx context.Context, id string) error
	DeleteSchedule(ctx context.Context, id string) error
}

// Notifier delivers a push notification immediately.
type Notifier interface {
	Send(ctx context.Context, n ntfy.Notification) (*ntfy.Response, error)
}

// Config is everything the service needs from configuration.
type Config struct {
	// NotificationURL is the ntfy server root scheduled messages are sent to.
	NotificationURL string
	// DefaultTopic is used when a request names no topic.
	DefaultTopic string
	// MissingSettings lists required settings that are unset; health
	// reports them.
	MissingSettings []string
}

// Service runs the operations. It holds no mutable state.
type Service struct {
	cfg       Config
	scheduler Scheduler
	notifier  Notifier
	resolver  *timing.Resolver
	mapper    *schedules.Mapper
	now       func() time.Time
	logger    *logger.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New creates a service.
func New(cfg Config, scheduler Scheduler, notifier Notifier, log *logger.Logger, opts ...Option) *Service {
	if cfg.NotificationURL == "" {
		cfg.NotificationURL = ntfy.DefaultBaseURL
	}
	cfg.NotificationURL = strings.TrimRight(cfg.NotificationURL, "/")
	if log == nil {
		log = logger.Nop()
	}

	s := &Service{
		cfg:       cfg,
		scheduler: scheduler,
		notifier:  notifier,
		now:       time.Now,
		logger:    log,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.resolver = timing.NewResolver(s.now)
	s.mapper = schedules.NewMapper(cfg.NotificationURL)
	return s
}

// topic applies the default topic and validates the result.
func (s *Service) topic(requested string) (string, error) {
	topic := strings.TrimSpace(requested)
	if topic == "" {
		topic = s.cfg.DefaultTopic
	}
	if topic == "" {
		return "", &Error{
			Code:    CodeValidation,
			Message: "notification_topic is required (no default topic is configured)",
		}
	}
	if err := validation.Topic(topic); err != nil {
		return "", invalid(err)
	}
	return topic, nil
}

func (s *Service) destination(topic string) string {
	return s.cfg.NotificationURL + "/" + topic
}
