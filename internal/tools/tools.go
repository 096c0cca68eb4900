package tools

import (
	"context"

	"github.com/aatumaykin/cronty/internal/gateway"
	"github.com/aatumaykin/cronty/internal/logger"
)

// Gateway is the set of operations the tools expose. *gateway.Service
// implements it.
type Gateway interface {
	SendNow(ctx context.Context, req gateway.SendRequest) (*gateway.SendResult, error)
	ScheduleOnce(ctx context.Context, req gateway.ScheduleOnceRequest) (*gateway.ScheduleOnceResult, error)
	ScheduleCron(ctx context.Context, req gateway.ScheduleCronRequest) (*gateway.ScheduleCronResult, error)
	List(ctx context.Context, topic string) (*gateway.ListResult, error)
	Pause(ctx context.Context, id string) (*gateway.MutationResult, error)
	Resume(ctx context.Context, id string) (*gateway.MutationResult, error)
	Delete(ctx context.Context, id string) (*gateway.MutationResult, error)
	CurrentTime() gateway.TimeResult
	Health() (*gateway.HealthResult, error)
}

// RegisterAll registers every cronty tool backed by gw.
func RegisterAll(r *Registry, gw Gateway, log *logger.Logger) error {
	if log == nil {
		log = logger.Nop()
	}

	for _, tool := range []Tool{
		NewSendPushNotificationTool(gw, log),
		NewScheduleNotificationTool(gw, log),
		NewScheduleCronNotificationTool(gw, log),
		NewListScheduledNotificationsTool(gw),
		NewPauseScheduleTool(gw),
		NewResumeScheduleTool(gw),
		NewDeleteScheduleTool(gw),
		NewGetCurrentTimeTool(gw),
		NewHealthTool(gw),
	} {
		if err := r.Register(tool); err != nil {
			return err
		}
	}
	return nil
}
