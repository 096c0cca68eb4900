package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/aatumaykin/cronty/internal/logger"
	"github.com/aatumaykin/cronty/internal/ntfy"
	"github.com/aatumaykin/cronty/internal/validation"
)

// SendRequest is an immediate push notification.
type SendRequest struct {
	Message  string
	Topic    string
	Title    string
	Priority *int // nil leaves the server default
	Tags     []string
	Markdown bool
	Click    string
	Icon     string
	Attach   string
	Filename string
	Actions  []map[string]any
}

// SendResult confirms delivery to the notification server.
type SendResult struct {
	Success      bool   `json:"success"`
	ID           string `json:"id"`
	Topic        string `json:"topic"`
	Time         string `json:"time,omitempty"`
	Confirmation string `json:"confirmation"`
}

// SendNow publishes a notification immediately.
func (s *Service) SendNow(ctx context.Context, req SendRequest) (*SendResult, error) {
	msg, err := validation.Message(req.Message)
	if err != nil {
		return nil, invalid(err)
	}
	topic, err := s.topic(req.Topic)
	if err != nil {
		return nil, err
	}
	if req.Priority != nil {
		if err := validation.Priority(*req.Priority); err != nil {
			return nil, invalid(err)
		}
	}
	if err := validation.Actions(len(req.Actions)); err != nil {
		return nil, invalid(err)
	}

	n := ntfy.Notification{
		Topic:    topic,
		Message:  msg,
		Title:    req.Title,
		Tags:     req.Tags,
		Markdown: req.Markdown,
		Click:    req.Click,
		Icon:     req.Icon,
		Attach:   req.Attach,
		Filename: req.Filename,
	}
	if req.Priority != nil {
		n.Priority = *req.Priority
	}
	for _, a := range req.Actions {
		n.Actions = append(n.Actions, ntfy.Action(a))
	}

	resp, err := s.notifier.Send(ctx, n)
	if err != nil {
		s.logger.ErrorCtx(ctx, "Push notification failed", err, logger.Field{Key: "topic", Value: topic})
		return nil, notifyFailure(err)
	}

	result := &SendResult{
		Success:      true,
		ID:           resp.ID,
		Topic:        topic,
		Confirmation: "Push notification sent successfully",
	}
	if resp.Time > 0 {
		result.Time = time.Unix(resp.Time, 0).UTC().Format(time.RFC3339)
	}

	s.logger.InfoCtx(ctx, "Push notification sent",
		logger.Field{Key: "topic", Value: topic},
		logger.Field{Key: "id", Value: resp.ID})

	return result, nil
}

func notifyFailure(err error) *Error {
	if errors.Is(err, ntfy.ErrConnection) {
		return &Error{Code: CodeConnection, Message: err.Error(), Err: err}
	}

	var statusErr *ntfy.StatusError
	if errors.As(err, &statusErr) {
		return &Error{Code: CodeAPIError, Message: statusErr.Error(), Err: err}
	}

	return &Error{Code: CodeAPIError, Message: fmt.Sprintf("NTFY request failed: %v", err), Err: err}
}
