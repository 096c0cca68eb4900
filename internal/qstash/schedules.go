package qstash

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/aatumaykin/cronty/internal/schedules"
)

// CreateScheduleRequest describes a new cron schedule.
type CreateScheduleRequest struct {
	Destination string
	// Cron is the combined "CRON_TZ=<zone> <expr>" string.
	Cron  string
	Body  string
	Label string
}

// scheduleJSON is the wire form of a schedule. Times are epoch milliseconds.
type scheduleJSON struct {
	ScheduleID       string `json:"scheduleId"`
	Cron             string `json:"cron"`
	Destination      string `json:"destination"`
	Body             string `json:"body,omitempty"`
	Label            string `json:"label,omitempty"`
	IsPaused         bool   `json:"isPaused"`
	CreatedAt        int64  `json:"createdAt,omitempty"`
	NextScheduleTime int64  `json:"nextScheduleTime,omitempty"`
	LastScheduleTime int64  `json:"lastScheduleTime,omitempty"`
}

func (s scheduleJSON) record() schedules.Record {
	return schedules.Record{
		ScheduleID:       s.ScheduleID,
		Cron:             s.Cron,
		Destination:      s.Destination,
		Body:             optionalString(s.Body),
		Label:            optionalString(s.Label),
		Paused:           s.IsPaused,
		NextScheduleTime: optionalMillis(s.NextScheduleTime),
		LastScheduleTime: optionalMillis(s.LastScheduleTime),
	}
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// optionalMillis treats zero as "no occurrence yet".
func optionalMillis(ms int64) *time.Time {
	if ms == 0 {
		return nil
	}
	t := time.UnixMilli(ms).UTC()
	return &t
}

type createScheduleResponse struct {
	ScheduleID string `json:"scheduleId"`
}

// CreateSchedule registers a cron schedule and returns its id.
func (c *Client) CreateSchedule(ctx context.Context, req CreateScheduleRequest) (string, error) {
	header := http.Header{}
	header.Set("Content-Type", "text/plain; charset=utf-8")
	header.Set("Upstash-Cron", req.Cron)
	if req.Label != "" {
		header.Set("Upstash-Label", req.Label)
	}

	var resp createScheduleResponse
	if err := c.do(ctx, opCreateSchedule, http.MethodPost, "/v2/schedules/"+req.Destination, []byte(req.Body), header, &resp); err != nil {
		return "", err
	}
	return resp.ScheduleID, nil
}

// ListSchedules returns every schedule of the account in backend order.
func (c *Client) ListSchedules(ctx context.Context) ([]schedules.Record, error) {
	var raw []scheduleJSON
	if err := c.do(ctx, opListSchedules, http.MethodGet, "/v2/schedules", nil, nil, &raw); err != nil {
		return nil, err
	}

	records := make([]schedules.Record, 0, len(raw))
	for _, s := range raw {
		records = append(records, s.record())
	}
	return records, nil
}

// GetSchedule fetches one schedule.
func (c *Client) GetSchedule(ctx context.Context, id string) (schedules.Record, error) {
	var raw scheduleJSON
	if err := c.do(ctx, opGetSchedule, http.MethodGet, schedulePath(id), nil, nil, &raw); err != nil {
		return schedules.Record{}, err
	}
	return raw.record(), nil
}

// PauseSchedule stops a schedule from firing.
func (c *Client) PauseSchedule(ctx context.Context, id string) error {
	return c.do(ctx, opPauseSchedule, http.MethodPatch, schedulePath(id)+"/pause", nil, nil, nil)
}

// ResumeSchedule reactivates a paused schedule.
func (c *Client) ResumeSchedule(ctx context.Context, id string) error {
	return c.do(ctx, opResumeSchedule, http.MethodPatch, schedulePath(id)+"/resume", nil, nil, nil)
}

// DeleteSchedule removes a schedule permanently.
func (c *Client) DeleteSchedule(ctx context.Context, id string) error {
	return c.do(ctx, opDeleteSchedule, http.MethodDelete, schedulePath(id), nil, nil, nil)
}

func schedulePath(id string) string {
	return "/v2/schedules/" + url.PathEscape(id)
}
