package gateway

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	"github.com/aatumaykin/cronty/internal/logger"
	"github.com/aatumaykin/cronty/internal/ntfy"
	"github.com/aatumaykin/cronty/internal/qstash"
	"github.com/aatumaykin/cronty/internal/schedules"
)

// fakeScheduler records calls and serves schedules from memory.
type fakeScheduler struct {
	mu        sync.Mutex
	calls     []string
	records   map[string]schedules.Record
	listErr   error
	mutateErr error
	publishID string

	lastDest      string
	lastBody      string
	lastNotBefore time.Time
	lastDelay     string
	lastCreate    qstash.CreateScheduleRequest
}

func newFakeScheduler(records ...schedules.Record) *fakeScheduler {
	f := &fakeScheduler{records: make(map[string]schedules.Record), publishID: "msg_1"}
	for _, r := range records {
		f.records[r.ScheduleID] = r
	}
	return f
}

func (f *fakeScheduler) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeScheduler) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeScheduler) PublishAt(_ context.Context, destination, body string, notBefore time.Time) (string, error) {
	f.record("publish_at")
	f.lastDest, f.lastBody, f.lastNotBefore = destination, body, notBefore
	return f.publishID, nil
}

func (f *fakeScheduler) PublishDelayed(_ context.Context, destination, body, delay string) (string, error) {
	f.record("publish_delayed")
	f.lastDest, f.lastBody, f.lastDelay = destination, body, delay
	return f.publishID, nil
}

func (f *fakeScheduler) CreateSchedule(_ context.Context, req qstash.CreateScheduleRequest) (string, error) {
	f.record("create")
	f.lastCreate = req
	return "scd_new", nil
}

func (f *fakeScheduler) ListSchedules(context.Context) ([]schedules.Record, error) {
	f.record("list")
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]schedules.Record, 0, len(f.records))
	for _, r := range f.records {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeScheduler) GetSchedule(_ context.Context, id string) (schedules.Record, error) {
	f.record("get")
	r, ok := f.records[id]
	if !ok {
		return schedules.Record{}, &qstash.Error{Code: qstash.CodeNotFound, StatusCode: 404, Op: "get schedule", Message: "not found"}
	}
	return r, nil
}

func (f *fakeScheduler) PauseSchedule(_ context.Context, id string) error {
	f.record("pause")
	if f.mutateErr != nil {
		return f.mutateErr
	}
	r := f.records[id]
	r.Paused = true
	f.records[id] = r
	return nil
}

func (f *fakeScheduler) ResumeSchedule(_ context.Context, id string) error {
	f.record("resume")
	if f.mutateErr != nil {
		return f.mutateErr
	}
	r := f.records[id]
	r.Paused = false
	f.records[id] = r
	return nil
}

func (f *fakeScheduler) DeleteSchedule(_ context.Context, id string) error {
	f.record("delete")
	if f.mutateErr != nil {
		return f.mutateErr
	}
	delete(f.records, id)
	return nil
}

type fakeNotifier struct {
	sent []ntfy.Notification
	err  error
}

func (f *fakeNotifier) Send(_ context.Context, n ntfy.Notification) (*ntfy.Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sent = append(f.sent, n)
	return &ntfy.Response{ID: "ntfy_1", Time: 1769000000, Topic: n.Topic, Message: n.Message}, nil
}

func ntfyConnectionError() error {
	return errors.Mark(errors.Wrap(errors.New("dial tcp 127.0.0.1:1: connect: connection refused"),
		"Failed to connect to NTFY"), ntfy.ErrConnection)
}

var testNow = time.Date(2026, 1, 21, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, scheduler Scheduler, notifier Notifier) *Service {
	t.Helper()
	log, err := logger.New(logger.Config{Level: "error", Format: "text", Output: "stdout"})
	require.NoError(t, err)

	return New(Config{NotificationURL: "https://ntfy.sh", DefaultTopic: "default-topic"},
		scheduler, notifier, log, WithClock(func() time.Time { return testNow }))
}
