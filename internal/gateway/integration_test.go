package gateway

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aatumaykin/cronty/internal/ntfy"
	"github.com/aatumaykin/cronty/internal/qstash"
	"github.com/aatumaykin/cronty/internal/qstash/qstashtest"
)

func newIntegrationService(t *testing.T) (*Service, *qstashtest.Server) {
	t.Helper()
	srv := qstashtest.NewServer()
	t.Cleanup(srv.Close)

	client := qstash.New(qstash.Config{BaseURL: srv.URL, Token: qstashtest.Token, Timeout: 5 * time.Second}, nil)
	svc := New(Config{NotificationURL: ntfy.DefaultBaseURL}, client, &fakeNotifier{}, nil,
		WithClock(func() time.Time { return testNow }))
	return svc, srv
}

func TestIntegration_CreateListPauseDelete(t *testing.T) {
	svc, srv := newIntegrationService(t)
	ctx := context.Background()

	// A schedule owned by something else must stay invisible.
	srv.AddSchedule(qstashtest.Schedule{Cron: "0 * * * *", Destination: "https://hooks.example.com/build"})

	created, err := svc.ScheduleCron(ctx, ScheduleCronRequest{
		Message:  "eval list test",
		Topic:    "cronty-eval-test",
		Cron:     "0 0 1 1 *",
		Timezone: "UTC",
		Label:    "eval-list-test",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ScheduleID)
	assert.Equal(t, "CRON_TZ=UTC 0 0 1 1 *", created.Cron)

	listed, err := svc.List(ctx, "cronty-eval-test")
	require.NoError(t, err)
	require.Equal(t, 1, listed.Count)

	got := listed.Schedules[0]
	assert.Equal(t, created.ScheduleID, got.ScheduleID)
	assert.Equal(t, "0 0 1 1 *", got.CronExpression)
	assert.Equal(t, "UTC", got.Timezone)
	assert.Equal(t, "cronty-eval-test", got.NotificationTopic)
	require.NotNil(t, got.Label)
	assert.Equal(t, "eval-list-test", *got.Label)
	require.NotNil(t, got.NotificationBody)
	assert.Equal(t, "eval list test", *got.NotificationBody)
	assert.False(t, got.Paused)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 1, all.Count)

	paused, err := svc.Pause(ctx, created.ScheduleID)
	require.NoError(t, err)
	require.True(t, paused.Success)

	listed, err = svc.List(ctx, "cronty-eval-test")
	require.NoError(t, err)
	assert.True(t, listed.Schedules[0].Paused)

	deleted, err := svc.Delete(ctx, created.ScheduleID)
	require.NoError(t, err)
	require.True(t, deleted.Success)

	listed, err = svc.List(ctx, "cronty-eval-test")
	require.NoError(t, err)
	assert.Equal(t, 0, listed.Count)

	again, err := svc.Delete(ctx, created.ScheduleID)
	require.NoError(t, err)
	assert.False(t, again.Success)
	assert.Equal(t, CodeNotFound, again.Code)
}

func TestIntegration_ConflictingTimingMakesNoBackendCalls(t *testing.T) {
	svc, srv := newIntegrationService(t)

	_, err := svc.ScheduleOnce(context.Background(), ScheduleOnceRequest{
		Message:  "m",
		Topic:    "cronty-eval-test",
		Datetime: "2026-01-22T09:00:00Z",
		Date:     "2026-01-22",
		Time:     "09:00",
		Timezone: "UTC",
	})
	requireCode(t, err, CodeValidation)
	assert.Contains(t, err.Error(), "Multiple scheduling modes")
	assert.Empty(t, srv.Requests())
}

func TestIntegration_ScheduleOnceReachesBackend(t *testing.T) {
	svc, srv := newIntegrationService(t)

	res, err := svc.ScheduleOnce(context.Background(), ScheduleOnceRequest{
		Message: "tea",
		Topic:   "cronty-eval-test",
		Delay:   "1d10h30m",
	})
	require.NoError(t, err)

	msgs := srv.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, res.MessageID, msgs[0].ID)
	assert.Equal(t, "https://ntfy.sh/cronty-eval-test", msgs[0].Destination)
	assert.Equal(t, "1d10h30m", msgs[0].Delay)
	assert.Equal(t, "tea", msgs[0].Body)
}

func TestIntegration_ListUnderBasePath(t *testing.T) {
	srv := qstashtest.NewServer()
	t.Cleanup(srv.Close)

	client := qstash.New(qstash.Config{BaseURL: srv.URL, Token: qstashtest.Token, Timeout: 5 * time.Second}, nil)
	svc := New(Config{NotificationURL: "https://push.example.org/ntfy/"}, client, &fakeNotifier{}, nil,
		WithClock(func() time.Time { return testNow }))
	ctx := context.Background()

	created, err := svc.ScheduleCron(ctx, ScheduleCronRequest{
		Message:  "nightly",
		Topic:    "alerts",
		Cron:     "0 2 * * *",
		Timezone: "UTC",
	})
	require.NoError(t, err)

	listed, err := svc.List(ctx, "alerts")
	require.NoError(t, err)
	require.Equal(t, 1, listed.Count)
	assert.Equal(t, created.ScheduleID, listed.Schedules[0].ScheduleID)
	assert.Equal(t, "alerts", listed.Schedules[0].NotificationTopic)
}
