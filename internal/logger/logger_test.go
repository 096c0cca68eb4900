package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tmp := t.TempDir()

	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"json stdout", Config{Level: "debug", Format: "json", Output: "stdout"}, false},
		{"text stderr", Config{Level: "info", Format: "text", Output: "stderr"}, false},
		{"discard", Config{Level: "error", Format: "text", Output: "discard"}, false},
		{"file in new dir", Config{Level: "warn", Format: "json", Output: filepath.Join(tmp, "logs", "cronty.log")}, false},
		{"warning alias", Config{Level: "WARNING", Format: "JSON", Output: "stdout"}, false},
		{"invalid level", Config{Level: "verbose", Format: "json", Output: "stdout"}, true},
		{"invalid format", Config{Level: "debug", Format: "xml", Output: "stdout"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(tt.config)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, log)
		})
	}
}

func TestNew_FileOutputWritesRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cronty.log")
	log, err := New(Config{Level: "info", Format: "json", Output: path})
	require.NoError(t, err)

	log.Info("server started", Field{Key: "transport", Value: "http"})

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &rec))
	assert.Equal(t, "server started", rec["msg"])
	assert.Equal(t, "http", rec["transport"])
}

func newBufferLogger(buf *bytes.Buffer, level slog.Level) *Logger {
	return &Logger{slog: slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: level}))}
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		var rec map[string]any
		require.NoError(t, json.Unmarshal(line, &rec))
		out = append(out, rec)
	}
	return out
}

func TestLevelsAndFields(t *testing.T) {
	var buf bytes.Buffer
	log := newBufferLogger(&buf, slog.LevelInfo)
	ctx := context.Background()

	log.Debug("hidden")
	log.DebugCtx(ctx, "hidden too")
	log.InfoCtx(ctx, "tool call", Field{Key: "tool", Value: "list_scheduled_notifications"})
	log.WarnCtx(ctx, "slow backend")
	log.ErrorCtx(ctx, "backend failed", errors.New("boom"), Field{Key: "status_code", Value: 500})
	log.Error("no error value", nil)

	recs := decodeLines(t, &buf)
	require.Len(t, recs, 4)
	assert.Equal(t, "list_scheduled_notifications", recs[0]["tool"])
	assert.Equal(t, "WARN", recs[1]["level"])
	assert.Equal(t, "boom", recs[2]["error"])
	assert.EqualValues(t, 500, recs[2]["status_code"])
	assert.NotContains(t, recs[3], "error")
}

func TestWithAndNamed(t *testing.T) {
	var buf bytes.Buffer
	log := newBufferLogger(&buf, slog.LevelDebug).Named("qstash").With(Field{Key: "call_id", Value: "abc"})

	log.Info("request")

	recs := decodeLines(t, &buf)
	require.Len(t, recs, 1)
	assert.Equal(t, "qstash", recs[0]["component"])
	assert.Equal(t, "abc", recs[0]["call_id"])
}

func TestNop(t *testing.T) {
	log := Nop()
	assert.NotPanics(t, func() {
		log.Info("dropped")
		log.ErrorCtx(context.Background(), "dropped", errors.New("x"))
	})
	assert.NotNil(t, log.Slog())
}

func TestParseLevel(t *testing.T) {
	level, ok := ParseLevel("Debug")
	assert.True(t, ok)
	assert.Equal(t, slog.LevelDebug, level)

	_, ok = ParseLevel("")
	assert.False(t, ok)
}
