// Package qstash is a minimal client for the Upstash QStash REST API:
// delayed publishing and cron schedule management.
package qstash

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/aatumaykin/cronty/internal/logger"
)

const (
	// DefaultBaseURL is the public QStash endpoint.
	DefaultBaseURL = "https://qstash.upstash.io"
	// DefaultTimeout bounds every request.
	DefaultTimeout = 30 * time.Second

	backendName = "qstash"
)

// Recorder receives one outcome per backend request.
type Recorder interface {
	ObserveBackend(backend, outcome string)
}

// Config holds connection settings.
type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// Client talks to QStash. It is safe for concurrent use.
type Client struct {
	http     *http.Client
	baseURL  string
	token    string
	logger   *logger.Logger
	recorder Recorder
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithRecorder reports request outcomes to r.
func WithRecorder(r Recorder) Option {
	return func(c *Client) { c.recorder = r }
}

// New creates a client.
func New(cfg Config, log *logger.Logger, opts ...Option) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if log == nil {
		log = logger.Nop()
	}

	c := &Client{
		http:    &http.Client{Timeout: cfg.Timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		logger:  log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do executes one request and decodes a JSON response into out (if non-nil).
func (c *Client) do(ctx context.Context, op, method, path string, body []byte, header http.Header, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Wrapf(err, "qstash %s: build request", op)
	}
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		c.observe("connection_error")
		c.logger.ErrorCtx(ctx, "QStash request failed", err,
			logger.Field{Key: "op", Value: op})
		return connectionError(op, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.observe("connection_error")
		return connectionError(op, err)
	}

	c.logger.DebugCtx(ctx, "QStash response",
		logger.Field{Key: "op", Value: op},
		logger.Field{Key: "status_code", Value: resp.StatusCode})

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		qErr := statusError(op, resp.StatusCode, respBody)
		c.observe(string(qErr.Code))
		if qErr.Code != CodeNotFound {
			c.logger.ErrorCtx(ctx, "QStash returned error status", nil,
				logger.Field{Key: "op", Value: op},
				logger.Field{Key: "status_code", Value: resp.StatusCode},
				logger.Field{Key: "response_body", Value: string(respBody)})
		}
		return qErr
	}

	c.observe("ok")

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return &Error{
			Code:       CodeAPIError,
			StatusCode: resp.StatusCode,
			Op:         op,
			Message:    fmt.Sprintf("unexpected response body: %v", err),
			Err:        err,
		}
	}
	return nil
}

func (c *Client) observe(outcome string) {
	if c.recorder != nil {
		c.recorder.ObserveBackend(backendName, outcome)
	}
}

// apiMessage extracts {"error": "..."} from an error body, or returns the
// trimmed body.
func apiMessage(body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return strings.TrimSpace(string(body))
}
