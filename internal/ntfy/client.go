// Package ntfy sends push notifications through an ntfy server.
package ntfy

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
	// DefaultBaseURL is the public ntfy server.
	DefaultBaseURL = "https://ntfy.sh"
	// DefaultTimeout bounds every request.
	DefaultTimeout = 30 * time.Second

	backendName = "ntfy"
)

// ErrConnection marks failures to reach the server at all.
var ErrConnection = errors.New("ntfy connection failed")

// StatusError is a non-2xx answer from the server.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("NTFY API error: %d - %s", e.StatusCode, e.Body)
}

// Action is a notification action button.
type Action map[string]any

// Notification is the JSON publish payload.
type Notification struct {
	Topic    string   `json:"topic"`
	Message  string   `json:"message"`
	Title    string   `json:"title,omitempty"`
	Priority int      `json:"priority,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Markdown bool     `json:"markdown,omitempty"`
	Click    string   `json:"click,omitempty"`
	Icon     string   `json:"icon,omitempty"`
	Attach   string   `json:"attach,omitempty"`
	Filename string   `json:"filename,omitempty"`
	Actions  []Action `json:"actions,omitempty"`
}

// Response is what the server echoes back for a published message.
type Response struct {
	ID      string `json:"id"`
	Time    int64  `json:"time"`
	Expires int64  `json:"expires,omitempty"`
	Event   string `json:"event"`
	Topic   string `json:"topic"`
	Message string `json:"message"`
}

// Recorder receives one outcome per request.
type Recorder interface {
	ObserveBackend(backend, outcome string)
}

// Config holds connection settings. Token is optional.
type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// Client publishes notifications. It is safe for concurrent use.
type Client struct {
	http     *http.Client
	baseURL  string
	token    string
	logger   *logger.Logger
	recorder Recorder
}

// New creates a client. recorder may be nil.
func New(cfg Config, log *logger.Logger, recorder Recorder) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if log == nil {
		log = logger.Nop()
	}

	return &Client{
		http:     &http.Client{Timeout: cfg.Timeout},
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		token:    cfg.Token,
		logger:   log,
		recorder: recorder,
	}
}

// BaseURL returns the server root, e.g. https://ntfy.sh.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// TopicURL returns the address a scheduled message must be delivered to.
func (c *Client) TopicURL(topic string) string {
	return c.baseURL + "/" + topic
}

// Send publishes n immediately.
func (c *Client) Send(ctx context.Context, n Notification) (*Response, error) {
	payload, err := json.Marshal(n)
	if err != nil {
		return nil, errors.Wrap(err, "marshal notification")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/", bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "build ntfy request")
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.observe("connection_error")
		c.logger.ErrorCtx(ctx, "Failed to reach ntfy", err,
			logger.Field{Key: "topic", Value: n.Topic})
		return nil, errors.Mark(errors.Wrap(err, "Failed to connect to NTFY"), ErrConnection)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.observe("connection_error")
		return nil, errors.Mark(errors.Wrap(err, "read ntfy response"), ErrConnection)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.observe("api_error")
		c.logger.ErrorCtx(ctx, "ntfy returned error status", nil,
			logger.Field{Key: "status_code", Value: resp.StatusCode},
			logger.Field{Key: "response_body", Value: string(body)})
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	c.observe("ok")

	var out Response
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &out); err != nil {
			return nil, errors.Wrap(err, "decode ntfy response")
		}
	}

	c.logger.DebugCtx(ctx, "Notification published",
		logger.Field{Key: "topic", Value: n.Topic},
		logger.Field{Key: "id", Value: out.ID})

	return &out, nil
}

func (c *Client) observe(outcome string) {
	if c.recorder != nil {
		c.recorder.ObserveBackend(backendName, outcome)
	}
}
