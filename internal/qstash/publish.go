package qstash

import (
	"context"
	"net/http"
	"strconv"
	"time"
)

type publishResponse struct {
	MessageID string `json:"messageId"`
}

// PublishAt enqueues body for delivery to destination no earlier than notBefore.
func (c *Client) PublishAt(ctx context.Context, destination, body string, notBefore time.Time) (string, error) {
	header := http.Header{}
	header.Set("Upstash-Not-Before", strconv.FormatInt(notBefore.Unix(), 10))
	return c.publish(ctx, destination, body, header)
}

// PublishDelayed enqueues body for delivery after delay, e.g. "1d10h30m".
// The delay string is passed to QStash verbatim.
func (c *Client) PublishDelayed(ctx context.Context, destination, body, delay string) (string, error) {
	header := http.Header{}
	header.Set("Upstash-Delay", delay)
	return c.publish(ctx, destination, body, header)
}

func (c *Client) publish(ctx context.Context, destination, body string, header http.Header) (string, error) {
	header.Set("Content-Type", "text/plain; charset=utf-8")

	var resp publishResponse
	if err := c.do(ctx, opPublish, http.MethodPost, "/v2/publish/"+destination, []byte(body), header, &resp); err != nil {
		return "", err
	}
	return resp.MessageID, nil
}
