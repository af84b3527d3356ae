// internal/common/http/client.go
package http

import (
	"context"
	"net/http"
	"time"
)

// Client is a net/http client with a fixed overall timeout. It satisfies the
// Do-only client interface taken by the Telegram Bot API.
type Client struct {
	httpClient *http.Client
}

func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// NewLongPollClient sizes the timeout for a server that may hold a request
// for pollTimeout before answering.
func NewLongPollClient(pollTimeout time.Duration) *Client {
	return NewClient(pollTimeout + 10*time.Second)
}

func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.httpClient.Do(req)
}

func (c *Client) DoWithContext(ctx context.Context, req *http.Request) (*http.Response, error) {
	return c.httpClient.Do(req.WithContext(ctx))
}

func (c *Client) Timeout() time.Duration {
	return c.httpClient.Timeout
}
