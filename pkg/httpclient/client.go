// Package httpclient wraps resty behind a small interface so fetchers can
// be exercised against httptest servers.
package httpclient

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
)

// Response exposes the pieces of an HTTP response the fetchers care about.
type Response interface {
	StatusCode() int
	Body() []byte
}

// Client issues outbound GET requests with per-request headers.
type Client interface {
	Get(ctx context.Context, url string, headers map[string]string) (Response, error)
}

type restyClient struct {
	client *resty.Client
}

// NewRestyClient returns a Client backed by resty with the given timeout.
func NewRestyClient(timeout time.Duration) Client {
	c := resty.New().SetTimeout(timeout)
	return &restyClient{client: c}
}

func (r *restyClient) Get(ctx context.Context, url string, headers map[string]string) (Response, error) {
	resp, err := r.client.R().
		SetContext(ctx).
		SetHeaders(headers).
		Get(url)
	if err != nil {
		return nil, err
	}
	return restyResponse{resp: resp}, nil
}

type restyResponse struct {
	resp *resty.Response
}

func (r restyResponse) StatusCode() int { return r.resp.StatusCode() }
func (r restyResponse) Body() []byte    { return r.resp.Body() }
