package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
)

// Client talks to a room server's HTTP surface: the access gate check
// and the health endpoint. Used by the roomcheck probe.
type Client struct {
	baseURL string
	http    *fasthttp.Client

	defaultTimeout time.Duration
}

type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.defaultTimeout = d }
}

func WithMaxConnsPerHost(n int) Option {
	return func(c *Client) { c.http.MaxConnsPerHost = n }
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		http:           &fasthttp.Client{ReadTimeout: 10 * time.Second, WriteTimeout: 10 * time.Second, MaxConnsPerHost: 16},
		defaultTimeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type passwordCheckRequest struct {
	Password string `json:"password"`
}

type passwordCheckResponse struct {
	Valid bool `json:"valid"`
}

// CheckPassword submits the shared secret to the gate endpoint.
func (c *Client) CheckPassword(ctx context.Context, password string) (bool, error) {
	req := passwordCheckRequest{Password: password}
	var resp passwordCheckResponse
	if err := c.doJSON(ctx, fasthttp.MethodPost, "/api/password/check", req, &resp); err != nil {
		return false, err
	}
	return resp.Valid, nil
}

// Health probes the liveness endpoint.
func (c *Client) Health(ctx context.Context) error {
	return c.doJSON(ctx, fasthttp.MethodGet, "/healthz", nil, nil)
}

func (c *Client) doJSON(ctx context.Context, method, path string, in any, out any) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer func() {
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)
	}()

	req.Header.SetMethod(method)
	req.SetRequestURI(c.baseURL + path)
	req.Header.SetContentType("application/json")

	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		req.SetBody(payload)
	}

	if err := c.http.DoDeadline(req, resp, c.computeDeadline(ctx)); err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	status := resp.StatusCode()
	if status < 200 || status >= 300 {
		return fmt.Errorf("api error: status=%d body=%s", status, truncate(string(resp.Body()), 512))
	}
	if out != nil {
		if err := json.Unmarshal(resp.Body(), out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) computeDeadline(ctx context.Context) time.Time {
	clientDL := time.Now().Add(c.defaultTimeout)
	if dl, ok := ctx.Deadline(); ok && dl.Before(clientDL) {
		return dl
	}
	return clientDL
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
