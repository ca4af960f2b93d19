// Package apiclient provides the HTTP client used to talk to the upstream
// catalog service. Every call is bounded by a wall-clock timeout and never retried.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"storefront_gateway/platform/apperr"
	"storefront_gateway/platform/logger"
)

const (
	// DefaultTimeout bounds a call when Config.Timeout is zero.
	DefaultTimeout = 10 * time.Second

	maxResponseBytes = 10 << 20
	maxErrorBodySize = 512
)

// Config holds client settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// Headers are sent with every request unless a call overrides them.
	Headers map[string]string
	// HTTPClient is optional; tests inject one bound to httptest servers.
	HTTPClient *http.Client
}

// Client issues JSON requests against a single base URL.
type Client struct {
	baseURL    string
	timeout    time.Duration
	headers    http.Header
	httpClient *http.Client
	log        *logger.Logger
}

// Request describes a single call.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Headers map[string]string
	Body    interface{}
}

// New creates a new upstream client.
func New(cfg Config, log *logger.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	headers := http.Header{}
	headers.Set("Accept", "application/json")
	for key, value := range cfg.Headers {
		headers.Set(key, value)
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		timeout:    timeout,
		headers:    headers,
		httpClient: httpClient,
		log:        log,
	}
}

// Timeout returns the per-call time budget.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// CloseIdleConnections releases pooled connections.
func (c *Client) CloseIdleConnections() {
	c.httpClient.CloseIdleConnections()
}

// Ping reports whether the upstream service answers at all. Any HTTP
// status counts as reachable; only timeouts and network failures are errors.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.Do(ctx, Request{Method: http.MethodHead, Path: "/"})
	if err == nil || apperr.Is(err, apperr.KindUpstream) {
		return nil
	}
	return err
}

// GetJSON issues a GET and returns the raw response body.
func (c *Client) GetJSON(ctx context.Context, path string) ([]byte, error) {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path})
}

// PostJSON encodes body as JSON, posts it and returns the raw response body.
func (c *Client) PostJSON(ctx context.Context, path string, body interface{}) ([]byte, error) {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body})
}

// Do issues one HTTP call. Errors are *apperr.Error values whose Err is a
// *TimeoutError, *StatusError or *RequestError.
func (c *Client) Do(ctx context.Context, r Request) ([]byte, error) {
	method := r.Method
	if method == "" {
		method = http.MethodGet
	}
	reqURL := c.buildURL(r.Path, r.Query)

	var body io.Reader
	if r.Body != nil {
		encoded, err := json.Marshal(r.Body)
		if err != nil {
			return nil, apperr.Wrap(apperr.KindInternal, "encode request body", err)
		}
		body = bytes.NewReader(encoded)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, method, reqURL, body)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "create request", err)
	}
	c.applyHeaders(req, r)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.failure(ctx, callCtx, method, reqURL, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, c.failure(ctx, callCtx, method, reqURL, err)
	}

	c.logger(ctx).UpstreamRequest(method, reqURL, resp.StatusCode, float64(time.Since(start).Milliseconds()))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &StatusError{
			Method:     method,
			URL:        reqURL,
			StatusCode: resp.StatusCode,
			Body:       truncate(string(payload), maxErrorBodySize),
		}
		c.logger(ctx).UpstreamError(method, reqURL, statusErr)
		return nil, apperr.Wrap(apperr.KindUpstream, statusErr.Error(), statusErr).
			WithDetails(map[string]int{"status": resp.StatusCode})
	}

	return payload, nil
}

func (c *Client) failure(parent, callCtx context.Context, method, reqURL string, err error) error {
	// callCtx inherits the parent's deadline, so either expiry lands here.
	if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
		timeoutErr := &TimeoutError{Method: method, URL: reqURL, Timeout: c.timeout}
		c.logger(parent).UpstreamError(method, reqURL, timeoutErr)
		return apperr.Wrap(apperr.KindTimeout, timeoutErr.Error(), timeoutErr)
	}

	requestErr := &RequestError{Method: method, URL: reqURL, Err: err}
	c.logger(parent).UpstreamError(method, reqURL, requestErr)
	return apperr.Wrap(apperr.KindUnavailable, requestErr.Error(), requestErr)
}

func (c *Client) applyHeaders(req *http.Request, r Request) {
	for key, values := range c.headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	if r.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range r.Headers {
		req.Header.Set(key, value)
	}
	if requestID, ok := req.Context().Value(logger.RequestIDKey).(string); ok && requestID != "" && req.Header.Get("X-Request-ID") == "" {
		req.Header.Set("X-Request-ID", requestID)
	}
}

func (c *Client) buildURL(path string, query url.Values) string {
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL = fmt.Sprintf("%s?%s", reqURL, query.Encode())
	}
	return reqURL
}

func (c *Client) logger(ctx context.Context) *logger.Logger {
	if c.log == nil {
		return logger.Nop()
	}
	return c.log.WithContext(ctx)
}

func truncate(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	return s[:max]
}
