// ABOUTME: Shared HTTP client with retry logic for provider completion requests
// ABOUTME: Exponential backoff on 429/5xx; respects HTTP_PROXY/HTTPS_PROXY

package httputil

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"math"
	"net"
	"net/http"
	"time"
)

const (
	defaultRetries = 3
	defaultTimeout = 60 * time.Second
	baseBackoffMs  = 500
	maxBackoffMs   = 10000

	// maxResponseBytes bounds how much of a response body PostJSON reads.
	maxResponseBytes = 4 << 20
)

// Client wraps an http.Client with retry logic and default headers.
type Client struct {
	httpClient *http.Client
	baseURL    string
	headers    map[string]string
	retries    int
}

// Option configures a Client.
type Option func(*Client)

// WithRetries sets how many times a 429/5xx response is retried.
// Zero means a single attempt.
func WithRetries(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.retries = n
		}
	}
}

// WithTimeout sets the overall per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// NewClient creates a new HTTP client with the given base URL and default headers.
// Proxy support comes from the stdlib's default transport (HTTP_PROXY, HTTPS_PROXY).
func NewClient(baseURL string, headers map[string]string, opts ...Option) *Client {
	if headers == nil {
		headers = make(map[string]string)
	}
	c := &Client{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   10 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
				TLSHandshakeTimeout:   10 * time.Second,
				ResponseHeaderTimeout: 30 * time.Second,
				MaxIdleConns:          20,
				IdleConnTimeout:       90 * time.Second,
			},
		},
		baseURL: baseURL,
		headers: headers,
		retries: defaultRetries,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the base URL configured on this client.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// HTTPClient exposes the underlying client so SDK-based providers share
// the same transport and timeouts.
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// StatusError is returned by PostJSON for non-2xx responses.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http status %d", e.StatusCode)
	}
	return fmt.Sprintf("http status %d: %s", e.StatusCode, e.Body)
}

// PostJSON posts payload as application/json to path and returns the
// response body. Non-2xx responses yield a *StatusError.
func (c *Client) PostJSON(ctx context.Context, path string, payload []byte) ([]byte, error) {
	resp, err := c.Do(ctx, http.MethodPost, path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(bytes.TrimSpace(data))}
	}
	return data, nil
}

// Do sends an HTTP request with retry on 429 and 5xx status codes.
// It returns the response from the last attempt, even if retries were exhausted.
// If body implements io.Seeker, it is rewound before each retry attempt.
func (c *Client) Do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	seeker, _ := body.(io.Seeker)

	for attempt := 0; ; attempt++ {
		if err := rewindBody(seeker, attempt); err != nil {
			return nil, fmt.Errorf("failed to rewind request body: %w", err)
		}

		req, err := c.buildRequest(ctx, method, path, body)
		if err != nil {
			return nil, err
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("http request failed: %w", err)
		}

		if !isRetryable(resp.StatusCode) || attempt >= c.retries {
			return resp, nil
		}

		// Close the body of the retryable response before retrying.
		resp.Body.Close()

		if err := sleepWithContext(ctx, backoff(attempt)); err != nil {
			return nil, fmt.Errorf("context cancelled during retry backoff: %w", err)
		}
	}
}

// buildRequest creates an http.Request with default headers applied.
func (c *Client) buildRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	url := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s %s: %w", method, path, err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

// rewindBody resets a seekable body to the beginning for retry attempts.
// It is a no-op on the first attempt (attempt == 0) or if seeker is nil.
func rewindBody(seeker io.Seeker, attempt int) error {
	if seeker == nil || attempt == 0 {
		return nil
	}
	_, err := seeker.Seek(0, io.SeekStart)
	return err
}

// isRetryable returns true for status codes that warrant a retry.
func isRetryable(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests || statusCode >= 500
}

// backoff returns the backoff duration for the given attempt using exponential backoff.
func backoff(attempt int) time.Duration {
	ms := float64(baseBackoffMs) * math.Pow(2, float64(attempt))
	if ms > maxBackoffMs {
		ms = maxBackoffMs
	}
	return time.Duration(ms) * time.Millisecond
}

// sleepWithContext waits for the given duration or until the context is cancelled.
func sleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
