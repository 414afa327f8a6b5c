// ABOUTME: Retrying http.RoundTripper for SDK clients that build their own requests
// ABOUTME: Shares the retry policy and backoff of Client.Do

package httputil

import (
	"io"
	"net/http"
)

// retryTransport retries 429/5xx responses for requests whose body can be
// replayed through GetBody.
type retryTransport struct {
	next    http.RoundTripper
	retries int
}

// StandardClient returns an *http.Client that shares this client's transport
// and timeout and applies the same retry policy.
func (c *Client) StandardClient() *http.Client {
	return &http.Client{
		Timeout:   c.httpClient.Timeout,
		Transport: &retryTransport{next: c.httpClient.Transport, retries: c.retries},
	}
}

func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		r := req
		if attempt > 0 && hasBody(req) {
			body, err := req.GetBody()
			if err != nil {
				return nil, err
			}
			r = req.Clone(req.Context())
			r.Body = body
		}

		resp, err := t.next.RoundTrip(r)
		if err != nil || !isRetryable(resp.StatusCode) || attempt >= t.retries || !replayable(req) {
			return resp, err
		}

		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		if err := sleepWithContext(req.Context(), backoff(attempt)); err != nil {
			return nil, err
		}
	}
}

func hasBody(req *http.Request) bool {
	return req.Body != nil && req.Body != http.NoBody
}

func replayable(req *http.Request) bool {
	return !hasBody(req) || req.GetBody != nil
}
