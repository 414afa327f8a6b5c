// ABOUTME: Anthropic Messages API provider: one non-streaming POST per completion
// ABOUTME: Payloads are encoded and decoded with easyjson writers and lexers

package anthropic

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mailru/easyjson"

	"github.com/mauromedda/nova-router/pkg/ai"
	"github.com/mauromedda/nova-router/pkg/ai/internal/httputil"
)

const (
	defaultBaseURL   = "https://api.anthropic.com"
	anthropicVersion = "2023-06-01"
	messagesPath     = "/v1/messages"
)

// Option configures the provider's HTTP client.
type Option = httputil.Option

// WithRetries sets how many times a 429/5xx response is retried.
func WithRetries(n int) Option { return httputil.WithRetries(n) }

// WithTimeout sets the per-request HTTP timeout.
func WithTimeout(d time.Duration) Option { return httputil.WithTimeout(d) }

// Provider implements ai.ApiProvider for the Anthropic Messages API.
type Provider struct {
	client *httputil.Client
}

// New creates an Anthropic provider. If apiKey is empty, it reads ANTHROPIC_API_KEY.
func New(apiKey, baseURL string, opts ...Option) *Provider {
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = httputil.NormalizeBaseURL(baseURL)

	headers := map[string]string{
		"x-api-key":         apiKey,
		"anthropic-version": anthropicVersion,
	}

	return &Provider{client: httputil.NewClient(baseURL, headers, opts...)}
}

// Api returns the Anthropic API identifier.
func (p *Provider) Api() ai.Api {
	return ai.ApiAnthropic
}

// Complete posts req to /v1/messages and returns the concatenated text blocks.
func (p *Provider) Complete(ctx context.Context, model *ai.Model, req *ai.Request) (*ai.Response, error) {
	payload, err := easyjson.Marshal(newMessageRequest(model, req))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	data, err := p.client.PostJSON(ctx, messagesPath, payload)
	if err != nil {
		var statusErr *httputil.StatusError
		if errors.As(err, &statusErr) {
			return nil, apiError(statusErr)
		}
		return nil, err
	}

	var resp messageResponse
	if err := easyjson.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode anthropic response: %w", err)
	}
	return resp.toResponse(model), nil
}

// apiError turns a non-2xx response into a readable error, preferring the
// message from Anthropic's error envelope.
func apiError(statusErr *httputil.StatusError) error {
	var env errorEnvelope
	if easyjson.Unmarshal([]byte(statusErr.Body), &env) == nil && env.Message != "" {
		return fmt.Errorf("anthropic API error (status %d, %s): %s", statusErr.StatusCode, env.Type, env.Message)
	}
	return fmt.Errorf("anthropic API error: %w", statusErr)
}
