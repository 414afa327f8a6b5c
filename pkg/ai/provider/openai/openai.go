// ABOUTME: OpenAI Chat Completions provider built on go-openai (also serves Ollama, vLLM)
// ABOUTME: One non-streaming completion per call; retries come from the shared transport

package openai

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/mauromedda/nova-router/pkg/ai"
	"github.com/mauromedda/nova-router/pkg/ai/internal/httputil"
)

const defaultBaseURL = "https://api.openai.com"

// ErrNoChoices is returned when the API answers without any choice.
var ErrNoChoices = errors.New("no choices in completion response")

// Option configures the provider's HTTP client.
type Option = httputil.Option

// WithRetries sets how many times a 429/5xx response is retried.
func WithRetries(n int) Option { return httputil.WithRetries(n) }

// WithTimeout sets the per-request HTTP timeout.
func WithTimeout(d time.Duration) Option { return httputil.WithTimeout(d) }

// Provider implements the OpenAI Chat Completions API.
type Provider struct {
	client  *goopenai.Client
	baseURL string
}

// New creates an OpenAI provider. If apiKey is empty, it reads OPENAI_API_KEY.
// baseURL may point at any OpenAI-compatible server, with or without a /v1 suffix.
func New(apiKey, baseURL string, opts ...Option) *Provider {
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	hc := httputil.NewClient(httputil.NormalizeBaseURL(baseURL), nil, opts...)

	cfg := goopenai.DefaultConfig(apiKey)
	cfg.BaseURL = hc.BaseURL() + "/v1"
	cfg.HTTPClient = hc.StandardClient()

	return &Provider{
		client:  goopenai.NewClientWithConfig(cfg),
		baseURL: cfg.BaseURL,
	}
}

// Api returns the provider identifier.
func (p *Provider) Api() ai.Api {
	return ai.ApiOpenAI
}

// Complete issues one chat completion and returns the first choice.
func (p *Provider) Complete(ctx context.Context, model *ai.Model, req *ai.Request) (*ai.Response, error) {
	resp, err := p.client.CreateChatCompletion(ctx, buildChatRequest(model, req))
	if err != nil {
		return nil, wrapError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, ErrNoChoices
	}
	return toResponse(model, resp), nil
}

// wrapError keeps the status code visible in the message for API errors.
func wrapError(err error) error {
	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("openai API error (status %d): %s: %w", apiErr.HTTPStatusCode, apiErr.Message, err)
	}
	var reqErr *goopenai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("openai request failed (status %d): %w", reqErr.HTTPStatusCode, err)
	}
	return fmt.Errorf("openai request failed: %w", err)
}
