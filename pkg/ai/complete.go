// ABOUTME: Complete helper: one system + user prompt in, plain text out
// ABOUTME: The provider-neutral "complete text" collaborator used by the classifier

package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoProvider is returned when no provider is available for a model.
	ErrNoProvider = errors.New("no provider registered")

	// ErrEmptyCompletion is returned when the provider produced no text.
	ErrEmptyCompletion = errors.New("empty completion")
)

// Complete sends systemPrompt and userPrompt to provider and returns the
// generated text. opts may be nil.
func Complete(ctx context.Context, provider ApiProvider, model *Model, systemPrompt, userPrompt string, opts *CompleteOptions) (string, error) {
	if model == nil {
		return "", errors.New("complete: nil model")
	}
	if provider == nil {
		return "", fmt.Errorf("%w for model %q", ErrNoProvider, model.ID)
	}

	req := &Request{
		System:   systemPrompt,
		Messages: []Message{{Role: RoleUser, Text: userPrompt}},
	}
	if opts != nil {
		req.Temperature = opts.Temperature
		req.MaxTokens = opts.MaxTokens
	}
	if req.MaxTokens == 0 || (model.MaxOutputTokens > 0 && req.MaxTokens > model.MaxOutputTokens) {
		req.MaxTokens = model.MaxOutputTokens
	}

	resp, err := provider.Complete(ctx, model, req)
	if err != nil {
		return "", fmt.Errorf("%s completion: %w", provider.Api(), err)
	}
	if strings.TrimSpace(resp.Text) == "" {
		return "", ErrEmptyCompletion
	}
	return resp.Text, nil
}
