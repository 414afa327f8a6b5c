// ABOUTME: Wires settings, credentials, providers and the availability gate into a Classifier
// ABOUTME: Adapts ai.Complete to the classifier's CompleteFunc with a per-attempt deadline

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/mauromedda/nova-router/internal/availability"
	"github.com/mauromedda/nova-router/internal/config"
	"github.com/mauromedda/nova-router/internal/intent"
	nrlog "github.com/mauromedda/nova-router/internal/log"
	"github.com/mauromedda/nova-router/pkg/ai"
	"github.com/mauromedda/nova-router/pkg/ai/provider/anthropic"
	"github.com/mauromedda/nova-router/pkg/ai/provider/openai"
)

const heuristicsOnly = "heuristics only"

// classifierOptions are per-invocation overrides from CLI flags.
type classifierOptions struct {
	noAI    bool
	model   string
	baseURL string
}

// buildClassifier assembles a Classifier from settings. The returned string
// describes the backend for status output. A missing API key is not an
// error: the classifier runs on heuristics alone.
func buildClassifier(s *config.Settings, co classifierOptions) (*intent.Classifier, string, error) {
	cfg := intent.ClassifierConfig{
		Temperature: s.AI.EffectiveTemperature(),
		MaxTokens:   s.AI.EffectiveMaxTokens(),
	}
	if co.noAI || !s.AI.IsEnabled() {
		return intent.NewClassifier(cfg), heuristicsOnly, nil
	}

	modelID := co.model
	if modelID == "" {
		modelID = s.Model
	}
	model, err := config.ResolveModel(modelID)
	if err != nil {
		return nil, "", err
	}
	config.ApplyModelOverrides(model, s)
	if co.baseURL != "" {
		model.BaseURL = co.baseURL
	}

	auth, err := config.LoadAuth()
	if err != nil {
		return nil, "", err
	}
	registerProvidersWithAuth(auth, s.AI, model.BaseURL != "")

	provider := ai.GetProvider(model.Api, model.BaseURL)
	if provider == nil {
		nrlog.Warn("no credentials for %s; classifying with heuristics only", model.Api)
		return intent.NewClassifier(cfg), heuristicsOnly + " (no credentials)", nil
	}

	key := fmt.Sprintf("%s/%s", model.Api, model.ID)
	cfg.Complete = completer(provider, model, s.AI.EffectiveTimeout())
	rate, burst := s.AI.EffectiveRate()
	cfg.Gate = availability.NewGate(availability.Config{
		Key:           key,
		Cooldown:      s.AI.EffectiveCooldown(),
		RatePerSecond: rate,
		Burst:         burst,
	})
	return intent.NewClassifier(cfg), key, nil
}

// registerProvidersWithAuth registers providers with auth keys from the store.
// A factory yields nil when its provider has no key, so a missing credential
// reads as "no provider". The OpenAI-compatible provider is still built for
// a custom endpoint, since local servers usually need no key.
func registerProvidersWithAuth(auth *config.AuthStore, a *config.AISettings, customEndpoint bool) {
	retries := a.EffectiveRetries()
	timeout := a.EffectiveTimeout()

	anthropicKey := auth.GetKey("anthropic")
	ai.RegisterProvider(ai.ApiAnthropic, func(baseURL string) ai.ApiProvider {
		if anthropicKey == "" {
			return nil
		}
		return anthropic.New(anthropicKey, baseURL, anthropic.WithRetries(retries), anthropic.WithTimeout(timeout))
	})

	// OpenAI-compatible: also check vllm and ollama keys
	openaiKey := auth.GetKey("openai")
	if openaiKey == "" {
		openaiKey = auth.GetKey("vllm")
	}
	if openaiKey == "" {
		openaiKey = auth.GetKey("ollama")
	}
	ai.RegisterProvider(ai.ApiOpenAI, func(baseURL string) ai.ApiProvider {
		if openaiKey == "" && !customEndpoint {
			return nil
		}
		return openai.New(openaiKey, baseURL, openai.WithRetries(retries), openai.WithTimeout(timeout))
	})
}

// completer adapts a provider to intent.CompleteFunc. Each call gets its own
// deadline so a slow provider cannot stall classification.
func completer(provider ai.ApiProvider, model *ai.Model, timeout time.Duration) intent.CompleteFunc {
	return func(ctx context.Context, systemPrompt, userPrompt string, opts intent.CompletionOptions) (string, error) {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		return ai.Complete(ctx, provider, model, systemPrompt, userPrompt, &ai.CompleteOptions{
			Temperature: opts.Temperature,
			MaxTokens:   opts.MaxTokens,
		})
	}
}
