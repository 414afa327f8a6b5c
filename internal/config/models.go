// ABOUTME: Model resolution: built-in IDs or provider:model custom models
// ABOUTME: Unknown names get a fuzzy "did you mean" suggestion

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/mauromedda/nova-router/pkg/ai"
)

// customMaxOutputTokens caps custom models; classification needs a handful.
const customMaxOutputTokens = 4096

// ErrUnknownModel is returned when a model ID cannot be resolved.
var ErrUnknownModel = errors.New("unknown model")

// providerApis maps provider prefixes to the wire API they speak.
var providerApis = map[string]ai.Api{
	"anthropic": ai.ApiAnthropic,
	"openai":    ai.ApiOpenAI,
	"ollama":    ai.ApiOpenAI,
	"vllm":      ai.ApiOpenAI,
}

// KnownProviders returns the accepted provider prefixes, sorted.
func KnownProviders() []string {
	return []string{"anthropic", "ollama", "openai", "vllm"}
}

// ResolveModel finds a model by ID. Checks built-in models first, then
// handles provider-prefixed custom models (e.g. "ollama:llama3").
// An empty id resolves to ai.DefaultModel.
func ResolveModel(id string) (*ai.Model, error) {
	if id == "" {
		m := ai.DefaultModel
		return &m, nil
	}

	if m := ai.FindModel(id); m != nil {
		return m, nil
	}

	if provider, modelID, ok := strings.Cut(id, ":"); ok {
		return customModel(provider, modelID)
	}

	ids := make([]string, 0, len(ai.BuiltinModels()))
	for _, m := range ai.BuiltinModels() {
		ids = append(ids, m.ID)
	}
	return nil, withSuggestion(fmt.Errorf("%w %q", ErrUnknownModel, id), id, ids)
}

func customModel(provider, modelID string) (*ai.Model, error) {
	name := strings.ToLower(provider)
	api, ok := providerApis[name]
	if !ok {
		return nil, withSuggestion(fmt.Errorf("%w: unknown provider %q", ErrUnknownModel, provider), name, KnownProviders())
	}
	if modelID == "" {
		return nil, fmt.Errorf("%w: empty model name for provider %q", ErrUnknownModel, provider)
	}

	return &ai.Model{
		ID:              modelID,
		Name:            name + ":" + modelID,
		Api:             api,
		MaxOutputTokens: customMaxOutputTokens,
	}, nil
}

// Suggest returns the closest candidate to input, or "" when nothing is close.
// Candidates containing input as a subsequence rank first; otherwise a
// candidate that is itself a subsequence of input is accepted.
func Suggest(input string, candidates []string) string {
	if input == "" {
		return ""
	}
	if matches := fuzzy.Find(input, candidates); len(matches) > 0 {
		return matches[0].Str
	}
	for _, c := range candidates {
		if len(fuzzy.Find(c, []string{input})) > 0 {
			return c
		}
	}
	return ""
}

func withSuggestion(err error, input string, candidates []string) error {
	if s := Suggest(input, candidates); s != "" {
		return fmt.Errorf("%w (did you mean %q?)", err, s)
	}
	return err
}

// ApplyModelOverrides copies settings-level overrides onto m.
func ApplyModelOverrides(m *ai.Model, s *Settings) {
	if m == nil || s == nil {
		return
	}
	if s.BaseURL != "" {
		m.BaseURL = s.BaseURL
	}
}
