// ABOUTME: Tests for model resolution: built-in, custom providers, suggestions
// ABOUTME: Covers ResolveModel with provider-prefixed IDs and default fallback

package config

import (
	"errors"
	"strings"
	"testing"

	"github.com/mauromedda/nova-router/pkg/ai"
)

func TestResolveModel_Default(t *testing.T) {
	t.Parallel()

	m, err := ResolveModel("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.ID != ai.DefaultModel.ID {
		t.Errorf("expected default model %q, got %q", ai.DefaultModel.ID, m.ID)
	}
}

func TestResolveModel_Builtin(t *testing.T) {
	t.Parallel()

	m, err := ResolveModel("gpt-4o-mini")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Api != ai.ApiOpenAI {
		t.Errorf("Api = %q, want %q", m.Api, ai.ApiOpenAI)
	}
}

func TestResolveModel_Custom(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id      string
		wantID  string
		wantApi ai.Api
	}{
		{"ollama:llama3", "llama3", ai.ApiOpenAI},
		{"vllm:Qwen/Qwen3-Coder-Next-FP8", "Qwen/Qwen3-Coder-Next-FP8", ai.ApiOpenAI},
		{"Anthropic:claude-opus-4-1", "claude-opus-4-1", ai.ApiAnthropic},
		{"openai:gpt-4.1-nano", "gpt-4.1-nano", ai.ApiOpenAI},
		{"ollama:qwen3:8b", "qwen3:8b", ai.ApiOpenAI},
	}
	for _, tt := range tests {
		m, err := ResolveModel(tt.id)
		if err != nil {
			t.Errorf("ResolveModel(%q): unexpected error: %v", tt.id, err)
			continue
		}
		if m.ID != tt.wantID || m.Api != tt.wantApi {
			t.Errorf("ResolveModel(%q) = %s/%s; want %s/%s", tt.id, m.Api, m.ID, tt.wantApi, tt.wantID)
		}
		if m.MaxOutputTokens <= 0 {
			t.Errorf("ResolveModel(%q) has no output cap", tt.id)
		}
	}
}

func TestResolveModel_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id       string
		wantHint string
	}{
		{"antropic:claude", `did you mean "anthropic"`},
		{"olama:llama3", `did you mean "ollama"`},
		{"foobar:some-model", ""},
		{"ollama:", ""},
		{"gpt4o", `did you mean "gpt-4o`},
		{"nonexistent-model-xyz", ""},
	}
	for _, tt := range tests {
		_, err := ResolveModel(tt.id)
		if !errors.Is(err, ErrUnknownModel) {
			t.Errorf("ResolveModel(%q): err = %v; want ErrUnknownModel", tt.id, err)
			continue
		}
		hasHint := strings.Contains(err.Error(), "did you mean")
		if tt.wantHint == "" && hasHint {
			t.Errorf("ResolveModel(%q): unexpected suggestion in %q", tt.id, err)
		}
		if tt.wantHint != "" && !strings.Contains(err.Error(), tt.wantHint) {
			t.Errorf("ResolveModel(%q): error %q missing %q", tt.id, err, tt.wantHint)
		}
	}
}

func TestSuggest(t *testing.T) {
	t.Parallel()

	candidates := KnownProviders()
	tests := []struct {
		in   string
		want string
	}{
		{"opnai", "openai"},
		{"ollama3", "ollama"},
		{"vlm", "vllm"},
		{"zzz", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Suggest(tt.in, candidates); got != tt.want {
			t.Errorf("Suggest(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestApplyModelOverrides(t *testing.T) {
	t.Parallel()

	m := &ai.Model{ID: "llama3"}
	ApplyModelOverrides(m, &Settings{BaseURL: "http://localhost:11434"})
	if m.BaseURL != "http://localhost:11434" {
		t.Errorf("BaseURL = %q, want override", m.BaseURL)
	}

	ApplyModelOverrides(m, &Settings{})
	if m.BaseURL != "http://localhost:11434" {
		t.Error("empty settings should leave BaseURL untouched")
	}
	ApplyModelOverrides(m, nil)
	ApplyModelOverrides(nil, &Settings{})
}
