// ABOUTME: Tests for NormalizeBaseURL on hosts, pasted endpoints, and proxy paths
// ABOUTME: Ollama and vLLM URLs usually arrive with /v1 attached

package httputil

import "testing"

func TestNormalizeBaseURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bare host", "https://api.anthropic.com", "https://api.anthropic.com"},
		{"trailing slash", "http://localhost:11434/", "http://localhost:11434"},
		{"ollama /v1", "http://localhost:11434/v1", "http://localhost:11434"},
		{"vllm /v1/", "http://gpu-box:8000/v1/", "http://gpu-box:8000"},
		{"pasted messages endpoint", "https://api.anthropic.com/v1/messages", "https://api.anthropic.com"},
		{"pasted chat endpoint", "https://api.openai.com/v1/chat/completions/", "https://api.openai.com"},
		{"surrounding spaces", "  http://localhost:8080/v1 ", "http://localhost:8080"},
		{"proxy path kept", "https://gateway.internal/llm/v1", "https://gateway.internal/llm/v1"},
		{"empty", "", ""},
		{"blank", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := NormalizeBaseURL(tt.input); got != tt.want {
				t.Errorf("NormalizeBaseURL(%q) = %q; want %q", tt.input, got, tt.want)
			}
		})
	}
}
