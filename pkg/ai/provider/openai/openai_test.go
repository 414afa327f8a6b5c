// ABOUTME: Tests for the OpenAI provider: request shape, first-choice extraction, and errors
// ABOUTME: Uses httptest.NewServer to mock the Chat Completions endpoint

package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/mauromedda/nova-router/pkg/ai"
)

func TestProviderApi(t *testing.T) {
	t.Parallel()
	p := New("key", "")
	if got := p.Api(); got != ai.ApiOpenAI {
		t.Errorf("Api() = %q, want %q", got, ai.ApiOpenAI)
	}
}

func TestNewNormalizesBaseURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"", "https://api.openai.com/v1"},
		{"http://localhost:11434", "http://localhost:11434/v1"},
		{"http://localhost:8000/v1/", "http://localhost:8000/v1"},
	}
	for _, tt := range tests {
		if got := New("k", tt.in).baseURL; got != tt.want {
			t.Errorf("New(%q).baseURL = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestProviderComplete(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("path = %q, want /v1/chat/completions", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("got Authorization %q, want %q", r.Header.Get("Authorization"), "Bearer test-key")
		}

		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decoding request body: %v", err)
		}
		if body["model"] != "gpt-4o-mini" {
			t.Errorf("got model %v, want gpt-4o-mini", body["model"])
		}
		if body["max_tokens"] != float64(10) {
			t.Errorf("got max_tokens %v, want 10", body["max_tokens"])
		}
		msgs, _ := body["messages"].([]any)
		if len(msgs) != 1 {
			t.Errorf("got %d messages, want 1 (no system message for empty prompt)", len(msgs))
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"model": "gpt-4o-mini-2024-07-18",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "CONTENT"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 30, "completion_tokens": 1, "total_tokens": 31}
		}`))
	}))
	t.Cleanup(srv.Close)

	provider := New("test-key", srv.URL)
	model := ai.ModelGPT4oMini
	resp, err := provider.Complete(context.Background(), &model, &ai.Request{
		Messages:    []ai.Message{{Role: ai.RoleUser, Text: "classify"}},
		MaxTokens:   10,
		Temperature: 0.1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "CONTENT" {
		t.Errorf("Text = %q, want CONTENT", resp.Text)
	}
	if resp.StopReason != ai.StopStop {
		t.Errorf("StopReason = %q, want %q", resp.StopReason, ai.StopStop)
	}
	if resp.Usage.InputTokens != 30 || resp.Usage.OutputTokens != 1 {
		t.Errorf("Usage = %+v, want 30/1", resp.Usage)
	}
	if resp.Model != "gpt-4o-mini-2024-07-18" {
		t.Errorf("Model = %q", resp.Model)
	}
}

func TestProviderCompleteNoChoices(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices": []}`))
	}))
	t.Cleanup(srv.Close)

	model := ai.ModelGPT4oMini
	_, err := New("k", srv.URL).Complete(context.Background(), &model, &ai.Request{})
	if err != ErrNoChoices {
		t.Errorf("err = %v, want ErrNoChoices", err)
	}
}

func TestProviderCompleteErrorResponse(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"message": "Incorrect API key provided", "type": "invalid_request_error", "code": "invalid_api_key"}}`))
	}))
	t.Cleanup(srv.Close)

	model := ai.ModelGPT4oMini
	_, err := New("bad", srv.URL).Complete(context.Background(), &model, &ai.Request{
		Messages: []ai.Message{{Role: ai.RoleUser, Text: "Hi"}},
	})
	if err == nil {
		t.Fatal("expected error for unauthorized response")
	}
	if !strings.Contains(err.Error(), "401") || !strings.Contains(err.Error(), "Incorrect API key") {
		t.Errorf("error %q should carry status and message", err)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("calls = %d, want 1 (401 is not retried)", got)
	}
}

func TestConvertFinishReason(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want ai.StopReason
	}{
		{"stop", ai.StopStop},
		{"", ai.StopStop},
		{"length", ai.StopMaxTokens},
		{"content_filter", ai.StopReason("content_filter")},
	}
	for _, tt := range tests {
		if got := convertFinishReason(goFinish(tt.in)); got != tt.want {
			t.Errorf("convertFinishReason(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
