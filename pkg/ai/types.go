// ABOUTME: Core completion types: Api, Model, Request, Response, Usage
// ABOUTME: Shared across providers; wire-format agnostic

package ai

// Role represents a message role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// StopReason indicates why the model stopped generating.
type StopReason string

const (
	StopEndTurn   StopReason = "end_turn"
	StopMaxTokens StopReason = "max_tokens"
	StopStop      StopReason = "stop"
)

// Api identifies an API provider.
type Api string

const (
	ApiAnthropic Api = "anthropic"
	ApiOpenAI    Api = "openai"
)

// Model defines a model's metadata.
type Model struct {
	ID              string `json:"id" yaml:"id"`
	Name            string `json:"name" yaml:"name"`
	Api             Api    `json:"api" yaml:"api"`
	MaxOutputTokens int    `json:"max_output_tokens" yaml:"max_output_tokens"`
	BaseURL         string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
}

// Message is one turn of a completion request.
type Message struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Request is a single non-streaming completion request.
type Request struct {
	System      string    `json:"system,omitempty"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature,omitempty"`
}

// Usage tracks token consumption.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// Response is the result of a completion request.
type Response struct {
	Text       string     `json:"text"`
	StopReason StopReason `json:"stop_reason"`
	Usage      Usage      `json:"usage"`
	Model      string     `json:"model"`
}

// CompleteOptions configures a Complete call.
type CompleteOptions struct {
	Temperature float64
	MaxTokens   int
}
