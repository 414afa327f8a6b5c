// ABOUTME: Conversion between ai.Request/ai.Response and go-openai chat types
// ABOUTME: Maps finish reasons onto the shared StopReason values

package openai

import (
	goopenai "github.com/sashabaranov/go-openai"

	"github.com/mauromedda/nova-router/pkg/ai"
)

func buildChatRequest(model *ai.Model, req *ai.Request) goopenai.ChatCompletionRequest {
	msgs := make([]goopenai.ChatCompletionMessage, 0, len(req.Messages)+1)
	if req.System != "" {
		msgs = append(msgs, goopenai.ChatCompletionMessage{
			Role:    goopenai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	for _, m := range req.Messages {
		msgs = append(msgs, goopenai.ChatCompletionMessage{
			Role:    convertRole(m.Role),
			Content: m.Text,
		})
	}

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = model.MaxOutputTokens
	}

	return goopenai.ChatCompletionRequest{
		Model:       model.ID,
		Messages:    msgs,
		MaxTokens:   maxTokens,
		Temperature: float32(req.Temperature),
	}
}

func convertRole(r ai.Role) string {
	switch r {
	case ai.RoleSystem:
		return goopenai.ChatMessageRoleSystem
	case ai.RoleAssistant:
		return goopenai.ChatMessageRoleAssistant
	default:
		return goopenai.ChatMessageRoleUser
	}
}

func toResponse(model *ai.Model, resp goopenai.ChatCompletionResponse) *ai.Response {
	choice := resp.Choices[0]
	out := &ai.Response{
		Text:       choice.Message.Content,
		StopReason: convertFinishReason(choice.FinishReason),
		Usage: ai.Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
		},
		Model: resp.Model,
	}
	if out.Model == "" {
		out.Model = model.ID
	}
	return out
}

func convertFinishReason(r goopenai.FinishReason) ai.StopReason {
	switch r {
	case goopenai.FinishReasonLength:
		return ai.StopMaxTokens
	case goopenai.FinishReasonStop, "":
		return ai.StopStop
	default:
		return ai.StopReason(r)
	}
}
