// ABOUTME: Conversion between ai.Request/ai.Response and the Messages API payloads
// ABOUTME: Text blocks are concatenated; other block types are ignored

package anthropic

import (
	"strings"

	"github.com/mauromedda/nova-router/pkg/ai"
)

// newMessageRequest builds the Messages API body for model and req.
func newMessageRequest(model *ai.Model, req *ai.Request) *messageRequest {
	out := &messageRequest{
		Model:       model.ID,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		System:      req.System,
		Messages:    make([]messageParam, 0, len(req.Messages)),
	}
	if out.MaxTokens <= 0 {
		out.MaxTokens = model.MaxOutputTokens
	}
	for _, m := range req.Messages {
		// The Messages API takes the system prompt as a top-level field.
		if m.Role == ai.RoleSystem {
			if out.System == "" {
				out.System = m.Text
			}
			continue
		}
		out.Messages = append(out.Messages, messageParam{Role: string(m.Role), Content: m.Text})
	}
	return out
}

// toResponse flattens the decoded payload into an ai.Response.
func (r *messageResponse) toResponse(model *ai.Model) *ai.Response {
	var sb strings.Builder
	for _, b := range r.Content {
		if b.Type == "text" {
			sb.WriteString(b.Text)
		}
	}

	resp := &ai.Response{
		Text:       sb.String(),
		StopReason: ai.StopReason(r.StopReason),
		Usage:      r.Usage,
		Model:      r.Model,
	}
	if resp.Model == "" {
		resp.Model = model.ID
	}
	return resp
}
