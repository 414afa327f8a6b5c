// ABOUTME: Messages API request, response and error payloads with their JSON codecs
// ABOUTME: Codecs implement easyjson.Marshaler/Unmarshaler by hand on jwriter/jlexer; unknown fields are skipped

package anthropic

import (
	"github.com/mailru/easyjson/jlexer"
	"github.com/mailru/easyjson/jwriter"

	"github.com/mauromedda/nova-router/pkg/ai"
)

type messageParam struct {
	Role    string
	Content string
}

type messageRequest struct {
	Model       string
	MaxTokens   int
	Temperature float64
	System      string
	Messages    []messageParam
}

type contentBlock struct {
	Type string
	Text string
}

type messageResponse struct {
	Model      string
	StopReason string
	Content    []contentBlock
	Usage      ai.Usage
}

// errorEnvelope is {"type":"error","error":{"type":...,"message":...}}.
type errorEnvelope struct {
	Type    string
	Message string
}

// MarshalEasyJSON writes the request body. Temperature is omitted when zero.
func (r *messageRequest) MarshalEasyJSON(w *jwriter.Writer) {
	w.RawString(`{"model":`)
	w.String(r.Model)
	w.RawString(`,"max_tokens":`)
	w.Int(r.MaxTokens)
	if r.Temperature > 0 {
		w.RawString(`,"temperature":`)
		w.Float64(r.Temperature)
	}
	if r.System != "" {
		w.RawString(`,"system":`)
		w.String(r.System)
	}
	w.RawString(`,"messages":[`)
	for i, m := range r.Messages {
		if i > 0 {
			w.RawByte(',')
		}
		w.RawString(`{"role":`)
		w.String(m.Role)
		w.RawString(`,"content":`)
		w.String(m.Content)
		w.RawByte('}')
	}
	w.RawString(`]}`)
}

// UnmarshalEasyJSON decodes a Messages API response.
func (r *messageResponse) UnmarshalEasyJSON(in *jlexer.Lexer) {
	decodeObject(in, func(key string) {
		switch key {
		case "model":
			r.Model = in.String()
		case "stop_reason":
			r.StopReason = in.String()
		case "content":
			r.Content = decodeContent(in)
		case "usage":
			decodeUsage(in, &r.Usage)
		default:
			in.SkipRecursive()
		}
	})
}

// UnmarshalEasyJSON decodes an Anthropic error envelope.
func (e *errorEnvelope) UnmarshalEasyJSON(in *jlexer.Lexer) {
	decodeObject(in, func(key string) {
		if key != "error" {
			in.SkipRecursive()
			return
		}
		decodeObject(in, func(key string) {
			switch key {
			case "type":
				e.Type = in.String()
			case "message":
				e.Message = in.String()
			default:
				in.SkipRecursive()
			}
		})
	})
}

func decodeContent(in *jlexer.Lexer) []contentBlock {
	var out []contentBlock
	in.Delim('[')
	for !in.IsDelim(']') {
		var b contentBlock
		decodeObject(in, func(key string) {
			switch key {
			case "type":
				b.Type = in.String()
			case "text":
				b.Text = in.String()
			default:
				in.SkipRecursive()
			}
		})
		out = append(out, b)
		in.WantComma()
	}
	in.Delim(']')
	return out
}

func decodeUsage(in *jlexer.Lexer, u *ai.Usage) {
	decodeObject(in, func(key string) {
		switch key {
		case "input_tokens":
			u.InputTokens = in.Int()
		case "output_tokens":
			u.OutputTokens = in.Int()
		default:
			in.SkipRecursive()
		}
	})
}

// decodeObject walks one JSON object, calling field for every non-null key.
// A null object is skipped.
func decodeObject(in *jlexer.Lexer, field func(key string)) {
	isTopLevel := in.IsStart()
	if in.IsNull() {
		if isTopLevel {
			in.Consumed()
		}
		in.Skip()
		return
	}
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		if in.IsNull() {
			in.Skip()
			in.WantComma()
			continue
		}
		field(key)
		in.WantComma()
	}
	in.Delim('}')
	if isTopLevel {
		in.Consumed()
	}
}
