// ABOUTME: Model-side classification: builds the label prompt and validates the answer.
// ABOUTME: Only the exact words CHAT, METADATA or CONTENT are accepted.

package intent

import (
	"context"
	"errors"
	"fmt"
)

// ErrInvalidLabel is returned when a model answer is not one of the three labels.
var ErrInvalidLabel = errors.New("invalid intent label")

// CompletionOptions carries generation settings for the completion call.
type CompletionOptions struct {
	Temperature float64
	MaxTokens   int
}

// CompleteFunc is the external "complete text" collaborator. It may fail for
// any reason; callers treat every error as "no answer".
type CompleteFunc func(ctx context.Context, systemPrompt, userPrompt string, opts CompletionOptions) (string, error)

const classificationTemplate = `Classify the following user input for a writing assistant into exactly one category.

CHAT: questions, discussion, greetings, analysis or feedback requests that do not change the document.
METADATA: changes to document properties such as tags, title, author, date, status, category or frontmatter.
CONTENT: writing, inserting, rewriting or otherwise editing the document text.

User input: %q

Answer with one word: CHAT, METADATA or CONTENT.`

// BuildClassificationPrompt embeds the raw input in the classification template.
func BuildClassificationPrompt(input string) string {
	return fmt.Sprintf(classificationTemplate, input)
}

// classifyWithModel asks the collaborator for a label and validates it.
func classifyWithModel(ctx context.Context, complete CompleteFunc, input string, opts CompletionOptions) (UserIntent, error) {
	answer, err := complete(ctx, "", BuildClassificationPrompt(input), opts)
	if err != nil {
		return IntentChat, fmt.Errorf("completion failed: %w", err)
	}
	return ParseUserIntent(answer)
}
