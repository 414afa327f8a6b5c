// ABOUTME: Built-in model definitions suited to short classification calls
// ABOUTME: Small, fast models from Anthropic and OpenAI

package ai

// Built-in model definitions.
var (
	ModelClaudeHaiku = Model{
		ID:              "claude-haiku-4-5-20251001",
		Name:            "Claude Haiku 4.5",
		Api:             ApiAnthropic,
		MaxOutputTokens: 8192,
	}

	ModelClaudeSonnet = Model{
		ID:              "claude-sonnet-4-6",
		Name:            "Claude Sonnet 4.6",
		Api:             ApiAnthropic,
		MaxOutputTokens: 16384,
	}

	ModelGPT4oMini = Model{
		ID:              "gpt-4o-mini",
		Name:            "GPT-4o Mini",
		Api:             ApiOpenAI,
		MaxOutputTokens: 16384,
	}

	ModelGPT4o = Model{
		ID:              "gpt-4o",
		Name:            "GPT-4o",
		Api:             ApiOpenAI,
		MaxOutputTokens: 16384,
	}
)

// DefaultModel is used when no model is configured.
var DefaultModel = ModelClaudeHaiku

// BuiltinModels returns all built-in model definitions.
func BuiltinModels() []Model {
	return []Model{
		ModelClaudeHaiku,
		ModelClaudeSonnet,
		ModelGPT4oMini,
		ModelGPT4o,
	}
}

// modelIndex is a pre-built map for O(1) model lookups by ID.
var modelIndex = func() map[string]*Model {
	models := BuiltinModels()
	idx := make(map[string]*Model, len(models))
	for i := range models {
		idx[models[i].ID] = &models[i]
	}
	return idx
}()

// FindModel looks up a model by ID from the built-in list.
// Returns nil if not found. The returned model is a copy.
func FindModel(id string) *Model {
	m, ok := modelIndex[id]
	if !ok {
		return nil
	}
	cp := *m
	return &cp
}
