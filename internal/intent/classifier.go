// ABOUTME: Orchestrator: colon commands short-circuit, then one model attempt, then heuristics.
// ABOUTME: Never returns an error; a label is always produced.

package intent

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	nrlog "github.com/mauromedda/nova-router/internal/log"
)

// reservedPrefix marks host commands (provider switch, custom commands).
const reservedPrefix = ":"

const (
	defaultTemperature = 0.1
	defaultMaxTokens   = 10
)

// Gate decides whether the completion collaborator may be called right now
// and is told how each call went.
type Gate interface {
	Allow() bool
	Observe(err error)
}

// ClassifierConfig holds configuration for the orchestrator.
type ClassifierConfig struct {
	Complete    CompleteFunc // Optional; nil disables the model attempt.
	Temperature float64      // Default 0.1.
	MaxTokens   int          // Default 10.
	Gate        Gate         // Optional.
}

// Classifier is the public classification entry point.
type Classifier struct {
	config ClassifierConfig
}

// NewClassifier creates a classifier with the given config, applying defaults.
func NewClassifier(cfg ClassifierConfig) *Classifier {
	if cfg.Temperature == 0 {
		cfg.Temperature = defaultTemperature
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	return &Classifier{config: cfg}
}

// ModelEnabled reports whether a completion collaborator is configured.
func (c *Classifier) ModelEnabled() bool {
	return c.config.Complete != nil
}

// ClassifyIntent returns the dispatch label for userInput.
func (c *Classifier) ClassifyIntent(ctx context.Context, userInput string, hasSelection bool) UserIntent {
	return c.Classify(ctx, userInput, hasSelection).Intent
}

// Classify determines the intent of userInput and reports how it was decided.
// Strategy: reserved ":" prefix is CHAT. Otherwise one model attempt; an
// error, a refused gate, or any answer other than the three labels falls
// through to the deterministic cascade.
func (c *Classifier) Classify(ctx context.Context, userInput string, hasSelection bool) Result {
	if strings.HasPrefix(userInput, reservedPrefix) {
		nrlog.Debug("intent: reserved prefix in %q", nrlog.Preview(userInput))
		return Result{Intent: IntentChat, Source: SourceReserved, Selection: hasSelection}
	}

	if label, ok := c.tryModel(ctx, userInput); ok {
		return Result{Intent: label, Source: SourceModel, Selection: hasSelection}
	}

	d := Explain(userInput, hasSelection)
	nrlog.Debug("intent: heuristic rule=%s intent=%s input=%q", d.Rule, d.Intent, nrlog.Preview(userInput))
	return Result{
		Intent:    d.Intent,
		Source:    SourceHeuristic,
		Rule:      d.Rule,
		Selection: hasSelection,
		Patterns:  d.Patterns,
	}
}

// tryModel makes the single model attempt. ok is false when the caller
// should fall back.
func (c *Classifier) tryModel(ctx context.Context, userInput string) (UserIntent, bool) {
	if c.config.Complete == nil {
		return IntentChat, false
	}
	if c.config.Gate != nil && !c.config.Gate.Allow() {
		nrlog.Debug("intent: model attempt skipped by gate")
		return IntentChat, false
	}

	label, err := classifyWithModel(ctx, c.config.Complete, userInput, CompletionOptions{
		Temperature: c.config.Temperature,
		MaxTokens:   c.config.MaxTokens,
	})
	if c.config.Gate != nil {
		c.config.Gate.Observe(err)
	}
	if err != nil {
		nrlog.Debug("intent: model attempt rejected: %v", err)
		return IntentChat, false
	}
	nrlog.Debug("intent: model label=%s", label)
	return label, true
}

// ClassifyValue accepts loosely typed input, e.g. a decoded JSON field.
// Anything that is not a string degrades to IntentChat without a model call.
func (c *Classifier) ClassifyValue(ctx context.Context, v any, hasSelection bool) Result {
	s, ok := v.(string)
	if !ok {
		nrlog.Debug("intent: non-string input %T", v)
		d := Explain("", hasSelection)
		return Result{Intent: d.Intent, Source: SourceHeuristic, Rule: d.Rule, Selection: hasSelection, Patterns: d.Patterns}
	}
	return c.Classify(ctx, s, hasSelection)
}

// BatchItem is one independent input for ClassifyBatch.
type BatchItem struct {
	Text      any
	Selection bool
}

// ClassifyBatch classifies independent inputs concurrently, at most limit at
// a time (limit <= 0 means unbounded). Results keep input order.
func (c *Classifier) ClassifyBatch(ctx context.Context, items []BatchItem, limit int) []Result {
	results := make([]Result, len(items))

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, item := range items {
		g.Go(func() error {
			results[i] = c.ClassifyValue(gctx, item.Text, item.Selection)
			return nil
		})
	}
	_ = g.Wait() // workers never fail

	return results
}
