// ABOUTME: Intent classification types for routing chat-box input to a handler.
// ABOUTME: Defines UserIntent labels, pattern detector results, and cascade decisions.

package intent

import (
	"fmt"
	"strings"
)

// UserIntent is the dispatch category assigned to one piece of user input.
type UserIntent int

const (
	IntentChat     UserIntent = iota // Conversational reply
	IntentMetadata                   // Tags, title, author, frontmatter edits
	IntentContent                    // Document body edits
)

// String returns the label word for the intent.
func (i UserIntent) String() string {
	switch i {
	case IntentChat:
		return "CHAT"
	case IntentMetadata:
		return "METADATA"
	case IntentContent:
		return "CONTENT"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", int(i))
	}
}

// MarshalText lets the label appear verbatim in JSON output.
func (i UserIntent) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// ParseUserIntent maps an exact label word to its intent. Surrounding
// whitespace and case are ignored; anything else is rejected.
func ParseUserIntent(s string) (UserIntent, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CHAT":
		return IntentChat, nil
	case "METADATA":
		return IntentMetadata, nil
	case "CONTENT":
		return IntentContent, nil
	default:
		return IntentChat, fmt.Errorf("%w: %q", ErrInvalidLabel, s)
	}
}

// PatternType is the Pattern Detector's verdict.
type PatternType string

const (
	PatternConsultation PatternType = "consultation"
	PatternEditing      PatternType = "editing"
	PatternAmbiguous    PatternType = "ambiguous"
)

// Confidence values reported by the Pattern Detector.
const (
	confidenceClean     = 0.9
	confidenceAmbiguous = 0.5
)

// IntentClassification is the Pattern Detector result.
// MatchedPatterns is empty exactly when Type is PatternAmbiguous.
type IntentClassification struct {
	Type            PatternType `json:"type"`
	Confidence      float64     `json:"confidence"`
	MatchedPatterns []string    `json:"matched_patterns"`
}

// Decision is the outcome of the heuristic cascade together with the rule
// that produced it.
type Decision struct {
	Intent   UserIntent            `json:"intent"`
	Rule     string                `json:"rule"`
	Patterns *IntentClassification `json:"patterns,omitempty"` // set once the detector stage has run
}

// Source names where an orchestrator result came from.
type Source string

const (
	SourceReserved  Source = "reserved"
	SourceModel     Source = "model"
	SourceHeuristic Source = "heuristic"
)

// Result is the orchestrator outcome.
type Result struct {
	Intent    UserIntent            `json:"intent"`
	Source    Source                `json:"source"`
	Rule      string                `json:"rule,omitempty"`
	Selection bool                  `json:"selection"`
	Patterns  *IntentClassification `json:"patterns,omitempty"`
}
