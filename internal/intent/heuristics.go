// ABOUTME: Deterministic fallback classifier: an ordered rule table over lexical checks.
// ABOUTME: Always yields CHAT, METADATA or CONTENT; first decisive rule wins.

package intent

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Rule names, in evaluation order.
const (
	RuleGreeting        = "greeting"
	RuleQuestion        = "question"
	RulePrimaryEdit     = "primary_edit"
	RulePrimaryAnalysis = "primary_analysis"
	RuleEditVerb        = "edit_verb"
	RulePatternDetector = "pattern_detector"
	RuleAmbiguous       = "ambiguous"
	RuleFinal           = "final"
)

var primaryEditVerbs = []string{
	"write", "add", "create", "insert", "make", "edit", "compose", "draft",
	"generate", "modify", "update", "revise", "enhance", "append", "prepend",
}

var analysisVerbs = []string{
	"summarize", "analyze", "describe", "discuss", "review", "evaluate", "assess",
	"compare", "contrast", "tell", "show", "list", "find", "search", "identify", "explain",
}

var extraEditVerbs = []string{
	"fix", "improve", "change", "remove", "delete", "condense", "shorten",
	"expand", "adjust", "correct", "rewrite",
}

// bareEditWords are single-word inputs treated as "insert at cursor".
var bareEditWords = map[string]bool{
	"add": true, "write": true, "create": true, "insert": true,
	"make": true, "edit": true, "fix": true,
}

var (
	greetingRe = regexp.MustCompile(`^(?:(?:hi|hello|hey|hiya|howdy)(?:\s+(?:nova|there))?|good\s+(?:morning|afternoon|evening|night)|nova)(?:[\s\p{P}]|$)`)

	questionStartRe = regexp.MustCompile(`^(?:what|why|how|when|where|who)\s`)
	requestStartRe  = regexp.MustCompile(`^(?:can you|could you|please)\s`)
	explainRe       = regexp.MustCompile(words(`explain`))

	primaryEditRe     = regexp.MustCompile(`^(?:` + strings.Join(primaryEditVerbs, "|") + `)(?:\s|$)`)
	primaryAnalysisRe = regexp.MustCompile(leadingWords(analysisVerbs...))
	editVerbRe        = regexp.MustCompile(words(append(append([]string(nil), primaryEditVerbs...), extraEditVerbs...)...))
	genericEditRe     = regexp.MustCompile(words(`better`, `clearer`, `more`, `less`, `section`, `paragraph`, `text`, `content`, `here`, `this`))
)

var metadataPatterns = []*regexp.Regexp{
	regexp.MustCompile(words(`tags?`, `tagging`)),
	regexp.MustCompile(words(`title`, `author`, `date`, `status`, `category`, `categories`)),
	regexp.MustCompile(words(`metadata`, `frontmatter`, `properties`, `property`)),
	regexp.MustCompile(`^(?:add|update|set|remove|clean|optimize)\s+(?:tags?|title|author|metadata)`),
}

// input is one piece of text prepared for the cascade.
type input struct {
	text     string // NFC, lower-cased, trimmed
	patterns *IntentClassification
}

func newInput(raw string) *input {
	return &input{text: strings.TrimSpace(strings.ToLower(norm.NFC.String(raw)))}
}

// detect runs the pattern detector once per input.
func (in *input) detect() IntentClassification {
	if in.patterns == nil {
		c := DetectPatterns(in.text)
		in.patterns = &c
	}
	return *in.patterns
}

// IsMetadataRelevant reports whether text is about tags, titles, authorship
// or frontmatter-style properties rather than body content.
func IsMetadataRelevant(text string) bool {
	return isMetadata(newInput(text))
}

func isMetadata(in *input) bool {
	for _, re := range metadataPatterns {
		if re.MatchString(in.text) {
			return true
		}
	}
	return false
}

// editTarget splits an editing request between metadata and body content.
// Every stage that can produce either label goes through here.
func editTarget(in *input) UserIntent {
	if isMetadata(in) {
		return IntentMetadata
	}
	return IntentContent
}

// rule is one cascade stage: when match holds, resolve decides the label.
type rule struct {
	name    string
	match   func(in *input) bool
	resolve func(in *input) UserIntent
}

func constant(i UserIntent) func(*input) UserIntent {
	return func(*input) UserIntent { return i }
}

// cascade is evaluated top to bottom. The order is significant: sentence
// initial verbs are checked before the verb-anywhere scan, which runs
// before the pattern families.
var cascade = []rule{
	{
		name:    RuleGreeting,
		match:   func(in *input) bool { return greetingRe.MatchString(in.text) },
		resolve: constant(IntentChat),
	},
	{
		name:    RuleQuestion,
		match:   isQuestion,
		resolve: constant(IntentChat),
	},
	{
		name:    RulePrimaryEdit,
		match:   func(in *input) bool { return primaryEditRe.MatchString(in.text) },
		resolve: editTarget,
	},
	{
		name:    RulePrimaryAnalysis,
		match:   func(in *input) bool { return primaryAnalysisRe.MatchString(in.text) },
		resolve: constant(IntentChat),
	},
	{
		name:    RuleEditVerb,
		match:   func(in *input) bool { return editVerbRe.MatchString(in.text) },
		resolve: editTarget,
	},
	{
		name:  RulePatternDetector,
		match: func(in *input) bool { return in.detect().Type != PatternAmbiguous },
		resolve: func(in *input) UserIntent {
			if in.detect().Type == PatternConsultation {
				return IntentChat
			}
			return editTarget(in)
		},
	},
	{
		name:  RuleAmbiguous,
		match: func(in *input) bool { return in.detect().Type == PatternAmbiguous },
		resolve: func(in *input) UserIntent {
			switch {
			case isMetadata(in):
				return IntentMetadata
			case bareEditWords[in.text]:
				return IntentContent
			default:
				return IntentChat
			}
		},
	},
	{
		name:  RuleFinal,
		match: func(*input) bool { return true },
		resolve: func(in *input) UserIntent {
			switch {
			case isMetadata(in):
				return IntentMetadata
			case genericEditRe.MatchString(in.text):
				return IntentContent
			default:
				return IntentChat
			}
		},
	},
}

func isQuestion(in *input) bool {
	t := in.text
	switch {
	case strings.Contains(t, "?"):
		return true
	case questionStartRe.MatchString(t), requestStartRe.MatchString(t):
		return true
	case explainRe.MatchString(t) && utf8.RuneCountInString(t) > 10:
		return true
	default:
		return strings.Contains(t, "help me understand")
	}
}

// Rules returns the cascade rule names in evaluation order.
func Rules() []string {
	names := make([]string, len(cascade))
	for i, r := range cascade {
		names[i] = r.name
	}
	return names
}

// Explain runs the fallback cascade and reports which rule decided.
// hasSelection is part of the dispatch contract; no rule consults it.
func Explain(text string, hasSelection bool) Decision {
	in := newInput(text)
	for _, r := range cascade {
		if !r.match(in) {
			continue
		}
		return Decision{
			Intent:   r.resolve(in),
			Rule:     r.name,
			Patterns: in.patterns,
		}
	}
	// Unreachable: the final rule always matches.
	return Decision{Intent: IntentChat, Rule: RuleFinal, Patterns: in.patterns}
}

// Fallback classifies text deterministically. It never fails: empty and
// whitespace-only input resolve to IntentChat.
func Fallback(text string, hasSelection bool) UserIntent {
	return Explain(text, hasSelection).Intent
}
