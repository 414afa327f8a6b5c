// ABOUTME: Pattern detector scoring text against consultation and editing regex families.
// ABOUTME: Families are immutable tables compiled once; conflicts resolve to ambiguous.

package intent

import (
	"regexp"
	"strings"
)

// PatternMatch names one rule of a pattern family.
type PatternMatch struct {
	Family  string
	Name    string
	pattern *regexp.Regexp
}

// Match reports whether the rule matches text.
func (p PatternMatch) Match(text string) bool {
	return p.pattern.MatchString(text)
}

// Pattern family names.
const (
	FamilyConsultation = "consultation"
	FamilyEditing      = "editing"
)

// nonWord stands in for \b: RE2 word boundaries are ASCII-only.
const nonWord = `[^\p{L}\p{N}_]`

// words builds a case-insensitive pattern matching any alternative as a
// whole word anywhere in the text.
func words(alts ...string) string {
	return `(?i)(?:^|` + nonWord + `)(?:` + strings.Join(alts, "|") + `)(?:` + nonWord + `|$)`
}

// leadingWords is words anchored to the start of the text.
func leadingWords(alts ...string) string {
	return `(?i)^(?:` + strings.Join(alts, "|") + `)(?:` + nonWord + `|$)`
}

func compileFamily(family string, raws [][2]string) []PatternMatch {
	out := make([]PatternMatch, len(raws))
	for i, r := range raws {
		out[i] = PatternMatch{
			Family:  family,
			Name:    r[0],
			pattern: regexp.MustCompile(r[1]),
		}
	}
	return out
}

var consultationPatterns = compileFamily(FamilyConsultation, [][2]string{
	{"temporal", leadingWords(`now`, `today`, `this\s+week`, `lately`, `currently`, `these\s+days`)},
	{"personal_state", words(`i['’]m\s+(?:feeling|thinking|working|trying)`, `i['’]ve\s+been`, `i\s+feel`)},
	{"reflective", words(`reminds\s+me`, `makes\s+me\s+think`, `i\s+wonder`)},
})

var editingPatterns = compileFamily(FamilyEditing, [][2]string{
	{"command_verb", words(`make`, `fix`, `improve`, `change`, `add`, `remove`, `rewrite`, `edit`)},
	{"document_reference", words(`this\s+(?:section|paragraph|part|text)`, `here\s+(?:we|needs)`)},
	{"quality_assessment", words(`unclear`, `needs\s+work`, `sounds\s+wrong`, `too\s+wordy`, `confusing`)},
	{"document_targeting", words(`at\s+the\s+end`, `in\s+the\s+(?:introduction|conclusion)`, `before\s+this`, `after\s+that`)},
})

// Families returns copies of both pattern families in declaration order.
func Families() map[string][]PatternMatch {
	return map[string][]PatternMatch{
		FamilyConsultation: append([]PatternMatch(nil), consultationPatterns...),
		FamilyEditing:      append([]PatternMatch(nil), editingPatterns...),
	}
}

// DetectPatterns scores text against both families.
// A single-family hit wins with confidence 0.9; a conflict or no hit at all
// is ambiguous with confidence 0.5 and no pattern names.
func DetectPatterns(text string) IntentClassification {
	consultation := matchFamily(consultationPatterns, text)
	editing := matchFamily(editingPatterns, text)

	switch {
	case len(consultation) > 0 && len(editing) == 0:
		return IntentClassification{
			Type:            PatternConsultation,
			Confidence:      confidenceClean,
			MatchedPatterns: consultation,
		}
	case len(editing) > 0 && len(consultation) == 0:
		return IntentClassification{
			Type:            PatternEditing,
			Confidence:      confidenceClean,
			MatchedPatterns: editing,
		}
	default:
		return IntentClassification{
			Type:            PatternAmbiguous,
			Confidence:      confidenceAmbiguous,
			MatchedPatterns: []string{},
		}
	}
}

func matchFamily(family []PatternMatch, text string) []string {
	var names []string
	for _, p := range family {
		if p.Match(text) {
			names = append(names, p.Name)
		}
	}
	return names
}
