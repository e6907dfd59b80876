// Package classify implements ordered, data-driven tagging of free text.
package classify

import (
	"regexp"
	"strings"
)

// Predicate decides whether a rule applies to text.
type Predicate func(text string) bool

// Rule pairs a tag with the predicate that selects it.
type Rule[T any] struct {
	Tag   T
	Match Predicate
}

// First returns the tag of the first rule in table order whose predicate
// matches text.
func First[T any](rules []Rule[T], text string) (T, bool) {
	for _, rule := range rules {
		if rule.Match != nil && rule.Match(text) {
			return rule.Tag, true
		}
	}
	var zero T
	return zero, false
}

// FirstOr is First with an explicit fallback tag.
func FirstOr[T any](rules []Rule[T], text string, fallback T) T {
	if tag, ok := First(rules, text); ok {
		return tag
	}
	return fallback
}

// ContainsAny matches when the lowercased text contains any keyword.
func ContainsAny(keywords ...string) Predicate {
	lowered := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			lowered = append(lowered, kw)
		}
	}
	return func(text string) bool {
		text = strings.ToLower(text)
		for _, kw := range lowered {
			if strings.Contains(text, kw) {
				return true
			}
		}
		return false
	}
}

// Word matches when any of words appears as a whole token. Matching is
// case-sensitive unless foldCase is set.
func Word(foldCase bool, words ...string) Predicate {
	quoted := make([]string, 0, len(words))
	for _, w := range words {
		if w = strings.TrimSpace(w); w != "" {
			quoted = append(quoted, regexp.QuoteMeta(w))
		}
	}
	if len(quoted) == 0 {
		return func(string) bool { return false }
	}
	expr := `\b(?:` + strings.Join(quoted, "|") + `)\b`
	if foldCase {
		expr = `(?i)` + expr
	}
	re := regexp.MustCompile(expr)
	return re.MatchString
}
