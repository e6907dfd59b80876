// Package prop categorizes player and team props and filters them by
// model confidence.
package prop

import (
	"strings"

	"github.com/riskibarqy/fight-ledger/internal/platform/classify"
)

// DefaultCategory is the bucket for markets no taxonomy rule matches.
const DefaultCategory = "All"

// DefaultThreshold is the minimum confidence, on the 0-100 scale, a prop
// needs to be shown.
const DefaultThreshold = 55.0

type Prop struct {
	Sport      string   `json:"sport"`
	Book       string   `json:"book"`
	Subject    string   `json:"subject"`
	Market     string   `json:"market"`
	Category   string   `json:"category"`
	Line       float64  `json:"line"`
	Odds       int      `json:"odds"`
	Confidence float64  `json:"confidence"`
	Edge       *float64 `json:"edge,omitempty"`
}

// Category is one taxonomy bucket and the market keywords that select it.
type Category struct {
	Name     string
	Keywords []string
}

// Taxonomy is an ordered category table; the first matching entry wins.
type Taxonomy []Category

func (t Taxonomy) rules() []classify.Rule[string] {
	rules := make([]classify.Rule[string], 0, len(t))
	for _, c := range t {
		if c.Name == DefaultCategory {
			continue
		}
		rules = append(rules, classify.Rule[string]{Tag: c.Name, Match: classify.ContainsAny(c.Keywords...)})
	}
	return rules
}

// Categorize returns the first category whose keywords occur in market,
// ignoring case, or DefaultCategory.
func Categorize(t Taxonomy, market string) string {
	return classify.FirstOr(t.rules(), strings.ToLower(market), DefaultCategory)
}

// NormalizeConfidence puts c on the 0-100 scale. Values above 1 are taken
// as already scaled.
func NormalizeConfidence(c float64) float64 {
	if c > 1 {
		return c
	}
	return c * 100
}

func Qualifies(p Prop, threshold float64) bool {
	return NormalizeConfidence(p.Confidence) >= threshold
}

// Filter keeps props at or above threshold, sets their category from the
// sport's taxonomy, and preserves input order. The input is not modified.
func Filter(props []Prop, threshold float64, taxonomies Taxonomies) []Prop {
	out := make([]Prop, 0, len(props))
	for _, p := range props {
		if !Qualifies(p, threshold) {
			continue
		}
		p.Category = Categorize(taxonomies.For(p.Sport), p.Market)
		out = append(out, p)
	}
	return out
}

// GroupByCategory buckets props by category, keeping order within a bucket.
func GroupByCategory(props []Prop) map[string][]Prop {
	out := make(map[string][]Prop)
	for _, p := range props {
		out[p.Category] = append(out[p.Category], p)
	}
	return out
}
