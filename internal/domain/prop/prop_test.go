package prop

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeConfidence(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 60.0, NormalizeConfidence(0.6), 1e-9)
	assert.InDelta(t, 60.0, NormalizeConfidence(60), 1e-9)
	assert.InDelta(t, 100.0, NormalizeConfidence(1), 1e-9)
}

func TestFilter_Threshold(t *testing.T) {
	t.Parallel()

	props := []Prop{
		{Sport: "nba", Subject: "a", Market: "Player Points", Confidence: 0.6},
		{Sport: "nba", Subject: "b", Market: "Player Rebounds", Confidence: 40},
		{Sport: "nba", Subject: "c", Market: "Player Assists", Confidence: 60},
		{Sport: "nba", Subject: "d", Market: "Player Blocks", Confidence: 0.4},
		{Sport: "nba", Subject: "e", Market: "Double Double", Confidence: 55},
	}

	got := Filter(props, DefaultThreshold, DefaultTaxonomies)

	subjects := make([]string, 0, len(got))
	for _, p := range got {
		subjects = append(subjects, p.Subject)
	}
	assert.Equal(t, []string{"a", "c", "e"}, subjects)
	assert.Equal(t, "Points", got[0].Category)
	assert.Equal(t, "Assists", got[1].Category)
	assert.Equal(t, DefaultCategory, got[2].Category)
	assert.Empty(t, props[0].Category)
}

func TestCategorize(t *testing.T) {
	t.Parallel()

	tax := DefaultTaxonomies.For("NFL")
	assert.Equal(t, "Passing", Categorize(tax, "Passing Yards"))
	assert.Equal(t, "Rushing", Categorize(tax, "RUSH ATTEMPTS"))
	assert.Equal(t, "Touchdowns", Categorize(tax, "Anytime TD Scorer"))
	assert.Equal(t, DefaultCategory, Categorize(tax, "Longest Punt"))
	assert.Equal(t, DefaultCategory, Categorize(DefaultTaxonomies.For("curling"), "Points"))
}

func TestGroupByCategory(t *testing.T) {
	t.Parallel()

	groups := GroupByCategory([]Prop{
		{Subject: "a", Category: "Points"},
		{Subject: "b", Category: "All"},
		{Subject: "c", Category: "Points"},
	})
	assert.Len(t, groups, 2)
	assert.Equal(t, "a", groups["Points"][0].Subject)
	assert.Equal(t, "c", groups["Points"][1].Subject)
}
