package prop

import "strings"

// Taxonomies maps a sport key to its category table.
type Taxonomies map[string]Taxonomy

// For returns the taxonomy for sport, or an empty table that sends every
// market to DefaultCategory.
func (t Taxonomies) For(sport string) Taxonomy {
	return t[strings.ToLower(strings.TrimSpace(sport))]
}

// DefaultTaxonomies is the built-in keyword table per sport.
var DefaultTaxonomies = Taxonomies{
	"nba": {
		{Name: DefaultCategory},
		{Name: "Points", Keywords: []string{"points", "pts"}},
		{Name: "Rebounds", Keywords: []string{"rebounds", "reb"}},
		{Name: "Assists", Keywords: []string{"assists", "ast"}},
		{Name: "Threes", Keywords: []string{"threes", "3-pt", "three"}},
		{Name: "Defense", Keywords: []string{"steals", "blocks"}},
	},
	"nfl": {
		{Name: DefaultCategory},
		{Name: "Passing", Keywords: []string{"pass"}},
		{Name: "Rushing", Keywords: []string{"rush"}},
		{Name: "Receiving", Keywords: []string{"reception", "receiving"}},
		{Name: "Touchdowns", Keywords: []string{"touchdown", "td"}},
		{Name: "Kicking", Keywords: []string{"field goal", "kicking"}},
	},
	"mlb": {
		{Name: DefaultCategory},
		{Name: "Hitting", Keywords: []string{"hits", "home run", "rbi", "total bases"}},
		{Name: "Pitching", Keywords: []string{"strikeouts", "earned runs", "outs recorded"}},
	},
	"nhl": {
		{Name: DefaultCategory},
		{Name: "Goals", Keywords: []string{"goals"}},
		{Name: "Points", Keywords: []string{"points", "assists"}},
		{Name: "Shots", Keywords: []string{"shots"}},
		{Name: "Goalie", Keywords: []string{"saves"}},
	},
	"mma": {
		{Name: DefaultCategory},
		{Name: "Method", Keywords: []string{"ko", "submission", "decision", "method"}},
		{Name: "Rounds", Keywords: []string{"round", "distance"}},
		{Name: "Strikes", Keywords: []string{"strikes"}},
		{Name: "Takedowns", Keywords: []string{"takedown"}},
	},
}
