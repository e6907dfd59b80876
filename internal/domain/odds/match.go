package odds

import "strings"

// FindQuote returns the quote for team. A quote whose name equals team wins;
// otherwise the away side falls back to index 0 and the home side to index 1.
// A blank team never matches.
func FindQuote(quotes []Quote, team string, m Matchup) (Quote, bool) {
	if strings.TrimSpace(team) == "" {
		return Quote{}, false
	}
	for _, q := range quotes {
		if q.Name == team {
			return q, true
		}
	}

	idx := -1
	switch team {
	case m.Away:
		idx = 0
	case m.Home:
		idx = 1
	}
	if idx < 0 || idx >= len(quotes) {
		return Quote{}, false
	}
	return quotes[idx], true
}

// PricedQuote is a resolved quote together with its display price.
type PricedQuote struct {
	Quote
	Display            string   `json:"display"`
	ImpliedProbability *float64 `json:"implied_probability,omitempty"`
}

func newPricedQuote(q Quote) *PricedQuote {
	out := &PricedQuote{Quote: q, Display: FormatAmerican(q.Price)}
	if q.Price != nil {
		if p, ok := ImpliedProbability(*q.Price); ok {
			out.ImpliedProbability = &p
		}
	}
	return out
}

// SideQuotes is one team's line at one book across the three markets.
type SideQuotes struct {
	Moneyline *PricedQuote `json:"moneyline"`
	Spread    *PricedQuote `json:"spread"`
	Total     *PricedQuote `json:"total"`
}

// ResolveSide looks up team's quote in every market at book.
func (b Board) ResolveSide(book Book, team string, m Matchup) SideQuotes {
	var out SideQuotes
	if q, ok := FindQuote(b.Quotes(Moneyline, book), team, m); ok {
		out.Moneyline = newPricedQuote(q)
	}
	if q, ok := FindQuote(b.Quotes(Spread, book), team, m); ok {
		out.Spread = newPricedQuote(q)
	}
	if q, ok := FindQuote(b.Quotes(Total, book), team, m); ok {
		out.Total = newPricedQuote(q)
	}
	return out
}
