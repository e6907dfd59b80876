package odds

import "time"

// EventOdds is one cached event: its matchup plus the raw odds payload in
// whichever upstream shape was stored.
type EventOdds struct {
	ID           string
	Sport        string
	Matchup      Matchup
	CommenceTime time.Time
	Raw          []byte
}

// BookSides holds both teams' lines at one book.
type BookSides struct {
	Away SideQuotes `json:"away"`
	Home SideQuotes `json:"home"`
}

// Sides resolves the away and home lines at every book on the board.
func (b Board) Sides(m Matchup) map[Book]BookSides {
	out := make(map[Book]BookSides, len(Books))
	for _, book := range Books {
		out[book] = BookSides{
			Away: b.ResolveSide(book, m.Away, m),
			Home: b.ResolveSide(book, m.Home, m),
		}
	}
	return out
}
