package odds

// Market is a canonical market key.
type Market string

const (
	Moneyline Market = "moneyline"
	Spread    Market = "spread"
	Total     Market = "total"
)

// Book is a supported sportsbook key.
type Book string

const (
	DraftKings Book = "draftkings"
	FanDuel    Book = "fanduel"
)

var (
	Markets = []Market{Moneyline, Spread, Total}
	Books   = []Book{DraftKings, FanDuel}
)

// Quote is one side of a market at one book. Price is American odds.
type Quote struct {
	Name  string   `json:"name,omitempty"`
	Price *int     `json:"price"`
	Point *float64 `json:"point,omitempty"`
}

// Board is the canonical market → book → quotes shape.
type Board map[Market]map[Book][]Quote

// NewBoard returns a board with every market and book present and empty.
func NewBoard() Board {
	board := make(Board, len(Markets))
	for _, m := range Markets {
		books := make(map[Book][]Quote, len(Books))
		for _, b := range Books {
			books[b] = []Quote{}
		}
		board[m] = books
	}
	return board
}

// Quotes returns the list for market and book, never nil.
func (b Board) Quotes(market Market, book Book) []Quote {
	if quotes := b[market][book]; quotes != nil {
		return quotes
	}
	return []Quote{}
}

// Matchup names the two sides of a head-to-head event. Upstream quote lists
// without names are ordered away then home.
type Matchup struct {
	Away string
	Home string
}

var marketAliases = map[string]Market{
	"h2h":       Moneyline,
	"spreads":   Spread,
	"totals":    Total,
	"moneyline": Moneyline,
	"spread":    Spread,
	"total":     Total,
}

// CanonicalMarket maps an upstream market key to its canonical name.
func CanonicalMarket(key string) (Market, bool) {
	m, ok := marketAliases[key]
	return m, ok
}

func knownBook(key string) (Book, bool) {
	for _, b := range Books {
		if string(b) == key {
			return b, true
		}
	}
	return "", false
}
