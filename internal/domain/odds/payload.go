package odds

import (
	"fmt"
	"math"

	"github.com/bytedance/sonic"
)

// Payload is one event's raw odds in one of the known upstream shapes.
// The set of variants is closed; Normalize handles each explicitly.
type Payload interface {
	payload()
}

// MarketsPayload is already keyed market → book → quotes.
type MarketsPayload struct {
	Markets map[string]map[string][]Quote
}

// BookmakersPayload lists bookmakers, each with its own markets.
type BookmakersPayload struct {
	Bookmakers []Bookmaker
}

type Bookmaker struct {
	Key     string       `json:"key"`
	Markets []BookMarket `json:"markets"`
}

type BookMarket struct {
	Key      string  `json:"key"`
	Outcomes []Quote `json:"outcomes"`
}

// EmptyPayload carries neither shape.
type EmptyPayload struct{}

func (MarketsPayload) payload()    {}
func (BookmakersPayload) payload() {}
func (EmptyPayload) payload()      {}

type rawQuote struct {
	Name  string   `json:"name"`
	Price *float64 `json:"price"`
	Point *float64 `json:"point"`
}

type rawPayload struct {
	Markets    map[string]map[string][]rawQuote `json:"markets"`
	Bookmakers []struct {
		Key     string `json:"key"`
		Markets []struct {
			Key      string     `json:"key"`
			Outcomes []rawQuote `json:"outcomes"`
		} `json:"markets"`
	} `json:"bookmakers"`
}

// Decode picks the payload variant from the top-level field present. When
// both are present the markets shape wins. Invalid JSON is an error.
func Decode(raw []byte) (Payload, error) {
	if len(raw) == 0 {
		return EmptyPayload{}, nil
	}
	var decoded rawPayload
	if err := sonic.Unmarshal(raw, &decoded); err != nil {
		return EmptyPayload{}, fmt.Errorf("decode odds payload: %w", err)
	}

	switch {
	case decoded.Markets != nil:
		markets := make(map[string]map[string][]Quote, len(decoded.Markets))
		for marketKey, books := range decoded.Markets {
			converted := make(map[string][]Quote, len(books))
			for bookKey, quotes := range books {
				converted[bookKey] = toQuotes(quotes)
			}
			markets[marketKey] = converted
		}
		return MarketsPayload{Markets: markets}, nil
	case decoded.Bookmakers != nil:
		bookmakers := make([]Bookmaker, 0, len(decoded.Bookmakers))
		for _, bm := range decoded.Bookmakers {
			item := Bookmaker{Key: bm.Key, Markets: make([]BookMarket, 0, len(bm.Markets))}
			for _, m := range bm.Markets {
				item.Markets = append(item.Markets, BookMarket{Key: m.Key, Outcomes: toQuotes(m.Outcomes)})
			}
			bookmakers = append(bookmakers, item)
		}
		return BookmakersPayload{Bookmakers: bookmakers}, nil
	default:
		return EmptyPayload{}, nil
	}
}

// Some feeds send prices as floats; they are rounded to whole American odds.
func toQuotes(raw []rawQuote) []Quote {
	out := make([]Quote, 0, len(raw))
	for _, q := range raw {
		quote := Quote{Name: q.Name, Point: q.Point}
		if q.Price != nil {
			price := int(math.Round(*q.Price))
			quote.Price = &price
		}
		out = append(out, quote)
	}
	return out
}
