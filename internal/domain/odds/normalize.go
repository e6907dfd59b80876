package odds

// Normalize converts any payload variant into a Board. It never fails:
// unknown market or book keys are dropped and missing lists stay empty.
func Normalize(p Payload) Board {
	board := NewBoard()

	switch v := p.(type) {
	case MarketsPayload:
		for marketKey, books := range v.Markets {
			market, ok := CanonicalMarket(marketKey)
			if !ok {
				continue
			}
			for bookKey, quotes := range books {
				if book, ok := knownBook(bookKey); ok {
					board[market][book] = cloneQuotes(quotes)
				}
			}
		}
	case BookmakersPayload:
		for _, bm := range v.Bookmakers {
			book, ok := knownBook(bm.Key)
			if !ok {
				continue
			}
			for _, m := range bm.Markets {
				if market, ok := CanonicalMarket(m.Key); ok {
					board[market][book] = cloneQuotes(m.Outcomes)
				}
			}
		}
	case EmptyPayload, nil:
	}

	return board
}

// NormalizeRaw decodes and normalizes in one step. Undecodable input yields
// an empty board along with the decode error.
func NormalizeRaw(raw []byte) (Board, error) {
	p, err := Decode(raw)
	if err != nil {
		return NewBoard(), err
	}
	return Normalize(p), nil
}

func cloneQuotes(in []Quote) []Quote {
	out := make([]Quote, len(in))
	copy(out, in)
	return out
}
