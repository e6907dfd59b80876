package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/fight-ledger/internal/domain/odds"
)

type fakeOddsSource struct {
	events map[string]odds.EventOdds
	err    error
}

func (f *fakeOddsSource) ListEventIDs(_ context.Context, _ string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	ids := make([]string, 0, len(f.events))
	for _, id := range []string{"evt-1", "evt-2", "evt-3"} {
		if _, ok := f.events[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (f *fakeOddsSource) GetEventOdds(_ context.Context, _ string, eventID string) (odds.EventOdds, bool, error) {
	if f.err != nil {
		return odds.EventOdds{}, false, f.err
	}
	item, ok := f.events[eventID]
	return item, ok, nil
}

func (f *fakeOddsSource) GetEventOddsBatch(_ context.Context, _ string, eventIDs []string) ([]odds.EventOdds, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]odds.EventOdds, 0, len(eventIDs))
	for _, id := range eventIDs {
		if item, ok := f.events[id]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func newFakeOddsSource() *fakeOddsSource {
	matchup := odds.Matchup{Away: "Miami Heat", Home: "Boston Celtics"}
	return &fakeOddsSource{events: map[string]odds.EventOdds{
		"evt-1": {
			ID:      "evt-1",
			Sport:   "nba",
			Matchup: matchup,
			Raw:     []byte(`{"bookmakers":[{"key":"draftkings","markets":[{"key":"h2h","outcomes":[{"name":"Miami Heat","price":320},{"name":"Boston Celtics","price":-410}]}]}]}`),
		},
		"evt-2": {
			ID:      "evt-2",
			Sport:   "nba",
			Matchup: matchup,
			Raw:     []byte(`{"markets":{"spreads":{"fanduel":[{"price":-110,"point":8.5},{"price":-110,"point":-8.5}]}}}`),
		},
		"evt-3": {
			ID:      "evt-3",
			Sport:   "nba",
			Matchup: matchup,
			Raw:     []byte(`{"markets":`),
		},
	}}
}

func TestOddsBoardService_EventBoardResolvesSides(t *testing.T) {
	t.Parallel()

	svc := NewOddsBoardService(newFakeOddsSource(), 2, nil)
	board, err := svc.EventBoard(context.Background(), "NBA", "evt-1")
	require.NoError(t, err)

	assert.Equal(t, "Miami Heat", board.AwayTeam)
	away := board.Sides[odds.DraftKings].Away
	require.NotNil(t, away.Moneyline)
	assert.Equal(t, 320, *away.Moneyline.Price)
	assert.Equal(t, "+320", away.Moneyline.Display)
	require.NotNil(t, away.Moneyline.ImpliedProbability)
	assert.InDelta(t, 100.0/420.0, *away.Moneyline.ImpliedProbability, 1e-9)
	assert.Nil(t, away.Spread)

	home := board.Sides[odds.DraftKings].Home
	require.NotNil(t, home.Moneyline)
	assert.Equal(t, -410, *home.Moneyline.Price)
	assert.Empty(t, board.Board.Quotes(odds.Total, odds.FanDuel))
}

func TestOddsBoardService_PositionalFallback(t *testing.T) {
	t.Parallel()

	svc := NewOddsBoardService(newFakeOddsSource(), 2, nil)
	board, err := svc.EventBoard(context.Background(), "nba", "evt-2")
	require.NoError(t, err)

	sides := board.Sides[odds.FanDuel]
	require.NotNil(t, sides.Away.Spread)
	require.NotNil(t, sides.Home.Spread)
	assert.Equal(t, 8.5, *sides.Away.Spread.Point)
	assert.Equal(t, -8.5, *sides.Home.Spread.Point)
}

func TestOddsBoardService_EventBoardErrors(t *testing.T) {
	t.Parallel()

	svc := NewOddsBoardService(newFakeOddsSource(), 2, nil)
	_, err := svc.EventBoard(context.Background(), "nba", "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.EventBoard(context.Background(), "", "evt-1")
	assert.ErrorIs(t, err, ErrInvalidInput)

	down := NewOddsBoardService(&fakeOddsSource{err: errors.New("redis down")}, 2, nil)
	_, err = down.EventBoard(context.Background(), "nba", "evt-1")
	assert.ErrorIs(t, err, ErrDependencyUnavailable)
}

func TestOddsBoardService_SportBoardKeepsOrderAndFlagsBadPayloads(t *testing.T) {
	t.Parallel()

	svc := NewOddsBoardService(newFakeOddsSource(), 2, nil)
	boards, err := svc.SportBoard(context.Background(), "nba")
	require.NoError(t, err)
	require.Len(t, boards, 3)

	assert.Equal(t, "evt-1", boards[0].EventID)
	assert.Equal(t, "evt-2", boards[1].EventID)
	assert.Equal(t, "evt-3", boards[2].EventID)
	assert.Empty(t, boards[1].Warning)
	assert.NotEmpty(t, boards[2].Warning)
	for _, m := range odds.Markets {
		for _, b := range odds.Books {
			assert.NotNil(t, boards[2].Board.Quotes(m, b))
		}
	}
}
