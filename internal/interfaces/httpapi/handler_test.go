package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/fight-ledger/internal/domain/odds"
	"github.com/riskibarqy/fight-ledger/internal/platform/logging"
	"github.com/riskibarqy/fight-ledger/internal/usecase"
)

type stubOddsBoard struct {
	boards map[string]usecase.EventBoard
	err    error
}

func (s *stubOddsBoard) EventBoard(_ context.Context, sport, eventID string) (usecase.EventBoard, error) {
	if s.err != nil {
		return usecase.EventBoard{}, s.err
	}
	board, ok := s.boards[sport+"/"+eventID]
	if !ok {
		return usecase.EventBoard{}, fmt.Errorf("%w: odds for %s/%s", usecase.ErrNotFound, sport, eventID)
	}
	return board, nil
}

func (s *stubOddsBoard) SportBoard(_ context.Context, sport string) ([]usecase.EventBoard, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]usecase.EventBoard, 0, len(s.boards))
	for _, board := range s.boards {
		if board.Sport == sport {
			out = append(out, board)
		}
	}
	return out, nil
}

type stubPropBoard struct {
	lastQuery usecase.PropBoardQuery
}

func (s *stubPropBoard) Board(_ context.Context, query usecase.PropBoardQuery) (usecase.PropBoard, error) {
	s.lastQuery = query
	return usecase.PropBoard{Threshold: query.Threshold, Sports: []usecase.SportProps{}}, nil
}

type decodedEnvelope struct {
	APIVersion string         `json:"apiVersion"`
	Data       map[string]any `json:"data"`
	Error      map[string]any `json:"error"`
}

func newTestRouter(oddsBoard OddsBoard, propBoard PropBoard) http.Handler {
	return NewRouter(NewHandler(oddsBoard, propBoard, 55, logging.NewNop()), logging.NewNop(), []string{"*"})
}

func serve(t *testing.T, router http.Handler, target string) (*httptest.ResponseRecorder, decodedEnvelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	var body decodedEnvelope
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func sampleBoard() usecase.EventBoard {
	price := 320
	board := odds.NewBoard()
	board[odds.Moneyline][odds.DraftKings] = []odds.Quote{{Name: "Miami Heat", Price: &price}}
	matchup := odds.Matchup{Away: "Miami Heat", Home: "Boston Celtics"}
	return usecase.EventBoard{
		EventID:  "evt-1",
		Sport:    "nba",
		AwayTeam: matchup.Away,
		HomeTeam: matchup.Home,
		Board:    board,
		Sides:    board.Sides(matchup),
	}
}

func TestHandler_Healthz(t *testing.T) {
	t.Parallel()

	rec, body := serve(t, newTestRouter(&stubOddsBoard{}, &stubPropBoard{}), "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body.Data["status"])
}

func TestHandler_GetEventOdds(t *testing.T) {
	t.Parallel()

	router := newTestRouter(&stubOddsBoard{boards: map[string]usecase.EventBoard{"nba/evt-1": sampleBoard()}}, &stubPropBoard{})

	rec, body := serve(t, router, "/v1/odds/nba/evt-1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "evt-1", body.Data["event_id"])

	sides, ok := body.Data["sides"].(map[string]any)
	require.True(t, ok)
	draftkings, ok := sides["draftkings"].(map[string]any)
	require.True(t, ok)
	away, ok := draftkings["away"].(map[string]any)
	require.True(t, ok)
	moneyline, ok := away["moneyline"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 320, moneyline["price"])
	assert.Equal(t, "+320", moneyline["display"])
}

func TestHandler_GetEventOddsNotFound(t *testing.T) {
	t.Parallel()

	rec, body := serve(t, newTestRouter(&stubOddsBoard{}, &stubPropBoard{}), "/v1/odds/nba/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", body.Error["status"])
}

func TestHandler_DependencyUnavailable(t *testing.T) {
	t.Parallel()

	router := newTestRouter(&stubOddsBoard{err: fmt.Errorf("%w: redis down", usecase.ErrDependencyUnavailable)}, &stubPropBoard{})
	rec, _ := serve(t, router, "/v1/odds/nba")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandler_ListSportOdds(t *testing.T) {
	t.Parallel()

	router := newTestRouter(&stubOddsBoard{boards: map[string]usecase.EventBoard{"nba/evt-1": sampleBoard()}}, &stubPropBoard{})
	rec, body := serve(t, router, "/v1/odds/nba")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, body.Data["total"])
}

func TestHandler_ListPropsParsesQuery(t *testing.T) {
	t.Parallel()

	props := &stubPropBoard{}
	router := newTestRouter(&stubOddsBoard{}, props)

	rec, body := serve(t, router, "/v1/props?sports=nba,%20nfl,&threshold=60")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"nba", "nfl"}, props.lastQuery.Sports)
	assert.Equal(t, 60.0, props.lastQuery.Threshold)
	assert.EqualValues(t, 60, body.Data["threshold"])

	rec, _ = serve(t, router, "/v1/props?sports=mma")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 55.0, props.lastQuery.Threshold)
}

func TestHandler_ListPropsRejectsBadQuery(t *testing.T) {
	t.Parallel()

	router := newTestRouter(&stubOddsBoard{}, &stubPropBoard{})

	testCases := []string{
		"/v1/props",
		"/v1/props?sports=nba&threshold=abc",
		"/v1/props?sports=nba&threshold=150",
	}
	for _, target := range testCases {
		rec, body := serve(t, router, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.Equal(t, "INVALID_ARGUMENT", body.Error["status"], target)
	}
}
