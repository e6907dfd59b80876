package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sourcegraph/conc/iter"

	"github.com/riskibarqy/fight-ledger/internal/domain/odds"
	"github.com/riskibarqy/fight-ledger/internal/platform/logging"
)

// OddsSource reads cached raw odds snapshots.
type OddsSource interface {
	ListEventIDs(ctx context.Context, sport string) ([]string, error)
	GetEventOdds(ctx context.Context, sport, eventID string) (odds.EventOdds, bool, error)
	GetEventOddsBatch(ctx context.Context, sport string, eventIDs []string) ([]odds.EventOdds, error)
}

// EventBoard is one event's canonical odds plus each side's line per book.
type EventBoard struct {
	EventID      string                       `json:"event_id"`
	Sport        string                       `json:"sport"`
	AwayTeam     string                       `json:"away_team"`
	HomeTeam     string                       `json:"home_team"`
	CommenceTime *time.Time                   `json:"commence_time,omitempty"`
	Board        odds.Board                   `json:"board"`
	Sides        map[odds.Book]odds.BookSides `json:"sides"`
	Warning      string                       `json:"warning,omitempty"`
}

type OddsBoardService struct {
	source        OddsSource
	logger        *logging.Logger
	maxGoroutines int
}

func NewOddsBoardService(source OddsSource, maxGoroutines int, logger *logging.Logger) *OddsBoardService {
	if logger == nil {
		logger = logging.Default()
	}
	if maxGoroutines <= 0 {
		maxGoroutines = 8
	}
	return &OddsBoardService{
		source:        source,
		logger:        logger.Named("odds-board"),
		maxGoroutines: maxGoroutines,
	}
}

func (s *OddsBoardService) EventBoard(ctx context.Context, sport, eventID string) (EventBoard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OddsBoardService.EventBoard")
	defer span.End()

	sport = strings.ToLower(strings.TrimSpace(sport))
	eventID = strings.TrimSpace(eventID)
	if sport == "" || eventID == "" {
		return EventBoard{}, fmt.Errorf("%w: sport and event id are required", ErrInvalidInput)
	}

	item, ok, err := s.source.GetEventOdds(ctx, sport, eventID)
	if err != nil {
		return EventBoard{}, fmt.Errorf("%w: %v", ErrDependencyUnavailable, err)
	}
	if !ok {
		return EventBoard{}, fmt.Errorf("%w: odds for %s/%s", ErrNotFound, sport, eventID)
	}
	return s.buildBoard(ctx, item), nil
}

// SportBoard builds the board of every cached event for sport, normalizing
// payloads concurrently. Output follows the sorted event id order.
func (s *OddsBoardService) SportBoard(ctx context.Context, sport string) ([]EventBoard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OddsBoardService.SportBoard")
	defer span.End()

	sport = strings.ToLower(strings.TrimSpace(sport))
	if sport == "" {
		return nil, fmt.Errorf("%w: sport is required", ErrInvalidInput)
	}

	ids, err := s.source.ListEventIDs(ctx, sport)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDependencyUnavailable, err)
	}
	items, err := s.source.GetEventOddsBatch(ctx, sport, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDependencyUnavailable, err)
	}

	mapper := iter.Mapper[odds.EventOdds, EventBoard]{MaxGoroutines: s.maxGoroutines}
	return mapper.Map(items, func(item *odds.EventOdds) EventBoard {
		return s.buildBoard(ctx, *item)
	}), nil
}

// buildBoard never fails: an unreadable payload yields an empty board with a
// warning.
func (s *OddsBoardService) buildBoard(ctx context.Context, item odds.EventOdds) EventBoard {
	out := EventBoard{
		EventID:  item.ID,
		Sport:    item.Sport,
		AwayTeam: item.Matchup.Away,
		HomeTeam: item.Matchup.Home,
	}
	if !item.CommenceTime.IsZero() {
		ts := item.CommenceTime
		out.CommenceTime = &ts
	}

	board, err := odds.NormalizeRaw(item.Raw)
	if err != nil {
		s.logger.WarnContext(ctx, "normalize cached odds failed", "sport", item.Sport, "event_id", item.ID, "error", err)
		out.Warning = "odds payload unreadable"
	}
	out.Board = board
	out.Sides = board.Sides(item.Matchup)
	return out
}
