package usecase

import (
	"context"
	"time"

	"github.com/riskibarqy/fight-ledger/internal/domain/bout"
)

// EventProvider is the upstream results feed the backfill crawls.
type EventProvider interface {
	// ListEventsForDate returns the events scheduled on day. An upstream
	// payload without events yields an empty slice, not an error.
	ListEventsForDate(ctx context.Context, day time.Time) ([]ExternalEvent, error)
	// FetchEventDetail returns ok=false when the payload has no usable
	// head-to-head competition.
	FetchEventDetail(ctx context.Context, eventID string) (ExternalEventDetail, bool, error)
}

type ExternalEvent struct {
	ID        string
	Name      string
	Date      *time.Time
	Completed bool
	Venue     string
	City      string
	Country   string
}

type ExternalEventDetail struct {
	EventID string
	Name    string
	// Competitors holds at least two entries; the first two are the bout.
	Competitors []ExternalCompetitor
	Notes       []string
	Boxscore    []ExternalFighterBoxscore
}

type ExternalCompetitor struct {
	ID          string
	DisplayName string
	Nickname    string
	Country     string
	Winner      bool
}

type ExternalFighterBoxscore struct {
	FighterID  string
	Statistics []bout.StatLine
}
