package bout

import (
	"errors"
	"fmt"
	"time"
)

// Method is how a bout was decided.
type Method string

const (
	MethodKO         Method = "KO"
	MethodTKO        Method = "TKO"
	MethodSubmission Method = "Submission"
	MethodDecision   Method = "Decision"
)

// Defaults applied when notes carry no usable annotation.
const (
	DefaultMethod        = MethodDecision
	DefaultRoundFinished = 3
	DefaultTimeFinished  = "5:00"
)

var ErrWinnerNotInBout = errors.New("winner is not one of the bout participants")

// Event is one card entry keyed by the upstream event id.
type Event struct {
	ID      string     `json:"id" validate:"required"`
	Name    string     `json:"name" validate:"required"`
	Date    *time.Time `json:"date,omitempty"`
	Venue   string     `json:"venue,omitempty"`
	City    string     `json:"city,omitempty"`
	Country string     `json:"country,omitempty"`
}

// Outcome is the result of the head-to-head bout behind an event.
type Outcome struct {
	EventID       string  `json:"event_id" validate:"required"`
	FighterAID    string  `json:"fighter_a_id" validate:"required"`
	FighterBID    string  `json:"fighter_b_id" validate:"required,nefield=FighterAID"`
	WinnerID      *string `json:"winner_id"`
	Method        Method  `json:"method" validate:"required,oneof=KO TKO Submission Decision"`
	RoundFinished int     `json:"round_finished" validate:"gte=1"`
	TimeFinished  string  `json:"time_finished" validate:"required"`
	IsTitleFight  bool    `json:"is_title_fight"`
	Order         int     `json:"order"`
}

// CheckWinner enforces that a set winner is one of the two participants.
func (o Outcome) CheckWinner() error {
	if o.WinnerID == nil {
		return nil
	}
	if *o.WinnerID != o.FighterAID && *o.WinnerID != o.FighterBID {
		return fmt.Errorf("%w: event=%s winner=%s", ErrWinnerNotInBout, o.EventID, *o.WinnerID)
	}
	return nil
}

// FighterStat holds per-bout counters for one fighter. Anything the upstream
// text does not yield stays 0.
type FighterStat struct {
	EventID               string `json:"event_id" validate:"required"`
	FighterID             string `json:"fighter_id" validate:"required"`
	SigStrikesLanded      int    `json:"sig_strikes_landed"`
	SigStrikesAttempted   int    `json:"sig_strikes_attempted"`
	TotalStrikesLanded    int    `json:"total_strikes_landed"`
	TotalStrikesAttempted int    `json:"total_strikes_attempted"`
	TakedownsLanded       int    `json:"takedowns_landed"`
	TakedownsAttempted    int    `json:"takedowns_attempted"`
	SubmissionAttempts    int    `json:"submission_attempts"`
	Knockdowns            int    `json:"knockdowns"`
	ControlTimeSeconds    int    `json:"control_time_seconds"`
}
