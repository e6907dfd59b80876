package postgres

import (
	"database/sql"
	"time"
)

type fighterTableModel struct {
	ID          string         `db:"id"`
	DisplayName string         `db:"display_name"`
	Nickname    sql.NullString `db:"nickname"`
	Country     sql.NullString `db:"country"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

type eventTableModel struct {
	ID        string         `db:"id"`
	Name      string         `db:"name"`
	EventDate sql.NullTime   `db:"event_date"`
	Venue     sql.NullString `db:"venue"`
	City      sql.NullString `db:"city"`
	Country   sql.NullString `db:"country"`
	UpdatedAt time.Time      `db:"updated_at"`
}

type outcomeTableModel struct {
	EventID       string         `db:"event_id"`
	FighterAID    string         `db:"fighter_a_id"`
	FighterBID    string         `db:"fighter_b_id"`
	WinnerID      sql.NullString `db:"winner_id"`
	Method        string         `db:"method"`
	RoundFinished int            `db:"round_finished"`
	TimeFinished  string         `db:"time_finished"`
	IsTitleFight  bool           `db:"is_title_fight"`
	BoutOrder     int            `db:"bout_order"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

type fighterStatTableModel struct {
	EventID               string    `db:"event_id"`
	FighterID             string    `db:"fighter_id"`
	SigStrikesLanded      int       `db:"sig_strikes_landed"`
	SigStrikesAttempted   int       `db:"sig_strikes_attempted"`
	TotalStrikesLanded    int       `db:"total_strikes_landed"`
	TotalStrikesAttempted int       `db:"total_strikes_attempted"`
	TakedownsLanded       int       `db:"takedowns_landed"`
	TakedownsAttempted    int       `db:"takedowns_attempted"`
	SubmissionAttempts    int       `db:"submission_attempts"`
	Knockdowns            int       `db:"knockdowns"`
	ControlTimeSeconds    int       `db:"control_time_seconds"`
	UpdatedAt             time.Time `db:"updated_at"`
}
