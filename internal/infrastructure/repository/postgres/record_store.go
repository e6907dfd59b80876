package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/fight-ledger/internal/domain/bout"
	"github.com/riskibarqy/fight-ledger/internal/domain/fighter"
	"github.com/riskibarqy/fight-ledger/internal/domain/record"
	qb "github.com/riskibarqy/fight-ledger/internal/platform/querybuilder"
)

// RecordStore upserts ingestion records straight into Postgres.
type RecordStore struct {
	db  *sqlx.DB
	now func() time.Time
}

var _ record.Upserter = (*RecordStore)(nil)

func NewRecordStore(db *sqlx.DB) *RecordStore {
	return &RecordStore{db: db, now: time.Now}
}

func (s *RecordStore) Upsert(ctx context.Context, collection record.Collection, rec any) error {
	query, args, err := buildUpsert(collection, rec, s.now().UTC())
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert %s: %w", collection, err)
	}
	return nil
}

func buildUpsert(collection record.Collection, rec any, now time.Time) (string, []any, error) {
	model, keepOnNull, err := toTableModel(collection, rec, now)
	if err != nil {
		return "", nil, err
	}
	cols, vals, err := qb.ModelValues(model)
	if err != nil {
		return "", nil, fmt.Errorf("read %s model: %w", collection, err)
	}

	query, args, err := qb.InsertInto(collection.String()).
		Columns(cols...).
		Values(vals...).
		OnConflictMerge(collection.ConflictKeys()...).
		KeepExistingWhenNull(keepOnNull...).
		ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("build upsert %s query: %w", collection, err)
	}
	return query, args, nil
}

// toTableModel also names the optional columns an empty sighting must not
// wipe out.
func toTableModel(collection record.Collection, rec any, now time.Time) (any, []string, error) {
	if _, err := record.Identity(collection, rec); err != nil {
		return nil, nil, err
	}

	switch v := rec.(type) {
	case fighter.Fighter:
		return fighterTableModel{
			ID:          v.ID,
			DisplayName: v.DisplayName,
			Nickname:    nullString(v.Nickname),
			Country:     nullString(v.Country),
			UpdatedAt:   now,
		}, []string{"nickname", "country"}, nil
	case bout.Event:
		return eventTableModel{
			ID:        v.ID,
			Name:      v.Name,
			EventDate: nullTime(v.Date),
			Venue:     nullString(v.Venue),
			City:      nullString(v.City),
			Country:   nullString(v.Country),
			UpdatedAt: now,
		}, []string{"event_date", "venue", "city", "country"}, nil
	case bout.Outcome:
		row := outcomeTableModel{
			EventID:       v.EventID,
			FighterAID:    v.FighterAID,
			FighterBID:    v.FighterBID,
			Method:        string(v.Method),
			RoundFinished: v.RoundFinished,
			TimeFinished:  v.TimeFinished,
			IsTitleFight:  v.IsTitleFight,
			BoutOrder:     v.Order,
			UpdatedAt:     now,
		}
		if v.WinnerID != nil {
			row.WinnerID = nullString(*v.WinnerID)
		}
		return row, nil, nil
	case bout.FighterStat:
		return fighterStatTableModel{
			EventID:               v.EventID,
			FighterID:             v.FighterID,
			SigStrikesLanded:      v.SigStrikesLanded,
			SigStrikesAttempted:   v.SigStrikesAttempted,
			TotalStrikesLanded:    v.TotalStrikesLanded,
			TotalStrikesAttempted: v.TotalStrikesAttempted,
			TakedownsLanded:       v.TakedownsLanded,
			TakedownsAttempted:    v.TakedownsAttempted,
			SubmissionAttempts:    v.SubmissionAttempts,
			Knockdowns:            v.Knockdowns,
			ControlTimeSeconds:    v.ControlTimeSeconds,
			UpdatedAt:             now,
		}, nil, nil
	default:
		return nil, nil, fmt.Errorf("unsupported record type %T", rec)
	}
}

func nullString(value string) sql.NullString {
	value = strings.TrimSpace(value)
	return sql.NullString{String: value, Valid: value != ""}
}

func nullTime(value *time.Time) sql.NullTime {
	if value == nil || value.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *value, Valid: true}
}
