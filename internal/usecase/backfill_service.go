package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/riskibarqy/fight-ledger/internal/domain/bout"
	"github.com/riskibarqy/fight-ledger/internal/domain/fighter"
	"github.com/riskibarqy/fight-ledger/internal/domain/window"
	"github.com/riskibarqy/fight-ledger/internal/platform/logging"
	"github.com/riskibarqy/fight-ledger/internal/platform/pacing"
)

type BackfillConfig struct {
	Delays     pacing.Delays
	Precedence bout.Precedence
}

// BackfillService walks weekly windows of past years and ingests every
// completed event it finds. It runs strictly one call at a time.
type BackfillService struct {
	provider   EventProvider
	ingestion  *IngestionService
	waiter     pacing.Waiter
	delays     pacing.Delays
	precedence bout.Precedence
	logger     *logging.Logger
	newRunID   func() string
}

type WindowReport struct {
	Start     time.Time `json:"start"`
	Listed    int       `json:"listed"`
	Completed int       `json:"completed"`
	Upserted  int       `json:"upserted"`
	Failed    bool      `json:"failed"`
}

type YearReport struct {
	Year          int            `json:"year"`
	Windows       []WindowReport `json:"windows"`
	Upserted      int            `json:"upserted"`
	FailedWindows int            `json:"failed_windows"`
}

type BackfillReport struct {
	RunID         string       `json:"run_id"`
	Years         []YearReport `json:"years"`
	Upserted      int          `json:"upserted"`
	FailedWindows int          `json:"failed_windows"`
}

func NewBackfillService(
	provider EventProvider,
	ingestion *IngestionService,
	waiter pacing.Waiter,
	cfg BackfillConfig,
	logger *logging.Logger,
) *BackfillService {
	if logger == nil {
		logger = logging.Default()
	}
	if waiter == nil {
		waiter = pacing.NewGate()
	}
	precedence := cfg.Precedence
	if precedence == "" {
		precedence = bout.PrecedenceLastMatch
	}
	return &BackfillService{
		provider:   provider,
		ingestion:  ingestion,
		waiter:     waiter,
		delays:     cfg.Delays,
		precedence: precedence,
		logger:     logger.Named("backfill"),
		newRunID:   uuid.NewString,
	}
}

// RunYears backfills each year in order. On cancellation it returns what was
// done so far together with the context error.
func (s *BackfillService) RunYears(ctx context.Context, years []int) (BackfillReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BackfillService.RunYears")
	defer span.End()

	report := BackfillReport{RunID: s.newRunID(), Years: make([]YearReport, 0, len(years))}
	logger := s.logger.With("run_id", report.RunID)
	logger.InfoContext(ctx, "backfill started", "years", years)

	for idx, year := range years {
		if idx > 0 {
			if err := s.waiter.Wait(ctx, s.delays.Year); err != nil {
				return report, err
			}
		}

		yearReport, err := s.runYear(ctx, logger, year)
		report.Years = append(report.Years, yearReport)
		report.Upserted += yearReport.Upserted
		report.FailedWindows += yearReport.FailedWindows
		logger.InfoContext(ctx, "year complete",
			"year", year,
			"year_upserted", yearReport.Upserted,
			"failed_windows", yearReport.FailedWindows,
			"running_total", report.Upserted,
		)
		if err != nil {
			return report, err
		}
	}

	logger.InfoContext(ctx, "backfill finished", "total_upserted", report.Upserted, "failed_windows", report.FailedWindows)
	return report, nil
}

func (s *BackfillService) RunYear(ctx context.Context, year int) (YearReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BackfillService.RunYear")
	defer span.End()

	return s.runYear(ctx, s.logger, year)
}

func (s *BackfillService) runYear(ctx context.Context, logger *logging.Logger, year int) (YearReport, error) {
	seq := window.Weekly(year)
	report := YearReport{Year: year, Windows: make([]WindowReport, 0, seq.Len())}

	first := true
	for start := range seq.All() {
		if !first {
			if err := s.waiter.Wait(ctx, s.delays.List); err != nil {
				return report, err
			}
		}
		first = false

		windowReport := s.runWindow(ctx, logger, start)
		if err := ctx.Err(); err != nil {
			// keep what the interrupted window already wrote
			if windowReport.Upserted > 0 {
				report.Windows = append(report.Windows, windowReport)
				report.Upserted += windowReport.Upserted
			}
			return report, err
		}
		report.Windows = append(report.Windows, windowReport)
		report.Upserted += windowReport.Upserted
		if windowReport.Failed {
			report.FailedWindows++
		}
	}
	return report, nil
}

func (s *BackfillService) runWindow(ctx context.Context, logger *logging.Logger, start time.Time) WindowReport {
	report := WindowReport{Start: start}
	date := start.Format("20060102")

	events, err := s.provider.ListEventsForDate(ctx, start)
	if err != nil {
		report.Failed = true
		if ctx.Err() == nil {
			logger.WarnContext(ctx, "list events failed, skipping window", "date", date, "error", err)
		}
		return report
	}
	report.Listed = len(events)

	for _, item := range events {
		if !item.Completed {
			continue
		}
		if report.Completed > 0 {
			if err := s.waiter.Wait(ctx, s.delays.Detail); err != nil {
				return report
			}
		}
		report.Completed++
		if s.ingestEvent(ctx, logger, item) {
			report.Upserted++
		}
	}

	logger.DebugContext(ctx, "window processed",
		"date", date,
		"listed", report.Listed,
		"completed", report.Completed,
		"upserted", report.Upserted,
	)
	return report
}

// ingestEvent reports true when both the event and its outcome were saved.
func (s *BackfillService) ingestEvent(ctx context.Context, logger *logging.Logger, item ExternalEvent) bool {
	detail, ok, err := s.provider.FetchEventDetail(ctx, item.ID)
	if err != nil {
		if ctx.Err() == nil {
			logger.WarnContext(ctx, "fetch event detail failed, skipping event", "event_id", item.ID, "error", err)
		}
		return false
	}
	if !ok {
		logger.DebugContext(ctx, "event detail has no head-to-head competition", "event_id", item.ID)
		return false
	}

	a, b := detail.Competitors[0], detail.Competitors[1]
	for _, c := range []ExternalCompetitor{a, b} {
		s.ingestion.UpsertFighter(ctx, fighter.Fighter{
			ID:          c.ID,
			DisplayName: c.DisplayName,
			Nickname:    c.Nickname,
			Country:     c.Country,
		})
	}

	name := item.Name
	if name == "" {
		name = detail.Name
	}
	eventSaved := s.ingestion.UpsertEvent(ctx, bout.Event{
		ID:      item.ID,
		Name:    name,
		Date:    item.Date,
		Venue:   item.Venue,
		City:    item.City,
		Country: item.Country,
	})

	outcome := bout.BuildOutcome(
		item.ID,
		name,
		bout.Competitor{ID: a.ID, Winner: a.Winner},
		bout.Competitor{ID: b.ID, Winner: b.Winner},
		detail.Notes,
		s.precedence,
	)
	outcome.IsTitleFight = outcome.IsTitleFight || bout.IsTitleFight(detail.Name)
	outcomeSaved := s.ingestion.UpsertOutcome(ctx, outcome)

	for _, box := range detail.Boxscore {
		s.ingestion.UpsertFighterStat(ctx, bout.BuildFighterStat(item.ID, box.FighterID, box.Statistics))
	}

	return eventSaved && outcomeSaved
}
