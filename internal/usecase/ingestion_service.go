package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/fight-ledger/internal/domain/bout"
	"github.com/riskibarqy/fight-ledger/internal/domain/fighter"
	"github.com/riskibarqy/fight-ledger/internal/domain/record"
	"github.com/riskibarqy/fight-ledger/internal/platform/logging"
)

// IngestionService validates records and hands them to the store. Every
// write reports success as a bool; failures are logged and never abort the
// caller's batch.
type IngestionService struct {
	store     record.Upserter
	validator *validator.Validate
	logger    *logging.Logger
}

func NewIngestionService(store record.Upserter, logger *logging.Logger) *IngestionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &IngestionService{
		store:     store,
		validator: validator.New(),
		logger:    logger.Named("ingestion"),
	}
}

func (s *IngestionService) UpsertFighter(ctx context.Context, item fighter.Fighter) bool {
	item.ID = strings.TrimSpace(item.ID)
	item.DisplayName = strings.TrimSpace(item.DisplayName)
	return s.upsert(ctx, record.Fighters, item.ID, item)
}

func (s *IngestionService) UpsertEvent(ctx context.Context, item bout.Event) bool {
	item.ID = strings.TrimSpace(item.ID)
	item.Name = strings.TrimSpace(item.Name)
	return s.upsert(ctx, record.Events, item.ID, item)
}

func (s *IngestionService) UpsertOutcome(ctx context.Context, item bout.Outcome) bool {
	if err := item.CheckWinner(); err != nil {
		s.logger.WarnContext(ctx, "reject outcome", "collection", record.Outcomes, "key", item.EventID, "error", err)
		return false
	}
	return s.upsert(ctx, record.Outcomes, item.EventID, item)
}

func (s *IngestionService) UpsertFighterStat(ctx context.Context, item bout.FighterStat) bool {
	return s.upsert(ctx, record.FighterStats, item.EventID+":"+item.FighterID, item)
}

func (s *IngestionService) upsert(ctx context.Context, collection record.Collection, key string, item any) bool {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.Upsert."+collection.String())
	defer span.End()

	if err := s.validator.StructCtx(ctx, item); err != nil {
		s.logger.WarnContext(ctx, "reject invalid record",
			"collection", collection,
			"key", key,
			"error", fmt.Errorf("%w: %v", ErrInvalidInput, err),
		)
		return false
	}
	if err := s.store.Upsert(ctx, collection, item); err != nil {
		s.logger.ErrorContext(ctx, "upsert record failed", "collection", collection, "key", key, "error", err)
		return false
	}
	return true
}
