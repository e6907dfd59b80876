package app

import (
	"context"
	"fmt"

	"github.com/riskibarqy/fight-ledger/external/espn"
	"github.com/riskibarqy/fight-ledger/internal/config"
	"github.com/riskibarqy/fight-ledger/internal/platform/logging"
	"github.com/riskibarqy/fight-ledger/internal/platform/pacing"
	"github.com/riskibarqy/fight-ledger/internal/platform/resilience"
	"github.com/riskibarqy/fight-ledger/internal/usecase"
)

// NewBackfillService wires the ESPN client, the configured record store and
// the pacing gate into a ready backfill run.
func NewBackfillService(ctx context.Context, cfg config.Config, logger *logging.Logger) (*usecase.BackfillService, func() error, error) {
	store, closeStore, err := NewRecordStore(ctx, cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("create record store: %w", err)
	}

	provider := espn.NewClient(espn.ClientConfig{
		BaseURL:    cfg.ESPNBaseURL,
		UserAgent:  cfg.ESPNUserAgent,
		Timeout:    cfg.ESPNTimeout,
		MaxRetries: cfg.ESPNMaxRetries,
		RetryDelay: cfg.ESPNRetryDelay,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.ESPNCircuitEnabled,
			FailureThreshold: cfg.ESPNCircuitFailureCount,
			OpenTimeout:      cfg.ESPNCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.ESPNCircuitHalfOpenMaxReq,
		},
	})

	svc := usecase.NewBackfillService(
		provider,
		usecase.NewIngestionService(store, logger),
		pacing.NewGate(),
		usecase.BackfillConfig{
			Delays: pacing.Delays{
				Detail: cfg.IngestDetailDelay,
				List:   cfg.IngestListDelay,
				Year:   cfg.IngestYearDelay,
			},
			Precedence: cfg.OutcomePrecedence,
		},
		logger,
	)
	return svc, closeStore, nil
}
