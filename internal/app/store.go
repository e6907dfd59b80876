package app

import (
	"context"
	"fmt"

	"github.com/riskibarqy/fight-ledger/internal/config"
	"github.com/riskibarqy/fight-ledger/internal/domain/record"
	"github.com/riskibarqy/fight-ledger/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fight-ledger/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/fight-ledger/internal/infrastructure/repository/rest"
	"github.com/riskibarqy/fight-ledger/internal/platform/logging"
	"github.com/riskibarqy/fight-ledger/internal/platform/resilience"
)

// NewRecordStore builds the upserter selected by STORE_BACKEND. The returned
// close func is never nil.
func NewRecordStore(ctx context.Context, cfg config.Config, logger *logging.Logger) (record.Upserter, func() error, error) {
	noop := func() error { return nil }

	switch cfg.StoreBackend {
	case config.StoreBackendREST:
		retry := resilience.DefaultRetryPolicy()
		retry.MaxRetries = cfg.StoreMaxRetries
		retry.InitialDelay = cfg.StoreRetryBackoff

		client, err := rest.NewRecordClient(rest.ClientConfig{
			BaseURL:        cfg.StoreBaseURL,
			APIKey:         cfg.StoreAPIKey,
			Timeout:        cfg.StoreTimeout,
			Retry:          retry,
			CircuitBreaker: resilience.DefaultCircuitBreakerConfig(),
			Logger:         logger,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("create rest record store: %w", err)
		}
		return client, noop, nil
	case config.StoreBackendPostgres:
		db, err := OpenDB(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewRecordStore(db), db.Close, nil
	case config.StoreBackendMemory:
		logger.Warn("using in-memory record store; nothing will be persisted")
		return memory.NewRecordStore(), noop, nil
	default:
		return nil, nil, fmt.Errorf("unsupported store backend %q", cfg.StoreBackend)
	}
}
