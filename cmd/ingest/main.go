package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/riskibarqy/fight-ledger/internal/app"
	"github.com/riskibarqy/fight-ledger/internal/config"
	"github.com/riskibarqy/fight-ledger/internal/platform/logging"
)

func main() {
	os.Exit(run())
}

// run backfills the configured years. A cancelled run still reports what was
// stored so far and exits cleanly.
func run() int {
	cfg, err := config.Load()
	if err != nil {
		logging.NewJSON(logging.LevelInfo).Error("load config", "error", err)
		return 1
	}

	logger, shutdownObservability, err := app.SetupObservability(cfg)
	if err != nil {
		logging.NewJSON(cfg.LogLevel).Error("setup observability", "error", err)
		return 1
	}
	defer shutdownObservability()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc, closeStore, err := app.NewBackfillService(ctx, cfg, logger)
	if err != nil {
		logger.Error("build backfill", "error", err)
		return 1
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Warn("close record store", "error", err)
		}
	}()

	report, err := svc.RunYears(ctx, cfg.IngestYears)
	switch {
	case err == nil:
		logger.Info("ingest complete",
			"run_id", report.RunID,
			"years", len(report.Years),
			"total_upserted", report.Upserted,
			"failed_windows", report.FailedWindows,
		)
	case errors.Is(err, context.Canceled):
		logger.Warn("ingest interrupted",
			"run_id", report.RunID,
			"years_started", len(report.Years),
			"total_upserted", report.Upserted,
			"failed_windows", report.FailedWindows,
		)
	default:
		logger.Error("ingest failed", "run_id", report.RunID, "total_upserted", report.Upserted, "error", err)
		return 1
	}
	return 0
}
