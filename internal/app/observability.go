package app

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/fight-ledger/internal/config"
	"github.com/riskibarqy/fight-ledger/internal/observability"
	"github.com/riskibarqy/fight-ledger/internal/platform/logging"
)

const observabilityShutdownTimeout = 5 * time.Second

// SetupObservability builds the process logger and starts the optional
// tracing, profiling and log shipping integrations. The returned func
// stops them in reverse order.
func SetupObservability(cfg config.Config) (*logging.Logger, func(), error) {
	base := logging.NewJSON(cfg.LogLevel).With("service", cfg.ServiceName, "environment", cfg.AppEnv)

	logger, closeShipper, err := observability.InitBetterStackLogger(cfg, base)
	if err != nil {
		return nil, nil, fmt.Errorf("init betterstack: %w", err)
	}
	logging.SetDefault(logger)

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		_ = closeShipper(context.Background())
		return nil, nil, fmt.Errorf("init uptrace: %w", err)
	}

	stopProfiler, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		logger.Warn("pyroscope unavailable", "error", err)
		stopProfiler = func() error { return nil }
	}

	pprofServer, err := observability.StartPprofServer(cfg, logger)
	if err != nil {
		logger.Warn("pprof unavailable", "error", err)
	}

	shutdown := func() {
		ctx, cancel := context.WithTimeout(context.Background(), observabilityShutdownTimeout)
		defer cancel()

		if err := pprofServer.Stop(observabilityShutdownTimeout); err != nil {
			logger.Warn("stop pprof server", "error", err)
		}
		if err := stopProfiler(); err != nil {
			logger.Warn("stop pyroscope", "error", err)
		}
		if err := shutdownTracing(ctx); err != nil {
			logger.Warn("shutdown uptrace", "error", err)
		}
		if err := closeShipper(ctx); err != nil {
			base.Warn("close betterstack shipper", "error", err)
		}
		_ = base.Sync()
	}
	return logger, shutdown, nil
}
