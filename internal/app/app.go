package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/riskibarqy/fight-ledger/internal/config"
	"github.com/riskibarqy/fight-ledger/internal/domain/prop"
	"github.com/riskibarqy/fight-ledger/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/fight-ledger/internal/infrastructure/repository/redis"
	"github.com/riskibarqy/fight-ledger/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/fight-ledger/internal/platform/cache"
	"github.com/riskibarqy/fight-ledger/internal/platform/logging"
	"github.com/riskibarqy/fight-ledger/internal/usecase"
)

// NewHTTPServer wires the read API over the Redis odds and props cache.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	client, err := redis.NewClient(ctx, redis.Config{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		return nil, nil, err
	}
	var source cache.BoardReader = redis.NewBoardCache(client)
	if cfg.BoardCacheTTL > 0 {
		source = cache.NewBoardSource(source, basecache.NewStore(cfg.BoardCacheTTL))
	}

	oddsSvc := usecase.NewOddsBoardService(source, cfg.BoardWorkers, logger)
	propSvc := usecase.NewPropBoardService(source, prop.DefaultTaxonomies, cfg.BoardWorkers, logger)

	handler := httpapi.NewHandler(oddsSvc, propSvc, cfg.PropThreshold, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return server, client.Close, nil
}
