package observability

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/fight-ledger/internal/config"
	"github.com/riskibarqy/fight-ledger/internal/platform/logging"
)

type shippedRequests struct {
	mu     sync.Mutex
	bodies []string
	auth   string
}

func (s *shippedRequests) server(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		s.mu.Lock()
		s.bodies = append(s.bodies, string(body))
		s.auth = r.Header.Get("Authorization")
		s.mu.Unlock()
		w.WriteHeader(http.StatusAccepted)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestInitBetterStackLogger_ShipsErrorBatch(t *testing.T) {
	t.Parallel()

	var got shippedRequests
	server := got.server(t)

	cfg := config.Config{
		BetterStackEnabled:  true,
		BetterStackEndpoint: server.URL,
		BetterStackToken:    "secret-token",
		BetterStackTimeout:  2 * time.Second,
		BetterStackMinLevel: logging.LevelError,
		ServiceName:         "fight-ledger",
		AppEnv:              config.EnvDev,
	}

	logger, shutdown, err := InitBetterStackLogger(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("init betterstack logger: %v", err)
	}

	logger.ErrorContext(context.Background(), "upsert record failed", "collection", "outcomes")
	logger.ErrorContext(context.Background(), "list events failed", "date", "20230107")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		t.Fatalf("shutdown logger: %v", err)
	}

	got.mu.Lock()
	defer got.mu.Unlock()
	if len(got.bodies) == 0 {
		t.Fatalf("expected Better Stack endpoint to receive a batch")
	}
	all := strings.Join(got.bodies, "\n")
	if !strings.Contains(all, "upsert record failed") || !strings.Contains(all, "list events failed") {
		t.Fatalf("unexpected shipped body: %s", all)
	}
	if !strings.Contains(all, `"service":"fight-ledger"`) {
		t.Fatalf("expected service field in shipped body: %s", all)
	}
	if got.auth != "Bearer secret-token" {
		t.Fatalf("unexpected authorization header: %q", got.auth)
	}
}

func TestInitBetterStackLogger_RespectsMinLevel(t *testing.T) {
	t.Parallel()

	var got shippedRequests
	server := got.server(t)

	cfg := config.Config{
		BetterStackEnabled:  true,
		BetterStackEndpoint: server.URL,
		BetterStackTimeout:  2 * time.Second,
		BetterStackMinLevel: logging.LevelError,
		ServiceName:         "fight-ledger",
		AppEnv:              config.EnvDev,
	}

	logger, shutdown, err := InitBetterStackLogger(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("init betterstack logger: %v", err)
	}

	logger.InfoContext(context.Background(), "backfill year finished")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		t.Fatalf("shutdown logger: %v", err)
	}

	got.mu.Lock()
	defer got.mu.Unlock()
	if len(got.bodies) != 0 {
		t.Fatalf("expected no request for info log, got %d", len(got.bodies))
	}
}

func TestNormalizeBetterStackEndpoint(t *testing.T) {
	t.Parallel()

	if got := normalizeBetterStackEndpoint(" in.logs.betterstack.com "); got != "https://in.logs.betterstack.com" {
		t.Fatalf("unexpected endpoint: %q", got)
	}
	if got := normalizeBetterStackEndpoint("http://localhost:9000"); got != "http://localhost:9000" {
		t.Fatalf("unexpected endpoint: %q", got)
	}
}
