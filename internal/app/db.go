package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/fight-ledger/internal/config"
)

// OpenDB opens a traced Postgres pool and checks it answers.
func OpenDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.ServiceName)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

const maxTracedQueryLength = 512

// formatDBQueryForTrace collapses whitespace and drops the DO UPDATE SET
// list of upserts, which repeats every column and carries no extra signal.
func formatDBQueryForTrace(query string) string {
	query = strings.Join(strings.Fields(query), " ")
	if idx := strings.Index(query, " DO UPDATE SET "); idx >= 0 {
		query = query[:idx] + " DO UPDATE"
	}
	if len(query) > maxTracedQueryLength {
		query = query[:maxTracedQueryLength] + "..."
	}
	return query
}
