// Command prune-presence removes presence pings older than the configured
// retention. The server runs the same purge on a schedule; this binary is
// for deployments that prefer an external cron job.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/stockcheck-backend/internal/adapter/postgres"
	"github.com/heartmarshall/stockcheck-backend/internal/adapter/postgres/presence"
	"github.com/heartmarshall/stockcheck-backend/internal/app"
	"github.com/heartmarshall/stockcheck-backend/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	deleted, err := app.PurgePresence(ctx, presence.New(pool), cfg.Presence.Retention, time.Now())
	if err != nil {
		logger.Error("presence purge failed",
			slog.String("error", err.Error()),
			slog.Duration("retention", cfg.Presence.Retention),
		)
		os.Exit(1)
	}

	logger.Info("presence purge completed",
		slog.Int64("deleted", deleted),
		slog.Duration("retention", cfg.Presence.Retention),
	)
}
