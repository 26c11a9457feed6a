package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/stockcheck-backend/internal/adapter/postgres"
	presencerepo "github.com/heartmarshall/stockcheck-backend/internal/adapter/postgres/presence"
	"github.com/heartmarshall/stockcheck-backend/internal/adapter/redisbus"
	"github.com/heartmarshall/stockcheck-backend/internal/config"
	"github.com/heartmarshall/stockcheck-backend/internal/notify"
	"github.com/heartmarshall/stockcheck-backend/internal/transport/rest"
)

// Run is the application entry point. It wires storage, services and the
// HTTP server, then blocks until ctx is cancelled and shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	hub := notify.NewHub(logger, cfg.Notify.Buffer)

	g, gctx := errgroup.WithContext(ctx)

	var extra []rest.HealthComponent

	if cfg.Redis.RedisEnabled() {
		client, err := redisbus.NewClient(ctx, cfg.Redis.URL)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer func() { _ = client.Close() }()

		bus := redisbus.New(client, cfg.Redis.Channel, logger)
		hub.SetForwarder(bus)
		g.Go(func() error {
			if err := bus.Run(gctx, hub); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("redis bus: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			return hub.RunForwarding(gctx)
		})
		extra = append(extra, rest.HealthComponent{Name: "redis", Pinger: bus, Optional: true})
		logger.Info("redis fan-out enabled", slog.String("channel", cfg.Redis.Channel))
	}

	api := NewServer(cfg, pool, hub, logger, extra...)
	defer api.Close()

	sched, err := NewScheduler(cfg.Presence.PurgeSchedule, presencerepo.New(pool), cfg.Presence.Retention, logger)
	if err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      api.Handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		// Streams are hijacked connections that Shutdown does not track.
		hub.Shutdown()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped with error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("server stopped")
	return nil
}
