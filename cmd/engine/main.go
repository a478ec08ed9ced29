package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"football-betting-engine/internal/alerts"
	"football-betting-engine/internal/config"
	"football-betting-engine/internal/engine"
	"football-betting-engine/internal/metrics"
	"football-betting-engine/internal/publisher"
	"football-betting-engine/internal/server"
	"football-betting-engine/internal/store"
)

func main() {
	cfg := config.Load()
	slog.SetDefault(config.Logger(cfg, os.Stdout))

	if err := config.Validate(cfg); err != nil {
		slog.Error("Invalid configuration", "err", err)
		os.Exit(1)
	}

	tables, err := config.LoadTables(cfg.TablesPath)
	if err != nil {
		slog.Error("Invalid model tables", "path", cfg.TablesPath, "err", err)
		os.Exit(1)
	}

	// Store and history stay nil interfaces when the database is unavailable.
	var (
		st      engine.Store
		history server.History
	)
	db, err := store.Open(cfg.DBDriver, cfg.DBPath)
	if err != nil {
		slog.Warn("DB disabled", "driver", cfg.DBDriver, "err", err)
	} else {
		defer db.Close()
		st, history = db, db
	}

	var pub engine.Publisher
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			slog.Warn("Redis unreachable, publishing anyway", "addr", cfg.RedisAddr, "err", err)
		}
		cancel()
		pub = publisher.NewStreamPublisher(rdb, cfg.RedisStream, cfg.PublishRatePerSec)
	}

	m := metrics.NewEngineMetrics()
	notifier := alerts.NewNotifier(cfg.AlertMinConfidence, cfg.AlertCooldown)
	eng := engine.New(cfg, tables, notifier, st, pub, m)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      server.New(eng, history, m.Registry(), cfg.CORSOrigins).Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go eng.RunMaintenance(ctx)

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("Engine started",
			"port", cfg.Port,
			"mode", eng.Mode(),
			"workers", cfg.Workers,
			"db", history != nil,
			"publishing", config.FormatPublishing(cfg),
			"alert_min_confidence", cfg.AlertMinConfidence)
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "err", err)
			os.Exit(1)
		}

	case sig := <-shutdown:
		slog.Info("Shutting down", "signal", sig.String())
		cancel()

		shutdownCtx, stop := context.WithTimeout(context.Background(), config.DefaultShutdownTimeout)
		defer stop()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Graceful shutdown failed", "err", err)
			if err := srv.Close(); err != nil {
				slog.Error("Could not stop server", "err", err)
			}
		}
	}
	slog.Info("Engine stopped")
}
