package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"thanksledger/internal/api"
	"thanksledger/internal/config"
	"thanksledger/internal/db"
	"thanksledger/internal/logger"
	"thanksledger/internal/metrics"
	"thanksledger/internal/repository/postgres"
	"thanksledger/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.New(ctx, cfg)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if os.Getenv("APP_MIGRATE") == "true" {
		if err := db.RunMigrations(ctx, pool.Pool); err != nil {
			log.Error("migrations", "err", err)
			os.Exit(1)
		}
	}

	accounts := postgres.NewAccounts(pool)
	ledger := services.NewLedgerService(accounts, cfg.ThanksAmount)

	metrics.Init()
	metrics.RegisterPoolStats(pool.Pool)
	r := api.NewRouter(cfg, ledger)

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "addr", srv.Addr, "thanks_amount", cfg.ThanksAmount)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
