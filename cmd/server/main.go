package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/exp/slog"

	"hospitalsched/internal/app/server/api"
	"hospitalsched/internal/app/server/config"
	"hospitalsched/internal/domain/schedule"
	"hospitalsched/internal/infrastructure/broadcast"
	"hospitalsched/internal/infrastructure/storage/memory"
	"hospitalsched/internal/infrastructure/storage/postgres"
	"hospitalsched/internal/utils/logger"
)

func main() {
	cfg := config.MustLoad()
	log := logger.New(cfg.Env)

	log.Info("starting hospital scheduling server", slog.String("env", cfg.Env))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		repo schedule.Repository
		pg   *postgres.Storage
	)
	if cfg.UsesPostgres() {
		storage, err := postgres.New(ctx, cfg.DB)
		if err != nil {
			log.Error("failed to init storage", "error", err)
			os.Exit(1)
		}
		defer storage.Close()

		pg = storage
		repo = postgres.NewScheduleRepository(storage, log)
		log.Info("using postgres storage")
	} else {
		repo = memory.NewScheduleRepository(log)
		log.Info("using in-memory storage, authentication disabled")
	}

	hub := broadcast.NewHub(cfg.Broadcast.Buffer, log)
	defer hub.Close()

	service := schedule.NewService(repo, hub, log)

	go schedule.NewGenerator(service, cfg.AutoGen.Interval, log).Run(ctx)

	router := api.New(api.Deps{
		Schedules: service,
		Hub:       hub,
		Postgres:  pg,
		Log:       log,
	})

	srv := &http.Server{
		Addr:         cfg.Server.RunAddress,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("server started", slog.String("address", cfg.Server.RunAddress))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down server")

	// /ws держит соединения, закрываем хаб раньше, чтобы writePump вышли
	hub.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}

	log.Info("server stopped")
}
