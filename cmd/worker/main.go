package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fhuszti/music-catalog-ms-go/internal/config"
	"github.com/fhuszti/music-catalog-ms-go/internal/db"
	workerHandler "github.com/fhuszti/music-catalog-ms-go/internal/handler/worker"
	"github.com/fhuszti/music-catalog-ms-go/internal/logger"
	"github.com/fhuszti/music-catalog-ms-go/internal/port"
	"github.com/fhuszti/music-catalog-ms-go/internal/repository/mariadb"
	"github.com/fhuszti/music-catalog-ms-go/internal/storage"
	"github.com/fhuszti/music-catalog-ms-go/internal/task"
	musicSvc "github.com/fhuszti/music-catalog-ms-go/internal/usecase/music"
	"github.com/hibiken/asynq"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}
	if cfg.RedisAddr == "" {
		logger.Error(ctx, "⚠️  REDIS_ADDR must be set to run the worker")
		os.Exit(1)
	}
	log := logger.Init(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, AddSource: cfg.LogSource})

	database := initDb(ctx, cfg)
	strg := initStorage(ctx, cfg)

	repo := mariadb.NewMusicRepository(database.DB)
	sweepSvc := musicSvc.NewBlobSweeper(repo, strg, log)

	mux := asynq.NewServeMux()
	mux.HandleFunc(task.TypeSweepBlob, func(ctx context.Context, t *asynq.Task) error {
		p, err := task.ParseSweepBlobPayload(t)
		if err != nil {
			return err
		}
		return workerHandler.SweepBlobHandler(ctx, p, sweepSvc)
	})

	runWorker(ctx, mux, cfg, database)
}

func initDb(ctx context.Context, cfg *config.Settings) *db.Database {
	logger.Info(ctx, "initialising database...")

	database, err := db.New(ctx, db.ConfigFromSettings(cfg))
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}
	return database
}

func initStorage(ctx context.Context, cfg *config.Settings) port.BlobStore {
	strg, err := storage.NewBlobStore(cfg)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize blob storage: %v", err)
		os.Exit(1)
	}
	if err := strg.Init(ctx); err != nil {
		logger.Errorf(ctx, "❌  Failed to prepare blob storage: %v", err)
		os.Exit(1)
	}
	return strg
}

func runWorker(ctx context.Context, mux *asynq.ServeMux, cfg *config.Settings, database *db.Database) {
	srv := asynq.NewServer(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}, asynq.Config{Concurrency: cfg.SweepWorkerConcur})

	// Start runs the processor in the background
	if err := srv.Start(mux); err != nil {
		logger.Errorf(ctx, "❌  Worker failed: %v", err)
		os.Exit(1)
	}
	logger.Info(ctx, "🚀 Worker started")

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// stop accepting new tasks, finish in-flight ones
	srv.Shutdown()

	if err := database.Close(); err != nil {
		logger.Warnf(ctx, "DB close error: %v", err)
	}
	logger.Info(ctx, "✅  Worker gracefully stopped")
}
