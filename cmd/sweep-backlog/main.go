package main

import (
	"context"
	"os"

	"github.com/fhuszti/music-catalog-ms-go/internal/config"
	"github.com/fhuszti/music-catalog-ms-go/internal/db"
	"github.com/fhuszti/music-catalog-ms-go/internal/logger"
	"github.com/fhuszti/music-catalog-ms-go/internal/repository/mariadb"
	"github.com/fhuszti/music-catalog-ms-go/internal/storage"
	"github.com/fhuszti/music-catalog-ms-go/internal/task"
	musicSvc "github.com/fhuszti/music-catalog-ms-go/internal/usecase/music"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}
	if cfg.RedisAddr == "" {
		logger.Error(ctx, "❌  Redis not configured: this command requires a running Redis instance")
		os.Exit(1)
	}
	log := logger.Init(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, AddSource: cfg.LogSource})

	logger.Info(ctx, "initialising database...")
	database, err := db.New(ctx, db.ConfigFromSettings(cfg))
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Warnf(ctx, "DB close error: %v", err)
		}
	}()

	strg, err := storage.NewBlobStore(cfg)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize blob storage: %v", err)
		os.Exit(1)
	}

	dispatcher := task.NewDispatcher(cfg.RedisAddr, cfg.RedisPassword)
	defer func() { _ = dispatcher.Close() }()

	repo := mariadb.NewMusicRepository(database.DB)
	sweeper := musicSvc.NewBacklogSweeper(repo, strg, dispatcher, cfg.SweepGracePeriod, log)

	n, err := sweeper.SweepBacklog(ctx)
	if err != nil {
		logger.Errorf(ctx, "❌  Orphan sweep failed: %v", err)
		os.Exit(1)
	}
	logger.Infof(ctx, "✅  Orphan sweep completed, %d blob(s) enqueued", n)
}
