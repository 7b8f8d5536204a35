package main

import (
	"context"
	"os"
	"strings"

	"github.com/fhuszti/music-catalog-ms-go/internal/config"
	"github.com/fhuszti/music-catalog-ms-go/internal/db"
	"github.com/fhuszti/music-catalog-ms-go/internal/logger"
	"github.com/fhuszti/music-catalog-ms-go/internal/migration"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}
	logger.Init(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, AddSource: cfg.LogSource})

	database, err := initDb(ctx, cfg)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Warnf(ctx, "DB close error: %v", err)
		}
	}()

	if err := migration.MigrateUp(database.DB); err != nil {
		logger.Errorf(ctx, "❌  Migration up failed: %v", err)
		os.Exit(1)
	}

	logger.Info(ctx, "✅  Migrations applied successfully")
}

func initDb(ctx context.Context, cfg *config.Settings) (*db.Database, error) {
	dbCfg := db.ConfigFromSettings(cfg)
	dbCfg.DSN = withParam(dbCfg.DSN, "multiStatements=true")
	return db.New(ctx, dbCfg)
}

// withParam appends a query parameter to a go-sql-driver DSN.
func withParam(dsn, param string) string {
	if strings.Contains(dsn, "?") {
		return dsn + "&" + param
	}
	return dsn + "?" + param
}
