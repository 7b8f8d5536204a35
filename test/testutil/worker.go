package testutil

import (
	"context"
	"database/sql"

	workerHandler "github.com/fhuszti/music-catalog-ms-go/internal/handler/worker"
	"github.com/fhuszti/music-catalog-ms-go/internal/logger"
	"github.com/fhuszti/music-catalog-ms-go/internal/port"
	"github.com/fhuszti/music-catalog-ms-go/internal/repository/mariadb"
	"github.com/fhuszti/music-catalog-ms-go/internal/task"
	musicSvc "github.com/fhuszti/music-catalog-ms-go/internal/usecase/music"
	"github.com/hibiken/asynq"
)

// StartWorker starts an asynq worker processing sweep tasks against db and
// strg. It returns a function that shuts the worker down.
func StartWorker(db *sql.DB, strg port.BlobStore, redisAddr string) (func(), error) {
	repo := mariadb.NewMusicRepository(db)
	sweepSvc := musicSvc.NewBlobSweeper(repo, strg, logger.Discard())

	mux := asynq.NewServeMux()
	mux.HandleFunc(task.TypeSweepBlob, func(ctx context.Context, t *asynq.Task) error {
		p, err := task.ParseSweepBlobPayload(t)
		if err != nil {
			return err
		}
		return workerHandler.SweepBlobHandler(ctx, p, sweepSvc)
	})

	srv := asynq.NewServer(asynq.RedisClientOpt{Addr: redisAddr}, asynq.Config{Concurrency: 2})
	if err := srv.Start(mux); err != nil {
		return nil, err
	}
	return srv.Shutdown, nil
}
