package music

import (
	"context"
	"log/slog"
	"time"

	"github.com/fhuszti/music-catalog-ms-go/internal/port"
)

type backlogSweeperSrv struct {
	repo  port.MusicRepository
	strg  port.BlobStore
	tasks port.TaskDispatcher
	grace time.Duration
	now   func() time.Time
	log   *slog.Logger
}

// compile-time check: *backlogSweeperSrv must satisfy port.BacklogSweeper
var _ port.BacklogSweeper = (*backlogSweeperSrv)(nil)

// NewBacklogSweeper constructs a BacklogSweeper. Blobs younger than grace
// are never considered, so in-flight uploads are left alone.
func NewBacklogSweeper(repo port.MusicRepository, strg port.BlobStore, tasks port.TaskDispatcher, grace time.Duration, log *slog.Logger) port.BacklogSweeper {
	return &backlogSweeperSrv{repo: repo, strg: strg, tasks: tasks, grace: grace, now: time.Now, log: orDefault(log)}
}

// SweepBacklog enqueues a sweep task for every old blob no record references
// and returns how many were enqueued.
func (s *backlogSweeperSrv) SweepBacklog(ctx context.Context) (int, error) {
	objects, err := s.strg.List(ctx)
	if err != nil {
		return 0, err
	}

	cutoff := s.now().Add(-s.grace)
	enqueued := 0
	for _, obj := range objects {
		if !obj.ModTime.Before(cutoff) {
			continue
		}
		referenced, err := s.repo.IsBlobReferenced(ctx, obj.Key)
		if err != nil {
			s.log.WarnContext(ctx, "failed checking blob references", "ref", obj.Key, "err", err)
			continue
		}
		if referenced {
			continue
		}
		if err := s.tasks.EnqueueSweepBlob(ctx, obj.Key); err != nil {
			s.log.WarnContext(ctx, "failed to enqueue sweep task", "ref", obj.Key, "err", err)
			continue
		}
		enqueued++
	}

	if enqueued == 0 {
		s.log.InfoContext(ctx, "no orphan blobs found")
	} else {
		s.log.InfoContext(ctx, "orphan blobs enqueued for deletion", "count", enqueued)
	}
	return enqueued, nil
}
