package music

import (
	"context"
	"errors"
	"log/slog"

	"github.com/fhuszti/music-catalog-ms-go/internal/metrics"
	"github.com/fhuszti/music-catalog-ms-go/internal/port"
)

type blobSweeperSrv struct {
	repo port.MusicRepository
	strg port.BlobStore
	log  *slog.Logger
}

// compile-time check: *blobSweeperSrv must satisfy port.BlobSweeper
var _ port.BlobSweeper = (*blobSweeperSrv)(nil)

func NewBlobSweeper(repo port.MusicRepository, strg port.BlobStore, log *slog.Logger) port.BlobSweeper {
	return &blobSweeperSrv{repo: repo, strg: strg, log: orDefault(log)}
}

// SweepBlob deletes ref unless a record started referencing it since it was
// enqueued.
func (s *blobSweeperSrv) SweepBlob(ctx context.Context, ref string) error {
	referenced, err := s.repo.IsBlobReferenced(ctx, ref)
	if err != nil {
		return err
	}
	if referenced {
		s.log.InfoContext(ctx, "blob is referenced again, keeping it", "ref", ref)
		return nil
	}

	if err := s.strg.Delete(ctx, ref); err != nil {
		if errors.Is(err, ErrObjectNotFound) {
			return nil
		}
		return err
	}

	metrics.SweptBlobsTotal.Inc()
	s.log.InfoContext(ctx, "orphan blob deleted", "ref", ref)
	return nil
}
