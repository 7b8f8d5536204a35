package music

import (
	"context"
	"log/slog"

	"github.com/fhuszti/music-catalog-ms-go/internal/metrics"
	"github.com/fhuszti/music-catalog-ms-go/internal/port"
	"github.com/fhuszti/music-catalog-ms-go/internal/uuid"
)

type deleteMusicSrv struct {
	repo  port.MusicRepository
	strg  port.BlobStore
	cache port.Cache
	log   *slog.Logger
}

// compile-time check: *deleteMusicSrv must satisfy port.MusicDeleter
var _ port.MusicDeleter = (*deleteMusicSrv)(nil)

// NewMusicDeleter constructs a MusicDeleter implementation.
func NewMusicDeleter(repo port.MusicRepository, strg port.BlobStore, cache port.Cache, log *slog.Logger) port.MusicDeleter {
	return &deleteMusicSrv{repo: repo, strg: strg, cache: cache, log: orDefault(log)}
}

// DeleteMusic deletes the record first, then its three files. A file that
// cannot be removed is reported as a warning; the record stays deleted.
func (s *deleteMusicSrv) DeleteMusic(ctx context.Context, id uuid.UUID) (out port.MusicOutput, err error) {
	defer func() { metrics.RecordOperation("delete", err) }()

	m, err := s.repo.Delete(ctx, id)
	if err != nil {
		return out, err
	}

	out.Music = m
	out.Warnings = deleteBlobs(ctx, s.strg, s.log, reasonDeleted, m.BlobRefs()...)

	s.log.InfoContext(ctx, "music deleted", "id", id.String())
	invalidateList(ctx, s.cache, s.log)

	return out, nil
}
