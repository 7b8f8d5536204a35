package music

import (
	"context"

	"github.com/fhuszti/music-catalog-ms-go/internal/model"
	"github.com/fhuszti/music-catalog-ms-go/internal/port"
	"github.com/fhuszti/music-catalog-ms-go/internal/uuid"
)

type getMusicSrv struct {
	repo port.MusicRepository
}

// compile-time check: *getMusicSrv must satisfy port.MusicGetter
var _ port.MusicGetter = (*getMusicSrv)(nil)

func NewMusicGetter(repo port.MusicRepository) port.MusicGetter {
	return &getMusicSrv{repo: repo}
}

func (s *getMusicSrv) GetMusic(ctx context.Context, id uuid.UUID) (*model.Music, error) {
	return s.repo.GetByID(ctx, id)
}
