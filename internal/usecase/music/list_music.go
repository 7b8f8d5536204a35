package music

import (
	"context"

	"github.com/fhuszti/music-catalog-ms-go/internal/model"
	"github.com/fhuszti/music-catalog-ms-go/internal/port"
)

type listMusicSrv struct {
	repo port.MusicRepository
}

// compile-time check: *listMusicSrv must satisfy port.MusicLister
var _ port.MusicLister = (*listMusicSrv)(nil)

func NewMusicLister(repo port.MusicRepository) port.MusicLister {
	return &listMusicSrv{repo: repo}
}

func (s *listMusicSrv) ListMusic(ctx context.Context) ([]*model.Music, error) {
	musics, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if musics == nil {
		musics = []*model.Music{}
	}
	return musics, nil
}
