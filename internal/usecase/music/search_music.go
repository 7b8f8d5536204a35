package music

import (
	"context"
	"strings"

	"github.com/fhuszti/music-catalog-ms-go/internal/model"
	"github.com/fhuszti/music-catalog-ms-go/internal/port"
)

type searchMusicSrv struct {
	repo port.MusicRepository
}

// compile-time check: *searchMusicSrv must satisfy port.MusicSearcher
var _ port.MusicSearcher = (*searchMusicSrv)(nil)

func NewMusicSearcher(repo port.MusicRepository) port.MusicSearcher {
	return &searchMusicSrv{repo: repo}
}

// SearchMusic matches titles containing needle, case-insensitively. An empty
// needle matches every record.
func (s *searchMusicSrv) SearchMusic(ctx context.Context, needle string) ([]*model.Music, error) {
	musics, err := s.repo.SearchByTitle(ctx, strings.TrimSpace(needle))
	if err != nil {
		return nil, err
	}
	if musics == nil {
		musics = []*model.Music{}
	}
	return musics, nil
}
