package music

import (
	"context"
	"log/slog"

	"github.com/fhuszti/music-catalog-ms-go/internal/metrics"
	"github.com/fhuszti/music-catalog-ms-go/internal/model"
	"github.com/fhuszti/music-catalog-ms-go/internal/port"
	"github.com/fhuszti/music-catalog-ms-go/internal/validation"
)

type likesUpdaterSrv struct {
	repo  port.MusicRepository
	cache port.Cache
	log   *slog.Logger
}

// compile-time check: *likesUpdaterSrv must satisfy port.LikesUpdater
var _ port.LikesUpdater = (*likesUpdaterSrv)(nil)

func NewLikesUpdater(repo port.MusicRepository, cache port.Cache, log *slog.Logger) port.LikesUpdater {
	return &likesUpdaterSrv{repo: repo, cache: cache, log: orDefault(log)}
}

type likesInput struct {
	Likes []string `json:"likes" validate:"required,dive,required"`
}

// UpdateLikes replaces the whole likes set; duplicates are dropped.
func (s *likesUpdaterSrv) UpdateLikes(ctx context.Context, in port.UpdateLikesInput) (m *model.Music, err error) {
	defer func() { metrics.RecordOperation("likes", err) }()

	if err := validation.ValidateStruct(likesInput{Likes: in.Likes}); err != nil {
		return nil, &ValidationError{Fields: validation.FieldErrors(err)}
	}

	m, err = s.repo.UpdateLikes(ctx, in.ID, model.NewLikes(in.Likes))
	if err != nil {
		return nil, err
	}

	invalidateList(ctx, s.cache, s.log)
	return m, nil
}
