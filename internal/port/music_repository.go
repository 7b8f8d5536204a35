package port

import (
	"context"

	"github.com/fhuszti/music-catalog-ms-go/internal/model"
	"github.com/fhuszti/music-catalog-ms-go/internal/uuid"
)

// MusicRepository defines persistence operations for music records.
type MusicRepository interface {
	Create(ctx context.Context, music *model.Music) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Music, error)
	// Update applies patch atomically and returns the record before and after.
	Update(ctx context.Context, id uuid.UUID, patch model.MusicPatch) (prev *model.Music, updated *model.Music, err error)
	UpdateLikes(ctx context.Context, id uuid.UUID, likes model.Likes) (*model.Music, error)
	// Delete removes the record and returns its last state.
	Delete(ctx context.Context, id uuid.UUID) (*model.Music, error)
	ListAll(ctx context.Context) ([]*model.Music, error)
	SearchByTitle(ctx context.Context, needle string) ([]*model.Music, error)
	IsBlobReferenced(ctx context.Context, ref string) (bool, error)
}
