package port

import (
	"context"
	"time"
)

// Cache stores the rendered music list and its ETag.
type Cache interface {
	GetMusicList(ctx context.Context) ([]byte, error)
	GetEtagMusicList(ctx context.Context) (string, error)
	SetMusicList(ctx context.Context, data []byte, validUntil time.Time)
	SetEtagMusicList(ctx context.Context, etag string, validUntil time.Time)
	DeleteMusicList(ctx context.Context) error
}
