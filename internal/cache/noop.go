package cache

import (
	"context"
	"time"

	"github.com/fhuszti/music-catalog-ms-go/internal/port"
)

type NoopCache struct{}

// compile-time check: *NoopCache must satisfy port.Cache
var _ port.Cache = (*NoopCache)(nil)

func NewNoop() *NoopCache {
	return &NoopCache{}
}

func (n *NoopCache) GetMusicList(ctx context.Context) ([]byte, error) {
	return nil, nil // always cache miss
}

func (n *NoopCache) GetEtagMusicList(ctx context.Context) (string, error) {
	return "", nil
}

func (n *NoopCache) SetMusicList(ctx context.Context, data []byte, validUntil time.Time) {}

func (n *NoopCache) SetEtagMusicList(ctx context.Context, etag string, validUntil time.Time) {}

func (n *NoopCache) DeleteMusicList(ctx context.Context) error { return nil }
