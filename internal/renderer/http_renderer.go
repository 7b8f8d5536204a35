package renderer

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/crc32"
	"time"

	"github.com/fhuszti/music-catalog-ms-go/internal/model"
	"github.com/fhuszti/music-catalog-ms-go/internal/port"
)

type httpRenderer struct {
	cache port.Cache
	ttl   time.Duration
	now   func() time.Time
}

// compile-time check: *httpRenderer must satisfy port.HTTPRenderer
var _ port.HTTPRenderer = (*httpRenderer)(nil)

// NewHTTPRenderer creates a renderer caching the list for ttl.
func NewHTTPRenderer(cache port.Cache, ttl time.Duration) port.HTTPRenderer {
	return &httpRenderer{cache: cache, ttl: ttl, now: time.Now}
}

// RenderListMusic returns the cached JSON list and its ETag if available, or
// runs the lister and caches its output otherwise.
func (r *httpRenderer) RenderListMusic(ctx context.Context, lister port.MusicLister) ([]byte, string, error) {
	raw, err := r.cache.GetMusicList(ctx)
	etag, errEtag := r.cache.GetEtagMusicList(ctx)
	if err == nil && errEtag == nil && raw != nil && etag != "" {
		return raw, etag, nil
	}

	list, err := lister.ListMusic(ctx)
	if err != nil {
		return nil, "", err
	}
	if list == nil {
		list = []*model.Music{}
	}

	raw, err = json.Marshal(list)
	if err != nil {
		return nil, "", fmt.Errorf("json marshal: %w", err)
	}

	etag = ETag(raw)
	if r.ttl > 0 {
		validUntil := r.now().Add(r.ttl)
		r.cache.SetMusicList(ctx, raw, validUntil)
		r.cache.SetEtagMusicList(ctx, etag, validUntil)
	}

	return raw, etag, nil
}

// ETag returns the quoted CRC32 of raw.
func ETag(raw []byte) string {
	return fmt.Sprintf("\"%08x\"", crc32.ChecksumIEEE(raw))
}
