package port

import "context"

// HTTPRenderer mediates between HTTP handlers and the music lister use case.
// It returns both the JSON representation of the list and an ETag derived
// from it, serving from cache when possible.
type HTTPRenderer interface {
	RenderListMusic(ctx context.Context, lister MusicLister) ([]byte, string, error)
}
