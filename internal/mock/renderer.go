package mock

import (
	"context"

	"github.com/fhuszti/music-catalog-ms-go/internal/port"
)

// HTTPRenderer implements port.HTTPRenderer for tests.
type HTTPRenderer struct {
	// stored values
	ListOut []byte

	// etag values
	EtagList string

	// errors
	ListErr error

	// call flags
	ListCalled bool
}

func (m *HTTPRenderer) RenderListMusic(ctx context.Context, lister port.MusicLister) ([]byte, string, error) {
	m.ListCalled = true
	return m.ListOut, m.EtagList, m.ListErr
}
