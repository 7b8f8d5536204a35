package port

import (
	"context"
	"io"
	"time"

	"github.com/fhuszti/music-catalog-ms-go/internal/model"
)

// ObjectInfo describes a stored blob.
type ObjectInfo struct {
	Key       string
	SizeBytes int64
	ModTime   time.Time
}

// BlobStore persists the files attached to music records under generated,
// never reused names.
type BlobStore interface {
	// Init prepares the backing location (directory or bucket).
	Init(ctx context.Context) error
	Put(ctx context.Context, kind model.FileKind, r io.Reader, size int64, originalName string) (string, error)
	Delete(ctx context.Context, ref string) error
	Open(ctx context.Context, ref string) (io.ReadSeekCloser, int64, error)
	List(ctx context.Context) ([]ObjectInfo, error)
}
