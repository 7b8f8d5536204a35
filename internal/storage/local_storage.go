package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fhuszti/music-catalog-ms-go/internal/logger"
	"github.com/fhuszti/music-catalog-ms-go/internal/model"
	"github.com/fhuszti/music-catalog-ms-go/internal/port"
	"github.com/fhuszti/music-catalog-ms-go/internal/usecase/music"
)

// LocalStorage keeps blobs as flat files inside one directory.
type LocalStorage struct {
	root   string
	now    func() time.Time
	suffix func() int
}

// compile-time check: *LocalStorage must satisfy port.BlobStore
var _ port.BlobStore = (*LocalStorage)(nil)

func NewLocalStorage(root string) *LocalStorage {
	return &LocalStorage{root: root, now: time.Now, suffix: randomSuffix}
}

func (s *LocalStorage) Init(ctx context.Context) error {
	logger.Infof(ctx, "preparing local storage directory %q...", s.root)
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return mapFsErr(err)
	}
	return nil
}

// Put writes r under a fresh name. An existing file is never overwritten; a
// partially written file is removed.
func (s *LocalStorage) Put(ctx context.Context, kind model.FileKind, r io.Reader, size int64, originalName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %v", music.ErrStorageWrite, err)
	}

	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		key := newObjectKey(s.now(), s.suffix(), originalName)
		path := filepath.Join(s.root, key)

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("%w: %v", music.ErrStorageWrite, err)
		}

		logger.Debugf(ctx, "saving %s file %q into %q...", kind, key, s.root)
		n, err := io.Copy(f, r)
		if cErr := f.Close(); err == nil {
			err = cErr
		}
		if err == nil && size >= 0 && n != size {
			err = fmt.Errorf("wrote %d bytes, expected %d", n, size)
		}
		if err != nil {
			_ = os.Remove(path)
			return "", fmt.Errorf("%w: %v", music.ErrStorageWrite, err)
		}
		return key, nil
	}
	return "", fmt.Errorf("%w: no free name after %d attempts", music.ErrStorageWrite, maxNameAttempts)
}

func (s *LocalStorage) Delete(ctx context.Context, ref string) error {
	if !validKey(ref) {
		return music.ErrObjectNotFound
	}
	logger.Debugf(ctx, "removing file %q from %q...", ref, s.root)

	err := os.Remove(filepath.Join(s.root, ref))
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return music.ErrObjectNotFound
	}
	return fmt.Errorf("%w: %v", music.ErrStorageDelete, err)
}

// Open returns a read handle and the blob size. On POSIX systems the handle
// keeps working if the blob is deleted meanwhile.
func (s *LocalStorage) Open(ctx context.Context, ref string) (io.ReadSeekCloser, int64, error) {
	if !validKey(ref) {
		return nil, 0, music.ErrObjectNotFound
	}

	f, err := os.Open(filepath.Join(s.root, ref))
	if err != nil {
		return nil, 0, mapFsErr(err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, 0, mapFsErr(err)
	}
	if !info.Mode().IsRegular() {
		_ = f.Close()
		return nil, 0, music.ErrObjectNotFound
	}
	return f, info.Size(), nil
}

func (s *LocalStorage) List(ctx context.Context) ([]port.ObjectInfo, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, mapFsErr(err)
	}

	out := make([]port.ObjectInfo, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			// removed since ReadDir
			continue
		}
		out = append(out, port.ObjectInfo{Key: e.Name(), SizeBytes: info.Size(), ModTime: info.ModTime()})
	}
	return out, nil
}
