package music

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fhuszti/music-catalog-ms-go/internal/metrics"
	"github.com/fhuszti/music-catalog-ms-go/internal/model"
	"github.com/fhuszti/music-catalog-ms-go/internal/port"
)

type uploadMusicSrv struct {
	repo  port.MusicRepository
	strg  port.BlobStore
	cache port.Cache
	genID port.UUIDGen
	log   *slog.Logger
}

// compile-time check: *uploadMusicSrv must satisfy port.MusicUploader
var _ port.MusicUploader = (*uploadMusicSrv)(nil)

// NewMusicUploader constructs a MusicUploader implementation.
func NewMusicUploader(repo port.MusicRepository, strg port.BlobStore, cache port.Cache, genID port.UUIDGen, log *slog.Logger) port.MusicUploader {
	return &uploadMusicSrv{repo: repo, strg: strg, cache: cache, genID: genID, log: orDefault(log)}
}

// UploadMusic stores the three files, validates the metadata and creates the
// record. Any failure after the first write deletes what was written.
func (s *uploadMusicSrv) UploadMusic(ctx context.Context, in port.UploadMusicInput) (out port.MusicOutput, err error) {
	defer func() { metrics.RecordOperation("upload", err) }()

	missing := map[string]string{}
	for _, kind := range model.FileKinds {
		if _, ok := in.Files[kind]; !ok {
			missing[string(kind)] = "required"
		}
	}
	if len(missing) > 0 {
		return out, &ValidationError{Fields: missing}
	}

	refs := make(map[model.FileKind]string, len(model.FileKinds))
	stored := make([]string, 0, len(model.FileKinds))
	for _, kind := range model.FileKinds {
		ref, err := putFile(ctx, s.strg, kind, in.Files[kind])
		if err != nil {
			out.Warnings = deleteBlobs(ctx, s.strg, s.log, reasonAborted, stored...)
			return out, err
		}
		stored = append(stored, ref)
		refs[kind] = ref
	}

	md, err := parseMetadata(in.Metadata)
	if err != nil {
		out.Warnings = deleteBlobs(ctx, s.strg, s.log, reasonAborted, stored...)
		return out, err
	}

	rec := md.toModel()
	rec.ID = s.genID()
	for _, kind := range model.FileKinds {
		rec.SetRef(kind, refs[kind])
	}
	rec.Likes = model.Likes{}
	rec.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	rec.UpdatedAt = rec.CreatedAt

	if err := s.repo.Create(ctx, rec); err != nil {
		out.Warnings = deleteBlobs(ctx, s.strg, s.log, reasonAborted, stored...)
		return out, err
	}

	s.log.InfoContext(ctx, "music uploaded", "id", rec.ID.String(), "audio", rec.Audio)
	invalidateList(ctx, s.cache, s.log)

	out.Music = rec
	return out, nil
}

func putFile(ctx context.Context, strg port.BlobStore, kind model.FileKind, f port.FileInput) (string, error) {
	ref, err := strg.Put(ctx, kind, f.Reader, f.Size, f.Name)
	metrics.RecordBlobPut(string(kind), f.Size, err)
	if err != nil {
		if errors.Is(err, ErrStorageWrite) {
			return "", fmt.Errorf("store %s: %w", kind, err)
		}
		return "", fmt.Errorf("%w: store %s: %w", ErrStorageWrite, kind, err)
	}
	return ref, nil
}
