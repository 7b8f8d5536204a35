package music

import (
	"context"
	"log/slog"

	"github.com/fhuszti/music-catalog-ms-go/internal/metrics"
	"github.com/fhuszti/music-catalog-ms-go/internal/model"
	"github.com/fhuszti/music-catalog-ms-go/internal/port"
)

type updateMusicSrv struct {
	repo  port.MusicRepository
	strg  port.BlobStore
	cache port.Cache
	log   *slog.Logger
}

// compile-time check: *updateMusicSrv must satisfy port.MusicUpdater
var _ port.MusicUpdater = (*updateMusicSrv)(nil)

// NewMusicUpdater constructs a MusicUpdater implementation.
func NewMusicUpdater(repo port.MusicRepository, strg port.BlobStore, cache port.Cache, log *slog.Logger) port.MusicUpdater {
	return &updateMusicSrv{repo: repo, strg: strg, cache: cache, log: orDefault(log)}
}

// UpdateMusic stores the supplied replacement files, validates the metadata
// and updates the record. Files written by this call are removed if the
// record is not updated; files the record no longer points to are removed
// once it is.
func (s *updateMusicSrv) UpdateMusic(ctx context.Context, in port.UpdateMusicInput) (out port.MusicOutput, err error) {
	defer func() { metrics.RecordOperation("update", err) }()

	replaced := make(map[model.FileKind]string, len(in.Files))
	stored := make([]string, 0, len(in.Files))
	for _, kind := range model.FileKinds {
		f, ok := in.Files[kind]
		if !ok {
			continue
		}
		ref, err := putFile(ctx, s.strg, kind, f)
		if err != nil {
			out.Warnings = deleteBlobs(ctx, s.strg, s.log, reasonAborted, stored...)
			return out, err
		}
		stored = append(stored, ref)
		replaced[kind] = ref
	}

	md, err := parseMetadata(in.Metadata)
	if err != nil {
		out.Warnings = deleteBlobs(ctx, s.strg, s.log, reasonAborted, stored...)
		return out, err
	}

	patch := md.toPatch()
	for kind, ref := range replaced {
		patch.SetRef(kind, ref)
	}

	prev, updated, err := s.repo.Update(ctx, in.ID, patch)
	if err != nil {
		out.Warnings = deleteBlobs(ctx, s.strg, s.log, reasonAborted, stored...)
		return out, err
	}

	var superseded []string
	for _, kind := range model.FileKinds {
		ref, ok := replaced[kind]
		if !ok {
			continue
		}
		if old := prev.Ref(kind); old != "" && old != ref {
			superseded = append(superseded, old)
		}
	}
	out.Warnings = deleteBlobs(ctx, s.strg, s.log, reasonSuperseded, superseded...)

	s.log.InfoContext(ctx, "music updated", "id", in.ID.String(), "replaced_files", len(replaced))
	invalidateList(ctx, s.cache, s.log)

	out.Music = updated
	return out, nil
}
