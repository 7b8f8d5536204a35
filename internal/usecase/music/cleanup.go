package music

import (
	"context"
	"errors"
	"log/slog"

	"github.com/fhuszti/music-catalog-ms-go/internal/metrics"
	"github.com/fhuszti/music-catalog-ms-go/internal/port"
)

const (
	reasonAborted    = "aborted"
	reasonSuperseded = "superseded"
	reasonDeleted    = "record deleted"

	warnAlreadyAbsent = "already absent"
)

// deleteBlobs attempts every delete independently and turns failures into
// warnings. A blob that is already gone is not fatal but is still reported,
// since the record pointed at nothing. Deletes run even if the request
// context is already cancelled.
func deleteBlobs(ctx context.Context, strg port.BlobStore, log *slog.Logger, reason string, refs ...string) []port.CleanupWarning {
	ctx = context.WithoutCancel(ctx)

	var warnings []port.CleanupWarning
	for _, ref := range refs {
		if ref == "" {
			continue
		}
		err := strg.Delete(ctx, ref)
		if err == nil {
			continue
		}
		if errors.Is(err, ErrObjectNotFound) {
			log.WarnContext(ctx, "blob already absent", "ref", ref, "reason", reason)
			metrics.RecordMissingBlob(reason)
			warnings = append(warnings, port.CleanupWarning{Ref: ref, Reason: warnAlreadyAbsent})
			continue
		}
		log.WarnContext(ctx, "blob cleanup failed", "ref", ref, "reason", reason, "err", err)
		metrics.RecordCleanupFailure(reason)
		warnings = append(warnings, port.CleanupWarning{Ref: ref, Reason: err.Error()})
	}
	return warnings
}

// invalidateList drops the cached list after a catalog change.
func invalidateList(ctx context.Context, cache port.Cache, log *slog.Logger) {
	if err := cache.DeleteMusicList(ctx); err != nil {
		log.WarnContext(ctx, "failed deleting cached music list", "err", err)
	}
}

func orDefault(log *slog.Logger) *slog.Logger {
	if log == nil {
		return slog.Default()
	}
	return log
}
