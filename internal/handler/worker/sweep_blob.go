package worker

import (
	"context"

	"github.com/fhuszti/music-catalog-ms-go/internal/logger"
	"github.com/fhuszti/music-catalog-ms-go/internal/port"
	"github.com/fhuszti/music-catalog-ms-go/internal/task"
)

// SweepBlobHandler handles a sweep-blob task by delegating to the
// port.BlobSweeper service.
func SweepBlobHandler(ctx context.Context, p task.SweepBlobPayload, svc port.BlobSweeper) error {
	if err := svc.SweepBlob(ctx, p.Ref); err != nil {
		logger.Errorf(ctx, "❌  Failed to sweep blob %q: %v", p.Ref, err)
		return err
	}

	logger.Infof(ctx, "✅  Swept blob %q", p.Ref)
	return nil
}
