package music

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/fhuszti/music-catalog-ms-go/internal/metrics"
	"github.com/fhuszti/music-catalog-ms-go/internal/mock"
	"github.com/fhuszti/music-catalog-ms-go/internal/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestDeleteMusic_Success(t *testing.T) {
	strg := newBlobStore()
	existing := seedMusic(t, strg, "song", time.Now())
	repo := newRepo(existing)
	ca := &mock.Cache{}
	svc := NewMusicDeleter(repo, strg, ca, testLog)

	out, err := svc.DeleteMusic(context.Background(), existing.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Music == nil || out.Music.ID != existing.ID || out.Music.Title != "song" {
		t.Errorf("expected prior record, got %+v", out.Music)
	}
	if repo.Len() != 0 {
		t.Error("record should be gone")
	}
	if strg.Len() != 0 {
		t.Errorf("blobs should be gone, %d left", strg.Len())
	}
	if !ca.DelListCalled {
		t.Error("expected cached list to be invalidated")
	}
}

func TestDeleteMusic_BlobFailureKeepsRecordDeleted(t *testing.T) {
	strg := newBlobStore()
	existing := seedMusic(t, strg, "song", time.Now())
	strg.DeleteErr = map[string]error{existing.Thumbnail: errors.New("permission denied")}
	repo := newRepo(existing)
	svc := NewMusicDeleter(repo, strg, &mock.Cache{}, testLog)

	out, err := svc.DeleteMusic(context.Background(), existing.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Warnings) != 1 || out.Warnings[0].Ref != existing.Thumbnail {
		t.Errorf("warnings = %v", out.Warnings)
	}
	if repo.Len() != 0 {
		t.Error("record deletion must not be rolled back")
	}
	if strg.Has(existing.Audio) || strg.Has(existing.ThumbnailCover) {
		t.Error("remaining blobs should still be attempted and removed")
	}
}

func TestDeleteMusic_AlreadyMissingBlobIsReported(t *testing.T) {
	strg := newBlobStore()
	existing := seedMusic(t, strg, "song", time.Now())
	delete(strg.Objects, existing.Audio)
	repo := newRepo(existing)

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	svc := NewMusicDeleter(repo, strg, &mock.Cache{}, log)

	before := testutil.ToFloat64(metrics.MissingBlobsTotal.WithLabelValues(reasonDeleted))
	out, err := svc.DeleteMusic(context.Background(), existing.ID)
	if err != nil {
		t.Fatalf("missing blob must not fail the delete: %v", err)
	}
	if len(out.Warnings) != 1 {
		t.Fatalf("warnings = %v; want one", out.Warnings)
	}
	if w := out.Warnings[0]; w.Ref != existing.Audio || w.Reason != warnAlreadyAbsent {
		t.Errorf("warning = %+v", w)
	}
	if !strings.Contains(buf.String(), "blob already absent") || !strings.Contains(buf.String(), existing.Audio) {
		t.Errorf("log should mention the missing blob, got %q", buf.String())
	}
	if after := testutil.ToFloat64(metrics.MissingBlobsTotal.WithLabelValues(reasonDeleted)); after != before+1 {
		t.Errorf("missing blobs counter = %v; want %v", after, before+1)
	}
	if strg.Has(existing.Thumbnail) || strg.Has(existing.ThumbnailCover) {
		t.Error("other blobs should still be removed")
	}
}

func TestDeleteMusic_NotFound(t *testing.T) {
	strg := newBlobStore()
	repo := newRepo()
	ca := &mock.Cache{}
	svc := NewMusicDeleter(repo, strg, ca, testLog)

	_, err := svc.DeleteMusic(context.Background(), uuid.NewUUID())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(strg.Deleted) != 0 {
		t.Error("no blob should be touched")
	}
	if ca.DelListCalled {
		t.Error("cache should not be touched")
	}
}
