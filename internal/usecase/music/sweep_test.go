package music

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fhuszti/music-catalog-ms-go/internal/mock"
)

func TestSweepBacklog(t *testing.T) {
	strg := newBlobStore()
	now := time.Now()
	kept := seedMusic(t, strg, "kept", now.Add(-3*time.Hour))
	repo := newRepo(kept)

	strg.Objects["old-orphan.mp3"] = []byte("x")
	strg.ModTimes["old-orphan.mp3"] = now.Add(-2 * time.Hour)
	strg.Objects["fresh-orphan.mp3"] = []byte("x")
	strg.ModTimes["fresh-orphan.mp3"] = now.Add(-time.Minute)

	tasks := &mock.MockDispatcher{}
	svc := NewBacklogSweeper(repo, strg, tasks, time.Hour, testLog)

	n, err := svc.SweepBacklog(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 1 || len(tasks.SweepRefs) != 1 || tasks.SweepRefs[0] != "old-orphan.mp3" {
		t.Errorf("enqueued %d: %v", n, tasks.SweepRefs)
	}
	if strg.Len() != 5 {
		t.Error("the backlog pass must not delete anything itself")
	}
}

func TestSweepBacklog_Errors(t *testing.T) {
	t.Run("list error", func(t *testing.T) {
		strg := newBlobStore()
		strg.ListErr = errors.New("list fail")
		svc := NewBacklogSweeper(newRepo(), strg, &mock.MockDispatcher{}, time.Hour, testLog)

		if _, err := svc.SweepBacklog(context.Background()); err == nil || err.Error() != "list fail" {
			t.Fatalf("expected list fail, got %v", err)
		}
	})

	t.Run("dispatch and lookup errors are skipped", func(t *testing.T) {
		strg := newBlobStore()
		strg.Objects["a.mp3"] = []byte("x")
		strg.ModTimes["a.mp3"] = time.Now().Add(-2 * time.Hour)
		tasks := &mock.MockDispatcher{SweepErr: errors.New("queue fail")}
		svc := NewBacklogSweeper(newRepo(), strg, tasks, time.Hour, testLog)

		n, err := svc.SweepBacklog(context.Background())
		if err != nil || n != 0 || !tasks.SweepCalled {
			t.Errorf("n=%d err=%v called=%v", n, err, tasks.SweepCalled)
		}

		repo := newRepo()
		repo.ReferencedErr = errors.New("db fail")
		tasks = &mock.MockDispatcher{}
		n, err = NewBacklogSweeper(repo, strg, tasks, time.Hour, testLog).SweepBacklog(context.Background())
		if err != nil || n != 0 || tasks.SweepCalled {
			t.Errorf("n=%d err=%v called=%v", n, err, tasks.SweepCalled)
		}
	})
}

func TestSweepBlob(t *testing.T) {
	t.Run("deletes orphan", func(t *testing.T) {
		strg := newBlobStore()
		strg.Objects["orphan.mp3"] = []byte("x")
		svc := NewBlobSweeper(newRepo(), strg, testLog)

		if err := svc.SweepBlob(context.Background(), "orphan.mp3"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strg.Has("orphan.mp3") {
			t.Error("orphan should be deleted")
		}
	})

	t.Run("keeps referenced blob", func(t *testing.T) {
		strg := newBlobStore()
		m := seedMusic(t, strg, "song", time.Now())
		svc := NewBlobSweeper(newRepo(m), strg, testLog)

		if err := svc.SweepBlob(context.Background(), m.Audio); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strg.Has(m.Audio) || len(strg.Deleted) != 0 {
			t.Error("referenced blob must be kept")
		}
	})

	t.Run("already gone", func(t *testing.T) {
		svc := NewBlobSweeper(newRepo(), newBlobStore(), testLog)
		if err := svc.SweepBlob(context.Background(), "gone.mp3"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("delete error", func(t *testing.T) {
		strg := newBlobStore()
		strg.Objects["orphan.mp3"] = []byte("x")
		strg.DeleteErr = map[string]error{"orphan.mp3": errors.New("busy")}
		svc := NewBlobSweeper(newRepo(), strg, testLog)

		if err := svc.SweepBlob(context.Background(), "orphan.mp3"); err == nil {
			t.Fatal("expected error")
		}
	})
}
