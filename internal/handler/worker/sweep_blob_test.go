package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/fhuszti/music-catalog-ms-go/internal/mock"
	"github.com/fhuszti/music-catalog-ms-go/internal/task"
)

func TestSweepBlobHandler_ServiceError(t *testing.T) {
	svcErr := errors.New("svc fail")
	svc := &mock.MockBlobSweeper{Err: svcErr}

	err := SweepBlobHandler(context.Background(), task.SweepBlobPayload{Ref: "1-2.mp3"}, svc)
	if !errors.Is(err, svcErr) {
		t.Fatalf("got error %v; want %v", err, svcErr)
	}
	if !svc.Called {
		t.Error("service not called")
	}
}

func TestSweepBlobHandler_Success(t *testing.T) {
	svc := &mock.MockBlobSweeper{}

	err := SweepBlobHandler(context.Background(), task.SweepBlobPayload{Ref: "1-2.mp3"}, svc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc.Ref != "1-2.mp3" {
		t.Errorf("service got ref %q; want %q", svc.Ref, "1-2.mp3")
	}
}
