package task

import (
	"context"

	"github.com/fhuszti/music-catalog-ms-go/internal/port"
)

type NoopDispatcher struct{}

// compile-time check: *NoopDispatcher must satisfy port.TaskDispatcher
var _ port.TaskDispatcher = (*NoopDispatcher)(nil)

func NewNoopDispatcher() *NoopDispatcher { return &NoopDispatcher{} }

func (d *NoopDispatcher) EnqueueSweepBlob(ctx context.Context, ref string) error {
	return nil
}
