package port

import "context"

// TaskDispatcher enqueues asynchronous maintenance tasks.
type TaskDispatcher interface {
	EnqueueSweepBlob(ctx context.Context, ref string) error
}
