package task

import (
	"context"

	"github.com/fhuszti/music-catalog-ms-go/internal/port"
	"github.com/hibiken/asynq"
)

type Dispatcher struct {
	client *asynq.Client
}

// compile-time check: *Dispatcher must satisfy port.TaskDispatcher
var _ port.TaskDispatcher = (*Dispatcher)(nil)

func NewDispatcher(addr, password string) *Dispatcher {
	c := asynq.NewClient(asynq.RedisClientOpt{Addr: addr, Password: password})
	return &Dispatcher{client: c}
}

func (d *Dispatcher) EnqueueSweepBlob(ctx context.Context, ref string) error {
	t, err := NewSweepBlobTask(ref)
	if err != nil {
		return err
	}
	if _, err := d.client.EnqueueContext(ctx, t); err != nil {
		return err
	}
	return nil
}

func (d *Dispatcher) Close() error {
	return d.client.Close()
}
