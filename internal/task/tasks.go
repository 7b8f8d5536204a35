package task

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
)

const TypeSweepBlob = "blob:sweep"

type SweepBlobPayload struct {
	Ref string `json:"ref"`
}

// NewSweepBlobTask creates an Asynq task deleting the blob ref if nothing
// references it anymore. The task is not retried: the next backlog pass
// enqueues it again.
func NewSweepBlobTask(ref string) (*asynq.Task, error) {
	if ref == "" {
		return nil, errors.New("sweep-blob task needs a ref")
	}
	data, err := json.Marshal(SweepBlobPayload{Ref: ref})
	if err != nil {
		return nil, fmt.Errorf("could not marshal sweep-blob payload: %w", err)
	}
	return asynq.NewTask(TypeSweepBlob, data, asynq.MaxRetry(0)), nil
}

// ParseSweepBlobPayload parses the task payload to SweepBlobPayload.
func ParseSweepBlobPayload(t *asynq.Task) (SweepBlobPayload, error) {
	var p SweepBlobPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return SweepBlobPayload{}, fmt.Errorf("could not unmarshal payload: %w", err)
	}
	if p.Ref == "" {
		return SweepBlobPayload{}, fmt.Errorf("sweep-blob payload has no ref: %w", asynq.SkipRetry)
	}
	return p, nil
}
