package mock

import "context"

// MockDispatcher implements task dispatching for tests.
type MockDispatcher struct {
	SweepCalled bool
	SweepRefs   []string
	SweepErr    error
}

func (m *MockDispatcher) EnqueueSweepBlob(ctx context.Context, ref string) error {
	m.SweepCalled = true
	m.SweepRefs = append(m.SweepRefs, ref)
	return m.SweepErr
}
