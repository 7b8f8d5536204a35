package mock

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fhuszti/music-catalog-ms-go/internal/model"
	"github.com/fhuszti/music-catalog-ms-go/internal/port"
)

var errMissing = errors.New("mock: object not found")

// BlobStore is an in-memory port.BlobStore for tests.
type BlobStore struct {
	mu sync.Mutex

	// stored values
	Objects  map[string][]byte
	ModTimes map[string]time.Time

	// errors
	InitErr   error
	PutErr    map[model.FileKind]error
	DeleteErr map[string]error
	OpenErr   error
	ListErr   error
	// MissingErr is returned by Open and Delete for unknown refs.
	MissingErr error

	// captured inputs
	PutKinds []model.FileKind
	Stored   []string
	Deleted  []string
	Opened   []*TrackingRSC

	// call flags
	InitCalled bool
	OpenCalled bool
	ListCalled bool

	seq int
}

// compile-time check: *BlobStore must satisfy port.BlobStore
var _ port.BlobStore = (*BlobStore)(nil)

func NewBlobStore() *BlobStore {
	return &BlobStore{Objects: map[string][]byte{}, ModTimes: map[string]time.Time{}}
}

func (m *BlobStore) Init(ctx context.Context) error {
	m.InitCalled = true
	return m.InitErr
}

func (m *BlobStore) Put(ctx context.Context, kind model.FileKind, r io.Reader, size int64, originalName string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.PutKinds = append(m.PutKinds, kind)
	if err := m.PutErr[kind]; err != nil {
		return "", err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.seq++
	ref := fmt.Sprintf("%d-%s%s", m.seq, kind, filepath.Ext(originalName))
	m.ensure()
	m.Objects[ref] = data
	m.ModTimes[ref] = time.Now()
	m.Stored = append(m.Stored, ref)
	return ref, nil
}

func (m *BlobStore) Delete(ctx context.Context, ref string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Deleted = append(m.Deleted, ref)
	if err := m.DeleteErr[ref]; err != nil {
		return err
	}
	if _, ok := m.Objects[ref]; !ok {
		return m.missing()
	}
	delete(m.Objects, ref)
	delete(m.ModTimes, ref)
	return nil
}

func (m *BlobStore) Open(ctx context.Context, ref string) (io.ReadSeekCloser, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.OpenCalled = true
	if m.OpenErr != nil {
		return nil, 0, m.OpenErr
	}
	data, ok := m.Objects[ref]
	if !ok {
		return nil, 0, m.missing()
	}
	rsc := &TrackingRSC{ReadSeeker: bytes.NewReader(data)}
	m.Opened = append(m.Opened, rsc)
	return rsc, int64(len(data)), nil
}

func (m *BlobStore) List(ctx context.Context) ([]port.ObjectInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ListCalled = true
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	out := make([]port.ObjectInfo, 0, len(m.Objects))
	for ref, data := range m.Objects {
		out = append(out, port.ObjectInfo{Key: ref, SizeBytes: int64(len(data)), ModTime: m.ModTimes[ref]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

// Has reports whether ref is currently stored.
func (m *BlobStore) Has(ref string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.Objects[ref]
	return ok
}

// Len returns the number of stored objects.
func (m *BlobStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Objects)
}

func (m *BlobStore) ensure() {
	if m.Objects == nil {
		m.Objects = map[string][]byte{}
	}
	if m.ModTimes == nil {
		m.ModTimes = map[string]time.Time{}
	}
}

func (m *BlobStore) missing() error {
	if m.MissingErr != nil {
		return m.MissingErr
	}
	return errMissing
}
