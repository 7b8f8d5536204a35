package mock

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/fhuszti/music-catalog-ms-go/internal/model"
	"github.com/fhuszti/music-catalog-ms-go/internal/port"
	"github.com/fhuszti/music-catalog-ms-go/internal/uuid"
)

var errNotFound = errors.New("mock: music not found")

// MusicRepo is an in-memory port.MusicRepository for tests.
type MusicRepo struct {
	mu      sync.Mutex
	records map[uuid.UUID]*model.Music

	// errors
	CreateErr      error
	GetErr         error
	UpdateErr      error
	UpdateLikesErr error
	DeleteErr      error
	ListErr        error
	SearchErr      error
	ReferencedErr  error
	// NotFoundErr is returned for unknown ids.
	NotFoundErr error

	// captured inputs
	Created     *model.Music
	Patch       model.MusicPatch
	Likes       model.Likes
	DeletedID   uuid.UUID
	SearchInput string

	// call flags
	CreateCalled      bool
	UpdateCalled      bool
	UpdateLikesCalled bool
	DeleteCalled      bool
}

// compile-time check: *MusicRepo must satisfy port.MusicRepository
var _ port.MusicRepository = (*MusicRepo)(nil)

// NewMusicRepo returns a repository seeded with the given records.
func NewMusicRepo(seed ...*model.Music) *MusicRepo {
	r := &MusicRepo{records: map[uuid.UUID]*model.Music{}}
	for _, m := range seed {
		r.records[m.ID] = clone(m)
	}
	return r
}

func (r *MusicRepo) Create(ctx context.Context, m *model.Music) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.CreateCalled = true
	r.Created = m
	if r.CreateErr != nil {
		return r.CreateErr
	}
	r.ensure()
	r.records[m.ID] = clone(m)
	return nil
}

func (r *MusicRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Music, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.GetErr != nil {
		return nil, r.GetErr
	}
	m, ok := r.records[id]
	if !ok {
		return nil, r.notFound()
	}
	return clone(m), nil
}

func (r *MusicRepo) Update(ctx context.Context, id uuid.UUID, patch model.MusicPatch) (*model.Music, *model.Music, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.UpdateCalled = true
	r.Patch = patch
	if r.UpdateErr != nil {
		return nil, nil, r.UpdateErr
	}
	m, ok := r.records[id]
	if !ok {
		return nil, nil, r.notFound()
	}
	prev := clone(m)
	patch.Apply(m)
	return prev, clone(m), nil
}

func (r *MusicRepo) UpdateLikes(ctx context.Context, id uuid.UUID, likes model.Likes) (*model.Music, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.UpdateLikesCalled = true
	r.Likes = likes
	if r.UpdateLikesErr != nil {
		return nil, r.UpdateLikesErr
	}
	m, ok := r.records[id]
	if !ok {
		return nil, r.notFound()
	}
	m.Likes = likes
	return clone(m), nil
}

func (r *MusicRepo) Delete(ctx context.Context, id uuid.UUID) (*model.Music, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.DeleteCalled = true
	r.DeletedID = id
	if r.DeleteErr != nil {
		return nil, r.DeleteErr
	}
	m, ok := r.records[id]
	if !ok {
		return nil, r.notFound()
	}
	delete(r.records, id)
	return m, nil
}

func (r *MusicRepo) ListAll(ctx context.Context) ([]*model.Music, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.ListErr != nil {
		return nil, r.ListErr
	}
	return r.sorted(func(*model.Music) bool { return true }), nil
}

func (r *MusicRepo) SearchByTitle(ctx context.Context, needle string) ([]*model.Music, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.SearchInput = needle
	if r.SearchErr != nil {
		return nil, r.SearchErr
	}
	needle = strings.ToLower(needle)
	return r.sorted(func(m *model.Music) bool {
		return strings.Contains(strings.ToLower(m.Title), needle)
	}), nil
}

func (r *MusicRepo) IsBlobReferenced(ctx context.Context, ref string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.ReferencedErr != nil {
		return false, r.ReferencedErr
	}
	for _, m := range r.records {
		for _, b := range m.BlobRefs() {
			if b == ref {
				return true, nil
			}
		}
	}
	return false, nil
}

// Len returns the number of stored records.
func (r *MusicRepo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

func (r *MusicRepo) sorted(keep func(*model.Music) bool) []*model.Music {
	out := make([]*model.Music, 0, len(r.records))
	for _, m := range r.records {
		if keep(m) {
			out = append(out, clone(m))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *MusicRepo) ensure() {
	if r.records == nil {
		r.records = map[uuid.UUID]*model.Music{}
	}
}

func (r *MusicRepo) notFound() error {
	if r.NotFoundErr != nil {
		return r.NotFoundErr
	}
	return errNotFound
}

func clone(m *model.Music) *model.Music {
	c := *m
	c.Likes = append(model.Likes(nil), m.Likes...)
	return &c
}
