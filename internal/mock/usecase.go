package mock

import (
	"context"
	"io"

	"github.com/fhuszti/music-catalog-ms-go/internal/model"
	"github.com/fhuszti/music-catalog-ms-go/internal/port"
	"github.com/fhuszti/music-catalog-ms-go/internal/uuid"
)

// MockMusicUploader implements port.MusicUploader for tests.
type MockMusicUploader struct {
	Out    port.MusicOutput
	Err    error
	Called bool
	In     port.UploadMusicInput
	// Contents holds what was read from each file part.
	Contents map[model.FileKind]string
}

func (m *MockMusicUploader) UploadMusic(ctx context.Context, in port.UploadMusicInput) (port.MusicOutput, error) {
	m.Called = true
	m.In = in
	m.Contents = readFiles(in.Files)
	return m.Out, m.Err
}

// MockMusicUpdater implements port.MusicUpdater for tests.
type MockMusicUpdater struct {
	Out      port.MusicOutput
	Err      error
	Called   bool
	In       port.UpdateMusicInput
	Contents map[model.FileKind]string
}

func (m *MockMusicUpdater) UpdateMusic(ctx context.Context, in port.UpdateMusicInput) (port.MusicOutput, error) {
	m.Called = true
	m.In = in
	m.Contents = readFiles(in.Files)
	return m.Out, m.Err
}

// MockMusicDeleter implements port.MusicDeleter for tests.
type MockMusicDeleter struct {
	Out    port.MusicOutput
	Err    error
	Called bool
	ID     uuid.UUID
}

func (m *MockMusicDeleter) DeleteMusic(ctx context.Context, id uuid.UUID) (port.MusicOutput, error) {
	m.Called = true
	m.ID = id
	return m.Out, m.Err
}

// MockMusicGetter implements port.MusicGetter for tests.
type MockMusicGetter struct {
	Out    *model.Music
	Err    error
	Called bool
	ID     uuid.UUID
}

func (m *MockMusicGetter) GetMusic(ctx context.Context, id uuid.UUID) (*model.Music, error) {
	m.Called = true
	m.ID = id
	return m.Out, m.Err
}

// MockMusicLister implements port.MusicLister for tests.
type MockMusicLister struct {
	Out    []*model.Music
	Err    error
	Called int
}

func (m *MockMusicLister) ListMusic(ctx context.Context) ([]*model.Music, error) {
	m.Called++
	return m.Out, m.Err
}

// MockMusicSearcher implements port.MusicSearcher for tests.
type MockMusicSearcher struct {
	Out    []*model.Music
	Err    error
	Called bool
	Needle string
}

func (m *MockMusicSearcher) SearchMusic(ctx context.Context, needle string) ([]*model.Music, error) {
	m.Called = true
	m.Needle = needle
	return m.Out, m.Err
}

// MockLikesUpdater implements port.LikesUpdater for tests.
type MockLikesUpdater struct {
	Out    *model.Music
	Err    error
	Called bool
	In     port.UpdateLikesInput
}

func (m *MockLikesUpdater) UpdateLikes(ctx context.Context, in port.UpdateLikesInput) (*model.Music, error) {
	m.Called = true
	m.In = in
	return m.Out, m.Err
}

// MockAudioStreamer implements port.AudioStreamer for tests.
type MockAudioStreamer struct {
	Out         *port.AudioStream
	Err         error
	Called      bool
	Name        string
	RangeHeader string
}

func (m *MockAudioStreamer) OpenAudio(ctx context.Context, name, rangeHeader string) (*port.AudioStream, error) {
	m.Called = true
	m.Name = name
	m.RangeHeader = rangeHeader
	return m.Out, m.Err
}

// MockBlobSweeper implements port.BlobSweeper for tests.
type MockBlobSweeper struct {
	Err    error
	Called bool
	Ref    string
}

func (m *MockBlobSweeper) SweepBlob(ctx context.Context, ref string) error {
	m.Called = true
	m.Ref = ref
	return m.Err
}

func readFiles(files map[model.FileKind]port.FileInput) map[model.FileKind]string {
	out := make(map[model.FileKind]string, len(files))
	for kind, f := range files {
		if f.Reader == nil {
			continue
		}
		b, _ := io.ReadAll(f.Reader)
		out[kind] = string(b)
	}
	return out
}
