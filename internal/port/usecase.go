package port

import (
	"context"
	"fmt"
	"io"

	"github.com/fhuszti/music-catalog-ms-go/internal/model"
	"github.com/fhuszti/music-catalog-ms-go/internal/uuid"
)

type UUIDGen func() uuid.UUID

// FileInput is one uploaded file as delivered by the transport layer.
type FileInput struct {
	Reader io.Reader
	Size   int64
	Name   string
}

// MetadataInput holds the raw form values of a music record.
type MetadataInput struct {
	Title     string
	Authors   string
	Rating    string
	Genre     string
	Recommend string
}

// CleanupWarning reports a blob that could not be removed after a failure or
// a replacement, or that was already gone. The orphan sweep removes leftovers
// later.
type CleanupWarning struct {
	Ref    string
	Reason string
}

func (w CleanupWarning) String() string {
	return fmt.Sprintf("could not delete %s: %s", w.Ref, w.Reason)
}

// MusicOutput is a record together with any cleanup warnings raised while
// producing it.
type MusicOutput struct {
	Music    *model.Music
	Warnings []CleanupWarning
}

// MusicUploader stores three files and creates the record referencing them.
type MusicUploader interface {
	UploadMusic(ctx context.Context, in UploadMusicInput) (MusicOutput, error)
}
type UploadMusicInput struct {
	Metadata MetadataInput
	Files    map[model.FileKind]FileInput
}

// MusicUpdater replaces metadata and, optionally, any of the three files.
type MusicUpdater interface {
	UpdateMusic(ctx context.Context, in UpdateMusicInput) (MusicOutput, error)
}
type UpdateMusicInput struct {
	ID       uuid.UUID
	Metadata MetadataInput
	Files    map[model.FileKind]FileInput
}

// MusicDeleter removes a record and then its files.
type MusicDeleter interface {
	DeleteMusic(ctx context.Context, id uuid.UUID) (MusicOutput, error)
}

// MusicGetter returns a single record by id.
type MusicGetter interface {
	GetMusic(ctx context.Context, id uuid.UUID) (*model.Music, error)
}

// MusicLister returns every record, newest first.
type MusicLister interface {
	ListMusic(ctx context.Context) ([]*model.Music, error)
}

// MusicSearcher returns records whose title contains the needle.
type MusicSearcher interface {
	SearchMusic(ctx context.Context, needle string) ([]*model.Music, error)
}

// LikesUpdater replaces the likes set of a record.
type LikesUpdater interface {
	UpdateLikes(ctx context.Context, in UpdateLikesInput) (*model.Music, error)
}
type UpdateLikesInput struct {
	ID    uuid.UUID
	Likes []string
}

// AudioStreamer opens a stored audio blob for a full or ranged read.
type AudioStreamer interface {
	OpenAudio(ctx context.Context, name, rangeHeader string) (*AudioStream, error)
}

// AudioStream is an open blob positioned at Start. Length bytes must be
// copied to the client; the caller closes Body.
type AudioStream struct {
	Body        io.ReadCloser
	Size        int64
	Start       int64
	Length      int64
	Partial     bool
	ContentType string
}

// ContentRange returns the Content-Range value of a partial stream.
func (s *AudioStream) ContentRange() string {
	return fmt.Sprintf("bytes %d-%d/%d", s.Start, s.Start+s.Length-1, s.Size)
}

// BacklogSweeper enqueues unreferenced blobs older than the grace period.
type BacklogSweeper interface {
	SweepBacklog(ctx context.Context) (int, error)
}

// BlobSweeper deletes a blob if no record references it anymore.
type BlobSweeper interface {
	SweepBlob(ctx context.Context, ref string) error
}
