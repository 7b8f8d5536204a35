package music

import (
	"strings"
	"testing"
	"time"

	"github.com/fhuszti/music-catalog-ms-go/internal/logger"
	"github.com/fhuszti/music-catalog-ms-go/internal/mock"
	"github.com/fhuszti/music-catalog-ms-go/internal/model"
	"github.com/fhuszti/music-catalog-ms-go/internal/port"
	"github.com/fhuszti/music-catalog-ms-go/internal/uuid"
)

var testLog = logger.Discard()

func fileInput(name, content string) port.FileInput {
	return port.FileInput{Reader: strings.NewReader(content), Size: int64(len(content)), Name: name}
}

func uploadFiles() map[model.FileKind]port.FileInput {
	return map[model.FileKind]port.FileInput{
		model.FileThumbnail:      fileInput("thumb.png", "thumb-bytes"),
		model.FileThumbnailCover: fileInput("cover.png", "cover-bytes"),
		model.FileAudio:          fileInput("song.mp3", "audio-bytes"),
	}
}

func newBlobStore() *mock.BlobStore {
	s := mock.NewBlobStore()
	s.MissingErr = ErrObjectNotFound
	return s
}

func newRepo(seed ...*model.Music) *mock.MusicRepo {
	r := mock.NewMusicRepo(seed...)
	r.NotFoundErr = ErrNotFound
	return r
}

// seedMusic stores three blobs and returns a record pointing at them.
func seedMusic(t *testing.T, strg *mock.BlobStore, title string, createdAt time.Time) *model.Music {
	t.Helper()
	m := &model.Music{
		ID:             uuid.NewUUID(),
		Title:          title,
		Authors:        "Artist",
		Rating:         3,
		Genre:          "Rock",
		Thumbnail:      title + "-thumb.png",
		ThumbnailCover: title + "-cover.png",
		Audio:          title + "-audio.mp3",
		Likes:          model.Likes{},
		CreatedAt:      createdAt,
		UpdatedAt:      createdAt,
	}
	for _, ref := range m.BlobRefs() {
		strg.Objects[ref] = []byte("old:" + ref)
		strg.ModTimes[ref] = createdAt
	}
	return m
}
