package model

import (
	"time"

	"github.com/fhuszti/music-catalog-ms-go/internal/uuid"
)

// FileKind names one of the three files attached to a music record.
// The values double as multipart part names.
type FileKind string

const (
	FileThumbnail      FileKind = "thumbnail"
	FileThumbnailCover FileKind = "thumbnailCover"
	FileAudio          FileKind = "audio"
)

// FileKinds lists every kind in the order files are written during an upload.
var FileKinds = []FileKind{FileThumbnail, FileThumbnailCover, FileAudio}

type Music struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Authors        string    `json:"authors"`
	Rating         float64   `json:"rating"`
	Genre          string    `json:"genre"`
	Thumbnail      string    `json:"thumbnail"`
	ThumbnailCover string    `json:"thumbnailCover"`
	Audio          string    `json:"audio"`
	Likes          Likes     `json:"likes"`
	Recommend      bool      `json:"recommend"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"-"`
}

// Ref returns the blob reference stored for the given kind.
func (m *Music) Ref(kind FileKind) string {
	switch kind {
	case FileThumbnail:
		return m.Thumbnail
	case FileThumbnailCover:
		return m.ThumbnailCover
	case FileAudio:
		return m.Audio
	default:
		return ""
	}
}

// SetRef points the given kind at a new blob reference.
func (m *Music) SetRef(kind FileKind, ref string) {
	switch kind {
	case FileThumbnail:
		m.Thumbnail = ref
	case FileThumbnailCover:
		m.ThumbnailCover = ref
	case FileAudio:
		m.Audio = ref
	}
}

// BlobRefs returns the three blob references of the record.
func (m *Music) BlobRefs() []string {
	return []string{m.Thumbnail, m.ThumbnailCover, m.Audio}
}

// MusicPatch carries a partial update; nil fields are left untouched.
type MusicPatch struct {
	Title          *string
	Authors        *string
	Rating         *float64
	Genre          *string
	Recommend      *bool
	Thumbnail      *string
	ThumbnailCover *string
	Audio          *string
}

// SetRef records a replacement blob reference for the given kind.
func (p *MusicPatch) SetRef(kind FileKind, ref string) {
	switch kind {
	case FileThumbnail:
		p.Thumbnail = &ref
	case FileThumbnailCover:
		p.ThumbnailCover = &ref
	case FileAudio:
		p.Audio = &ref
	}
}

// Apply copies every non-nil field of the patch onto m.
func (p MusicPatch) Apply(m *Music) {
	if p.Title != nil {
		m.Title = *p.Title
	}
	if p.Authors != nil {
		m.Authors = *p.Authors
	}
	if p.Rating != nil {
		m.Rating = *p.Rating
	}
	if p.Genre != nil {
		m.Genre = *p.Genre
	}
	if p.Recommend != nil {
		m.Recommend = *p.Recommend
	}
	if p.Thumbnail != nil {
		m.Thumbnail = *p.Thumbnail
	}
	if p.ThumbnailCover != nil {
		m.ThumbnailCover = *p.ThumbnailCover
	}
	if p.Audio != nil {
		m.Audio = *p.Audio
	}
}
