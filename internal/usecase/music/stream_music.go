package music

import (
	"context"
	"fmt"
	"io"

	"github.com/fhuszti/music-catalog-ms-go/internal/port"
)

const audioContentType = "audio/mpeg"

type audioStreamerSrv struct {
	strg port.BlobStore
}

// compile-time check: *audioStreamerSrv must satisfy port.AudioStreamer
var _ port.AudioStreamer = (*audioStreamerSrv)(nil)

func NewAudioStreamer(strg port.BlobStore) port.AudioStreamer {
	return &audioStreamerSrv{strg: strg}
}

// OpenAudio opens the blob and positions it for the requested range. The
// blob is opened before anything is decided so a missing file is reported
// before any response is started.
func (s *audioStreamerSrv) OpenAudio(ctx context.Context, name, rangeHeader string) (*port.AudioStream, error) {
	rc, size, err := s.strg.Open(ctx, name)
	if err != nil {
		return nil, err
	}

	start, length, kind := parseRange(rangeHeader, size)
	if kind == rangeUnsatisfiable {
		_ = rc.Close()
		return nil, &RangeNotSatisfiableError{Size: size}
	}

	if start > 0 {
		if _, err := rc.Seek(start, io.SeekStart); err != nil {
			_ = rc.Close()
			return nil, fmt.Errorf("seek %s to %d: %w", name, start, err)
		}
	}

	return &port.AudioStream{
		Body:        rc,
		Size:        size,
		Start:       start,
		Length:      length,
		Partial:     kind == rangePartial,
		ContentType: audioContentType,
	}, nil
}
