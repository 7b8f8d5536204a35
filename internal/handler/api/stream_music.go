package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/fhuszti/music-catalog-ms-go/internal/logger"
	"github.com/fhuszti/music-catalog-ms-go/internal/metrics"
	"github.com/fhuszti/music-catalog-ms-go/internal/port"
	"github.com/fhuszti/music-catalog-ms-go/internal/usecase/music"
	"github.com/go-chi/chi/v5"
)

// StreamMusicHandler serves a stored audio file, honouring single byte ranges.
func StreamMusicHandler(svc port.AudioStreamer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		if name == "" {
			WriteError(w, http.StatusBadRequest, "file name is required", nil)
			return
		}

		stream, err := svc.OpenAudio(r.Context(), name, r.Header.Get("Range"))
		if err != nil {
			var rErr *music.RangeNotSatisfiableError
			if errors.As(err, &rErr) {
				metrics.RecordStream("unsatisfiable", 0)
			}
			WriteUsecaseError(w, err, "Could not open audio file")
			return
		}
		defer func() { _ = stream.Body.Close() }()

		h := w.Header()
		h.Set("Content-Type", stream.ContentType)
		h.Set("Accept-Ranges", "bytes")
		h.Set("Content-Length", strconv.FormatInt(stream.Length, 10))
		status, label := http.StatusOK, "full"
		if stream.Partial {
			h.Set("Content-Range", stream.ContentRange())
			status, label = http.StatusPartialContent, "partial"
		}
		w.WriteHeader(status)

		if r.Method == http.MethodHead {
			metrics.RecordStream(label, 0)
			return
		}

		n, err := io.CopyN(w, stream.Body, stream.Length)
		metrics.RecordStream(label, n)
		if err != nil {
			// headers are gone; the client sees a short body
			logger.Warnf(r.Context(), "audio stream %q interrupted after %d of %d bytes: %v", name, n, stream.Length, err)
		}
	}
}
