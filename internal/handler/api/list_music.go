package api

import (
	"net/http"

	"github.com/fhuszti/music-catalog-ms-go/internal/logger"
	"github.com/fhuszti/music-catalog-ms-go/internal/port"
)

func ListMusicHandler(renderer port.HTTPRenderer, svc port.MusicLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, etag, err := renderer.RenderListMusic(r.Context(), svc)
		if err != nil {
			WriteUsecaseError(w, err, "Could not list musics")
			return
		}

		w.Header().Set("ETag", etag)
		w.Header().Set("Cache-Control", "no-cache")
		if match := r.Header.Get("If-None-Match"); match == etag {
			w.WriteHeader(http.StatusNotModified)
			logger.Debug(r.Context(), "music list not modified")
			return
		}

		RespondRawJSON(w, http.StatusOK, raw)
	}
}
