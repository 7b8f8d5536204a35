package api

import (
	"net/http"

	"github.com/fhuszti/music-catalog-ms-go/internal/port"
	"github.com/go-chi/chi/v5"
)

// SearchMusicHandler matches titles against the q query parameter, or the
// {title} URL segment when q is absent.
func SearchMusicHandler(svc port.MusicSearcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		needle := r.URL.Query().Get("q")
		if needle == "" {
			needle = chi.URLParam(r, "title")
		}

		musics, err := svc.SearchMusic(r.Context(), needle)
		if err != nil {
			WriteUsecaseError(w, err, "Could not search musics")
			return
		}

		RespondJSON(w, http.StatusOK, musics)
	}
}
