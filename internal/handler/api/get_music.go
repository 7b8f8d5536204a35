package api

import (
	"net/http"

	"github.com/fhuszti/music-catalog-ms-go/internal/api_context"
	"github.com/fhuszti/music-catalog-ms-go/internal/port"
)

// GetMusicHandler returns a single music record by ID.
func GetMusicHandler(svc port.MusicGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.IDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}

		m, err := svc.GetMusic(r.Context(), id)
		if err != nil {
			WriteUsecaseError(w, err, "Failed to get music")
			return
		}

		RespondJSON(w, http.StatusOK, m)
	}
}
