package api

import (
	"net/http"

	"github.com/fhuszti/music-catalog-ms-go/internal/api_context"
	"github.com/fhuszti/music-catalog-ms-go/internal/logger"
	"github.com/fhuszti/music-catalog-ms-go/internal/port"
)

// DeleteMusicHandler deletes a music by ID and returns the deleted record.
func DeleteMusicHandler(svc port.MusicDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.IDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}

		out, err := svc.DeleteMusic(r.Context(), id)
		AddWarnings(r.Context(), w, out.Warnings)
		if err != nil {
			WriteUsecaseError(w, err, "Failed to delete music")
			return
		}

		RespondJSON(w, http.StatusOK, out.Music)
		logger.Infof(r.Context(), "✅  Successfully deleted music #%s", id)
	}
}
