package api

import (
	"net/http"

	"github.com/fhuszti/music-catalog-ms-go/internal/api_context"
	"github.com/fhuszti/music-catalog-ms-go/internal/logger"
	"github.com/fhuszti/music-catalog-ms-go/internal/port"
)

// UpdateMusicHandler replaces the metadata of a music and any file sent
// along with it.
func UpdateMusicHandler(svc port.MusicUpdater, maxFileSize int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.IDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}

		form, err := readMusicForm(w, r, maxFileSize)
		if err != nil {
			writeFormError(w, err, maxFileSize)
			return
		}
		defer form.close()

		out, err := svc.UpdateMusic(r.Context(), port.UpdateMusicInput{
			ID:       id,
			Metadata: form.metadata,
			Files:    form.files,
		})
		AddWarnings(r.Context(), w, out.Warnings)
		if err != nil {
			WriteUsecaseError(w, err, "Failed to update music")
			return
		}

		RespondJSON(w, http.StatusCreated, out.Music)
		logger.Infof(r.Context(), "✅  Successfully updated music #%s", id)
	}
}
