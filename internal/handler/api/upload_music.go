package api

import (
	"net/http"

	"github.com/fhuszti/music-catalog-ms-go/internal/logger"
	"github.com/fhuszti/music-catalog-ms-go/internal/port"
)

// UploadMusicHandler creates a music record from a multipart upload.
func UploadMusicHandler(svc port.MusicUploader, maxFileSize int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, err := readMusicForm(w, r, maxFileSize)
		if err != nil {
			writeFormError(w, err, maxFileSize)
			return
		}
		defer form.close()

		out, err := svc.UploadMusic(r.Context(), port.UploadMusicInput{
			Metadata: form.metadata,
			Files:    form.files,
		})
		AddWarnings(r.Context(), w, out.Warnings)
		if err != nil {
			WriteUsecaseError(w, err, "Failed to upload music")
			return
		}

		RespondJSON(w, http.StatusCreated, out.Music)
		logger.Infof(r.Context(), "✅  Successfully uploaded music #%s", out.Music.ID)
	}
}
