package api

import (
	"encoding/json"
	"net/http"

	"github.com/fhuszti/music-catalog-ms-go/internal/api_context"
	"github.com/fhuszti/music-catalog-ms-go/internal/logger"
	"github.com/fhuszti/music-catalog-ms-go/internal/port"
)

// maxLikesBody bounds the JSON body of a likes replacement.
const maxLikesBody = 1 << 20

type likesRequest struct {
	Likes []string `json:"likes"`
}

// UpdateLikesHandler replaces the likes set of a music.
func UpdateLikesHandler(svc port.LikesUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.IDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}

		var body likesRequest
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxLikesBody))
		if err := dec.Decode(&body); err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid JSON body", err)
			return
		}

		m, err := svc.UpdateLikes(r.Context(), port.UpdateLikesInput{ID: id, Likes: body.Likes})
		if err != nil {
			WriteUsecaseError(w, err, "Failed to update likes")
			return
		}

		RespondJSON(w, http.StatusCreated, m)
		logger.Infof(r.Context(), "✅  Replaced likes of music #%s", id)
	}
}
