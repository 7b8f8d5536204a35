package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/fhuszti/music-catalog-ms-go/internal/logger"
	"github.com/fhuszti/music-catalog-ms-go/internal/port"
	"github.com/fhuszti/music-catalog-ms-go/internal/usecase/music"
)

type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func WriteError(w http.ResponseWriter, status int, msg string, err error) {
	ctx := context.Background()
	if err != nil {
		logger.Errorf(ctx, "❌  %s: %v", msg, err)
	} else {
		logger.Error(ctx, "❌  "+msg)
	}
	w.Header().Set("Cache-Control", "no-store, max-age=0, must-revalidate")
	RespondJSON(w, status, ErrorResponse{Error: msg})
}

// WriteUsecaseError maps a catalog error to its HTTP status. msg is used for
// unexpected failures only.
func WriteUsecaseError(w http.ResponseWriter, err error, msg string) {
	var vErr *music.ValidationError
	var rErr *music.RangeNotSatisfiableError
	switch {
	case errors.As(err, &vErr):
		w.Header().Set("Cache-Control", "no-store, max-age=0, must-revalidate")
		RespondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "validation failed", Fields: vErr.Fields})
	case errors.As(err, &rErr):
		w.Header().Set("Content-Range", "bytes */"+strconv.FormatInt(rErr.Size, 10))
		WriteError(w, http.StatusRequestedRangeNotSatisfiable, "Requested range not satisfiable", nil)
	case errors.Is(err, music.ErrNotFound):
		WriteError(w, http.StatusNotFound, "Music not found", nil)
	case errors.Is(err, music.ErrObjectNotFound):
		WriteError(w, http.StatusNotFound, "File not found", nil)
	default:
		WriteError(w, http.StatusInternalServerError, msg, err)
	}
}

// AddWarnings exposes cleanup warnings as Warning headers and logs them.
func AddWarnings(ctx context.Context, w http.ResponseWriter, warnings []port.CleanupWarning) {
	for _, warn := range warnings {
		logger.Warn(ctx, "blob cleanup failed", "ref", warn.Ref, "reason", warn.Reason)
		w.Header().Add("Warning", fmt.Sprintf("199 - %s", strconv.Quote(warn.String())))
	}
}

func RespondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Errorf(context.Background(), "❌  Failed to encode JSON response: %v", err)
	}
}

func RespondRawJSON(w http.ResponseWriter, status int, raw []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(raw); err != nil {
		logger.Errorf(context.Background(), "❌  Failed to write JSON payload: %v", err)
	}
}
