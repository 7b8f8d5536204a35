package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fhuszti/music-catalog-ms-go/internal/api_context"
	"github.com/fhuszti/music-catalog-ms-go/internal/model"
	"github.com/fhuszti/music-catalog-ms-go/internal/uuid"
	"github.com/go-chi/chi/v5"
)

var testID = mustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee")

func mustParse(s string) uuid.UUID {
	id, err := uuid.Parse(s)
	if err != nil {
		panic(err)
	}
	return id
}

type part struct {
	name     string
	filename string
	content  string
}

var validFields = map[string]string{
	"title":     "Song",
	"authors":   "Someone",
	"rating":    "4.5",
	"genre":     "rock",
	"recommend": "true",
}

func allParts() []part {
	return []part{
		{name: "thumbnail", filename: "thumb.png", content: "thumb-bytes"},
		{name: "thumbnailCover", filename: "cover.png", content: "cover-bytes"},
		{name: "audio", filename: "song.mp3", content: "audio-bytes"},
	}
}

// multipartRequest builds a multipart request with the given text fields and
// file parts.
func multipartRequest(t *testing.T, method, target string, fields map[string]string, parts []part) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	for _, p := range parts {
		fw, err := mw.CreateFormFile(p.name, p.filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write([]byte(p.content)); err != nil {
			t.Fatalf("write part: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(method, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func withID(req *http.Request, id uuid.UUID) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), api_context.IDKey, id))
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func sampleMusic() *model.Music {
	return &model.Music{
		ID:             testID,
		Title:          "Song",
		Authors:        "Someone",
		Rating:         4.5,
		Genre:          "rock",
		Thumbnail:      "1-1.png",
		ThumbnailCover: "1-2.png",
		Audio:          "1-3.mp3",
		Likes:          model.Likes{},
		Recommend:      true,
	}
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid error body %q: %v", rec.Body.String(), err)
	}
	return resp
}
