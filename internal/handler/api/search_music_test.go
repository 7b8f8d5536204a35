package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fhuszti/music-catalog-ms-go/internal/mock"
	"github.com/fhuszti/music-catalog-ms-go/internal/model"
)

func TestSearchMusicHandler(t *testing.T) {
	t.Run("title from path", func(t *testing.T) {
		svc := &mock.MockMusicSearcher{Out: []*model.Music{sampleMusic()}}
		req := withURLParam(httptest.NewRequest(http.MethodGet, "/musics/search/song", nil), "title", "song")
		rec := httptest.NewRecorder()
		SearchMusicHandler(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if svc.Needle != "song" {
			t.Errorf("needle = %q", svc.Needle)
		}
		if !strings.Contains(rec.Body.String(), `"title":"Song"`) {
			t.Errorf("body = %s", rec.Body.String())
		}
	})

	t.Run("title from query", func(t *testing.T) {
		svc := &mock.MockMusicSearcher{Out: []*model.Music{}}
		req := httptest.NewRequest(http.MethodGet, "/musics/search?q=rock+song", nil)
		rec := httptest.NewRecorder()
		SearchMusicHandler(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if svc.Needle != "rock song" {
			t.Errorf("needle = %q", svc.Needle)
		}
		if strings.TrimSpace(rec.Body.String()) != "[]" {
			t.Errorf("body = %s; want []", rec.Body.String())
		}
	})

	t.Run("query wins over path", func(t *testing.T) {
		svc := &mock.MockMusicSearcher{Out: []*model.Music{}}
		req := withURLParam(httptest.NewRequest(http.MethodGet, "/musics/search/path?q=query", nil), "title", "path")
		rec := httptest.NewRecorder()
		SearchMusicHandler(svc).ServeHTTP(rec, req)

		if svc.Needle != "query" {
			t.Errorf("needle = %q; want %q", svc.Needle, "query")
		}
	})

	t.Run("service error", func(t *testing.T) {
		svc := &mock.MockMusicSearcher{Err: errors.New("boom")}
		rec := httptest.NewRecorder()
		SearchMusicHandler(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/musics/search?q=x", nil))

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d", rec.Code)
		}
	})
}
