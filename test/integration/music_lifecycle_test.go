package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fhuszti/music-catalog-ms-go/internal/cache"
	"github.com/fhuszti/music-catalog-ms-go/internal/handler/api"
	"github.com/fhuszti/music-catalog-ms-go/internal/logger"
	cMiddleware "github.com/fhuszti/music-catalog-ms-go/internal/middleware"
	"github.com/fhuszti/music-catalog-ms-go/internal/model"
	"github.com/fhuszti/music-catalog-ms-go/internal/renderer"
	"github.com/fhuszti/music-catalog-ms-go/internal/repository/mariadb"
	musicSvc "github.com/fhuszti/music-catalog-ms-go/internal/usecase/music"
	"github.com/fhuszti/music-catalog-ms-go/internal/uuid"
	"github.com/fhuszti/music-catalog-ms-go/test/testutil"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
)

const maxUpload = 1 << 20

type env struct {
	srv    *httptest.Server
	bucket *testutil.TestBucket
	repo   *mariadb.MusicRepository
}

func newEnv(t *testing.T) *env {
	t.Helper()
	tdb := setupDB(t)
	tb := setupBucket(t)

	rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
	t.Cleanup(func() { _ = rdb.FlushAll(context.Background()).Err(); _ = rdb.Close() })

	repo := mariadb.NewMusicRepository(tdb.DB)
	ca := cache.NewCache(redisAddr, "")
	log := logger.Discard()

	r := chi.NewRouter()
	r.Route("/musics", func(r chi.Router) {
		r.Get("/", api.ListMusicHandler(renderer.NewHTTPRenderer(ca, time.Minute), musicSvc.NewMusicLister(repo)))
		r.Get("/search/{title}", api.SearchMusicHandler(musicSvc.NewMusicSearcher(repo)))
		r.Get("/stream/{name}", api.StreamMusicHandler(musicSvc.NewAudioStreamer(tb.Store)))
		r.Post("/", api.UploadMusicHandler(musicSvc.NewMusicUploader(repo, tb.Store, ca, uuid.NewUUID, log), maxUpload))
		r.With(cMiddleware.WithMusicID()).
			Put("/{id}", api.UpdateMusicHandler(musicSvc.NewMusicUpdater(repo, tb.Store, ca, log), maxUpload))
		r.With(cMiddleware.WithMusicID()).
			Delete("/{id}", api.DeleteMusicHandler(musicSvc.NewMusicDeleter(repo, tb.Store, ca, log)))
		r.With(cMiddleware.WithMusicID()).
			Put("/{id}/likes", api.UpdateLikesHandler(musicSvc.NewLikesUpdater(repo, ca, log)))
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return &env{srv: srv, bucket: tb, repo: repo}
}

func musicForm(t *testing.T, fields map[string]string, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		_ = mw.WriteField(k, v)
	}
	names := map[string]string{"thumbnail": "thumb.png", "thumbnailCover": "cover.png", "audio": "track.mp3"}
	for part, data := range files {
		fw, err := mw.CreateFormFile(part, names[part])
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		_, _ = fw.Write(data)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	return &body, mw.FormDataContentType()
}

func decodeMusic(t *testing.T, resp *http.Response) model.Music {
	t.Helper()
	var m model.Music
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		t.Fatalf("decode music: %v", err)
	}
	return m
}

func do(t *testing.T, req *http.Request) *http.Response {
	t.Helper()
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", req.Method, req.URL, err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestMusicLifecycle(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	png := testutil.GeneratePNG(t, 8, 8)
	audio := testutil.GenerateMP3(2048)
	fields := map[string]string{
		"title": "Harbour Lights", "authors": "The Tides", "rating": "4",
		"genre": "indie", "recommend": "true",
	}

	// upload
	body, ct := musicForm(t, fields, map[string][]byte{"thumbnail": png, "thumbnailCover": png, "audio": audio})
	req, _ := http.NewRequest(http.MethodPost, e.srv.URL+"/musics/", body)
	req.Header.Set("Content-Type", ct)
	resp := do(t, req)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("upload status = %d", resp.StatusCode)
	}
	created := decodeMusic(t, resp)
	if created.Title != "Harbour Lights" || created.Audio == "" {
		t.Fatalf("created = %+v", created)
	}
	if _, err := e.repo.GetByID(ctx, created.ID); err != nil {
		t.Fatalf("record not persisted: %v", err)
	}

	// ranged stream
	req, _ = http.NewRequest(http.MethodGet, e.srv.URL+"/musics/stream/"+created.Audio, nil)
	req.Header.Set("Range", "bytes=10-19")
	resp = do(t, req)
	if resp.StatusCode != http.StatusPartialContent {
		t.Fatalf("stream status = %d", resp.StatusCode)
	}
	got, _ := io.ReadAll(resp.Body)
	if !bytes.Equal(got, audio[10:20]) {
		t.Errorf("ranged body mismatch")
	}
	if cr := resp.Header.Get("Content-Range"); cr != "bytes 10-19/2048" {
		t.Errorf("Content-Range = %q", cr)
	}

	// list twice, second time from cache with matching ETag
	resp = do(t, mustReq(t, http.MethodGet, e.srv.URL+"/musics/"))
	etag := resp.Header.Get("ETag")
	if resp.StatusCode != http.StatusOK || etag == "" {
		t.Fatalf("list status = %d etag = %q", resp.StatusCode, etag)
	}
	req = mustReq(t, http.MethodGet, e.srv.URL+"/musics/")
	req.Header.Set("If-None-Match", etag)
	if resp = do(t, req); resp.StatusCode != http.StatusNotModified {
		t.Errorf("conditional list status = %d", resp.StatusCode)
	}

	// update replaces the audio file and removes the old blob
	newAudio := testutil.GenerateMP3(1024)
	fields["title"] = "Harbour Lights (Live)"
	body, ct = musicForm(t, fields, map[string][]byte{"audio": newAudio})
	req, _ = http.NewRequest(http.MethodPut, e.srv.URL+"/musics/"+created.ID.String(), body)
	req.Header.Set("Content-Type", ct)
	resp = do(t, req)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("update status = %d", resp.StatusCode)
	}
	updated := decodeMusic(t, resp)
	if updated.Audio == created.Audio || updated.Thumbnail != created.Thumbnail {
		t.Errorf("update refs: %+v", updated)
	}
	if _, _, err := e.bucket.Store.Open(ctx, created.Audio); !errors.Is(err, musicSvc.ErrObjectNotFound) {
		t.Errorf("old audio should be gone, got %v", err)
	}

	// the list cache was invalidated by the update
	resp = do(t, mustReq(t, http.MethodGet, e.srv.URL+"/musics/"))
	if resp.Header.Get("ETag") == etag {
		t.Errorf("list ETag unchanged after update")
	}

	// search
	resp = do(t, mustReq(t, http.MethodGet, e.srv.URL+"/musics/search/live"))
	var found []model.Music
	if err := json.NewDecoder(resp.Body).Decode(&found); err != nil || len(found) != 1 {
		t.Fatalf("search: %v %v", found, err)
	}

	// likes
	req, _ = http.NewRequest(http.MethodPut, e.srv.URL+"/musics/"+created.ID.String()+"/likes",
		bytes.NewBufferString(`{"likes":["u1","u2","u1"]}`))
	req.Header.Set("Content-Type", "application/json")
	resp = do(t, req)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("likes status = %d", resp.StatusCode)
	}
	if liked := decodeMusic(t, resp); len(liked.Likes) != 2 {
		t.Errorf("likes = %v", liked.Likes)
	}

	// delete removes the record and every blob
	resp = do(t, mustReq(t, http.MethodDelete, e.srv.URL+"/musics/"+created.ID.String()))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete status = %d", resp.StatusCode)
	}
	objs, err := e.bucket.Store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(objs) != 0 {
		t.Errorf("bucket should be empty after delete, got %+v", objs)
	}
	if resp = do(t, mustReq(t, http.MethodGet, e.srv.URL+"/musics/stream/"+updated.Audio)); resp.StatusCode != http.StatusNotFound {
		t.Errorf("stream after delete status = %d", resp.StatusCode)
	}
}

func TestUpload_ValidationLeavesNoBlobs(t *testing.T) {
	e := newEnv(t)

	png := testutil.GeneratePNG(t, 4, 4)
	body, ct := musicForm(t,
		map[string]string{"title": "", "authors": "x", "rating": "11", "genre": "g"},
		map[string][]byte{"thumbnail": png, "thumbnailCover": png, "audio": testutil.GenerateMP3(64)},
	)
	req, _ := http.NewRequest(http.MethodPost, e.srv.URL+"/musics/", body)
	req.Header.Set("Content-Type", ct)
	resp := do(t, req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	objs, err := e.bucket.Store.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(objs) != 0 {
		t.Errorf("no blob should be stored on validation failure, got %+v", objs)
	}
}

func mustReq(t *testing.T, method, url string) *http.Request {
	t.Helper()
	req, err := http.NewRequest(method, url, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	return req
}
