package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/fhuszti/music-catalog-ms-go/internal/cache"
	"github.com/fhuszti/music-catalog-ms-go/internal/config"
	"github.com/fhuszti/music-catalog-ms-go/internal/db"
	"github.com/fhuszti/music-catalog-ms-go/internal/handler/api"
	"github.com/fhuszti/music-catalog-ms-go/internal/logger"
	"github.com/fhuszti/music-catalog-ms-go/internal/metrics"
	cMiddleware "github.com/fhuszti/music-catalog-ms-go/internal/middleware"
	"github.com/fhuszti/music-catalog-ms-go/internal/port"
	"github.com/fhuszti/music-catalog-ms-go/internal/renderer"
	"github.com/fhuszti/music-catalog-ms-go/internal/repository/mariadb"
	"github.com/fhuszti/music-catalog-ms-go/internal/storage"
	musicSvc "github.com/fhuszti/music-catalog-ms-go/internal/usecase/music"
	"github.com/fhuszti/music-catalog-ms-go/internal/uuid"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}

	log := logger.Init(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, AddSource: cfg.LogSource})

	database := initDb(ctx, cfg)
	strg := initStorage(ctx, cfg)
	repo := mariadb.NewMusicRepository(database.DB)

	var ca port.Cache
	if cfg.RedisAddr != "" {
		ca = cache.NewCache(cfg.RedisAddr, cfg.RedisPassword)
		logger.Info(ctx, "✅  Redis cache enabled")
	} else {
		ca = cache.NewNoop()
		logger.Warn(ctx, "⚠️  Redis not configured, list caching is disabled")
	}

	r := initRouter(ctx)
	registerRoutes(r, cfg, repo, strg, ca, log)

	listenRouter(ctx, r, cfg, database)
}

func initDb(ctx context.Context, cfg *config.Settings) *db.Database {
	logger.Info(ctx, "initialising database...")

	database, err := db.New(ctx, db.ConfigFromSettings(cfg))
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}

	return database
}

func initStorage(ctx context.Context, cfg *config.Settings) port.BlobStore {
	logger.Infof(ctx, "initialising %s blob storage...", cfg.StorageDriver)

	strg, err := storage.NewBlobStore(cfg)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize blob storage: %v", err)
		os.Exit(1)
	}
	if err := strg.Init(ctx); err != nil {
		logger.Errorf(ctx, "❌  Failed to prepare blob storage: %v", err)
		os.Exit(1)
	}

	return strg
}

func initRouter(ctx context.Context) *chi.Mux {
	logger.Info(ctx, "initialising router...")

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.NotFound(api.NotFoundHandler())
	r.MethodNotAllowed(api.MethodNotAllowedHandler())

	return r
}

func registerRoutes(r chi.Router, cfg *config.Settings, repo port.MusicRepository, strg port.BlobStore, ca port.Cache, log *slog.Logger) {
	uploaderSvc := musicSvc.NewMusicUploader(repo, strg, ca, uuid.NewUUID, log)
	updaterSvc := musicSvc.NewMusicUpdater(repo, strg, ca, log)
	deleterSvc := musicSvc.NewMusicDeleter(repo, strg, ca, log)
	likesSvc := musicSvc.NewLikesUpdater(repo, ca, log)
	getterSvc := musicSvc.NewMusicGetter(repo)
	listerSvc := musicSvc.NewMusicLister(repo)
	searcherSvc := musicSvc.NewMusicSearcher(repo)
	streamerSvc := musicSvc.NewAudioStreamer(strg)
	rendererSvc := renderer.NewHTTPRenderer(ca, cfg.ListCacheTTL)

	r.Handle("/metrics", metrics.Handler())

	r.Route("/musics", func(r chi.Router) {
		r.Get("/", api.ListMusicHandler(rendererSvc, listerSvc))
		r.Get("/search", api.SearchMusicHandler(searcherSvc))
		r.Get("/search/{title}", api.SearchMusicHandler(searcherSvc))
		r.With(cMiddleware.WithMusicID()).
			Get("/{id}", api.GetMusicHandler(getterSvc))

		stream := api.StreamMusicHandler(streamerSvc)
		r.Get("/stream/{name}", stream)
		r.Head("/stream/{name}", stream)

		r.Group(func(r chi.Router) {
			r.Use(cMiddleware.WithDSTAuth(cfg.JWTPublicKey))

			r.Post("/", api.UploadMusicHandler(uploaderSvc, cfg.MaxUploadSize))
			r.With(cMiddleware.WithMusicID()).
				Put("/{id}", api.UpdateMusicHandler(updaterSvc, cfg.MaxUploadSize))
			r.With(cMiddleware.WithMusicID()).
				Delete("/{id}", api.DeleteMusicHandler(deleterSvc))
			r.With(cMiddleware.WithMusicID()).
				Put("/{id}/likes", api.UpdateLikesHandler(likesSvc))
		})
	})
}

func listenRouter(ctx context.Context, r *chi.Mux, cfg *config.Settings, database *db.Database) {
	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// start serving
	go func() {
		logger.Infof(ctx, "🚀 API listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(ctx, "❌  Listen error: %v", err)
			os.Exit(1)
		}
	}()

	// block until we get SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "❌  Server shutdown failed: %v", err)
		os.Exit(1)
	}
	logger.Info(ctx, "✅  Server gracefully stopped")

	if err := database.Close(); err != nil {
		logger.Errorf(ctx, "DB close error: %v", err)
		os.Exit(1)
	}
}
