// Package main is the entry point for the trip catalog API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/abhitrip/trip-catalog/api"
	"github.com/abhitrip/trip-catalog/internal/cache"
	"github.com/abhitrip/trip-catalog/internal/catalog"
	"github.com/abhitrip/trip-catalog/internal/config"
	"github.com/abhitrip/trip-catalog/internal/handler"
	"github.com/abhitrip/trip-catalog/internal/middleware"
	"github.com/abhitrip/trip-catalog/internal/repo"
	"github.com/abhitrip/trip-catalog/internal/service"
	"github.com/abhitrip/trip-catalog/internal/storage"
	"github.com/abhitrip/trip-catalog/migrations"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()

	// --- Static catalog ---------------------------------------------------
	// The bundled catalog is the fallback for every read; a broken bundle is
	// a build defect, so fail fast.
	static, err := catalog.LoadStatic()
	if err != nil {
		slog.Error("failed to load static catalog", "error", err)
		os.Exit(1)
	}

	// --- Database ---------------------------------------------------------
	// Without DATABASE_URL the server runs in demo mode: reads come from the
	// static catalog and admin writes are simulated. The mode is fixed here
	// for the life of the process.
	var (
		tripRepo        repo.TripRepo
		testimonialRepo repo.TestimonialRepo
	)
	if cfg.DemoMode() {
		slog.Warn("DATABASE_URL not set; running in demo mode")
	} else {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to create database pool", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		// A store that is down at start-up is not fatal: reads fall back to
		// the static catalog and writes report unavailable until it returns.
		if err := pool.Ping(ctx); err != nil {
			slog.Warn("database unreachable at start-up", "error", err)
		} else {
			slog.Info("database connection established")
		}

		if cfg.MigrateOnStart {
			if err := migrate(ctx, pool); err != nil {
				slog.Error("failed to run migrations", "error", err)
				os.Exit(1)
			}
		}

		tripRepo = repo.NewTripRepo(pool)
		testimonialRepo = repo.NewTestimonialRepo(pool)
	}

	// --- Snapshot cache ---------------------------------------------------
	resolverOpts := []catalog.Option{catalog.WithTimeout(cfg.RemoteTimeout)}
	if cfg.CacheEnabled() {
		redis, err := cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			// The cache only saves round-trips; run without it.
			slog.Warn("redis unavailable; snapshot cache disabled", "error", err)
		} else {
			defer redis.Close()
			resolverOpts = append(resolverOpts, catalog.WithCache(cache.NewSnapshotCache(redis, cfg.SnapshotTTL)))
			slog.Info("snapshot cache enabled", "ttl", cfg.SnapshotTTL)
		}
	}

	// --- Catalog and services ---------------------------------------------
	gateway := catalog.NewRemoteGateway(tripRepo, testimonialRepo, logger)
	resolver := catalog.NewResolver(gateway, static, logger, resolverOpts...)
	testimonials := catalog.NewTestimonials(gateway, static, cfg.RemoteTimeout, logger)

	auth := service.NewAuthService(service.AuthConfig{
		Email:        cfg.AdminEmail,
		PasswordHash: cfg.AdminPasswordHash,
		Secret:       []byte(cfg.JWTSecret),
		TTL:          cfg.JWTTTL,
	}, logger)
	if !auth.Enabled() {
		slog.Warn("ADMIN_PASSWORD_HASH not set; admin login disabled")
	}

	uploads, err := newUploader(ctx, cfg, logger)
	if err != nil {
		slog.Error("failed to configure uploads", "error", err)
		os.Exit(1)
	}

	srv := handler.NewServer(handler.Deps{
		Catalog:          resolver,
		Testimonials:     testimonials,
		Trips:            service.NewTripAdminService(tripRepo, resolver, cfg.DemoMode(), logger),
		TestimonialAdmin: service.NewTestimonialAdminService(testimonialRepo, cfg.DemoMode(), logger),
		Auth:             auth,
		Inquiries:        service.NewInquiryService(resolver, cfg.WhatsAppNumber),
		Export:           service.NewExportService(resolver),
		Uploads:          uploads,
		OpenAPI:          api.OpenAPI,
		Log:              logger,
	})

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer
	// → CORS → body limit.
	// RequestID generates a unique trace ID per request.
	// RealIP sets r.RemoteAddr from X-Forwarded-For / X-Real-IP (safe behind a proxy).
	// SlogLogger writes one structured JSON log line per request.
	// Recoverer catches panics and returns HTTP 500 instead of crashing.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))
	r.Mount("/", srv.Routes())

	// --- HTTP Server ------------------------------------------------------
	// WriteTimeout must outlast the remote fetch timeout so a slow store
	// still gets its static fallback written.
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.RemoteTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr, "demo_mode", cfg.DemoMode())
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// migrate applies every pending migration. goose needs a database/sql
// handle, so one is borrowed from the pool for the duration.
func migrate(ctx context.Context, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("create goose provider: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	for _, res := range results {
		slog.Info("migration applied", "version", res.Source.Version, "duration", res.Duration)
	}
	return nil
}

// newUploader returns the S3 uploader when a bucket is configured and the
// placeholder uploader otherwise.
func newUploader(ctx context.Context, cfg config.Config, log *slog.Logger) (storage.Uploader, error) {
	if cfg.S3Bucket == "" {
		log.Info("S3_BUCKET not set; uploads return a placeholder image")
		return storage.NewPlaceholder(log), nil
	}
	s3, err := storage.NewS3(ctx, storage.S3Config{
		Bucket:        cfg.S3Bucket,
		Region:        cfg.S3Region,
		PublicBaseURL: cfg.S3PublicBaseURL,
	})
	if err != nil {
		return nil, err
	}
	return s3, nil
}
