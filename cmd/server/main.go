package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/course-backend/internal/config"
	"github.com/stemsi/course-backend/internal/database"
	"github.com/stemsi/course-backend/internal/handler"
	"github.com/stemsi/course-backend/internal/logger"
	"github.com/stemsi/course-backend/internal/middleware"
	"github.com/stemsi/course-backend/internal/repository"
	"github.com/stemsi/course-backend/internal/router"
	"github.com/stemsi/course-backend/internal/service"
	"github.com/stemsi/course-backend/internal/telemetry"
	"github.com/stemsi/course-backend/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Str("not_found_mode", cfg.NotFoundMode).
		Msg("Starting Course API")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Tracing ───────────────────────────────────────────────────────
	shutdownTracing, err := telemetry.Init(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize tracing")
	}

	// ─── Schema Migrations ─────────────────────────────────────────────
	if cfg.AutoMigrate {
		if err := database.MigrateUp(cfg.DatabaseURL, log); err != nil {
			log.Fatal().Err(err).Msg("Failed to apply migrations")
		}
	}

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Rate Limiter ──────────────────────────────────────────────────
	// Counters live in Redis when configured so every instance shares them.
	var limiter *middleware.RateLimiter
	if cfg.RateLimitPerMinute > 0 {
		rdb, err := database.NewRedisClient(ctx, cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		var store middleware.CounterStore = middleware.NewMemoryCounterStore()
		if rdb != nil {
			defer rdb.Close()
			store = middleware.NewRedisCounterStore(rdb)
		}
		limiter = middleware.NewRateLimiter(store, cfg.RateLimitPerMinute, time.Minute, log)
	}

	// ─── Initialize Repositories ───────────────────────────────────────
	courseRepo := repository.NewCourseRepository(pool)
	enrollmentRepo := repository.NewEnrollmentRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	courseService := service.NewCourseService(courseRepo, enrollmentRepo, log)
	enrollmentService := service.NewEnrollmentService(enrollmentRepo, courseRepo, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	lenient := cfg.LenientNotFound()
	handlers := &router.Handlers{
		Course:     handler.NewCourseHandler(courseService, lenient, log),
		Enrollment: handler.NewEnrollmentHandler(enrollmentService, lenient, log),
		Health:     handler.NewHealthHandler(pool, log),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(handlers, cfg, log, limiter)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Tracer shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
