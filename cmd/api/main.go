// cmd/api/main.go
// Main entry point for the Willow API
// Bootstraps all components and starts the server

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/davidoyelade/willow-backend/internal/auth"
	"github.com/davidoyelade/willow-backend/internal/common/database"
	"github.com/davidoyelade/willow-backend/internal/config"
	"github.com/davidoyelade/willow-backend/internal/pairing"
	"github.com/davidoyelade/willow-backend/internal/willingbox"
	"github.com/davidoyelade/willow-backend/pkg/logger"
)

func main() {
	// 1. Load environment variables; a missing .env file is fine in
	// deployed environments.
	_ = godotenv.Load()

	// 2. Load and validate configuration
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("configuration validation failed")
	}

	// 3. Connect to PostgreSQL
	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to PostgreSQL")
	}
	defer db.Close()
	log.Info("connected to PostgreSQL")

	// 4. Connect to Redis (optional)
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.NewRedisClientFromURL(cfg.RedisURL)
		if err != nil {
			log.WithError(err).Warn("Redis unavailable, continuing without cache")
			redisClient = nil
		} else {
			defer redisClient.Close()
			log.Info("connected to Redis")
		}
	}

	// 5. Run database migrations
	if err := runMigrations(db); err != nil {
		log.WithError(err).Fatal("failed to run migrations")
	}
	log.Info("database migrations completed")

	// 6. Initialize auth module
	authRepo := auth.NewPostgresRepository(db)
	authService := auth.NewService(authRepo, &auth.Config{
		JWTSecret:         cfg.JWTSecret,
		AccessTokenExpiry: cfg.AccessTokenExpiry,
		BCryptCost:        cfg.BCryptCost,
	})
	authHandler := auth.NewHandler(authService)
	authMiddleware := auth.NewMiddleware(authService)

	// 7. Initialize pairing module
	pairingRepo := pairing.NewPostgresRepository(db)
	pairingService := pairing.NewService(pairingRepo)
	pairingHandler := pairing.NewHandler(pairingService)

	// 8. Initialize willing-box module
	boxRepo := willingbox.NewPostgresRepository(db)
	boxCache := willingbox.NewCache(redisClient)
	boxService := willingbox.NewService(boxRepo, boxCache, time.Now)
	boxHandler := willingbox.NewHandler(boxService, pairingService)

	// 9. Start the reveal sweeper
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sweeper := willingbox.NewSweeper(boxService, cfg.RevealSweepInterval, log)
	go sweeper.Start(ctx)

	// 10. Set up routes
	router := mux.NewRouter()
	router.HandleFunc("/health", healthCheck).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	auth.RegisterRoutes(router, authHandler, authMiddleware)
	pairing.RegisterRoutes(router, pairingHandler, authMiddleware.Authenticate)
	willingbox.RegisterRoutes(router, boxHandler, authMiddleware.Authenticate)

	router.Use(requestLogging(log))
	router.Use(corsMiddleware)

	// 11. Create and start HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.WithFields(logrus.Fields{
			"port":        cfg.Port,
			"environment": cfg.Environment,
		}).Info("server starting")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutdown signal received")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}

	log.Info("server exited gracefully")
}

// healthCheck returns server health status
func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"healthy","timestamp":%q}`, time.Now().Format(time.RFC3339))
}

// requestLogging logs every request with method, path, status and duration
func requestLogging(log *logrus.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			log.WithFields(logrus.Fields{
				"method":   r.Method,
				"path":     r.URL.Path,
				"status":   wrapped.statusCode,
				"duration": time.Since(start).String(),
			}).Info("request")
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// corsMiddleware handles CORS
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// runMigrations executes database migrations
func runMigrations(db *sqlx.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			email VARCHAR(255) UNIQUE NOT NULL,
			username VARCHAR(100) UNIQUE NOT NULL,
			display_name VARCHAR(100),
			password_hash VARCHAR(255) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS pairings (
			id UUID PRIMARY KEY,
			partner_a INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			partner_b INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT pairings_distinct_partners CHECK (partner_a <> partner_b)
		)`,

		`CREATE TABLE IF NOT EXISTS willing_boxes (
			id UUID PRIMARY KEY,
			pairing_id UUID NOT NULL REFERENCES pairings(id) ON DELETE CASCADE,
			partner_a INTEGER NOT NULL,
			partner_b INTEGER NOT NULL,
			week_number INTEGER NOT NULL,
			wishes_a JSONB,
			wishes_b JSONB,
			selection_a JSONB,
			selection_b JSONB,
			locked BOOLEAN NOT NULL DEFAULT FALSE,
			locked_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT willing_boxes_pairing_week UNIQUE (pairing_id, week_number)
		)`,

		`CREATE TABLE IF NOT EXISTS weekly_scores (
			id UUID PRIMARY KEY,
			pairing_id UUID NOT NULL REFERENCES pairings(id) ON DELETE CASCADE,
			week_number INTEGER NOT NULL,
			guesses_a JSONB,
			guesses_b JSONB,
			score_a INTEGER NOT NULL DEFAULT 0,
			score_b INTEGER NOT NULL DEFAULT 0,
			completed BOOLEAN NOT NULL DEFAULT FALSE,
			completed_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT weekly_scores_pairing_week UNIQUE (pairing_id, week_number)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_pairings_partner_a ON pairings(partner_a)`,
		`CREATE INDEX IF NOT EXISTS idx_pairings_partner_b ON pairings(partner_b)`,
		`CREATE INDEX IF NOT EXISTS idx_willing_boxes_pairing ON willing_boxes(pairing_id, week_number DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_willing_boxes_locked ON willing_boxes(locked_at) WHERE locked = TRUE`,
		`CREATE INDEX IF NOT EXISTS idx_weekly_scores_pairing ON weekly_scores(pairing_id, week_number)`,
	}

	for i, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
