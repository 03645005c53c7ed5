// Package server wires the dependency graph and owns the HTTP lifecycle.
//
// This is the composition root: everything — store, token service,
// upstream client, services, handlers, routes — is assembled in New, and
// each layer only receives the interfaces it needs. main.go stays minimal.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sakif/gitcompare/internal/auth"
	"github.com/sakif/gitcompare/internal/github"
	"github.com/sakif/gitcompare/internal/handler"
	"github.com/sakif/gitcompare/internal/middleware"
	sqliteRepo "github.com/sakif/gitcompare/internal/repository/sqlite"
	"github.com/sakif/gitcompare/internal/service"
)

// Config holds everything the server needs, assembled once at startup
// and threaded into constructors — never read from the environment below
// this point.
type Config struct {
	Port         int
	DBPath       string   // path to the SQLite database file
	JWTSecret    string   // HMAC secret for session tokens
	GitHubToken  string   // optional: token for upstream API calls
	GitHubAPIURL string   // optional: upstream base URL override (tests)
	CORSOrigins  []string // browser origins allowed to call the API
}

// Server is the HTTP server and the resources it owns. The database
// connection and the rate limiter's cleanup goroutine are released during
// graceful shutdown.
type Server struct {
	router      *chi.Mux
	config      Config
	logger      *slog.Logger
	db          *sqliteRepo.DB
	authLimiter *middleware.RateLimiter
}

// New creates a Server, assembling the full dependency chain.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT secret is required")
	}

	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures middleware and the route table.
//
// Route structure:
//
//	GET  /          → API banner
//	GET  /healthz   → liveness probe
//	POST /signup    → create account          (rate limited)
//	POST /login     → issue bearer token      (rate limited)
//	GET  /me        → current identity        (auth required)
//	POST /compare   → compare two profiles    (auth required)
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	// The frontend runs on a different origin and sends the bearer token
	// itself, so the browser needs CORS approval for these origins.
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.config.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// === Dependency chain ===
	tokens, err := auth.NewTokenService(s.config.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService()

	authService := service.NewAuthService(s.db, tokens, passwords, s.logger)

	githubClient := github.New(s.config.GitHubAPIURL, s.config.GitHubToken, s.logger)
	compareService := service.NewCompareService(githubClient, s.logger)

	authHandler := handler.NewAuthHandler(authService, s.logger)
	compareHandler := handler.NewCompareHandler(compareService, s.logger)

	// 30 auth attempts per minute per client, burst of 10 — generous for
	// humans, a wall for credential stuffing.
	s.authLimiter = middleware.NewRateLimiter(30, 10)

	// === Routes ===
	s.router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"GitHub Profile Comparator API"}`))
	})
	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	s.router.Group(func(r chi.Router) {
		r.Use(s.authLimiter.Middleware())
		r.Post("/signup", authHandler.HandleSignup)
		r.Post("/login", authHandler.HandleLogin)
	})

	s.router.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(authService))
		r.Get("/me", authHandler.HandleMe)
		r.Post("/compare", compareHandler.HandleCompare)
	})

	return nil
}

// Start runs the server until SIGINT/SIGTERM, then shuts down gracefully:
// stop accepting connections, give in-flight requests 30 seconds, release
// the database and the limiter's goroutine.
func (s *Server) Start() error {
	defer s.db.Close()
	defer s.authLimiter.Stop()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second, // compare can wait on two 10s upstream calls
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
