// Package server sets up the HTTP server, router, and all route definitions.
//
// This is the composition root: main.go hands over a Config, and New wires
// the whole dependency chain in one place:
//
//	sqlite.DB → repositories → services → handlers → routes
//
// Handlers never touch the database; services never touch HTTP.
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

	"github.com/sakif/study-plan/internal/auth"
	"github.com/sakif/study-plan/internal/handler"
	"github.com/sakif/study-plan/internal/middleware"
	"github.com/sakif/study-plan/internal/plangen"
	"github.com/sakif/study-plan/internal/plangen/webhook"
	sqliteRepo "github.com/sakif/study-plan/internal/repository/sqlite"
	"github.com/sakif/study-plan/internal/service"
)

// Config holds server configuration, filled from the environment by main.
type Config struct {
	Port       int
	DBPath     string
	JWTSecret  string
	WebhookURL string        // empty or a "replace-me" placeholder selects the mock generator
	MockDelay  time.Duration // mock generation delay; negative selects the default
}

// Server owns the router and the resources that need closing on shutdown.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New creates a Server: opens the database, assembles the dependency chain,
// and registers all routes.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
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

// setupRoutes configures middleware, builds the services, and maps routes.
//
// ROUTE STRUCTURE:
//
//	POST   /api/register       → create account        (201)
//	POST   /api/login          → authenticate          (200)
//	POST   /api/logout         → clear session cookie  (200)
//	GET    /api/me             → current account       (auth required)
//	GET    /api/plans          → list own plans        (?userId=)
//	GET    /api/plans/{id}     → fetch one own plan    (?userId=)
//	DELETE /api/plans/{id}     → delete one own plan   (?userId=)
//	POST   /api/generate-plan  → generate + persist
//	GET    /api/health         → liveness
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	tokens, err := auth.NewTokenService(s.config.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}

	// Pick the plan generator: real webhook when configured, mock otherwise.
	var generator plangen.Generator
	if webhook.Configured(s.config.WebhookURL) {
		generator = webhook.New(webhook.DefaultConfig(s.config.WebhookURL), s.logger)
		s.logger.Info("using webhook plan generator")
	} else {
		generator = plangen.NewMock(s.config.MockDelay, s.logger)
		s.logger.Warn("webhook URL not configured; plans will use mock content")
	}

	authService := service.NewAuthService(sqliteRepo.NewUserStore(s.db), auth.NewPasswordService(), tokens, s.logger)
	planService := service.NewPlanService(sqliteRepo.NewPlanStore(s.db), generator, s.logger)

	authHandler := handler.NewAuthHandler(authService, s.logger)
	planHandler := handler.NewPlanHandler(planService, s.logger)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/health", handler.HandleHealth)

		r.Post("/register", authHandler.HandleRegister)
		r.Post("/login", authHandler.HandleLogin)
		r.Post("/logout", authHandler.HandleLogout)

		r.With(auth.RequireAuth(tokens)).Get("/me", authHandler.HandleMe)

		r.Get("/plans", planHandler.HandleList)
		r.Get("/plans/{id}", planHandler.HandleGet)
		r.Delete("/plans/{id}", planHandler.HandleDelete)
		r.Post("/generate-plan", planHandler.HandleGenerate)
	})

	return nil
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, drain in-flight requests for up
// to 30 seconds, and close the database so the WAL is flushed.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // generation holds the response open for the webhook round-trip
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
