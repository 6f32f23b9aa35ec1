// Package server provides the HTTP service for promptstitch.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/promptstitch/promptstitch/internal/config"
	"github.com/promptstitch/promptstitch/internal/generate"
	"github.com/promptstitch/promptstitch/internal/server/sse"
	"github.com/promptstitch/promptstitch/internal/store"
)

// Service wires the store, the prompt generator and the router together. It
// is constructed once at process start and handed its dependencies
// explicitly; there is no ambient global state.
type Service struct {
	version     string
	cfg         *config.Config
	store       store.Store
	generator   *generate.Generator
	broadcaster *sse.Broadcaster
	router      chi.Router
	startTime   time.Time
}

// New creates a fully routed service.
func New(version string, cfg *config.Config, st store.Store, gen *generate.Generator) *Service {
	s := &Service{
		version:     version,
		cfg:         cfg,
		store:       st,
		generator:   gen,
		broadcaster: sse.NewBroadcaster(),
		router:      chi.NewRouter(),
		startTime:   time.Now(),
	}
	s.setupRoutes()
	return s
}

// Router exposes the HTTP handler, mainly for tests.
func (s *Service) Router() http.Handler {
	return s.router
}

func (s *Service) setupRoutes() {
	r := s.router

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(recoverer)

	r.Get("/", s.handleIndex)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/events", s.broadcaster.ServeHTTP)
		r.Get("/export", s.handleExport)

		r.Route("/prompts", func(r chi.Router) {
			r.Get("/", s.handleListPrompts)
			r.Post("/", s.handleCreatePrompt)
			r.Get("/search", s.handleSearchPrompts)
			r.Get("/{id}", s.handleGetPrompt)
			r.Patch("/{id}", s.handleUpdatePrompt)
			r.Delete("/{id}", s.handleDeletePrompt)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", s.handleListCategories)
			r.Post("/", s.handleCreateCategory)
			r.Get("/{id}", s.handleGetCategory)
			r.Patch("/{id}", s.handleUpdateCategory)
			r.Delete("/{id}", s.handleDeleteCategory)
			r.Get("/{id}/count", s.handleCategoryCount)
		})

		r.Route("/usage-history", func(r chi.Router) {
			r.Get("/", s.handleListUsageHistory)
			r.Post("/", s.handleRecordUsage)
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", s.handleGetSettings)
			r.Patch("/", s.handleUpdateSettings)
		})

		r.Post("/generate-prompt", s.handleGeneratePrompt)
	})
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Service) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.cfg.Addr).Str("version", s.version).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info().Msg("HTTP server stopped")
	return nil
}

func (s *Service) broadcast(entity, action, id string) {
	s.broadcaster.Broadcast(sse.Event{Entity: entity, Action: action, ID: id})
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
		"uptime":  time.Since(s.startTime).Round(time.Second).String(),
	})
}
