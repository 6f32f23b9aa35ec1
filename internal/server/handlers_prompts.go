package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/promptstitch/promptstitch/internal/query"
	"github.com/promptstitch/promptstitch/internal/store"
	"github.com/promptstitch/promptstitch/internal/validate"
	"github.com/promptstitch/promptstitch/pkg/models"
)

// handleListPrompts returns all prompts, most recently updated first.
// Optional query parameters refine the view: sort=usage|power|recent|title
// and favorites=true.
func (s *Service) handleListPrompts(w http.ResponseWriter, r *http.Request) {
	prompts, err := s.store.ListPrompts(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch prompts")
		writeError(w, http.StatusInternalServerError, "Failed to fetch prompts")
		return
	}

	if r.URL.Query().Get("favorites") == "true" {
		prompts = query.Favorites(prompts)
	}

	mode := query.ParseSortMode(r.URL.Query().Get("sort"))
	var history []models.UsageHistory
	if mode == query.SortPower {
		history, err = s.store.ListUsageHistory(r.Context())
		if err != nil {
			log.Error().Err(err).Msg("Failed to fetch usage history for power sort")
			writeError(w, http.StatusInternalServerError, "Failed to fetch prompts")
			return
		}
	}
	query.Sort(prompts, history, mode, time.Now())

	if prompts == nil {
		prompts = []models.Prompt{}
	}
	writeJSON(w, http.StatusOK, prompts)
}

func (s *Service) handleSearchPrompts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeError(w, http.StatusBadRequest, "Query parameter 'q' is required")
		return
	}

	prompts, err := s.store.SearchPrompts(r.Context(), q)
	if err != nil {
		log.Error().Err(err).Msg("Failed to search prompts")
		writeError(w, http.StatusInternalServerError, "Failed to search prompts")
		return
	}
	if prompts == nil {
		prompts = []models.Prompt{}
	}
	writeJSON(w, http.StatusOK, prompts)
}

func (s *Service) handleGetPrompt(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	prompt, err := s.store.GetPrompt(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Prompt not found")
		return
	}
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("Failed to fetch prompt")
		writeError(w, http.StatusInternalServerError, "Failed to fetch prompt")
		return
	}
	writeJSON(w, http.StatusOK, prompt)
}

func (s *Service) handleCreatePrompt(w http.ResponseWriter, r *http.Request) {
	var in models.InsertPrompt
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid prompt data")
		return
	}
	if verr := validate.InsertPrompt(in); verr != nil {
		writeValidationError(w, verr)
		return
	}

	prompt, err := s.store.CreatePrompt(r.Context(), in)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create prompt")
		writeError(w, http.StatusInternalServerError, "Failed to create prompt")
		return
	}
	s.broadcast("prompt", "created", prompt.ID)
	writeJSON(w, http.StatusCreated, prompt)
}

func (s *Service) handleUpdatePrompt(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var in models.UpdatePrompt
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid prompt data")
		return
	}
	if verr := validate.UpdatePrompt(in); verr != nil {
		writeValidationError(w, verr)
		return
	}

	prompt, err := s.store.UpdatePrompt(r.Context(), id, in)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Prompt not found")
		return
	}
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("Failed to update prompt")
		writeError(w, http.StatusInternalServerError, "Failed to update prompt")
		return
	}
	s.broadcast("prompt", "updated", prompt.ID)
	writeJSON(w, http.StatusOK, prompt)
}

func (s *Service) handleDeletePrompt(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	deleted, err := s.store.DeletePrompt(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("Failed to delete prompt")
		writeError(w, http.StatusInternalServerError, "Failed to delete prompt")
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "Prompt not found")
		return
	}
	s.broadcast("prompt", "deleted", id)
	w.WriteHeader(http.StatusNoContent)
}
