package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/promptstitch/promptstitch/internal/query"
	"github.com/promptstitch/promptstitch/internal/store"
	"github.com/promptstitch/promptstitch/internal/validate"
	"github.com/promptstitch/promptstitch/pkg/models"
)

func (s *Service) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.store.ListCategories(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch categories")
		writeError(w, http.StatusInternalServerError, "Failed to fetch categories")
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}
	writeJSON(w, http.StatusOK, categories)
}

func (s *Service) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	category, err := s.store.GetCategory(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Category not found")
		return
	}
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("Failed to fetch category")
		writeError(w, http.StatusInternalServerError, "Failed to fetch category")
		return
	}
	writeJSON(w, http.StatusOK, category)
}

func (s *Service) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var in models.InsertCategory
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid category data")
		return
	}
	if verr := validate.InsertCategory(in); verr != nil {
		writeValidationError(w, verr)
		return
	}

	category, err := s.store.CreateCategory(r.Context(), in)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create category")
		writeError(w, http.StatusInternalServerError, "Failed to create category")
		return
	}
	s.broadcast("category", "created", category.ID)
	writeJSON(w, http.StatusCreated, category)
}

func (s *Service) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var in models.UpdateCategory
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid category data")
		return
	}
	if verr := validate.UpdateCategory(in); verr != nil {
		writeValidationError(w, verr)
		return
	}

	category, err := s.store.UpdateCategory(r.Context(), id, in)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Category not found")
		return
	}
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("Failed to update category")
		writeError(w, http.StatusInternalServerError, "Failed to update category")
		return
	}
	s.broadcast("category", "updated", category.ID)
	writeJSON(w, http.StatusOK, category)
}

func (s *Service) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	deleted, err := s.store.DeleteCategory(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("Failed to delete category")
		writeError(w, http.StatusInternalServerError, "Failed to delete category")
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "Category not found")
		return
	}
	s.broadcast("category", "deleted", id)
	w.WriteHeader(http.StatusNoContent)
}

// handleCategoryCount counts non-archived prompts in the category. An unknown
// or deleted category simply counts zero; dangling references are tolerated
// everywhere on the read path.
func (s *Service) handleCategoryCount(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	prompts, err := s.store.ListPrompts(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to count prompts")
		writeError(w, http.StatusInternalServerError, "Failed to count prompts")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"count": query.CountByCategory(prompts, id)})
}
