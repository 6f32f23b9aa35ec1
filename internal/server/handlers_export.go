package server

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/promptstitch/promptstitch/internal/export"
	"github.com/promptstitch/promptstitch/internal/validate"
)

// handleExport renders the whole prompt library in the requested format,
// defaulting to the format declared in settings.
func (s *Service) handleExport(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		settings, err := s.store.GetSettings(r.Context())
		if err != nil {
			log.Error().Err(err).Msg("Failed to fetch settings for export")
			writeError(w, http.StatusInternalServerError, "Failed to export prompts")
			return
		}
		format = settings.ExportFormat
	}
	if verr := validate.ExportFormat(format); verr != nil {
		writeValidationError(w, verr)
		return
	}

	prompts, err := s.store.ListPrompts(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch prompts for export")
		writeError(w, http.StatusInternalServerError, "Failed to export prompts")
		return
	}
	categories, err := s.store.ListCategories(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch categories for export")
		writeError(w, http.StatusInternalServerError, "Failed to export prompts")
		return
	}

	body, contentType, err := export.Render(export.Library{
		ExportedAt: time.Now(),
		Categories: categories,
		Prompts:    prompts,
	}, format)
	if err != nil {
		log.Error().Err(err).Str("format", format).Msg("Failed to render export")
		writeError(w, http.StatusInternalServerError, "Failed to export prompts")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
