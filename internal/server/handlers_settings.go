package server

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/promptstitch/promptstitch/internal/validate"
	"github.com/promptstitch/promptstitch/pkg/models"
)

func (s *Service) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.store.GetSettings(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch settings")
		writeError(w, http.StatusInternalServerError, "Failed to fetch settings")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (s *Service) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var in models.UpdateSettings
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid settings data")
		return
	}
	if verr := validate.UpdateSettings(in); verr != nil {
		writeValidationError(w, verr)
		return
	}

	settings, err := s.store.UpdateSettings(r.Context(), in)
	if err != nil {
		log.Error().Err(err).Msg("Failed to update settings")
		writeError(w, http.StatusInternalServerError, "Failed to update settings")
		return
	}
	s.broadcast("settings", "updated", settings.ID)
	writeJSON(w, http.StatusOK, settings)
}
