package server

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/promptstitch/promptstitch/internal/validate"
	"github.com/promptstitch/promptstitch/pkg/models"
)

func (s *Service) handleListUsageHistory(w http.ResponseWriter, r *http.Request) {
	history, err := s.store.ListUsageHistory(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch usage history")
		writeError(w, http.StatusInternalServerError, "Failed to fetch usage history")
		return
	}
	if history == nil {
		history = []models.UsageHistory{}
	}
	writeJSON(w, http.StatusOK, history)
}

// handleRecordUsage appends a usage event. The referenced prompt's usage
// counter is bumped as a side effect when the prompt exists; the event is
// recorded either way.
func (s *Service) handleRecordUsage(w http.ResponseWriter, r *http.Request) {
	var in models.InsertUsageHistory
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid usage data")
		return
	}
	if verr := validate.InsertUsageHistory(in); verr != nil {
		writeValidationError(w, verr)
		return
	}

	usage, err := s.store.RecordUsage(r.Context(), in)
	if err != nil {
		log.Error().Err(err).Msg("Failed to record usage")
		writeError(w, http.StatusInternalServerError, "Failed to record usage")
		return
	}
	s.broadcast("usage", "recorded", usage.ID)
	writeJSON(w, http.StatusCreated, usage)
}
