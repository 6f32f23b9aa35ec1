package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/promptstitch/promptstitch/internal/generate"
)

type generateRequest struct {
	UserInput string `json:"userInput"`
}

// handleGeneratePrompt asks the completion provider to turn the user's rough
// input into an optimized prompt. Missing provider credentials are a
// configuration error (503), never a crash.
func (s *Service) handleGeneratePrompt(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "userInput is required and must be a non-empty string")
		return
	}
	if strings.TrimSpace(req.UserInput) == "" {
		writeError(w, http.StatusBadRequest, "userInput is required and must be a non-empty string")
		return
	}

	if !s.generator.Configured() {
		log.Error().Msg("Completion provider base URL or API key not set")
		writeError(w, http.StatusServiceUnavailable,
			"AI service is not configured. Please ensure OpenAI integration is properly set up.")
		return
	}

	generated, err := s.generator.Generate(r.Context(), req.UserInput)
	if errors.Is(err, generate.ErrEmptyCompletion) {
		log.Error().Msg("Completion provider returned empty content")
		writeError(w, http.StatusInternalServerError,
			"AI service returned an empty response. Please try again.")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("Prompt generation failed")
		writeJSON(w, generate.UpstreamStatus(err), map[string]string{
			"message": "Failed to generate prompt",
			"error":   err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"generatedPrompt": generated,
		"originalInput":   req.UserInput,
	})
}
