package server

import (
	"fmt"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"github.com/promptstitch/promptstitch/internal/validate"
)

// writeJSON writes data as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// writeError writes a {"message": ...} error body.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"message": message})
}

// writeValidationError writes the structured 400 body: a message plus one
// entry per offending field.
func writeValidationError(w http.ResponseWriter, verr *validate.ValidationError) {
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"message": verr.Message,
		"errors":  verr.Fields,
	})
}

// decodeJSON decodes a request body into v.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}
