package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/isdelr/ecolearn/internal/fixtures"
	"github.com/rs/zerolog/log"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

// writeStoreError answers with the status matching a store error. Unexpected errors are
// logged and hidden behind a generic message.
func writeStoreError(w http.ResponseWriter, err error, action string) {
	status := fixtures.StatusFor(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("Failed to " + action)
		http.Error(w, "Failed to "+action, status)
		return
	}
	http.Error(w, err.Error(), status)
}

// decode reads a JSON body into v, answering 400 itself when it cannot.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}
