package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// respondJSON sends a JSON response with the given status code
func respondJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			log.Error().Err(err).Msg("error encoding JSON response")
		}
	}
}

// respondError sends an error response in JSON format
func respondError(w http.ResponseWriter, code int, message string) {
	respondJSON(w, code, ErrorResponse{
		Error:   http.StatusText(code),
		Message: message,
		Code:    code,
	})
}

// respondBadRequest sends a 400 Bad Request error
func respondBadRequest(w http.ResponseWriter, message string) {
	respondError(w, http.StatusBadRequest, message)
}

// respondNotFound sends a 404 Not Found error
func respondNotFound(w http.ResponseWriter, message string) {
	respondError(w, http.StatusNotFound, message)
}

// respondInternalError sends a 500 Internal Server Error
func respondInternalError(w http.ResponseWriter, message string) {
	respondError(w, http.StatusInternalServerError, message)
}

// respondSuccess sends a 200 OK with payload
func respondSuccess(w http.ResponseWriter, payload any) {
	respondJSON(w, http.StatusOK, payload)
}
