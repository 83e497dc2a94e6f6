package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"moodimello/internal/games"
	"moodimello/internal/progression"
	"moodimello/internal/security"
	"moodimello/internal/service"
)

func respondWithError(w http.ResponseWriter, status int, userMsg, logMsg string, err error) {
	if err != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		log.Printf("%s: %v", logMsg, err)
	}

	respondJSON(w, status, map[string]string{"error": userMsg})
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Warning: Failed to encode response: %v", err)
	}
}

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, security.ErrInvalidToken),
		errors.Is(err, security.ErrMissingToken):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrGameLocked),
		errors.Is(err, service.ErrWrongPIN):
		return http.StatusForbidden
	case errors.Is(err, service.ErrTooManyPINAttempts):
		return http.StatusTooManyRequests
	case errors.Is(err, service.ErrProfileNotFound),
		errors.Is(err, progression.ErrUnknownWorld),
		errors.Is(err, progression.ErrNotInWorld),
		errors.Is(err, games.ErrUnknownGame):
		return http.StatusNotFound
	case errors.Is(err, games.ErrUnknownLane),
		errors.Is(err, games.ErrUnknownChoice),
		errors.Is(err, service.ErrUnsupportedAction):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNoWorld),
		errors.Is(err, service.ErrGameActive),
		errors.Is(err, service.ErrNoActiveGame),
		errors.Is(err, games.ErrAlreadyStarted),
		errors.Is(err, games.ErrNotPlaying),
		errors.Is(err, games.ErrInputFrozen),
		errors.Is(err, games.ErrChoiceLocked),
		errors.Is(err, games.ErrNoSelection),
		errors.Is(err, games.ErrNoScenario),
		errors.Is(err, games.ErrNotFinished):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// respondWithServiceError answers with the status of a domain error. Only
// unexpected errors are logged and hidden from the client.
func respondWithServiceError(w http.ResponseWriter, logMsg string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		respondWithError(w, status, ErrInternalServerError, logMsg, err)
		return
	}
	respondWithError(w, status, err.Error(), "", nil)
}
