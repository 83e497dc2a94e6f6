package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"moodimello/internal/models"
	"moodimello/internal/progression"
	"moodimello/internal/security"
	"moodimello/internal/service"
)

// SessionHandler handles profile selection, the child session and the
// world hub
type SessionHandler struct {
	profileService *service.ProfileService
	host           *service.HostService
	issuer         *security.TokenIssuer
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(profileService *service.ProfileService, host *service.HostService, issuer *security.TokenIssuer) *SessionHandler {
	return &SessionHandler{
		profileService: profileService,
		host:           host,
		issuer:         issuer,
	}
}

// ListProfiles returns the profiles a child can pick from
func (h *SessionHandler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.profileService.ListProfiles()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error listing profiles", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"profiles": profiles})
}

type startSessionRequest struct {
	ProfileID string `json:"profileId"`
}

type startSessionResponse struct {
	SessionID  string              `json:"sessionId"`
	Token      string              `json:"token"`
	ExpiresAt  time.Time           `json:"expiresAt"`
	Profile    models.Profile      `json:"profile"`
	TotalStars int                 `json:"totalStars"`
	Badges     []models.Badge      `json:"badges"`
	Worlds     []progression.World `json:"worlds"`
}

// StartSession opens a child session for the chosen profile
func (h *SessionHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	var req startSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProfileID == "" {
		respondWithError(w, http.StatusBadRequest, ErrInvalidRequestBody, "", nil)
		return
	}

	session, err := h.host.StartSession(req.ProfileID)
	if err != nil {
		respondWithServiceError(w, "Error starting session", err)
		return
	}

	token, expires, err := h.issuer.Issue(session.ID, session.Profile.ID)
	if err != nil {
		h.host.AbandonSession(session.ID)
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error issuing session token", err)
		return
	}

	http.SetCookie(w, security.CreateSessionCookie(r, token, expires))
	respondJSON(w, http.StatusCreated, startSessionResponse{
		SessionID:  session.ID,
		Token:      token,
		ExpiresAt:  expires,
		Profile:    session.Profile.Profile,
		TotalStars: session.Ledger.TotalStars(),
		Badges:     session.Ledger.Badges(),
		Worlds:     progression.Worlds,
	})
}

type endSessionRequest struct {
	PIN string `json:"pin"`
}

// EndSession leaves the child session after the parent PIN check
func (h *SessionHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
		return
	}

	var req endSessionRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, ErrInvalidRequestBody, "", nil)
			return
		}
	}

	summary, err := h.host.EndSession(r.Context(), session.ID, req.PIN)
	if err != nil {
		respondWithServiceError(w, "Error ending session", err)
		return
	}

	http.SetCookie(w, security.CreateDeleteCookie(r))
	respondJSON(w, http.StatusOK, summary)
}

// ListWorlds returns the world catalog
func (h *SessionHandler) ListWorlds(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"worlds": progression.Worlds})
}

// SelectWorld enters a world
func (h *SessionHandler) SelectWorld(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
		return
	}

	worldID := progression.WorldID(r.PathValue("worldId"))
	world, err := h.host.SelectWorld(session.ID, worldID)
	if err != nil {
		respondWithServiceError(w, "Error selecting world", err)
		return
	}

	log.Printf("SelectWorld: Session %s entered %s", session.ID, worldID)
	respondJSON(w, http.StatusOK, world)
}

type hubResponse struct {
	World      progression.World      `json:"world"`
	TotalStars int                    `json:"totalStars"`
	Games      []progression.HubEntry `json:"games"`
}

// Hub lists the games of the selected world with their lock state
func (h *SessionHandler) Hub(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
		return
	}

	world, entries, err := h.host.Hub(session.ID)
	if err != nil {
		respondWithServiceError(w, "Error loading hub", err)
		return
	}

	respondJSON(w, http.StatusOK, hubResponse{
		World:      world,
		TotalStars: session.Ledger.TotalStars(),
		Games:      entries,
	})
}

// Achievements returns stars, badges and trophies of the session
func (h *SessionHandler) Achievements(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
		return
	}

	progress, err := h.host.Achievements(session.ID)
	if err != nil {
		respondWithServiceError(w, "Error loading achievements", err)
		return
	}
	respondJSON(w, http.StatusOK, progress)
}
