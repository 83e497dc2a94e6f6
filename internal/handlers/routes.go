package handlers

import "net/http"

// NewRouter registers every API route and wraps them with request logging
func NewRouter(middleware *Middleware, sessionHandler *SessionHandler, gameHandler *GameHandler) http.Handler {
	mux := http.NewServeMux()

	// Public routes
	mux.HandleFunc("GET /api/profiles", sessionHandler.ListProfiles)
	mux.HandleFunc("POST /api/sessions", sessionHandler.StartSession)
	mux.HandleFunc("GET /api/worlds", sessionHandler.ListWorlds)

	// Child session routes
	mux.HandleFunc("DELETE /api/sessions/current", middleware.RequireSession(sessionHandler.EndSession))
	mux.HandleFunc("POST /api/worlds/{worldId}", middleware.RequireSession(sessionHandler.SelectWorld))
	mux.HandleFunc("GET /api/hub", middleware.RequireSession(sessionHandler.Hub))
	mux.HandleFunc("GET /api/achievements", middleware.RequireSession(sessionHandler.Achievements))

	// Game routes
	mux.HandleFunc("GET /api/games/current", middleware.RequireSession(gameHandler.CurrentGame))
	mux.HandleFunc("GET /api/games/current/stream", middleware.RequireSession(gameHandler.Stream))
	mux.HandleFunc("POST /api/games/current/{action}", middleware.RequireSession(gameHandler.Act))
	mux.HandleFunc("POST /api/games/{gameId}", middleware.RequireSession(gameHandler.LaunchGame))

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return Logging(mux)
}
