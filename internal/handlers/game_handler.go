package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"moodimello/internal/games"
	"moodimello/internal/models"
	"moodimello/internal/service"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second
	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second
	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
	// Maximum size of one input message
	maxMessageSize = 512
)

// GameHandler mounts games and forwards input to them
type GameHandler struct {
	host     *service.HostService
	upgrader websocket.Upgrader
}

// NewGameHandler creates a new game handler. An empty origin list accepts
// any origin.
func NewGameHandler(host *service.HostService, allowedOrigins ...string) *GameHandler {
	h := &GameHandler{
		host: host,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	if len(allowedOrigins) > 0 {
		h.upgrader.CheckOrigin = func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			for _, o := range allowedOrigins {
				if origin == o {
					return true
				}
			}
			return false
		}
	} else {
		h.upgrader.CheckOrigin = func(r *http.Request) bool { return true }
	}
	return h
}

// LaunchGame mounts a game of the selected world
func (h *GameHandler) LaunchGame(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
		return
	}

	gameID := models.GameID(r.PathValue("gameId"))
	snap, err := h.host.LaunchGame(session.ID, gameID)
	if err != nil {
		respondWithServiceError(w, "Error launching game", err)
		return
	}
	respondJSON(w, http.StatusCreated, snap)
}

// CurrentGame returns a snapshot of the mounted game
func (h *GameHandler) CurrentGame(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
		return
	}

	snap, err := h.host.CurrentGame(session.ID)
	if err != nil {
		respondWithServiceError(w, "Error loading game", err)
		return
	}
	respondJSON(w, http.StatusOK, snap)
}

// Act applies one input named by the path to the mounted game
func (h *GameHandler) Act(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
		return
	}

	var action service.GameAction
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&action); err != nil {
			respondWithError(w, http.StatusBadRequest, ErrInvalidRequestBody, "", nil)
			return
		}
	}
	action.Kind = r.PathValue("action")

	snap, err := h.host.Act(session.ID, action)
	if err != nil {
		respondWithServiceError(w, "Error applying game action", err)
		return
	}
	respondJSON(w, http.StatusOK, snap)
}

type streamError struct {
	Action string `json:"action"`
	Error  string `json:"error"`
}

// Stream upgrades to a WebSocket that pushes a snapshot after every game
// transition and accepts GameAction messages
func (h *GameHandler) Stream(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
		return
	}

	updates, cancel, err := h.host.Subscribe(session.ID)
	if err != nil {
		respondWithServiceError(w, "Error subscribing to game", err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		cancel()
		log.Printf("Stream: Failed to upgrade websocket for session %s: %v", session.ID, err)
		return
	}

	log.Printf("Stream: Session %s connected", session.ID)
	replies := make(chan any, 8)
	go h.writePump(conn, updates, replies)
	h.readPump(conn, session.ID, replies)

	cancel()
	log.Printf("Stream: Session %s disconnected", session.ID)
}

// readPump forwards input until the peer goes away
func (h *GameHandler) readPump(conn *websocket.Conn, sessionID string, replies chan<- any) {
	defer close(replies)

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var action service.GameAction
		if err := conn.ReadJSON(&action); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("Stream: Read error for session %s: %v", sessionID, err)
			}
			return
		}

		// Snapshots of successful actions arrive through the subscription
		if _, err := h.host.Act(sessionID, action); err != nil {
			reply := streamError{Action: action.Kind, Error: err.Error()}
			if statusFor(err) == http.StatusInternalServerError {
				log.Printf("Stream: Error applying %s for session %s: %v", action.Kind, sessionID, err)
				reply.Error = ErrInternalServerError
			}
			select {
			case replies <- reply:
			default:
			}
		}
	}
}

// writePump owns every write to the connection
func (h *GameHandler) writePump(conn *websocket.Conn, updates <-chan games.Snapshot, replies <-chan any) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case snap, ok := <-updates:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The session ended
				conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session ended"))
				return
			}
			if err := conn.WriteJSON(snap); err != nil {
				return
			}
		case reply, ok := <-replies:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(reply); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
