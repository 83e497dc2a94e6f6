package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"moodimello/internal/games"
	"moodimello/internal/models"
	"moodimello/internal/progression"
	"moodimello/internal/security"
	"moodimello/internal/service"
)

type memStore struct {
	profiles []models.StoredProfile
}

func (s *memStore) SaveProfile(p models.StoredProfile) error {
	s.profiles = append(s.profiles, p)
	return nil
}

func (s *memStore) GetProfileByID(id string) (*models.StoredProfile, error) {
	for _, p := range s.profiles {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, nil
}

func (s *memStore) GetAllProfiles() ([]models.StoredProfile, error) {
	return s.profiles, nil
}

func (s *memStore) CountProfiles() (int, error) {
	return len(s.profiles), nil
}

const testPIN = "2468"

func newTestServer(t *testing.T) (*httptest.Server, *service.HostService) {
	t.Helper()
	hash, err := security.HashPassword(testPIN)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	profileService := service.NewProfileService(&memStore{})
	if err := profileService.SeedDefaultProfiles(); err != nil {
		t.Fatalf("SeedDefaultProfiles() error = %v", err)
	}
	host := service.NewHostService(profileService, nil, service.HostOptions{ParentPINHash: hash})
	issuer := security.NewTokenIssuer("test-secret", time.Hour)

	router := NewRouter(
		NewMiddleware(issuer, host),
		NewSessionHandler(profileService, host, issuer),
		NewGameHandler(host),
	)
	srv := httptest.NewServer(router)
	t.Cleanup(func() {
		srv.Close()
		host.Shutdown()
	})
	return srv, host
}

func call(t *testing.T, srv *httptest.Server, method, path, token string, body any) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, srv.URL+path, reader)
	if err != nil {
		t.Fatalf("NewRequest() error = %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s error = %v", method, path, err)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, data
}

func startSession(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	status, data := call(t, srv, "POST", "/api/sessions", "", map[string]string{"profileId": "emma"})
	if status != http.StatusCreated {
		t.Fatalf("POST /api/sessions = %d %s, want %d", status, data, http.StatusCreated)
	}
	var resp startSessionResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		t.Fatalf("failed to decode session: %v", err)
	}
	if resp.TotalStars != progression.SeedStars {
		t.Errorf("TotalStars = %d, want %d", resp.TotalStars, progression.SeedStars)
	}
	return resp.Token
}

func TestListProfiles(t *testing.T) {
	srv, _ := newTestServer(t)

	status, data := call(t, srv, "GET", "/api/profiles", "", nil)
	if status != http.StatusOK {
		t.Fatalf("GET /api/profiles = %d, want %d", status, http.StatusOK)
	}
	var resp struct {
		Profiles []models.Profile `json:"profiles"`
	}
	json.Unmarshal(data, &resp)
	if len(resp.Profiles) != 2 {
		t.Errorf("got %d profiles, want 2", len(resp.Profiles))
	}
}

func TestStartSessionErrors(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name string
		body any
		want int
	}{
		{"missing profile", map[string]string{}, http.StatusBadRequest},
		{"unknown profile", map[string]string{"profileId": "nobody"}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if status, _ := call(t, srv, "POST", "/api/sessions", "", tt.body); status != tt.want {
				t.Errorf("POST /api/sessions = %d, want %d", status, tt.want)
			}
		})
	}
}

func TestRequireSession(t *testing.T) {
	srv, _ := newTestServer(t)

	if status, _ := call(t, srv, "GET", "/api/hub", "", nil); status != http.StatusUnauthorized {
		t.Errorf("GET /api/hub without token = %d, want %d", status, http.StatusUnauthorized)
	}
	if status, _ := call(t, srv, "GET", "/api/hub", "forged", nil); status != http.StatusUnauthorized {
		t.Errorf("GET /api/hub with forged token = %d, want %d", status, http.StatusUnauthorized)
	}
}

func TestMoodMirrorFlow(t *testing.T) {
	srv, _ := newTestServer(t)
	token := startSession(t, srv)

	if status, _ := call(t, srv, "GET", "/api/hub", token, nil); status != http.StatusConflict {
		t.Errorf("GET /api/hub before world = %d, want %d", status, http.StatusConflict)
	}
	if status, _ := call(t, srv, "POST", "/api/worlds/nowhere", token, nil); status != http.StatusNotFound {
		t.Errorf("POST /api/worlds/nowhere = %d, want %d", status, http.StatusNotFound)
	}
	if status, _ := call(t, srv, "POST", "/api/worlds/joy", token, nil); status != http.StatusOK {
		t.Fatalf("POST /api/worlds/joy = %d, want %d", status, http.StatusOK)
	}

	status, data := call(t, srv, "GET", "/api/hub", token, nil)
	if status != http.StatusOK {
		t.Fatalf("GET /api/hub = %d, want %d", status, http.StatusOK)
	}
	var hub hubResponse
	json.Unmarshal(data, &hub)
	if len(hub.Games) != 2 {
		t.Errorf("hub lists %d games, want 2", len(hub.Games))
	}

	if status, _ := call(t, srv, "POST", "/api/games/breathing-dragon", token, nil); status != http.StatusNotFound {
		t.Errorf("POST breathing-dragon in joy = %d, want %d", status, http.StatusNotFound)
	}
	if status, _ := call(t, srv, "POST", "/api/games/mood-mirror", token, nil); status != http.StatusCreated {
		t.Fatalf("POST /api/games/mood-mirror = %d, want %d", status, http.StatusCreated)
	}
	if status, _ := call(t, srv, "POST", "/api/games/current/next", token, nil); status != http.StatusConflict {
		t.Errorf("next before start = %d, want %d", status, http.StatusConflict)
	}
	if status, _ := call(t, srv, "POST", "/api/games/current/start", token, nil); status != http.StatusOK {
		t.Fatalf("start = %d, want %d", status, http.StatusOK)
	}
	if status, _ := call(t, srv, "POST", "/api/games/current/lane", token, map[string]string{"lane": "left"}); status != http.StatusBadRequest {
		t.Errorf("lane on mood mirror = %d, want %d", status, http.StatusBadRequest)
	}

	for i := 0; i < len(games.MoodMirrorScenarios()); i++ {
		if status, data := call(t, srv, "POST", "/api/games/current/choose", token, map[string]string{"choice": "happy"}); status != http.StatusOK {
			t.Fatalf("choose %d = %d %s", i, status, data)
		}
		if status, data := call(t, srv, "POST", "/api/games/current/next", token, nil); status != http.StatusOK {
			t.Fatalf("next %d = %d %s", i, status, data)
		}
	}

	status, data = call(t, srv, "GET", "/api/games/current", token, nil)
	var snap games.Snapshot
	json.Unmarshal(data, &snap)
	if status != http.StatusOK || snap.Status != games.StatusCompleted {
		t.Fatalf("GET /api/games/current = %d %s, want completed", status, snap.Status)
	}
	if snap.Result == nil || !snap.Result.HasBadge() {
		t.Errorf("Result = %+v, want the mood mirror badge", snap.Result)
	}

	status, data = call(t, srv, "GET", "/api/achievements", token, nil)
	var progress progression.Progress
	json.Unmarshal(data, &progress)
	if status != http.StatusOK || progress.TotalStars != progression.SeedStars+snap.Result.StarsEarned {
		t.Errorf("achievements = %d %+v", status, progress)
	}

	if status, _ := call(t, srv, "DELETE", "/api/sessions/current", token, map[string]string{"pin": "0000"}); status != http.StatusForbidden {
		t.Errorf("DELETE with wrong PIN = %d, want %d", status, http.StatusForbidden)
	}
	status, data = call(t, srv, "DELETE", "/api/sessions/current", token, map[string]string{"pin": testPIN})
	if status != http.StatusOK {
		t.Fatalf("DELETE /api/sessions/current = %d %s", status, data)
	}
	var summary models.SessionSummary
	json.Unmarshal(data, &summary)
	if len(summary.Games) != 1 || summary.StarsEarned != snap.Result.StarsEarned {
		t.Errorf("summary = %+v", summary)
	}

	if status, _ := call(t, srv, "GET", "/api/hub", token, nil); status != http.StatusUnauthorized {
		t.Errorf("GET /api/hub after end = %d, want %d", status, http.StatusUnauthorized)
	}
}

func TestStream(t *testing.T) {
	srv, _ := newTestServer(t)
	token := startSession(t, srv)
	call(t, srv, "POST", "/api/worlds/joy", token, nil)
	call(t, srv, "POST", "/api/games/mood-mirror", token, nil)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/games/current/stream?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	if err := conn.WriteJSON(service.GameAction{Kind: service.ActionStart}); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	var snap games.Snapshot
	if err := conn.ReadJSON(&snap); err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if snap.Game != models.GameMoodMirror || snap.Status != games.StatusPlaying {
		t.Errorf("snapshot = %s/%s, want mood-mirror/playing", snap.Game, snap.Status)
	}

	conn.WriteJSON(service.GameAction{Kind: service.ActionChoose, Choice: "bored"})
	var reply streamError
	if err := conn.ReadJSON(&reply); err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if reply.Action != service.ActionChoose || reply.Error == "" {
		t.Errorf("reply = %+v, want a choose error", reply)
	}

	if status, _ := call(t, srv, "DELETE", "/api/sessions/current", token, map[string]string{"pin": testPIN}); status != http.StatusOK {
		t.Fatalf("DELETE /api/sessions/current = %d", status)
	}
	// leaving the game streams a last snapshot before the close frame
	for {
		if _, _, err = conn.ReadMessage(); err != nil {
			break
		}
	}
	if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
		t.Errorf("ReadMessage() after end error = %v, want normal closure", err)
	}
}
