package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"moodimello/internal/games"
	"moodimello/internal/models"
	"moodimello/internal/progression"
	"moodimello/internal/scheduler"
	"moodimello/internal/security"
)

var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrNoWorld            = errors.New("no world selected")
	ErrGameLocked         = errors.New("not enough stars to play this game yet")
	ErrGameActive         = errors.New("another game is still running")
	ErrNoActiveGame       = errors.New("no game is running")
	ErrUnsupportedAction  = errors.New("action not supported by this game")
	ErrWrongPIN           = errors.New("wrong parent PIN")
	ErrTooManyPINAttempts = errors.New("too many PIN attempts, try again later")
)

const (
	pinAttempts      = 5
	pinAttemptWindow = 5 * time.Minute
	subscriberBuffer = 16
)

// Action kinds accepted by Act
const (
	ActionStart   = "start"
	ActionLane    = "lane"
	ActionKey     = "key"
	ActionDrag    = "drag"
	ActionChoose  = "choose"
	ActionNext    = "next"
	ActionConfirm = "confirm"
	ActionBack    = "back"
)

// GameAction is one discrete input for the running game
type GameAction struct {
	Kind   string  `json:"action"`
	Lane   string  `json:"lane,omitempty"`
	Key    string  `json:"key,omitempty"`
	DeltaX float64 `json:"deltaX,omitempty"`
	Choice string  `json:"choice,omitempty"`
}

// HostOptions tune a HostService. Zero values use production defaults.
type HostOptions struct {
	// ParentPINHash is a bcrypt hash; empty disables the exit PIN
	ParentPINHash string
	// NewRuntime creates the event loop of one session
	NewRuntime func() scheduler.Runtime
	// NewRandom creates the colour source of one reflex game
	NewRandom func() games.RandomSource
	Now       func() time.Time
}

// ChildSession is one child's visit. Everything below the mutex line is
// owned by the session runtime and only touched inside runtime callbacks.
type ChildSession struct {
	ID        string
	Profile   models.StoredProfile
	StartedAt time.Time
	Ledger    *progression.Ledger

	runtime    scheduler.Runtime
	startStars int

	subMu       sync.Mutex
	subscribers map[chan games.Snapshot]struct{}

	world     *progression.World
	visited   []progression.WorldID
	active    games.Game
	completed []models.CompletedGame
	newBadges []models.Badge
	ended     bool
}

// HostService owns the child sessions and mounts one game at a time in each
type HostService struct {
	profiles   *ProfileService
	notifier   SummaryNotifier
	pinHash    string
	limiter    *security.RateLimiter
	newRuntime func() scheduler.Runtime
	newRandom  func() games.RandomSource
	now        func() time.Time

	mu       sync.RWMutex
	sessions map[string]*ChildSession
}

// NewHostService creates a host
func NewHostService(profiles *ProfileService, notifier SummaryNotifier, opts HostOptions) *HostService {
	h := &HostService{
		profiles:   profiles,
		notifier:   notifier,
		pinHash:    opts.ParentPINHash,
		limiter:    security.NewRateLimiter(pinAttempts, pinAttemptWindow),
		newRuntime: opts.NewRuntime,
		newRandom:  opts.NewRandom,
		now:        opts.Now,
		sessions:   make(map[string]*ChildSession),
	}
	if h.newRuntime == nil {
		h.newRuntime = func() scheduler.Runtime { return scheduler.NewLoop() }
	}
	if h.newRandom == nil {
		h.newRandom = games.NewRandomSource
	}
	if h.now == nil {
		h.now = time.Now
	}
	return h
}

// StartSession opens a session for a profile with a freshly seeded ledger
func (h *HostService) StartSession(profileID string) (*ChildSession, error) {
	profile, err := h.profiles.GetProfile(profileID)
	if err != nil {
		return nil, err
	}

	ledger := progression.NewSessionLedger()
	s := &ChildSession{
		ID:          security.GenerateSessionID(),
		Profile:     *profile,
		StartedAt:   h.now(),
		Ledger:      ledger,
		runtime:     h.newRuntime(),
		startStars:  ledger.TotalStars(),
		subscribers: make(map[chan games.Snapshot]struct{}),
	}

	h.mu.Lock()
	h.sessions[s.ID] = s
	h.mu.Unlock()

	log.Printf("StartSession: Started session %s for %s", s.ID, profile.ID)
	return s, nil
}

// Session looks up a running session
func (h *HostService) Session(id string) (*ChildSession, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	s, ok := h.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// do runs fn on the session runtime
func (h *HostService) do(sessionID string, fn func(s *ChildSession) error) error {
	s, err := h.Session(sessionID)
	if err != nil {
		return err
	}
	var fnErr error
	if err := s.runtime.Do(func() {
		if s.ended {
			fnErr = ErrSessionNotFound
			return
		}
		fnErr = fn(s)
	}); err != nil {
		if errors.Is(err, scheduler.ErrClosed) {
			return ErrSessionNotFound
		}
		return err
	}
	return fnErr
}

// EndSession checks the parent PIN, leaves any running game, drops the
// session and mails the parent a summary
func (h *HostService) EndSession(ctx context.Context, sessionID, pin string) (models.SessionSummary, error) {
	if _, err := h.Session(sessionID); err != nil {
		return models.SessionSummary{}, err
	}
	if h.pinHash != "" {
		if !h.limiter.Allow(sessionID) {
			return models.SessionSummary{}, ErrTooManyPINAttempts
		}
		if !security.CheckPassword(pin, h.pinHash) {
			log.Printf("Warning: EndSession: wrong parent PIN for session %s", sessionID)
			return models.SessionSummary{}, ErrWrongPIN
		}
	}

	var summary models.SessionSummary
	var sess *ChildSession
	err := h.do(sessionID, func(s *ChildSession) error {
		if s.active != nil {
			s.active.Back()
		}
		s.ended = true
		summary = s.summary(h.now())
		sess = s
		return nil
	})
	if err != nil {
		return models.SessionSummary{}, err
	}

	h.mu.Lock()
	delete(h.sessions, sessionID)
	h.mu.Unlock()
	h.limiter.Forget(sessionID)
	sess.runtime.Close()
	sess.closeSubscribers()

	log.Printf("EndSession: Ended session %s for %s (%d games, %d stars)",
		sessionID, summary.Profile.ID, len(summary.Games), summary.StarsEarned)

	if h.notifier != nil {
		if err := h.notifier.SendSessionSummary(ctx, sess.Profile.ParentEmail, summary); err != nil {
			log.Printf("Warning: Failed to send session summary for %s: %v", sessionID, err)
		}
	}
	return summary, nil
}

// ExpireSessions ends sessions older than maxAge without a PIN or summary
func (h *HostService) ExpireSessions(maxAge time.Duration) int {
	cutoff := h.now().Add(-maxAge)

	h.mu.Lock()
	var stale []*ChildSession
	for id, s := range h.sessions {
		if s.StartedAt.Before(cutoff) {
			stale = append(stale, s)
			delete(h.sessions, id)
		}
	}
	h.mu.Unlock()

	for _, s := range stale {
		h.drop(s)
		log.Printf("ExpireSessions: Expired session %s", s.ID)
	}
	return len(stale)
}

// AbandonSession drops a session without a PIN check or summary
func (h *HostService) AbandonSession(sessionID string) {
	h.mu.Lock()
	s, ok := h.sessions[sessionID]
	delete(h.sessions, sessionID)
	h.mu.Unlock()

	if ok {
		h.drop(s)
	}
}

// drop stops a session that is no longer in the map
func (h *HostService) drop(s *ChildSession) {
	s.runtime.Do(func() {
		if s.active != nil {
			s.active.Back()
		}
		s.ended = true
	})
	s.runtime.Close()
	s.closeSubscribers()
	h.limiter.Forget(s.ID)
}

// Shutdown stops every session runtime
func (h *HostService) Shutdown() {
	h.mu.Lock()
	sessions := h.sessions
	h.sessions = make(map[string]*ChildSession)
	h.mu.Unlock()

	for _, s := range sessions {
		s.runtime.Close()
		s.closeSubscribers()
	}
}

// SelectWorld enters a world
func (h *HostService) SelectWorld(sessionID string, worldID progression.WorldID) (progression.World, error) {
	world, err := progression.FindWorld(worldID)
	if err != nil {
		return progression.World{}, err
	}
	err = h.do(sessionID, func(s *ChildSession) error {
		s.world = &world
		for _, v := range s.visited {
			if v == worldID {
				return nil
			}
		}
		s.visited = append(s.visited, worldID)
		return nil
	})
	return world, err
}

// Hub lists the games of the selected world with their lock state
func (h *HostService) Hub(sessionID string) (progression.World, []progression.HubEntry, error) {
	var world progression.World
	var entries []progression.HubEntry
	err := h.do(sessionID, func(s *ChildSession) error {
		if s.world == nil {
			return ErrNoWorld
		}
		world = *s.world
		entries = progression.Hub(world, s.Ledger)
		return nil
	})
	return world, entries, err
}

// Achievements returns the session's stars, badges and trophies
func (h *HostService) Achievements(sessionID string) (progression.Progress, error) {
	var p progression.Progress
	err := h.do(sessionID, func(s *ChildSession) error {
		p = progression.Achievements(s.Ledger, s.visited)
		return nil
	})
	return p, err
}

// LaunchGame mounts a game from the selected world if it is unlocked
func (h *HostService) LaunchGame(sessionID string, gameID models.GameID) (games.Snapshot, error) {
	var snap games.Snapshot
	err := h.do(sessionID, func(s *ChildSession) error {
		if s.world == nil {
			return ErrNoWorld
		}
		if !s.world.Offers(gameID) {
			return fmt.Errorf("%w: %s", progression.ErrNotInWorld, gameID)
		}
		info := progression.Games[gameID]
		if !s.Ledger.IsUnlocked(info.StarsNeeded) {
			return fmt.Errorf("%w: %s needs %d stars", ErrGameLocked, gameID, info.StarsNeeded)
		}
		if s.active != nil && isLive(s.active.Status()) {
			return ErrGameActive
		}

		game, err := h.mount(s, gameID)
		if err != nil {
			return err
		}
		s.active = game
		snap = game.Snapshot()
		log.Printf("LaunchGame: Session %s mounted %s", s.ID, gameID)
		return nil
	})
	return snap, err
}

// mount builds a machine wired to the session's ledger and subscribers
func (h *HostService) mount(s *ChildSession, gameID models.GameID) (games.Game, error) {
	var game games.Game
	cb := games.Callbacks{
		OnComplete: func(result models.GameResult) {
			if s.Ledger.Commit(result) {
				s.newBadges = append(s.newBadges, result.Badge)
			}
			s.completed = append(s.completed, models.CompletedGame{
				Game:        gameID,
				Result:      result,
				CompletedAt: h.now(),
			})
			log.Printf("GameComplete: Session %s finished %s with %d stars", s.ID, gameID, result.StarsEarned)
		},
		OnBack: func() {
			log.Printf("GameBack: Session %s left %s", s.ID, gameID)
		},
		OnUpdate: func() {
			if game != nil {
				s.publish(game.Snapshot())
			}
		},
	}

	game, err := games.New(gameID, s.Profile.Profile, s.runtime, h.newRandom(), cb)
	if err != nil {
		return nil, err
	}
	return game, nil
}

func isLive(status games.Status) bool {
	switch status {
	case games.StatusCompleted, games.StatusExited:
		return false
	}
	return true
}

// CurrentGame returns a snapshot of the mounted game
func (h *HostService) CurrentGame(sessionID string) (games.Snapshot, error) {
	var snap games.Snapshot
	err := h.do(sessionID, func(s *ChildSession) error {
		if s.active == nil {
			return ErrNoActiveGame
		}
		snap = s.active.Snapshot()
		return nil
	})
	return snap, err
}

// Act applies one input to the mounted game and returns the new snapshot
func (h *HostService) Act(sessionID string, action GameAction) (games.Snapshot, error) {
	var snap games.Snapshot
	err := h.do(sessionID, func(s *ChildSession) error {
		if s.active == nil {
			return ErrNoActiveGame
		}
		if err := apply(s.active, action); err != nil {
			return err
		}
		snap = s.active.Snapshot()
		return nil
	})
	return snap, err
}

func apply(game games.Game, action GameAction) error {
	switch action.Kind {
	case ActionStart:
		return game.Start()
	case ActionBack:
		game.Back()
		return nil
	}

	switch g := game.(type) {
	case *games.ReactionGame:
		switch action.Kind {
		case ActionLane:
			lane, err := games.ParseLane(action.Lane)
			if err != nil {
				return err
			}
			return g.SetLane(lane)
		case ActionKey:
			lane, ok := games.LaneForKey(action.Key)
			if !ok {
				return nil
			}
			return g.SetLane(lane)
		case ActionDrag:
			lane, ok := games.LaneForDrag(action.DeltaX, g.Lane())
			if !ok {
				return nil
			}
			return g.SetLane(lane)
		}
	case *games.QuestGame:
		switch action.Kind {
		case ActionChoose:
			_, err := g.Choose(action.Choice)
			return err
		case ActionConfirm:
			return g.Confirm()
		}
	case *games.MirrorGame:
		switch action.Kind {
		case ActionChoose:
			_, err := g.Choose(action.Choice)
			return err
		case ActionNext:
			return g.Next()
		}
	}
	return fmt.Errorf("%w: %s on %s", ErrUnsupportedAction, action.Kind, game.ID())
}

// Subscribe streams snapshots of every game state change in the session.
// Slow readers miss intermediate snapshots. The channel is closed when the
// session ends or cancel is called.
func (h *HostService) Subscribe(sessionID string) (<-chan games.Snapshot, func(), error) {
	s, err := h.Session(sessionID)
	if err != nil {
		return nil, nil, err
	}

	ch := make(chan games.Snapshot, subscriberBuffer)
	s.subMu.Lock()
	if s.subscribers == nil {
		s.subMu.Unlock()
		return nil, nil, ErrSessionNotFound
	}
	s.subscribers[ch] = struct{}{}
	s.subMu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.subMu.Lock()
			defer s.subMu.Unlock()
			if _, ok := s.subscribers[ch]; ok {
				delete(s.subscribers, ch)
				close(ch)
			}
		})
	}
	return ch, cancel, nil
}

func (s *ChildSession) publish(snap games.Snapshot) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for ch := range s.subscribers {
		select {
		case ch <- snap:
		default:
		}
	}
}

func (s *ChildSession) closeSubscribers() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for ch := range s.subscribers {
		close(ch)
	}
	s.subscribers = nil
}

// summary is built on the session runtime
func (s *ChildSession) summary(endedAt time.Time) models.SessionSummary {
	total := s.Ledger.TotalStars()
	completed := make([]models.CompletedGame, len(s.completed))
	copy(completed, s.completed)
	badges := make([]models.Badge, len(s.newBadges))
	copy(badges, s.newBadges)

	return models.SessionSummary{
		SessionID:   s.ID,
		Profile:     s.Profile.Profile,
		StartedAt:   s.StartedAt,
		EndedAt:     endedAt,
		Games:       completed,
		StarsEarned: total - s.startStars,
		NewBadges:   badges,
		TotalStars:  total,
	}
}
