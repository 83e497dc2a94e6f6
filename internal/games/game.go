// Package games holds the mini-game state machines. Machines are driven by
// a scheduler.Scheduler and by discrete input calls, and they must only be
// touched from the goroutine that runs their scheduler callbacks.
package games

import (
	"errors"
	"fmt"
	"time"

	"moodimello/internal/models"
	"moodimello/internal/scheduler"
)

// Status is the lifecycle position shared by every game
type Status string

const (
	StatusReady      Status = "ready"
	StatusPlaying    Status = "playing"
	StatusResults    Status = "results"
	StatusCompleting Status = "completing"
	StatusCompleted  Status = "completed"
	StatusExited     Status = "exited"
)

var (
	ErrAlreadyStarted = errors.New("game already started")
	ErrNotPlaying     = errors.New("game is not in play")
	ErrInputFrozen    = errors.New("input is frozen while the answer is judged")
	ErrUnknownLane    = errors.New("unknown lane")
	ErrChoiceLocked   = errors.New("a choice was already made for this scenario")
	ErrUnknownChoice  = errors.New("unknown choice")
	ErrNoSelection    = errors.New("no choice made for this scenario")
	ErrNoScenario     = errors.New("no scenario left")
	ErrNotFinished    = errors.New("results are not ready")
	ErrUnknownGame    = errors.New("unknown game")
)

// Callbacks connect a machine to its host. OnComplete fires exactly once
// per finished game and OnBack at most once; never both.
type Callbacks struct {
	OnComplete func(models.GameResult)
	OnBack     func()
	// OnUpdate fires after every state change
	OnUpdate func()
}

// Game is the host-facing surface shared by all machines
type Game interface {
	ID() models.GameID
	Start() error
	Back() bool
	Status() Status
	Snapshot() Snapshot
}

// Snapshot is a read-only copy of a machine's state
type Snapshot struct {
	Game      models.GameID      `json:"game"`
	Status    Status             `json:"status"`
	Profile   models.Profile     `json:"profile"`
	Breathing *BreathingState    `json:"breathing,omitempty"`
	Reaction  *ReactionState     `json:"reaction,omitempty"`
	Scenario  *ScenarioState     `json:"scenario,omitempty"`
	Result    *models.GameResult `json:"result,omitempty"`
}

// machine carries the lifecycle every game shares: one ticker, one pending
// delay and the completion handshake with the host.
type machine struct {
	id      models.GameID
	profile models.Profile
	sched   scheduler.Scheduler
	ticker  *scheduler.Ticker
	delay   scheduler.Timer
	cb      Callbacks
	status  Status
	result  *models.GameResult
}

func newMachine(id models.GameID, profile models.Profile, sched scheduler.Scheduler, cb Callbacks) machine {
	return machine{
		id:      id,
		profile: profile,
		sched:   sched,
		ticker:  scheduler.NewTicker(sched),
		cb:      cb,
		status:  StatusReady,
	}
}

// ID returns the game identifier
func (m *machine) ID() models.GameID {
	return m.id
}

// Status returns the lifecycle status
func (m *machine) Status() Status {
	return m.status
}

func (m *machine) begin() error {
	if m.status != StatusReady {
		return ErrAlreadyStarted
	}
	m.status = StatusPlaying
	return nil
}

func (m *machine) changed() {
	if m.cb.OnUpdate != nil {
		m.cb.OnUpdate()
	}
}

// schedule replaces the pending delay with fn after d
func (m *machine) schedule(d time.Duration, fn func()) {
	m.cancelDelay()
	var timer scheduler.Timer
	timer = m.sched.After(d, func() {
		if m.delay == timer {
			m.delay = nil
		}
		fn()
		m.changed()
	})
	m.delay = timer
}

func (m *machine) cancelDelay() {
	if m.delay != nil {
		m.delay.Stop()
		m.delay = nil
	}
}

func (m *machine) halt() {
	m.ticker.Stop()
	m.cancelDelay()
}

// complete stops all timers and hands the result to the host after delay
func (m *machine) complete(result models.GameResult, delay time.Duration) {
	m.halt()
	m.status = StatusCompleting
	m.result = &result
	if delay <= 0 {
		m.deliver()
		return
	}
	m.schedule(delay, m.deliver)
}

func (m *machine) deliver() {
	if m.status != StatusCompleting {
		return
	}
	m.cancelDelay()
	m.status = StatusCompleted
	if m.cb.OnComplete != nil {
		m.cb.OnComplete(*m.result)
	}
}

// Back leaves the game. Before completion it stops every timer, discards
// the play-through and reports OnBack. Once completion has begun the
// pending result is delivered immediately instead, so a reward is never
// lost and no timer outlives the game.
func (m *machine) Back() bool {
	switch m.status {
	case StatusCompleted, StatusExited:
		return false
	case StatusCompleting:
		m.deliver()
		m.changed()
		return false
	}

	m.halt()
	m.status = StatusExited
	if m.cb.OnBack != nil {
		m.cb.OnBack()
	}
	m.changed()
	return true
}

func (m *machine) snapshot() Snapshot {
	snap := Snapshot{
		Game:    m.id,
		Status:  m.status,
		Profile: m.profile,
	}
	if m.result != nil {
		r := *m.result
		snap.Result = &r
	}
	return snap
}

// New builds the machine for a game id. rng only matters for the reflex game.
func New(id models.GameID, profile models.Profile, sched scheduler.Scheduler, rng RandomSource, cb Callbacks) (Game, error) {
	switch id {
	case models.GameBreathingDragon:
		return NewBreathingGame(profile, sched, cb), nil
	case models.GameSpaceAdventure:
		return NewReactionGame(profile, sched, rng, cb), nil
	case models.GameFeelingsQuest:
		return NewQuestGame(profile, sched, nil, cb), nil
	case models.GameMoodMirror:
		return NewMirrorGame(profile, sched, nil, cb), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownGame, id)
}
