package games

import (
	"testing"
	"time"

	"moodimello/internal/models"
	"moodimello/internal/scheduler"
)

type recorder struct {
	results []models.GameResult
	backs   int
	updates int
}

func (r *recorder) callbacks() Callbacks {
	return Callbacks{
		OnComplete: func(res models.GameResult) { r.results = append(r.results, res) },
		OnBack:     func() { r.backs++ },
		OnUpdate:   func() { r.updates++ },
	}
}

var testProfile = models.Profile{ID: "emma", Name: "Emma"}

func TestBreathingFullRun(t *testing.T) {
	m := scheduler.NewManual()
	rec := &recorder{}
	g := NewBreathingGame(testProfile, m, rec.callbacks())

	if err := g.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	m.Advance(36 * time.Second)
	if g.Status() != StatusCompleting {
		t.Fatalf("Status() = %v after 36 ticks, want %v", g.Status(), StatusCompleting)
	}
	if got := g.State().ElapsedTicks; got != 36 {
		t.Errorf("ElapsedTicks = %d, want 36", got)
	}
	if len(rec.results) != 0 {
		t.Fatalf("result delivered before the display delay")
	}

	m.Advance(BreathingCompletionDelay)
	want := models.GameResult{StarsEarned: 5, Badge: models.BadgeBreathingDragon}
	if len(rec.results) != 1 || rec.results[0] != want {
		t.Fatalf("results = %v, want [%v]", rec.results, want)
	}
	if g.Status() != StatusCompleted {
		t.Errorf("Status() = %v, want %v", g.Status(), StatusCompleted)
	}
	if m.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", m.Pending())
	}

	m.Advance(time.Minute)
	if len(rec.results) != 1 {
		t.Errorf("OnComplete fired %d times, want 1", len(rec.results))
	}
}

func TestBreathingPhaseSequence(t *testing.T) {
	m := scheduler.NewManual()
	g := NewBreathingGame(testProfile, m, Callbacks{})
	g.Start()

	tests := []struct {
		name      string
		advance   time.Duration
		phase     Phase
		remaining int
		round     int
	}{
		{"initial", 0, PhaseInhale, 4, 0},
		{"mid inhale", 1 * time.Second, PhaseInhale, 3, 0},
		{"hold", 3 * time.Second, PhaseHold, 2, 0},
		{"exhale", 2 * time.Second, PhaseExhale, 4, 0},
		{"rest", 4 * time.Second, PhaseRest, 2, 0},
		{"second round", 2 * time.Second, PhaseInhale, 4, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m.Advance(tt.advance)
			s := g.State()
			if s.Phase != tt.phase || s.SecondsRemaining != tt.remaining || s.Round != tt.round {
				t.Errorf("State() = %s/%d/round %d, want %s/%d/round %d",
					s.Phase, s.SecondsRemaining, s.Round, tt.phase, tt.remaining, tt.round)
			}
		})
	}
}

func TestBreathingScale(t *testing.T) {
	tests := []struct {
		phase     Phase
		remaining int
		want      float64
	}{
		{PhaseInhale, 4, 1.0},
		{PhaseInhale, 1, 1.6},
		{PhaseHold, 2, 1.8},
		{PhaseExhale, 4, 1.8},
		{PhaseExhale, 1, 1.2},
		{PhaseRest, 2, 1.0},
	}

	for _, tt := range tests {
		got := BreathingScale(tt.phase, tt.remaining)
		if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("BreathingScale(%s, %d) = %v, want %v", tt.phase, tt.remaining, got, tt.want)
		}
	}
}

func TestBreathingBackStopsTimers(t *testing.T) {
	m := scheduler.NewManual()
	rec := &recorder{}
	g := NewBreathingGame(testProfile, m, rec.callbacks())
	g.Start()
	m.Advance(5 * time.Second)

	if !g.Back() {
		t.Fatal("Back() = false, want true")
	}
	if g.Back() {
		t.Error("second Back() = true, want false")
	}
	if rec.backs != 1 {
		t.Errorf("OnBack fired %d times, want 1", rec.backs)
	}

	before := g.State()
	m.Advance(time.Minute)
	if g.State() != before {
		t.Errorf("state changed after Back: %+v -> %+v", before, g.State())
	}
	if len(rec.results) != 0 {
		t.Errorf("results = %v, want none", rec.results)
	}
}

func TestBreathingBackWhileCompletingDeliversResult(t *testing.T) {
	m := scheduler.NewManual()
	rec := &recorder{}
	g := NewBreathingGame(testProfile, m, rec.callbacks())
	g.Start()
	m.Advance(36 * time.Second)

	if g.Back() {
		t.Error("Back() = true while completing, want false")
	}
	if rec.backs != 0 {
		t.Errorf("OnBack fired %d times, want 0", rec.backs)
	}
	if len(rec.results) != 1 {
		t.Fatalf("results = %v, want one", rec.results)
	}

	m.Advance(time.Minute)
	if len(rec.results) != 1 {
		t.Errorf("OnComplete fired %d times, want 1", len(rec.results))
	}
}

func TestStartTwice(t *testing.T) {
	m := scheduler.NewManual()
	g := NewBreathingGame(testProfile, m, Callbacks{})
	if err := g.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := g.Start(); err != ErrAlreadyStarted {
		t.Errorf("second Start() error = %v, want %v", err, ErrAlreadyStarted)
	}
}

func TestNewGame(t *testing.T) {
	m := scheduler.NewManual()
	for _, id := range []models.GameID{
		models.GameBreathingDragon,
		models.GameSpaceAdventure,
		models.GameFeelingsQuest,
		models.GameMoodMirror,
	} {
		g, err := New(id, testProfile, m, nil, Callbacks{})
		if err != nil {
			t.Errorf("New(%s) error = %v", id, err)
			continue
		}
		if g.ID() != id {
			t.Errorf("New(%s).ID() = %s", id, g.ID())
		}
		if g.Status() != StatusReady {
			t.Errorf("New(%s).Status() = %s, want ready", id, g.Status())
		}
	}

	if _, err := New("tetris", testProfile, m, nil, Callbacks{}); err == nil {
		t.Error("New(tetris) error = nil, want error")
	}
}
