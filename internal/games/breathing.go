package games

import (
	"time"

	"moodimello/internal/models"
	"moodimello/internal/scheduler"
)

// Phase is one step of the breathing cycle
type Phase string

const (
	PhaseInhale Phase = "inhale"
	PhaseHold   Phase = "hold"
	PhaseExhale Phase = "exhale"
	PhaseRest   Phase = "rest"
)

const (
	BreathingRounds          = 3
	BreathingTickInterval    = time.Second
	BreathingCompletionDelay = time.Second
	BreathingStars           = 5

	breathingScaleMin  = 1.0
	breathingScaleStep = 0.2
	breathingScaleMax  = 1.8
)

// breathingCycle lists the phases in order with their length in ticks
var breathingCycle = []struct {
	phase   Phase
	seconds int
}{
	{PhaseInhale, 4},
	{PhaseHold, 2},
	{PhaseExhale, 4},
	{PhaseRest, 2},
}

// PhaseDuration returns the number of seconds a phase lasts
func PhaseDuration(p Phase) int {
	for _, step := range breathingCycle {
		if step.phase == p {
			return step.seconds
		}
	}
	return 0
}

func nextPhase(p Phase) Phase {
	for i, step := range breathingCycle {
		if step.phase == p {
			return breathingCycle[(i+1)%len(breathingCycle)].phase
		}
	}
	return PhaseInhale
}

// BreathingScale is the dragon size shown for a phase and countdown. It is
// derived for display only.
func BreathingScale(p Phase, secondsRemaining int) float64 {
	switch p {
	case PhaseInhale:
		return breathingScaleMin + float64(PhaseDuration(PhaseInhale)-secondsRemaining)*breathingScaleStep
	case PhaseHold:
		return breathingScaleMax
	case PhaseExhale:
		return breathingScaleMin + float64(secondsRemaining)*breathingScaleStep
	default:
		return breathingScaleMin
	}
}

// BreathingState is the observable state of the breathing exercise
type BreathingState struct {
	Phase            Phase   `json:"phase"`
	SecondsRemaining int     `json:"secondsRemaining"`
	Round            int     `json:"round"`
	TotalRounds      int     `json:"totalRounds"`
	Scale            float64 `json:"scale"`
	ElapsedTicks     int     `json:"elapsedTicks"`
}

// BreathingGame walks the child through inhale, hold, exhale and rest for a
// fixed number of rounds.
type BreathingGame struct {
	machine
	phase     Phase
	remaining int
	round     int
	elapsed   int
}

// NewBreathingGame creates a breathing exercise waiting for Start
func NewBreathingGame(profile models.Profile, sched scheduler.Scheduler, cb Callbacks) *BreathingGame {
	return &BreathingGame{
		machine:   newMachine(models.GameBreathingDragon, profile, sched, cb),
		phase:     PhaseInhale,
		remaining: PhaseDuration(PhaseInhale),
	}
}

// Start begins the countdown
func (g *BreathingGame) Start() error {
	if err := g.begin(); err != nil {
		return err
	}
	g.ticker.Start(BreathingTickInterval, g.tick)
	g.changed()
	return nil
}

func (g *BreathingGame) tick() {
	if g.status != StatusPlaying {
		return
	}

	g.elapsed++
	g.remaining--
	if g.remaining > 0 {
		g.changed()
		return
	}

	switch {
	case g.phase != PhaseRest:
		g.phase = nextPhase(g.phase)
		g.remaining = PhaseDuration(g.phase)
	case g.round+1 >= BreathingRounds:
		g.complete(models.GameResult{
			StarsEarned: BreathingStars,
			Badge:       models.BadgeBreathingDragon,
		}, BreathingCompletionDelay)
	default:
		g.round++
		g.phase = PhaseInhale
		g.remaining = PhaseDuration(PhaseInhale)
	}
	g.changed()
}

// State returns a copy of the current state
func (g *BreathingGame) State() BreathingState {
	return BreathingState{
		Phase:            g.phase,
		SecondsRemaining: g.remaining,
		Round:            g.round,
		TotalRounds:      BreathingRounds,
		Scale:            BreathingScale(g.phase, g.remaining),
		ElapsedTicks:     g.elapsed,
	}
}

// Snapshot implements Game
func (g *BreathingGame) Snapshot() Snapshot {
	snap := g.snapshot()
	state := g.State()
	snap.Breathing = &state
	return snap
}
