package games

import (
	"moodimello/internal/models"
	"moodimello/internal/scheduler"
)

const (
	MirrorCorrectPoints = 2
	MirrorPartialPoints = 1
	MirrorBadgePoints   = 5
	mirrorMinStars      = 3
)

// MirrorGame is the matching scenario game. Every pick earns something and
// the explanation stays up until the child moves on.
type MirrorGame struct {
	machine
	engine scenarioEngine
}

// NewMirrorGame creates a matching game. A nil list uses the built-in
// scenarios.
func NewMirrorGame(profile models.Profile, sched scheduler.Scheduler, scenarios []Scenario, cb Callbacks) *MirrorGame {
	if scenarios == nil {
		scenarios = MoodMirrorScenarios()
	}
	return &MirrorGame{
		machine: newMachine(models.GameMoodMirror, profile, sched, cb),
		engine:  newScenarioEngine(scenarios, true),
	}
}

// Start shows the first scenario
func (g *MirrorGame) Start() error {
	if err := g.begin(); err != nil {
		return err
	}
	g.changed()
	return nil
}

// Choose records the emotion picked for the current scenario
func (g *MirrorGame) Choose(id string) (Choice, error) {
	if g.status != StatusPlaying {
		return Choice{}, ErrNotPlaying
	}
	choice, err := g.engine.choose(id)
	if err != nil {
		return Choice{}, err
	}
	g.changed()
	return choice, nil
}

// Next leaves the explanation. After the last scenario it finishes the game.
func (g *MirrorGame) Next() error {
	if g.status != StatusPlaying {
		return ErrNotPlaying
	}
	if g.engine.selected == nil {
		return ErrNoSelection
	}
	if !g.engine.advance() {
		g.complete(MirrorResult(g.engine.points), 0)
	}
	g.changed()
	return nil
}

// MirrorResult scores a matching run. Stars equal the points with a floor
// of three, so a perfect run earns more than five.
func MirrorResult(points int) models.GameResult {
	result := models.GameResult{StarsEarned: max(mirrorMinStars, points)}
	if points >= MirrorBadgePoints {
		result.Badge = models.BadgeMoodMirror
	}
	return result
}

// State returns a copy of the current state
func (g *MirrorGame) State() ScenarioState {
	return g.engine.state()
}

// Snapshot implements Game
func (g *MirrorGame) Snapshot() Snapshot {
	snap := g.snapshot()
	state := g.State()
	snap.Scenario = &state
	return snap
}
