package games

import (
	"math"
	"time"

	"moodimello/internal/models"
	"moodimello/internal/scheduler"
)

const (
	QuestAdvanceDelay    = 3 * time.Second
	QuestMaxChoicePoints = 3
	QuestBadgePercentage = 80
	questMinStars        = 3
)

// QuestGame is the narrative scenario game. Each choice is shown with its
// feedback for a few seconds before the story moves on, and the final
// results wait for the child to confirm.
type QuestGame struct {
	machine
	engine scenarioEngine
}

// NewQuestGame creates a narrative game over the given scenarios. A nil list
// uses the built-in stories.
func NewQuestGame(profile models.Profile, sched scheduler.Scheduler, scenarios []Scenario, cb Callbacks) *QuestGame {
	if scenarios == nil {
		scenarios = FeelingsQuestScenarios()
	}
	return &QuestGame{
		machine: newMachine(models.GameFeelingsQuest, profile, sched, cb),
		engine:  newScenarioEngine(scenarios, false),
	}
}

// Start shows the first scenario
func (g *QuestGame) Start() error {
	if err := g.begin(); err != nil {
		return err
	}
	if g.engine.finished() {
		g.status = StatusResults
	}
	g.changed()
	return nil
}

// Choose records a choice and schedules the move to the next scenario
func (g *QuestGame) Choose(id string) (Choice, error) {
	if g.status != StatusPlaying {
		return Choice{}, ErrNotPlaying
	}
	choice, err := g.engine.choose(id)
	if err != nil {
		return Choice{}, err
	}
	g.schedule(QuestAdvanceDelay, g.advance)
	g.changed()
	return choice, nil
}

func (g *QuestGame) advance() {
	if g.status != StatusPlaying {
		return
	}
	if !g.engine.advance() {
		g.status = StatusResults
	}
}

// Confirm ends the game from the results screen
func (g *QuestGame) Confirm() error {
	if g.status != StatusResults {
		return ErrNotFinished
	}
	g.complete(QuestResult(g.engine.points, len(g.engine.scenarios)), 0)
	g.changed()
	return nil
}

// QuestResult scores a quest: stars from the share of the best possible
// score, rounded to a five star scale with a floor of three, and the badge
// from 80 percent upwards
func QuestResult(points, scenarioCount int) models.GameResult {
	maxPoints := scenarioCount * QuestMaxChoicePoints
	if maxPoints <= 0 {
		return models.GameResult{StarsEarned: questMinStars}
	}

	percentage := float64(points) / float64(maxPoints) * 100
	stars := int(math.Round(percentage / 100 * maxStars))
	result := models.GameResult{StarsEarned: max(questMinStars, stars)}
	if points*100 >= QuestBadgePercentage*maxPoints {
		result.Badge = models.BadgeFeelingsQuest
	}
	return result
}

// State returns a copy of the current state
func (g *QuestGame) State() ScenarioState {
	return g.engine.state()
}

// Snapshot implements Game
func (g *QuestGame) Snapshot() Snapshot {
	snap := g.snapshot()
	state := g.State()
	snap.Scenario = &state
	return snap
}
