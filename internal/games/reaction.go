package games

import (
	"fmt"
	"time"

	"moodimello/internal/models"
	"moodimello/internal/scheduler"
)

// ShapeColor is the colour of a falling shape
type ShapeColor string

const (
	ColorGreen  ShapeColor = "green"
	ColorYellow ShapeColor = "yellow"
	ColorRed    ShapeColor = "red"
)

// ShapeColors is the spawn palette; spawning picks uniformly from it
var ShapeColors = []ShapeColor{ColorGreen, ColorYellow, ColorRed}

// Lane is a discrete horizontal player position
type Lane string

const (
	LaneLeft   Lane = "left"
	LaneMiddle Lane = "middle"
	LaneRight  Lane = "right"
)

// ReactionPhase is the position inside one round
type ReactionPhase string

const (
	ReactionIdle     ReactionPhase = "idle"
	ReactionSpawning ReactionPhase = "spawning"
	ReactionFalling  ReactionPhase = "falling"
	ReactionJudging  ReactionPhase = "judging"
	ReactionTerminal ReactionPhase = "terminal"
)

// Verdict is the outcome of judging one shape
type Verdict string

const (
	VerdictNone      Verdict = ""
	VerdictCorrect   Verdict = "correct"
	VerdictIncorrect Verdict = "incorrect"
)

const (
	ReactionRounds        = 12
	ReactionLives         = 3
	ReactionTickInterval  = 50 * time.Millisecond
	ReactionFallStep      = 2
	ReactionFallDistance  = 100
	ReactionFeedbackDelay = 1500 * time.Millisecond
	ReactionBadgeScore    = 10

	// DragThreshold is how far a drag must travel, in pixels, to change lane
	DragThreshold = 50.0

	reactionExhaustedMinStars = 2
	reactionFinishedMinStars  = 3
	maxStars                  = 5
)

// TargetLane is the lane that answers a colour correctly
func TargetLane(c ShapeColor) Lane {
	switch c {
	case ColorGreen:
		return LaneRight
	case ColorYellow:
		return LaneLeft
	default:
		return LaneMiddle
	}
}

// ParseLane validates a lane name
func ParseLane(s string) (Lane, error) {
	switch Lane(s) {
	case LaneLeft, LaneMiddle, LaneRight:
		return Lane(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLane, s)
}

// LaneForKey maps a key press to the lane it snaps to
func LaneForKey(key string) (Lane, bool) {
	switch key {
	case "ArrowLeft", "a", "A":
		return LaneLeft, true
	case "ArrowRight", "d", "D":
		return LaneRight, true
	case "ArrowDown", "s", "S":
		return LaneMiddle, true
	}
	return "", false
}

// LaneForDrag maps a horizontal drag, measured from where it started, to a
// lane. It reports false while the drag has not crossed the threshold or
// the player is already on that side.
func LaneForDrag(deltaX float64, current Lane) (Lane, bool) {
	if deltaX > DragThreshold && current != LaneRight {
		return LaneRight, true
	}
	if deltaX < -DragThreshold && current != LaneLeft {
		return LaneLeft, true
	}
	return current, false
}

// Shape is the single shape in flight
type Shape struct {
	Color    ShapeColor `json:"color"`
	Position int        `json:"position"`
}

// ReactionState is the observable state of the reflex game
type ReactionState struct {
	Shape       *Shape        `json:"shape,omitempty"`
	Lane        Lane          `json:"lane"`
	Round       int           `json:"round"`
	TotalRounds int           `json:"totalRounds"`
	Score       int           `json:"score"`
	Lives       int           `json:"lives"`
	Judged      bool          `json:"judged"`
	Verdict     Verdict       `json:"verdict,omitempty"`
	Phase       ReactionPhase `json:"phase"`
}

// ReactionGame drops one coloured shape per round; the player has to be in
// the matching lane when it lands.
type ReactionGame struct {
	machine
	rng     RandomSource
	shape   *Shape
	lane    Lane
	round   int
	score   int
	lives   int
	judged  bool
	verdict Verdict
	phase   ReactionPhase
}

// NewReactionGame creates a reflex game waiting for Start
func NewReactionGame(profile models.Profile, sched scheduler.Scheduler, rng RandomSource, cb Callbacks) *ReactionGame {
	if rng == nil {
		rng = NewRandomSource()
	}
	return &ReactionGame{
		machine: newMachine(models.GameSpaceAdventure, profile, sched, cb),
		rng:     rng,
		lane:    LaneMiddle,
		lives:   ReactionLives,
		phase:   ReactionIdle,
	}
}

// Start spawns the first shape
func (g *ReactionGame) Start() error {
	if err := g.begin(); err != nil {
		return err
	}
	g.spawn()
	g.changed()
	return nil
}

func (g *ReactionGame) spawn() {
	g.phase = ReactionSpawning
	color := ShapeColors[g.rng.IntN(len(ShapeColors))]
	g.shape = &Shape{Color: color}
	g.lane = LaneMiddle
	g.judged = false
	g.verdict = VerdictNone
	g.phase = ReactionFalling
	g.ticker.Start(ReactionTickInterval, g.tick)
}

func (g *ReactionGame) tick() {
	if g.phase != ReactionFalling || g.shape == nil {
		return
	}

	g.shape.Position += ReactionFallStep
	if g.shape.Position >= ReactionFallDistance {
		g.shape.Position = ReactionFallDistance
		g.judge(g.lane)
	}
	g.changed()
}

// judge settles the round against the lane sampled when the shape landed
func (g *ReactionGame) judge(sampled Lane) {
	g.ticker.Stop()
	g.phase = ReactionJudging
	g.judged = true

	if TargetLane(g.shape.Color) == sampled {
		g.score++
		g.verdict = VerdictCorrect
	} else {
		g.lives--
		g.verdict = VerdictIncorrect
	}

	g.schedule(ReactionFeedbackDelay, g.afterFeedback)
}

func (g *ReactionGame) afterFeedback() {
	switch {
	case g.lives <= 0:
		g.phase = ReactionTerminal
		g.complete(ReactionResult(g.score, reactionExhaustedMinStars), 0)
	case g.round+1 >= ReactionRounds:
		g.phase = ReactionTerminal
		g.complete(ReactionResult(g.score, reactionFinishedMinStars), 0)
	default:
		g.round++
		g.spawn()
	}
}

// ReactionResult scores a run: floor(score/rounds*5) with a floor of
// minStars, and the badge for ten or more correct answers
func ReactionResult(score, minStars int) models.GameResult {
	stars := score * maxStars / ReactionRounds
	result := models.GameResult{StarsEarned: max(minStars, stars)}
	if score >= ReactionBadgeScore {
		result.Badge = models.BadgeSpaceAdventure
	}
	return result
}

// SetLane moves the player. Input is only accepted while a shape falls.
func (g *ReactionGame) SetLane(lane Lane) error {
	if _, err := ParseLane(string(lane)); err != nil {
		return err
	}
	if g.status != StatusPlaying {
		return ErrNotPlaying
	}
	if g.phase != ReactionFalling {
		return ErrInputFrozen
	}
	if g.lane != lane {
		g.lane = lane
		g.changed()
	}
	return nil
}

// Lane returns the player's current lane
func (g *ReactionGame) Lane() Lane {
	return g.lane
}

// State returns a copy of the current state
func (g *ReactionGame) State() ReactionState {
	state := ReactionState{
		Lane:        g.lane,
		Round:       g.round,
		TotalRounds: ReactionRounds,
		Score:       g.score,
		Lives:       g.lives,
		Judged:      g.judged,
		Verdict:     g.verdict,
		Phase:       g.phase,
	}
	if g.shape != nil {
		s := *g.shape
		state.Shape = &s
	}
	return state
}

// Snapshot implements Game
func (g *ReactionGame) Snapshot() Snapshot {
	snap := g.snapshot()
	state := g.State()
	snap.Reaction = &state
	return snap
}
