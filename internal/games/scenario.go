package games

import "fmt"

// Choice is one answer offered for a scenario
type Choice struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Emotion  string `json:"emotion,omitempty"`
	Emoji    string `json:"emoji,omitempty"`
	Feedback string `json:"feedback,omitempty"`
	Points   int    `json:"points"`
}

// Scenario is a situation with a fixed list of choices. Matching scenarios
// name the correct choice and explain it once a choice is made.
type Scenario struct {
	ID            string   `json:"id"`
	Title         string   `json:"title,omitempty"`
	Description   string   `json:"description"`
	Choices       []Choice `json:"choices"`
	CorrectChoice string   `json:"-"`
	Explanation   string   `json:"-"`
}

func (s Scenario) find(id string) (Choice, bool) {
	for _, c := range s.Choices {
		if c.ID == id {
			return c, true
		}
	}
	return Choice{}, false
}

// ScenarioState is the observable state of a scenario game
type ScenarioState struct {
	Index    int       `json:"index"`
	Count    int       `json:"count"`
	Points   int       `json:"points"`
	Current  *Scenario `json:"current,omitempty"`
	Selected *Choice   `json:"selected,omitempty"`
	// Correct and Explanation are only set by matching games after a choice
	Correct     *bool  `json:"correct,omitempty"`
	Explanation string `json:"explanation,omitempty"`
}

// scenarioEngine walks an ordered list of scenarios, consuming exactly one
// choice per scenario and accumulating points.
type scenarioEngine struct {
	scenarios []Scenario
	index     int
	points    int
	selected  *Choice
	matching  bool
}

func newScenarioEngine(scenarios []Scenario, matching bool) scenarioEngine {
	return scenarioEngine{scenarios: scenarios, matching: matching}
}

func (e *scenarioEngine) finished() bool {
	return e.index >= len(e.scenarios)
}

func (e *scenarioEngine) current() (Scenario, bool) {
	if e.finished() {
		return Scenario{}, false
	}
	return e.scenarios[e.index], true
}

// choose records the choice for the current scenario and adds its points
func (e *scenarioEngine) choose(id string) (Choice, error) {
	scenario, ok := e.current()
	if !ok {
		return Choice{}, ErrNoScenario
	}
	if e.selected != nil {
		return Choice{}, ErrChoiceLocked
	}
	choice, ok := scenario.find(id)
	if !ok {
		return Choice{}, fmt.Errorf("%w: %q", ErrUnknownChoice, id)
	}
	e.selected = &choice
	e.points += choice.Points
	return choice, nil
}

// advance moves past the current scenario and reports whether another
// scenario follows
func (e *scenarioEngine) advance() bool {
	if e.finished() {
		return false
	}
	e.selected = nil
	e.index++
	return !e.finished()
}

func (e *scenarioEngine) state() ScenarioState {
	state := ScenarioState{
		Index:  e.index,
		Count:  len(e.scenarios),
		Points: e.points,
	}
	if scenario, ok := e.current(); ok {
		state.Current = &scenario
	}
	if e.selected != nil {
		c := *e.selected
		state.Selected = &c
		if e.matching && state.Current != nil {
			correct := c.ID == state.Current.CorrectChoice
			state.Correct = &correct
			state.Explanation = state.Current.Explanation
		}
	}
	return state
}
