package progression

import (
	"errors"

	"moodimello/internal/models"
)

var (
	ErrUnknownWorld = errors.New("unknown world")
	ErrNotInWorld   = errors.New("game is not offered in this world")
)

// WorldID names an emotion world
type WorldID string

const (
	WorldJoy     WorldID = "joy"
	WorldSadness WorldID = "sadness"
	WorldAnger   WorldID = "anger"
	WorldFear    WorldID = "fear"
	WorldDisgust WorldID = "disgust"
)

// GameInfo describes a mini-game independently of any world
type GameInfo struct {
	ID          models.GameID `json:"id"`
	Name        string        `json:"name"`
	StarsNeeded int           `json:"starsNeeded"`
	Badge       models.Badge  `json:"badge"`
}

// Games lists every mini-game with the stars needed to play it
var Games = map[models.GameID]GameInfo{
	models.GameMoodMirror:      {ID: models.GameMoodMirror, Name: "Mood Mirror", StarsNeeded: 0, Badge: models.BadgeMoodMirror},
	models.GameBreathingDragon: {ID: models.GameBreathingDragon, Name: "Breathing Dragon", StarsNeeded: 0, Badge: models.BadgeBreathingDragon},
	models.GameFeelingsQuest:   {ID: models.GameFeelingsQuest, Name: "Feelings Quest", StarsNeeded: 5, Badge: models.BadgeFeelingsQuest},
	models.GameSpaceAdventure:  {ID: models.GameSpaceAdventure, Name: "Space Adventure", StarsNeeded: 10, Badge: models.BadgeSpaceAdventure},
}

// WorldGame is a game as offered inside one world
type WorldGame struct {
	Game        models.GameID `json:"game"`
	Description string        `json:"description"`
}

// World is a themed group of games hosted by one emotion character
type World struct {
	ID       WorldID     `json:"id"`
	Name     string      `json:"name"`
	Color    string      `json:"color"`
	Greeting string      `json:"greeting"`
	Games    []WorldGame `json:"games"`
}

// Worlds is the fixed world catalog in display order
var Worlds = []World{
	{
		ID:       WorldJoy,
		Name:     "Joy's World",
		Color:    "from-yellow-300 to-orange-400",
		Greeting: "Woohoo! Welcome to my world! Let's have some FUN and learn about happy feelings together!",
		Games: []WorldGame{
			{models.GameMoodMirror, "Match emotions and practice empathy!"},
			{models.GameFeelingsQuest, "Navigate through emotion adventures!"},
		},
	},
	{
		ID:       WorldSadness,
		Name:     "Sadness's World",
		Color:    "from-blue-300 to-blue-500",
		Greeting: "Hello... I'm Sadness. It's okay to feel sad sometimes. Let's understand these feelings together.",
		Games: []WorldGame{
			{models.GameBreathingDragon, "Learn to breathe and stay calm."},
			{models.GameMoodMirror, "Understand your feelings better."},
			{models.GameFeelingsQuest, "Explore sad moments and healing."},
			{models.GameSpaceAdventure, "Test your focus and attention!"},
		},
	},
	{
		ID:       WorldAnger,
		Name:     "Anger's World",
		Color:    "from-red-400 to-orange-500",
		Greeting: "HEY! I'm Anger! Sometimes we get mad, and that's okay. Let's learn to handle it together!",
		Games: []WorldGame{
			{models.GameBreathingDragon, "Calm down with breathing exercises."},
			{models.GameSpaceAdventure, "Control your impulses!"},
			{models.GameMoodMirror, "Match emotions and practice empathy!"},
			{models.GameFeelingsQuest, "Navigate through emotion adventures!"},
		},
	},
	{
		ID:       WorldFear,
		Name:     "Fear's World",
		Color:    "from-purple-300 to-purple-500",
		Greeting: "Um... hi there. I'm Fear. Being scared is normal, but we can also be BRAVE together.",
		Games: []WorldGame{
			{models.GameBreathingDragon, "Face your fears with calm breathing."},
			{models.GameMoodMirror, "Recognize brave moments."},
			{models.GameFeelingsQuest, "Build courage step by step."},
			{models.GameSpaceAdventure, "Test your focus and attention!"},
		},
	},
	{
		ID:       WorldDisgust,
		Name:     "Disgust's World",
		Color:    "from-green-300 to-teal-500",
		Greeting: "Ugh... hi. I'm Disgust. Let's learn to make smart choices together!",
		Games: []WorldGame{
			{models.GameMoodMirror, "Learn what feels right for you."},
			{models.GameFeelingsQuest, "Discover healthy choices."},
			{models.GameSpaceAdventure, "Stay focused on what matters!"},
		},
	},
}

// FindWorld looks a world up by id
func FindWorld(id WorldID) (World, error) {
	for _, w := range Worlds {
		if w.ID == id {
			return w, nil
		}
	}
	return World{}, ErrUnknownWorld
}

// Offers reports whether the world lists the game
func (w World) Offers(game models.GameID) bool {
	for _, g := range w.Games {
		if g.Game == game {
			return true
		}
	}
	return false
}

// HubEntry is one tile of the world hub
type HubEntry struct {
	GameInfo
	Description string `json:"description"`
	Locked      bool   `json:"locked"`
	StarsToGo   int    `json:"starsToGo,omitempty"`
	Earned      bool   `json:"earned"`
}

// Hub lists the games of a world with their lock state for the ledger
func Hub(world World, ledger *Ledger) []HubEntry {
	total := ledger.TotalStars()
	entries := make([]HubEntry, 0, len(world.Games))
	for _, wg := range world.Games {
		info := Games[wg.Game]
		entry := HubEntry{
			GameInfo:    info,
			Description: wg.Description,
			Locked:      !ledger.IsUnlocked(info.StarsNeeded),
			Earned:      ledger.HasBadge(info.Badge),
		}
		if entry.Locked {
			entry.StarsToGo = info.StarsNeeded - total
		}
		entries = append(entries, entry)
	}
	return entries
}
