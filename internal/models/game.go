package models

import "time"

// GameID names one of the mini-games
type GameID string

const (
	GameBreathingDragon GameID = "breathing-dragon"
	GameSpaceAdventure  GameID = "space-adventure"
	GameFeelingsQuest   GameID = "feelings-quest"
	GameMoodMirror      GameID = "mood-mirror"
)

// Badge is a unique reward symbol. The empty badge means none was earned.
type Badge string

const (
	BadgeBreathingDragon Badge = "breathing-dragon-badge"
	BadgeSpaceAdventure  Badge = "space-adventure-badge"
	BadgeFeelingsQuest   Badge = "feelings-quest-badge"
	BadgeMoodMirror      Badge = "mood-mirror-badge"

	// Seed badges every child session starts with
	BadgeStar      Badge = "star-badge"
	BadgeTarget    Badge = "target-badge"
	BadgeButterfly Badge = "butterfly-badge"
	BadgeStrength  Badge = "strength-badge"
)

// GameResult is what a finished game reports to the host
type GameResult struct {
	StarsEarned int   `json:"starsEarned"`
	Badge       Badge `json:"badge,omitempty"`
}

// HasBadge reports whether a badge was earned
func (r GameResult) HasBadge() bool {
	return r.Badge != ""
}

// CompletedGame records one finished game inside a child session
type CompletedGame struct {
	Game        GameID     `json:"game"`
	Result      GameResult `json:"result"`
	CompletedAt time.Time  `json:"completedAt"`
}

// SessionSummary describes a finished child session for the parent
type SessionSummary struct {
	SessionID   string          `json:"sessionId"`
	Profile     Profile         `json:"profile"`
	StartedAt   time.Time       `json:"startedAt"`
	EndedAt     time.Time       `json:"endedAt"`
	Games       []CompletedGame `json:"games"`
	StarsEarned int             `json:"starsEarned"`
	NewBadges   []Badge         `json:"newBadges"`
	TotalStars  int             `json:"totalStars"`
}
