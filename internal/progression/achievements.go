package progression

import "moodimello/internal/models"

// StarMilestone is the star count behind the "100 Stars" achievement
const StarMilestone = 100

// Achievement is a trophy derived from the session's progress
type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Earned      bool   `json:"earned"`
}

// Progress is everything the achievements screen shows
type Progress struct {
	TotalStars   int            `json:"totalStars"`
	Badges       []models.Badge `json:"badges"`
	Achievements []Achievement  `json:"achievements"`
	EarnedCount  int            `json:"earnedCount"`
	// Percentage of achievements earned, rounded down
	Percentage int `json:"percentage"`
}

// Achievements derives trophies from the ledger and the worlds visited in
// the session
func Achievements(ledger *Ledger, visited []WorldID) Progress {
	seen := make(map[WorldID]bool, len(visited))
	for _, w := range visited {
		seen[w] = true
	}
	allWorlds := true
	for _, w := range Worlds {
		if !seen[w.ID] {
			allWorlds = false
			break
		}
	}

	total := ledger.TotalStars()
	list := []Achievement{
		{ID: "dragon", Name: "Breathing Master", Description: "Finish Breathing Dragon",
			Earned: ledger.HasBadge(models.BadgeBreathingDragon)},
		{ID: "mirror", Name: "Emotion Expert", Description: "Earn the Mood Mirror badge",
			Earned: ledger.HasBadge(models.BadgeMoodMirror)},
		{ID: "space", Name: "Focus Champion", Description: "Earn the Space Adventure badge",
			Earned: ledger.HasBadge(models.BadgeSpaceAdventure)},
		{ID: "quest", Name: "Story Explorer", Description: "Earn the Feelings Quest badge",
			Earned: ledger.HasBadge(models.BadgeFeelingsQuest)},
		{ID: "star100", Name: "100 Stars", Description: "Collect 100 stars total",
			Earned: total >= StarMilestone},
		{ID: "allworlds", Name: "World Explorer", Description: "Visit all emotion worlds",
			Earned: allWorlds},
	}

	p := Progress{
		TotalStars:   total,
		Badges:       ledger.Badges(),
		Achievements: list,
	}
	for _, a := range list {
		if a.Earned {
			p.EarnedCount++
		}
	}
	p.Percentage = p.EarnedCount * 100 / len(list)
	return p
}
