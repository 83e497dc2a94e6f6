// Package progression tracks the stars and badges a child collects during a
// session and decides which worlds and games are open to them.
package progression

import (
	"sync"

	"moodimello/internal/models"
)

// Seed values every child session starts with
const SeedStars = 45

// SeedBadges are the badges a new session already shows
var SeedBadges = []models.Badge{
	models.BadgeStar,
	models.BadgeTarget,
	models.BadgeButterfly,
	models.BadgeStrength,
}

// Ledger accumulates rewards for one session. Stars only grow and badges
// are never removed. Commit is called from the session loop; reads may come
// from any goroutine.
type Ledger struct {
	mu     sync.RWMutex
	stars  int
	badges []models.Badge
}

// NewLedger creates a ledger with the given starting rewards. Duplicate
// badges are dropped.
func NewLedger(stars int, badges ...models.Badge) *Ledger {
	l := &Ledger{stars: stars}
	for _, b := range badges {
		l.addBadge(b)
	}
	return l
}

// NewSessionLedger creates the ledger a fresh child session starts with
func NewSessionLedger() *Ledger {
	return NewLedger(SeedStars, SeedBadges...)
}

// Commit adds a finished game's stars and its badge if not already held.
// It reports whether the badge was new.
func (l *Ledger) Commit(result models.GameResult) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.stars += result.StarsEarned
	if !result.HasBadge() {
		return false
	}
	return l.addBadge(result.Badge)
}

func (l *Ledger) addBadge(b models.Badge) bool {
	if b == "" {
		return false
	}
	for _, have := range l.badges {
		if have == b {
			return false
		}
	}
	l.badges = append(l.badges, b)
	return true
}

// TotalStars returns the stars collected so far
func (l *Ledger) TotalStars() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.stars
}

// Badges returns the badges in the order they were earned
func (l *Ledger) Badges() []models.Badge {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]models.Badge, len(l.badges))
	copy(out, l.badges)
	return out
}

// HasBadge reports whether the badge has been earned
func (l *Ledger) HasBadge(b models.Badge) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, have := range l.badges {
		if have == b {
			return true
		}
	}
	return false
}

// IsUnlocked reports whether enough stars have been collected
func (l *Ledger) IsUnlocked(threshold int) bool {
	return l.TotalStars() >= threshold
}
