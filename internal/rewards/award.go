package rewards

import "time"

// Award is a module reward earned by passing its quiz.
type Award struct {
	ModuleID    string
	ModuleTitle string // empty when loaded from the store
	Reward      string // e.g. "Flood Expert Medal"
	Rarity      Rarity
	Score       int
	Total       int
	SessionID   string
	AwardedAt   time.Time
}
