package rewards

// Rarity represents how well a reward was earned.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// AllRarities returns all rarities in order from lowest to highest.
func AllRarities() []Rarity {
	return []Rarity{RarityCommon, RarityRare, RarityEpic, RarityLegendary}
}

// DisplayName returns a human-readable label for the rarity.
func (r Rarity) DisplayName() string {
	switch r {
	case RarityCommon:
		return "Common"
	case RarityRare:
		return "Rare"
	case RarityEpic:
		return "Epic"
	case RarityLegendary:
		return "Legendary"
	default:
		return string(r)
	}
}

// Icon returns the display icon for the rarity.
func (r Rarity) Icon() string {
	switch r {
	case RarityRare:
		return "🥈"
	case RarityEpic:
		return "🥇"
	case RarityLegendary:
		return "🏆"
	default:
		return "🎖"
	}
}

// ScoreRarity returns the rarity for a quiz score. Thresholds are compared on
// integers: 100% is legendary, 90% epic, 80% rare, anything else common.
func ScoreRarity(score, total int) Rarity {
	switch {
	case total <= 0:
		return RarityCommon
	case score >= total:
		return RarityLegendary
	case score*100 >= 90*total:
		return RarityEpic
	case score*100 >= 80*total:
		return RarityRare
	default:
		return RarityCommon
	}
}
