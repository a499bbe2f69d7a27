package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// RewardEvent records the reward unlocked by passing a module. A module's
// reward is unlocked at most once.
type RewardEvent struct {
	ent.Schema
}

func (RewardEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (RewardEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").NotEmpty(),
		field.String("module_id").NotEmpty().Unique(),
		field.String("reward").NotEmpty(),
		field.String("rarity").NotEmpty(),
		field.Int("score").NonNegative(),
		field.Int("total").NonNegative(),
	}
}
