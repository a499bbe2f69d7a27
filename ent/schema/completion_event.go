package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// CompletionEvent records a submitted quiz, passed or not.
type CompletionEvent struct {
	ent.Schema
}

func (CompletionEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (CompletionEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").NotEmpty(),
		field.String("module_id").NotEmpty(),
		field.Int("score").NonNegative(),
		field.Int("total").NonNegative(),
		field.Bool("passed"),
	}
}

func (CompletionEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("module_id"),
	}
}
