package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Attempt is one scored submission of answers to a quiz.
type Attempt struct {
	ent.Schema
}

func (Attempt) Mixin() []ent.Mixin {
	return []ent.Mixin{IDMixin{}, CreatedMixin{}}
}

func (Attempt) Fields() []ent.Field {
	return []ent.Field{
		field.Int64("quiz_id").
			Immutable(),
		field.Int("score"),
		field.Int("total"),
		field.Text("user_answers").
			Comment("JSON object of question index to submitted label"),
	}
}

func (Attempt) Edges() []ent.Edge {
	return []ent.Edge{
		edge.From("quiz", Quiz.Type).
			Ref("attempts").
			Field("quiz_id").
			Unique().
			Required().
			Immutable(),
	}
}

func (Attempt) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("quiz_id"),
	}
}
