package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
)

// Quiz is the second cache tier: the generated questions for an article.
type Quiz struct {
	ent.Schema
}

func (Quiz) Mixin() []ent.Mixin {
	return []ent.Mixin{IDMixin{}, CreatedMixin{}}
}

func (Quiz) Fields() []ent.Field {
	return []ent.Field{
		field.Int64("article_id").
			Unique().
			Immutable(),
		field.Text("quiz_json").
			Comment("JSON array of questions as served"),
		field.String("llm_model").
			Default("").
			Comment("Model that generated the questions"),
		field.String("prompt_version").
			Default(""),
	}
}

func (Quiz) Edges() []ent.Edge {
	return []ent.Edge{
		edge.From("article", Article.Type).
			Ref("quiz").
			Field("article_id").
			Unique().
			Required().
			Immutable(),
		edge.To("attempts", Attempt.Type),
	}
}
