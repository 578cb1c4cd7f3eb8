// Package schema declares the tables of the quiz store. The store creates
// them with hand-written DDL; tests check the two agree.
package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
)

// Article is the first cache tier: one scraped Wikipedia page per URL.
type Article struct {
	ent.Schema
}

func (Article) Mixin() []ent.Mixin {
	return []ent.Mixin{IDMixin{}, CreatedMixin{}}
}

func (Article) Fields() []ent.Field {
	return []ent.Field{
		field.String("url").
			Unique().
			Immutable().
			Comment("Canonical en.wikipedia.org article URL"),
		field.String("title"),
		field.Text("scraped_text").
			Default("").
			Comment("Paragraph text used for question generation"),
		field.Text("raw_html").
			Default(""),
	}
}

func (Article) Edges() []ent.Edge {
	return []ent.Edge{
		edge.To("quiz", Quiz.Type).
			Unique(),
	}
}
