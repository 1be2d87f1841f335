package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// VerificationRun is one recorded `grand verify --record` invocation.
type VerificationRun struct {
	ent.Schema
}

func (VerificationRun) Mixin() []ent.Mixin {
	return []ent.Mixin{HistoryMixin{}}
}

func (VerificationRun) Fields() []ent.Field {
	return []ent.Field{
		field.String("run_id").
			Unique().
			NotEmpty().
			Comment("UUID of the verifier report"),
		field.String("dir").
			Default("").
			Comment("Working directory the checks ran in"),
		field.Int("passed").
			Default(0),
		field.Int("failed").
			Default(0),
		field.Text("results").
			Comment("JSON array of check name, level, message and duration"),
	}
}
