package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// InterviewSet is an assembled question list saved for a walkthrough.
type InterviewSet struct {
	ent.Schema
}

func (InterviewSet) Mixin() []ent.Mixin {
	return []ent.Mixin{HistoryMixin{}}
}

func (InterviewSet) Fields() []ent.Field {
	return []ent.Field{
		field.String("set_id").
			Unique().
			NotEmpty().
			Comment("UUID handed to `grand interview`"),
		field.String("organization"),
		field.String("strategy").
			Comment("Mandatory strategy: prepend, append or merge"),
		field.Int("sample").
			Default(0),
		field.String("seed").
			Default("0").
			Comment("Sampling seed; decimal text because it spans the full uint64 range"),
		field.Text("questions").
			Comment("JSON array of {text, mandatory}"),
		field.Text("notes").
			Default("{}").
			Comment("JSON object of question index to interviewer note"),
	}
}

func (InterviewSet) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("organization"),
	}
}
