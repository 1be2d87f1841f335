package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
	"entgo.io/ent/schema/mixin"
)

// HistoryMixin gives every history entry a place in one global order
// shared by runs, sets and LLM requests.
type HistoryMixin struct {
	mixin.Schema
}

func (HistoryMixin) Fields() []ent.Field {
	return []ent.Field{
		field.Int64("sequence").
			Unique().
			Immutable().
			Comment("Global sequence number, issued in the insert transaction"),
		field.Time("timestamp").
			Default(time.Now).
			Immutable().
			Comment("UTC time the entry was recorded"),
	}
}

func (HistoryMixin) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("sequence"),
		index.Fields("timestamp"),
	}
}
