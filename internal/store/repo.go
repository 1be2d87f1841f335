package store

import (
	"context"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// QueryOpts configures history queries with filtering and pagination.
// Results are returned newest first.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// apply adds the filters, newest-first ordering and limit of o to sel.
func (o QueryOpts) apply(sel *entsql.Selector) *entsql.Selector {
	if o.After > 0 {
		sel.Where(entsql.GT("sequence", o.After))
	}
	if o.Before > 0 {
		sel.Where(entsql.LT("sequence", o.Before))
	}
	if !o.From.IsZero() {
		sel.Where(entsql.GTE("timestamp", o.From.UTC()))
	}
	if !o.To.IsZero() {
		sel.Where(entsql.LTE("timestamp", o.To.UTC()))
	}
	sel.OrderBy(entsql.Desc("sequence"))
	if o.Limit > 0 {
		sel.Limit(o.Limit)
	}
	return sel
}

// CheckRecord is one check outcome of a stored verification run.
type CheckRecord struct {
	Name       string `json:"name"`
	Level      string `json:"level"`
	Message    string `json:"message"`
	DurationMs int64  `json:"duration_ms"`
}

// RunRecord is a stored verification run.
type RunRecord struct {
	ID        string
	Sequence  int64
	Dir       string
	Passed    int
	Failed    int
	Results   []CheckRecord
	CreatedAt time.Time
}

// RunRepo records verification runs.
type RunRepo interface {
	// AppendRun stores a run. Sequence is assigned by the store.
	AppendRun(ctx context.Context, run RunRecord) error

	// ListRuns returns stored runs, newest first.
	ListRuns(ctx context.Context, opts QueryOpts) ([]RunRecord, error)
}

// QuestionRecord is one question of a stored interview set.
type QuestionRecord struct {
	Text      string `json:"text"`
	Mandatory bool   `json:"mandatory"`
}

// SetRecord is a stored interview set with its walkthrough notes, keyed by
// question index.
type SetRecord struct {
	ID           string
	Sequence     int64
	Organization string
	Strategy     string
	Sample       int
	Seed         uint64
	Questions    []QuestionRecord
	Notes        map[int]string
	CreatedAt    time.Time
}

// SetRepo stores assembled interview sets.
type SetRepo interface {
	SaveSet(ctx context.Context, set SetRecord) error

	// GetSet returns ErrNotFound when id is unknown.
	GetSet(ctx context.Context, id string) (*SetRecord, error)

	ListSets(ctx context.Context, opts QueryOpts) ([]SetRecord, error)

	// SaveNotes replaces the notes of set id.
	SaveNotes(ctx context.Context, id string, notes map[int]string) error
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LLMRequestEvent is a stored LLM request.
type LLMRequestEvent struct {
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	ListLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)
}
