// Package migrate holds the table definitions of the ent schemas in
// ../schema, in the layout `go generate ./ent` emits.
package migrate

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

var (
	// VerificationRunsColumns holds the columns for the "verification_runs" table.
	VerificationRunsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "run_id", Type: field.TypeString, Unique: true},
		{Name: "dir", Type: field.TypeString, Default: ""},
		{Name: "passed", Type: field.TypeInt, Default: 0},
		{Name: "failed", Type: field.TypeInt, Default: 0},
		{Name: "results", Type: field.TypeString, Size: 2147483647},
	}
	// VerificationRunsTable holds the schema information for the "verification_runs" table.
	VerificationRunsTable = &schema.Table{
		Name:       "verification_runs",
		Columns:    VerificationRunsColumns,
		PrimaryKey: []*schema.Column{VerificationRunsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "verificationrun_sequence", Unique: false, Columns: []*schema.Column{VerificationRunsColumns[1]}},
			{Name: "verificationrun_timestamp", Unique: false, Columns: []*schema.Column{VerificationRunsColumns[2]}},
		},
	}
	// InterviewSetsColumns holds the columns for the "interview_sets" table.
	InterviewSetsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "set_id", Type: field.TypeString, Unique: true},
		{Name: "organization", Type: field.TypeString},
		{Name: "strategy", Type: field.TypeString},
		{Name: "sample", Type: field.TypeInt, Default: 0},
		{Name: "seed", Type: field.TypeString, Default: "0"},
		{Name: "questions", Type: field.TypeString, Size: 2147483647},
		{Name: "notes", Type: field.TypeString, Size: 2147483647, Default: "{}"},
	}
	// InterviewSetsTable holds the schema information for the "interview_sets" table.
	InterviewSetsTable = &schema.Table{
		Name:       "interview_sets",
		Columns:    InterviewSetsColumns,
		PrimaryKey: []*schema.Column{InterviewSetsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "interviewset_organization", Unique: false, Columns: []*schema.Column{InterviewSetsColumns[4]}},
			{Name: "interviewset_sequence", Unique: false, Columns: []*schema.Column{InterviewSetsColumns[1]}},
			{Name: "interviewset_timestamp", Unique: false, Columns: []*schema.Column{InterviewSetsColumns[2]}},
		},
	}
	// LlmRequestEventsColumns holds the columns for the "llm_request_events" table.
	LlmRequestEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString, Default: ""},
		{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Default: ""},
	}
	// LlmRequestEventsTable holds the schema information for the "llm_request_events" table.
	LlmRequestEventsTable = &schema.Table{
		Name:       "llm_request_events",
		Columns:    LlmRequestEventsColumns,
		PrimaryKey: []*schema.Column{LlmRequestEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llmrequestevent_provider", Unique: false, Columns: []*schema.Column{LlmRequestEventsColumns[3]}},
			{Name: "llmrequestevent_purpose", Unique: false, Columns: []*schema.Column{LlmRequestEventsColumns[5]}},
			{Name: "llmrequestevent_sequence", Unique: false, Columns: []*schema.Column{LlmRequestEventsColumns[1]}},
			{Name: "llmrequestevent_timestamp", Unique: false, Columns: []*schema.Column{LlmRequestEventsColumns[2]}},
		},
	}
	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		VerificationRunsTable,
		InterviewSetsTable,
		LlmRequestEventsTable,
	}
)
