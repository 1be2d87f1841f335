package suggest

import "github.com/saturogrp-blip/Grand/internal/llm"

// QuestionsSchema is the reply format for suggestion requests.
var QuestionsSchema = &llm.Schema{
	Name:        "interview-questions",
	Description: "New interview questions for one organization",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":        "string",
					"description": "One interview question, a single sentence ending with a question mark or period",
				},
				"description": "The suggested questions, most useful first",
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}
