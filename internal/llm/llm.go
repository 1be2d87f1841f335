// Package llm talks to hosted language models for structured, single-turn
// generation. Every provider returns JSON that has already been checked
// against the caller's schema.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates one structured completion per call.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the model the provider sends requests to.
	ModelID() string
}

// Request is a single-turn prompt.
type Request struct {
	System string
	Prompt string

	// Schema, when set, makes the provider ask for JSON output and
	// validate the reply against it. Without it Content is the raw text.
	Schema *Schema

	MaxTokens   int
	Temperature float64
}

// Schema is a named JSON Schema document.
type Schema struct {
	// Name is kebab-case, e.g. "interview-questions". It doubles as the
	// cache key for the compiled schema.
	Name        string
	Description string
	Definition  map[string]any
}

// Response is a completed generation.
type Response struct {
	Content json.RawMessage
	Usage   Usage
	Model   string

	// StopReason is "end" or "max_tokens".
	StopReason string
}

// Usage reports token consumption for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Total is input plus output tokens.
func (u Usage) Total() int { return u.InputTokens + u.OutputTokens }

const (
	stopEnd       = "end"
	stopMaxTokens = "max_tokens"
)

// finish validates content against the request schema and builds the
// response. A truncated reply is reported as KindTruncated.
func finish(req Request, content json.RawMessage, model, stop string, usage Usage) (*Response, error) {
	if stop == stopMaxTokens {
		return nil, &Error{Kind: KindTruncated, Content: content}
	}
	if req.Schema != nil {
		if err := validate(req.Schema, content); err != nil {
			return nil, err
		}
	}
	return &Response{Content: content, Usage: usage, Model: model, StopReason: stop}, nil
}
