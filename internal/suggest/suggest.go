// Package suggest asks a language model for new interview questions for one
// organization. Suggestions are returned to the caller and never added to
// the catalog.
package suggest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/saturogrp-blip/Grand/internal/banks"
	"github.com/saturogrp-blip/Grand/internal/interview"
	"github.com/saturogrp-blip/Grand/internal/llm"
	"github.com/saturogrp-blip/Grand/internal/logging"
)

var ErrInvalidCount = errors.New("question count must be positive")

// Config tunes generation.
type Config struct {
	MaxTokens   int
	Temperature float64
	// MaxExisting caps how many bank questions go into the prompt.
	MaxExisting int
}

// DefaultConfig returns the settings used by the CLI.
func DefaultConfig() Config {
	return Config{MaxTokens: 1024, Temperature: 0.7, MaxExisting: 120}
}

// Service generates question suggestions.
type Service struct {
	provider llm.Provider
	cfg      Config
}

func New(p llm.Provider, cfg Config) *Service {
	return &Service{provider: p, cfg: cfg}
}

type reply struct {
	Questions []string `json:"questions"`
}

// Suggest returns up to n new questions for org. Blank entries and
// duplicates of the bank, the mandatory list or each other are dropped,
// ignoring case and spacing.
func (s *Service) Suggest(ctx context.Context, c *banks.Catalog, org string, n int) ([]string, error) {
	if n <= 0 {
		return nil, ErrInvalidCount
	}
	bank, ok := c.Bank(org)
	if !ok {
		return nil, fmt.Errorf("%w %q", interview.ErrUnknownOrganization, org)
	}

	existing := bank.Questions()
	mandatory := c.Mandatory()

	ctx = llm.WithPurpose(ctx, "suggest")
	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Prompt:      buildPrompt(org, n, existing, mandatory, s.cfg.MaxExisting),
		Schema:      QuestionsSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("suggest questions for %s: %w", org, err)
	}

	var r reply
	if err := json.Unmarshal(resp.Content, &r); err != nil {
		return nil, fmt.Errorf("parse suggestions: %w", err)
	}

	seen := make(map[string]bool, len(existing)+len(mandatory))
	for _, q := range existing {
		seen[interview.Normalize(q)] = true
	}
	for _, q := range mandatory {
		seen[interview.Normalize(q)] = true
	}

	var out []string
	dropped := 0
	for _, q := range r.Questions {
		q = strings.TrimSpace(q)
		k := interview.Normalize(q)
		if k == "" || seen[k] {
			dropped++
			continue
		}
		seen[k] = true
		out = append(out, q)
		if len(out) == n {
			break
		}
	}

	logging.FromContext(ctx).Debug("suggestions filtered",
		"organization", org, "returned", len(r.Questions), "kept", len(out), "dropped", dropped)
	return out, nil
}
