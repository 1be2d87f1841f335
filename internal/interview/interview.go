// Package interview assembles the questions for one interview from the
// catalog: the mandatory list combined with an organization's bank.
package interview

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/saturogrp-blip/Grand/internal/banks"
)

var (
	ErrNoStrategy          = errors.New("no mandatory strategy chosen")
	ErrUnknownStrategy     = errors.New("unknown mandatory strategy")
	ErrUnknownOrganization = errors.New("unknown organization")
	ErrNegativeSample      = errors.New("sample size must not be negative")
)

// Strategy decides how mandatory questions combine with a bank. The zero
// value is invalid; callers must pick one.
type Strategy int

const (
	// Prepend asks the mandatory questions first.
	Prepend Strategy = iota + 1
	// Append asks the mandatory questions last.
	Append
	// MergeUnique asks mandatory questions first and drops bank questions
	// that repeat one, ignoring case.
	MergeUnique
)

// Strategies lists the accepted names.
var Strategies = []string{"prepend", "append", "merge"}

// ParseStrategy accepts "prepend", "append" and "merge".
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return 0, ErrNoStrategy
	case "prepend":
		return Prepend, nil
	case "append":
		return Append, nil
	case "merge", "merge-unique":
		return MergeUnique, nil
	}
	return 0, fmt.Errorf("%w %q: must be one of %s", ErrUnknownStrategy, s, strings.Join(Strategies, ", "))
}

func (s Strategy) String() string {
	switch s {
	case Prepend:
		return "prepend"
	case Append:
		return "append"
	case MergeUnique:
		return "merge"
	}
	return fmt.Sprintf("strategy(%d)", int(s))
}

// Options select and shape a set.
type Options struct {
	Organization string
	Strategy     Strategy

	// Sample > 0 draws that many bank questions, keeping bank order.
	// Zero takes the whole bank.
	Sample int
	Seed   uint64
}

// Question is one entry of an assembled set.
type Question struct {
	Text      string
	Mandatory bool
}

// Set is an assembled, ordered list of questions.
type Set struct {
	ID           string
	Organization string
	Strategy     Strategy
	Sample       int
	Seed         uint64
	Questions    []Question
	CreatedAt    time.Time
}

// Assemble builds a Set from the catalog. It never modifies the catalog.
func Assemble(c *banks.Catalog, opts Options) (Set, error) {
	switch opts.Strategy {
	case Prepend, Append, MergeUnique:
	case 0:
		return Set{}, ErrNoStrategy
	default:
		return Set{}, fmt.Errorf("%w: %d", ErrUnknownStrategy, int(opts.Strategy))
	}
	if opts.Sample < 0 {
		return Set{}, ErrNegativeSample
	}

	bank, ok := c.Bank(opts.Organization)
	if !ok {
		return Set{}, fmt.Errorf("%w %q: known organizations are %s",
			ErrUnknownOrganization, opts.Organization, strings.Join(c.Organizations(), ", "))
	}

	picked := sample(bank.Questions(), opts.Sample, opts.Seed)
	mandatory := c.Mandatory()

	var qs []Question
	switch opts.Strategy {
	case Prepend:
		qs = append(tag(mandatory, true), tag(picked, false)...)
	case Append:
		qs = append(tag(picked, false), tag(mandatory, true)...)
	case MergeUnique:
		seen := make(map[string]bool, len(mandatory))
		for _, q := range mandatory {
			seen[Normalize(q)] = true
		}
		qs = tag(mandatory, true)
		for _, q := range picked {
			if k := Normalize(q); !seen[k] {
				seen[k] = true
				qs = append(qs, Question{Text: q})
			}
		}
	}

	return Set{
		ID:           uuid.New().String(),
		Organization: opts.Organization,
		Strategy:     opts.Strategy,
		Sample:       opts.Sample,
		Seed:         opts.Seed,
		Questions:    qs,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// Normalize is the key used for case-insensitive duplicate detection.
func Normalize(q string) string {
	return strings.ToLower(strings.Join(strings.Fields(q), " "))
}

// sample picks n of qs without replacement, preserving their order. The
// same seed always picks the same questions.
func sample(qs []string, n int, seed uint64) []string {
	if n == 0 || n >= len(qs) {
		return qs
	}
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	idx := r.Perm(len(qs))[:n]
	keep := make([]bool, len(qs))
	for _, i := range idx {
		keep[i] = true
	}
	out := make([]string, 0, n)
	for i, q := range qs {
		if keep[i] {
			out = append(out, q)
		}
	}
	return out
}

func tag(qs []string, mandatory bool) []Question {
	out := make([]Question, len(qs))
	for i, q := range qs {
		out[i] = Question{Text: q, Mandatory: mandatory}
	}
	return out
}

// MandatoryCount returns how many questions of s are mandatory.
func (s Set) MandatoryCount() int {
	n := 0
	for _, q := range s.Questions {
		if q.Mandatory {
			n++
		}
	}
	return n
}
