// Package banks holds the interview question banks and the mandatory
// question list, and the schemas that external bank files must satisfy.
package banks

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
)

var (
	ErrEmptyOrganization     = errors.New("organization name is empty")
	ErrEmptyBank             = errors.New("bank has no questions")
	ErrDuplicateOrganization = errors.New("duplicate organization")
	ErrNoMandatory           = errors.New("mandatory question list is empty")
	ErrDuplicateMandatory    = errors.New("more than one mandatory question file")
)

var lineBreak = regexp.MustCompile(`\r?\n`)

// ParseLines splits text into trimmed, non-empty lines, keeping their order.
func ParseLines(text string) []string {
	var out []string
	for _, line := range lineBreak.Split(text, -1) {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// clean trims every question and drops the blank ones.
func clean(questions []string) []string {
	out := make([]string, 0, len(questions))
	for _, q := range questions {
		if q = strings.TrimSpace(q); q != "" {
			out = append(out, q)
		}
	}
	return out
}

// Bank is the ordered question list of one organization. The zero value is
// an empty bank; use NewBank to build a valid one.
type Bank struct {
	org       string
	questions []string
}

// NewBank validates and copies questions into a Bank.
func NewBank(org string, questions []string) (Bank, error) {
	org = strings.TrimSpace(org)
	if org == "" {
		return Bank{}, ErrEmptyOrganization
	}
	qs := clean(questions)
	if len(qs) == 0 {
		return Bank{}, fmt.Errorf("%s: %w", org, ErrEmptyBank)
	}
	return Bank{org: org, questions: qs}, nil
}

// ParseBank builds a Bank from newline-separated text.
func ParseBank(org, text string) (Bank, error) {
	return NewBank(org, ParseLines(text))
}

func (b Bank) Organization() string { return b.org }

// Questions returns a copy of the bank's questions.
func (b Bank) Questions() []string { return slices.Clone(b.questions) }

func (b Bank) Len() int { return len(b.questions) }
