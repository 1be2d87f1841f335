package verify

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/saturogrp-blip/Grand/internal/logging"
)

// Verifier runs checks in order and prints the report as it goes.
type Verifier struct {
	dir    string
	checks []Check
	hints  Hints
	out    io.Writer
}

// New creates a Verifier for the project in dir.
func New(dir string, checks []Check, hints Hints, out io.Writer) *Verifier {
	return &Verifier{dir: dir, checks: checks, hints: hints, out: out}
}

// Run executes every check exactly once. A failing or panicking check never
// stops the ones after it.
func (v *Verifier) Run(ctx context.Context) *Report {
	logger := logging.FromContext(ctx)

	rep := &Report{
		ID:        uuid.New().String(),
		Dir:       v.dir,
		StartedAt: time.Now().UTC(),
	}

	fmt.Fprintln(v.out)
	fmt.Fprintln(v.out, renderBanner(bannerTitle))
	fmt.Fprintln(v.out)
	fmt.Fprintln(v.out, "Running verification checks...")
	fmt.Fprintln(v.out)

	for _, c := range v.checks {
		res := runCheck(c)
		rep.add(res)
		fmt.Fprintln(v.out, renderResult(res))
		logger.Debug("check finished",
			"check", res.Name,
			"level", res.Outcome.Level.String(),
			"duration", res.Duration)
	}

	fmt.Fprintln(v.out)
	fmt.Fprintln(v.out, renderSummary(rep))
	fmt.Fprintln(v.out)
	fmt.Fprintln(v.out, renderFooter(rep, v.hints))

	logger.Info("verification finished", "passed", rep.Passed, "failed", rep.Failed)
	return rep
}

// runCheck executes c, converting a panic into a failed outcome.
func runCheck(c Check) (res Result) {
	res.Name = c.Name
	start := time.Now()
	defer func() {
		res.Duration = time.Since(start)
		if r := recover(); r != nil {
			res.Outcome = Fail("%s: %v", c.Name, r)
		}
	}()

	if c.Run == nil {
		res.Outcome = Fail("%s: no probe defined", c.Name)
		return res
	}
	res.Outcome = c.Run()
	return res
}
