// Package verify implements the environment verifier: an ordered list of
// independent checks, each turned into a pass or fail outcome, followed by
// a boxed summary and an exit code.
package verify

import (
	"fmt"
	"time"
)

// Level grades an Outcome. Only LevelPass counts as passed.
type Level int

const (
	LevelPass Level = iota
	// LevelWarn is a soft failure: counted as failed, rendered with a
	// warning marker and a remedy.
	LevelWarn
	LevelFail
)

func (l Level) String() string {
	switch l {
	case LevelPass:
		return "pass"
	case LevelWarn:
		return "warn"
	default:
		return "fail"
	}
}

// Outcome is what a probe reports.
type Outcome struct {
	Level   Level
	Message string
}

// OK reports whether the outcome counts as passed.
func (o Outcome) OK() bool { return o.Level == LevelPass }

func Pass(format string, args ...any) Outcome {
	return Outcome{Level: LevelPass, Message: fmt.Sprintf(format, args...)}
}

func Warn(format string, args ...any) Outcome {
	return Outcome{Level: LevelWarn, Message: fmt.Sprintf(format, args...)}
}

func Fail(format string, args ...any) Outcome {
	return Outcome{Level: LevelFail, Message: fmt.Sprintf(format, args...)}
}

// Check is one named verification step. Run takes no input; it probes the
// environment (possibly with side effects) and reports the outcome.
type Check struct {
	Name string
	Run  func() Outcome
}

// Result is the outcome of one executed check.
type Result struct {
	Name     string
	Outcome  Outcome
	Duration time.Duration
}
