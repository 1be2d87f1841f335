package verify

import "time"

// Report aggregates the results of one verifier run.
type Report struct {
	ID        string
	Dir       string
	StartedAt time.Time
	Results   []Result
	Passed    int
	Failed    int
}

func (r *Report) add(res Result) {
	r.Results = append(r.Results, res)
	if res.Outcome.OK() {
		r.Passed++
	} else {
		r.Failed++
	}
}

// Total is the number of checks executed.
func (r *Report) Total() int { return len(r.Results) }

// OK reports whether every check passed.
func (r *Report) OK() bool { return r.Failed == 0 }

// ExitCode is 0 when every check passed and 1 otherwise.
func (r *Report) ExitCode() int {
	if r.OK() {
		return 0
	}
	return 1
}

// Failures returns the results that did not pass, in run order.
func (r *Report) Failures() []Result {
	var out []Result
	for _, res := range r.Results {
		if !res.Outcome.OK() {
			out = append(out, res)
		}
	}
	return out
}

// Result returns the result of the named check.
func (r *Report) Result(name string) (Result, bool) {
	for _, res := range r.Results {
		if res.Name == name {
			return res, true
		}
	}
	return Result{}, false
}
