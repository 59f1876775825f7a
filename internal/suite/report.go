package suite

import "time"

// Phase is the step of an item's execution a Report describes.
type Phase string

// PhaseCall is the execution of the test body.
const PhaseCall Phase = "call"

// Outcome is the result of an item.
type Outcome string

const (
	// OutcomePassed is reported when the body completed without failing.
	OutcomePassed Outcome = "passed"
	// OutcomeFailed is reported when the body failed.
	OutcomeFailed Outcome = "failed"
)

// Report describes the outcome of one item.
type Report struct {
	NodeID   string
	When     Phase
	Outcome  Outcome
	Duration time.Duration
	// Crash is the one line failure message used in summaries.
	Crash string
	// Longrepr is the full failure output including logs.
	Longrepr string
	// Extra carries contextual strings attached by ReportMaker plugins.
	Extra []string
}

// Passed reports whether the item passed.
func (r *Report) Passed() bool {
	return r.Outcome == OutcomePassed
}

// Failed reports whether the item failed.
func (r *Report) Failed() bool {
	return r.Outcome == OutcomeFailed
}

func newReport(item *Item, t *T, duration time.Duration) *Report {
	rep := &Report{
		NodeID:   item.NodeID,
		When:     PhaseCall,
		Outcome:  OutcomePassed,
		Duration: duration,
	}

	if t.Failed() {
		rep.Outcome = OutcomeFailed
		rep.Crash = t.crash()
		rep.Longrepr = t.longrepr()
	}

	return rep
}
