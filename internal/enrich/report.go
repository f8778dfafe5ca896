package enrich

import "compendia/internal/matching"

// Summary counts outcomes by status.
type Summary struct {
	Outcomes  int `json:"outcomes"`
	Auto      int `json:"auto"`
	Confirmed int `json:"confirmed"`
	Rejected  int `json:"rejected"`
	Skipped   int `json:"skipped"`
}

// Bound is the number of outcomes that wrote a reference.
func (s Summary) Bound() int { return s.Auto + s.Confirmed }

// Report is the ordered result of one run, entry by entry and image before
// token.
type Report struct {
	RunID       string             `json:"run_id"`
	Source      string             `json:"source"`
	Entries     int                `json:"entries"`
	Outcomes    []matching.Outcome `json:"outcomes"`
	Summary     Summary            `json:"summary"`
	AskDisabled bool               `json:"ask_disabled,omitempty"`
}

func (r *Report) add(outcome matching.Outcome) {
	r.Outcomes = append(r.Outcomes, outcome)
	r.Summary.Outcomes++
	switch outcome.Status {
	case matching.StatusAutoAccepted:
		r.Summary.Auto++
	case matching.StatusAskAccepted:
		r.Summary.Confirmed++
	case matching.StatusRejected:
		r.Summary.Rejected++
	default:
		r.Summary.Skipped++
	}
}

// Bound returns the outcomes that wrote a reference, in order.
func (r *Report) Bound() []matching.Outcome {
	var bound []matching.Outcome
	for _, o := range r.Outcomes {
		if o.Bound() {
			bound = append(bound, o)
		}
	}
	return bound
}
