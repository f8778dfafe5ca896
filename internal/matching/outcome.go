package matching

import "compendia/internal/candidates"

// Status is the result of matching one entry for one role.
type Status string

const (
	StatusSkipped      Status = "skipped"
	StatusAutoAccepted Status = "auto"
	StatusAskAccepted  Status = "confirmed"
	StatusRejected     Status = "rejected"
)

const (
	ReasonNoCandidate   = "no candidate"
	ReasonAboveMatch    = "score at or above match threshold"
	ReasonConfirmed     = "confirmed"
	ReasonDeclined      = "declined"
	ReasonSkipAll       = "skip all"
	ReasonAskDisabled   = "ask disabled"
	ReasonTooDissimilar = "too dissimilar"
	ReasonUnsupported   = "unsupported"
	ReasonExisting      = "existing reference"
)

// Outcome records what happened to one entry for one role.
type Outcome struct {
	Entry     string          `json:"entry"`
	Kind      string          `json:"kind"`
	Role      candidates.Role `json:"role"`
	Status    Status          `json:"status"`
	Reason    string          `json:"reason"`
	Candidate string          `json:"candidate,omitempty"`
	Score     int             `json:"score,omitempty"`
	// Reference is the archive reference written for a bound outcome.
	Reference string `json:"reference,omitempty"`

	File candidates.File `json:"-"`
}

// Bound reports whether the candidate was accepted for the entry.
func (o Outcome) Bound() bool {
	return o.Status == StatusAutoAccepted || o.Status == StatusAskAccepted
}

func (o *Outcome) setCandidate(m candidates.Match) {
	o.Candidate = m.File.Name
	o.Score = m.Score
	o.File = m.File
}
