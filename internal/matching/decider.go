package matching

import (
	"context"
	"sync"

	"compendia/internal/candidates"
)

// Answer is a Decider's verdict on an ask-tier candidate.
type Answer int

const (
	AnswerAccept Answer = iota
	AnswerReject
	// AnswerSkipAll rejects the candidate and stops all further prompts.
	AnswerSkipAll
)

func (a Answer) String() string {
	switch a {
	case AnswerAccept:
		return "accept"
	case AnswerReject:
		return "reject"
	case AnswerSkipAll:
		return "skip_all"
	default:
		return "unknown"
	}
}

// Prompt describes a borderline candidate awaiting a decision.
type Prompt struct {
	Entry     string
	Kind      string
	Role      candidates.Role
	Candidate string
	Path      string
	Score     int
}

// Decider resolves ask-tier candidates. Returning an error aborts the run.
type Decider interface {
	Decide(ctx context.Context, prompt Prompt) (Answer, error)
}

// DeciderFunc adapts a function to the Decider interface.
type DeciderFunc func(ctx context.Context, prompt Prompt) (Answer, error)

func (f DeciderFunc) Decide(ctx context.Context, prompt Prompt) (Answer, error) {
	return f(ctx, prompt)
}

// RejectAll declines every prompt. It is used for non-interactive runs.
var RejectAll Decider = DeciderFunc(func(context.Context, Prompt) (Answer, error) {
	return AnswerReject, nil
})

// ScriptedDecider replays a fixed sequence of answers and records the
// prompts it was shown. Once the script runs out it rejects.
type ScriptedDecider struct {
	mu      sync.Mutex
	answers []Answer
	prompts []Prompt
}

// NewScriptedDecider returns a decider that answers in order.
func NewScriptedDecider(answers ...Answer) *ScriptedDecider {
	return &ScriptedDecider{answers: append([]Answer(nil), answers...)}
}

func (s *ScriptedDecider) Decide(_ context.Context, prompt Prompt) (Answer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts = append(s.prompts, prompt)
	if len(s.answers) == 0 {
		return AnswerReject, nil
	}
	answer := s.answers[0]
	s.answers = s.answers[1:]
	return answer, nil
}

// Prompts returns the prompts seen so far.
func (s *ScriptedDecider) Prompts() []Prompt {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Prompt(nil), s.prompts...)
}
