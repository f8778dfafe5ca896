package matching

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"compendia/internal/candidates"
	"compendia/internal/logging"
)

// ErrInvalidThresholds reports a threshold outside 0-100.
var ErrInvalidThresholds = errors.New("invalid thresholds")

// Thresholds are the two similarity cut-offs, each in 0-100.
type Thresholds struct {
	Match int
	Ask   int
}

// Validate checks both thresholds are in range. Ask at or above Match is
// allowed; the ask tier is then unreachable.
func (t Thresholds) Validate() error {
	if t.Match < 0 || t.Match > 100 {
		return fmt.Errorf("%w: match percent %d outside 0-100", ErrInvalidThresholds, t.Match)
	}
	if t.Ask < 0 || t.Ask > 100 {
		return fmt.Errorf("%w: ask percent %d outside 0-100", ErrInvalidThresholds, t.Ask)
	}
	return nil
}

// Tier is the decision band a score falls into.
type Tier int

const (
	TierReject Tier = iota
	TierAsk
	TierAuto
)

func (t Tier) String() string {
	switch t {
	case TierAuto:
		return "auto"
	case TierAsk:
		return "ask"
	default:
		return "reject"
	}
}

// Classify places score into a tier.
func (t Thresholds) Classify(score int) Tier {
	switch {
	case score >= t.Match:
		return TierAuto
	case score >= t.Ask:
		return TierAsk
	default:
		return TierReject
	}
}

// Subject is the entry being matched.
type Subject struct {
	Name string
	Kind string
}

// Matcher binds entries to candidates. A Matcher carries run state (whether
// the ask tier is still enabled) and should be used for a single run.
type Matcher struct {
	thresholds  Thresholds
	decider     Decider
	logger      *slog.Logger
	askDisabled bool
	prompts     int
}

// NewMatcher validates thresholds and returns a matcher. A nil decider
// rejects every ask-tier candidate.
func NewMatcher(th Thresholds, decider Decider, logger *slog.Logger) (*Matcher, error) {
	if err := th.Validate(); err != nil {
		return nil, err
	}
	if decider == nil {
		decider = RejectAll
	}
	return &Matcher{
		thresholds: th,
		decider:    decider,
		logger:     logging.NewComponentLogger(logger, "matcher"),
	}, nil
}

// AskDisabled reports whether a SkipAll answer switched prompting off.
func (m *Matcher) AskDisabled() bool { return m.askDisabled }

// Prompts returns how many times the decider was consulted.
func (m *Matcher) Prompts() int { return m.prompts }

// Match finds the best candidate for entry in index and applies the tier
// policy. Bound candidates are consumed from index. The returned error is
// non-nil only when ctx is done or the decider fails.
func (m *Matcher) Match(ctx context.Context, entry Subject, index *candidates.Index) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}
	role := index.Role()
	outcome := Outcome{Entry: entry.Name, Kind: entry.Kind, Role: role}
	logger := logging.WithContext(ctx, m.logger).With(
		logging.String(logging.FieldEntry, entry.Name),
		logging.String(logging.FieldRole, string(role)),
	)

	best, ok := index.BestMatch(entry.Name)
	if !ok {
		outcome.Status = StatusSkipped
		outcome.Reason = ReasonNoCandidate
		logger.Debug("no candidate available")
		return outcome, nil
	}
	outcome.setCandidate(best)
	logger = logger.With(
		logging.String(logging.FieldCandidate, best.File.Name),
		logging.Int(logging.FieldScore, best.Score),
	)

	switch m.thresholds.Classify(best.Score) {
	case TierAuto:
		index.Consume(best.File)
		outcome.Status = StatusAutoAccepted
		outcome.Reason = ReasonAboveMatch
		logger.Log(ctx, logging.LevelDetail, "candidate bound automatically",
			logging.Args(logging.DecisionAttrs("match_tier", "auto", ReasonAboveMatch)...)...)
		return outcome, nil

	case TierAsk:
		if m.askDisabled {
			outcome.Status = StatusRejected
			outcome.Reason = ReasonAskDisabled
			logger.Debug("borderline candidate rejected without prompt")
			return outcome, nil
		}
		m.prompts++
		logger.Info("borderline candidate needs confirmation")
		answer, err := m.decider.Decide(ctx, Prompt{
			Entry:     entry.Name,
			Kind:      entry.Kind,
			Role:      role,
			Candidate: best.File.Name,
			Path:      best.File.Path,
			Score:     best.Score,
		})
		if err != nil {
			return outcome, fmt.Errorf("decide %s for %q: %w", role, entry.Name, err)
		}
		switch answer {
		case AnswerAccept:
			index.Consume(best.File)
			outcome.Status = StatusAskAccepted
			outcome.Reason = ReasonConfirmed
		case AnswerSkipAll:
			m.askDisabled = true
			outcome.Status = StatusRejected
			outcome.Reason = ReasonSkipAll
		default:
			outcome.Status = StatusRejected
			outcome.Reason = ReasonDeclined
		}
		logger.Debug("ask tier resolved",
			logging.Args(logging.DecisionAttrs("match_tier", answer.String(), outcome.Reason)...)...)
		return outcome, nil

	default:
		outcome.Status = StatusRejected
		outcome.Reason = ReasonTooDissimilar
		logger.Debug("best candidate below ask threshold")
		return outcome, nil
	}
}
