package matching_test

import (
	"context"
	"errors"
	"testing"

	"compendia/internal/candidates"
	"compendia/internal/logging"
	"compendia/internal/matching"
)

var defaults = matching.Thresholds{Match: 80, Ask: 50}

func newMatcher(t *testing.T, th matching.Thresholds, d matching.Decider) *matching.Matcher {
	t.Helper()
	m, err := matching.NewMatcher(th, d, logging.NewNop())
	if err != nil {
		t.Fatalf("NewMatcher: %v", err)
	}
	return m
}

func monster(name string) matching.Subject {
	return matching.Subject{Name: name, Kind: "monster"}
}

func mustMatch(t *testing.T, m *matching.Matcher, name string, idx *candidates.Index) matching.Outcome {
	t.Helper()
	outcome, err := m.Match(context.Background(), monster(name), idx)
	if err != nil {
		t.Fatalf("Match(%q): %v", name, err)
	}
	return outcome
}

func TestNewMatcherRejectsOutOfRangeThresholds(t *testing.T) {
	cases := []matching.Thresholds{
		{Match: -1, Ask: 50},
		{Match: 101, Ask: 50},
		{Match: 80, Ask: -5},
		{Match: 80, Ask: 150},
	}
	for _, th := range cases {
		if _, err := matching.NewMatcher(th, nil, nil); !errors.Is(err, matching.ErrInvalidThresholds) {
			t.Fatalf("thresholds %+v: expected ErrInvalidThresholds, got %v", th, err)
		}
	}
	if _, err := matching.NewMatcher(matching.Thresholds{Match: 50, Ask: 90}, nil, nil); err != nil {
		t.Fatalf("ask above match must be allowed: %v", err)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		th    matching.Thresholds
		score int
		want  matching.Tier
	}{
		{defaults, 80, matching.TierAuto},
		{defaults, 79, matching.TierAsk},
		{defaults, 50, matching.TierAsk},
		{defaults, 49, matching.TierReject},
		{matching.Thresholds{Match: 60, Ask: 70}, 65, matching.TierAuto},
		{matching.Thresholds{Match: 60, Ask: 70}, 59, matching.TierReject},
	}
	for _, tt := range tests {
		if got := tt.th.Classify(tt.score); got != tt.want {
			t.Errorf("%+v.Classify(%d) = %s, want %s", tt.th, tt.score, got, tt.want)
		}
	}
}

func TestExactNamesBindAutomatically(t *testing.T) {
	decider := matching.NewScriptedDecider()
	m := newMatcher(t, defaults, decider)
	idx := candidates.Build([]string{"/art/goblin_boss.png", "/art/goblin.png"}, candidates.RoleImage)

	boss := mustMatch(t, m, "Goblin Boss", idx)
	if boss.Status != matching.StatusAutoAccepted || boss.Candidate != "goblin_boss.png" || boss.Score != 100 || !boss.Bound() {
		t.Fatalf("unexpected boss outcome: %+v", boss)
	}
	goblin := mustMatch(t, m, "Goblin", idx)
	if goblin.Status != matching.StatusAutoAccepted || goblin.Candidate != "goblin.png" || goblin.Score != 100 {
		t.Fatalf("unexpected goblin outcome: %+v", goblin)
	}
	if n := len(decider.Prompts()); n != 0 {
		t.Fatalf("expected no prompts, got %d", n)
	}
	if idx.Len() != 0 {
		t.Fatalf("expected both files consumed, %d left", idx.Len())
	}
}

func TestBorderlineRejectKeepsCandidate(t *testing.T) {
	decider := matching.NewScriptedDecider(matching.AnswerReject)
	m := newMatcher(t, defaults, decider)
	idx := candidates.Build([]string{"/art/orc.png"}, candidates.RoleImage)

	outcome := mustMatch(t, m, "Orc Chieftain", idx)
	if outcome.Status != matching.StatusRejected || outcome.Reason != matching.ReasonDeclined || outcome.Bound() {
		t.Fatalf("unexpected outcome: %+v", outcome)
	}

	prompts := decider.Prompts()
	if len(prompts) != 1 {
		t.Fatalf("expected one prompt, got %d", len(prompts))
	}
	p := prompts[0]
	if p.Entry != "Orc Chieftain" || p.Candidate != "orc.png" {
		t.Fatalf("unexpected prompt: %+v", p)
	}
	if p.Score < 50 || p.Score >= 80 {
		t.Fatalf("prompt score %d outside ask tier", p.Score)
	}
	if idx.Len() != 1 {
		t.Fatal("rejected candidate must stay available")
	}
}

func TestBorderlineAcceptConsumes(t *testing.T) {
	m := newMatcher(t, defaults, matching.NewScriptedDecider(matching.AnswerAccept))
	idx := candidates.Build([]string{"/art/orc.png"}, candidates.RoleImage)

	outcome := mustMatch(t, m, "Orc Chieftain", idx)
	if outcome.Status != matching.StatusAskAccepted || !outcome.Bound() {
		t.Fatalf("unexpected outcome: %+v", outcome)
	}
	if idx.Len() != 0 {
		t.Fatal("accepted candidate must be consumed")
	}
	if again := mustMatch(t, m, "Orc", idx); again.Status != matching.StatusSkipped {
		t.Fatalf("expected skip on exhausted pool, got %+v", again)
	}
}

func TestExactOnlyThresholds(t *testing.T) {
	decider := matching.NewScriptedDecider()
	m := newMatcher(t, matching.Thresholds{Match: 100, Ask: 100}, decider)
	idx := candidates.Build([]string{"/art/goblins.png", "/art/orc.png"}, candidates.RoleImage)

	near := mustMatch(t, m, "Goblin", idx)
	if near.Status != matching.StatusRejected || near.Reason != matching.ReasonTooDissimilar {
		t.Fatalf("unexpected near outcome: %+v", near)
	}
	if exact := mustMatch(t, m, "ORC", idx); exact.Status != matching.StatusAutoAccepted {
		t.Fatalf("unexpected exact outcome: %+v", exact)
	}
	if len(decider.Prompts()) != 0 {
		t.Fatal("exact-only thresholds must never prompt")
	}
}

func TestSkipAllDisablesFurtherPrompts(t *testing.T) {
	decider := matching.NewScriptedDecider(matching.AnswerSkipAll, matching.AnswerAccept)
	m := newMatcher(t, defaults, decider)
	idx := candidates.Build([]string{"/art/orc.png", "/art/goblin.png"}, candidates.RoleImage)

	first := mustMatch(t, m, "Orc Chieftain", idx)
	if first.Status != matching.StatusRejected || first.Reason != matching.ReasonSkipAll {
		t.Fatalf("unexpected first outcome: %+v", first)
	}
	if !m.AskDisabled() {
		t.Fatal("expected ask tier disabled")
	}

	second := mustMatch(t, m, "Goblin Archer", idx)
	if second.Status != matching.StatusRejected || second.Reason != matching.ReasonAskDisabled {
		t.Fatalf("unexpected second outcome: %+v", second)
	}

	// The auto tier still applies.
	if exact := mustMatch(t, m, "Goblin", idx); exact.Status != matching.StatusAutoAccepted {
		t.Fatalf("unexpected exact outcome: %+v", exact)
	}
	if len(decider.Prompts()) != 1 || m.Prompts() != 1 {
		t.Fatalf("expected exactly one prompt, decider saw %d, matcher counted %d", len(decider.Prompts()), m.Prompts())
	}
}

func TestEmptyNameIsSkipped(t *testing.T) {
	for _, th := range []matching.Thresholds{defaults, {Match: 0, Ask: 0}, {Match: 100, Ask: 100}} {
		m := newMatcher(t, th, nil)
		idx := candidates.Build([]string{"/art/goblin.png"}, candidates.RoleToken)
		for _, name := range []string{"", "   ", "\t"} {
			outcome := mustMatch(t, m, name, idx)
			if outcome.Status != matching.StatusSkipped || outcome.Role != candidates.RoleToken {
				t.Fatalf("thresholds %+v name %q: unexpected outcome %+v", th, name, outcome)
			}
		}
	}
}

func TestDeciderErrorAborts(t *testing.T) {
	quit := errors.New("quit")
	decider := matching.DeciderFunc(func(context.Context, matching.Prompt) (matching.Answer, error) {
		return matching.AnswerReject, quit
	})
	m := newMatcher(t, defaults, decider)
	idx := candidates.Build([]string{"/art/orc.png"}, candidates.RoleImage)

	if _, err := m.Match(context.Background(), monster("Orc Chieftain"), idx); !errors.Is(err, quit) {
		t.Fatalf("expected decider error, got %v", err)
	}
	if idx.Len() != 1 {
		t.Fatal("aborted decision must not consume the candidate")
	}
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := newMatcher(t, defaults, nil)
	_, err := m.Match(ctx, monster("Goblin"), candidates.Build([]string{"/art/goblin.png"}, candidates.RoleImage))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestNilDeciderRejects(t *testing.T) {
	m := newMatcher(t, defaults, nil)
	idx := candidates.Build([]string{"/art/orc.png"}, candidates.RoleImage)
	outcome := mustMatch(t, m, "Orc Chieftain", idx)
	if outcome.Status != matching.StatusRejected || outcome.Reason != matching.ReasonDeclined {
		t.Fatalf("unexpected outcome: %+v", outcome)
	}
}
