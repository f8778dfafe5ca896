package textutil

import (
	"math"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/hbollon/go-edlib"
)

// Scorer rates how alike two normalized names are on a 0-100 scale. Any
// implementation must be deterministic and symmetric.
type Scorer func(a, b string) int

// Score computes the similarity of two normalized names in [0,100].
//
// The result is the best of a full-string ratio, a token-sort ratio, a
// token-set ratio and a word-aligned containment bonus. Score is symmetric,
// Score(a, a) is 100 for any non-empty a, and an empty side always scores 0.
func Score(a, b string) int {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 100
	}

	best := ratio(a, b)

	tokensA := strings.Fields(a)
	tokensB := strings.Fields(b)
	best = math.Max(best, tokenSortRatio(tokensA, tokensB))
	best = math.Max(best, tokenSetRatio(tokensA, tokensB))
	best = math.Max(best, containmentScore(tokensA, tokensB))

	score := int(math.Round(best))
	switch {
	case score < 0:
		return 0
	case score > 100:
		return 100
	}
	return score
}

// ratio is the indel similarity of a and b: edits count one per inserted or
// deleted rune, so a substitution costs two and two equal-length strings
// sharing no rune score 0.
func ratio(a, b string) float64 {
	total := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	if total == 0 {
		return 100
	}
	dist := total - 2*edlib.LCS(a, b)
	return 100 * float64(total-dist) / float64(total)
}

func tokenSortRatio(a, b []string) float64 {
	return ratio(joinSorted(a), joinSorted(b))
}

// tokenSetRatio compares the shared words plus each side's leftovers. Unlike
// some token-set variants it never compares the bare intersection, so a name
// that is a strict subset of another does not score 100 here.
func tokenSetRatio(a, b []string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)

	var shared, onlyA, onlyB []string
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			shared = append(shared, tok)
		} else {
			onlyA = append(onlyA, tok)
		}
	}
	for tok := range setB {
		if _, ok := setA[tok]; !ok {
			onlyB = append(onlyB, tok)
		}
	}

	sect := joinSorted(shared)
	left := strings.TrimSpace(sect + " " + joinSorted(onlyA))
	right := strings.TrimSpace(sect + " " + joinSorted(onlyB))
	if left == "" || right == "" {
		return 0
	}
	return ratio(left, right)
}

// containmentScore rewards a shorter name whose words appear, in order and
// contiguously, inside the longer name: "boss" in "goblin boss". The bonus
// scales with how much of the longer name the shorter one covers.
func containmentScore(a, b []string) float64 {
	short, long := a, b
	shortLen, longLen := joinedLen(a), joinedLen(b)
	if shortLen > longLen || (shortLen == longLen && len(a) > len(b)) {
		short, long = b, a
		shortLen, longLen = longLen, shortLen
	}
	if len(short) == 0 || longLen == 0 || len(short) > len(long) {
		return 0
	}
	for start := 0; start+len(short) <= len(long); start++ {
		if slices.Equal(long[start:start+len(short)], short) {
			return 50 + 50*float64(shortLen)/float64(longLen)
		}
	}
	return 0
}

func tokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		set[tok] = struct{}{}
	}
	return set
}

func joinSorted(tokens []string) string {
	sorted := slices.Clone(tokens)
	slices.Sort(sorted)
	return strings.Join(sorted, " ")
}

func joinedLen(tokens []string) int {
	if len(tokens) == 0 {
		return 0
	}
	n := len(tokens) - 1
	for _, tok := range tokens {
		n += utf8.RuneCountInString(tok)
	}
	return n
}
