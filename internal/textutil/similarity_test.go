package textutil

import (
	"math"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"file name with extension", "Goblin_Boss.png", "goblin boss"},
		{"display name", "goblin boss", "goblin boss"},
		{"hyphens and case", "Young-Red-DRAGON.JPEG", "young red dragon"},
		{"collapses whitespace", "  Orc   \t Chieftain ", "orc chieftain"},
		{"drops punctuation", "Tiamat's Herald (Greater)", "tiamats herald greater"},
		{"folds diacritics", "Naïve Drow Élite", "naive drow elite"},
		{"keeps non-extension dot suffix", "Mr. Smith", "mr smith"},
		{"digits survive", "Goblin_02.jpg", "goblin 02"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"punctuation only", "?!.png", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeFileAndEntryAgree(t *testing.T) {
	if Normalize("Goblin_Boss.png") != Normalize("goblin boss") {
		t.Fatalf("expected file and entry names to normalize equal")
	}
}

func TestStripWords(t *testing.T) {
	tests := []struct {
		name  string
		input string
		words []string
		want  string
	}{
		{"removes noise word", "goblin token", []string{"token"}, "goblin"},
		{"removes leading noise word", "token goblin boss", []string{"Token"}, "goblin boss"},
		{"keeps whole name", "token", []string{"token"}, "token"},
		{"no words", "goblin token", nil, "goblin token"},
		{"partial word untouched", "tokenizer", []string{"token"}, "tokenizer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripWords(tt.input, tt.words); got != tt.want {
				t.Errorf("StripWords(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestScoreEmpty(t *testing.T) {
	tests := []struct {
		a, b string
	}{
		{"", ""},
		{"", "goblin"},
		{"goblin", ""},
	}
	for _, tt := range tests {
		if got := Score(tt.a, tt.b); got != 0 {
			t.Errorf("Score(%q, %q) = %d, want 0", tt.a, tt.b, got)
		}
	}
}

func TestScoreIdentical(t *testing.T) {
	for _, name := range []string{"a", "goblin", "goblin boss", "ancient red dragon"} {
		if got := Score(name, name); got != 100 {
			t.Errorf("Score(%q, %q) = %d, want 100", name, name, got)
		}
	}
}

func TestScoreSymmetric(t *testing.T) {
	names := []string{
		"goblin", "goblin boss", "boss goblin", "orc", "orc chieftain",
		"sorcerer", "young red dragon", "red dragon wyrmling", "hobgoblin", "a b",
	}
	for _, a := range names {
		for _, b := range names {
			ab := Score(a, b)
			ba := Score(b, a)
			if ab != ba {
				t.Errorf("Score not symmetric for (%q, %q): %d vs %d", a, b, ab, ba)
			}
			if ab < 0 || ab > 100 {
				t.Errorf("Score(%q, %q) = %d out of range", a, b, ab)
			}
		}
	}
}

func TestScoreStrategies(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"containment of trailing word", "boss", "goblin boss", 68},
		{"containment of leading word", "orc", "orc chieftain", 62},
		{"reordered words", "boss goblin", "goblin boss", 100},
		{"plain ratio", "goblin", "goblins", 92},
		{"unrelated", "ab", "cd", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.a, tt.b); got != tt.want {
				t.Errorf("Score(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestScoreSubstringWithoutWordBoundaryGetsNoBonus(t *testing.T) {
	// Only the plain ratio applies; a containment bonus would give 69.
	if got := Score("orc", "sorcerer"); got != 55 {
		t.Fatalf("Score(orc, sorcerer) = %d, want 55", got)
	}
}

func TestScorerType(t *testing.T) {
	var scorer Scorer = Score
	if scorer("goblin", "goblin") != 100 {
		t.Fatal("expected Score to satisfy Scorer")
	}
}

func TestRatioIsIndelSimilarity(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"kitten", "sitting", 100 * 8.0 / 13.0},
		{"goblin", "goblins", 100 * 12.0 / 13.0},
		{"été", "ete", 100 * 2.0 / 6.0},
		{"ab", "cd", 0},
		{"", "", 100},
	}
	for _, tt := range tests {
		got := ratio(tt.a, tt.b)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("ratio(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
		if back := ratio(tt.b, tt.a); math.Abs(back-got) > 1e-9 {
			t.Errorf("ratio not symmetric for (%q, %q): %v vs %v", tt.a, tt.b, got, back)
		}
	}
}
