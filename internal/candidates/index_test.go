package candidates_test

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"compendia/internal/candidates"
)

func TestBuildNormalizesAndFilters(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		filepath.Join(dir, "Goblin_Boss.png"),
		filepath.Join(dir, "notes.txt"),
		filepath.Join(dir, "orc-token.JPG"),
		filepath.Join(dir, "Goblin_Boss.png"),
		filepath.Join(dir, "___.png"),
		"",
	}

	idx := candidates.Build(paths, candidates.RoleToken, candidates.WithStripWords("token"))

	if idx.Role() != candidates.RoleToken {
		t.Fatalf("expected token role, got %q", idx.Role())
	}
	if idx.Len() != 2 {
		t.Fatalf("expected 2 usable files, got %d", idx.Len())
	}
	files := idx.Files()
	if files[0].Name != "Goblin_Boss.png" || files[0].Normalized != "goblin boss" || files[0].Order != 0 {
		t.Fatalf("unexpected first file: %+v", files[0])
	}
	if files[1].Normalized != "orc" || files[1].Order != 1 || files[1].Role != candidates.RoleToken {
		t.Fatalf("unexpected second file: %+v", files[1])
	}
}

func TestBuildWithExtensions(t *testing.T) {
	idx := candidates.Build([]string{"/art/a.webp", "/art/b.png"}, candidates.RoleImage, candidates.WithExtensions("WEBP"))
	if idx.Len() != 1 || idx.Files()[0].Name != "a.webp" {
		t.Fatalf("expected only a.webp, got %+v", idx.Files())
	}
}

func TestBestMatchPicksHighestScore(t *testing.T) {
	idx := candidates.Build([]string{"/art/goblin.png", "/art/goblin_boss.png"}, candidates.RoleImage)

	match, ok := idx.BestMatch("Goblin Boss")
	if !ok {
		t.Fatal("expected a match")
	}
	if match.File.Name != "goblin_boss.png" || match.Score != 100 {
		t.Fatalf("unexpected match %s (%d)", match.File.Name, match.Score)
	}
}

func TestBestMatchTieGoesToFirstListed(t *testing.T) {
	fixed := func(string, string) int { return 70 }
	idx := candidates.Build([]string{"/b/zeta.png", "/a/alpha.png"}, candidates.RoleImage, candidates.WithScorer(fixed))

	match, ok := idx.BestMatch("anything")
	if !ok {
		t.Fatal("expected a match")
	}
	if match.File.Name != "zeta.png" || match.Score != 70 {
		t.Fatalf("expected first listed file to win the tie, got %s (%d)", match.File.Name, match.Score)
	}
}

func TestBestMatchEmptyTargetOrPool(t *testing.T) {
	idx := candidates.Build([]string{"/art/goblin.png"}, candidates.RoleImage)
	if _, ok := idx.BestMatch("   "); ok {
		t.Fatal("blank target must not match")
	}

	empty := candidates.Build(nil, candidates.RoleImage)
	if _, ok := empty.BestMatch("goblin"); ok {
		t.Fatal("empty pool must not match")
	}

	var missing *candidates.Index
	if _, ok := missing.BestMatch("goblin"); ok {
		t.Fatal("nil index must not match")
	}
	if missing.Len() != 0 {
		t.Fatalf("nil index length = %d", missing.Len())
	}
}

func TestConsumeRemovesCandidate(t *testing.T) {
	idx := candidates.Build([]string{"/art/goblin.png", "/art/goblins.png"}, candidates.RoleImage)

	first, ok := idx.BestMatch("goblin")
	if !ok || first.File.Name != "goblin.png" {
		t.Fatalf("expected goblin.png first, got %+v", first)
	}
	if !idx.Consume(first.File) {
		t.Fatal("first consume should remove the file")
	}
	if idx.Consume(first.File) {
		t.Fatal("second consume should report nothing removed")
	}

	second, ok := idx.BestMatch("goblin")
	if !ok || second.File.Name != "goblins.png" || second.Score != 92 {
		t.Fatalf("expected goblins.png at 92, got %+v", second)
	}

	idx.Consume(second.File)
	if _, ok := idx.BestMatch("goblin"); ok {
		t.Fatal("expected exhausted pool")
	}
}

func TestFilesReturnsCopy(t *testing.T) {
	idx := candidates.Build([]string{"/art/goblin.png"}, candidates.RoleImage)
	files := idx.Files()
	files[0].Normalized = "mutated"
	if got := idx.Files()[0].Normalized; got != "goblin" {
		t.Fatalf("index changed through returned slice: %q", got)
	}
}

func TestDiscoverWalksDirectories(t *testing.T) {
	root := t.TempDir()
	mustWrite(t, filepath.Join(root, "b.png"))
	mustWrite(t, filepath.Join(root, "a.png"))
	mustWrite(t, filepath.Join(root, "nested", "c.jpg"))
	mustWrite(t, filepath.Join(root, ".hidden.png"))
	mustWrite(t, filepath.Join(root, ".cache", "d.png"))
	single := filepath.Join(t.TempDir(), "single.png")
	mustWrite(t, single)

	files, err := candidates.Discover([]string{root, single})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	want := []string{
		filepath.Join(root, "a.png"),
		filepath.Join(root, "b.png"),
		filepath.Join(root, "nested", "c.jpg"),
		single,
	}
	if !slices.Equal(files, want) {
		t.Fatalf("Discover = %v, want %v", files, want)
	}
}

func TestDiscoverMissingRoot(t *testing.T) {
	_, err := candidates.Discover([]string{filepath.Join(t.TempDir(), "missing")})
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist, got %v", err)
	}
}

func mustWrite(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("img"), 0o644); err != nil {
		t.Fatal(err)
	}
}
