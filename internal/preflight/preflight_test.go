package preflight

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckReadable(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "bestiary.xml")
	if err := os.WriteFile(file, []byte("<compendium/>"), 0o644); err != nil {
		t.Fatal(err)
	}
	if r := CheckReadable("file", file); !r.Passed {
		t.Fatalf("expected readable file, got: %s", r.Detail)
	}
	if r := CheckReadable("dir", dir); !r.Passed {
		t.Fatalf("expected readable dir, got: %s", r.Detail)
	}
	if r := CheckReadable("missing", filepath.Join(dir, "missing")); r.Passed {
		t.Fatal("expected failure for missing path")
	}
}

func TestCheckOutputTarget(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "with_images.compendium")
	if r := CheckOutputTarget("out", out, false); !r.Passed {
		t.Fatalf("expected pass for new file, got: %s", r.Detail)
	}
	if err := os.WriteFile(out, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	r := CheckOutputTarget("out", out, false)
	if r.Passed || !strings.Contains(r.Detail, "already exists") {
		t.Fatalf("expected existing-file failure, got: %+v", r)
	}
	if r := CheckOutputTarget("out", out, true); !r.Passed {
		t.Fatalf("expected pass with overwrite, got: %s", r.Detail)
	}
	if r := CheckOutputTarget("out", dir, true); r.Passed {
		t.Fatal("expected failure for directory target")
	}
}

func TestRunAll(t *testing.T) {
	dir := t.TempDir()
	compendium := filepath.Join(dir, "bestiary.xml")
	if err := os.WriteFile(compendium, []byte("<compendium/>"), 0o644); err != nil {
		t.Fatal(err)
	}

	results := RunAll(Inputs{
		Compendium: compendium,
		ImagePaths: []string{dir},
		Output:     filepath.Join(dir, "out.compendium"),
	})
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	if failed, ok := FirstFailure(results); ok {
		t.Fatalf("unexpected failure: %+v", failed)
	}

	results = RunAll(Inputs{Compendium: compendium, TokenPaths: []string{filepath.Join(dir, "tokens")}})
	failed, ok := FirstFailure(results)
	if !ok || failed.Name != "Token path" {
		t.Fatalf("expected token path failure, got %+v (%v)", failed, ok)
	}
}
