package preflight

import (
	"path/filepath"
	"strings"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Inputs are the paths a run reads and writes.
type Inputs struct {
	Compendium string
	ImagePaths []string
	TokenPaths []string
	// Output is empty for dry runs.
	Output    string
	Overwrite bool
}

// RunAll executes every check that applies to in.
func RunAll(in Inputs) []Result {
	results := []Result{CheckReadable("Compendium", in.Compendium)}

	for _, p := range in.ImagePaths {
		results = append(results, CheckReadable("Image path", p))
	}
	for _, p := range in.TokenPaths {
		results = append(results, CheckReadable("Token path", p))
	}

	if out := strings.TrimSpace(in.Output); out != "" {
		results = append(results, CheckDirectoryAccess("Output directory", filepath.Dir(out)))
		results = append(results, CheckOutputTarget("Output file", out, in.Overwrite))
	}
	return results
}

// FirstFailure returns the first failed result, if any.
func FirstFailure(results []Result) (Result, bool) {
	for _, r := range results {
		if !r.Passed {
			return r, true
		}
	}
	return Result{}, false
}
