// Package preflight checks the filesystem paths a run depends on before any
// matching starts, so a missing compendium or an unwritable output directory
// is reported before the user answers a single prompt.
//
// RunAll evaluates every check for a run; the individual check functions are
// exported for callers that only need one of them.
package preflight
