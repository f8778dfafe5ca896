// Package enrich coordinates a full matching pass over a compendium.
//
// Runner.Process walks the monsters and items of a loaded document in order,
// asks the matcher for an image and a token for each, merges the bound files
// into the document and returns an ordered report. Run wraps Process with
// loading the compendium and discovering candidate files; saving the result
// is left to the caller so a dry run can inspect the report without writing.
package enrich
