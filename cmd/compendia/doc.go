// Package main hosts the compendia CLI entrypoint and command graph.
//
// The Cobra command tree loads configuration, sets up logging, checks the
// input and output paths, and hands the run to internal/enrich. Interactive
// confirmation of borderline matches lives here as a matching.Decider that
// reads answers from the terminal; everything else is delegated to the
// internal packages so the commands stay declarative.
package main
