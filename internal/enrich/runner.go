package enrich

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"compendia/internal/candidates"
	"compendia/internal/compendium"
	"compendia/internal/logging"
	"compendia/internal/matching"
)

// ErrNoCandidates reports a run with no usable image or token files.
var ErrNoCandidates = errors.New("no images or tokens found")

// Options configure a Runner.
type Options struct {
	Thresholds matching.Thresholds
	// KeepExisting skips a role on entries that already reference a file
	// instead of replacing the reference.
	KeepExisting bool
	Decider      matching.Decider
	Logger       *slog.Logger
}

// Runner drives one matching pass. It holds matcher state, so each run needs
// its own Runner.
type Runner struct {
	matcher      *matching.Matcher
	keepExisting bool
	logger       *slog.Logger
}

// NewRunner validates thresholds and builds the matcher.
func NewRunner(opts Options) (*Runner, error) {
	logger := logging.NewComponentLogger(opts.Logger, "enrich")
	matcher, err := matching.NewMatcher(opts.Thresholds, opts.Decider, opts.Logger)
	if err != nil {
		return nil, err
	}
	return &Runner{matcher: matcher, keepExisting: opts.KeepExisting, logger: logger}, nil
}

type rolePool struct {
	role  candidates.Role
	index *candidates.Index
}

// Process matches every entry of doc in document order against the supplied
// pools and merges bound files into doc. A nil or empty pool skips its role
// for the whole run. On error the document keeps the merges made so far and
// the partial report is returned with the error.
func (r *Runner) Process(ctx context.Context, doc *compendium.Document, images, tokens *candidates.Index) (*Report, error) {
	runID, ok := logging.RunIDFromContext(ctx)
	if !ok {
		runID = uuid.NewString()
		ctx = logging.WithRunID(ctx, runID)
	}
	logger := logging.WithContext(ctx, r.logger)

	var pools []rolePool
	if images.Len() > 0 {
		pools = append(pools, rolePool{role: candidates.RoleImage, index: images})
	}
	if tokens.Len() > 0 {
		pools = append(pools, rolePool{role: candidates.RoleToken, index: tokens})
	}

	entries := doc.Entries()
	report := &Report{RunID: runID, Source: doc.Source(), Entries: len(entries)}
	logger.Info("matching started",
		logging.Int("entries", len(entries)),
		logging.Int("images", images.Len()),
		logging.Int("tokens", tokens.Len()),
	)

	merger := compendium.NewMerger(doc)
	for _, entry := range entries {
		for _, pool := range pools {
			outcome, err := r.matchEntry(ctx, entry, pool)
			if err != nil {
				report.AskDisabled = r.matcher.AskDisabled()
				return report, err
			}
			if outcome.Bound() {
				ref, err := merger.Apply(entry, pool.role, outcome.File)
				if err != nil {
					return report, fmt.Errorf("merge %s into %q: %w", pool.role, entry.Name, err)
				}
				outcome.Reference = ref
			}
			report.add(outcome)
		}
	}
	report.AskDisabled = r.matcher.AskDisabled()

	logger.Info("matching finished",
		logging.Int("bound", report.Summary.Bound()),
		logging.Int("rejected", report.Summary.Rejected),
		logging.Int("skipped", report.Summary.Skipped),
	)
	return report, nil
}

func (r *Runner) matchEntry(ctx context.Context, entry *compendium.Entry, pool rolePool) (matching.Outcome, error) {
	skipped := matching.Outcome{
		Entry:  entry.Name,
		Kind:   string(entry.Kind),
		Role:   pool.role,
		Status: matching.StatusSkipped,
	}
	if !entry.Kind.Supports(pool.role) {
		skipped.Reason = matching.ReasonUnsupported
		return skipped, nil
	}
	if r.keepExisting {
		if ref, ok := entry.Reference(pool.role); ok {
			r.logger.Debug("entry already has a reference",
				logging.String(logging.FieldEntry, entry.Name),
				logging.String(logging.FieldRole, string(pool.role)),
				logging.String("reference", ref),
			)
			skipped.Reason = matching.ReasonExisting
			return skipped, nil
		}
	}
	return r.matcher.Match(ctx, matching.Subject{Name: entry.Name, Kind: string(entry.Kind)}, pool.index)
}

// Request describes a run from paths on disk.
type Request struct {
	CompendiumPath string
	ImagePaths     []string
	TokenPaths     []string
	// Extensions overrides candidates.DefaultExtensions when set.
	Extensions      []string
	ImageStripWords []string
	TokenStripWords []string
}

// Result is the edited document and its report.
type Result struct {
	Document *compendium.Document
	Report   *Report
}

// Run loads the compendium, discovers and indexes candidates and processes
// the document. The document is not saved. When the run fails part way the
// Result still carries the partial report.
func (r *Runner) Run(ctx context.Context, req Request) (*Result, error) {
	doc, err := compendium.Load(req.CompendiumPath)
	if err != nil {
		return nil, fmt.Errorf("load compendium: %w", err)
	}
	logging.WithContext(ctx, r.logger).Debug("compendium loaded",
		logging.String("source", doc.Source()),
		logging.Bool("archived", doc.Archived()),
		logging.Int("entries", len(doc.Entries())),
		logging.Int("members", len(doc.Members())),
	)

	images, err := r.buildIndex(req.ImagePaths, candidates.RoleImage, req.Extensions, req.ImageStripWords)
	if err != nil {
		return nil, err
	}
	tokens, err := r.buildIndex(req.TokenPaths, candidates.RoleToken, req.Extensions, req.TokenStripWords)
	if err != nil {
		return nil, err
	}
	if images.Len()+tokens.Len() == 0 {
		return nil, ErrNoCandidates
	}

	report, err := r.Process(ctx, doc, images, tokens)
	return &Result{Document: doc, Report: report}, err
}

func (r *Runner) buildIndex(roots []string, role candidates.Role, exts, stripWords []string) (*candidates.Index, error) {
	if len(roots) == 0 {
		return nil, nil
	}
	paths, err := candidates.Discover(roots)
	if err != nil {
		return nil, fmt.Errorf("discover %s files: %w", role, err)
	}
	opts := []candidates.Option{
		candidates.WithStripWords(stripWords...),
		candidates.WithLogger(r.logger),
	}
	if len(exts) > 0 {
		opts = append(opts, candidates.WithExtensions(exts...))
	}
	idx := candidates.Build(paths, role, opts...)
	r.logger.Debug("candidates indexed",
		logging.String(logging.FieldRole, string(role)),
		logging.Int("found", len(paths)),
		logging.Int("usable", idx.Len()),
	)
	return idx, nil
}
