package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"compendia/internal/compendium"
	"compendia/internal/config"
	"compendia/internal/enrich"
	"compendia/internal/logging"
	"compendia/internal/matching"
	"compendia/internal/preflight"
)

type runOptions struct {
	imagePaths   []string
	tokenPaths   []string
	output       string
	matchPercent int
	askPercent   int
	noPrompt     bool
	jsonOutput   bool
	keepExisting bool
	overwrite    bool
}

func newRunCommand(ctx *commandContext) *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run COMPENDIUM_PATH",
		Short: "Match images and tokens to a compendium and write a new archive",
		Long: `Match image and token files to the monsters and items of a compendium
(.xml, .compendium or .zip) and write a new .compendium archive with the
matched files embedded.

Scores at or above --match bind automatically. Scores between --ask and
--match prompt for confirmation: y accepts, n rejects, s rejects and stops
asking for the rest of the run, q aborts without writing anything.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeRun(cmd, ctx, args[0], opts, true)
		},
	}
	bindRunFlags(cmd, opts)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output compendium path (default from config: with_images.compendium)")
	cmd.Flags().BoolVar(&opts.overwrite, "overwrite", false, "Replace the output file if it already exists")
	return cmd
}

func newMatchCommand(ctx *commandContext) *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "match COMPENDIUM_PATH",
		Short: "Show what a run would bind without writing an archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeRun(cmd, ctx, args[0], opts, false)
		},
	}
	bindRunFlags(cmd, opts)
	return cmd
}

func bindRunFlags(cmd *cobra.Command, opts *runOptions) {
	flags := cmd.Flags()
	flags.StringArrayVarP(&opts.imagePaths, "image-path", "i", nil, "Directory or file of images (repeatable)")
	flags.StringArrayVarP(&opts.tokenPaths, "token-path", "t", nil, "Directory or file of tokens (repeatable)")
	flags.IntVarP(&opts.matchPercent, "match", "m", 0, "Score (0-100) at or above which a file binds automatically")
	flags.IntVarP(&opts.askPercent, "ask", "a", 0, "Lowest score (0-100) that asks for confirmation")
	flags.BoolVar(&opts.noPrompt, "no-prompt", false, "Never ask; reject borderline matches")
	flags.BoolVar(&opts.jsonOutput, "json", false, "Print the report as JSON")
	flags.BoolVar(&opts.keepExisting, "keep-existing", false, "Leave entries that already reference a file untouched")
}

// applyFlags overlays explicitly set flags on top of the loaded config.
func applyFlags(cmd *cobra.Command, cfg config.Config, opts *runOptions) (config.Config, error) {
	flags := cmd.Flags()
	if flags.Changed("match") {
		cfg.Matching.MatchPercent = opts.matchPercent
	}
	if flags.Changed("ask") {
		cfg.Matching.AskPercent = opts.askPercent
	}
	if flags.Changed("keep-existing") {
		cfg.Matching.KeepExisting = opts.keepExisting
	}
	if opts.noPrompt {
		cfg.Matching.Prompt = false
	}
	if flags.Lookup("output") != nil && flags.Changed("output") {
		expanded, err := config.ExpandPath(strings.TrimSpace(opts.output))
		if err != nil {
			return cfg, fmt.Errorf("resolve output path: %w", err)
		}
		cfg.Output.Path = expanded
	}
	if flags.Lookup("overwrite") != nil && flags.Changed("overwrite") {
		cfg.Output.Overwrite = opts.overwrite
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func executeRun(cmd *cobra.Command, ctx *commandContext, compendiumPath string, opts *runOptions, save bool) error {
	if len(opts.imagePaths)+len(opts.tokenPaths) == 0 {
		return errors.New("an image or token path must be provided (-i or -t)")
	}
	loaded, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	cfg, err := applyFlags(cmd, *loaded, opts)
	if err != nil {
		return err
	}

	logger, err := ctx.newLogger(&cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	logger = logging.NewComponentLogger(logger, "cli")

	inputs := preflight.Inputs{
		Compendium: compendiumPath,
		ImagePaths: opts.imagePaths,
		TokenPaths: opts.tokenPaths,
	}
	if save {
		inputs.Output = cfg.Output.Path
		inputs.Overwrite = cfg.Output.Overwrite
	}
	if failed, ok := preflight.FirstFailure(preflight.RunAll(inputs)); ok {
		return fmt.Errorf("%s: %s", strings.ToLower(failed.Name), failed.Detail)
	}

	decider := selectDecider(cmd, cfg)
	if !cfg.AskTierReachable() {
		logger.Debug("ask tier unreachable with current thresholds",
			logging.Int("match_percent", cfg.Matching.MatchPercent),
			logging.Int("ask_percent", cfg.Matching.AskPercent),
		)
	}

	runner, err := enrich.NewRunner(enrich.Options{
		Thresholds: matching.Thresholds{
			Match: cfg.Matching.MatchPercent,
			Ask:   cfg.Matching.AskPercent,
		},
		KeepExisting: cfg.Matching.KeepExisting,
		Decider:      decider,
		Logger:       logger,
	})
	if err != nil {
		return err
	}

	runCtx := cmd.Context()
	result, err := runner.Run(runCtx, enrich.Request{
		CompendiumPath:  compendiumPath,
		ImagePaths:      opts.imagePaths,
		TokenPaths:      opts.tokenPaths,
		Extensions:      cfg.Matching.Extensions,
		ImageStripWords: cfg.Images.StripWords,
		TokenStripWords: cfg.Tokens.StripWords,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrAborted):
			logging.WarnWithContext(logger, "run aborted", "run_aborted",
				logging.String(logging.FieldImpact, "no output written"),
				logging.String(logging.FieldErrorHint, "rerun and answer y, n or s"),
			)
			return ErrAborted
		case errors.Is(err, context.Canceled):
			logging.WarnWithContext(logger, "run interrupted", "run_interrupted",
				logging.String(logging.FieldImpact, "no output written"),
			)
		}
		return err
	}

	if save {
		if err := result.Document.Save(runCtx, cfg.Output.Path, compendium.SaveOptions{Overwrite: cfg.Output.Overwrite}); err != nil {
			return fmt.Errorf("save compendium: %w", err)
		}
		logger.Info("compendium written",
			logging.String("output", cfg.Output.Path),
			logging.Int("assets", len(result.Document.Assets())),
		)
	}

	if opts.jsonOutput {
		return writeReportJSON(cmd.OutOrStdout(), result.Report)
	}
	writeReport(cmd.OutOrStdout(), result.Report, shouldColorize(cmd.OutOrStdout()))
	if save {
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", cfg.Output.Path)
	}
	return nil
}

// selectDecider prompts on the terminal only when prompting is enabled and
// input is interactive.
func selectDecider(cmd *cobra.Command, cfg config.Config) matching.Decider {
	if !cfg.Matching.Prompt {
		return matching.RejectAll
	}
	in := cmd.InOrStdin()
	if !isInteractive(in) {
		return matching.RejectAll
	}
	return newConsoleDecider(in, promptWriter(cmd))
}

// promptWriter is where questions are printed. Prompts go to stderr so a
// JSON report on stdout stays parseable.
func promptWriter(cmd *cobra.Command) io.Writer {
	return cmd.ErrOrStderr()
}
