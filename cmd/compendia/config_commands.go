package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"compendia/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigValidateCommand(ctx))
	configCmd.AddCommand(newConfigInitCommand())

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	defaults := config.Default()
	var (
		targetPath   string
		overwrite    bool
		matchPercent int
		askPercent   int
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a sample configuration with the chosen thresholds",
		Long: `Write a commented sample configuration. --match and --ask seed the
matching thresholds; everything else starts at its default. The written file
is loaded back and summarized so a bad value is caught immediately.`,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := resolveInitTarget(targetPath)
			if err != nil {
				return err
			}
			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if !errors.Is(err, fs.ErrNotExist) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			if err := config.CreateSample(target, matchPercent, askPercent); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}
			cfg, _, _, err := config.Load(target)
			if err != nil {
				return fmt.Errorf("reload sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			describeConfig(out, cfg)
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	cmd.Flags().IntVarP(&matchPercent, "match", "m", defaults.Matching.MatchPercent, "Initial match_percent (0-100)")
	cmd.Flags().IntVarP(&askPercent, "ask", "a", defaults.Matching.AskPercent, "Initial ask_percent (0-100)")
	return cmd
}

func resolveInitTarget(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		path, err := config.DefaultConfigPath()
		if err != nil {
			return "", fmt.Errorf("determine default config path: %w", err)
		}
		return path, nil
	}
	path, err := config.ExpandPath(raw)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return path, nil
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", ctx.configPath)
			if _, err := os.Stat(ctx.configPath); err != nil {
				fmt.Fprintln(out, "Config file did not exist; defaults were used")
			}
			describeConfig(out, cfg)
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}

// describeConfig prints the settings that decide how files are bound.
func describeConfig(out io.Writer, cfg *config.Config) {
	fmt.Fprintf(out, "Thresholds: match %d, ask %d\n", cfg.Matching.MatchPercent, cfg.Matching.AskPercent)
	if !cfg.AskTierReachable() {
		fmt.Fprintln(out, "Note: ask_percent is not below match_percent; borderline matches are rejected without asking")
	}
	fmt.Fprintf(out, "Image formats: %s\n", strings.Join(cfg.Matching.Extensions, ", "))
}
