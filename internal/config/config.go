package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Matching contains the similarity thresholds and candidate filters.
type Matching struct {
	// MatchPercent is the score at or above which a file is bound without
	// asking. Range 0-100; 100 means only exact normalized matches.
	MatchPercent int `toml:"match_percent"`
	// AskPercent is the lowest score that triggers a confirmation prompt.
	// When it is not below MatchPercent the prompt tier never fires.
	AskPercent int `toml:"ask_percent"`
	// KeepExisting leaves entries that already reference an image or token
	// untouched instead of overwriting the reference.
	KeepExisting bool `toml:"keep_existing"`
	// Extensions lists accepted image file extensions.
	Extensions []string `toml:"extensions"`
	// Prompt enables interactive confirmation for borderline scores.
	Prompt bool `toml:"prompt"`
}

// Role contains per-role candidate settings.
type Role struct {
	// StripWords are removed from file names before scoring, so
	// "goblin_token.png" is compared as "goblin".
	StripWords []string `toml:"strip_words"`
}

// Output contains configuration for the repackaged compendium.
type Output struct {
	Path      string `toml:"path"`
	Overwrite bool   `toml:"overwrite"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format     string `toml:"format"`
	Level      string `toml:"level"`
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
}

// Config encapsulates all configuration values for compendia.
//
// Configuration sections:
//   - Matching: thresholds, accepted extensions, overwrite policy
//   - Images / Tokens: per-role noise words
//   - Output: destination archive
//   - Logging: log format, level, and optional rotating log file
type Config struct {
	Matching Matching `toml:"matching"`
	Images   Role     `toml:"images"`
	Tokens   Role     `toml:"tokens"`
	Output   Output   `toml:"output"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(defaultProjectConfigRel)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

var (
	sampleMatchLine = regexp.MustCompile(`(?m)^match_percent = \d+`)
	sampleAskLine   = regexp.MustCompile(`(?m)^ask_percent = \d+`)
)

// RenderSample returns the sample configuration with the given thresholds.
func RenderSample(matchPercent, askPercent int) (string, error) {
	candidate := Default()
	candidate.Matching.MatchPercent = matchPercent
	candidate.Matching.AskPercent = askPercent
	if err := candidate.validateMatching(); err != nil {
		return "", err
	}
	out := sampleMatchLine.ReplaceAllString(sampleConfig, fmt.Sprintf("match_percent = %d", matchPercent))
	out = sampleAskLine.ReplaceAllString(out, fmt.Sprintf("ask_percent = %d", askPercent))
	return out, nil
}

// CreateSample writes a sample configuration file with the given thresholds
// to path, creating parent directories.
func CreateSample(path string, matchPercent, askPercent int) error {
	content, err := RenderSample(matchPercent, askPercent)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
