package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidThreshold reports a similarity threshold outside 0-100.
var ErrInvalidThreshold = errors.New("threshold must be between 0 and 100")

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateMatching(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateMatching() error {
	if c.Matching.MatchPercent < 0 || c.Matching.MatchPercent > 100 {
		return fmt.Errorf("matching.match_percent %d: %w", c.Matching.MatchPercent, ErrInvalidThreshold)
	}
	if c.Matching.AskPercent < 0 || c.Matching.AskPercent > 100 {
		return fmt.Errorf("matching.ask_percent %d: %w", c.Matching.AskPercent, ErrInvalidThreshold)
	}
	if len(c.Matching.Extensions) == 0 {
		return errors.New("matching.extensions must include at least one extension")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch canonicalLevel(c.Logging.Level) {
	case "debug", "detail", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "console", "json", "":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}

// AskTierReachable reports whether the confirmation tier can ever fire.
// A run with AskPercent >= MatchPercent is valid; it only auto-accepts or
// rejects.
func (c *Config) AskTierReachable() bool {
	return c.Matching.AskPercent < c.Matching.MatchPercent
}
