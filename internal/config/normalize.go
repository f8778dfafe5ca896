package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeMatching(); err != nil {
		return err
	}
	c.Images.StripWords = normalizeWords(c.Images.StripWords)
	c.Tokens.StripWords = normalizeWords(c.Tokens.StripWords)
	if err := c.normalizeOutput(); err != nil {
		return err
	}
	return c.normalizeLogging()
}

func (c *Config) normalizeMatching() error {
	if value, ok := os.LookupEnv("COMPENDIA_MATCH_PERCENT"); ok && strings.TrimSpace(value) != "" {
		parsed, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("COMPENDIA_MATCH_PERCENT: %w", err)
		}
		c.Matching.MatchPercent = parsed
	}
	if value, ok := os.LookupEnv("COMPENDIA_ASK_PERCENT"); ok && strings.TrimSpace(value) != "" {
		parsed, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("COMPENDIA_ASK_PERCENT: %w", err)
		}
		c.Matching.AskPercent = parsed
	}

	exts := make([]string, 0, len(c.Matching.Extensions))
	seen := make(map[string]struct{}, len(c.Matching.Extensions))
	for _, ext := range c.Matching.Extensions {
		normalized := canonicalExtension(ext)
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		exts = append(exts, normalized)
	}
	if len(exts) == 0 {
		exts = append(exts, defaultExtensions...)
	}
	c.Matching.Extensions = exts
	return nil
}

func (c *Config) normalizeOutput() error {
	var err error
	if strings.TrimSpace(c.Output.Path) == "" {
		c.Output.Path = defaultOutputPath
	}
	if c.Output.Path, err = expandPath(strings.TrimSpace(c.Output.Path)); err != nil {
		return fmt.Errorf("output.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	c.Logging.Level = canonicalLevel(c.Logging.Level)
	if strings.TrimSpace(c.Logging.File) != "" {
		var err error
		if c.Logging.File, err = expandPath(strings.TrimSpace(c.Logging.File)); err != nil {
			return fmt.Errorf("logging.file: %w", err)
		}
	}
	if c.Logging.MaxSizeMB <= 0 {
		c.Logging.MaxSizeMB = defaultLogMaxSizeMB
	}
	if c.Logging.MaxBackups < 0 {
		c.Logging.MaxBackups = 0
	}
	return nil
}

// canonicalLevel folds level aliases onto the names Validate accepts.
func canonicalLevel(level string) string {
	switch level = strings.ToLower(strings.TrimSpace(level)); level {
	case "":
		return defaultLogLevel
	case "detailed":
		return "detail"
	case "warning":
		return "warn"
	}
	return level
}

func canonicalExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" || ext == "." {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

func normalizeWords(words []string) []string {
	out := make([]string, 0, len(words))
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}
