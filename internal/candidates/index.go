package candidates

import (
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"compendia/internal/logging"
	"compendia/internal/textutil"
)

// Role distinguishes full illustrations from tabletop tokens.
type Role string

const (
	RoleImage Role = "image"
	RoleToken Role = "token"
)

// DefaultExtensions are the image formats accepted when no WithExtensions
// option is given.
var DefaultExtensions = []string{".png", ".jpg", ".jpeg"}

// File is one candidate on disk.
type File struct {
	// Path is the cleaned absolute path of the file.
	Path string
	// Name is the raw base name, extension included.
	Name string
	// Normalized is the comparison key after noise words are stripped.
	Normalized string
	Role       Role
	// Order is the position of the file in the listing Build received.
	Order int
}

// Match is the best remaining candidate for a target name.
type Match struct {
	File  File
	Score int
}

// Index is the pool of unconsumed candidates for a single role. It is not
// safe for concurrent use.
type Index struct {
	role   Role
	files  []File
	scorer textutil.Scorer
}

type buildOptions struct {
	extensions map[string]struct{}
	stripWords []string
	scorer     textutil.Scorer
	logger     *slog.Logger
}

// Option customises Build.
type Option func(*buildOptions)

// WithExtensions overrides the accepted file extensions. Values are matched
// case-insensitively, with or without the leading dot.
func WithExtensions(exts ...string) Option {
	return func(o *buildOptions) {
		if len(exts) > 0 {
			o.extensions = extensionSet(exts)
		}
	}
}

// WithStripWords removes noise words such as "token" from file names before
// they are compared.
func WithStripWords(words ...string) Option {
	return func(o *buildOptions) {
		o.stripWords = append([]string(nil), words...)
	}
}

// WithScorer replaces textutil.Score.
func WithScorer(scorer textutil.Scorer) Option {
	return func(o *buildOptions) {
		if scorer != nil {
			o.scorer = scorer
		}
	}
}

// WithLogger records skipped files at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(o *buildOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Build indexes paths for role. Files with an unsupported extension,
// duplicate paths and names that normalize to nothing are skipped.
func Build(paths []string, role Role, opts ...Option) *Index {
	options := buildOptions{
		extensions: extensionSet(DefaultExtensions),
		scorer:     textutil.Score,
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	logger := options.logger.With(logging.String(logging.FieldRole, string(role)))

	idx := &Index{role: role, scorer: options.scorer}
	seen := make(map[string]struct{}, len(paths))
	for _, raw := range paths {
		path := cleanPath(raw)
		if path == "" {
			continue
		}
		if _, dup := seen[path]; dup {
			logger.Debug("duplicate candidate skipped", logging.String(logging.FieldCandidate, path))
			continue
		}
		seen[path] = struct{}{}

		name := filepath.Base(path)
		if _, ok := options.extensions[strings.ToLower(filepath.Ext(name))]; !ok {
			logger.Debug("unsupported candidate format skipped", logging.String(logging.FieldCandidate, name))
			continue
		}
		normalized := textutil.StripWords(textutil.Normalize(name), options.stripWords)
		if normalized == "" {
			logger.Debug("candidate name empty after normalization", logging.String(logging.FieldCandidate, name))
			continue
		}
		idx.files = append(idx.files, File{
			Path:       path,
			Name:       name,
			Normalized: normalized,
			Role:       role,
			Order:      len(idx.files),
		})
	}
	return idx
}

// BestMatch scores target against every remaining candidate and returns the
// highest. The earliest listed file wins a tie. An empty target or an empty
// pool reports no match.
func (idx *Index) BestMatch(target string) (Match, bool) {
	if idx == nil || len(idx.files) == 0 {
		return Match{}, false
	}
	target = textutil.Normalize(target)
	if target == "" {
		return Match{}, false
	}
	best := Match{Score: -1}
	for _, f := range idx.files {
		score := idx.scorer(target, f.Normalized)
		if score > best.Score {
			best = Match{File: f, Score: score}
		}
	}
	return best, true
}

// Consume removes file from the pool. Later BestMatch calls never return it.
// It reports whether the file was present.
func (idx *Index) Consume(file File) bool {
	if idx == nil {
		return false
	}
	i := slices.IndexFunc(idx.files, func(f File) bool { return f.Path == file.Path })
	if i < 0 {
		return false
	}
	idx.files = slices.Delete(idx.files, i, i+1)
	return true
}

// Len returns the number of unconsumed candidates.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.files)
}

func (idx *Index) Role() Role {
	if idx == nil {
		return ""
	}
	return idx.role
}

// Files returns a copy of the remaining candidates in listing order.
func (idx *Index) Files() []File {
	if idx == nil {
		return nil
	}
	return slices.Clone(idx.files)
}

func extensionSet(exts []string) map[string]struct{} {
	set := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set[ext] = struct{}{}
	}
	return set
}

func cleanPath(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if abs, err := filepath.Abs(raw); err == nil {
		return abs
	}
	return filepath.Clean(raw)
}
