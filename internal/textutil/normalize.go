package textutil

import (
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// fileExtensions lists extensions Normalize strips. Names like "Mr. Smith"
// keep their dot-suffix because it is not a file extension.
var fileExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".webp": {},
	".gif":  {},
	".bmp":  {},
	".tif":  {},
	".tiff": {},
	".svg":  {},
	".avif": {},
}

// Normalize canonicalizes an entry or file name for comparison.
//
// Known file extensions are stripped, diacritics folded, case folded,
// underscores and hyphens become spaces, every other non letter/digit
// character is dropped, and whitespace is collapsed. The result is
// deterministic; "Goblin_Boss.png" and "goblin boss" normalize equal.
func Normalize(raw string) string {
	name := strings.TrimSpace(raw)
	if name == "" {
		return ""
	}
	if ext := filepath.Ext(name); ext != "" {
		if _, ok := fileExtensions[strings.ToLower(ext)]; ok {
			name = strings.TrimSuffix(name, ext)
		}
	}

	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), name)
	if err == nil {
		name = folded
	}
	name = cases.Fold().String(name)

	var b strings.Builder
	b.Grow(len(name))
	pendingSpace := false
	for _, r := range name {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
		case r == '_' || r == '-' || unicode.IsSpace(r):
			pendingSpace = true
		}
	}
	return b.String()
}

// StripWords removes whole words from an already normalized name. It returns
// the name unchanged when every word would be removed, so "token.png" still
// matches an entry called "Token".
func StripWords(normalized string, words []string) string {
	if normalized == "" || len(words) == 0 {
		return normalized
	}
	drop := make(map[string]struct{}, len(words))
	for _, w := range words {
		if w = Normalize(w); w != "" {
			drop[w] = struct{}{}
		}
	}
	if len(drop) == 0 {
		return normalized
	}
	fields := strings.Fields(normalized)
	kept := fields[:0:0]
	for _, f := range fields {
		if _, ok := drop[f]; ok {
			continue
		}
		kept = append(kept, f)
	}
	if len(kept) == 0 {
		return normalized
	}
	return strings.Join(kept, " ")
}
