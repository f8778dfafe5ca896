package textutil

import (
	"path"
	"strconv"
	"strings"
	"unicode"
)

// memberReplacer maps characters that would break an archive member name or
// an XML reference to safe alternatives.
var memberReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// AssetName derives the base name a candidate file is stored under inside a
// compendium archive. The stem keeps its case with unsafe characters replaced
// and control characters dropped; the extension is lowercased. A copy number
// above 1 is appended to the stem as "_N", so "Goblin.PNG" with copy 2
// becomes "Goblin_2.png". An empty result means the name has no usable stem.
func AssetName(name string, copyNumber int) string {
	name = strings.TrimSpace(name)
	ext := path.Ext(name)
	stem := cleanMember(strings.TrimSuffix(name, ext))
	if stem == "" {
		return ""
	}
	ext = strings.ToLower(cleanMember(ext))
	if ext == "." {
		ext = ""
	}
	if copyNumber > 1 {
		stem += "_" + strconv.Itoa(copyNumber)
	}
	return stem + ext
}

func cleanMember(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(memberReplacer.Replace(s))
}
