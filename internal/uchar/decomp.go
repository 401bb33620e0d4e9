package uchar

import (
	"golang.org/x/text/unicode/norm"
)

// DecompEntry is one row of the UnicodeDataDecomp.txt resource: a
// character's compatibility decomposition string and its
// formatting tag, e.g. U+00BD -> "1⁄2", tag "" (fraction, no tag) or
// U+2075 -> "5", tag "<super>".
type DecompEntry struct {
	Decomposition string
	Tag           string
}

// excludedTags are format tags that block the decomposition-fallback pass:
// characters tagged <super>, <sub>, <noBreak>, or <compat> keep their own
// edge instead of being recursively romanized.
var excludedTags = map[string]bool{
	"<super>":   true,
	"<sub>":     true,
	"<noBreak>": true,
	"<compat>":  true,
}

// DecompTable holds per-character compatibility decompositions with their
// format tags, as loaded from UnicodeDataDecomp.txt. golang.org/x/text's
// norm package performs NFKD decomposition internally but does not expose
// the formatting tag through its public API, so an explicit table is needed
// to implement the tag exclusion rule; for characters absent from
// the table, NFKD is used as a tag-less (i.e. eligible) fallback.
type DecompTable struct {
	entries map[rune]DecompEntry
}

func NewDecompTable() *DecompTable {
	return &DecompTable{entries: make(map[rune]DecompEntry)}
}

func (t *DecompTable) Set(r rune, decomp, tag string) {
	t.entries[r] = DecompEntry{Decomposition: decomp, Tag: tag}
}

// Decompose returns the compatibility decomposition of r and whether it is
// eligible for the decomposition-fallback pass (tag absent or not in the
// excluded set).
func (t *DecompTable) Decompose(r rune) (decomposition string, eligible bool, ok bool) {
	if t != nil {
		if e, found := t.entries[r]; found {
			return e.Decomposition, !excludedTags[e.Tag], true
		}
	}
	if !norm.NFKD.IsNormalString(string(r)) {
		return string(norm.NFKD.Bytes([]byte(string(r)))), true, true
	}
	return "", false, false
}

// StripAccents removes combining marks from s via canonical (NFD)
// decomposition, collapsing e.g. "é" to "e". Used to de-accent pinyin
// romanizations loaded from Chinese_to_Pinyin.txt; "ü" maps to "u".
func StripAccents(s string) string {
	decomposed := norm.NFD.String(s)
	out := make([]rune, 0, len(decomposed))
	for _, r := range decomposed {
		if r == 'ü' || r == 'Ü' {
			if r == 'Ü' {
				out = append(out, 'U')
			} else {
				out = append(out, 'u')
			}
			continue
		}
		if isMark(r) {
			continue
		}
		out = append(out, r)
	}
	return string(out)
}

func isMark(r rune) bool {
	return IsNonspacingMark(r) || GeneralCategory(r) == CategorySpacingMark || GeneralCategory(r) == CategoryEnclosingMark
}
