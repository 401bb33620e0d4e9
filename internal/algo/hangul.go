// Package algo implements the script-specific algorithmic romanization
// passes that a pure rule table cannot express: Hangul syllable
// decomposition, abugida default-vowel insertion, Tibetan vowel placement,
// Thai reordering, Japanese sokuon/lengthener handling, Coptic accent
// reshaping, Braille capitalization/numbers, and the Unicode decomposition
// fallback.
package algo

// Hangul syllable decomposition, following the standard formula: a
// precomposed syllable at U+AC00..U+D7A3 is Lead*588 + Vowel*28 + Tail + 0xAC00.
const (
	hangulBase = 0xAC00
	hangulLast = 0xD7A3
	nLeads     = 19
	nVowels    = 21
	nTails     = 28
)

var hangulLeads = []string{
	"g", "gg", "n", "d", "dd", "r", "m", "b", "bb", "s", "ss", "", "j", "jj", "c", "k", "t", "p", "h",
}

var hangulVowels = []string{
	"a", "ae", "ya", "yae", "eo", "e", "yeo", "ye", "o", "wa", "wai", "oe",
	"yo", "u", "weo", "we", "wi", "yu", "eu", "yi", "i",
}

var hangulTails = []string{
	"", "g", "gg", "gs", "n", "nj", "nh", "d", "l", "lg", "lm", "lb", "ls",
	"lt", "lp", "lh", "m", "b", "bs", "s", "ss", "ng", "j", "c", "k", "t", "p", "h",
}

// IsHangulSyllable reports whether r is a precomposed Hangul syllable.
func IsHangulSyllable(r rune) bool {
	return r >= hangulBase && r <= hangulLast
}

// DecomposeHangul returns the romanized lead+vowel+tail for a precomposed
// Hangul syllable.
func DecomposeHangul(r rune) (string, bool) {
	if !IsHangulSyllable(r) {
		return "", false
	}
	idx := int(r) - hangulBase
	tail := idx % nTails
	idx /= nTails
	vowel := idx % nVowels
	lead := idx / nVowels
	if lead < 0 || lead >= nLeads {
		return "", false
	}
	return hangulLeads[lead] + hangulVowels[vowel] + hangulTails[tail], true
}
