package algo

import (
	"strings"

	"github.com/uroman-go/uroman/internal/uchar"
)

// fractionSlash is U+2044, the character Unicode vulgar-fraction
// decompositions use between numerator and denominator.
const fractionSlash = '⁄'

// DecomposeFallback applies the Unicode compatibility-decomposition pass
//: a character with no matching rule target is replaced by
// the per-character romanization of its decomposition, when the
// decomposition's format tag isn't excluded and the character itself has
// no direct rule coverage. For fractional characters the fraction slash is
// replaced with "/" and, when the caller reports adjacent numeric
// characters on either side, padded with spaces.
func DecomposeFallback(table *uchar.DecompTable, r rune, hasDirectRule bool, adjacentNumericBefore, adjacentNumericAfter bool) (string, bool) {
	if hasDirectRule || table == nil {
		return "", false
	}
	decomp, eligible, ok := table.Decompose(r)
	if !ok || !eligible || decomp == "" {
		return "", false
	}
	if strings.ContainsRune(decomp, fractionSlash) {
		decomp = strings.ReplaceAll(decomp, string(fractionSlash), "/")
		if adjacentNumericBefore {
			decomp = " " + decomp
		}
		if adjacentNumericAfter {
			decomp = decomp + " "
		}
	}
	return decomp, true
}
