package algo

import (
	"strings"
	"unicode"
)

// BrailleUpperMarker toggles an all-caps run; only U+2800 (braille blank)
// terminates it.
const BrailleUpperMarker = 0x2820
const BrailleBlank = 0x2800

// ExpandInput bundles the read-only context special-character expansion
// needs from the surrounding lattice and input, keeping this package free
// of a dependency on internal/lattice or internal/rule.
type ExpandInput struct {
	Start, End int
	Text       string
	Input      []rune

	// NoCapitalization disables the multi-uppercase normalization step
	// below.
	NoCapitalization bool

	// IsPrevBrailleUpper is true if Start itself falls inside an active
	// Braille all-caps run (the run started by an earlier U+2820 marker and
	// not yet terminated by U+2800).
	IsPrevBrailleUpper bool

	// IsPrevThaiPreVowel reports whether the edge immediately to the
	// left is a Thai pre-vowel with "written-pre-consonant-spoken-post"
	// syllable info, and its own rule-store-derived romanization.
	IsPrevThaiPreVowel  bool
	PrevThaiVowelTarget string

	// WrapAroundLookup resolves a source string to its first rule target,
	// used for the Thai wrap-around pattern and pre-vowel merges.
	WrapAroundLookup func(source string) (string, bool)

	// DirectRuleCovers reports whether the rule store has any rule whose
	// source exactly matches the given substring (used to suppress
	// Coptic/Japanese merges when an explicit rule already exists).
	DirectRuleCovers func(substring string) bool
}

// ExpandResult is the (possibly widened) span and rewritten text produced
// by the expansion pass.
type ExpandResult struct {
	Start, End int
	Text       string
}

func runeAt(in []rune, i int) (rune, bool) {
	if i < 0 || i >= len(in) {
		return 0, false
	}
	return in[i], true
}

// ExpandSpecialChars applies the ordered special-character reshapers
// to one candidate edge, returning the possibly-widened span
// and rewritten text. Any step that does not apply leaves its input
// untouched and falls through to the next.
func ExpandSpecialChars(in ExpandInput) ExpandResult {
	start, end, t := in.Start, in.End, in.Text
	if t == "" {
		return ExpandResult{Start: start, End: end, Text: t}
	}

	prev, hasPrev := runeAt(in.Input, start-1)
	next, hasNext := runeAt(in.Input, end)
	first, _ := runeAt(in.Input, start)
	last, _ := runeAt(in.Input, end-1)

	// Braille upper marker: the letter immediately after U+2820 absorbs the
	// marker into its own span. Every subsequent letter of the same run
	// (terminated only by U+2800) is capitalized too,
	// without widening its span since the marker was already consumed.
	switch {
	case hasPrev && prev == BrailleUpperMarker && len(t) > 0 && t[0] >= 'a' && t[0] <= 'z':
		t = strings.ToUpper(t[:1]) + t[1:]
		start--
	case in.IsPrevBrailleUpper && len(t) > 0 && t[0] >= 'a' && t[0] <= 'z':
		t = strings.ToUpper(t[:1]) + t[1:]
	}

	// Multi-uppercase normalization.
	if !in.NoCapitalization && end-start == 1 && t == strings.ToUpper(t) && t != strings.ToLower(t) &&
		hasNext && unicode.IsLower(next) {
		t = titleCase(t)
	}

	// Consonant doubling (Japanese sokuon, Gurmukhi addak).
	if hasPrev && IsConsonantDoubler(prev) {
		if repl, ok := DoublerReplacement(prev); ok {
			switch {
			case strings.HasPrefix(t, "ch"):
				t = repl + t
				start--
			case strings.ContainsRune("bcdfghjklmnpqrstwz", rune(t[0])):
				t = string(t[0]) + t
				start--
			}
		}
	}

	// Thai handling.
	if unicode.Is(unicode.Thai, first) {
		if end-start == 1 && isAllConsonantRom(t) && hasPrev && IsThaiPreVowel(prev) {
			for k := 1; k <= 1; k++ {
				for _, m := range []int{3, 2, 1} {
					wrapSrc := string(in.Input[max0(start-k):start]) + "–" + string(sliceRunes(in.Input, end, end+m))
					if in.WrapAroundLookup != nil {
						if target, ok := in.WrapAroundLookup(wrapSrc); ok {
							t = t + target
							end += m
							goto doneThaiWrap
						}
					}
				}
			}
		doneThaiWrap:
		}
		if in.IsPrevThaiPreVowel && len(t) > 0 && strings.ContainsRune("bcdfghjklmnpqrstvwxyz", rune(t[0])) {
			t = in.PrevThaiVowelTarget + t
			start--
		}
		if first == ThaiOAng && end-start == 1 {
			leftIsConsonant := hasPrev && IsThaiConsonant(prev)
			rightIsConsonant := hasNext && IsThaiConsonant(next)
			if !(leftIsConsonant && rightIsConsonant) {
				t = ""
			}
		}
	}

	// Coptic grave accent.
	if hasNext && next == CopticGraveAccent && isCoptic(last) {
		if in.DirectRuleCovers == nil || !in.DirectRuleCovers(string(in.Input[start:end+1])) {
			t = "e" + t
			end++
			next, hasNext = runeAt(in.Input, end)
			last, _ = runeAt(in.Input, end-1)
		}
	}

	// Japanese small-y merge. Suppressed when a direct rule already covers
	// the merged span, from either the original or the shifted start.
	if hasNext && IsJapaneseSmallY(next) && sameKanaBlock(next, last) && strings.HasSuffix(t, "i") &&
		len(t) >= 2 && strings.ContainsRune("bcdfghjklmnpqrstvwxyz", rune(t[len(t)-2])) {
		if !coversAny(in.DirectRuleCovers, in.Input, in.Start, start, end+1) {
			if in.WrapAroundLookup != nil {
				if target, ok := in.WrapAroundLookup(string(next)); ok {
					t = t[:len(t)-1] + target
					end++
					next, hasNext = runeAt(in.Input, end)
					last, _ = runeAt(in.Input, end-1)
				}
			}
		}
	}

	// Japanese vowel lengthener.
	if hasNext && next == KanaLengthener && isHiraganaOrKatakana(last) && len(t) > 0 &&
		strings.ContainsRune("aeiou", rune(t[len(t)-1])) {
		t = t + string(t[len(t)-1])
		end++
	}

	// Virama extension (generic, any script's virama already consumed by
	// the abugida pass; here we only extend the span without altering T).
	if hasNext && isGenericVirama(next) {
		end++
	}

	// Space trimming.
	if start == 0 || (hasPrev && prev == ' ') {
		t = strings.TrimPrefix(t, " ")
	}
	if end >= len(in.Input) || (hasNext && next == ' ') {
		t = strings.TrimSuffix(t, " ")
	}

	return ExpandResult{Start: start, End: end, Text: t}
}

// coversAny reports whether a direct rule covers [origStart,end) or
// [start,end).
func coversAny(covers func(string) bool, input []rune, origStart, start, end int) bool {
	if covers == nil || end > len(input) {
		return false
	}
	if covers(string(input[origStart:end])) {
		return true
	}
	return start != origStart && covers(string(input[start:end]))
}

func max0(i int) int {
	if i < 0 {
		return 0
	}
	return i
}

func sliceRunes(in []rune, from, to int) []rune {
	if from < 0 {
		from = 0
	}
	if to > len(in) {
		to = len(in)
	}
	if from > to {
		return nil
	}
	return in[from:to]
}

func isAllConsonantRom(t string) bool {
	if t == "" {
		return false
	}
	for _, c := range t {
		if !strings.ContainsRune("bcdfghjklmnpqrstvwxyz", c) {
			return false
		}
	}
	return true
}

func isCoptic(r rune) bool { return r >= 0x2C80 && r <= 0x2CFF }

func isHiraganaOrKatakana(r rune) bool {
	return (r >= 0x3040 && r <= 0x309F) || (r >= 0x30A0 && r <= 0x30FF)
}

// sameKanaBlock reports whether both runes are Hiragana or both Katakana,
// the "same script as last" condition of the small-y merge.
func sameKanaBlock(a, b rune) bool {
	hiraA := a >= 0x3040 && a <= 0x309F
	hiraB := b >= 0x3040 && b <= 0x309F
	kataA := a >= 0x30A0 && a <= 0x30FF
	kataB := b >= 0x30A0 && b <= 0x30FF
	return (hiraA && hiraB) || (kataA && kataB)
}

// titleCase capitalizes the first rune of a lowercase string, avoiding the
// deprecated strings.Title.
func titleCase(t string) string {
	lower := strings.ToLower(t)
	if lower == "" {
		return lower
	}
	r := []rune(lower)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func isGenericVirama(r rune) bool {
	for _, v := range viramaByScript {
		if v == r {
			return true
		}
	}
	return false
}
