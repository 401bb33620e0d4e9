// Package engine drives rule application and the ordered algorithmic
// passes that populate a Lattice from one input chunk,
// then resolves the best romanization path.
package engine

import (
	"strings"
	"unicode"

	"github.com/uroman-go/uroman/internal/algo"
	"github.com/uroman-go/uroman/internal/lattice"
	"github.com/uroman-go/uroman/internal/numdb"
	"github.com/uroman-go/uroman/internal/rule"
	"github.com/uroman-go/uroman/internal/scriptdb"
	"github.com/uroman-go/uroman/internal/uchar"
)

// Stores bundles the immutable, load-once data an engine run consults. A
// single Stores value is shared read-only across concurrent Lattice builds.
type Stores struct {
	Rules   *rule.Store
	Scripts *scriptdb.Store
	Numbers *numdb.Store
	Decomp  *uchar.DecompTable
	Names   *uchar.NameTable
	Signs   *uchar.CharSigns
	Abugida *algo.AbugidaCache

	// NoCapitalization disables the multi-uppercase normalization ablation
	// in the expansion pass.
	NoCapitalization bool
}

// Build runs every pass in its fixed order and returns the populated
// lattice together with the winning best-path edges.
func Build(st *Stores, input []rune, lang string) (*lattice.Lattice, []*lattice.Edge) {
	l := lattice.New(input)

	computePositionProps(l, st, lang)
	pickTibetanVowels(l, st)
	computeBrailleUpperRuns(l)
	applyRules(l, st, lang)
	applyHangul(l)
	applyBrailleNumbers(l)
	applyNumberAggregator(l, st)
	applyDecompositionFallback(l, st)
	applyFallbackSingles(l, st)

	best := lattice.BestRomEdgePath(l)
	return l, best
}

// RomanizeFlat is a convenience entry point returning the concatenated
// surface string for one chunk.
func RomanizeFlat(st *Stores, input []rune, lang string) string {
	_, best := Build(st, input, lang)
	return lattice.EdgePathToSurf(best)
}

func computePositionProps(l *lattice.Lattice, st *Stores, lang string) {
	n := l.Len()
	for i := 0; i <= n; i++ {
		l.SetStartOfWord(i, isStartOfWord(l, i))
	}
	for i := 0; i <= n; i++ {
		l.SetEndOfWord(i, isEndOfWord(l, st, i, lang))
	}
}

// isStartOfWord is false iff the input immediately before i is alphabetic
// (a letter, or a combining mark such as an Indic vowel sign, which belongs
// to the word it attaches to) or, for Braille text, an apostrophe.
func isStartOfWord(l *lattice.Lattice, i int) bool {
	if i == 0 {
		return true
	}
	prev := l.Input[i-1]
	if unicode.IsLetter(prev) || unicode.IsMark(prev) {
		return false
	}
	if prev == '\'' && i >= 2 && isBrailleRune(l.Input[i-2]) {
		return false
	}
	return true
}

// isEndOfWord is approximated directly from the raw input: true unless the
// next input rune is alphabetic. Rule targets at spans starting at p are
// not consulted.
func isEndOfWord(l *lattice.Lattice, st *Stores, i int, lang string) bool {
	if i >= l.Len() {
		return true
	}
	next := l.Input[i]
	if unicode.IsLetter(next) {
		return false
	}
	return true
}

// isEndOfSyllable is the Thai-focused end-of-syllable heuristic. position
// is the candidate rule span's end boundary; it must be called while rule
// application is still in progress (applyRules calls it at rule-selection
// time for span [start, position)), so that every edge ending at or before
// position-1 is already in the lattice when the left-neighbor check below
// needs it.
func isEndOfSyllable(l *lattice.Lattice, st *Stores, lang string, position int) bool {
	if position < 2 {
		return false // start-of-string: no character two back to anchor on
	}
	prevChar := l.Input[position-2]
	if !unicode.IsLetter(prevChar) && !unicode.IsMark(prevChar) {
		return false // start-of-token
	}
	if algo.IsThaiPreVowel(prevChar) {
		return false // pre-post-vowel-on-left
	}

	adjPosition := position
	if position < l.Len() && algo.IsThaiToneMark(l.Input[position]) {
		adjPosition = position + 1
	}

	if adjPosition >= l.Len() {
		return true // end-of-string
	}
	nextChar := l.Input[adjPosition]
	if algo.IsThaiPreVowel(nextChar) {
		return true // pre-post-vowel-on-right
	}
	if !unicode.IsLetter(nextChar) && !unicode.IsMark(nextChar) {
		return true // end-of-token
	}

	if left := lattice.BestLeftNeighborEdge(l, position-1); left != nil && endsInConsonantLetter(left.Text) {
		return false // consonant-to-the-left
	}

	nextRom := simpleTopRomSpan(l, st, lang, adjPosition, adjPosition+2)
	if nextRom == "" {
		nextRom = simpleTopRomSpan(l, st, lang, adjPosition, adjPosition+1)
	}
	if !startsWithVowelLetter(nextRom) {
		return true // not-followed-by-vowel
	}

	if nextChar == algo.ThaiOAng && adjPosition+1 < l.Len() {
		next2Rom := simpleTopRomSpan(l, st, lang, adjPosition+1, adjPosition+2)
		if startsWithVowelLetter(next2Rom) {
			return true // o-ang-followed-by-vowel: O ANG behaves as a consonant here
		}
	}

	return false // not-at-syllable-end-by-default
}

// endsInConsonantLetter reports whether s ends in one of a fixed ASCII
// consonant set (deliberately excluding w/y, which act as semivowels here).
func endsInConsonantLetter(s string) bool {
	if s == "" {
		return false
	}
	last := s[len(s)-1]
	return strings.IndexByte("bcdfghjklmnpqrstvxz", last) >= 0
}

// startsWithVowelLetter reports whether s begins with a/e/i/o/u in either
// case.
func startsWithVowelLetter(s string) bool {
	if s == "" {
		return false
	}
	c := s[0]
	if c >= 'A' && c <= 'Z' {
		c += 'a' - 'A'
	}
	return strings.IndexByte("aeiou", c) >= 0
}

// simpleTopRomSpan returns the best valid rule's target for [start,end), or
// "" if none; a cheap romanization lookahead with no reshaping applied.
func simpleTopRomSpan(l *lattice.Lattice, st *Stores, lang string, start, end int) string {
	if start < 0 || end > l.Len() || start >= end {
		return ""
	}
	cands := st.Rules.Lookup(string(l.Input[start:end]))
	best := rule.Select(filterValid(l, cands, start, end, lang))
	if best == nil || !best.HasTarget {
		return ""
	}
	return best.Target
}

func isBrailleRune(r rune) bool { return r >= 0x2800 && r <= 0x28FF }

// computeBrailleUpperRuns pre-computes, for every position, whether it
// falls inside an active Braille all-caps run. Consulted by the expansion
// pass so every letter in the run is capitalized, not just the one
// immediately after the marker (which the marker-adjacency rule already
// handles on its own).
func computeBrailleUpperRuns(l *lattice.Lattice) {
	runs := algo.BraillePrep(l.Input)
	for i, v := range runs {
		l.SetBrailleUpper(i, v)
	}
}

func pickTibetanVowels(l *lattice.Lattice, st *Stores) {
	runs := algo.TibetanSyllableRuns(l.Len(), func(i int) (rune, bool) {
		c := l.Input[i]
		return c, st.Scripts.ScriptNameOf(c) == "Tibetan"
	})
	for _, positions := range runs {
		res := algo.PickTibetanVowelEdge(positions,
			func(i int) rune { return l.Input[i] },
			func(i int) string { return simpleTopRom(st, l.Input[i]) },
		)
		for i, v := range res.EdgeVowel {
			l.SetEdgeVowel(i, v)
		}
		for i, v := range res.EdgeDelete {
			l.SetEdgeDelete(i, v)
		}
	}
}

// simpleTopRom returns the unrestricted rule's target for a single
// character, or "?" if none, the placeholder the Tibetan vowel scorer
// expects for unknown letters.
func simpleTopRom(st *Stores, r rune) string {
	cands := st.Rules.Lookup(string(r))
	best := rule.Select(filterUnrestricted(cands))
	if best == nil || !best.HasTarget {
		return "?"
	}
	return best.Target
}

func filterUnrestricted(cands []*rule.Rule) []*rule.Rule {
	var out []*rule.Rule
	for _, c := range cands {
		if c.NRestrictions == 0 {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return cands
	}
	return out
}

// applyRules scans every position and, for every span length the prefix
// index says could still match, selects the best valid rule, applies the
// abugida/expansion reshapers, and inserts the resulting edge. Choosing
// among spans of different lengths is left to path search.
func applyRules(l *lattice.Lattice, st *Stores, lang string) {
	n := l.Len()
	for start := 0; start < n; start++ {
		maxLen := n - start
		for length := 1; length <= maxLen; length++ {
			end := start + length
			src := string(l.Input[start:end])
			if length > 1 && !st.Rules.HasPrefix(src) {
				break
			}
			cands := st.Rules.Lookup(src)
			if len(cands) == 0 {
				continue
			}
			valid := filterValid(l, cands, start, end, lang)
			if len(valid) == 0 {
				continue
			}
			best := rule.Select(valid)
			target := best.Target
			if best.HasEndOfSyllableTarget && isEndOfSyllable(l, st, lang, end) {
				target = best.TargetAtEndOfSyllable
			}
			addReshapedEdge(l, st, start, end, lang, target)
		}
	}
}

func filterValid(l *lattice.Lattice, cands []*rule.Rule, start, end int, lang string) []*rule.Rule {
	var out []*rule.Rule
	for _, c := range cands {
		if !c.HasTarget {
			continue
		}
		if !c.AppliesToLanguage(lang) {
			continue
		}
		if c.UseOnlyAtStartOfWord && !l.IsStartOfWord(start) {
			continue
		}
		if c.DontUseAtStartOfWord && l.IsStartOfWord(start) {
			continue
		}
		if c.UseOnlyAtEndOfWord && !l.IsEndOfWord(end) {
			continue
		}
		if c.DontUseAtEndOfWord && l.IsEndOfWord(end) {
			continue
		}
		if c.UseOnlyForWholeWord && !(l.IsStartOfWord(start) && l.IsEndOfWord(end)) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func applyAbugidaVowel(l *lattice.Lattice, st *Stores, start, end int, lang, target string) string {
	scriptName := st.Scripts.ScriptNameOf(l.Input[start])
	sc, ok := st.Scripts.Lookup(scriptName)
	if !ok || len(sc.AbugidaDefaultVowels) == 0 {
		return target
	}
	ctx := algo.VowelContext{
		Script:        scriptName,
		Language:      lang,
		DefaultVowels: sc.AbugidaDefaultVowels,
		SingleChar:    end-start == 1,
		AtStartOfWord: l.IsStartOfWord(start),
		AtEndOfWord:   l.IsEndOfWord(end),
		TibetanVowel:  l.IsEdgeVowel(start),
		TibetanDelete: l.IsEdgeDelete(start),
		Signs:         st.Signs,
	}
	if end < l.Len() {
		ctx.NextChar, ctx.HasNextChar = l.Input[end], true
		ctx.NextScript = st.Scripts.ScriptNameOf(ctx.NextChar)
	}
	if end+1 < l.Len() {
		ctx.CharAfterNext, ctx.HasCharAfterNext = l.Input[end+1], true
	}
	if start > 0 {
		ctx.PrevChar, ctx.HasPrevChar = l.Input[start-1], true
		ctx.PrevScript = st.Scripts.ScriptNameOf(ctx.PrevChar)
	}
	ctx.LastInputChar = l.Input[end-1]
	ctx.LastCharName = st.Names.Name(ctx.LastInputChar)
	return algo.ApplyAbugidaVowel(st.Abugida, ctx, target)
}

// addReshapedEdge runs the abugida and expansion reshapers over a selected
// rule target and inserts the result. A panic inside either heuristic is
// recovered here and the unreshaped target emitted instead, so romanization
// always produces output.
func addReshapedEdge(l *lattice.Lattice, st *Stores, start, end int, lang, target string) {
	defer func() {
		if r := recover(); r != nil {
			addPlainEdge(l, start, end, target, lattice.TypeRom)
		}
	}()
	reshaped := applyAbugidaVowel(l, st, start, end, lang, target)
	addEdgeWithExpansion(l, st, start, end, reshaped, coreSuffixTag(target, reshaped))
}

// coreSuffixTag records the pre-abugida core and the inserted vowel suffix
// in the edge's type tag when default-vowel insertion extended the target,
// so alternative generation can match rule targets against the core and
// re-append the suffix.
func coreSuffixTag(target, reshaped string) lattice.EdgeType {
	if target == "" || reshaped == target || !strings.HasPrefix(reshaped, target) {
		return lattice.TypeRom
	}
	suffix := reshaped[len(target):]
	for _, c := range suffix {
		if !strings.ContainsRune("aeiou", c) {
			return lattice.TypeRom
		}
	}
	return lattice.EdgeType("rom c:" + target + " s:" + suffix)
}

func addEdgeWithExpansion(l *lattice.Lattice, st *Stores, start, end int, target string, t lattice.EdgeType) {
	if strings.HasPrefix(target, "+") && len(target) > 1 {
		tail := target[1:]
		if tail == "m" || tail == "ng" || tail == "n" || tail == "h" || tail == "r" {
			addPlainEdge(l, start, end, tail, lattice.TypeRomTail)
			return
		}
	}
	isPrevThaiPreVowel := start > 0 && algo.IsThaiPreVowel(l.Input[start-1])
	res := algo.ExpandSpecialChars(algo.ExpandInput{
		Start: start, End: end, Text: target, Input: l.Input,

		NoCapitalization:    st.NoCapitalization,
		IsPrevBrailleUpper:  l.IsBrailleUpper(start),
		IsPrevThaiPreVowel:  isPrevThaiPreVowel,
		PrevThaiVowelTarget: thaiPreVowelTarget(st, l, start, isPrevThaiPreVowel),

		WrapAroundLookup: func(source string) (string, bool) {
			cands := st.Rules.Lookup(source)
			best := rule.Select(cands)
			if best == nil || !best.HasTarget {
				return "", false
			}
			return best.Target, true
		},
		DirectRuleCovers: func(substring string) bool {
			return len(st.Rules.Lookup(substring)) > 0
		},
	})
	addPlainEdge(l, res.Start, res.End, res.Text, t)
}

// thaiPreVowelTarget returns the standalone rule target for the Thai
// pre-consonant vowel sign immediately to the left of start, used by the
// expansion pass's "written-pre-consonant-spoken-post" merge.
func thaiPreVowelTarget(st *Stores, l *lattice.Lattice, start int, isPrevThaiPreVowel bool) string {
	if !isPrevThaiPreVowel {
		return ""
	}
	best := rule.Select(st.Rules.Lookup(string(l.Input[start-1])))
	if best == nil || !best.HasTarget {
		return ""
	}
	return best.Target
}

func addPlainEdge(l *lattice.Lattice, start, end int, text string, t lattice.EdgeType) {
	l.AddEdge(lattice.NewEdge(start, end, text, t))
}

func applyHangul(l *lattice.Lattice) {
	for i := 0; i < l.Len(); i++ {
		if len(l.EdgesInSpan(i, i+1)) > 0 {
			continue
		}
		if rom, ok := algo.DecomposeHangul(l.Input[i]); ok {
			addPlainEdge(l, i, i+1, rom, lattice.TypeRom)
		}
	}
}

func applyBrailleNumbers(l *lattice.Lattice) {
	for i := 0; i < l.Len(); i++ {
		end, text, ok := algo.BrailleNumberRun(l.Input, i)
		if !ok {
			continue
		}
		l.AddEdge(lattice.NewNumEdge(i, end, text, lattice.TypeNumber, &lattice.NumData{
			ValueString: text, Active: true,
		}))
	}
}

func applyDecompositionFallback(l *lattice.Lattice, st *Stores) {
	for i := 0; i < l.Len(); i++ {
		if len(l.EdgesInSpan(i, i+1)) > 0 {
			continue
		}
		hasDirect := len(st.Rules.Lookup(string(l.Input[i]))) > 0
		before := i > 0 && unicode.IsDigit(l.Input[i-1])
		after := i+1 < l.Len() && unicode.IsDigit(l.Input[i+1])
		if decomp, ok := algo.DecomposeFallback(st.Decomp, l.Input[i], hasDirect, before, after); ok {
			rom := romanizeSubstring(st, decomp)
			addPlainEdge(l, i, i+1, rom, lattice.TypeRomDecomp)
		}
	}
}

// romanizeSubstring romanizes a short decomposition string one character
// at a time, using each character's selected single-character rule and
// copying characters without a rule unchanged. It does not run the lattice
// passes on the string: multi-character rules, number aggregation and
// abugida vowel handling are not applied.
func romanizeSubstring(st *Stores, s string) string {
	runes := []rune(s)
	var out strings.Builder
	for i := 0; i < len(runes); i++ {
		if cands := st.Rules.Lookup(string(runes[i])); len(cands) > 0 {
			if best := rule.Select(cands); best != nil && best.HasTarget {
				out.WriteString(best.Target)
				continue
			}
		}
		out.WriteRune(runes[i])
	}
	return out.String()
}

func applyFallbackSingles(l *lattice.Lattice, st *Stores) {
	for i := 0; i < l.Len(); i++ {
		if len(l.EdgesInSpan(i, i+1)) > 0 {
			continue
		}
		c := l.Input[i]
		switch {
		case uchar.IsNonspacingMark(c):
			addPlainEdge(l, i, i+1, "", lattice.TypeNonspacing)
		case uchar.IsFormatChar(c):
			addPlainEdge(l, i, i+1, "", lattice.TypeFormat)
		case uchar.IsPrivateUse(c):
			addPlainEdge(l, i, i+1, "", lattice.TypePrivateUse)
		default:
			if cands := st.Rules.Lookup(string(c)); len(cands) > 0 {
				if best := rule.Select(cands); best != nil && best.HasTarget {
					addPlainEdge(l, i, i+1, best.Target, lattice.TypeRomSingle)
					continue
				}
			}
			addPlainEdge(l, i, i+1, string(c), lattice.TypeOrig)
		}
	}
}

func applyNumberAggregator(l *lattice.Lattice, st *Stores) {
	runNumberAggregator(l, st)
}
