package algo

import (
	"math"
	"regexp"
	"strings"
)

// Tibetan Unicode ranges used to classify a letter run.
const (
	tibetanLetterA    = 0x0F60 // TIBETAN LETTER -A, romanized as an apostrophe
	tibetanSubjoinedA = 0x0FB0 // TIBETAN SUBJOINED LETTER -A
)

func isTibetanVowelSign(r rune) bool {
	return (r >= 0x0F71 && r <= 0x0F7E) || (r >= 0x0F80 && r <= 0x0F84) || r == 0x0F39
}

func isTibetanSubjoinedLetter(r rune) bool {
	return r >= 0x0F90 && r <= 0x0FBC
}

func isTibetanLetterOrVowelSign(r rune) bool {
	return (r >= 0x0F40 && r <= 0x0F6C) || isTibetanVowelSign(r) || isTibetanSubjoinedLetter(r) || r == tibetanLetterA
}

var aeiouPattern = regexp.MustCompile(`^[aeiou]+$`)
var dropFinalAPattern = regexp.MustCompile(`^([bcdfghjklmnpqrstvwxyz].*)a$`)

var tibetanGoodSuffix = regexp.MustCompile(`^(?:|[bcdfghjklmnpqrstvwxz]|bh|bs|ch|cs|dd|ddh|` +
	`dh|dz|dzh|gh|gr|gs|kh|khs|kss|n|nn|nt|ms|ng|ngs|ns|ph|` +
	`rm|sh|ss|th|ts|tsh|tt|tth|zh|zhs)'?$`)

var tibetanGoodPrefix = regexp.MustCompile(`^'?(?:.|bd|br|brg|brgy|bs|bsh|bst|bt|bts|by|bz|bzh|` +
	`ch|db|dby|dk|dm|dp|dpy|dr|` +
	`gl|gn|gr|gs|gt|gy|gzh|kh|khr|khy|kr|ky|ld|lh|lt|mkh|mny|mth|mtsh|` +
	`ny|ph|phr|phy|rgy|rk|el|rn|rny|rt|rts|` +
	`sk|skr|sky|sl|sm|sn|sny|sp|spy|sr|st|th|ts|tsh)$`)

// TibetanVowelResult is the per-position flag pair the Lattice stores for
// each letter position in a Tibetan syllable run.
type TibetanVowelResult struct {
	EdgeVowel  map[int]bool
	EdgeDelete map[int]bool
}

// TibetanSyllableRuns groups maximal runs of consecutive positions whose
// character is a Tibetan letter or vowel sign, given a predicate telling
// the caller the script name and character at each position.
func TibetanSyllableRuns(n int, isTibetanLetterPos func(i int) (rune, bool)) [][]int {
	var runs [][]int
	var cur []int
	for i := 0; i < n; i++ {
		c, ok := isTibetanLetterPos(i)
		if ok && isTibetanLetterOrVowelSign(c) {
			cur = append(cur, i)
		} else if len(cur) > 0 {
			runs = append(runs, cur)
			cur = nil
		}
	}
	if len(cur) > 0 {
		runs = append(runs, cur)
	}
	return runs
}

// PickTibetanVowelEdge decides, for one syllable run, which position carries
// the inherent vowel and which (if any) should be deleted: explicit vowel
// signs, subjoined letters, and letter -A force a position; otherwise a cost
// function over valid onset/final clusters picks one. charAt(i) returns the
// rune at position i; romAt(i) returns the simple top-romanization-candidate
// string for that single character ("?" if unknown).
func PickTibetanVowelEdge(positions []int, charAt func(i int) rune, romAt func(i int) string) TibetanVowelResult {
	result := TibetanVowelResult{EdgeVowel: make(map[int]bool), EdgeDelete: make(map[int]bool)}
	if len(positions) == 0 {
		return result
	}
	vowelSet := make(map[int]bool)  // positions with a determined edge-vowel value
	vowelVal := make(map[int]bool)  // the determined value
	var vowelPos *int
	var roms []string
	firstPos := positions[0]
	var subjoinedPositions []int

	setVowel := func(i int, v bool) {
		vowelSet[i] = true
		vowelVal[i] = v
	}

	for _, i := range positions {
		c := charAt(i)
		rom := romAt(i)
		switch {
		case isTibetanVowelSign(c) || (rom != "" && aeiouPattern.MatchString(rom)):
			pos := i
			vowelPos = &pos
			setVowel(i, true)
			if len(roms) == 1 && roms[0] == "'" {
				result.EdgeDelete[i-1] = true
			}
		case isTibetanSubjoinedLetter(c):
			subjoinedPositions = append(subjoinedPositions, i)
			if i > firstPos {
				if c == tibetanSubjoinedA {
					pos := i - 1
					vowelPos = &pos
					setVowel(i-1, true)
				} else {
					setVowel(i-1, false)
				}
			}
			rom = dropFinalAPattern.ReplaceAllString(rom, "$1")
		case c == tibetanLetterA:
			setVowel(i, false)
			if i > firstPos {
				pos := i - 1
				vowelPos = &pos
				setVowel(i-1, true)
				if i == positions[len(positions)-1] {
					result.EdgeDelete[i] = true
				}
			}
			last := ""
			if len(roms) > 0 {
				last = roms[len(roms)-1]
			}
			if last != "" && !strings.ContainsRune("aeiou", rune(last[len(last)-1])) {
				rom = "a'"
			} else {
				rom = "'"
			}
		default:
			rom = dropFinalAPattern.ReplaceAllString(rom, "$1")
		}
		roms = append(roms, rom)
	}

	if vowelPos != nil {
		for _, i := range positions {
			if !vowelSet[i] {
				setVowel(i, false)
			}
		}
		for i, v := range vowelVal {
			result.EdgeVowel[i] = v
		}
		return result
	}

	bestCost := math.Inf(1)
	var bestPos *int
	nLetters := len(positions)
	for idx, i := range positions {
		relPos := idx
		pre := strings.Join(roms[:relPos+1], "")
		post := strings.Join(roms[relPos+1:], "")
		var cost float64
		switch {
		case vowelSet[i] && !vowelVal[i]:
			cost = 20
		case nLetters == 1:
			cost = 0
		case nLetters == 2:
			if idx == 0 {
				cost = 0
			} else {
				cost = 0.1
			}
		default:
			goodSuffix := tibetanGoodSuffix.MatchString(post)
			goodPrefix := tibetanGoodPrefix.MatchString(pre)
			subjoinedSuffix := true
			for _, p := range positions[relPos+2:] {
				if !containsInt(subjoinedPositions, p) {
					subjoinedSuffix = false
					break
				}
			}
			switch {
			case goodSuffix && goodPrefix:
				cost = float64(len(pre)) * 0.1
			case goodSuffix:
				cost = float64(len(pre))
			case subjoinedSuffix && goodPrefix:
				cost = float64(len(pre)) * 0.3
			case subjoinedSuffix:
				cost = float64(len(pre)) * 0.5
			default:
				cost = math.Inf(1)
			}
		}
		if cost < bestCost {
			pos := i
			bestCost = cost
			bestPos = &pos
		}
	}

	if bestPos != nil {
		for _, i := range positions {
			if !vowelSet[i] {
				result.EdgeVowel[i] = i == *bestPos
			} else {
				result.EdgeVowel[i] = vowelVal[i]
			}
		}
	}
	return result
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}
