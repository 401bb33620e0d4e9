package algo

// Braille digit cells, in 0..9 order.
var brailleDigits = map[rune]int{
	0x281A: 0, 0x2801: 1, 0x2803: 2, 0x2809: 3, 0x2819: 4,
	0x2811: 5, 0x280B: 6, 0x281B: 7, 0x2813: 8, 0x280A: 9,
}

const (
	BrailleNumberMark = 0x283C
	BraillePeriod     = 0x2832
	BrailleComma      = 0x2802
)

// BraillePrep scans the chunk left to right, toggling an all-caps run on
// BrailleUpperMarker and off only at BrailleBlank. It returns, for each position, a
// bool stating whether that position falls inside an active run — used by
// the engine to set IsPrevBrailleUpper for ExpandSpecialChars' Braille
// capitalization case.
func BraillePrep(input []rune) []bool {
	upper := make([]bool, len(input))
	active := false
	for i, r := range input {
		switch r {
		case BrailleUpperMarker:
			active = true
		case BrailleBlank:
			active = false
		}
		upper[i] = active
	}
	return upper
}

// BrailleNumberRun recognizes one Braille number-mark run starting at pos
//: U+283C followed by Braille digit/period/comma cells,
// terminating at the first character that is none of those. Returns the
// end position (exclusive) and the recognized text, or ok=false if pos
// does not start a number mark.
func BrailleNumberRun(input []rune, pos int) (end int, text string, ok bool) {
	if pos >= len(input) || input[pos] != BrailleNumberMark {
		return pos, "", false
	}
	i := pos + 1
	var out []byte
	for i < len(input) {
		r := input[i]
		if d, isDigit := brailleDigits[r]; isDigit {
			out = append(out, byte('0'+d))
			i++
			continue
		}
		if r == BraillePeriod {
			out = append(out, '.')
			i++
			continue
		}
		if r == BrailleComma {
			out = append(out, ',')
			i++
			continue
		}
		break
	}
	if i == pos+1 {
		return pos, "", false // number mark with no digits following
	}
	return i, string(out), true
}
