package algo

// Thai pre-vowels are written before the consonant they're pronounced
// after: SARA E, SARA AE, SARA O, SARA AI MAIMUAN,
// SARA AI MAIMALAI.
var thaiPreVowels = map[rune]bool{
	0x0E40: true,
	0x0E41: true,
	0x0E42: true,
	0x0E43: true,
	0x0E44: true,
}

// IsThaiPreVowel reports whether r is a Thai vowel written before, spoken
// after, its consonant.
func IsThaiPreVowel(r rune) bool { return thaiPreVowels[r] }

// IsThaiConsonant reports whether r is in the Thai consonant block.
func IsThaiConsonant(r rune) bool { return r >= 0x0E01 && r <= 0x0E2E }

// ThaiOAng is the O ANG letter, which doubles as a vowel carrier and a
// true consonant depending on context.
const ThaiOAng = 0x0E2D

// thaiToneMarks are the four combining tone marks: MAI EK, MAI THO, MAI TRI, MAI CHATTAWA.
var thaiToneMarks = map[rune]bool{
	0x0E48: true,
	0x0E49: true,
	0x0E4A: true,
	0x0E4B: true,
}

// IsThaiToneMark reports whether r is one of the four Thai tone marks.
func IsThaiToneMark(r rune) bool { return thaiToneMarks[r] }
