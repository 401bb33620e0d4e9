package uchar

// CharSigns holds the per-character abugida flags parsed from
// UnicodeDataProps*.txt: vowel sign, medial consonant sign, and virama.
// Populated once at load time by
// resource.LoadUnicodeProps and consulted read-only by the abugida default-
// vowel cascade instead of the broader Unicode-category heuristic.
type CharSigns struct {
	vowelSign map[rune]bool
	medial    map[rune]bool
	virama    map[rune]bool
}

func NewCharSigns() *CharSigns {
	return &CharSigns{
		vowelSign: make(map[rune]bool),
		medial:    make(map[rune]bool),
		virama:    make(map[rune]bool),
	}
}

func (s *CharSigns) SetVowelSign(r rune) { s.vowelSign[r] = true }
func (s *CharSigns) SetMedial(r rune)    { s.medial[r] = true }
func (s *CharSigns) SetVirama(r rune)    { s.virama[r] = true }

// IsVowelSign reports whether r is a registered vowel-sign character.
func (s *CharSigns) IsVowelSign(r rune) bool { return s != nil && s.vowelSign[r] }

// IsMedial reports whether r is a registered medial-consonant-sign character.
func (s *CharSigns) IsMedial(r rune) bool { return s != nil && s.medial[r] }

// IsVirama reports whether r is a registered virama (vowel-killer) character.
func (s *CharSigns) IsVirama(r rune) bool { return s != nil && s.virama[r] }
