package uchar

import "testing"

func TestGeneralCategory(t *testing.T) {
	cases := map[rune]Category{
		'a':    CategoryLowercaseLetter,
		'A':    CategoryUppercaseLetter,
		'5':    CategoryDecimalNumber,
		0x0301: CategoryNonspacingMark,
		' ':    CategorySpaceSeparator,
		0x200D: CategoryFormat,
	}
	for r, want := range cases {
		if got := GeneralCategory(r); got != want {
			t.Errorf("GeneralCategory(%U) = %s, want %s", r, got, want)
		}
	}
}

func TestNumericValue(t *testing.T) {
	cases := map[rune]int{
		'0':    0,
		'7':    7,
		0x0663: 3, // Arabic-Indic digit three
		0x0967: 1, // Devanagari digit one
	}
	for r, want := range cases {
		got, ok := NumericValue(r)
		if !ok || got != want {
			t.Errorf("NumericValue(%U) = %d ok=%v, want %d", r, got, ok, want)
		}
	}
	if _, ok := NumericValue('x'); ok {
		t.Error("NumericValue should reject non-digits")
	}
	// CJK numerals are not decimal digits; they come from NumProps instead.
	if _, ok := NumericValue('三'); ok {
		t.Error("NumericValue should not cover CJK numerals")
	}
}

func TestNameTableFallbacks(t *testing.T) {
	names := NewNameTable()
	names.Set(0x0947, "DEVANAGARI VOWEL SIGN E")
	if got := names.Name(0x0947); got != "DEVANAGARI VOWEL SIGN E" {
		t.Fatalf("override name = %q", got)
	}
	if got := names.Name('7'); got != "DIGIT SEVEN" {
		t.Fatalf("digit name = %q, want DIGIT SEVEN", got)
	}
	if got := names.Name(0x4E09); got != "U+4E09" {
		t.Fatalf("placeholder name = %q, want U+4E09", got)
	}
}

func TestDecompTableTagExclusion(t *testing.T) {
	table := NewDecompTable()
	table.Set(0x00BD, "1⁄2", "")
	table.Set(0x2075, "5", "<super>")

	decomp, eligible, ok := table.Decompose(0x00BD)
	if !ok || !eligible || decomp != "1⁄2" {
		t.Fatalf("½: got %q eligible=%v ok=%v", decomp, eligible, ok)
	}
	_, eligible, ok = table.Decompose(0x2075)
	if !ok || eligible {
		t.Fatal("a <super>-tagged decomposition must not be eligible")
	}
}

func TestDecompTableNFKDFallback(t *testing.T) {
	table := NewDecompTable()
	decomp, eligible, ok := table.Decompose(0xFB01) // ﬁ ligature
	if !ok || !eligible || decomp != "fi" {
		t.Fatalf("ﬁ: got %q eligible=%v ok=%v, want \"fi\" via NFKD", decomp, eligible, ok)
	}
	if _, _, ok := table.Decompose('a'); ok {
		t.Fatal("a plain letter has no decomposition")
	}
}

func TestStripAccents(t *testing.T) {
	cases := map[string]string{
		"sān":  "san",
		"èr":   "er",
		"lǜsè": "luse",
		"ü":    "u",
		"Üb":   "Ub",
		"fēn":  "fen",
	}
	for in, want := range cases {
		if got := StripAccents(in); got != want {
			t.Errorf("StripAccents(%q) = %q, want %q", in, got, want)
		}
	}
}
