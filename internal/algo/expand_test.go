package algo

import "testing"

func expand(t *testing.T, in ExpandInput) ExpandResult {
	t.Helper()
	return ExpandSpecialChars(in)
}

func TestExpandSokuonDoubling(t *testing.T) {
	res := expand(t, ExpandInput{Start: 1, End: 2, Text: "to", Input: []rune("っと")})
	if res.Text != "tto" || res.Start != 0 || res.End != 2 {
		t.Fatalf("got %q [%d,%d), want \"tto\" [0,2)", res.Text, res.Start, res.End)
	}
}

func TestExpandSokuonChBecomesTch(t *testing.T) {
	res := expand(t, ExpandInput{Start: 1, End: 2, Text: "chi", Input: []rune("っち")})
	if res.Text != "tchi" || res.Start != 0 {
		t.Fatalf("got %q start=%d, want \"tchi\" start=0", res.Text, res.Start)
	}
}

func TestExpandAddakChBecomesCch(t *testing.T) {
	res := expand(t, ExpandInput{Start: 1, End: 2, Text: "cha", Input: []rune{GurmukhiAddak, 0x091A}})
	if res.Text != "ccha" || res.Start != 0 {
		t.Fatalf("got %q start=%d, want \"ccha\" start=0", res.Text, res.Start)
	}
}

func TestExpandVowelLengthener(t *testing.T) {
	res := expand(t, ExpandInput{Start: 0, End: 1, Text: "ka", Input: []rune("かー")})
	if res.Text != "kaa" || res.End != 2 {
		t.Fatalf("got %q end=%d, want \"kaa\" end=2", res.Text, res.End)
	}
}

func TestExpandSmallYMerge(t *testing.T) {
	lookup := func(source string) (string, bool) {
		if source == "ょ" {
			return "o", true
		}
		return "", false
	}
	res := expand(t, ExpandInput{
		Start: 0, End: 1, Text: "chi", Input: []rune("ちょ"),
		WrapAroundLookup: lookup,
		DirectRuleCovers: func(string) bool { return false },
	})
	if res.Text != "cho" || res.End != 2 {
		t.Fatalf("got %q end=%d, want \"cho\" end=2", res.Text, res.End)
	}
}

func TestExpandSmallYMergeNeedsSameKanaBlock(t *testing.T) {
	// Hiragana small yo after a katakana syllable: no merge.
	res := expand(t, ExpandInput{
		Start: 0, End: 1, Text: "chi", Input: []rune("チょ"),
		WrapAroundLookup: func(string) (string, bool) { return "o", true },
	})
	if res.Text != "chi" || res.End != 1 {
		t.Fatalf("got %q end=%d, want unchanged \"chi\" end=1", res.Text, res.End)
	}
}

func TestExpandBrailleUpperMarker(t *testing.T) {
	res := expand(t, ExpandInput{Start: 1, End: 2, Text: "a", Input: []rune{BrailleUpperMarker, 0x2801}})
	if res.Text != "A" || res.Start != 0 {
		t.Fatalf("got %q start=%d, want \"A\" start=0", res.Text, res.Start)
	}
}

func TestExpandMultiUppercaseNormalization(t *testing.T) {
	res := expand(t, ExpandInput{Start: 0, End: 1, Text: "TH", Input: []rune("Ѳе")})
	if res.Text != "Th" {
		t.Fatalf("got %q, want title-cased \"Th\"", res.Text)
	}

	res = expand(t, ExpandInput{Start: 0, End: 1, Text: "TH", Input: []rune("Ѳе"), NoCapitalization: true})
	if res.Text != "TH" {
		t.Fatalf("ablation flag should leave %q unchanged, got %q", "TH", res.Text)
	}
}

func TestExpandEmptyTargetPassesThrough(t *testing.T) {
	res := expand(t, ExpandInput{Start: 1, End: 2, Text: "", Input: []rune("っと")})
	if res.Text != "" || res.Start != 1 || res.End != 2 {
		t.Fatalf("empty target should be untouched, got %q [%d,%d)", res.Text, res.Start, res.End)
	}
}

func TestExpandSpaceTrimming(t *testing.T) {
	res := expand(t, ExpandInput{Start: 0, End: 1, Text: " x", Input: []rune("あ")})
	if res.Text != "x" {
		t.Fatalf("leading space at position 0 should be trimmed, got %q", res.Text)
	}
}

func TestBraillePrepTogglesOnlyAtBlank(t *testing.T) {
	input := []rune{BrailleUpperMarker, 0x2801, 0x2803, BrailleBlank, 0x2809}
	runs := BraillePrep(input)
	want := []bool{true, true, true, false, false}
	for i, v := range want {
		if runs[i] != v {
			t.Fatalf("position %d: got %v, want %v (run terminates only at U+2800)", i, runs[i], v)
		}
	}
}
