package resource

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/uroman-go/uroman/internal/scriptdb"
)

func newScriptStoreForTest(t *testing.T, input string) *scriptdb.Store {
	t.Helper()
	store := scriptdb.NewStore()
	LoadScripts(strings.NewReader(input), store, zerolog.Nop(), "test")
	return store
}

func parse(t *testing.T, input string) []Record {
	t.Helper()
	return ParseLines(strings.NewReader(input), zerolog.Nop(), "test")
}

func TestParseLinesBasicRecord(t *testing.T) {
	recs := parse(t, "::s abc ::t xyz ::lcode ukr\n")
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1", len(recs))
	}
	r := recs[0]
	if v, _ := r.Get("s"); v != "abc" {
		t.Errorf("s = %q, want abc", v)
	}
	if v, _ := r.Get("t"); v != "xyz" {
		t.Errorf("t = %q, want xyz", v)
	}
	if v, _ := r.Get("lcode"); v != "ukr" {
		t.Errorf("lcode = %q, want ukr", v)
	}
}

func TestParseLinesEmptySlotValue(t *testing.T) {
	recs := parse(t, "::s x ::t ::is-minus-sign\n")
	r := recs[0]
	v, ok := r.Get("t")
	if !ok || v != "" {
		t.Fatalf("empty slot value: got %q present=%v, want \"\" present", v, ok)
	}
	if !r.Has("is-minus-sign") {
		t.Fatal("flag slot with no value should register as present")
	}
}

func TestParseLinesRepeatedSlot(t *testing.T) {
	recs := parse(t, "::s x ::t-alt one ::t-alt two\n")
	alts := recs[0].GetAll("t-alt")
	if len(alts) != 2 || alts[0] != "one" || alts[1] != "two" {
		t.Fatalf("GetAll(t-alt) = %v, want [one two]", alts)
	}
}

func TestParseLinesSkipsCommentsAndBlanks(t *testing.T) {
	recs := parse(t, "# a comment\n\n   \n::s x ::t y\n")
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1", len(recs))
	}
}

func TestParseLinesStripsTrailingComment(t *testing.T) {
	recs := parse(t, "::s x ::t y  # trailing note\n")
	if v, _ := recs[0].Get("t"); v != "y" {
		t.Fatalf("t = %q, want \"y\" with trailing comment stripped", v)
	}
}

func TestParseLinesSingleSpaceHashIsNotAComment(t *testing.T) {
	recs := parse(t, "::s x ::t y #z\n")
	if v, _ := recs[0].Get("t"); v != "y #z" {
		t.Fatalf("t = %q, want \"y #z\" (one space does not start a comment)", v)
	}
}

func TestParseHexRune(t *testing.T) {
	cases := map[string]rune{"0041": 'A', "U+00BD": 0x00BD, "1799": 0x1799}
	for in, want := range cases {
		got, ok := ParseHexRune(in)
		if !ok || got != want {
			t.Errorf("ParseHexRune(%q) = %U ok=%v, want %U", in, got, ok, want)
		}
	}
	if _, ok := ParseHexRune("xyz"); ok {
		t.Error("ParseHexRune should reject non-hex input")
	}
}

func TestLoadScriptsGroupsByName(t *testing.T) {
	input := "::script-name Devanagari ::direction ltr ::language hin ::abugida-default-vowel a\n" +
		"::script-name Devanagari ::language san\n"
	store := newScriptStoreForTest(t, input)
	sc, ok := store.Lookup("devanagari")
	if !ok {
		t.Fatal("script not found under case-insensitive name")
	}
	if len(sc.Languages) != 2 {
		t.Fatalf("languages = %v, want both hin and san merged", sc.Languages)
	}
	if len(sc.AbugidaDefaultVowels) != 1 || sc.AbugidaDefaultVowels[0] != "a" {
		t.Fatalf("abugida default vowels = %v, want [a]", sc.AbugidaDefaultVowels)
	}
}
