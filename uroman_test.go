package uroman

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func mustLoad(t *testing.T) *Uroman {
	t.Helper()
	u, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	return u
}

func TestRomanizeString_CyrillicLanguageOverride(t *testing.T) {
	u := mustLoad(t)

	if got := u.RomanizeString("Игорь", "", FormatSTR).Str; got != "Igor" {
		t.Fatalf("RomanizeString(Игорь, no lcode) = %q, want \"Igor\"", got)
	}
	if got := u.RomanizeString("Игорь", "ukr", FormatSTR).Str; got != "Ihor" {
		t.Fatalf("RomanizeString(Игорь, ukr) = %q, want \"Ihor\"", got)
	}
}

func TestRomanizeString_HanFraction(t *testing.T) {
	u := mustLoad(t)

	res := u.RomanizeString("三分之二", "", FormatSTR)
	if res.Str != "2/3" {
		t.Fatalf("RomanizeString(三分之二) = %q, want \"2/3\"", res.Str)
	}
}

func TestRomanizeString_EdgesCoverFullSpan(t *testing.T) {
	u := mustLoad(t)

	res := u.RomanizeString("Игорь", "ukr", FormatEdges)
	if len(res.Edges) == 0 {
		t.Fatal("expected at least one edge")
	}
	if res.Edges[0].Start != 0 {
		t.Fatalf("first edge starts at %d, want 0", res.Edges[0].Start)
	}
	last := res.Edges[len(res.Edges)-1]
	if last.End != 5 { // len([]rune("Игорь"))
		t.Fatalf("last edge ends at %d, want 5", last.End)
	}
}

// Round-trip: printable ASCII that carries no romanization rules of its own
// should pass through unchanged.
func TestRomanizeString_ASCIIRoundTrip(t *testing.T) {
	u := mustLoad(t)

	for _, s := range []string{"hello world", "Go 1.23", "test-case_42"} {
		if got := u.RomanizeString(s, "", FormatSTR).Str; got != s {
			t.Fatalf("RomanizeString(%q) = %q, want unchanged", s, got)
		}
	}
}

func TestRomanizeString_DispatcherReconstructsInput(t *testing.T) {
	text := "Игорь, три. три"
	pieces := splitDispatcherChunks(text)

	var rebuilt strings.Builder
	for _, p := range pieces {
		rebuilt.WriteString(string(p.runes))
	}
	if rebuilt.String() != text {
		t.Fatalf("dispatcher pieces reconstruct to %q, want %q", rebuilt.String(), text)
	}
}

func TestRomanizeString_CacheIsIdempotent(t *testing.T) {
	u := mustLoad(t)

	first := u.RomanizeString("Игорь", "ukr", FormatEdges)
	second := u.RomanizeString("Игорь", "ukr", FormatEdges)
	if first.Str != second.Str {
		t.Fatalf("cached result %q differs from first result %q", second.Str, first.Str)
	}
	if len(first.Edges) != len(second.Edges) {
		t.Fatalf("cached edge count %d differs from first %d", len(second.Edges), len(first.Edges))
	}
	for i := range first.Edges {
		if first.Edges[i] != second.Edges[i] {
			t.Fatalf("cached edge[%d] = %+v, want %+v", i, second.Edges[i], first.Edges[i])
		}
	}
}

func TestDecodeUnicodeEscapes(t *testing.T) {
	got := DecodeUnicodeEscapes(`caf\u00e9 \u0418`)
	if got != "café И" {
		t.Fatalf("DecodeUnicodeEscapes = %q, want the escapes decoded", got)
	}
	if got := DecodeUnicodeEscapes("plain"); got != "plain" {
		t.Fatalf("DecodeUnicodeEscapes(plain) = %q, want unchanged", got)
	}
}

// A consonant at the end of a syllable (here, end of string, immediately
// after another consonant with nothing vowel-like following) renders its
// bare end-of-syllable target instead of the inherent-vowel target.
func TestRomanizeString_ThaiEndOfSyllable(t *testing.T) {
	u := mustLoad(t)

	if got := u.RomanizeString("ตก", "", FormatSTR).Str; got != "tak" {
		t.Fatalf("RomanizeString(ตก) = %q, want \"tak\"", got)
	}
}

func TestRomanizeString_JapaneseSokuonAndLengthener(t *testing.T) {
	u := mustLoad(t)

	if got := u.RomanizeString("ちょっとまってください", "", FormatSTR).Str; got != "chottomattekudasai" {
		t.Fatalf("RomanizeString(ちょっとまってください) = %q, want \"chottomattekudasai\"", got)
	}
}

func TestRomanizeString_DevanagariDefaultVowelAndVirama(t *testing.T) {
	u := mustLoad(t)

	got := u.RomanizeString("यह एक अच्छा अनुवाद है.", "hin", FormatSTR).Str
	if got != "yah ek achchha anuvad hai." {
		t.Fatalf("RomanizeString(Devanagari, hin) = %q, want \"yah ek achchha anuvad hai.\"", got)
	}
}

func TestRomanizeString_ArabicAbjad(t *testing.T) {
	u := mustLoad(t)

	if got := u.RomanizeString("ألاسكا", "", FormatSTR).Str; got != "alaska" {
		t.Fatalf("RomanizeString(ألاسكا) = %q, want \"alaska\"", got)
	}
}

func TestRomanizeString_BrailleNumbers(t *testing.T) {
	u := mustLoad(t)

	if got := u.RomanizeString("⠼⠁⠃⠉", "", FormatSTR).Str; got != "123" {
		t.Fatalf("RomanizeString(⠼⠁⠃⠉) = %q, want \"123\"", got)
	}
}

func TestRomanizeString_FractionDecomposition(t *testing.T) {
	u := mustLoad(t)

	if got := u.RomanizeString("½", "", FormatSTR).Str; got != "1/2" {
		t.Fatalf("RomanizeString(½) = %q, want \"1/2\"", got)
	}
	if got := u.RomanizeString("23½", "", FormatSTR).Str; got != "23 1/2" {
		t.Fatalf("RomanizeString(23½) = %q, want \"23 1/2\" with a cushion space", got)
	}
}

func TestRomanizeString_Idempotence(t *testing.T) {
	u := mustLoad(t)

	for _, s := range []string{"Игорь", "三分之二", "ちょっとまって", "23½"} {
		once := u.RomanizeString(s, "", FormatSTR).Str
		twice := u.RomanizeString(once, "", FormatSTR).Str
		if twice != once {
			t.Fatalf("romanization of %q is not idempotent: %q -> %q", s, once, twice)
		}
	}
}

func TestRomanizeString_AltsCarryRuleAlternatives(t *testing.T) {
	u := mustLoad(t)

	res := u.RomanizeString("ж", "", FormatAlts)
	if res.Str != "zh" {
		t.Fatalf("Str = %q, want \"zh\"", res.Str)
	}
	if len(res.Edges) != 2 {
		t.Fatalf("got %d edges, want the primary plus one alternative", len(res.Edges))
	}
	if res.Edges[1].Text != "j" || res.Edges[1].Type != "rom-alt" {
		t.Fatalf("alternative edge = %+v, want text \"j\" tagged rom-alt", res.Edges[1])
	}
}

func TestRomanizeString_DispatcherMatchesWholeString(t *testing.T) {
	u, err := Load(WithCacheSize(0))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	text := "Игорь, ちょっと. три"
	whole := u.RomanizeString(text, "", FormatSTR).Str
	var pieced strings.Builder
	for _, p := range splitDispatcherChunks(text) {
		pieced.WriteString(u.RomanizeString(string(p.runes), "", FormatSTR).Str)
	}
	if pieced.String() != whole {
		t.Fatalf("piecewise romanization %q differs from whole-string %q", pieced.String(), whole)
	}
}

func TestRomanizeFile_LcodeLineOverride(t *testing.T) {
	u := mustLoad(t)

	var out bytes.Buffer
	in := strings.NewReader("::lcode ukr Игорь\nИгорь\n")
	if err := u.RomanizeFile(in, &out, "", FormatSTR, FileOptions{Silent: true}); err != nil {
		t.Fatalf("RomanizeFile error: %v", err)
	}
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d output lines, want 2", len(lines))
	}
	if lines[0] != "::lcode ukr Ihor" {
		t.Fatalf("override line = %q, want \"::lcode ukr Ihor\" with the prefix preserved", lines[0])
	}
	if lines[1] != "Igor" {
		t.Fatalf("plain line = %q, want \"Igor\" (no override)", lines[1])
	}
}

func TestRomanizeFile_EdgesFormatEmitsMetaEdge(t *testing.T) {
	u := mustLoad(t)

	var out bytes.Buffer
	in := strings.NewReader("::lcode ukr Игорь\n")
	if err := u.RomanizeFile(in, &out, "", FormatEdges, FileOptions{Silent: true}); err != nil {
		t.Fatalf("RomanizeFile error: %v", err)
	}
	var rows [][]interface{}
	if err := json.Unmarshal(out.Bytes(), &rows); err != nil {
		t.Fatalf("output is not a JSON edge array: %v\n%s", err, out.String())
	}
	if len(rows) < 2 {
		t.Fatalf("got %d rows, want a meta edge plus romanization edges", len(rows))
	}
	meta := rows[0]
	if meta[0] != float64(0) || meta[1] != float64(0) || meta[3] != "lcode: ukr" {
		t.Fatalf("meta edge = %v, want [0,0,\"\",\"lcode: ukr\"]", meta)
	}
}

// CJK block numerals: multiplier*base, block sums, large powers, gap-null
// zeros, and the bare trailing digit that stands for the next lower decimal
// position after a big base (千三 is thirteen hundred, not 1003).
func TestRomanizeString_CJKNumberBlocks(t *testing.T) {
	u := mustLoad(t)

	cases := []struct{ in, want string }{
		{"三百", "300"},
		{"三千", "3000"},
		{"千三", "1300"},
		{"二万三", "23000"},
		{"千零七", "1007"},
	}
	for _, tc := range cases {
		if got := u.RomanizeString(tc.in, "", FormatSTR).Str; got != tc.want {
			t.Errorf("RomanizeString(%s) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

// ALTS pairs a rule's main and end-of-syllable targets: the not-chosen
// variant of the pair surfaces as rom-alt2 (end-of-syllable target, when
// the main target won) or rom-alt3 (main target, when the end-of-syllable
// target won).
func TestRomanizeString_AltsEndOfSyllablePairing(t *testing.T) {
	u := mustLoad(t)

	res := u.RomanizeString("ตก", "", FormatAlts)
	if res.Str != "tak" {
		t.Fatalf("Str = %q, want \"tak\"", res.Str)
	}
	var alt2, alt3 *RomEdge
	for i := range res.Edges {
		switch res.Edges[i].Type {
		case "rom-alt2":
			alt2 = &res.Edges[i]
		case "rom-alt3":
			alt3 = &res.Edges[i]
		}
	}
	if alt2 == nil || alt2.Start != 0 || alt2.End != 1 || alt2.Text != "t" {
		t.Fatalf("rom-alt2 = %+v, want the unchosen end-of-syllable target \"t\" over [0,1)", alt2)
	}
	if alt3 == nil || alt3.Start != 1 || alt3.End != 2 || alt3.Text != "ka" {
		t.Fatalf("rom-alt3 = %+v, want the unchosen main target \"ka\" over [1,2)", alt3)
	}
}
