package algo

import (
	"regexp"
	"strings"
	"sync"

	"github.com/uroman-go/uroman/internal/uchar"
)

// viramaByScript gives the combining "kill the inherent vowel" sign for the
// abugidas that use one. Tibetan is handled by its own vowel-placement pass
// (tibetan.go) and is deliberately absent here.
var viramaByScript = map[string]rune{
	"Devanagari": 0x094D,
	"Bengali":    0x09CD,
	"Gurmukhi":   0x0A4D,
	"Gujarati":   0x0ACD,
	"Oriya":      0x0B4D,
	"Tamil":      0x0BCD,
	"Telugu":     0x0C4D,
	"Kannada":    0x0CCD,
	"Malayalam":  0x0D4D,
	"Sinhala":    0x0DCA,
	"Myanmar":    0x1039,
	"Khmer":      0x17D2,
}

// khmerYo is KHMER LETTER YO, which suppresses the preceding consonant's
// inherent vowel.
const khmerYo = 0x1799

// isSubjoinedLetter covers scripts (besides Tibetan) that stack a
// reduced-form consonant under the preceding one instead of using a virama.
func isSubjoinedLetter(r rune) bool {
	return r >= 0xAA60 && r <= 0xAA7F // Myanmar Extended-A medial/subjoined shan forms
}

var allConsonantsPattern = regexp.MustCompile(`^[bcdfghjklmnpqrstvwxyz]+$`)

// abugidaSplit is a target's decomposition into a consonant base, the base
// with the inherent vowel appended, and the possibly-trimmed original. It
// depends only on (script, target, span length), so it is cached; the
// positional decision below is recomputed per occurrence.
type abugidaSplit struct {
	base  string
	plus  string
	mod   string
	valid bool
}

// AbugidaCache memoizes target splits by (script, target), shared across
// lattices within one Uroman instance.
type AbugidaCache struct {
	mu       sync.Mutex
	splits   map[string]abugidaSplit
	patterns map[string][2]*regexp.Regexp
}

func NewAbugidaCache() *AbugidaCache {
	return &AbugidaCache{
		splits:   make(map[string]abugidaSplit),
		patterns: make(map[string][2]*regexp.Regexp),
	}
}

func (c *AbugidaCache) key(script, t string) string { return script + "\x00" + t }

// vowelPatterns returns the per-script target-splitting regexes, built from
// the script's default vowel list: a y-glide form tried first, then a plain
// consonant-cluster form.
func (c *AbugidaCache) vowelPatterns(script string, vowels []string) [2]*regexp.Regexp {
	if p, ok := c.patterns[script]; ok {
		return p
	}
	plusAlts := make([]string, len(vowels))
	for i, v := range vowels {
		plusAlts[i] = v + "+"
	}
	yGlide := regexp.MustCompile(`^([cfghkmnqrstxy]?y)(` + strings.Join(plusAlts, "|") + `)-?$`)
	cluster := regexp.MustCompile(`^([bcdfghjklmnpqrstvwxyz]+)(` + strings.Join(vowels, "|") + `)-?$`)
	p := [2]*regexp.Regexp{yGlide, cluster}
	c.patterns[script] = p
	return p
}

func (c *AbugidaCache) split(script string, vowels []string, t string, singleChar bool) abugidaSplit {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := c.key(script, t)
	if s, ok := c.splits[key]; ok {
		return s
	}
	pats := c.vowelPatterns(script, vowels)
	s := abugidaSplit{mod: t}
	if m := pats[0].FindStringSubmatch(t); m != nil {
		s.base = m[1]
		s.plus = m[1] + m[2]
	} else if m := pats[1].FindStringSubmatch(t); m != nil {
		s.base = m[1]
		s.plus = m[1] + m[2]
		if strings.HasSuffix(t, "-") && singleChar && len(t) > 0 && isASCIILetter(t[0]) {
			s.mod = t[:len(t)-1]
		}
	} else {
		s.base = t
		s.plus = t + vowels[0]
	}
	s.valid = allConsonantsPattern.MatchString(s.base) || (script == "Tibetan" && s.base == "'")
	c.splits[key] = s
	return s
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// VowelContext bundles the lattice-position information the default-vowel
// policy consults, without coupling this package to internal/lattice.
type VowelContext struct {
	Script           string
	Language         string
	DefaultVowels    []string
	SingleChar       bool
	NextChar         rune
	HasNextChar      bool
	CharAfterNext    rune
	HasCharAfterNext bool
	PrevChar         rune
	HasPrevChar      bool
	PrevScript       string
	NextScript       string
	AtStartOfWord    bool
	AtEndOfWord      bool
	LastInputChar    rune
	LastCharName     string

	// TibetanVowel / TibetanDelete are the per-position flags the Tibetan
	// vowel-placement pass precomputed for the span's start; they replace
	// the positional cascade below for Tibetan text.
	TibetanVowel  bool
	TibetanDelete bool

	// Signs is the per-character vowel-sign/medial/virama table loaded from
	// UnicodeDataProps*.txt. May be nil, in which case every sign lookup
	// below reports false.
	Signs *uchar.CharSigns
}

// ApplyAbugidaVowel implements abugida default-vowel insertion, returning
// the possibly-rewritten target. T is returned unchanged (modulo a trimmed
// trailing dash) whenever its consonant base does not qualify, or the
// first-match cascade below falls through undecided.
func ApplyAbugidaVowel(cache *AbugidaCache, ctx VowelContext, t string) string {
	if len(ctx.DefaultVowels) == 0 {
		return t
	}
	s := cache.split(ctx.Script, ctx.DefaultVowels, t, ctx.SingleChar)
	if !s.valid {
		return s.mod
	}
	return decideAbugidaVowel(ctx, s)
}

func decideAbugidaVowel(ctx VowelContext, s abugidaSplit) string {
	base, plus, mod := s.base, s.plus, s.mod

	if ctx.Script == "Tibetan" {
		switch {
		case ctx.TibetanDelete:
			return ""
		case ctx.TibetanVowel:
			return plus
		}
		return base
	}

	switch {
	case ctx.HasNextChar && ctx.NextChar == khmerYo && isKhmerYoBase(base):
		return base
	case ctx.HasNextChar && ctx.Signs.IsVowelSign(ctx.NextChar):
		return base
	case ctx.HasNextChar && ctx.Signs.IsMedial(ctx.NextChar):
		return base
	case ctx.HasNextChar && isSubjoinedLetter(ctx.NextChar):
		return base
	case ctx.HasNextChar && uchar.IsNonspacingMark(ctx.NextChar) && ctx.HasCharAfterNext &&
		(ctx.Signs.IsVowelSign(ctx.CharAfterNext) || isVirama(ctx.Signs, ctx.Script, ctx.CharAfterNext)):
		return base
	case ctx.HasNextChar && isVirama(ctx.Signs, ctx.Script, ctx.NextChar):
		return base
	case ctx.HasPrevChar && isVirama(ctx.Signs, ctx.Script, ctx.PrevChar):
		return plus
	case ctx.AtStartOfWord && !containsRVowel(mod):
		return plus
	case ctx.AtEndOfWord:
		if ctx.Script == "Devanagari" && ctx.Language != "san" {
			return mod
		}
		if isNoDefaultVowelAtEndLang(ctx.Language) {
			return mod
		}
		return plus
	case ctx.PrevScript != ctx.Script:
		return plus
	case strings.Contains(ctx.LastCharName, "VOCALIC"):
		return base
	case ctx.HasNextChar && ctx.NextScript == ctx.Script:
		return plus
	}
	return mod
}

// isKhmerYoBase limits the Khmer yo rule to plain single-consonant bases
// plus "ng".
func isKhmerYoBase(base string) bool {
	if base == "ng" {
		return true
	}
	return len(base) == 1 && strings.ContainsAny(base, "bcdfghklmnpqrstvwz")
}

func containsRVowel(t string) bool {
	for i := 0; i+1 < len(t); i++ {
		if t[i] == 'r' && strings.ContainsRune("aeiou", rune(t[i+1])) {
			return true
		}
	}
	return false
}

func isNoDefaultVowelAtEndLang(lang string) bool {
	switch lang {
	case "asm", "ben", "guj", "kas", "pan":
		return true
	}
	return false
}

// isVirama reports whether r is the inherent-vowel-killer sign for script,
// preferring the per-character table loaded from UnicodeDataProps*.txt and
// falling back to the single-codepoint-per-script table above for scripts
// the sample resource data doesn't yet cover.
func isVirama(signs *uchar.CharSigns, script string, r rune) bool {
	if signs.IsVirama(r) {
		return true
	}
	v, ok := viramaByScript[script]
	return ok && v == r
}
