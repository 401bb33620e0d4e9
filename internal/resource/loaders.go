package resource

import (
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/uroman-go/uroman/internal/numdb"
	"github.com/uroman-go/uroman/internal/rule"
	"github.com/uroman-go/uroman/internal/scriptdb"
	"github.com/uroman-go/uroman/internal/uchar"
)

// LoadRomTable parses a romanization-table.txt or romanization-auto-table.txt
// stream into store.
func LoadRomTable(r io.Reader, store *rule.Store, provenance rule.Provenance, log zerolog.Logger, sourceName string) {
	for _, rec := range ParseLines(r, log, sourceName) {
		src, ok := rec.Get("s")
		if !ok {
			log.Warn().Str("file", sourceName).Msg("rule record missing 's' slot, skipping")
			continue
		}
		rr := &rule.Rule{Source: src, Provenance: provenance}
		if t, ok := rec.Get("t"); ok {
			rr.Target = t
			rr.HasTarget = true
		}
		if alts := rec.GetAll("t-alt"); len(alts) > 0 {
			rr.TargetAlts = alts
		}
		if teos, ok := rec.Get("t-end-of-syllable"); ok {
			rr.TargetAtEndOfSyllable = teos
			rr.HasEndOfSyllableTarget = true
		}
		if lcodes := rec.GetAll("lcode"); len(lcodes) > 0 {
			rr.LanguageCodes = make(map[string]bool, len(lcodes))
			for _, l := range lcodes {
				rr.LanguageCodes[l] = true
			}
		}
		rr.UseOnlyAtStartOfWord = rec.Has("use-only-at-start-of-word")
		rr.DontUseAtStartOfWord = rec.Has("dont-use-at-start-of-word")
		rr.UseOnlyAtEndOfWord = rec.Has("use-only-at-end-of-word")
		rr.DontUseAtEndOfWord = rec.Has("dont-use-at-end-of-word")
		rr.UseOnlyForWholeWord = rec.Has("use-only-for-whole-word")
		rr.IsMinusSign = rec.Has("is-minus-sign")
		rr.IsPlusSign = rec.Has("is-plus-sign")
		rr.IsDecimalPoint = rec.Has("is-decimal-point")
		rr.IsLargePower = rec.Has("is-large-power")
		if v, ok := rec.Get("fraction-connector"); ok {
			rr.FractionConnector = v
		}
		if v, ok := rec.Get("percentage-marker"); ok {
			rr.PercentageMarker = v
		}
		if v, ok := rec.Get("int-frac-connector"); ok {
			rr.IntFracConnector = v
		}
		if v, ok := rec.Get("num"); ok {
			if nv, ok := parseNum(v); ok {
				rr.Num = &nv
			} else {
				log.Warn().Str("file", sourceName).Str("num", v).Msg("unparseable numeric field, rule registered without it")
			}
		}
		store.Insert(rr)
	}
}

func parseNum(v string) (rule.NumValue, bool) {
	if strings.Contains(v, "/") {
		parts := strings.SplitN(v, "/", 2)
		n, err1 := strconv.ParseInt(parts[0], 10, 64)
		d, err2 := strconv.ParseInt(parts[1], 10, 64)
		if err1 != nil || err2 != nil {
			return rule.NumValue{}, false
		}
		return rule.NumValue{Kind: rule.NumFraction, FracNum: n, FracDenom: d}, true
	}
	if strings.Contains(v, ".") {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return rule.NumValue{}, false
		}
		return rule.NumValue{Kind: rule.NumFloat, Float: f}, true
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return rule.NumValue{}, false
	}
	return rule.NumValue{Kind: rule.NumInt, Int: n}, true
}

// LoadUnicodeOverwrite parses UnicodeDataOverwrite.txt: per-character
// overrides for romanization and display name, registering an
// overwrite-provenance rule for each "r" slot present. Other slots, such
// as syllable info, are not read.
func LoadUnicodeOverwrite(r io.Reader, store *rule.Store, names *uchar.NameTable, log zerolog.Logger, sourceName string) {
	for _, rec := range ParseLines(r, log, sourceName) {
		u, ok := rec.Get("u")
		if !ok {
			continue
		}
		cp, ok := ParseHexRune(u)
		if !ok {
			log.Warn().Str("file", sourceName).Str("u", u).Msg("unparseable codepoint, skipping")
			continue
		}
		if name, ok := rec.Get("name"); ok && names != nil {
			names.Set(cp, name)
		}
		if rom, ok := rec.Get("r"); ok {
			store.Insert(&rule.Rule{Source: string(cp), Target: rom, HasTarget: true, Provenance: rule.ProvenanceOverwrite})
		}
	}
}

// LoadUnicodeDataDecomp parses the supplemental UnicodeDataDecomp.txt
// table carrying the compatibility-decomposition format tag
// golang.org/x/text/unicode/norm doesn't expose.
func LoadUnicodeDataDecomp(r io.Reader, table *uchar.DecompTable, log zerolog.Logger, sourceName string) {
	for _, rec := range ParseLines(r, log, sourceName) {
		u, ok := rec.Get("u")
		if !ok {
			continue
		}
		cp, ok := ParseHexRune(u)
		if !ok {
			log.Warn().Str("file", sourceName).Str("u", u).Msg("unparseable codepoint, skipping")
			continue
		}
		decomp, _ := rec.Get("decomp")
		tag, _ := rec.Get("tag")
		table.Set(cp, decomp, tag)
	}
}

// LoadScripts parses Scripts.txt into store.
func LoadScripts(r io.Reader, store *scriptdb.Store, log zerolog.Logger, sourceName string) {
	byName := make(map[string]*scriptdb.Script)
	for _, rec := range ParseLines(r, log, sourceName) {
		name, ok := rec.Get("script-name")
		if !ok {
			continue
		}
		sc, exists := byName[name]
		if !exists {
			sc = &scriptdb.Script{Name: name}
			byName[name] = sc
		}
		if alt, ok := rec.Get("alt-script-name"); ok {
			sc.AltNames = append(sc.AltNames, alt)
		}
		if lang, ok := rec.Get("language"); ok {
			sc.Languages = append(sc.Languages, lang)
		}
		if dir, ok := rec.Get("direction"); ok {
			sc.Direction = dir
		}
		if v, ok := rec.Get("abugida-default-vowel"); ok {
			sc.AbugidaDefaultVowels = append(sc.AbugidaDefaultVowels, v)
		}
	}
	for _, sc := range byName {
		store.AddScript(sc)
	}
}

// LoadUnicodeProps parses a UnicodeDataProps*.txt stream, recording
// per-character script assignments and vowel-sign/medial/virama flags into
// a callback-supplied sink (kept generic since those flags live across
// algo/uchar, not a single store).
type PropsSink struct {
	SetScript    func(r rune, scriptName string)
	SetVowelSign func(r rune)
	SetMedial    func(r rune)
	SetVirama    func(r rune)
}

func LoadUnicodeProps(r io.Reader, sink PropsSink, log zerolog.Logger, sourceName string) {
	for _, rec := range ParseLines(r, log, sourceName) {
		charStr, ok := rec.Get("char")
		if !ok || charStr == "" {
			continue
		}
		runes := []rune(charStr)
		c := runes[0]
		if script, ok := rec.Get("script-name"); ok && sink.SetScript != nil {
			sink.SetScript(c, script)
		}
		if rec.Has("vowel-sign") && sink.SetVowelSign != nil {
			sink.SetVowelSign(c)
		}
		if rec.Has("medial-consonant-sign") && sink.SetMedial != nil {
			sink.SetMedial(c)
		}
		if rec.Has("sign-virama") && sink.SetVirama != nil {
			sink.SetVirama(c)
		}
	}
}

// numPropsJSON mirrors one NumProps.jsonl record.
type numPropsJSON struct {
	Text         string  `json:"txt"`
	Rom          string  `json:"rom"`
	Value        float64 `json:"value"`
	Fraction     string  `json:"fraction"`
	Type         string  `json:"type"`
	IsLargePower bool    `json:"is-large-power"`
	Base         int64   `json:"base"`
	Multiplier   int64   `json:"mult"`
	Script       string  `json:"script"`
}

// LoadNumProps parses NumProps.jsonl, one JSON object per line, into store.
func LoadNumProps(r io.Reader, store *numdb.Store, log zerolog.Logger, sourceName string) {
	sc := newLineScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var rec numPropsJSON
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			log.Warn().Str("file", sourceName).Int("line", lineNo).Err(err).Msg("unparseable NumProps record, skipping")
			continue
		}
		runes := []rune(rec.Text)
		if len(runes) == 0 {
			continue
		}
		var fracNum, fracDenom int64
		hasFraction := false
		if rec.Fraction != "" {
			parts := strings.SplitN(rec.Fraction, "/", 2)
			if len(parts) == 2 {
				n, err1 := strconv.ParseInt(parts[0], 10, 64)
				d, err2 := strconv.ParseInt(parts[1], 10, 64)
				if err1 == nil && err2 == nil {
					fracNum, fracDenom, hasFraction = n, d, true
				}
			}
		}
		isFloat := rec.Value != float64(int64(rec.Value))
		if rec.Base == 0 {
			// Digits and digit-likes carry no explicit base; they act as
			// base-1 multipliers in the G1/G2 stages.
			rec.Base = 1
		}
		store.Add(runes[0], &numdb.Props{
			Text:         rec.Text,
			Rom:          rec.Rom,
			IsFloat:      isFloat,
			ValueInt:     int64(rec.Value),
			ValueFloat:   rec.Value,
			HasFraction:  hasFraction,
			FracNum:      fracNum,
			FracDenom:    fracDenom,
			Type:         numdb.Type(rec.Type),
			IsLargePower: rec.IsLargePower,
			Base:         rec.Base,
			Multiplier:   rec.Multiplier,
			Script:       rec.Script,
		})
	}
}

// LoadChinesePinyin parses Chinese_to_Pinyin.txt (hanzi<TAB>pinyin-with-tone
// lines) into store as pinyin-provenance rules, de-accenting the tone marks via
// uchar.StripAccents.
func LoadChinesePinyin(r io.Reader, store *rule.Store, log zerolog.Logger, sourceName string) {
	sc := newLineScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r\n")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "\t", 2)
		if len(parts) != 2 {
			log.Warn().Str("file", sourceName).Int("line", lineNo).Msg("malformed pinyin line, skipping")
			continue
		}
		hanzi, pinyin := parts[0], strings.TrimSpace(parts[1])
		rom := uchar.StripAccents(pinyin)
		store.Insert(&rule.Rule{Source: hanzi, Target: rom, HasTarget: true, Provenance: rule.ProvenancePinyin})
	}
}
