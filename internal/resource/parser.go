// Package resource loads the double-colon-format resource files (rule
// tables, script table, Unicode property overrides, number properties) into
// the rule/scriptdb/numdb/uchar stores.
package resource

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Record is one parsed "::slot value ::slot value" line. Single holds the
// last value seen per slot (the common case); All holds every value in
// order, needed for repeatable slots like "t-alt".
type Record struct {
	Single map[string]string
	All    map[string][]string
}

// Get returns a slot's last value and whether it was present.
func (r Record) Get(slot string) (string, bool) {
	v, ok := r.Single[slot]
	return v, ok
}

// GetAll returns every value recorded for slot, in line order.
func (r Record) GetAll(slot string) []string { return r.All[slot] }

// Has reports whether slot was present at all (used for no-value boolean
// flags like "::is-minus-sign").
func (r Record) Has(slot string) bool {
	_, ok := r.Single[slot]
	return ok
}

// ParseLines reads double-colon records from r, skipping blank lines and
// lines starting with '#'. Malformed lines are logged and skipped rather
// than aborting the load.
func ParseLines(r io.Reader, log zerolog.Logger, sourceName string) []Record {
	var out []Record
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r\n")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		trimmed = strings.TrimSpace(stripTrailingComment(trimmed))
		rec, ok := parseRecord(trimmed)
		if !ok {
			log.Warn().Str("file", sourceName).Int("line", lineNo).Msg("unparseable resource line, skipping")
			continue
		}
		out = append(out, rec)
	}
	if err := sc.Err(); err != nil {
		log.Error().Str("file", sourceName).Err(err).Msg("error reading resource file")
	}
	return out
}

// stripTrailingComment removes a trailing "  #..." comment (two or more
// spaces then a hash) from a resource line.
func stripTrailingComment(line string) string {
	for i := 1; i < len(line); i++ {
		if line[i] == '#' && line[i-1] == ' ' {
			j := i - 1
			for j > 0 && line[j-1] == ' ' {
				j--
			}
			if i-j >= 2 {
				return line[:j]
			}
		}
	}
	return line
}

// parseRecord splits a line into ::slot value pairs. A slot with no
// trailing value (e.g. at end of line, or immediately followed by the next
// "::") maps to the empty string.
func parseRecord(line string) (Record, bool) {
	if !strings.HasPrefix(line, "::") {
		return Record{}, false
	}
	fields := strings.Split(line, "::")
	rec := Record{Single: make(map[string]string), All: make(map[string][]string)}
	n := 0
	for _, f := range fields[1:] {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		parts := strings.SplitN(f, " ", 2)
		slot := parts[0]
		value := ""
		if len(parts) == 2 {
			value = strings.TrimSpace(parts[1])
		}
		rec.Single[slot] = value
		rec.All[slot] = append(rec.All[slot], value)
		n++
	}
	if n == 0 {
		return Record{}, false
	}
	return rec, true
}

// newLineScanner returns a bufio.Scanner configured with the same buffer
// sizing as ParseLines, for formats that aren't double-colon records
// (NumProps.jsonl, Chinese_to_Pinyin.txt).
func newLineScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	return sc
}

// ParseHexRune parses a "u" slot value like "0041" or "U+0041" into a rune.
func ParseHexRune(s string) (rune, bool) {
	s = strings.TrimPrefix(s, "U+")
	s = strings.TrimPrefix(s, "u+")
	v, err := strconv.ParseInt(s, 16, 32)
	if err != nil {
		return 0, false
	}
	return rune(v), true
}

