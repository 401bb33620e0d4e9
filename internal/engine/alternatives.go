package engine

import (
	"regexp"
	"strings"

	"github.com/uroman-go/uroman/internal/lattice"
)

// altKey is the dedup key for alternative generation: (start, end, text).
type altKey struct {
	start, end int
	text       string
}

// coreSuffixRe extracts the pre-abugida core and inserted vowel suffix that
// coreSuffixTag recorded in an edge's type.
var coreSuffixRe = regexp.MustCompile(`\bc:([a-z]+) s:([a-z]+)\b`)

// WithAlternatives returns edges with rule-alternative edges inserted after
// each one they annotate. For every valid rule over an edge's source text:
// the rule's alternate targets become rom-alt edges when its main target
// matches the edge's text (or the pre-abugida core, with the inserted vowel
// suffix re-appended); its end-of-syllable target becomes a rom-alt2 edge
// when the main target was the one chosen; and its main target becomes a
// rom-alt3 edge when the end-of-syllable target was the one chosen.
// Duplicates are suppressed by (start, end, text), seeded with the input
// edges themselves.
func WithAlternatives(st *Stores, l *lattice.Lattice, lang string, edges []*lattice.Edge) []*lattice.Edge {
	seen := make(map[altKey]bool, len(edges))
	for _, e := range edges {
		seen[altKey{e.Start, e.End, e.Text}] = true
	}

	out := make([]*lattice.Edge, 0, len(edges))
	for _, e := range edges {
		out = append(out, e)
		if strings.HasPrefix(string(e.Type), "rom-alt") {
			continue
		}
		if e.Start < 0 || e.End > l.Len() || e.Start >= e.End {
			continue
		}
		src := string(l.Input[e.Start:e.End])

		core, suffix := "", ""
		if m := coreSuffixRe.FindStringSubmatch(string(e.Type)); m != nil {
			core, suffix = m[1], m[2]
		}

		addAlt := func(text string, t lattice.EdgeType) {
			k := altKey{e.Start, e.End, text}
			if seen[k] {
				return
			}
			seen[k] = true
			out = append(out, lattice.NewEdge(e.Start, e.End, text, t))
		}

		for _, r := range filterValid(l, st.Rules.Lookup(src), e.Start, e.End, lang) {
			if (r.Target == e.Text || (core != "" && r.Target == core)) && len(r.TargetAlts) > 0 {
				for _, alt := range r.TargetAlts {
					text := alt
					if suffix != "" && r.Target == core {
						text += suffix
					}
					addAlt(text, lattice.TypeRomAlt)
				}
			}
			if r.HasEndOfSyllableTarget && r.Target == e.Text {
				addAlt(r.TargetAtEndOfSyllable, lattice.TypeRomAlt2)
			}
			if r.HasEndOfSyllableTarget && r.TargetAtEndOfSyllable == e.Text {
				addAlt(r.Target, lattice.TypeRomAlt3)
			}
		}
	}
	return out
}
