package uroman

import (
	"regexp"
	"sort"
	"unicode/utf8"

	"github.com/uroman-go/uroman/internal/engine"
	"github.com/uroman-go/uroman/internal/lattice"
)

// RomEdge is the public shape of a lattice edge: a [Start,End) span of the
// *original* input (after any dispatcher offset has been re-applied), the
// romanized fragment it produced, and the tag recording how.
type RomEdge struct {
	Start, End int
	Text       string
	Type       string
}

// Result is what RomanizeString returns. Str is always populated; Edges is
// nil under FormatSTR and populated under FormatEdges/FormatAlts/
// FormatLattice.
type Result struct {
	Str   string
	Edges []RomEdge
}

// boundaryRe is the dispatcher's chunk-boundary pattern:
// zero or more of [.,; ], then one of { U+0020, U+3000, U+0F0B }, then zero
// or more of [.,; ] again. Preserved verbatim, greediness included, per the
// REDESIGN FLAGS note that this regex's behavior on consecutive delimiters
// is load-bearing and must not be "fixed".
var boundaryRe = regexp.MustCompile(`[.,; ]*[ \x{3000}\x{0F0B}][.,; ]*`)

// RomanizeString romanizes text under a language hint (an ISO 639-3 code,
// or "" for none) and output format, splitting on dispatcher boundaries and
// consulting/populating the per-chunk cache for each piece.
func (u *Uroman) RomanizeString(text string, lang string, format RomFormat) Result {
	pieces := splitDispatcherChunks(text)

	var str string
	var edges []RomEdge
	for _, p := range pieces {
		entry := u.romanizeChunkCached(p.runes, lang, format)
		str += entry.Str
		for _, e := range entry.Edges {
			edges = append(edges, RomEdge{
				Start: e.Start + p.offset,
				End:   e.End + p.offset,
				Text:  e.Text,
				Type:  e.Type,
			})
		}
	}
	return Result{Str: str, Edges: edges}
}

// romanizeChunkCached is one dispatcher piece's worth of work: a cache
// lookup, falling back to a full lattice Build on miss, storing the result
// (position-relative) for next time.
func (u *Uroman) romanizeChunkCached(runes []rune, lang string, format RomFormat) engine.CacheEntry {
	key := engine.CacheKey{Text: string(runes), Lang: lang, Format: int(format)}
	if entry, ok := u.cache.Get(key); ok {
		return entry
	}

	entry := u.buildChunk(runes, lang, format)
	u.cache.Put(key, entry)
	return entry
}

func (u *Uroman) buildChunk(runes []rune, lang string, format RomFormat) engine.CacheEntry {
	l, best := engine.Build(u.stores, runes, lang)
	str := lattice.EdgePathToSurf(best)

	if format == FormatSTR {
		return engine.CacheEntry{Str: str}
	}

	var src []*lattice.Edge
	switch format {
	case FormatEdges:
		src = best
	case FormatAlts:
		src = engine.WithAlternatives(u.stores, l, lang, best)
	case FormatLattice:
		all := append([]*lattice.Edge(nil), l.AllEdges()...)
		sort.SliceStable(all, func(i, j int) bool {
			if all[i].Start != all[j].Start {
				return all[i].Start < all[j].Start
			}
			return all[i].End < all[j].End
		})
		src = engine.WithAlternatives(u.stores, l, lang, all)
	}

	out := make([]*engine.CacheEdge, 0, len(src))
	for _, e := range src {
		out = append(out, &engine.CacheEdge{Start: e.Start, End: e.End, Text: e.Text, Type: string(e.Type)})
	}
	return engine.CacheEntry{Str: str, Edges: out}
}

// dispatcherPiece is one chunk produced by splitDispatcherChunks: its runes
// and its rune offset within the original input.
type dispatcherPiece struct {
	runes  []rune
	offset int
}

// splitDispatcherChunks applies boundaryRe to split text into alternating
// pre-delimiter and delimiter pieces. Concatenating every
// piece's runes exactly reconstructs text; each piece is independently
// romanized and cached.
func splitDispatcherChunks(text string) []dispatcherPiece {
	if text == "" {
		return nil
	}
	var pieces []dispatcherPiece
	last := 0
	for _, m := range boundaryRe.FindAllStringIndex(text, -1) {
		if m[0] > last {
			pieces = append(pieces, newPiece(text, last, m[0]))
		}
		pieces = append(pieces, newPiece(text, m[0], m[1]))
		last = m[1]
	}
	if last < len(text) {
		pieces = append(pieces, newPiece(text, last, len(text)))
	}
	return pieces
}

func newPiece(text string, fromByte, toByte int) dispatcherPiece {
	return dispatcherPiece{
		runes:  []rune(text[fromByte:toByte]),
		offset: utf8.RuneCountInString(text[:fromByte]),
	}
}
