// Package lattice implements the character-indexed edge lattice: the DAG of
// candidate romanization spans over one input chunk, plus best-path and
// alternative-edge search.
package lattice

import "math/big"

// EdgeType tags an edge with how it was produced. It is a typed string
// rather than a closed enum because the taxonomy is compositional (e.g.
// "rom exp", "G4tag", "fraction -"); the constants below are the core
// vocabulary this engine produces, in deterministic insertion order.
type EdgeType string

const (
	TypeRom        EdgeType = "rom"
	TypeRomTail    EdgeType = "rom tail"
	TypeRomExp     EdgeType = "rom exp"
	TypeRomDel     EdgeType = "rom del"
	TypeRomDecomp  EdgeType = "rom decomp"
	TypeRomSingle  EdgeType = "rom single"
	TypeOrig       EdgeType = "orig"
	TypeNonspacing EdgeType = "Mn"
	TypeFormat     EdgeType = "Cf"
	TypePrivateUse EdgeType = "Co"
	TypeNum        EdgeType = "num"
	TypeDecimalPt  EdgeType = "decimal period"
	TypeD1         EdgeType = "D1"
	TypeG1         EdgeType = "G1"
	TypeG2         EdgeType = "G2"
	TypeG3         EdgeType = "G3"
	TypeG4         EdgeType = "G4"
	TypeG4Tag      EdgeType = "G4tag"
	TypeFraction   EdgeType = "fraction"
	TypePercentage EdgeType = "percentage"
	TypeNumber     EdgeType = "number" // Braille number run
	TypeRomAlt     EdgeType = "rom-alt"
	TypeRomAlt2    EdgeType = "rom-alt2"
	TypeRomAlt3    EdgeType = "rom-alt3"
)

// NumData holds the additional fields a NumEdge carries beyond a plain
// Edge. An Edge with a non-nil Num is a NumEdge.
type NumData struct {
	OrigText    string
	IsFloat     bool
	ValueInt    int64
	ValueFloat  float64
	ValueString string

	Fraction *big.Rat // nil unless the edge represents a fraction

	NDecimals      int
	NumBase        int64
	BaseMultiplier int64
	Script         string
	IsLargePower   bool

	// Active reports whether this edge participates in best-path
	// selection; deactivated when subsumed by an aggregation stage or
	// excluded by the aggregator's exception list.
	Active bool
}

// HasIntValue reports whether the edge's numeric value is an integer.
func (n *NumData) HasIntValue() bool { return n != nil && !n.IsFloat }

// Edge is a span [Start,End) of the input chunk with its romanized text and
// a type tag. Plain edges are never mutated after insertion; NumEdges may
// have their NumData deactivated or recomputed, and their Text cushioned,
// by the number aggregator.
type Edge struct {
	Start int
	End   int
	Text  string
	Type  EdgeType
	Num   *NumData
}

// NewEdge creates a plain (non-numeric) edge.
func NewEdge(start, end int, text string, t EdgeType) *Edge {
	return &Edge{Start: start, End: end, Text: text, Type: t}
}

// NewNumEdge creates a numeric edge.
func NewNumEdge(start, end int, text string, t EdgeType, data *NumData) *Edge {
	return &Edge{Start: start, End: end, Text: text, Type: t, Num: data}
}

// IsNumEdge reports whether e carries numeric metadata.
func (e *Edge) IsNumEdge() bool { return e != nil && e.Num != nil }

// IsActiveNum reports whether e is a NumEdge participating in path selection.
func (e *Edge) IsActiveNum() bool { return e.IsNumEdge() && e.Num.Active }

// IsRomOrNum reports whether e's type begins with "rom" or "num" — the
// middle precedence tier of best-edge selection, excluding the
// "rom decomp" tier which ranks below. Aggregated numeric types (D1, G2,
// ...) are deliberately absent: active ones win outright on the NumEdge
// tier, deactivated ones drop to the lowest tier.
func (e *Edge) IsRomOrNum() bool {
	if e.Type == TypeRomDecomp {
		return false
	}
	return hasPrefix(string(e.Type), "rom") || hasPrefix(string(e.Type), "num")
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}
