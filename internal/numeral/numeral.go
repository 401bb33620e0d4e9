// Package numeral implements the multi-stage number aggregator: digit runs
// combine into multiplicative bases, blocks, large powers, fractions,
// percentages, and signed values.
package numeral

import (
	"math"
	"math/big"
	"strconv"

	"github.com/uroman-go/uroman/internal/numdb"
)

// DigitEdge is the minimal view the aggregator needs of one input
// character's NumProps record together with its lattice position, decoupled
// from internal/lattice.Edge so this package has no dependency on it.
type DigitEdge struct {
	Start, End int
	Props      *numdb.Props
	Active     bool
}

// Result is an aggregated numeric span the caller (internal/engine) turns
// into a lattice.Edge.
type Result struct {
	Start, End int
	Text       string
	ValueInt   int64
	ValueFloat float64
	IsFloat    bool
	NDecimals  int
	Type       string
	Fraction   *big.Rat
	IsPercent  bool
}

// cjkGapNulls are the "absorb a zero between blocks without an explicit
// hundred" characters the G2 stage absorbs.
var cjkGapNulls = map[rune]bool{
	'零': true,
	'〇': true,
}

// IsGapNull reports whether r is one of the CJK gap-null zeros.
func IsGapNull(r rune) bool { return cjkGapNulls[r] }

// excludedSources is the fixed exception set: these
// source strings are never treated as standalone numeric values even when
// they carry NumProps entries, because they're ambiguous with ordinary
// words/markers in context.
var excludedSources = map[rune]bool{
	'兩': true, '參': true, '伍': true, '陸': true, '六': true, '仟': true, '什': true,
}

// excludedPair is the one multi-character exclusion.
const excludedPair = "京兆"

// Deactivate applies the aggregator's exception rule: a NumEdge is
// deactivated if its value exceeds 1000 with a single-character span, or
// its source text is in the fixed exclusion set.
func Deactivate(span []rune, value int64) bool {
	if len(span) == 1 && value > 1000 {
		return true
	}
	if len(span) == 1 && excludedSources[span[0]] {
		return true
	}
	return string(span) == excludedPair
}

// D1 scans a maximal left-to-right run of active digit NumEdges with value
// in [0,9] starting at edges[0], then optionally absorbs a single decimal
// point plus a trailing digit run as a decimal part, recording NDecimals.
// edges is the ordered sequence of digit-candidate positions in the chunk;
// it need
// not be textually contiguous, since the decimal point itself carries no
// digit value. isDecimalPoint reports whether a rune is a registered
// decimal-point character; runeAt returns the input rune at an absolute
// chunk position. Both may be nil to disable decimal-part absorption.
func D1(edges []DigitEdge, isDecimalPoint func(r rune) bool, runeAt func(pos int) rune) (Result, int, bool) {
	isPlainDigit := func(e DigitEdge) bool {
		return e.Props != nil && e.Props.Type == numdb.TypeDigit && e.Active &&
			e.Props.ValueInt >= 0 && e.Props.ValueInt <= 9
	}
	if len(edges) == 0 || !isPlainDigit(edges[0]) {
		return Result{}, 0, false
	}

	i := 1
	intDigits := []int64{edges[0].Props.ValueInt}
	for i < len(edges) && edges[i].Start == edges[i-1].End && isPlainDigit(edges[i]) {
		intDigits = append(intDigits, edges[i].Props.ValueInt)
		i++
	}
	start := edges[0].Start
	end := edges[i-1].End
	consumed := i

	var intVal int64
	for _, d := range intDigits {
		intVal = intVal*10 + d
	}
	intText := itoa(intVal)

	// Optional decimal part: a single decimal-point rune immediately after
	// the integer part, then a contiguous trailing digit run.
	if isDecimalPoint != nil && runeAt != nil && i < len(edges) &&
		edges[i].Start == end+1 && isDecimalPoint(runeAt(end)) && isPlainDigit(edges[i]) {
		fracDigits := []int64{edges[i].Props.ValueInt}
		i++
		for i < len(edges) && edges[i].Start == edges[i-1].End && isPlainDigit(edges[i]) {
			fracDigits = append(fracDigits, edges[i].Props.ValueInt)
			i++
		}
		consumed = i
		end = edges[consumed-1].End
		var fracBuf []byte
		for _, d := range fracDigits {
			fracBuf = append(fracBuf, byte('0'+d))
		}
		fracText := string(fracBuf)
		text := intText + "." + fracText
		val, err := strconv.ParseFloat(text, 64)
		if err == nil {
			return Result{
				Start: start, End: end, Text: text,
				ValueFloat: val, IsFloat: true, NDecimals: len(fracDigits),
				Type: "D1",
			}, consumed, true
		}
	}

	return Result{
		Start:    start,
		End:      end,
		Text:     intText,
		ValueInt: intVal,
		Type:     "D1",
	}, consumed, true
}

// G1 combines an active base-1 integer NumEdge immediately followed by a
// base>1 non-large-power NumEdge into their product.
func G1(mult, base DigitEdge) (Result, bool) {
	if mult.Props == nil || base.Props == nil {
		return Result{}, false
	}
	if !mult.Active || !base.Active {
		return Result{}, false
	}
	if mult.Props.IsFloat || base.Props.IsFloat {
		return Result{}, false
	}
	if mult.Props.Base != 1 || mult.Props.IntValue() < 1 {
		return Result{}, false
	}
	if base.Props.Base <= 1 || base.Props.IsLargePower {
		return Result{}, false
	}
	value := mult.Props.IntValue() * base.Props.IntValue()
	return Result{
		Start:    mult.Start,
		End:      base.End,
		Text:     itoa(value),
		ValueInt: value,
		Type:     "G1",
	}, true
}

// BlockMember is one value contributed to a G2 sum-within-block run.
type BlockMember struct {
	Value int64
	Base  int64
	IsGap bool
}

// G2 sums a block run starting at members[0]: each following member is
// absorbed while the previous non-gap member is a gap-null zero, or its
// base exceeds both the member's value and its base — so "1007" reads as
// one-thousand(-gap)-seven. Returns the sum, the number of members
// consumed, and whether at least two members combined.
func G2(members []BlockMember) (sum int64, consumed int, ok bool) {
	if len(members) == 0 {
		return 0, 0, false
	}
	sum = members[0].Value
	prevNonGap := members[0]
	consumed = 1
	for _, m := range members[1:] {
		if !(prevNonGap.IsGap || (prevNonGap.Base > m.Value && prevNonGap.Base > m.Base)) {
			break
		}
		sum += m.Value
		consumed++
		if !m.IsGap {
			prevNonGap = m
		}
	}
	return sum, consumed, consumed >= 2
}

// G3 multiplies an active integer/float value by a following large-power
// base, rounding the product to 5 decimals and collapsing an integral float
// to int.
func G3(value float64, isFloat bool, power int64) (result float64, resultIsFloat bool) {
	product := value * float64(power)
	rounded := math.Round(product*1e5) / 1e5
	if rounded == math.Trunc(rounded) {
		return rounded, false
	}
	return rounded, true
}

// G5 builds a fraction or percentage from the two integers the caller found
// on either side of a registered fraction-connector edge. When the
// denominator is 100 it yields a percentage string instead of a *big.Rat.
func G5(numer, denom int64) (frac *big.Rat, percentText string, isPercent bool) {
	if denom == 100 {
		return nil, itoa(numer) + "%", true
	}
	return big.NewRat(numer, denom), "", false
}

// Cushion implements F1: when a numeric edge's text starts with a digit and
// its left neighbor's text ends with a digit, a separator is inserted — a
// space for fractions, a middle dot otherwise.
func Cushion(leftEndsInDigit bool, numStartsWithDigit bool, isFraction bool) string {
	if !leftEndsInDigit || !numStartsWithDigit {
		return ""
	}
	if isFraction {
		return " "
	}
	return "·"
}

func itoa(v int64) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
