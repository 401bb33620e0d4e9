package engine

import (
	"strconv"

	"github.com/uroman-go/uroman/internal/lattice"
	"github.com/uroman-go/uroman/internal/numdb"
	"github.com/uroman-go/uroman/internal/numeral"
)

// aggItem is the working view of one numeric span while the aggregation
// stages run: a per-character NumProps entry at first, then progressively
// merged D1/G1/G2/G3/G4 spans. edge is the lattice NumEdge backing it;
// subsumed items drop out of the working list, and runNumberAggregator
// deactivates their edges, which stay in the lattice.
type aggItem struct {
	start, end   int
	text         string
	valueInt     int64
	valueFloat   float64
	isFloat      bool
	nDecimals    int
	base         int64
	script       string
	isLargePower bool
	tag          string
	props        *numdb.Props // nil once aggregated
	edge         *lattice.Edge
}

func (it *aggItem) isInt() bool      { return !it.isFloat }
func (it *aggItem) singleChar() bool { return it.end == it.start+1 }

// digitEdge adapts an item to the numeral package's per-character view.
// Aggregated items synthesize a base-1 integer record, which is exactly how
// the D1/G1 stages are meant to see them.
func (it *aggItem) digitEdge() numeral.DigitEdge {
	p := it.props
	if p == nil {
		p = &numdb.Props{
			ValueInt: it.valueInt, ValueFloat: it.valueFloat, IsFloat: it.isFloat,
			Type: numdb.TypeDigit, Base: it.base, Script: it.script,
		}
	}
	return numeral.DigitEdge{Start: it.start, End: it.end, Props: p, Active: true}
}

func (it *aggItem) floatValue() float64 {
	if it.isFloat {
		return it.valueFloat
	}
	return float64(it.valueInt)
}

// runNumberAggregator runs the D1/G1/G2/G3/G4/G5/G6/F1 stages over the
// chunk's NumProps-backed characters: one NumEdge per character first, then
// each stage merges adjacent items via the corresponding numeral-package
// function, inserting an aggregate NumEdge per combination.
func runNumberAggregator(l *lattice.Lattice, st *Stores) {
	var items []*aggItem
	for i := 0; i < l.Len(); i++ {
		if p, ok := st.Numbers.Lookup(l.Input[i]); ok {
			items = append(items, newCharItem(l, i, p))
		}
	}
	if len(items) == 0 {
		return
	}

	items = stageD1(l, st, items)
	items = stageG1(l, items)
	items = stageG2(l, items)
	items = stageG3(l, items)
	items = stageG4(l, items)
	items = append(items, stageFractions(l, st, items)...)

	// NumEdges inside a surviving item's span that a stage merged into it.
	for _, it := range items {
		for pos := it.start; pos < it.end; pos++ {
			for _, e := range l.EdgesAt(pos) {
				if e != it.edge && e.Num != nil && e.End <= it.end {
					e.Num.Active = false
				}
			}
		}
	}

	for _, it := range items {
		applySign(l, st, it.edge)
	}
	applyCushion(l, items)

	// Exceptions: mostly single-character number words too ambiguous to
	// stand alone.
	for _, it := range items {
		if it.edge.Num != nil && numeral.Deactivate(l.Input[it.start:it.end], it.valueInt) {
			it.edge.Num.Active = false
		}
	}
}

func newCharItem(l *lattice.Lattice, pos int, p *numdb.Props) *aggItem {
	it := &aggItem{
		start: pos, end: pos + 1,
		valueInt: p.ValueInt, valueFloat: p.ValueFloat, isFloat: p.IsFloat,
		base: p.Base, script: p.Script, isLargePower: p.IsLargePower,
		tag: "C1", props: p,
	}
	switch {
	case p.HasFraction:
		it.text = itoa(p.FracNum) + "/" + itoa(p.FracDenom)
	case p.IsFloat:
		it.text = strconv.FormatFloat(p.ValueFloat, 'f', -1, 64)
	default:
		it.text = itoa(p.ValueInt)
	}
	it.edge = lattice.NewNumEdge(it.start, it.end, it.text, lattice.TypeNum, &lattice.NumData{
		OrigText: string(l.Input[pos]), ValueInt: p.ValueInt, ValueFloat: p.ValueFloat,
		IsFloat: p.IsFloat, ValueString: it.text, NumBase: p.Base,
		Script: p.Script, IsLargePower: p.IsLargePower, Active: true,
	})
	l.AddEdge(it.edge)
	return it
}

func addAggEdge(l *lattice.Lattice, it *aggItem) *lattice.Edge {
	e := lattice.NewNumEdge(it.start, it.end, it.text, lattice.EdgeType(it.tag), &lattice.NumData{
		OrigText: string(l.Input[it.start:it.end]), ValueInt: it.valueInt,
		ValueFloat: it.valueFloat, IsFloat: it.isFloat, ValueString: it.text,
		NDecimals: it.nDecimals, NumBase: it.base, Script: it.script,
		IsLargePower: it.isLargePower, Active: true,
	})
	l.AddEdge(e)
	return e
}

// stageD1 merges maximal digit runs (with an optional decimal part) into
// one NumEdge each.
func stageD1(l *lattice.Lattice, st *Stores, items []*aggItem) []*aggItem {
	isDec := func(r rune) bool { return isDecimalPointRune(st, r) }
	at := func(pos int) rune { return l.Input[pos] }

	var out []*aggItem
	i := 0
	for i < len(items) {
		rest := make([]numeral.DigitEdge, len(items)-i)
		for j, it := range items[i:] {
			rest[j] = it.digitEdge()
		}
		res, consumed, ok := numeral.D1(rest, isDec, at)
		if !ok || consumed < 2 {
			out = append(out, items[i])
			i++
			continue
		}
		last := items[i+consumed-1]
		it := &aggItem{
			start: res.Start, end: res.End, text: res.Text,
			valueInt: res.ValueInt, valueFloat: res.ValueFloat, isFloat: res.IsFloat,
			nDecimals: res.NDecimals, base: 1, script: last.script, tag: res.Type,
		}
		it.edge = addAggEdge(l, it)
		out = append(out, it)
		i += consumed
	}
	return out
}

// stageG1 merges multiplier*base pairs (2*100=200) for the small,
// non-large-power bases.
func stageG1(l *lattice.Lattice, items []*aggItem) []*aggItem {
	var out []*aggItem
	i := 0
	for i < len(items) {
		if i+1 < len(items) && items[i].end == items[i+1].start {
			if res, ok := numeral.G1(items[i].digitEdge(), items[i+1].digitEdge()); ok {
				right := items[i+1]
				it := &aggItem{
					start: res.Start, end: res.End, text: res.Text, valueInt: res.ValueInt,
					base: right.base, script: right.script, tag: res.Type,
				}
				it.edge = addAggEdge(l, it)
				out = append(out, it)
				i += 2
				continue
			}
		}
		out = append(out, items[i])
		i++
	}
	return out
}

func (it *aggItem) isGapNull(l *lattice.Lattice) bool {
	return it.singleChar() && numeral.IsGapNull(l.Input[it.start])
}

// stageG2 sums blocks of decreasing-base integers (200+30+4=234),
// absorbing gap-null zeros, below the large-power boundary.
func stageG2(l *lattice.Lattice, items []*aggItem) []*aggItem {
	eligible := func(it *aggItem) bool { return it.isInt() && !it.isLargePower }

	var out []*aggItem
	i := 0
	for i < len(items) {
		if !eligible(items[i]) {
			out = append(out, items[i])
			i++
			continue
		}
		members := []numeral.BlockMember{{
			Value: items[i].valueInt, Base: items[i].base, IsGap: items[i].isGapNull(l),
		}}
		for j := i + 1; j < len(items) && items[j].start == items[j-1].end && eligible(items[j]); j++ {
			members = append(members, numeral.BlockMember{
				Value: items[j].valueInt, Base: items[j].base, IsGap: items[j].isGapNull(l),
			})
		}
		sum, consumed, ok := numeral.G2(members)
		if !ok {
			out = append(out, items[i])
			i++
			continue
		}
		last := items[i+consumed-1]
		it := &aggItem{
			start: items[i].start, end: last.end, text: itoa(sum), valueInt: sum,
			base: last.base, script: last.script, tag: "G2",
		}
		it.edge = addAggEdge(l, it)
		out = append(out, it)
		i += consumed
	}
	return out
}

// stageG3 multiplies a block by a following large-power base (234*1000).
func stageG3(l *lattice.Lattice, items []*aggItem) []*aggItem {
	var out []*aggItem
	i := 0
	for i < len(items) {
		if i+1 < len(items) && items[i].end == items[i+1].start {
			left, right := items[i], items[i+1]
			if !left.isLargePower && right.isInt() && right.base > 1 && right.isLargePower {
				v, isFloat := numeral.G3(left.floatValue(), left.isFloat, right.valueInt)
				it := &aggItem{
					start: left.start, end: right.end, isFloat: isFloat,
					base: right.base, script: right.script, tag: "G3",
				}
				if isFloat {
					it.valueFloat = v
					it.text = strconv.FormatFloat(v, 'f', -1, 64)
				} else {
					it.valueInt = int64(v)
					it.text = itoa(it.valueInt)
				}
				it.edge = addAggEdge(l, it)
				out = append(out, it)
				i += 2
				continue
			}
		}
		out = append(out, items[i])
		i++
	}
	return out
}

// stageG4 sums across power blocks (234000+567), letting a bare CJK digit
// after a big base stand for the next lower decimal position.
func stageG4(l *lattice.Lattice, items []*aggItem) []*aggItem {
	var out []*aggItem
	i := 0
	for i < len(items) {
		if !items[i].isInt() {
			out = append(out, items[i])
			i++
			continue
		}
		members := []numeral.G4Member{{
			Value: items[i].valueInt, Base: items[i].base, Script: items[i].script,
			TypeTag: items[i].tag, SingleChar: items[i].singleChar(),
		}}
		for j := i + 1; j < len(items) && items[j].start == items[j-1].end && items[j].isInt(); j++ {
			members = append(members, numeral.G4Member{
				Value: items[j].valueInt, Base: items[j].base, Script: items[j].script,
				TypeTag: items[j].tag, SingleChar: items[j].singleChar(),
			})
		}
		sum, consumed, retagged := numeral.G4(members)
		if consumed < 2 {
			out = append(out, items[i])
			i++
			continue
		}
		for _, idx := range retagged {
			sub := items[i+idx]
			sub.edge.Type = lattice.TypeG4Tag
			sub.edge.Num.ValueInt = members[idx].Value
			sub.edge.Num.NumBase = members[idx].Base
		}
		last := items[i+consumed-1]
		it := &aggItem{
			start: items[i].start, end: last.end, text: itoa(sum), valueInt: sum,
			base: members[consumed-1].Base, script: last.script, tag: "G4",
		}
		it.edge = addAggEdge(l, it)
		out = append(out, it)
		i += consumed
	}
	return out
}

func isDecimalPointRune(st *Stores, r rune) bool {
	for _, c := range st.Rules.Lookup(string(r)) {
		if c.IsDecimalPoint {
			return true
		}
	}
	return false
}

// applySign implements G6: a minus- or plus-sign rule immediately to the
// left of an active NumEdge adds a new sign-prefixed edge spanning from the
// sign through the numeral, so it outranks the bare numeral at
// path-selection time.
func applySign(l *lattice.Lattice, st *Stores, e *lattice.Edge) {
	if e.Num == nil || !e.Num.Active || e.Start == 0 {
		return
	}
	signStart := e.Start - 1
	for _, c := range st.Rules.Lookup(string(l.Input[signStart:e.Start])) {
		if text, ok := numeral.Sign(c.IsMinusSign, c.IsPlusSign, e.Num.ValueString); ok {
			l.AddEdge(lattice.NewEdge(signStart, e.End, text, lattice.TypeNum))
			return
		}
	}
}

// stageFractions implements G5: two integer items bridged by a rule edge
// whose fraction-connector marker is set become a fraction (or, when the
// denominator is 100, a percentage). The created fraction items are
// returned so the sign and cushion passes see them too.
func stageFractions(l *lattice.Lattice, st *Stores, items []*aggItem) []*aggItem {
	var created []*aggItem
	for i := 0; i+1 < len(items); i++ {
		denom, numer := items[i], items[i+1]
		if !denom.isInt() || !numer.isInt() || denom.end >= numer.start {
			continue
		}
		isConnector := false
		for _, b := range l.EdgesInSpan(denom.end, numer.start) {
			if hasFractionConnectorRule(st, l.Input[b.Start:b.End]) {
				isConnector = true
			}
		}
		if !isConnector {
			continue
		}
		frac, percentText, isPercent := numeral.G5(numer.valueInt, denom.valueInt)
		if isPercent {
			l.AddEdge(lattice.NewEdge(denom.start, numer.end, percentText, lattice.TypePercentage))
		} else {
			text := itoa(numer.valueInt) + "/" + itoa(denom.valueInt)
			it := &aggItem{start: denom.start, end: numer.end, text: text, tag: string(lattice.TypeFraction)}
			it.edge = lattice.NewNumEdge(denom.start, numer.end, text, lattice.TypeFraction, &lattice.NumData{
				OrigText: string(l.Input[denom.start:numer.end]), ValueString: text,
				Fraction: frac, Active: true,
			})
			l.AddEdge(it.edge)
			created = append(created, it)
		}
		denom.edge.Num.Active = false
		numer.edge.Num.Active = false
	}
	return created
}

func hasFractionConnectorRule(st *Stores, span []rune) bool {
	for _, c := range st.Rules.Lookup(string(span)) {
		if c.FractionConnector != "" {
			return true
		}
	}
	return false
}

// applyCushion implements F1: a numeric edge whose text starts with a
// digit, immediately after a left-neighbor edge whose text ends in a
// digit, gets a space (fraction) or middle dot (plain) prepended to its
// own text. NumEdge text is the one mutable edge field, reserved for the
// aggregator.
func applyCushion(l *lattice.Lattice, items []*aggItem) {
	for _, it := range items {
		e := it.edge
		left := lattice.BestLeftNeighborEdge(l, e.Start)
		if left == nil || left.Text == "" || e.Text == "" {
			continue
		}
		lastByte := left.Text[len(left.Text)-1]
		firstByte := e.Text[0]
		leftEndsInDigit := lastByte >= '0' && lastByte <= '9'
		startsWithDigit := firstByte >= '0' && firstByte <= '9'
		sep := numeral.Cushion(leftEndsInDigit, startsWithDigit, e.Num != nil && e.Num.Fraction != nil)
		if sep == "" {
			continue
		}
		e.Text = sep + e.Text
	}
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
