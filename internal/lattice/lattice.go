package lattice

// Lattice holds every candidate edge produced over one input chunk, indexed
// by start position so rule application and path search can enumerate edges
// touching a given span without a linear scan.
type Lattice struct {
	Input []rune

	edges    []*Edge
	startsAt map[int][]*Edge
	endsAt   map[int][]*Edge

	// Position-property caches, filled in by the engine for every position
	// before rule application: word
	// boundaries and the per-script flags the algorithmic passes (Tibetan,
	// Braille) attach to a position rather than an edge. End-of-syllable is
	// computed on the fly during rule application instead (it depends on
	// edges already in the lattice), see engine.isEndOfSyllable.
	startOfWord map[int]bool
	endOfWord   map[int]bool

	edgeVowel  map[int]bool // Tibetan: position i carries an inserted vowel
	edgeDelete map[int]bool // Tibetan: the edge starting at position i romanizes to ""

	brailleUpper map[int]bool // Braille: position i is inside an all-caps run
}

// New creates an empty Lattice over input.
func New(input []rune) *Lattice {
	return &Lattice{
		Input:         input,
		startsAt:      make(map[int][]*Edge),
		endsAt:        make(map[int][]*Edge),
		startOfWord:   make(map[int]bool),
		endOfWord:     make(map[int]bool),
		edgeVowel:     make(map[int]bool),
		edgeDelete:    make(map[int]bool),
		brailleUpper:  make(map[int]bool),
	}
}

// AddEdge inserts e into the lattice's indexes. Edges are never removed;
// NumData.Active is toggled instead so aggregation stages can retract a
// lower-level numeric edge without disturbing indexes built against it.
func (l *Lattice) AddEdge(e *Edge) {
	l.edges = append(l.edges, e)
	l.startsAt[e.Start] = append(l.startsAt[e.Start], e)
	l.endsAt[e.End] = append(l.endsAt[e.End], e)
}

// AllEdges returns every edge in insertion order.
func (l *Lattice) AllEdges() []*Edge { return l.edges }

// EdgesAt returns the edges starting exactly at position i.
func (l *Lattice) EdgesAt(i int) []*Edge { return l.startsAt[i] }

// EdgesEndingAt returns the edges ending exactly at position i.
func (l *Lattice) EdgesEndingAt(i int) []*Edge { return l.endsAt[i] }

// EdgesInSpan returns the edges exactly covering [start,end).
func (l *Lattice) EdgesInSpan(start, end int) []*Edge {
	var out []*Edge
	for _, e := range l.startsAt[start] {
		if e.End == end {
			out = append(out, e)
		}
	}
	return out
}

// SetStartOfWord / SetEndOfWord record the position properties the engine
// computes once per lattice and algorithmic passes consult repeatedly.
func (l *Lattice) SetStartOfWord(i int, v bool) { l.startOfWord[i] = v }
func (l *Lattice) SetEndOfWord(i int, v bool)   { l.endOfWord[i] = v }

func (l *Lattice) IsStartOfWord(i int) bool { return l.startOfWord[i] }
func (l *Lattice) IsEndOfWord(i int) bool   { return l.endOfWord[i] }

// SetEdgeVowel / SetEdgeDelete / IsEdgeVowel / IsEdgeDelete are the Tibetan
// vowel-placement flag cache keyed by syllable position.
func (l *Lattice) SetEdgeVowel(i int, v bool)  { l.edgeVowel[i] = v }
func (l *Lattice) SetEdgeDelete(i int, v bool) { l.edgeDelete[i] = v }
func (l *Lattice) IsEdgeVowel(i int) bool      { return l.edgeVowel[i] }
func (l *Lattice) IsEdgeDelete(i int) bool     { return l.edgeDelete[i] }

// SetBrailleUpper / IsBrailleUpper track the Braille all-caps toggle state
// at a position, terminated only by U+2800.
func (l *Lattice) SetBrailleUpper(i int, v bool) { l.brailleUpper[i] = v }
func (l *Lattice) IsBrailleUpper(i int) bool { return l.brailleUpper[i] }

// Len returns the number of runes in the lattice's input.
func (l *Lattice) Len() int { return len(l.Input) }
