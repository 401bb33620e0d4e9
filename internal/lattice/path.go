package lattice

import "sort"

// rank assigns the best_edge_in_span precedence tier:
// an active NumEdge ranks above a rom/num-tagged edge, which ranks above a
// rom-decomp-tagged edge, which ranks above everything else. Lower is
// better.
func rank(e *Edge) int {
	switch {
	case e.IsActiveNum():
		return 0
	case e.IsRomOrNum():
		return 1
	case e.Type == TypeRomDecomp:
		return 2
	default:
		return 3
	}
}

// BestEdgeInSpan returns the highest-priority edge covering exactly
// [start,end), or nil if none exists. Ties within a tier keep the first
// edge encountered (insertion order), keeping the scan stable.
func BestEdgeInSpan(l *Lattice, start, end int) *Edge {
	var best *Edge
	bestRank := 4
	for _, e := range l.EdgesInSpan(start, end) {
		r := rank(e)
		if r < bestRank {
			best = e
			bestRank = r
		}
	}
	return best
}

// BestRightNeighborEdge returns the best edge starting at start, trying the
// longest span first so that a widened edge (consonant doubling, small-y
// merge) outcompetes the shorter edges it subsumes.
func BestRightNeighborEdge(l *Lattice, start int) *Edge {
	var ends []int
	seen := make(map[int]bool)
	for _, e := range l.EdgesAt(start) {
		if !seen[e.End] {
			seen[e.End] = true
			ends = append(ends, e.End)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ends)))
	for _, end := range ends {
		if e := BestEdgeInSpan(l, start, end); e != nil {
			return e
		}
	}
	return nil
}

// BestLeftNeighborEdge returns the best edge ending at end, trying the
// longest leftward span first.
func BestLeftNeighborEdge(l *Lattice, end int) *Edge {
	var starts []int
	seen := make(map[int]bool)
	for _, e := range l.EdgesEndingAt(end) {
		if !seen[e.Start] {
			seen[e.Start] = true
			starts = append(starts, e.Start)
		}
	}
	sort.Ints(starts)
	for _, start := range starts {
		if e := BestEdgeInSpan(l, start, end); e != nil {
			return e
		}
	}
	return nil
}

// BestRomEdgePath performs the greedy left-to-right walk from position 0 to
// the end of the lattice, at each position taking the best edge starting
// there and advancing past it. If no edge starts at a position, a
// single-rune orig edge is assumed to already be present (the engine
// guarantees full coverage before path search runs).
func BestRomEdgePath(l *Lattice) []*Edge {
	var path []*Edge
	pos := 0
	n := l.Len()
	for pos < n {
		e := BestRightNeighborEdge(l, pos)
		if e == nil {
			// No edge registered at this position; skip one rune to avoid
			// an infinite loop. The engine is expected to have covered
			// every position, so this is a defensive fallback only.
			pos++
			continue
		}
		path = append(path, e)
		if e.End <= pos {
			pos++
		} else {
			pos = e.End
		}
	}
	return path
}

// FindRomEdgePathBackwards walks from end back to start, at each position
// taking the best edge ending there, to recover left-context for alternative
// generation and diagnostics. The returned path is in left-to-right order.
func FindRomEdgePathBackwards(l *Lattice, start, end int) []*Edge {
	var rev []*Edge
	pos := end
	for pos > start {
		e := BestLeftNeighborEdge(l, pos)
		if e == nil {
			pos--
			continue
		}
		rev = append(rev, e)
		if e.Start >= pos {
			pos--
		} else {
			pos = e.Start
		}
	}
	path := make([]*Edge, len(rev))
	for i, e := range rev {
		path[len(rev)-1-i] = e
	}
	return path
}

// EdgePathToSurf concatenates a path's Text fields into the final
// romanized surface string.
func EdgePathToSurf(path []*Edge) string {
	out := make([]byte, 0, len(path)*2)
	for _, e := range path {
		out = append(out, e.Text...)
	}
	return string(out)
}
