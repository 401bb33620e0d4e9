package lattice

import "testing"

func TestBestEdgeInSpanRanking(t *testing.T) {
	l := New([]rune("abc"))
	other := NewEdge(0, 1, "a", TypeOrig)
	decomp := NewEdge(0, 1, "d", TypeRomDecomp)
	rom := NewEdge(0, 1, "r", TypeRom)
	num := NewNumEdge(0, 1, "1", TypeD1, &NumData{ValueInt: 1, Active: true})
	l.AddEdge(other)
	l.AddEdge(decomp)
	l.AddEdge(rom)
	l.AddEdge(num)

	if got := BestEdgeInSpan(l, 0, 1); got != num {
		t.Fatalf("active NumEdge should win, got %+v", got)
	}

	num.Num.Active = false
	if got := BestEdgeInSpan(l, 0, 1); got != rom {
		t.Fatalf("rom edge should win once the NumEdge is deactivated, got %+v", got)
	}
}

func TestDeactivatedNumEdgeFallsToLowestTier(t *testing.T) {
	l := New([]rune("a"))
	num := NewNumEdge(0, 1, "9999", TypeD1, &NumData{ValueInt: 9999, Active: false})
	decomp := NewEdge(0, 1, "d", TypeRomDecomp)
	l.AddEdge(num)
	l.AddEdge(decomp)

	if got := BestEdgeInSpan(l, 0, 1); got != decomp {
		t.Fatalf("rom decomp should outrank a deactivated NumEdge, got %+v", got)
	}
}

func TestBestRightNeighborPrefersLongestSpan(t *testing.T) {
	l := New([]rune("abcd"))
	short := NewEdge(0, 1, "a", TypeRom)
	long := NewEdge(0, 3, "abc", TypeRom)
	l.AddEdge(short)
	l.AddEdge(long)

	if got := BestRightNeighborEdge(l, 0); got != long {
		t.Fatalf("longest span should be tried first, got [%d,%d)", got.Start, got.End)
	}
}

func TestBestRomEdgePathTilesInput(t *testing.T) {
	l := New([]rune("abcd"))
	l.AddEdge(NewEdge(0, 2, "AB", TypeRom))
	l.AddEdge(NewEdge(2, 3, "C", TypeRom))
	l.AddEdge(NewEdge(3, 4, "D", TypeOrig))

	path := BestRomEdgePath(l)
	if len(path) != 3 {
		t.Fatalf("path length = %d, want 3", len(path))
	}
	pos := 0
	for _, e := range path {
		if e.Start != pos {
			t.Fatalf("gap in path: edge starts at %d, expected %d", e.Start, pos)
		}
		pos = e.End
	}
	if pos != 4 {
		t.Fatalf("path ends at %d, want 4", pos)
	}
	if got := EdgePathToSurf(path); got != "ABCD" {
		t.Fatalf("surface = %q, want \"ABCD\"", got)
	}
}

func TestFindRomEdgePathBackwards(t *testing.T) {
	l := New([]rune("ab"))
	l.AddEdge(NewEdge(0, 1, "a", TypeRom))
	l.AddEdge(NewEdge(1, 2, "b", TypeRom))

	path := FindRomEdgePathBackwards(l, 0, 2)
	if len(path) != 2 || path[0].Text != "a" || path[1].Text != "b" {
		t.Fatalf("backwards walk = %+v, want left-to-right [a b]", path)
	}
}
