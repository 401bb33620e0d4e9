package numeral

import "strings"

// G4Member is one sub-edge considered by the G4 sum-across-powers walk.
type G4Member struct {
	Value      int64
	Base       int64
	Script     string
	TypeTag    string // e.g. "C1", "D1", "G3"; a reinterpreted member becomes "G4tag"
	SingleChar bool   // spans exactly one input character
}

// G4 walks a sum-across-powers run starting at members[0]: each following
// member is absorbed while the previous member's base exceeds both its
// value and its base. A bare single-character CJK digit 1-9 after a CJK
// base >= 1000 (a pure power of ten, not already tagged) is reinterpreted
// as the next lower decimal position before being summed; the
// reinterpretation is written back into the members slice so the caller
// can mirror it onto the subsumed edge. Returns the sum, the number of
// members consumed, and the reinterpreted members' indices.
func G4(members []G4Member) (sum int64, consumed int, retagged []int) {
	if len(members) == 0 {
		return 0, 0, nil
	}
	sum = members[0].Value
	prev := members[0]
	consumed = 1
	for i := 1; i < len(members); i++ {
		if !(prev.Base > members[i].Value && prev.Base > members[i].Base) {
			break
		}
		if prev.Script == "CJK" && prev.Base >= 1000 && !strings.Contains(prev.TypeTag, "tag") &&
			isPowerOfTen(prev.Base) && members[i].SingleChar && members[i].Value >= 1 && members[i].Value <= 9 {
			members[i].Base = prev.Base / 10
			members[i].Value = members[i].Base * members[i].Value
			members[i].TypeTag = "G4tag"
			retagged = append(retagged, i)
		}
		sum += members[i].Value
		consumed++
		prev = members[i]
	}
	return sum, consumed, retagged
}

func isPowerOfTen(v int64) bool {
	if v < 1 {
		return false
	}
	for v > 1 {
		if v%10 != 0 {
			return false
		}
		v /= 10
	}
	return true
}

// Sign is the G6 stage: a minus or plus sign immediately
// preceding a NumEdge produces a new Edge with the sign prepended to the
// numeric text.
func Sign(isMinus, isPlus bool, text string) (string, bool) {
	switch {
	case isMinus:
		return "-" + text, true
	case isPlus:
		return "+" + text, true
	default:
		return text, false
	}
}
