package algo

import "testing"

func TestBrailleNumberRun(t *testing.T) {
	input := []rune{BrailleNumberMark, 0x2801, 0x2803, 0x2809} // ⠼⠁⠃⠉
	end, text, ok := BrailleNumberRun(input, 0)
	if !ok {
		t.Fatal("number mark followed by digits should be recognized")
	}
	if end != 4 || text != "123" {
		t.Fatalf("got end=%d text=%q, want 4/\"123\"", end, text)
	}
}

func TestBrailleNumberRunWithPeriodAndComma(t *testing.T) {
	input := []rune{BrailleNumberMark, 0x2801, BraillePeriod, 0x2811, BrailleComma, 0x2803}
	end, text, ok := BrailleNumberRun(input, 0)
	if !ok || end != 6 || text != "1.5,2" {
		t.Fatalf("got end=%d text=%q ok=%v, want 6/\"1.5,2\"/true", end, text, ok)
	}
}

func TestBrailleNumberRunTerminatesAtNonDigit(t *testing.T) {
	input := []rune{BrailleNumberMark, 0x2801, 0x2805, 0x2803} // ⠅ is not a digit cell
	end, text, ok := BrailleNumberRun(input, 0)
	if !ok || end != 2 || text != "1" {
		t.Fatalf("got end=%d text=%q ok=%v, want 2/\"1\"/true", end, text, ok)
	}
}

func TestBrailleNumberRunRequiresMark(t *testing.T) {
	if _, _, ok := BrailleNumberRun([]rune{0x2801, 0x2803}, 0); ok {
		t.Fatal("digits without a leading number mark should not form a run")
	}
}

func TestBrailleNumberRunRequiresDigits(t *testing.T) {
	if _, _, ok := BrailleNumberRun([]rune{BrailleNumberMark, 0x2805}, 0); ok {
		t.Fatal("a bare number mark should not form a run")
	}
}
