package board

import (
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	b, _ := New(4)
	want := strings.Join([]string{
		"  3|   |   |   |   |",
		"  2|   | b | w |   |",
		"  1|   | w | b |   |",
		"  0|   |   |   |   |",
		"      0   1   2   3",
		"",
	}, "\n")
	if got := b.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}

func TestSymbol(t *testing.T) {
	b, _ := New(4)
	seen := map[byte]bool{}
	for _, grid := range b.Snapshot() {
		for _, c := range grid {
			seen[Symbol(c)] = true
		}
	}
	if len(seen) != 3 {
		t.Errorf("expected 3 distinct symbols, got %v", seen)
	}
}
