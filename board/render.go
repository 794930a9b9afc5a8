package board

import (
	"fmt"
	"io"
	"strings"

	"reversi-local/types"
)

// Symbol returns the single character used for s in text renderings.
func Symbol(s types.CellState) byte {
	switch s {
	case types.Black:
		return 'b'
	case types.White:
		return 'w'
	}
	return ' '
}

// Render writes the board with row 0 at the bottom. Each row is prefixed with
// its index and the last line lists column indices.
func (b *Board) Render(w io.Writer) error {
	var sb strings.Builder
	for row := b.size - 1; row >= 0; row-- {
		fmt.Fprintf(&sb, "%3d|", row)
		for col := 0; col < b.size; col++ {
			fmt.Fprintf(&sb, "%2c |", Symbol(b.cells[b.index(row, col)]))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("   ")
	for col := 0; col < b.size; col++ {
		fmt.Fprintf(&sb, "%4d", col)
	}
	sb.WriteString("\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

func (b *Board) String() string {
	var sb strings.Builder
	b.Render(&sb)
	return sb.String()
}
