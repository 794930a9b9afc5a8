package board

import (
	"fmt"

	"reversi-local/types"
)

// SizeError reports a board size that is odd or smaller than MinSize.
type SizeError struct {
	Size int
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("bad board size %d: must be even and at least %d", e.Size, MinSize)
}

// OutOfRangeError reports a cell reference outside the board.
type OutOfRangeError struct {
	Pos  types.Position
	Size int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("cell %v is out of range (0-%d)", e.Pos, e.Size-1)
}

// InvalidMoveError reports a move that brackets nothing.
// Board is a copy of the board the move was rejected on.
type InvalidMoveError struct {
	Move  types.Move
	Board *Board
}

func (e *InvalidMoveError) Error() string {
	return fmt.Sprintf("invalid move: %s at %v", e.Move.Player, e.Move.Pos)
}
