// Package types contains shared data structures for reversi-local.
package types

import (
	"fmt"
	"strings"
)

// CellState is the content of a single board cell.
type CellState uint8

const (
	Empty CellState = iota
	Black
	White
)

// Opponent returns the other color. Empty has no opponent and is returned unchanged.
func (c CellState) Opponent() CellState {
	switch c {
	case Black:
		return White
	case White:
		return Black
	}
	return Empty
}

func (c CellState) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	}
	return "empty"
}

// ParseColor converts "black"/"white" (or "b"/"w") to a CellState, ignoring case.
func ParseColor(s string) (CellState, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "black", "b":
		return Black, nil
	case "white", "w":
		return White, nil
	}
	return Empty, fmt.Errorf("unknown color %q", s)
}

// Position addresses a board cell. Row and Col are 0-indexed.
type Position struct {
	Row int
	Col int
}

// NoPosition marks "no last move" in a BoardState.
var NoPosition = Position{Row: -1, Col: -1}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.Row, p.Col)
}

// Move is an intended play by one player at one position.
type Move struct {
	Player CellState
	Pos    Position
}

func (m Move) String() string {
	return fmt.Sprintf("%s %d %d", m.Player, m.Pos.Row, m.Pos.Col)
}

// BoardState is a display snapshot of a game in progress.
// Board is indexed as Board[row][col].
type BoardState struct {
	MoveNumber   int           `json:"move_number"`
	PlayerToMove CellState     `json:"player_to_move"` // Empty once finished
	Phase        string        `json:"phase"`          // "playing", "finished"
	Board        [][]CellState `json:"board"`
	Outcome      string        `json:"outcome"`
	LastMove     Position      `json:"last_move"`
}

const (
	PhasePlaying  = "playing"
	PhaseFinished = "finished"
)

// Finished returns true if the game is over.
func (b *BoardState) Finished() bool {
	return b.Phase == PhaseFinished
}

// Size returns the board side length.
func (b *BoardState) Size() int {
	return len(b.Board)
}

// Count returns the number of cells holding the given state.
func (b *BoardState) Count(c CellState) int {
	n := 0
	for _, row := range b.Board {
		for _, cell := range row {
			if cell == c {
				n++
			}
		}
	}
	return n
}

// NewBoardState creates an empty snapshot of the given size.
func NewBoardState(size int) *BoardState {
	board := make([][]CellState, size)
	for i := range board {
		board[i] = make([]CellState, size)
	}
	return &BoardState{
		MoveNumber:   0,
		PlayerToMove: Black, // Black plays first
		Phase:        PhasePlaying,
		Board:        board,
		LastMove:     NoPosition,
	}
}
