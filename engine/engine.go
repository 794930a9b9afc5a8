// Package engine defines the interface for game engines.
package engine

import (
	"errors"
	"fmt"

	"reversi-local/board"
	"reversi-local/types"
)

// GameEngine drives a game one turn at a time.
type GameEngine interface {
	// Connect sets up the board and initial turn state.
	Connect() error

	// GetBoardState returns a snapshot of the current game.
	GetBoardState() *types.BoardState

	// Step plays the next turn. It returns an error once the game is over.
	Step() error

	// Finished returns true once neither player can move.
	Finished() bool

	// OnMove registers a callback for every applied move.
	// moveNumber counts applied moves starting from 1.
	OnMove(func(m types.Move, moveNumber int, boardState *types.BoardState))

	// OnGameEnd registers a callback for when the game ends.
	OnGameEnd(func(outcome string))

	// Close releases any resources held by the engine.
	Close()
}

// GameConfig holds configuration for starting a new game.
type GameConfig struct {
	BoardSize  int // even, at least 4
	BlackDepth int // minimax depth for black, at least 1
	WhiteDepth int // minimax depth for white, at least 1
	RecordDir  string

	// RandomOpening is the number of leading moves picked uniformly at
	// random instead of by search.
	RandomOpening int
}

// DefaultConfig returns a reasonable default configuration.
func DefaultConfig() GameConfig {
	return GameConfig{
		BoardSize:  8,
		BlackDepth: 3,
		WhiteDepth: 3,
	}
}

// Validate checks the board size and that both depths can produce a move.
func (c GameConfig) Validate() error {
	if err := board.CheckSize(c.BoardSize); err != nil {
		return err
	}
	if c.BlackDepth < 1 || c.WhiteDepth < 1 {
		return fmt.Errorf("search depth must be at least 1 (black %d, white %d)", c.BlackDepth, c.WhiteDepth)
	}
	if c.RandomOpening < 0 {
		return fmt.Errorf("random opening length %d is negative", c.RandomOpening)
	}
	return nil
}

// ErrGameOver is returned by Step after the game has ended.
var ErrGameOver = errors.New("game is over")

// NextPlayer picks who moves after current has played: the opponent when it
// can move, otherwise current again when it can move, otherwise Empty
// (game over).
func NextPlayer(b *board.Board, current types.CellState) types.CellState {
	if b.HasMove(current.Opponent()) {
		return current.Opponent()
	}
	if b.HasMove(current) {
		return current
	}
	return types.Empty
}

// Outcome describes the final position: "black wins by N", "white wins by N"
// or "draw". N is the piece differential.
func Outcome(b *board.Board) string {
	diff := b.Score(types.Black)
	switch {
	case diff > 0:
		return fmt.Sprintf("black wins by %d", diff)
	case diff < 0:
		return fmt.Sprintf("white wins by %d", -diff)
	}
	return "draw"
}

// Winner returns the color with strictly more pieces, or Empty for a draw.
func Winner(b *board.Board) types.CellState {
	diff := b.Score(types.Black)
	switch {
	case diff > 0:
		return types.Black
	case diff < 0:
		return types.White
	}
	return types.Empty
}

// NewBoardState builds a snapshot of b for display.
func NewBoardState(b *board.Board, moveNumber int, toMove types.CellState, last types.Position) *types.BoardState {
	state := &types.BoardState{
		MoveNumber:   moveNumber,
		PlayerToMove: toMove,
		Phase:        types.PhasePlaying,
		Board:        b.Snapshot(),
		LastMove:     last,
	}
	if toMove == types.Empty {
		state.Phase = types.PhaseFinished
		state.Outcome = Outcome(b)
	}
	return state
}
