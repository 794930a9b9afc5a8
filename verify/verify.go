// Package verify replays a recorded game on a fresh board and checks that
// every move was legal, that no player was skipped while holding a legal
// move, and that the log runs until neither player can move.
package verify

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"reversi-local/board"
	"reversi-local/types"
)

// MoveError reports a move the board rejected. Err is a
// *board.InvalidMoveError or *board.OutOfRangeError.
type MoveError struct {
	Index int
	Move  types.Move
	Board *board.Board
	Err   error
}

func (e *MoveError) Error() string {
	msg := "You tried an invalid move."
	var rangeErr *board.OutOfRangeError
	if errors.As(e.Err, &rangeErr) {
		msg = "Illegal cell."
	}
	return describe(msg, e.Index, e.Move, e.Board)
}

func (e *MoveError) Unwrap() error {
	return e.Err
}

// SkippedTurnError reports two consecutive moves by the same player while
// the other player had a legal move. Move is one such legal move.
type SkippedTurnError struct {
	Index  int
	Player types.CellState
	Move   types.Move
	Board  *board.Board
}

func (e *SkippedTurnError) Error() string {
	return describe("A player with valid move was skipped", e.Index, e.Move, e.Board)
}

// PrematureEndError reports a log that ends while a legal move remains.
// Index is the number of moves in the log.
type PrematureEndError struct {
	Index int
	Move  types.Move
	Board *board.Board
}

func (e *PrematureEndError) Error() string {
	return describe("Your game file ended prematurely (valid moves left)", e.Index, e.Move, e.Board)
}

func describe(msg string, index int, m types.Move, b *board.Board) string {
	var sb strings.Builder
	sb.WriteString(msg)
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Regarding move number %d (from zero) of player %s at position (%d, %d) in the following board.\n",
		index, m.Player, m.Pos.Row, m.Pos.Col)
	if b != nil {
		sb.WriteString(b.String())
	}
	return sb.String()
}

// Report summarises a fully legal game.
type Report struct {
	Moves  int
	Black  int
	White  int
	Passes int
	Board  *board.Board
}

// Replay plays moves on a new board of the given size. It returns a
// *board.SizeError for a bad size and otherwise the first of *MoveError,
// *SkippedTurnError or *PrematureEndError it encounters.
func Replay(size int, moves []types.Move) (*Report, error) {
	b, err := board.New(size)
	if err != nil {
		return nil, err
	}

	report := &Report{Board: b}
	last := types.White
	for i, m := range moves {
		if m.Player == last {
			other := last.Opponent()
			if legal, ok := b.FirstMove(other); ok {
				log.Info().Int("index", i).Str("player", other.String()).Msg("skipped turn")
				return nil, &SkippedTurnError{Index: i, Player: other, Move: legal, Board: b.Copy()}
			}
			report.Passes++
		}
		if err := b.Play(m); err != nil {
			log.Info().Int("index", i).Str("move", m.String()).Err(err).Msg("rejected move")
			snapshot := b.Copy()
			var invalid *board.InvalidMoveError
			if errors.As(err, &invalid) {
				snapshot = invalid.Board
			}
			return nil, &MoveError{Index: i, Move: m, Board: snapshot, Err: err}
		}
		last = m.Player
	}

	for _, p := range b.Positions() {
		for _, player := range []types.CellState{types.Black, types.White} {
			m := types.Move{Player: player, Pos: p}
			if b.IsValid(m) {
				log.Info().Int("moves", len(moves)).Msg("premature end")
				return nil, &PrematureEndError{Index: len(moves), Move: m, Board: b.Copy()}
			}
		}
	}

	report.Moves = len(moves)
	report.Black = b.Count(types.Black)
	report.White = b.Count(types.White)
	log.Info().Int("moves", report.Moves).Int("black", report.Black).Int("white", report.White).Msg("game verified")
	return report, nil
}
