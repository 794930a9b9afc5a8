// Package replay steps through a recorded game.
package replay

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"reversi-local/board"
	"reversi-local/engine"
	"reversi-local/gamelog"
	"reversi-local/types"
)

var _ engine.GameEngine = (*Engine)(nil)

// Engine applies one logged move per Step. It does not check for skipped
// turns; use verify.Replay for that.
type Engine struct {
	size  int
	moves []types.Move
	next  int

	board      *board.Board
	boardState *types.BoardState

	moveCallback func(m types.Move, moveNumber int, boardState *types.BoardState)
	endCallback  func(outcome string)

	mu sync.Mutex
}

// NewEngine creates a replay of moves on a board of the given size.
func NewEngine(size int, moves []types.Move) *Engine {
	return &Engine{
		size:       size,
		moves:      moves,
		boardState: types.NewBoardState(size),
	}
}

// Open loads a recorded game file.
func Open(path string) (*Engine, error) {
	info, err := gamelog.ParseHeader(path)
	if err != nil {
		return nil, err
	}
	moves, err := gamelog.ReadMoves(path)
	if err != nil {
		return nil, err
	}
	return NewEngine(info.BoardSize, moves), nil
}

// Connect sets up the opening position.
func (e *Engine) Connect() error {
	b, err := board.New(e.size)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.board = b
	e.next = 0
	e.boardState = e.state(types.White, types.NoPosition)
	return nil
}

// state must be called while holding the lock.
func (e *Engine) state(lastPlayer types.CellState, last types.Position) *types.BoardState {
	toMove := engine.NextPlayer(e.board, lastPlayer)
	s := engine.NewBoardState(e.board, e.next, toMove, last)
	if e.next >= len(e.moves) && !s.Finished() {
		// Log ran out before the game did.
		s.Phase = types.PhaseFinished
		s.PlayerToMove = types.Empty
		s.Outcome = engine.Outcome(e.board) + " (incomplete)"
	}
	return s
}

// GetBoardState returns the current board state.
func (e *Engine) GetBoardState() *types.BoardState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.boardState
}

// Finished returns true once every logged move has been applied.
func (e *Engine) Finished() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.board != nil && e.next >= len(e.moves)
}

// Len returns the number of logged moves.
func (e *Engine) Len() int {
	return len(e.moves)
}

// Step applies the next logged move.
func (e *Engine) Step() error {
	e.mu.Lock()
	if e.board == nil {
		e.mu.Unlock()
		return fmt.Errorf("engine not connected")
	}
	if e.next >= len(e.moves) {
		e.mu.Unlock()
		return engine.ErrGameOver
	}

	m := e.moves[e.next]
	if err := e.board.Play(m); err != nil {
		e.mu.Unlock()
		return fmt.Errorf("move %d (%v): %w", e.next, m, err)
	}
	e.next++
	e.boardState = e.state(m.Player, m.Pos)
	state := e.boardState
	moveNumber := e.next
	finished := e.next >= len(e.moves)
	e.mu.Unlock()

	log.Debug().Str("move", m.String()).Int("number", moveNumber).Msg("replayed")

	if e.moveCallback != nil {
		e.moveCallback(m, moveNumber, state)
	}
	if finished && e.endCallback != nil {
		e.endCallback(state.Outcome)
	}
	return nil
}

// OnMove registers a callback for when a move is applied.
func (e *Engine) OnMove(callback func(m types.Move, moveNumber int, boardState *types.BoardState)) {
	e.moveCallback = callback
}

// OnGameEnd registers a callback for when the last logged move is applied.
func (e *Engine) OnGameEnd(callback func(outcome string)) {
	e.endCallback = callback
}

// Close is a no-op; the log is read fully by Open.
func (e *Engine) Close() {}
