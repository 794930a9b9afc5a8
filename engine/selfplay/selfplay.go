// Package selfplay runs a game between two minimax players.
package selfplay

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"reversi-local/board"
	"reversi-local/engine"
	"reversi-local/engine/minimax"
	"reversi-local/gamelog"
	"reversi-local/types"
)

var _ engine.GameEngine = (*Engine)(nil)

// Engine plays both colors with a minimax search each. Each Step applies one
// move.
type Engine struct {
	config engine.GameConfig
	black  *minimax.Engine
	white  *minimax.Engine

	board      *board.Board
	boardState *types.BoardState
	toMove     types.CellState
	moveNumber int
	moves      []types.Move
	record     *gamelog.Record

	moveCallback func(m types.Move, moveNumber int, boardState *types.BoardState)
	endCallback  func(outcome string)

	mu sync.Mutex
}

// Result summarises a finished game.
type Result struct {
	Black   int
	White   int
	Winner  types.CellState // Empty for a draw
	Outcome string
}

// NewEngine creates a self-play engine with the given configuration.
func NewEngine(cfg engine.GameConfig) *Engine {
	return &Engine{
		config:     cfg,
		black:      minimax.NewEngine(cfg.BlackDepth),
		white:      minimax.NewEngine(cfg.WhiteDepth),
		boardState: types.NewBoardState(cfg.BoardSize),
	}
}

// PlayerName describes a minimax player for game records.
func PlayerName(depth int) string {
	return fmt.Sprintf("minimax depth %d", depth)
}

// Connect sets up the opening position and, when RecordDir is set, starts a
// game record.
func (e *Engine) Connect() error {
	if err := e.config.Validate(); err != nil {
		return err
	}
	b, err := board.New(e.config.BoardSize)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.config.RecordDir != "" {
		rec, err := gamelog.NewRecord(e.config.RecordDir, e.config.BoardSize,
			PlayerName(e.config.BlackDepth), PlayerName(e.config.WhiteDepth))
		if err != nil {
			return fmt.Errorf("failed to start game record: %w", err)
		}
		e.record = rec
	}

	e.board = b
	e.moveNumber = 0
	e.moves = nil
	e.toMove = engine.NextPlayer(b, types.White)
	e.boardState = engine.NewBoardState(b, 0, e.toMove, types.NoPosition)
	log.Info().
		Int("size", e.config.BoardSize).
		Int("black_depth", e.config.BlackDepth).
		Int("white_depth", e.config.WhiteDepth).
		Msg("game started")
	return nil
}

// GetBoardState returns the current board state.
func (e *Engine) GetBoardState() *types.BoardState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.boardState
}

// Finished returns true once neither player can move.
func (e *Engine) Finished() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.board != nil && e.toMove == types.Empty
}

// Step plans and plays one move for the player to move.
func (e *Engine) Step() error {
	e.mu.Lock()

	if e.board == nil {
		e.mu.Unlock()
		return fmt.Errorf("engine not connected")
	}
	if e.toMove == types.Empty {
		e.mu.Unlock()
		return engine.ErrGameOver
	}

	player := e.toMove
	var m *types.Move
	if e.moveNumber < e.config.RandomOpening {
		m = randomMove(player, e.board)
	} else {
		searcher := e.black
		if player == types.White {
			searcher = e.white
		}
		m = searcher.Plan(player, e.board)
	}
	if m == nil {
		e.mu.Unlock()
		return fmt.Errorf("%s has a legal move but the search returned none", player)
	}
	if err := e.board.Play(*m); err != nil {
		e.mu.Unlock()
		return fmt.Errorf("search chose an unplayable move: %w", err)
	}

	e.moveNumber++
	e.moves = append(e.moves, *m)
	if e.record != nil {
		if err := e.record.AddMove(*m); err != nil {
			log.Warn().Err(err).Str("file", e.record.FilePath).Msg("failed to record move")
		}
	}

	e.toMove = engine.NextPlayer(e.board, player)
	if e.toMove == player {
		log.Info().Str("player", player.Opponent().String()).Int("move", e.moveNumber).Msg("pass")
	}
	e.boardState = engine.NewBoardState(e.board, e.moveNumber, e.toMove, m.Pos)
	state := e.boardState
	moveNumber := e.moveNumber
	finished := e.toMove == types.Empty
	if finished && e.record != nil {
		if err := e.record.SetResult(state.Outcome); err != nil {
			log.Warn().Err(err).Str("file", e.record.FilePath).Msg("failed to record result")
		}
	}
	e.mu.Unlock()

	log.Debug().Str("move", m.String()).Int("number", moveNumber).Msg("turn")

	// Notify callbacks (outside lock to prevent deadlock)
	if e.moveCallback != nil {
		e.moveCallback(*m, moveNumber, state)
	}
	if finished {
		log.Info().Str("outcome", state.Outcome).Int("moves", moveNumber).Msg("game over")
		if e.endCallback != nil {
			e.endCallback(state.Outcome)
		}
	}
	return nil
}

func randomMove(player types.CellState, b *board.Board) *types.Move {
	moves := b.PlayableMoves(player)
	if len(moves) == 0 {
		return nil
	}
	m := moves[frand.Intn(len(moves))]
	return &m
}

// Run steps until the game is over.
func (e *Engine) Run() error {
	for !e.Finished() {
		if err := e.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Moves returns the moves applied so far.
func (e *Engine) Moves() []types.Move {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]types.Move(nil), e.moves...)
}

// Result returns the piece counts and winner of the current position.
func (e *Engine) Result() Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.board == nil {
		return Result{}
	}
	return Result{
		Black:   e.board.Count(types.Black),
		White:   e.board.Count(types.White),
		Winner:  engine.Winner(e.board),
		Outcome: engine.Outcome(e.board),
	}
}

// RecordPath returns the path of the game record, or "" when not recording.
func (e *Engine) RecordPath() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.record == nil {
		return ""
	}
	return e.record.FilePath
}

// OnMove registers a callback for when a move is played.
func (e *Engine) OnMove(callback func(m types.Move, moveNumber int, boardState *types.BoardState)) {
	e.moveCallback = callback
}

// OnGameEnd registers a callback for when the game ends.
func (e *Engine) OnGameEnd(callback func(outcome string)) {
	e.endCallback = callback
}

// Close closes the game record.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.record != nil {
		e.record.Close()
		e.record = nil
	}
}
