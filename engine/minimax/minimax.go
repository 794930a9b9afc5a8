// Package minimax chooses moves with a fixed-depth minimax search over the
// piece differential. There is no pruning: every branch is expanded to the
// configured depth on its own copy of the board.
package minimax

import (
	"time"

	"github.com/rs/zerolog/log"

	"reversi-local/board"
	"reversi-local/types"
)

// ForcedWin is the score of a finished game won by the player to move. It
// dominates every piece differential a board can produce.
const ForcedWin = 1_000_000_000

// Result pairs a score with the move achieving it. Move is nil at leaves,
// pass nodes and finished positions.
type Result struct {
	Score int
	Move  *types.Move
}

// Stats describes the last search.
type Stats struct {
	Nodes   int
	Copies  int
	Elapsed time.Duration
}

// Engine searches to a fixed depth.
type Engine struct {
	Depth int
	stats Stats
}

func NewEngine(depth int) *Engine {
	return &Engine{Depth: depth}
}

// Stats returns counters for the most recent Plan or Minimax call.
func (e *Engine) Stats() Stats {
	return e.stats
}

// Plan returns the best move for player on a copy of b, or nil when the
// search ends at a pass or a finished position.
func (e *Engine) Plan(player types.CellState, b *board.Board) *types.Move {
	start := time.Now()
	res := e.Minimax(player, b.Copy(), e.Depth)
	e.stats.Elapsed = time.Since(start)

	ev := log.Debug().
		Str("player", player.String()).
		Int("depth", e.Depth).
		Int("score", res.Score).
		Int("nodes", e.stats.Nodes).
		Int("copies", e.stats.Copies).
		Dur("elapsed", e.stats.Elapsed)
	if res.Move != nil {
		ev = ev.Int("row", res.Move.Pos.Row).Int("col", res.Move.Pos.Col)
	}
	ev.Msg("plan")
	return res.Move
}

// Minimax evaluates b for player to the given depth. b itself is never
// modified: candidate moves are applied to copies.
func (e *Engine) Minimax(player types.CellState, b *board.Board, level int) Result {
	e.stats = Stats{}
	return e.search(player, b, level)
}

func (e *Engine) search(player types.CellState, b *board.Board, level int) Result {
	e.stats.Nodes++

	if level == 0 {
		return Result{Score: b.Score(player)}
	}

	playable := b.PlayableMoves(player)
	opponent := player.Opponent()

	if len(playable) == 0 {
		if !b.HasMove(opponent) {
			return Result{Score: forcedScore(b.Score(player))}
		}
		// Pass: same board, opponent to move.
		return Result{Score: -e.search(opponent, b, level-1).Score}
	}

	var best Result
	for i, m := range playable {
		next := b.Copy()
		e.stats.Copies++
		if err := next.Play(m); err != nil {
			// PlayableMoves only yields moves IsValid accepted.
			panic(err)
		}
		score := -e.search(opponent, next, level-1).Score
		// Strictly greater: the first move in row-major order wins ties.
		if i == 0 || score > best.Score {
			mv := m
			best = Result{Score: score, Move: &mv}
		}
	}
	return best
}

func forcedScore(diff int) int {
	switch {
	case diff > 0:
		return ForcedWin
	case diff < 0:
		return -ForcedWin
	}
	return 0
}

// Minimax runs a one-off search without keeping statistics.
func Minimax(player types.CellState, b *board.Board, level int) Result {
	return NewEngine(level).Minimax(player, b, level)
}
