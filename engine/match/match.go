// Package match plays a series of independent self-play games, several at a
// time, and tallies the results.
package match

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"reversi-local/engine"
	"reversi-local/engine/selfplay"
	"reversi-local/types"
)

// Config describes a match. Every game uses Game; set Game.RandomOpening so
// that games between deterministic players differ.
type Config struct {
	Game     engine.GameConfig
	Games    int
	Parallel int // games in flight at once; 0 means 1
}

// GameResult is the outcome of one game in the match.
type GameResult struct {
	Index  int
	Moves  []types.Move
	Result selfplay.Result
	Record string // record path, empty when not recording
}

// Summary tallies a finished match. Games is ordered by Index.
type Summary struct {
	BlackWins int
	WhiteWins int
	Draws     int
	Games     []GameResult
}

func (s Summary) String() string {
	return fmt.Sprintf("%d games: black wins %d, white wins %d, draws %d",
		len(s.Games), s.BlackWins, s.WhiteWins, s.Draws)
}

// Run plays the match. It stops at the first failed game or when ctx is
// done. onGame, if non-nil, is called once per finished game from the
// goroutine that played it.
func Run(ctx context.Context, cfg Config, onGame func(GameResult)) (Summary, error) {
	if cfg.Games < 1 {
		return Summary{}, fmt.Errorf("match needs at least one game, got %d", cfg.Games)
	}
	if err := cfg.Game.Validate(); err != nil {
		return Summary{}, err
	}
	parallel := cfg.Parallel
	if parallel < 1 {
		parallel = 1
	}

	results := make([]GameResult, cfg.Games)
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i := 0; i < cfg.Games; i++ {
		i := i
		g.Go(func() error {
			res, err := playGame(ctx, cfg.Game, i)
			if err != nil {
				return fmt.Errorf("game %d: %w", i, err)
			}
			mu.Lock()
			results[i] = res
			mu.Unlock()
			if onGame != nil {
				onGame(res)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	summary := Summary{Games: results}
	for _, r := range results {
		switch r.Result.Winner {
		case types.Black:
			summary.BlackWins++
		case types.White:
			summary.WhiteWins++
		default:
			summary.Draws++
		}
	}
	log.Info().
		Int("games", cfg.Games).
		Int("black_wins", summary.BlackWins).
		Int("white_wins", summary.WhiteWins).
		Int("draws", summary.Draws).
		Msg("match finished")
	return summary, nil
}

func playGame(ctx context.Context, cfg engine.GameConfig, index int) (GameResult, error) {
	e := selfplay.NewEngine(cfg)
	if err := e.Connect(); err != nil {
		return GameResult{}, err
	}
	defer e.Close()

	for !e.Finished() {
		if err := ctx.Err(); err != nil {
			return GameResult{}, err
		}
		if err := e.Step(); err != nil {
			return GameResult{}, err
		}
	}
	return GameResult{
		Index:  index,
		Moves:  e.Moves(),
		Result: e.Result(),
		Record: e.RecordPath(),
	}, nil
}
