// reversi-local plays, verifies and replays reversi games in the terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"

	"github.com/donyori/gorecover"
	"github.com/rs/zerolog/log"

	"reversi-local/board"
	"reversi-local/config"
	"reversi-local/engine"
	"reversi-local/engine/match"
	"reversi-local/engine/selfplay"
	"reversi-local/gamelog"
	"reversi-local/logging"
	"reversi-local/types"
	"reversi-local/verify"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	flagDebug   = flag.Bool("debug", false, "Write debug events to the log file")
	flagVersion = flag.Bool("version", false, "Print version and exit")
)

var commands = []struct {
	name  string
	usage string
	run   func(cfg *config.Config, args []string) error
}{
	{"play", "run an engine-vs-engine game and print each move", runPlay},
	{"match", "play a series of engine-vs-engine games and tally the results", runMatch},
	{"verify", "check a game log for illegal moves and skipped turns", runVerify},
	{"watch", "watch an engine-vs-engine game in the terminal UI", runWatch},
	{"replay", "step through a recorded game in the terminal UI", runReplay},
	{"history", "browse recorded games", runHistory},
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "Usage: %s [flags] <command> [command flags]\n\nCommands:\n", os.Args[0])
	for _, c := range commands {
		fmt.Fprintf(out, "  %-8s %s\n", c.name, c.usage)
	}
	fmt.Fprintln(out, "\nFlags:")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	var err error
	rerr := gorecover.Recover(func() {
		err = body(flag.Args())
	})
	if rerr != nil {
		err = rerr
	}
	if err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

// reportError prints a fatal error. Verifier and configuration errors carry
// their own headline and are printed as is.
func reportError(w io.Writer, err error) {
	var (
		moveErr      *verify.MoveError
		skippedErr   *verify.SkippedTurnError
		prematureErr *verify.PrematureEndError
		cfgErr       *config.ConfigurationError
	)
	switch {
	case errors.As(err, &moveErr), errors.As(err, &skippedErr), errors.As(err, &prematureErr), errors.As(err, &cfgErr):
		fmt.Fprintln(w, err)
	default:
		fmt.Fprintln(w, "Error:", err)
	}
}

func body(args []string) error {
	if *flagVersion {
		fmt.Printf("reversi-local %s\n", Version)
		return nil
	}

	closeLog, err := logging.Init(*flagDebug)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Warning:", err)
		logging.InitWriter(os.Stderr, *flagDebug)
	} else {
		defer closeLog()
	}

	cfg, err := config.InitConfig()
	if err != nil {
		return err
	}

	name := "watch"
	if len(args) > 0 {
		name, args = args[0], args[1:]
	}
	for _, c := range commands {
		if c.name == name {
			log.Debug().Str("command", name).Strs("args", args).Msg("start")
			return c.run(cfg, args)
		}
	}
	usage()
	return fmt.Errorf("unknown command %q", name)
}

// gameFlags registers the flags shared by play and watch. The returned
// function applies them to cfg.
func gameFlags(fs *flag.FlagSet) func(cfg *config.Config) error {
	confFile := fs.String("c", "", "Two-integer config file: board size and search depth")
	size := fs.Int("size", 0, "Board size (even, at least 4)")
	depth := fs.Int("depth", -1, "Search depth for both players")
	blackDepth := fs.Int("black-depth", 0, "Search depth for black")
	whiteDepth := fs.Int("white-depth", 0, "Search depth for white")
	noRecord := fs.Bool("no-record", false, "Do not save the game to the history directory")

	return func(cfg *config.Config) error {
		if *confFile != "" {
			gf, err := config.ReadGameFile(*confFile)
			if err != nil {
				return err
			}
			cfg.Game.BoardSize = gf.BoardSize
			if gf.HasDepth {
				cfg.Game.Depth = gf.Depth
				cfg.Game.BlackDepth, cfg.Game.WhiteDepth = 0, 0
			}
		}
		if *size > 0 {
			cfg.Game.BoardSize = *size
		}
		if *depth >= 0 {
			cfg.Game.Depth = *depth
			cfg.Game.BlackDepth, cfg.Game.WhiteDepth = 0, 0
		}
		if *blackDepth > 0 {
			cfg.Game.BlackDepth = *blackDepth
		}
		if *whiteDepth > 0 {
			cfg.Game.WhiteDepth = *whiteDepth
		}
		if *noRecord {
			cfg.History.Enabled = false
		}
		return cfg.Validate()
	}
}

func runPlay(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	apply := gameFlags(fs)
	showBoard := fs.Bool("board", false, "Render the board to stderr after every move")
	fs.Parse(args)
	if err := apply(cfg); err != nil {
		return err
	}

	gameCfg := cfg.GameConfig()
	if err := gameCfg.Validate(); err != nil {
		return config.NewConfigurationError(err)
	}

	out := gamelog.NewWriter(os.Stdout)
	out.WriteComment("size: %d", gameCfg.BoardSize)
	out.WriteComment("black: %s", selfplay.PlayerName(gameCfg.BlackDepth))
	out.WriteComment("white: %s", selfplay.PlayerName(gameCfg.WhiteDepth))

	eng := selfplay.NewEngine(gameCfg)
	var writeErr error
	eng.OnMove(func(m types.Move, moveNumber int, state *types.BoardState) {
		if err := out.WriteMove(m); err != nil && writeErr == nil {
			writeErr = err
		}
		if *showBoard {
			renderState(os.Stderr, state)
		}
	})
	eng.OnGameEnd(func(outcome string) {
		out.WriteComment("result: %s", outcome)
	})

	if err := eng.Connect(); err != nil {
		return err
	}
	defer eng.Close()
	if err := eng.Run(); err != nil {
		return err
	}
	if writeErr != nil {
		return fmt.Errorf("failed to write move: %w", writeErr)
	}
	if path := eng.RecordPath(); path != "" {
		out.WriteComment("saved: %s", path)
	}
	return nil
}

// renderState prints a snapshot in the diagnostic board format.
func renderState(w io.Writer, state *types.BoardState) {
	b, err := board.New(state.Size())
	if err != nil {
		return
	}
	for row := range state.Board {
		for col, cell := range state.Board[row] {
			b.Set(types.Position{Row: row, Col: col}, cell)
		}
	}
	b.Render(w)
	fmt.Fprintln(w)
}

func runMatch(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("match", flag.ExitOnError)
	apply := gameFlags(fs)
	games := fs.Int("games", 10, "Number of games")
	parallel := fs.Int("parallel", 4, "Games played at once")
	randomOpening := fs.Int("random-opening", 4, "Leading moves chosen at random so games differ")
	fs.Parse(args)
	if err := apply(cfg); err != nil {
		return err
	}

	gameCfg := cfg.GameConfig()
	gameCfg.RandomOpening = *randomOpening
	if err := gameCfg.Validate(); err != nil {
		return config.NewConfigurationError(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	out := gamelog.NewWriter(os.Stdout)
	var mu sync.Mutex
	summary, err := match.Run(ctx, match.Config{Game: gameCfg, Games: *games, Parallel: *parallel},
		func(g match.GameResult) {
			mu.Lock()
			defer mu.Unlock()
			out.WriteComment("game %d: %s (%d moves)", g.Index, g.Result.Outcome, len(g.Moves))
		})
	if err != nil {
		return err
	}
	out.WriteComment("%s", summary)
	return nil
}

func runVerify(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	confFile := fs.String("c", "", "Two-integer config file holding the board size")
	gameFile := fs.String("g", "", "Game log to verify (default: first argument)")
	size := fs.Int("size", 0, "Board size, overriding the config")
	fs.Parse(args)

	path := *gameFile
	if path == "" && fs.NArg() > 0 {
		path = fs.Arg(0)
	}
	if path == "" {
		return errors.New("no game log given")
	}

	boardSize := cfg.Game.BoardSize
	if *confFile != "" {
		gf, err := config.ReadGameFile(*confFile)
		if err != nil {
			return err
		}
		boardSize = gf.BoardSize
	}
	if *size > 0 {
		boardSize = *size
	}
	if err := board.CheckSize(boardSize); err != nil {
		return config.NewConfigurationError(err)
	}

	moves, err := gamelog.ReadMoves(path)
	if err != nil {
		return err
	}
	report, err := verify.Replay(boardSize, moves)
	if err != nil {
		return err
	}
	fmt.Printf("# game verified: %d moves, %d passes, black %d, white %d\n",
		report.Moves, report.Passes, report.Black, report.White)
	fmt.Printf("# %s\n", engine.Outcome(report.Board))
	return nil
}
