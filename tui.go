package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/rivo/tview"

	"reversi-local/config"
	"reversi-local/engine"
	"reversi-local/engine/replay"
	"reversi-local/engine/selfplay"
	"reversi-local/gamelog"
	"reversi-local/ui"
)

// screens holds the application and its pages.
type screens struct {
	app       *tview.Application
	rootPage  *tview.Pages
	cfg       *config.Config
	spectator *ui.Spectator
}

func newScreens(cfg *config.Config) *screens {
	s := &screens{
		app:      tview.NewApplication(),
		rootPage: tview.NewPages(),
		cfg:      cfg,
	}
	s.rootPage.SetBorder(true).SetTitle(" ◐ reversi ")
	return s
}

func (s *screens) run() error {
	defer s.closeSpectator()
	return s.app.SetRoot(s.rootPage, true).Run()
}

// watch shows eng on the game page. onDone runs when the user leaves it.
func (s *screens) watch(eng engine.GameEngine, title string, onDone func()) {
	s.closeSpectator()
	spectator, err := ui.NewSpectator(s.app, s.cfg, eng, title, func() {
		s.rootPage.RemovePage("gameview")
		s.spectator = nil
		onDone()
	})
	if err != nil {
		s.showError(fmt.Sprintf("Failed to start game:\n%s", err))
		return
	}
	s.spectator = spectator
	s.rootPage.AddAndSwitchToPage("gameview", spectator.Flex(), true)
	s.app.SetFocus(spectator.Focus())
}

func (s *screens) closeSpectator() {
	if s.spectator != nil {
		s.spectator.Close()
		s.spectator = nil
	}
}

func (s *screens) showError(text string) {
	modal := tview.NewModal().
		SetText(text).
		AddButtons([]string{"OK"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			s.rootPage.RemovePage("error")
		})
	s.rootPage.AddPage("error", modal, true, true)
}

func gameTitle(gameCfg engine.GameConfig) string {
	return fmt.Sprintf("depth %d vs depth %d", gameCfg.BlackDepth, gameCfg.WhiteDepth)
}

func runWatch(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	apply := gameFlags(fs)
	quickStart := fs.Bool("play", false, "Start the game immediately instead of showing the setup form")
	fs.Parse(args)
	if err := apply(cfg); err != nil {
		return err
	}

	s := newScreens(cfg)
	initial := cfg.GameConfig()

	startGame := func(gameCfg engine.GameConfig, onDone func()) {
		gameCfg.RecordDir = initial.RecordDir
		s.watch(selfplay.NewEngine(gameCfg), gameTitle(gameCfg), onDone)
	}

	if *quickStart {
		if err := initial.Validate(); err != nil {
			return config.NewConfigurationError(err)
		}
		startGame(initial, s.app.Stop)
		return s.run()
	}

	history := ui.NewHistoryBrowser(cfg.HistoryDir(), func(game gamelog.GameInfo) {
		s.replay(game.FilePath, func() { s.rootPage.SwitchToPage("history") })
	}, func() {
		s.rootPage.SwitchToPage("setup")
	})

	setupUI := ui.NewGameSetup(initial,
		func(gameCfg engine.GameConfig) {
			startGame(gameCfg, func() { s.rootPage.SwitchToPage("setup") })
		},
		func() {
			history.Refresh()
			s.rootPage.SwitchToPage("history")
		},
		s.app.Stop,
	)

	s.rootPage.AddPage("setup", setupUI.Form(), true, true)
	s.rootPage.AddPage("history", history.Flex(), true, false)
	return s.run()
}

// replay shows the recorded game at path.
func (s *screens) replay(path string, onDone func()) {
	eng, err := replay.Open(path)
	if err != nil {
		s.showError(fmt.Sprintf("Failed to open game:\n%s", err))
		return
	}
	s.watch(eng, path, onDone)
}

func runReplay(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("replay", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 1 {
		return errors.New("replay needs exactly one game log")
	}
	eng, err := replay.Open(fs.Arg(0))
	if err != nil {
		return err
	}

	s := newScreens(cfg)
	s.watch(eng, fs.Arg(0), s.app.Stop)
	return s.run()
}

func runHistory(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	dir := fs.String("dir", "", "History directory (default from config)")
	fs.Parse(args)
	if *dir != "" {
		cfg.History.Dir = *dir
	}

	s := newScreens(cfg)
	history := ui.NewHistoryBrowser(cfg.HistoryDir(), func(game gamelog.GameInfo) {
		s.replay(game.FilePath, func() { s.rootPage.SwitchToPage("history") })
	}, s.app.Stop)
	s.rootPage.AddPage("history", history.Flex(), true, true)
	return s.run()
}
