package ui

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"

	"reversi-local/config"
	"reversi-local/engine"
	"reversi-local/types"
)

const runToEnd = -1

// Spectator shows a game driven by a GameEngine. Turns are played on a
// worker goroutine; screen updates are queued to the application.
type Spectator struct {
	app   *tview.Application
	eng   engine.GameEngine
	board *BoardView
	info  *InfoPanel
	hint  *tview.TextView
	flex  *tview.Flex

	requests chan int
	onDone   func()

	mu       sync.Mutex
	busy     bool
	finished bool
	closed   bool
	err      error
}

// NewSpectator connects eng and builds the game screen. onDone is called
// when the user leaves the screen.
func NewSpectator(app *tview.Application, c *config.Config, eng engine.GameEngine, title string, onDone func()) (*Spectator, error) {
	s := &Spectator{
		app:      app,
		eng:      eng,
		board:    NewBoardView(c),
		info:     NewInfoPanel(title),
		hint:     tview.NewTextView(),
		requests: make(chan int, 1),
		onDone:   onDone,
	}
	s.hint.SetDynamicColors(true)

	eng.OnMove(func(m types.Move, moveNumber int, state *types.BoardState) {
		s.app.QueueUpdateDraw(func() {
			s.info.AddMove(m)
			s.setState(state)
		})
	})
	eng.OnGameEnd(func(outcome string) {
		s.mu.Lock()
		s.finished = true
		s.mu.Unlock()
		state := eng.GetBoardState()
		s.app.QueueUpdateDraw(func() {
			s.setState(state)
		})
	})

	if err := eng.Connect(); err != nil {
		return nil, err
	}
	s.finished = eng.Finished()
	s.flex = CreateGameLayout(s.board, s.info, s.hint)
	s.board.Box.SetInputCapture(s.handleInput)
	s.setState(eng.GetBoardState())

	go s.worker()
	return s, nil
}

// Flex returns the flex container for this UI.
func (s *Spectator) Flex() *tview.Flex {
	return s.flex
}

// Focus returns the primitive that should receive key events.
func (s *Spectator) Focus() tview.Primitive {
	return s.board.Box
}

// setState must run on the application goroutine.
func (s *Spectator) setState(state *types.BoardState) {
	s.board.SetBoardState(state)
	s.info.SetBoardState(state)
	s.refreshHint()
}

func (s *Spectator) worker() {
	for n := range s.requests {
		err := s.play(n)
		s.mu.Lock()
		s.busy = false
		s.err = err
		s.mu.Unlock()
		if err != nil {
			log.Error().Err(err).Msg("step failed")
		}
		s.app.QueueUpdateDraw(s.refreshHint)
	}
}

func (s *Spectator) play(n int) error {
	for n == runToEnd || n > 0 {
		if s.eng.Finished() {
			return nil
		}
		if err := s.eng.Step(); err != nil {
			if errors.Is(err, engine.ErrGameOver) {
				return nil
			}
			return err
		}
		if n > 0 {
			n--
		}
	}
	return nil
}

// request queues n turns, or the rest of the game for runToEnd. Requests
// made while a previous one is running are dropped.
func (s *Spectator) request(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy || s.finished || s.closed {
		return
	}
	s.busy = true
	s.requests <- n
	s.refreshHintLocked()
}

func (s *Spectator) handleInput(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyEnter:
		s.request(1)
		return nil
	case tcell.KeyEscape:
		s.leave()
		return nil
	case tcell.KeyRune:
		switch event.Rune() {
		case ' ':
			s.request(1)
			return nil
		case 'a':
			s.request(runToEnd)
			return nil
		case 'q':
			s.leave()
			return nil
		}
	}
	return event
}

func (s *Spectator) leave() {
	s.Close()
	if s.onDone != nil {
		s.onDone()
	}
}

// Close stops the worker and releases the engine. A request in progress
// finishes first.
func (s *Spectator) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	close(s.requests)
	s.mu.Unlock()
	s.eng.Close()
}

func (s *Spectator) refreshHint() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshHintLocked()
}

func (s *Spectator) refreshHintLocked() {
	var statusLine, controlsLine string
	switch {
	case s.err != nil:
		statusLine = fmt.Sprintf("  [red]%s[-]", s.err)
		controlsLine = "\n  q quit"
	case s.finished:
		statusLine = fmt.Sprintf("  Result: %s", s.eng.GetBoardState().Outcome)
		controlsLine = "\n  q quit"
	case s.busy:
		statusLine = "  ◌ Thinking..."
		controlsLine = "\n  q quit"
	default:
		statusLine = fmt.Sprintf("  %s to move", s.board.BoardState.PlayerToMove)
		controlsLine = "\n  space/⏎ step   a run to end   q quit"
	}
	s.hint.SetText(statusLine + controlsLine)
}
