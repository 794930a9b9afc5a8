package ui

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"

	"reversi-local/engine/replay"
	"reversi-local/gamelog"
	"reversi-local/types"
)

// HistoryBrowserUI provides a screen for browsing recorded games.
type HistoryBrowserUI struct {
	flex     *tview.Flex
	gameList *tview.List
	preview  *tview.Box
	hint     *tview.TextView
	dir      string
	games    []gamelog.GameInfo
	boards   map[int]*types.BoardState // cached final positions
	selected int
	onOpen   func(game gamelog.GameInfo)
	onDone   func()
}

// NewHistoryBrowser creates a history browser over the records in dir.
// onOpen is called with the selected game on Enter.
func NewHistoryBrowser(dir string, onOpen func(game gamelog.GameInfo), onDone func()) *HistoryBrowserUI {
	hb := &HistoryBrowserUI{
		dir:    dir,
		onOpen: onOpen,
		onDone: onDone,
		boards: make(map[int]*types.BoardState),
	}

	// Game list (left panel)
	hb.gameList = tview.NewList()
	hb.gameList.SetBorder(true)
	hb.gameList.SetTitle(" Game History ")
	hb.gameList.ShowSecondaryText(false)
	hb.gameList.SetHighlightFullLine(true)
	hb.gameList.SetMainTextStyle(tcell.StyleDefault.Foreground(MenuColors.Label))
	hb.gameList.SetSelectedStyle(tcell.StyleDefault.
		Foreground(MenuColors.ButtonText).
		Background(MenuColors.ButtonFocus))

	// Preview box (right panel)
	hb.preview = tview.NewBox()
	hb.preview.SetBorder(true)
	hb.preview.SetTitle(" Preview ")
	hb.preview.SetDrawFunc(hb.drawPreview)

	hb.hint = tview.NewTextView()
	hb.hint.SetDynamicColors(true)
	hb.hint.SetBorder(false)
	hb.hint.SetText("  [dimgray]⏎[-] replay  [dimgray]d[-] delete  [dimgray]q[-] quit")

	hb.gameList.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		hb.selected = index
	})
	hb.gameList.SetInputCapture(hb.handleInput)

	// Layout: list left, preview right, hint bottom
	topRow := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(hb.gameList, 44, 0, true).
		AddItem(hb.preview, 0, 1, false)

	hb.flex = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(topRow, 0, 1, true).
		AddItem(hb.hint, 1, 0, false)

	hb.loadGames()
	return hb
}

// Flex returns the flex container for this UI.
func (hb *HistoryBrowserUI) Flex() *tview.Flex {
	return hb.flex
}

// Refresh reloads the game list from disk.
func (hb *HistoryBrowserUI) Refresh() {
	hb.boards = make(map[int]*types.BoardState)
	hb.loadGames()
}

// loadGames scans the history directory for game records.
func (hb *HistoryBrowserUI) loadGames() {
	hb.gameList.Clear()
	hb.games = nil
	hb.selected = 0

	games, err := gamelog.ListGames(hb.dir)
	if err != nil {
		log.Warn().Err(err).Str("dir", hb.dir).Msg("failed to list games")
	}
	if err != nil || len(games) == 0 {
		hb.gameList.AddItem("[dimgray]No games found[-]", "", 0, nil)
		return
	}

	hb.games = games
	for _, g := range games {
		hb.gameList.AddItem(listLabel(g), "", 0, nil)
	}
}

func listLabel(g gamelog.GameInfo) string {
	result := g.Result
	if result == "" || result == "?" {
		result = "..."
	}
	return fmt.Sprintf("%s  %dx%d  %s", g.Date, g.BoardSize, g.BoardSize, result)
}

func (hb *HistoryBrowserUI) handleInput(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyEscape:
		if hb.onDone != nil {
			hb.onDone()
		}
		return nil
	case tcell.KeyEnter:
		if hb.selected >= 0 && hb.selected < len(hb.games) && hb.onOpen != nil {
			hb.onOpen(hb.games[hb.selected])
		}
		return nil
	case tcell.KeyRune:
		switch event.Rune() {
		case 'q':
			if hb.onDone != nil {
				hb.onDone()
			}
			return nil
		case 'd':
			hb.deleteSelected()
			return nil
		}
	}
	return event
}

// deleteSelected removes the currently selected game file.
func (hb *HistoryBrowserUI) deleteSelected() {
	if hb.selected < 0 || hb.selected >= len(hb.games) {
		return
	}

	game := hb.games[hb.selected]
	if err := os.Remove(game.FilePath); err != nil {
		log.Warn().Err(err).Str("file", game.FilePath).Msg("failed to delete game")
	}
	hb.Refresh()
}

// finalPosition replays a record to its last logged move.
func finalPosition(path string) (*types.BoardState, error) {
	r, err := replay.Open(path)
	if err != nil {
		return nil, err
	}
	if err := r.Connect(); err != nil {
		return nil, err
	}
	for !r.Finished() {
		if err := r.Step(); err != nil {
			return nil, err
		}
	}
	return r.GetBoardState(), nil
}

// drawPreview renders a mini board preview and game metadata.
func (hb *HistoryBrowserUI) drawPreview(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	if hb.selected < 0 || hb.selected >= len(hb.games) {
		return x, y, width, height
	}

	game := hb.games[hb.selected]

	// Lazy-load and cache the final position
	state, ok := hb.boards[hb.selected]
	if !ok {
		s, err := finalPosition(game.FilePath)
		if err != nil {
			log.Warn().Err(err).Str("file", game.FilePath).Msg("failed to replay game")
		}
		state = s
		hb.boards[hb.selected] = state
	}

	startX := x + 2
	startY := y + 1
	infoStyle := tcell.StyleDefault.Foreground(tcell.PaletteColor(250))
	dimStyle := tcell.StyleDefault.Foreground(tcell.PaletteColor(245))

	if state == nil {
		drawText(screen, startX, startY, "Unreadable game record", dimStyle)
		return x, y, width, height
	}

	size := state.Size()
	if width < size*2+4 || height < size+7 {
		return x, y, width, height
	}

	emptyStyle := tcell.StyleDefault.Foreground(tcell.PaletteColor(240))
	blackStyle := tcell.StyleDefault.Foreground(tcell.PaletteColor(255)).Bold(true)
	whiteStyle := tcell.StyleDefault.Foreground(tcell.PaletteColor(250))

	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			ch := '·'
			style := emptyStyle
			switch state.Board[row][col] {
			case types.Black:
				ch = '●'
				style = blackStyle
			case types.White:
				ch = '○'
				style = whiteStyle
			}
			screen.SetContent(startX+col*2, startY+size-row-1, ch, nil, style)
		}
	}

	// Metadata below the board
	infoY := startY + size + 1
	drawText(screen, startX, infoY, fmt.Sprintf("%dx%d", game.BoardSize, game.BoardSize), infoStyle)
	drawText(screen, startX+6, infoY, fmt.Sprintf("| %d moves", game.MoveCount), dimStyle)

	infoY++
	drawText(screen, startX, infoY, fmt.Sprintf("B: %s (%d)", game.Black, state.Count(types.Black)), dimStyle)
	infoY++
	drawText(screen, startX, infoY, fmt.Sprintf("W: %s (%d)", game.White, state.Count(types.White)), dimStyle)

	infoY++
	result := game.Result
	if result == "" || result == "?" {
		result = "Unfinished"
	}
	resultStyle := tcell.StyleDefault.Foreground(MenuColors.Selected)
	drawText(screen, startX, infoY, fmt.Sprintf("Result: %s", result), resultStyle)

	return x, y, width, height
}

// drawText writes a string to the screen at the given position.
func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	i := 0
	for _, ch := range text {
		screen.SetContent(x+i, y, ch, nil, style)
		i++
	}
}
