// Package ui provides tview screens for watching reversi games in the terminal.
package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"reversi-local/config"
	"reversi-local/types"
)

// Indices into BoardView.styles.
const (
	styleBoard = iota
	styleBlack
	styleWhite
	styleBoardAlt
	styleLastPlayed
	styleLine
)

// BoardView draws a BoardState with row 0 at the bottom, matching the text
// rendering used in diagnostics.
type BoardView struct {
	Box        *tview.Box
	BoardState *types.BoardState
	cfg        *config.Config
	styles     []tcell.Color
}

func NewBoardView(c *config.Config) *BoardView {
	bv := &BoardView{
		Box:        tview.NewBox(),
		BoardState: &types.BoardState{LastMove: types.NoPosition},
	}
	bv.SetConfig(c)
	bv.Box.SetDrawFunc(bv.draw)
	return bv
}

func (bv *BoardView) SetConfig(c *config.Config) {
	bv.styles = []tcell.Color{
		tcell.PaletteColor(c.Theme.Colors.BoardColor),        // 0
		tcell.PaletteColor(c.Theme.Colors.BlackColor),        // 1
		tcell.PaletteColor(c.Theme.Colors.WhiteColor),        // 2
		tcell.PaletteColor(c.Theme.Colors.BoardColorAlt),     // 3
		tcell.PaletteColor(c.Theme.Colors.LastPlayedColorBG), // 4
		tcell.PaletteColor(c.Theme.Colors.LineColor),         // 5
	}
	bv.cfg = c
}

// SetBoardState replaces the displayed position.
func (bv *BoardView) SetBoardState(state *types.BoardState) {
	bv.BoardState = state
}

// Dimensions returns the width and height the board needs, including
// coordinates.
func (bv *BoardView) Dimensions() (int, int) {
	size := bv.BoardState.Size()
	return size*2 + 4, size + 1
}

func (bv *BoardView) draw(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	if bv.BoardState == nil || bv.BoardState.Size() == 0 {
		return x, y, 1, 1
	}
	size := bv.BoardState.Size()
	last := bv.BoardState.LastMove

	for row := 0; row < size; row++ {
		screenY := y + size - row - 1
		for col := 0; col < size; col++ {
			cell := bv.BoardState.Board[row][col]
			bg := styleBoard
			if (row+col)%2 == 1 {
				bg = styleBoardAlt
			}
			r, fg := bv.cellRune(cell)
			if row == last.Row && col == last.Col {
				if bv.cfg.Theme.DrawLastPlayedBackground {
					bg = styleLastPlayed
				} else if cell == types.Empty {
					r = bv.cfg.Theme.Symbols.LastPlayed
				}
			}
			style := tcell.StyleDefault.Background(bv.styles[bg]).Foreground(bv.styles[fg])
			drawCell(screen, style, r, col, screenY, x+4)
		}
	}
	drawCoordinates(screen, x, y, bv)
	w, h := bv.Dimensions()
	return x, y, w, h
}

// cellRune returns the symbol and foreground style index for a cell.
func (bv *BoardView) cellRune(cell types.CellState) (rune, int) {
	switch cell {
	case types.Black:
		return bv.cfg.Theme.Symbols.BlackDisc, styleBlack
	case types.White:
		return bv.cfg.Theme.Symbols.WhiteDisc, styleWhite
	}
	return bv.cfg.Theme.Symbols.EmptyCell, styleLine
}

// drawCell draws a cell (2 characters wide)
func drawCell(s tcell.Screen, c tcell.Style, r rune, col, screenY, left int) {
	s.SetContent(left+col*2, screenY, r, nil, c)
	s.SetContent(left+col*2+1, screenY, ' ', nil, c)
}

func drawCoordinates(s tcell.Screen, x, y int, bv *BoardView) {
	size := bv.BoardState.Size()
	last := bv.BoardState.LastMove
	style := tcell.StyleDefault
	lpHighlight := tcell.StyleDefault.Background(bv.styles[styleLastPlayed])

	for col := 0; col < size; col++ {
		_style := style
		if col == last.Col {
			_style = lpHighlight
		}
		label := fmt.Sprintf("%-2d", col)
		s.SetContent(x+4+col*2, y+size, rune(label[0]), nil, _style)
		s.SetContent(x+4+col*2+1, y+size, rune(label[1]), nil, _style)
	}

	for row := 0; row < size; row++ {
		_style := style
		if row == last.Row {
			_style = lpHighlight
		}
		label := fmt.Sprintf("%2d", row)
		screenY := y + size - row - 1
		s.SetContent(x+1, screenY, rune(label[0]), nil, _style)
		s.SetContent(x+2, screenY, rune(label[1]), nil, _style)
	}
}
