package ui

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"

	"reversi-local/types"
)

const maxVisibleMoves = 12

// InfoPanel displays piece counts and move history alongside the board.
type InfoPanel struct {
	box        *tview.TextView
	boardState *types.BoardState
	moves      []types.Move
	title      string
}

// NewInfoPanel creates a new info panel. title names the game, e.g. the
// two players.
func NewInfoPanel(title string) *InfoPanel {
	panel := &InfoPanel{
		box:   tview.NewTextView(),
		title: title,
	}

	panel.box.SetDynamicColors(true)
	panel.box.SetBorder(false)
	panel.box.SetTextAlign(tview.AlignLeft)

	return panel
}

// Box returns the underlying tview component.
func (p *InfoPanel) Box() *tview.TextView {
	return p.box
}

// SetBoardState updates the panel with current board state.
func (p *InfoPanel) SetBoardState(state *types.BoardState) {
	p.boardState = state
	p.refresh()
}

// AddMove appends a move to the history shown.
func (p *InfoPanel) AddMove(m types.Move) {
	p.moves = append(p.moves, m)
}

func (p *InfoPanel) refresh() {
	p.box.SetText(infoText(p.title, p.boardState, p.moves))
}

func colorTag(c types.CellState) string {
	switch c {
	case types.Black:
		return "[white]B[-]"
	case types.White:
		return "[dimgray]W[-]"
	}
	return "-"
}

// infoText builds the panel contents.
func infoText(title string, state *types.BoardState, moves []types.Move) string {
	if state == nil {
		return ""
	}
	var sb strings.Builder

	sb.WriteString("[white::b]Game Info[-:-:-]\n")
	sb.WriteString("[dimgray]──────────────────────[-:-:-]\n")
	if title != "" {
		sb.WriteString(fmt.Sprintf("[dimgray]%s[-]\n", title))
	}
	sb.WriteString(fmt.Sprintf("[white]Move:[-:-:-] %d\n", state.MoveNumber))
	sb.WriteString(fmt.Sprintf("[white]Black:[-:-:-] %d\n", state.Count(types.Black)))
	sb.WriteString(fmt.Sprintf("[white]White:[-:-:-] %d\n", state.Count(types.White)))
	if state.Finished() {
		sb.WriteString(fmt.Sprintf("[yellow]%s[-]\n", state.Outcome))
	} else {
		sb.WriteString(fmt.Sprintf("[white]To move:[-:-:-] %s\n", colorTag(state.PlayerToMove)))
	}

	if len(moves) > 0 {
		sb.WriteString("\n[white::b]Moves[-:-:-]\n")
		sb.WriteString("[dimgray]──────────────────────[-:-:-]\n")

		start := 0
		if len(moves) > maxVisibleMoves {
			start = len(moves) - maxVisibleMoves
		}
		for i := start; i < len(moves); i++ {
			m := moves[i]
			marker := " "
			if i == len(moves)-1 {
				marker = "[white]>[-]"
			}
			sb.WriteString(fmt.Sprintf("%s[dimgray]%3d.[-] %s %d %d\n", marker, i+1, colorTag(m.Player), m.Pos.Row, m.Pos.Col))
		}
		if start > 0 {
			sb.WriteString(fmt.Sprintf("[dimgray]  ··· %d earlier[-]\n", start))
		}
	}
	return sb.String()
}

// CreateGameLayout creates the main game layout with board and side panel.
func CreateGameLayout(board *BoardView, panel *InfoPanel, hint *tview.TextView) *tview.Flex {
	// Create horizontal flex: board | info panel
	boardRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	boardRow.AddItem(board.Box, 0, 1, true)
	boardRow.AddItem(panel.Box(), 26, 0, false)

	// Main vertical flex: board area on top, status bar at bottom
	mainFlex := tview.NewFlex().SetDirection(tview.FlexRow)
	mainFlex.AddItem(boardRow, 0, 1, true)
	mainFlex.AddItem(hint, 2, 0, false)

	return mainFlex
}
