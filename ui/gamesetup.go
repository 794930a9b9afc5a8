package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"reversi-local/engine"
)

var (
	setupSizes  = []int{4, 6, 8, 10, 12}
	setupDepths = []int{1, 2, 3, 4, 5, 6}
)

// GameSetupUI provides a form for configuring a self-play game.
type GameSetupUI struct {
	form   *tview.Form
	flex   *tview.Flex
	config engine.GameConfig
}

// NewGameSetup creates a setup form starting from initial. onHistory may be
// nil to hide the history button.
func NewGameSetup(initial engine.GameConfig, onStart func(engine.GameConfig), onHistory func(), onCancel func()) *GameSetupUI {
	setup := &GameSetupUI{config: initial}
	setup.config.BoardSize = setupSizes[indexOf(setupSizes, initial.BoardSize)]
	setup.config.BlackDepth = setupDepths[indexOf(setupDepths, initial.BlackDepth)]
	setup.config.WhiteDepth = setupDepths[indexOf(setupDepths, initial.WhiteDepth)]

	form := tview.NewForm()

	form.AddDropDown("Board Size", optionLabels(setupSizes, "%dx%d"), indexOf(setupSizes, initial.BoardSize), func(option string, index int) {
		setup.config.BoardSize = setupSizes[index]
	})
	form.AddDropDown("Black Depth", optionLabels(setupDepths, "%d"), indexOf(setupDepths, initial.BlackDepth), func(option string, index int) {
		setup.config.BlackDepth = setupDepths[index]
	})
	form.AddDropDown("White Depth", optionLabels(setupDepths, "%d"), indexOf(setupDepths, initial.WhiteDepth), func(option string, index int) {
		setup.config.WhiteDepth = setupDepths[index]
	})

	form.AddButton("Watch Game", func() {
		onStart(setup.config)
	})
	if onHistory != nil {
		form.AddButton("History", onHistory)
	}
	form.AddButton("Quit", onCancel)

	form.SetBorder(true)
	form.SetTitle(" New Game ")
	form.SetTitleAlign(tview.AlignCenter)
	form.SetButtonBackgroundColor(tcell.ColorDarkCyan)
	form.SetButtonTextColor(tcell.ColorWhite)

	helpText := tview.NewTextView().
		SetText("Tab/Shift+Tab: navigate fields  |  Arrow keys: change dropdown  |  Enter: confirm").
		SetTextAlign(tview.AlignCenter)
	helpText.SetTextColor(tcell.ColorGray)

	flex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(form, 0, 1, true).
		AddItem(helpText, 1, 0, false)

	setup.form = form
	setup.flex = flex
	return setup
}

// Form returns the flex container with form and help text.
func (s *GameSetupUI) Form() *tview.Flex {
	return s.flex
}

// Config returns the configuration currently selected.
func (s *GameSetupUI) Config() engine.GameConfig {
	return s.config
}

func optionLabels(values []int, format string) []string {
	labels := make([]string, len(values))
	for i, v := range values {
		if format == "%dx%d" {
			labels[i] = fmt.Sprintf(format, v, v)
		} else {
			labels[i] = fmt.Sprintf(format, v)
		}
	}
	return labels
}

// indexOf returns the index of v in values, or 0 when absent.
func indexOf(values []int, v int) int {
	for i, x := range values {
		if x == v {
			return i
		}
	}
	return 0
}
