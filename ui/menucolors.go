package ui

import "github.com/gdamore/tcell/v2"

// MenuColors defines the palette for list screens.
var MenuColors = struct {
	Label       tcell.Color // Light gray for labels
	Selected    tcell.Color // Blue accent for results
	ButtonFocus tcell.Color // Highlighted list row
	ButtonText  tcell.Color // Highlighted row text
}{
	Label:       tcell.PaletteColor(250),
	Selected:    tcell.PaletteColor(109),
	ButtonFocus: tcell.PaletteColor(109),
	ButtonText:  tcell.PaletteColor(255),
}
