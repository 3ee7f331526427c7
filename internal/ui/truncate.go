package ui

import "github.com/mattn/go-runewidth"

// truncate shortens value to at most width terminal cells, ending it with
// "..." when there is room for one.
func truncate(value string, width int) string {
	switch {
	case width <= 0, runewidth.StringWidth(value) <= width:
		return value
	case width <= 3:
		return runewidth.Truncate(value, width, "")
	default:
		return runewidth.Truncate(value, width, "...")
	}
}
