package app

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

func truncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if xansi.StringWidth(text) <= width {
		return text
	}
	if width <= 1 {
		return xansi.Truncate(text, width, "")
	}
	return xansi.Truncate(text, width, "…")
}

func padToWidth(text string, width int) string {
	gap := width - xansi.StringWidth(text)
	if gap <= 0 {
		return text
	}
	return text + strings.Repeat(" ", gap)
}

// truncateName is for plain (unstyled) strings where rune-level width is
// enough and no ANSI sequences can appear.
func truncateName(name string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(name) <= width {
		return name
	}
	return runewidth.Truncate(name, width, "…")
}
