package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// renderInputLine pads the rendered sections to width on the input
// background and never lets the line wrap.
func renderInputLine(width int, view string, bg lipgloss.TerminalColor) string {
	if width < 10 {
		width = 10
	}
	view = strings.ReplaceAll(view, "\n", " ")
	view = strings.ReplaceAll(view, "\r", " ")

	line := lipgloss.PlaceHorizontal(
		width,
		lipgloss.Left,
		" "+view+" ",
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(bg),
	)
	if xansi.StringWidth(line) > width {
		// Terminate styling so the cut does not bleed.
		line = xansi.Cut(line, 0, width) + "\x1b[0m"
	}
	return line
}
