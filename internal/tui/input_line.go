package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

var inputLineBreaks = strings.NewReplacer("\n", " ", "\r", " ")

// renderInputLine renders a text input as exactly one line of bodyW columns on the
// input background. A non-empty status (search pending, name length) sits at the right
// edge; the input is truncated to make room for it, and the status is dropped when the
// line cannot fit both.
func renderInputLine(bodyW int, inputView, status string) string {
	if bodyW < 10 {
		bodyW = 10
	}

	left := " " + inputLineBreaks.Replace(inputView) + " "
	if status != "" {
		right := " " + styleMuted().Background(colorInputBg).Render(status) + " "
		room := bodyW - xansi.StringWidth(right)
		if room >= 10 {
			if xansi.StringWidth(left) > room {
				left = xansi.Truncate(left, room-1, "…") + " "
			}
			gap := lipgloss.NewStyle().Background(colorInputBg).
				Render(strings.Repeat(" ", room-xansi.StringWidth(left)))
			left += gap + right
		}
	}

	line := lipgloss.PlaceHorizontal(
		bodyW,
		lipgloss.Left,
		left,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(colorInputBg),
	)
	if xansi.StringWidth(line) > bodyW {
		// Terminate styling so the cut does not bleed into the next line.
		line = xansi.Cut(line, 0, bodyW) + "\x1b[0m"
	}
	return line
}
