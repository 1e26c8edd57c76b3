package components

import (
	"strings"

	"github.com/theirongolddev/buyrent/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar with key hints on the left
// and info on the right.
func RenderStatusBar(width int, hints, info string) string {
	t := theme.Active

	hintStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	infoStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface)

	left := " " + hints
	right := ""
	if info != "" {
		right = info + " "
	}

	// Pad middle
	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	return hintStyle.Render(left+strings.Repeat(" ", padding)) + infoStyle.Render(right)
}
