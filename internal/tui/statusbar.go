package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/docmcquery/mcquery-tui/internal/ui"
)

var (
	statusBarStyle = lipgloss.NewStyle().Background(lipgloss.Color("#111827"))
	hintStyle      = lipgloss.NewStyle().Foreground(ui.ColorMuted)
)

// RenderStatusBar lays out the current page badge, the active notice and
// the key hints. Hints are cut first when the terminal is narrow; the
// notice is never dropped.
func RenderStatusBar(route ui.Route, notice, hints string, width int) string {
	left := " " + ui.StyleBadge.Render(strings.ToUpper(route.String()))
	if notice != "" {
		left += " " + notice
	}

	room := width - lipgloss.Width(left) - 1
	right := ""
	if room > 0 && hints != "" {
		right = hintStyle.MaxWidth(room).Render(hints + " ")
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	return statusBarStyle.Width(width).
		Render(lipgloss.JoinHorizontal(lipgloss.Top, left, strings.Repeat(" ", gap), right))
}
