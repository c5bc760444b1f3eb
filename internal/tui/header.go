package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/docmcquery/mcquery-tui/internal/ui"
)

func RenderHeader(hospital, username string, width int) string {
	title := " Doc McQuery"
	if hospital != "" {
		title = fmt.Sprintf(" Doc McQuery | %s", hospital)
	}
	left := lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.Color("#F9FAFB")).
		Render(title)

	user := ""
	if username != "" {
		user = lipgloss.NewStyle().Foreground(ui.ColorPrimary).
			Render(fmt.Sprintf("signed in as %s ", username))
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(user)
	if gap < 0 {
		gap = 0
	}
	padding := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.NewStyle().
		Background(ui.ColorSurface).
		Width(width).
		Render(left + padding + user)
}
