package ui

import "github.com/charmbracelet/lipgloss"

var (
	ColorPrimary   = lipgloss.Color("#86A9C1")
	ColorSuccess   = lipgloss.Color("#10B981")
	ColorFailure   = lipgloss.Color("#EF4444")
	ColorWarning   = lipgloss.Color("#F59E0B")
	ColorInfo      = lipgloss.Color("#3B82F6")
	ColorMuted     = lipgloss.Color("#6B7280")
	ColorBorder    = lipgloss.Color("#3B3D3F")
	ColorHighlight = lipgloss.Color("#343639")
	ColorSurface   = lipgloss.Color("#292B2D")

	StylePane = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	StylePaneFocused = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorPrimary)

	StyleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F9FAFB")).
			Background(ColorSurface).
			Padding(0, 1)

	StyleCard = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	StyleCardFocused = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorPrimary).
				Padding(0, 1)

	StyleBadge = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#111827")).
			Background(ColorPrimary).
			Padding(0, 1)

	StyleButton = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#111827")).
			Background(ColorPrimary).
			Padding(0, 2)

	StyleButtonDisabled = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Background(ColorHighlight).
				Padding(0, 2)

	StyleTitle   = lipgloss.NewStyle().Bold(true)
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleFailure = lipgloss.NewStyle().Foreground(ColorFailure)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleInfo    = lipgloss.NewStyle().Foreground(ColorInfo)
	StyleMuted   = lipgloss.NewStyle().Foreground(ColorMuted)

	StyleMatch = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FCD34D"))
)

// LevelStyle maps a notice level to its color.
func LevelStyle(level ToastLevel) lipgloss.Style {
	switch level {
	case ToastError:
		return StyleFailure
	case ToastWarning:
		return StyleWarning
	case ToastSuccess:
		return StyleSuccess
	default:
		return StyleInfo
	}
}

func LevelIcon(level ToastLevel) string {
	switch level {
	case ToastError:
		return StyleFailure.Render("X")
	case ToastWarning:
		return StyleWarning.Render("!")
	case ToastSuccess:
		return StyleSuccess.Render("V")
	default:
		return StyleInfo.Render("i")
	}
}
