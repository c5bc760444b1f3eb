package home

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/docmcquery/mcquery-tui/internal/model"
	"github.com/docmcquery/mcquery-tui/internal/tui/selector"
	"github.com/docmcquery/mcquery-tui/internal/ui"
)

const (
	Tagline = "We deliver fast and relevant medical insights so you can deliver personalized and informed medical care."
	Prompt  = "Before we begin, please select your hospital."
)

type Model struct {
	hospitals selector.Model
	width     int
	height    int
}

func New(hospitals []model.Hospital) Model {
	sel := selector.New(hospitals, "Select a hospital...", func(o *model.Option) tea.Cmd {
		if o == nil {
			return nil
		}
		value := o.Value
		return func() tea.Msg {
			return ui.NavigateMsg{Route: ui.RouteLogin, Hospital: value}
		}
	})
	sel.Focus()
	return Model{hospitals: sel}
}

// CapturesKeys reports whether text input currently owns the keyboard.
func (m Model) CapturesKeys() bool { return m.hospitals.IsOpen() }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		w := msg.Width / 2
		if w > 60 {
			w = 60
		}
		m.hospitals.SetWidth(w)
		return m, nil
	}
	var cmd tea.Cmd
	m.hospitals, cmd = m.hospitals.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	textW := m.width - 8
	if textW > 72 {
		textW = 72
	}
	if textW < 20 {
		textW = 20
	}
	text := lipgloss.NewStyle().Width(textW).Align(lipgloss.Center)

	body := lipgloss.JoinVertical(lipgloss.Center,
		ui.StyleTitle.Foreground(ui.ColorPrimary).Render("Doc McQuery"),
		"",
		text.Render(Tagline),
		"",
		text.Render(Prompt),
		"",
		m.hospitals.View(),
		ui.StyleMuted.Render("enter: choose hospital"),
	)
	if m.width == 0 || m.height == 0 {
		return body
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}
