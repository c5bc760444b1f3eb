// Package confirm is a modal yes/no question resolved with a ResultMsg.
package confirm

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/docmcquery/mcquery-tui/internal/ui"
)

type Action string

const ActionSignOut Action = "sign-out"

type ResultMsg struct {
	Confirmed bool
	Action    Action
}

type keyMap struct {
	Accept key.Binding
	Reject key.Binding
	Toggle key.Binding
	Choose key.Binding
}

var keys = keyMap{
	Accept: key.NewBinding(key.WithKeys("y", "Y")),
	Reject: key.NewBinding(key.WithKeys("n", "N", "esc")),
	Toggle: key.NewBinding(key.WithKeys("tab", "shift+tab", "left", "right", "h", "l")),
	Choose: key.NewBinding(key.WithKeys("enter")),
}

type Model struct {
	Title   string
	Message string
	Action  Action
	// AcceptLabel and RejectLabel name the two buttons.
	AcceptLabel string
	RejectLabel string

	active    bool
	accepting bool
}

func New(title, message string, action Action) Model {
	return Model{
		Title:       title,
		Message:     message,
		Action:      action,
		AcceptLabel: "Yes",
		RejectLabel: "No",
		active:      true,
	}
}

// SignOut asks whether to leave the search page. Any running search is
// abandoned when the user accepts.
func SignOut(hospital string) Model {
	msg := "Any running search will be cancelled and you will return to hospital selection."
	if hospital != "" {
		msg = fmt.Sprintf("Sign out of %s?\n%s", hospital, msg)
	}
	m := New("Sign out", msg, ActionSignOut)
	m.AcceptLabel = "Sign out"
	m.RejectLabel = "Stay"
	return m
}

func (m Model) IsActive() bool { return m.active }

// Hints describes the dialog keys for the status bar.
func (m Model) Hints() string {
	return fmt.Sprintf("y: %s  n: %s  tab: switch", m.AcceptLabel, m.RejectLabel)
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !m.active || !ok {
		return m, nil
	}
	switch {
	case key.Matches(k, keys.Accept):
		return m.finish(true)
	case key.Matches(k, keys.Reject):
		return m.finish(false)
	case key.Matches(k, keys.Choose):
		return m.finish(m.accepting)
	case key.Matches(k, keys.Toggle):
		m.accepting = !m.accepting
	}
	return m, nil
}

func (m Model) finish(confirmed bool) (Model, tea.Cmd) {
	m.active = false
	res := ResultMsg{Confirmed: confirmed, Action: m.Action}
	return m, func() tea.Msg { return res }
}

func (m Model) View() string {
	if !m.active {
		return ""
	}

	accept, reject := ui.StyleButtonDisabled, ui.StyleButton
	if m.accepting {
		accept, reject = ui.StyleButton.Background(ui.ColorWarning), ui.StyleButtonDisabled
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		accept.Render(m.AcceptLabel), "  ", reject.Render(m.RejectLabel))

	body := lipgloss.JoinVertical(lipgloss.Left,
		ui.StyleTitle.Foreground(ui.ColorWarning).Render(m.Title),
		"",
		m.Message,
		"",
		buttons,
	)
	return ui.StylePane.
		BorderForeground(ui.ColorWarning).
		Padding(1, 2).
		Width(54).
		Render(body)
}
