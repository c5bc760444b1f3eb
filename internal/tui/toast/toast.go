package toast

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/docmcquery/mcquery-tui/internal/ui"
)

const DefaultDuration = 4 * time.Second

// ExpiredMsg clears the toast with the matching ID. Toasts replaced
// before their timer fires ignore it.
type ExpiredMsg struct {
	ID int
}

type Model struct {
	duration time.Duration
	id       int
	level    ui.ToastLevel
	text     string
	visible  bool
}

func New(duration time.Duration) Model {
	if duration <= 0 {
		duration = DefaultDuration
	}
	return Model{duration: duration}
}

// Show replaces the current toast and returns the expiry timer.
func (m *Model) Show(msg ui.ToastMsg) tea.Cmd {
	m.id++
	m.level = msg.Level
	m.text = msg.Text
	m.visible = true
	id := m.id
	return tea.Tick(m.duration, func(time.Time) tea.Msg {
		return ExpiredMsg{ID: id}
	})
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ui.ToastMsg:
		cmd := m.Show(msg)
		return m, cmd
	case ExpiredMsg:
		if msg.ID == m.id {
			m.visible = false
		}
	}
	return m, nil
}

func (m Model) Visible() bool { return m.visible }
func (m Model) Text() string  { return m.text }

func (m Model) View() string {
	if !m.visible {
		return ""
	}
	return ui.LevelIcon(m.level) + " " +
		ui.LevelStyle(m.level).Render(m.text)
}
