// Package selector implements a single-choice picker with type-to-filter.
package selector

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/docmcquery/mcquery-tui/internal/match"
	"github.com/docmcquery/mcquery-tui/internal/model"
	"github.com/docmcquery/mcquery-tui/internal/ui"
)

const NothingFound = "Nothing found."

const defaultRows = 6

// ChangeFunc is invoked once for every change of selection. A nil option
// means the selection was cleared.
type ChangeFunc func(*model.Option) tea.Cmd

type Model struct {
	options     []model.Option
	filtered    []int
	selected    *model.Option
	placeholder string
	onChange    ChangeFunc

	input    textinput.Model
	cursor   int
	open     bool
	focused  bool
	disabled bool
	width    int
	rows     int
}

func New(options []model.Option, placeholder string, onChange ChangeFunc) Model {
	ti := textinput.New()
	ti.Placeholder = "Type to filter..."
	ti.CharLimit = 128
	ti.Prompt = "/ "

	m := Model{
		placeholder: placeholder,
		onChange:    onChange,
		input:       ti,
		width:       40,
		rows:        defaultRows,
	}
	m.options = append([]model.Option(nil), options...)
	m.refilter()
	return m
}

// SetOptions replaces the option list. A selection that is no longer
// offered is dropped and reported through the change callback.
func (m *Model) SetOptions(options []model.Option) tea.Cmd {
	m.options = append([]model.Option(nil), options...)
	m.refilter()
	if m.selected != nil && model.FindOption(m.options, m.selected.Value) == nil {
		m.selected = nil
		return m.notify()
	}
	return nil
}

func (m *Model) SetDisabled(disabled bool) {
	m.disabled = disabled
	if disabled {
		m.close()
	}
}

func (m *Model) SetWidth(w int) {
	if w < 10 {
		w = 10
	}
	m.width = w
	m.input.Width = w - 4
}

func (m *Model) SetRows(n int) {
	if n < 1 {
		n = 1
	}
	m.rows = n
}

func (m *Model) Focus() { m.focused = true }

func (m *Model) Blur() {
	m.focused = false
	m.close()
}

func (m Model) Focused() bool  { return m.focused }
func (m Model) Disabled() bool { return m.disabled }
func (m Model) IsOpen() bool   { return m.open }

// Selected returns a copy of the current selection, or nil.
func (m Model) Selected() *model.Option {
	if m.selected == nil {
		return nil
	}
	sel := *m.selected
	return &sel
}

func (m Model) Options() []model.Option { return m.options }

// Visible returns the options that pass the current filter, in display order.
func (m Model) Visible() []model.Option {
	out := make([]model.Option, 0, len(m.filtered))
	for _, i := range m.filtered {
		out = append(out, m.options[i])
	}
	return out
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.focused || m.disabled {
		return m, nil
	}

	if !m.open {
		switch {
		case key.Matches(keyMsg, ui.Keys.Enter), key.Matches(keyMsg, ui.Keys.Down),
			keyMsg.String() == " ":
			m.openList()
		}
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		m.close()
		return m, nil
	case "up", "ctrl+p":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "ctrl+n":
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
		}
		return m, nil
	case "enter":
		if len(m.filtered) == 0 {
			return m, nil
		}
		opt := m.options[m.filtered[m.cursor]]
		return m, m.choose(opt)
	}

	var cmd tea.Cmd
	prev := m.input.Value()
	m.input, cmd = m.input.Update(keyMsg)
	if m.input.Value() != prev {
		m.refilter()
		m.cursor = 0
	}
	return m, cmd
}

// Choose selects opt as if the user picked it. Picking the current
// selection again clears it.
func (m *Model) Choose(value string) tea.Cmd {
	opt := model.FindOption(m.options, value)
	if opt == nil {
		return nil
	}
	return m.choose(*opt)
}

func (m *Model) choose(opt model.Option) tea.Cmd {
	if m.selected != nil && m.selected.Value == opt.Value {
		m.selected = nil
	} else {
		m.selected = &opt
	}
	m.close()
	return m.notify()
}

func (m *Model) notify() tea.Cmd {
	if m.onChange == nil {
		return nil
	}
	return m.onChange(m.Selected())
}

func (m *Model) openList() {
	m.open = true
	m.input.SetValue("")
	m.input.Focus()
	m.refilter()
	m.cursor = 0
	if m.selected != nil {
		for i, idx := range m.filtered {
			if m.options[idx].Value == m.selected.Value {
				m.cursor = i
				break
			}
		}
	}
}

func (m *Model) close() {
	m.open = false
	m.input.Blur()
	m.input.SetValue("")
	m.refilter()
}

func (m *Model) refilter() {
	labels := make([]string, len(m.options))
	for i, o := range m.options {
		labels[i] = o.Label
	}
	m.filtered = match.Filter(m.input.Value(), labels)
	if m.cursor >= len(m.filtered) {
		m.cursor = 0
	}
}

func (m Model) View() string {
	border := ui.StylePane
	if m.focused && !m.disabled {
		border = ui.StylePaneFocused
	}
	border = border.Width(m.width - 2)

	if !m.open {
		return border.Render(m.collapsed())
	}

	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if len(m.filtered) == 0 {
		b.WriteString(ui.StyleMuted.Render("  " + NothingFound))
		return border.Render(b.String())
	}

	start := 0
	if m.cursor >= m.rows {
		start = m.cursor - m.rows + 1
	}
	end := start + m.rows
	if end > len(m.filtered) {
		end = len(m.filtered)
	}

	query := m.input.Value()
	plain := lipgloss.NewStyle()
	for i := start; i < end; i++ {
		opt := m.options[m.filtered[i]]
		label := lipgloss.StyleRunes(opt.Label, match.Highlights(query, opt.Label), ui.StyleMatch, plain)

		check := "  "
		if m.selected != nil && m.selected.Value == opt.Value {
			check = ui.StyleSuccess.Render("✓ ")
		}
		line := check + label
		if i == m.cursor {
			line = lipgloss.NewStyle().Background(ui.ColorHighlight).Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return border.Render(b.String())
}

func (m Model) collapsed() string {
	text := ui.StyleMuted.Render(m.placeholder)
	if m.selected != nil {
		text = m.selected.Label
	}
	if m.disabled {
		text = ui.StyleMuted.Render(m.labelOrPlaceholder())
	}
	return text + ui.StyleMuted.Render("  ▾")
}

func (m Model) labelOrPlaceholder() string {
	if m.selected != nil {
		return m.selected.Label
	}
	return m.placeholder
}
