package searchpage

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/docmcquery/mcquery-tui/internal/model"
	"github.com/docmcquery/mcquery-tui/internal/tui/selector"
	"github.com/docmcquery/mcquery-tui/internal/ui"
	"github.com/docmcquery/mcquery-tui/internal/workflow"
)

const (
	PromptMessage            = "Select a patient and enter symptoms to get started!"
	SearchingMessage         = "Searching..."
	NoCaseStudiesMessage     = "No related case studies found!"
	NoSimilarPatientsMessage = "No similar patients found!"
)

const illustration = `   .-.
  (   )  ___
   '-'  /   \
   _|__|  +  |
  |    |\___/
  |____|`

// Opener opens a URL outside the terminal.
type Opener interface {
	Browse(url string) error
}

type focusArea int

const (
	focusPatient focusArea = iota
	focusQuery
	focusResults
)

const (
	columnCaseStudies = iota
	columnSimilar
)

type Model struct {
	ctx    context.Context
	ctrl   *workflow.Controller
	opener Opener

	patients selector.Model
	query    textinput.Model
	spinner  spinner.Model
	popup    popup

	focus  focusArea
	column int
	row    int
	width  int
	height int
}

func New(ctx context.Context, ctrl *workflow.Controller, opener Opener) Model {
	ti := textinput.New()
	ti.Placeholder = "Describe symptoms, e.g. chest pain and shortness of breath"
	ti.CharLimit = 0
	ti.Prompt = "> "

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ui.ColorPrimary)

	sel := selector.New(ctrl.Patients(), "Select a patient...", func(o *model.Option) tea.Cmd {
		ctrl.SelectPatient(o)
		return nil
	})
	sel.Focus()

	return Model{
		ctx:      ctx,
		ctrl:     ctrl,
		opener:   opener,
		patients: sel,
		query:    ti,
		spinner:  sp,
	}
}

func (m Model) Init() tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		return ui.PatientsLoadedMsg{Result: ctrl.LoadPatientDirectory(ctx)}
	}
}

// Leave abandons any in-flight search.
func (m *Model) Leave() {
	m.ctrl.Abandon()
	m.popup.close()
	m.syncControls()
}

// CapturesKeys reports whether typed characters belong to this page.
func (m Model) CapturesKeys() bool {
	if m.popup.active {
		return true
	}
	if m.ctrl.Status() == model.StatusSearching {
		return false
	}
	return m.focus == focusQuery || m.patients.IsOpen()
}

func (m Model) Status() model.SearchStatus { return m.ctrl.Status() }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.patients.SetWidth(m.width * 2 / 5)
		m.query.Width = m.width - m.width*2/5 - 20
		if m.query.Width < 10 {
			m.query.Width = 10
		}
		m.popup.setSize(msg.Width, msg.Height)
		return m, nil

	case ui.PatientsLoadedMsg:
		var cmds []tea.Cmd
		if notice := m.ctrl.ApplyPatients(msg.Result); notice != nil {
			cmds = append(cmds, toastCmd(notice))
		}
		cmds = append(cmds, m.patients.SetOptions(m.ctrl.Patients()))
		return m, tea.Batch(cmds...)

	case ui.SearchDoneMsg:
		notice := m.ctrl.CompleteSearch(msg.Result)
		m.syncControls()
		if m.ctrl.Stage() == workflow.StageResults {
			m.column = columnCaseStudies
			m.row = 0
		} else if m.focus == focusResults {
			m.setFocus(focusQuery)
		}
		if notice != nil {
			return m, toastCmd(notice)
		}
		return m, nil

	case ui.BrowseResultMsg:
		if msg.Err != nil {
			return m, func() tea.Msg {
				return ui.ToastMsg{Level: ui.ToastWarning, Text: "Could not open browser: " + msg.URL}
			}
		}
		return m, nil

	case spinner.TickMsg:
		if m.ctrl.Status() != model.StatusSearching {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	if m.focus == focusQuery {
		m.query, cmd = m.query.Update(msg)
	}
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.popup.active {
		switch {
		case key.Matches(msg, ui.Keys.Back), key.Matches(msg, ui.Keys.Quit):
			m.popup.close()
			return m, nil
		case key.Matches(msg, ui.Keys.Open):
			return m, m.browse(m.popup.study.PubMedURL())
		}
		var cmd tea.Cmd
		m.popup, cmd = m.popup.update(msg)
		return m, cmd
	}

	if key.Matches(msg, ui.Keys.Back) && !m.patients.IsOpen() {
		return m, func() tea.Msg { return ui.SignOutRequestMsg{} }
	}

	if m.ctrl.Status() == model.StatusSearching {
		return m, nil
	}

	switch {
	case key.Matches(msg, ui.Keys.Tab) && !m.patients.IsOpen():
		m.setFocus(m.nextFocus(1))
		return m, nil
	case key.Matches(msg, ui.Keys.ShiftTab) && !m.patients.IsOpen():
		m.setFocus(m.nextFocus(-1))
		return m, nil
	}

	switch m.focus {
	case focusPatient:
		var cmd tea.Cmd
		m.patients, cmd = m.patients.Update(msg)
		return m, cmd

	case focusQuery:
		if key.Matches(msg, ui.Keys.Enter) {
			return m.submit()
		}
		var cmd tea.Cmd
		m.query, cmd = m.query.Update(msg)
		m.ctrl.SetQueryText(m.query.Value())
		return m, cmd

	case focusResults:
		return m.handleResultsKey(msg)
	}
	return m, nil
}

func (m Model) handleResultsKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, ui.Keys.Left):
		m.moveColumn(columnCaseStudies)
	case key.Matches(msg, ui.Keys.Right):
		m.moveColumn(columnSimilar)
	case key.Matches(msg, ui.Keys.Up):
		if m.row > 0 {
			m.row--
		}
	case key.Matches(msg, ui.Keys.Down):
		if m.row < m.columnLen(m.column)-1 {
			m.row++
		}
	case key.Matches(msg, ui.Keys.Enter):
		if study := m.focusedStudy(); study != nil {
			m.popup.setSize(m.width, m.height)
			m.popup.open(*study)
		}
	case key.Matches(msg, ui.Keys.Open):
		if study := m.focusedStudy(); study != nil {
			return m, m.browse(study.PubMedURL())
		}
	}
	return m, nil
}

// submit starts a search when the controller allows it.
func (m Model) submit() (Model, tea.Cmd) {
	req, ok := m.ctrl.BeginSearch(m.ctx)
	if !ok {
		return m, nil
	}
	m.syncControls()
	ctrl := m.ctrl
	return m, tea.Batch(
		func() tea.Msg { return ui.SearchDoneMsg{Result: ctrl.Execute(req)} },
		m.spinner.Tick,
	)
}

func (m Model) browse(url string) tea.Cmd {
	opener := m.opener
	return func() tea.Msg {
		if opener == nil {
			return ui.BrowseResultMsg{URL: url}
		}
		return ui.BrowseResultMsg{URL: url, Err: opener.Browse(url)}
	}
}

// syncControls disables input while a search is in flight.
func (m *Model) syncControls() {
	searching := m.ctrl.Status() == model.StatusSearching
	m.patients.SetDisabled(searching)
	if searching {
		m.query.Blur()
	} else if m.focus == focusQuery {
		m.query.Focus()
	}
}

func (m *Model) setFocus(f focusArea) {
	m.focus = f
	if f == focusPatient {
		m.patients.Focus()
	} else {
		m.patients.Blur()
	}
	if f == focusQuery {
		m.query.Focus()
	} else {
		m.query.Blur()
	}
	if f == focusResults && m.columnLen(m.column) == 0 {
		m.moveColumn(columnSimilar)
	}
}

func (m Model) nextFocus(step int) focusArea {
	areas := []focusArea{focusPatient, focusQuery}
	if m.hasCards() {
		areas = append(areas, focusResults)
	}
	cur := 0
	for i, a := range areas {
		if a == m.focus {
			cur = i
		}
	}
	return areas[(cur+step+len(areas))%len(areas)]
}

func (m *Model) moveColumn(col int) {
	if m.columnLen(col) == 0 {
		return
	}
	m.column = col
	if m.row >= m.columnLen(col) {
		m.row = m.columnLen(col) - 1
	}
}

func (m Model) hasCards() bool {
	return m.ctrl.Stage() == workflow.StageResults &&
		(len(m.ctrl.CaseStudies()) > 0 || len(m.ctrl.SimilarPatients()) > 0)
}

func (m Model) columnLen(col int) int {
	if col == columnCaseStudies {
		return len(m.ctrl.CaseStudies())
	}
	return len(m.ctrl.SimilarPatients())
}

func (m Model) focusedStudy() *model.CaseStudySummary {
	studies := m.ctrl.CaseStudies()
	if m.column != columnCaseStudies || m.row >= len(studies) {
		return nil
	}
	s := studies[m.row]
	return &s
}

func toastCmd(n *workflow.Notice) tea.Cmd {
	msg := ui.ToastFromNotice(n)
	return func() tea.Msg { return msg }
}

// --- View ---

func (m Model) View() string {
	if m.popup.active {
		if m.width == 0 || m.height == 0 {
			return m.popup.View()
		}
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.popup.View())
	}

	controls := m.renderControls()
	bodyH := m.height - lipgloss.Height(controls) - 1
	if bodyH < 3 {
		bodyH = 3
	}

	var body string
	switch m.ctrl.Stage() {
	case workflow.StageLoading:
		body = m.centered(m.spinner.View()+" "+SearchingMessage, bodyH)
	case workflow.StageResults:
		body = m.renderResults(bodyH)
	default:
		body = m.centered(lipgloss.JoinVertical(lipgloss.Center,
			ui.StyleMuted.Render(illustration), "", PromptMessage), bodyH)
	}
	return controls + "\n" + body
}

func (m Model) renderControls() string {
	button := ui.StyleButtonDisabled.Render("Search")
	if m.ctrl.CanSubmit() {
		button = ui.StyleButton.Render("Search")
	}

	inputStyle := ui.StylePane
	if m.focus == focusQuery && m.ctrl.Status() != model.StatusSearching {
		inputStyle = ui.StylePaneFocused
	}
	w := m.query.Width + 4
	if w < 20 {
		w = 20
	}
	input := inputStyle.Width(w).Render(m.query.View())

	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.patients.View(), " ", input, " ",
		lipgloss.NewStyle().PaddingTop(1).Render(button))
}

func (m Model) centered(s string, h int) string {
	if m.width == 0 {
		return s
	}
	return lipgloss.Place(m.width, h, lipgloss.Center, lipgloss.Center, s)
}

func (m Model) renderResults(h int) string {
	var header string
	if in := m.ctrl.Interpretation(); in != nil {
		if terms := in.Terms(); len(terms) > 0 {
			header = ui.StyleMuted.Render("Interpreted as: ") + strings.Join(terms, ", ") + "\n"
			h -= lipgloss.Height(header)
		}
	}

	colW := (m.width - 2) / 2
	if colW < 20 {
		colW = 20
	}

	var studyCards []string
	for i, s := range m.ctrl.CaseStudies() {
		studyCards = append(studyCards, m.caseStudyCard(s, colW, m.isFocused(columnCaseStudies, i)))
	}
	var patientCards []string
	for i, p := range m.ctrl.SimilarPatients() {
		patientCards = append(patientCards, m.similarPatientCard(p, colW, m.isFocused(columnSimilar, i)))
	}

	left := m.renderColumn("Related Case Studies", studyCards, NoCaseStudiesMessage, columnCaseStudies, colW, h)
	right := m.renderColumn("Similar Patients", patientCards, NoSimilarPatientsMessage, columnSimilar, colW, h)
	return header + lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

func (m Model) isFocused(col, row int) bool {
	return m.focus == focusResults && m.column == col && m.row == row
}

// renderColumn stacks cards, scrolled so the focused card stays visible.
func (m Model) renderColumn(title string, cards []string, empty string, col, width, height int) string {
	heading := ui.StyleTitle.Render(title)
	if len(cards) == 0 {
		return lipgloss.NewStyle().Width(width).Render(heading + "\n\n" + ui.StyleMuted.Render(empty))
	}

	avail := height - 2
	start := 0
	if m.column == col && m.focus == focusResults {
		start = m.row
		used := lipgloss.Height(cards[start])
		for start > 0 {
			next := lipgloss.Height(cards[start-1])
			if used+next > avail {
				break
			}
			used += next
			start--
		}
	}

	var b strings.Builder
	used := 0
	for _, card := range cards[start:] {
		ch := lipgloss.Height(card)
		if used > 0 && used+ch > avail {
			break
		}
		b.WriteString(card)
		b.WriteString("\n")
		used += ch
	}
	return lipgloss.NewStyle().Width(width).Render(heading + "\n\n" + strings.TrimSuffix(b.String(), "\n"))
}

func (m Model) caseStudyCard(s model.CaseStudySummary, width int, focused bool) string {
	style := ui.StyleCard
	if focused {
		style = ui.StyleCardFocused
	}
	inner := width - 4
	notes := lipgloss.NewStyle().Width(inner).MaxHeight(4).Render(s.Summary.Notes)
	return style.Width(width - 2).Render(strings.Join([]string{
		ui.StyleTitle.Width(inner).Render(s.Name),
		ui.StyleBadge.Render("PMID: " + s.PubMedID),
		notes,
	}, "\n"))
}

func (m Model) similarPatientCard(p model.SimilarPatient, width int, focused bool) string {
	style := ui.StyleCard
	if focused {
		style = ui.StyleCardFocused
	}
	inner := lipgloss.NewStyle().Width(width - 4)
	bold := lipgloss.NewStyle().Bold(true)
	return style.Width(width - 2).Render(strings.Join([]string{
		ui.StyleTitle.Render(p.Headline()),
		inner.Render(bold.Render("Conditions:") + " " + p.Summary.ConditionsSummary),
		inner.Render(bold.Render("Symptoms:") + " " + p.Summary.SymptomsAndObservationsSummary),
	}, "\n"))
}
