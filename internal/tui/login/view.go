package login

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/docmcquery/mcquery-tui/internal/auth"
	"github.com/docmcquery/mcquery-tui/internal/model"
	"github.com/docmcquery/mcquery-tui/internal/ui"
)

const (
	MissingCredentialsMessage = "Please enter both your username and password"
	WrongPasswordMessage      = "Incorrect password. Please try again."
	loginFailedMessage        = "Could not sign in"
)

type Authenticator interface {
	Login(username, password, hospital string) (*auth.Session, error)
}

// credentials lives on the heap so huh's field bindings survive model copies.
type credentials struct {
	username string
	password string
}

type Model struct {
	hospital model.Hospital
	authn    Authenticator
	creds    *credentials
	form     *huh.Form
	width    int
	height   int
}

func New(hospital model.Hospital, authn Authenticator) Model {
	m := Model{
		hospital: hospital,
		authn:    authn,
		creds:    &credentials{},
	}
	m.form = m.buildForm()
	return m
}

func (m Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("username").
				Title("Username").
				Value(&m.creds.username),
			huh.NewInput().
				Key("password").
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.creds.password),
		),
	).WithShowHelp(false).WithWidth(40)
}

func (m Model) Hospital() model.Hospital { return m.hospital }

// CapturesKeys is always true: the form owns the keyboard.
func (m Model) CapturesKeys() bool { return true }

func (m Model) Init() tea.Cmd {
	return m.form.Init()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "esc" {
			return m, func() tea.Msg { return ui.NavigateMsg{Route: ui.RouteHome} }
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	if m.form.State == huh.StateCompleted {
		return m, m.submit()
	}
	return m, cmd
}

// submit checks the entered credentials. Failures keep the username,
// clear the password and rebuild the form for another attempt.
func (m *Model) submit() tea.Cmd {
	session, err := m.authn.Login(m.creds.username, m.creds.password, m.hospital.Value)
	if err == nil {
		return func() tea.Msg { return ui.LoggedInMsg{Session: session} }
	}

	text := loginFailedMessage
	switch {
	case errors.Is(err, auth.ErrMissingCredentials):
		text = MissingCredentialsMessage
	case errors.Is(err, auth.ErrInvalidCredentials):
		text = WrongPasswordMessage
	}
	m.creds.password = ""
	m.form = m.buildForm()
	return tea.Batch(
		m.form.Init(),
		func() tea.Msg { return ui.ToastMsg{Level: ui.ToastError, Text: text} },
	)
}

func (m Model) View() string {
	banner := lipgloss.NewStyle().
		Width(44).
		Align(lipgloss.Center).
		Padding(1, 0).
		Bold(true).
		Background(ui.ColorBorder).
		Render(m.hospital.Label)

	card := lipgloss.NewStyle().
		Padding(1, 2).
		Background(ui.ColorSurface).
		Render(lipgloss.JoinVertical(lipgloss.Left,
			banner,
			"",
			m.form.View(),
			"",
			ui.StyleMuted.Render("enter: next / login  esc: back"),
		))

	if m.width == 0 || m.height == 0 {
		return card
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, card)
}
