package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/docmcquery/mcquery-tui/internal/auth"
	"github.com/docmcquery/mcquery-tui/internal/config"
	"github.com/docmcquery/mcquery-tui/internal/model"
	"github.com/docmcquery/mcquery-tui/internal/tui/confirm"
	"github.com/docmcquery/mcquery-tui/internal/tui/home"
	"github.com/docmcquery/mcquery-tui/internal/tui/login"
	"github.com/docmcquery/mcquery-tui/internal/tui/searchpage"
	"github.com/docmcquery/mcquery-tui/internal/tui/toast"
	"github.com/docmcquery/mcquery-tui/internal/ui"
	"github.com/docmcquery/mcquery-tui/internal/workflow"
)

// Backend is the remote service behind the search page.
type Backend interface {
	workflow.PatientDirectory
	workflow.SearchQuerier
}

type Authenticator interface {
	login.Authenticator
	Verify(token string) (*auth.Claims, error)
}

type App struct {
	ctx     context.Context
	cfg     config.Config
	backend Backend
	authn   Authenticator
	opener  searchpage.Opener
	log     zerolog.Logger

	// Pages
	homePage      home.Model
	loginPage     login.Model
	searchPage    searchpage.Model
	confirmDialog confirm.Model
	toast         toast.Model

	// State
	route    ui.Route
	hospital *model.Hospital
	session  *auth.Session
	width    int
	height   int
	showHelp bool
}

func NewApp(ctx context.Context, cfg config.Config, backend Backend, authn Authenticator, opener searchpage.Opener, logger zerolog.Logger) App {
	return App{
		ctx:      ctx,
		cfg:      cfg,
		backend:  backend,
		authn:    authn,
		opener:   opener,
		log:      logger.With().Str("component", "tui").Logger(),
		homePage: home.New(cfg.Hospitals),
		toast:    toast.New(cfg.UI.ToastDuration),
		route:    ui.RouteHome,
	}
}

func (a App) Init() tea.Cmd {
	return nil
}

func (a App) Route() ui.Route { return a.route }

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle confirm dialog result (arrives AFTER dialog deactivates itself)
	if result, ok := msg.(confirm.ResultMsg); ok {
		if result.Confirmed && result.Action == confirm.ActionSignOut {
			return &a, a.signOut()
		}
		return &a, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return &a, a.propagateSize()

	case ui.ToastMsg:
		cmd := a.toast.Show(msg)
		return &a, cmd

	case toast.ExpiredMsg:
		var cmd tea.Cmd
		a.toast, cmd = a.toast.Update(msg)
		return &a, cmd

	case ui.NavigateMsg:
		return &a, a.navigate(msg)

	case ui.LoggedInMsg:
		a.session = msg.Session
		a.log.Info().Str("user", msg.Session.Username).Str("hospital", msg.Session.Hospital).Msg("signed in")
		return &a, a.navigate(ui.NavigateMsg{Route: ui.RouteSearch})

	case ui.SignOutRequestMsg:
		label := ""
		if a.hospital != nil {
			label = a.hospital.Label
		}
		a.confirmDialog = confirm.SignOut(label)
		return &a, nil

	case tea.KeyMsg:
		if key.Matches(msg, ui.Keys.ForceQuit) {
			return &a, tea.Quit
		}
		if a.confirmDialog.IsActive() {
			var cmd tea.Cmd
			a.confirmDialog, cmd = a.confirmDialog.Update(msg)
			return &a, cmd
		}
		if a.showHelp {
			a.showHelp = false
			return &a, nil
		}
		if !a.capturesKeys() {
			switch {
			case key.Matches(msg, ui.Keys.Quit):
				return &a, tea.Quit
			case key.Matches(msg, ui.Keys.Help):
				a.showHelp = true
				return &a, nil
			}
		}
	}

	return &a, a.updatePage(msg)
}

func (a *App) updatePage(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.route {
	case ui.RouteHome:
		a.homePage, cmd = a.homePage.Update(msg)
	case ui.RouteLogin:
		a.loginPage, cmd = a.loginPage.Update(msg)
	case ui.RouteSearch:
		a.searchPage, cmd = a.searchPage.Update(msg)
	}
	return cmd
}

func (a App) capturesKeys() bool {
	switch a.route {
	case ui.RouteHome:
		return a.homePage.CapturesKeys()
	case ui.RouteLogin:
		return a.loginPage.CapturesKeys()
	case ui.RouteSearch:
		return a.searchPage.CapturesKeys()
	}
	return false
}

func (a *App) navigate(msg ui.NavigateMsg) tea.Cmd {
	switch msg.Route {
	case ui.RouteLogin:
		h := a.cfg.Hospital(msg.Hospital)
		if h == nil {
			a.log.Warn().Str("hospital", msg.Hospital).Msg("unknown hospital")
			return a.goHome()
		}
		a.hospital = h
		a.route = ui.RouteLogin
		a.loginPage = login.New(*h, a.authn)
		return tea.Batch(a.loginPage.Init(), a.propagateSize())

	case ui.RouteSearch:
		if !a.sessionValid() {
			a.log.Warn().Msg("search requested without a valid session")
			return tea.Batch(a.goHome(), func() tea.Msg {
				return ui.ToastMsg{Level: ui.ToastWarning, Text: "Please sign in first"}
			})
		}
		ctrl := workflow.New(a.backend, a.backend, a.log)
		a.searchPage = searchpage.New(a.ctx, ctrl, a.opener)
		a.route = ui.RouteSearch
		return tea.Batch(a.searchPage.Init(), a.propagateSize())
	}
	return a.goHome()
}

func (a *App) goHome() tea.Cmd {
	a.route = ui.RouteHome
	a.hospital = nil
	a.homePage = home.New(a.cfg.Hospitals)
	return a.propagateSize()
}

func (a *App) sessionValid() bool {
	if a.session == nil {
		return false
	}
	claims, err := a.authn.Verify(a.session.Token)
	if err != nil {
		a.log.Warn().Err(err).Msg("session rejected")
		a.session = nil
		return false
	}
	if a.hospital == nil || claims.Hospital != a.hospital.Value {
		a.hospital = a.cfg.Hospital(claims.Hospital)
	}
	return a.hospital != nil
}

func (a *App) signOut() tea.Cmd {
	if a.route == ui.RouteSearch {
		a.searchPage.Leave()
	}
	if a.session != nil {
		a.log.Info().Str("user", a.session.Username).Msg("signed out")
	}
	a.session = nil
	return a.goHome()
}

// propagateSize hands the content area (terminal minus header and status
// bar) to the active page.
func (a *App) propagateSize() tea.Cmd {
	if a.width == 0 || a.height == 0 {
		return nil
	}
	contentH := a.height - 2
	if contentH < 1 {
		contentH = 1
	}
	return a.updatePage(tea.WindowSizeMsg{Width: a.width, Height: contentH})
}

// --- View ---

func (a App) View() string {
	hospital, user := "", ""
	if a.hospital != nil {
		hospital = a.hospital.Label
	}
	if a.session != nil && a.route == ui.RouteSearch {
		user = a.session.Username
	}
	header := RenderHeader(hospital, user, a.width)

	var content string
	switch a.route {
	case ui.RouteHome:
		content = a.homePage.View()
	case ui.RouteLogin:
		content = a.loginPage.View()
	case ui.RouteSearch:
		content = a.searchPage.View()
	}

	contentH := a.height - 2
	if a.showHelp {
		content = a.renderHelp()
	} else if a.confirmDialog.IsActive() {
		content = a.confirmDialog.View()
		if a.width > 0 && contentH > 0 {
			content = lipgloss.Place(a.width, contentH, lipgloss.Center, lipgloss.Center, content)
		}
	}

	status := a.toast.View()
	statusBar := RenderStatusBar(a.route, status, a.contextHints(), a.width)

	// Hard clamp: ensure content never overflows the terminal.
	if contentH > 0 {
		lines := strings.Split(content, "\n")
		if len(lines) > contentH {
			lines = lines[:contentH]
			content = strings.Join(lines, "\n")
		}
	}

	return header + "\n" + content + "\n" + statusBar
}

func (a App) contextHints() string {
	if a.confirmDialog.IsActive() {
		return a.confirmDialog.Hints()
	}
	switch a.route {
	case ui.RouteLogin:
		return "tab: next field  enter: login  esc: back"
	case ui.RouteSearch:
		return "tab: next  enter: search/open  o: PubMed  esc: sign out  ?: help"
	}
	return "enter: choose  q: quit  ?: help"
}

func (a App) renderHelp() string {
	contentH := a.height - 2
	if contentH < 1 {
		contentH = 1
	}

	bold := lipgloss.NewStyle().Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(ui.ColorPrimary).Bold(true).Width(14)
	desc := lipgloss.NewStyle().Foreground(lipgloss.Color("#D1D5DB"))

	row := func(k, d string) string {
		return "  " + keyStyle.Render(k) + desc.Render(d) + "\n"
	}

	var b strings.Builder
	b.WriteString("\n" + bold.Render("  Navigation") + "\n\n")
	b.WriteString(row("tab", "Next field"))
	b.WriteString(row("shift+tab", "Previous field"))
	b.WriteString(row("enter", "Open list / choose / submit"))
	b.WriteString(row("esc", "Back / sign out"))
	b.WriteString(row("q", "Quit"))

	b.WriteString("\n" + bold.Render("  Selectors") + "\n\n")
	b.WriteString(row("type", "Filter options"))
	b.WriteString(row("up / down", "Move"))
	b.WriteString(row("enter", "Choose (again to clear)"))

	b.WriteString("\n" + bold.Render("  Results") + "\n\n")
	b.WriteString(row("h / l", "Case studies / similar patients"))
	b.WriteString(row("j / k", "Move down / up"))
	b.WriteString(row("enter", "Open case study"))
	b.WriteString(row("o", "Open in PubMed"))

	b.WriteString("\n" + lipgloss.NewStyle().Foreground(ui.ColorMuted).Render("  Press any key to close") + "\n")

	w := a.width - 2
	if w < 10 {
		w = 10
	}
	style := ui.StylePaneFocused.Width(w).Height(contentH - 2)
	return style.Render(b.String())
}
