package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/docmcquery/mcquery-tui/internal/auth"
	"github.com/docmcquery/mcquery-tui/internal/config"
	"github.com/docmcquery/mcquery-tui/internal/model"
	"github.com/docmcquery/mcquery-tui/internal/tui/confirm"
	"github.com/docmcquery/mcquery-tui/internal/ui"
)

type stubBackend struct{}

func (stubBackend) ListPatients(ctx context.Context) ([]model.Patient, error) {
	return []model.Patient{{FirstName: "J4ohn", LastName: "Sm1th", ID: "p-1"}}, nil
}

func (stubBackend) QuerySearch(ctx context.Context, patientID, query string) (*model.SearchResponse, error) {
	return &model.SearchResponse{}, nil
}

func newTestApp(t *testing.T) (App, *auth.Authenticator) {
	t.Helper()
	cfg := config.Config{Hospitals: config.DefaultHospitals}
	authn, err := auth.NewAuthenticator("query", time.Hour)
	if err != nil {
		t.Fatalf("authenticator: %v", err)
	}
	app := NewApp(context.Background(), cfg, stubBackend{}, authn, nil, zerolog.Nop())
	m, _ := app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return *m.(*App), authn
}

func step(t *testing.T, app App, msg tea.Msg) (App, tea.Cmd) {
	t.Helper()
	m, cmd := app.Update(msg)
	return *m.(*App), cmd
}

func signIn(t *testing.T, app App, authn *auth.Authenticator) App {
	t.Helper()
	app, _ = step(t, app, ui.NavigateMsg{Route: ui.RouteLogin, Hospital: "general"})
	session, err := authn.Login("dr.house", "query", "general")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	app, _ = step(t, app, ui.LoggedInMsg{Session: session})
	return app
}

func TestNavigateToLogin(t *testing.T) {
	app, _ := newTestApp(t)
	app, _ = step(t, app, ui.NavigateMsg{Route: ui.RouteLogin, Hospital: "riverside"})

	if app.Route() != ui.RouteLogin {
		t.Fatalf("expected login route, got %v", app.Route())
	}
	if !strings.Contains(app.View(), "Riverside Health") {
		t.Error("login page should show the hospital name")
	}
}

func TestUnknownHospitalGoesHome(t *testing.T) {
	app, _ := newTestApp(t)
	app, _ = step(t, app, ui.NavigateMsg{Route: ui.RouteLogin, Hospital: "nowhere"})
	if app.Route() != ui.RouteHome {
		t.Errorf("expected home route, got %v", app.Route())
	}
}

func TestSearchRequiresSession(t *testing.T) {
	app, _ := newTestApp(t)
	app, _ = step(t, app, ui.NavigateMsg{Route: ui.RouteSearch})
	if app.Route() != ui.RouteHome {
		t.Fatalf("expected redirect home, got %v", app.Route())
	}

	app.session = &auth.Session{Token: "forged", Username: "mallory", Hospital: "general"}
	app, _ = step(t, app, ui.NavigateMsg{Route: ui.RouteSearch})
	if app.Route() != ui.RouteHome {
		t.Fatalf("forged session should be rejected, got %v", app.Route())
	}
	if app.session != nil {
		t.Error("rejected session should be dropped")
	}
}

func TestLoginOpensSearch(t *testing.T) {
	app, authn := newTestApp(t)
	app = signIn(t, app, authn)

	if app.Route() != ui.RouteSearch {
		t.Fatalf("expected search route, got %v", app.Route())
	}
	view := app.View()
	if !strings.Contains(view, "General Hospital") || !strings.Contains(view, "dr.house") {
		t.Errorf("header should show hospital and user:\n%s", view)
	}
}

func TestSignOutFlow(t *testing.T) {
	app, authn := newTestApp(t)
	app = signIn(t, app, authn)

	app, _ = step(t, app, ui.SignOutRequestMsg{})
	if !app.confirmDialog.IsActive() {
		t.Fatal("sign out should ask for confirmation")
	}
	if !strings.Contains(app.View(), "Sign out") {
		t.Error("confirmation should be visible")
	}

	app, cmd := step(t, app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	if cmd == nil {
		t.Fatal("expected confirm result")
	}
	result, ok := cmd().(confirm.ResultMsg)
	if !ok {
		t.Fatalf("expected confirm.ResultMsg, got %T", cmd())
	}
	app, _ = step(t, app, result)

	if app.Route() != ui.RouteHome {
		t.Errorf("expected home after sign out, got %v", app.Route())
	}
	if app.session != nil {
		t.Error("session should be cleared")
	}
}

func TestQuitAndHelpKeys(t *testing.T) {
	app, _ := newTestApp(t)

	app, _ = step(t, app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	if !app.showHelp {
		t.Fatal("? should open help")
	}
	app, _ = step(t, app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	if app.showHelp {
		t.Fatal("any key should close help")
	}

	_, cmd := step(t, app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q should quit on the home page")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected tea.QuitMsg, got %T", cmd())
	}
}

func TestQuitKeyTypesIntoOpenSelector(t *testing.T) {
	app, _ := newTestApp(t)
	app, _ = step(t, app, tea.KeyMsg{Type: tea.KeyEnter})

	_, cmd := step(t, app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd != nil {
		if _, ok := cmd().(tea.QuitMsg); ok {
			t.Error("q should filter the open hospital list, not quit")
		}
	}
}

func TestToastShowsInStatusBar(t *testing.T) {
	app, _ := newTestApp(t)
	app, cmd := step(t, app, ui.ToastMsg{Level: ui.ToastError, Text: "No data found!"})
	if cmd == nil {
		t.Error("toast should schedule its expiry")
	}
	if !strings.Contains(app.View(), "No data found!") {
		t.Error("status bar should show the toast")
	}
}
