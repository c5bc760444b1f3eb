package confirm

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestDialogResults(t *testing.T) {
	tests := []struct {
		name string
		keys []tea.KeyMsg
		want bool
	}{
		{"y confirms", []tea.KeyMsg{{Type: tea.KeyRunes, Runes: []rune{'y'}}}, true},
		{"n declines", []tea.KeyMsg{{Type: tea.KeyRunes, Runes: []rune{'n'}}}, false},
		{"esc declines", []tea.KeyMsg{{Type: tea.KeyEsc}}, false},
		{"enter defaults to no", []tea.KeyMsg{{Type: tea.KeyEnter}}, false},
		{"tab then enter confirms", []tea.KeyMsg{{Type: tea.KeyTab}, {Type: tea.KeyEnter}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := SignOut("General Hospital")
			var cmd tea.Cmd
			for _, k := range tt.keys {
				m, cmd = m.Update(k)
			}
			if m.IsActive() {
				t.Fatal("dialog should close")
			}
			if cmd == nil {
				t.Fatal("expected a result command")
			}
			res, ok := cmd().(ResultMsg)
			if !ok {
				t.Fatalf("expected ResultMsg, got %T", cmd())
			}
			if res.Confirmed != tt.want || res.Action != ActionSignOut {
				t.Errorf("got %+v, want confirmed=%v", res, tt.want)
			}
		})
	}
}

func TestInactiveIgnoresInput(t *testing.T) {
	var m Model
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	if cmd != nil || m.View() != "" {
		t.Error("inactive dialog should do nothing")
	}
}

func TestSignOutView(t *testing.T) {
	m := SignOut("General Hospital")
	view := m.View()
	for _, want := range []string{"Sign out of General Hospital?", "Stay", "running search will be cancelled"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	if got := m.Hints(); got != "y: Sign out  n: Stay  tab: switch" {
		t.Errorf("Hints() = %q", got)
	}
}
