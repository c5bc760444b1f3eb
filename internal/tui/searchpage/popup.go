package searchpage

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/docmcquery/mcquery-tui/internal/model"
	"github.com/docmcquery/mcquery-tui/internal/ui"
)

const KeySituationsTitle = "Case Study Key Situations"

// popup shows one case study in a scrollable overlay.
type popup struct {
	viewport viewport.Model
	study    model.CaseStudySummary
	active   bool
	width    int
	height   int
}

func (p *popup) open(study model.CaseStudySummary) {
	p.study = study
	p.active = true
	p.viewport = viewport.New(p.innerWidth(), p.innerHeight())
	p.viewport.SetContent(p.render())
	p.viewport.GotoTop()
}

func (p *popup) close() {
	p.active = false
}

func (p *popup) setSize(width, height int) {
	p.width = width
	p.height = height
	if p.active {
		p.viewport.Width = p.innerWidth()
		p.viewport.Height = p.innerHeight()
		p.viewport.SetContent(p.render())
	}
}

func (p popup) innerWidth() int {
	w := p.width - 8
	if w > 96 {
		w = 96
	}
	if w < 20 {
		w = 20
	}
	return w
}

func (p popup) innerHeight() int {
	h := p.height - 6
	if h < 3 {
		h = 3
	}
	return h
}

func (p popup) update(msg tea.Msg) (popup, tea.Cmd) {
	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return p, cmd
}

func (p popup) render() string {
	w := p.innerWidth()
	para := lipgloss.NewStyle().Width(w)
	bold := lipgloss.NewStyle().Bold(true)

	var b strings.Builder
	b.WriteString(ui.StyleTitle.Width(w).Render(p.study.Name))
	b.WriteString("\n")
	b.WriteString(ui.StyleBadge.Render("PMID: " + p.study.PubMedID))
	b.WriteString("\n\n")
	b.WriteString(para.Render(p.study.Summary.Notes))
	b.WriteString("\n\n")
	b.WriteString(bold.Render(KeySituationsTitle))
	b.WriteString("\n\n")

	field := func(label, value string) string {
		return lipgloss.NewStyle().Width(w - 4).Render(bold.Render(label+":") + " " + value)
	}
	situation := ui.StyleCard.Background(ui.ColorHighlight).Width(w - 2)
	for _, s := range p.study.Summary.SituationalSummary {
		b.WriteString(situation.Render(strings.Join([]string{
			field("Characteristics", s.Characteristics),
			field("Event", s.Event),
			field("History", s.History),
			field("Onset", s.Onset),
			field("Outcome", s.Outcome),
			field("Treatment", s.Treatment),
		}, "\n")))
		b.WriteString("\n")
	}
	return b.String()
}

func (p popup) View() string {
	if !p.active {
		return ""
	}
	footer := ui.StyleMuted.Render(fmt.Sprintf("o: open %s  j/k: scroll  esc: close", p.study.PubMedURL()))
	return ui.StylePaneFocused.Padding(0, 1).Render(p.viewport.View() + "\n" + footer)
}
