package searchpage

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/docmcquery/mcquery-tui/internal/model"
	"github.com/docmcquery/mcquery-tui/internal/ui"
	"github.com/docmcquery/mcquery-tui/internal/workflow"
)

type fakeBackend struct {
	patients    []model.Patient
	patientsErr error
	resp        *model.SearchResponse
	searchErr   error
	searches    int
	lastQuery   string
}

func (f *fakeBackend) ListPatients(ctx context.Context) ([]model.Patient, error) {
	return f.patients, f.patientsErr
}

func (f *fakeBackend) QuerySearch(ctx context.Context, patientID, query string) (*model.SearchResponse, error) {
	f.searches++
	f.lastQuery = query
	return f.resp, f.searchErr
}

type fakeOpener struct {
	urls []string
	err  error
}

func (f *fakeOpener) Browse(url string) error {
	f.urls = append(f.urls, url)
	return f.err
}

var errUnavailable = errors.New("connection refused")

func buildResponse(studies, similar int) *model.SearchResponse {
	resp := &model.SearchResponse{}
	resp.CaseStudy.Patient.ParsedInput = model.ParsedInput{Symptoms: []string{"chest pain"}}
	for i := 0; i < studies; i++ {
		resp.CaseStudy.Results.Summaries = append(resp.CaseStudy.Results.Summaries, model.CaseStudySummary{
			PubMedID: fmt.Sprintf("3100%d", i),
			Name:     fmt.Sprintf("Case study %d", i),
			Summary: model.CaseStudyDetails{
				Notes: "Acute presentation.",
				SituationalSummary: []model.SituationalSummary{
					{Characteristics: "sharp", Event: "collapse", Onset: "sudden"},
				},
			},
		})
	}
	for i := 0; i < similar; i++ {
		resp.SimilarPatients = append(resp.SimilarPatients, model.SimilarPatient{
			ID: fmt.Sprintf("s%d", i),
			Summary: model.SimilarPatientDetails{
				ConditionsSummary:              "Hypertension",
				Patient:                        model.PatientDemographics{Age: "54", Gender: "female"},
				SymptomsAndObservationsSummary: "Chest pain",
			},
		})
	}
	return resp
}

// harness drives a page the way the program loop would, executing only
// the commands that carry page messages.
type harness struct {
	backend *fakeBackend
	opener  *fakeOpener
	page    Model
	pending tea.Cmd
	toasts  []string
	signOut bool
}

func newHarness(b *fakeBackend) *harness {
	h := &harness{backend: b, opener: &fakeOpener{}}
	ctrl := workflow.New(b, b, zerolog.Nop())
	h.page = New(context.Background(), ctrl, h.opener)
	h.page, _ = h.page.Update(tea.WindowSizeMsg{Width: 160, Height: 60})
	h.pump(h.page.Init())
	return h
}

func (h *harness) pump(cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case ui.ToastMsg:
			h.toasts = append(h.toasts, msg.Text)
		case ui.SignOutRequestMsg:
			h.signOut = true
		case ui.PatientsLoadedMsg, ui.SearchDoneMsg, ui.BrowseResultMsg:
			var next tea.Cmd
			h.page, next = h.page.Update(msg)
			queue = append(queue, next)
		}
	}
}

// press sends keys and keeps the last command for later.
func (h *harness) press(keys ...tea.KeyMsg) {
	for _, k := range keys {
		h.page, h.pending = h.page.Update(k)
	}
}

func (h *harness) typeText(text string) {
	for _, r := range text {
		h.press(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func (h *harness) selectPatient(label string) {
	h.press(tea.KeyMsg{Type: tea.KeyEnter})
	h.typeText(label)
	h.press(tea.KeyMsg{Type: tea.KeyEnter})
}

func (h *harness) enterQuery(text string) {
	if h.page.focus != focusQuery {
		h.press(tea.KeyMsg{Type: tea.KeyTab})
	}
	h.typeText(text)
}

func (h *harness) submit() {
	h.press(tea.KeyMsg{Type: tea.KeyEnter})
}

func (h *harness) respond() {
	cmd := h.pending
	h.pending = nil
	h.pump(cmd)
}

func (h *harness) flush() {
	cmd := h.pending
	h.pending = nil
	h.pump(cmd)
}
