// Package workflow holds the search page state machine: patient selection,
// query text, the Idle/Searching/Fetched status and the fetched results.
//
// Network work is split from state changes. The Load/Execute halves only
// talk to the clients and return a value; the Apply/Complete halves mutate
// state and must run on the UI event loop.
package workflow

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/docmcquery/mcquery-tui/internal/model"
)

// NoDataMessage is the notice shown for any failed search.
const NoDataMessage = "No data found!"

// PatientsUnavailableMessage is the notice shown when the directory fails to load.
const PatientsUnavailableMessage = "Could not load patients"

type PatientDirectory interface {
	ListPatients(ctx context.Context) ([]model.Patient, error)
}

type SearchQuerier interface {
	QuerySearch(ctx context.Context, patientID, query string) (*model.SearchResponse, error)
}

type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeWarning
	NoticeError
)

// Notice is a non-blocking, toast-style message for the user.
type Notice struct {
	Level NoticeLevel
	Text  string
}

// Stage is the view derived from the search status.
type Stage int

const (
	StagePrompt Stage = iota
	StageLoading
	StageResults
)

type PatientsLoaded struct {
	Patients []model.Patient
	Err      error
}

// SearchRequest is a snapshot of one submission.
type SearchRequest struct {
	Seq       uint64
	PatientID string
	Query     string
	ctx       context.Context
}

type SearchCompleted struct {
	Seq      uint64
	Response *model.SearchResponse
	Err      error
}

// searchSeq numbers submissions process-wide, so a completion from an
// abandoned controller never matches a request of its successor.
var searchSeq atomic.Uint64

type Controller struct {
	directory PatientDirectory
	searcher  SearchQuerier
	log       zerolog.Logger

	patients        []model.Option
	selected        *model.Option
	query           string
	status          model.SearchStatus
	caseStudies     []model.CaseStudySummary
	similarPatients []model.SimilarPatient
	response        *model.SearchResponse

	seq    uint64
	cancel context.CancelFunc
}

func New(directory PatientDirectory, searcher SearchQuerier, logger zerolog.Logger) *Controller {
	return &Controller{
		directory: directory,
		searcher:  searcher,
		log:       logger.With().Str("component", "workflow").Logger(),
		status:    model.StatusIdle,
	}
}

// LoadPatientDirectory fetches the directory. It does not touch state.
func (c *Controller) LoadPatientDirectory(ctx context.Context) PatientsLoaded {
	patients, err := c.directory.ListPatients(ctx)
	return PatientsLoaded{Patients: patients, Err: err}
}

// ApplyPatients replaces the patient options. A failure leaves the list
// empty and yields a warning notice; it never blocks the page.
func (c *Controller) ApplyPatients(msg PatientsLoaded) *Notice {
	if msg.Err != nil {
		c.patients = nil
		c.log.Error().Err(msg.Err).Msg("load patient directory")
		return &Notice{Level: NoticeWarning, Text: PatientsUnavailableMessage}
	}
	c.patients = model.PatientOptions(msg.Patients)
	c.log.Info().Int("patients", len(c.patients)).Msg("patient directory loaded")
	return nil
}

func (c *Controller) SelectPatient(opt *model.Option) {
	if opt == nil {
		c.selected = nil
		return
	}
	sel := *opt
	c.selected = &sel
}

func (c *Controller) SetQueryText(text string) {
	c.query = text
}

func (c *Controller) CanSubmit() bool {
	return c.status != model.StatusSearching && c.selected != nil && c.query != ""
}

// BeginSearch enters Searching and returns the request to execute. When
// CanSubmit is false it returns false and changes nothing.
func (c *Controller) BeginSearch(parent context.Context) (SearchRequest, bool) {
	if !c.CanSubmit() {
		return SearchRequest{}, false
	}
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	c.seq = searchSeq.Add(1)
	c.cancel = cancel
	c.status = model.StatusSearching
	c.log.Info().
		Uint64("seq", c.seq).
		Str("patient_id", c.selected.Value).
		Int("query_len", len(c.query)).
		Msg("search submitted")
	return SearchRequest{Seq: c.seq, PatientID: c.selected.Value, Query: c.query, ctx: ctx}, true
}

// Execute runs the request against the search client. It does not touch state.
func (c *Controller) Execute(req SearchRequest) SearchCompleted {
	ctx := req.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	resp, err := c.searcher.QuerySearch(ctx, req.PatientID, req.Query)
	if err == nil && resp == nil {
		err = errors.New("query search: empty response")
	}
	return SearchCompleted{Seq: req.Seq, Response: resp, Err: err}
}

// CompleteSearch applies a finished request. Completions for anything but
// the latest in-flight request are dropped.
func (c *Controller) CompleteSearch(msg SearchCompleted) *Notice {
	if c.status != model.StatusSearching || msg.Seq != c.seq {
		c.log.Debug().Uint64("seq", msg.Seq).Uint64("current", c.seq).Msg("stale search result dropped")
		return nil
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	if msg.Err != nil {
		c.status = model.StatusIdle
		c.log.Warn().Err(msg.Err).Uint64("seq", msg.Seq).Msg("search failed")
		return &Notice{Level: NoticeError, Text: NoDataMessage}
	}
	c.response = msg.Response
	c.caseStudies = msg.Response.CaseStudy.Results.Summaries
	c.similarPatients = msg.Response.SimilarPatients
	c.status = model.StatusFetched
	c.log.Info().
		Uint64("seq", msg.Seq).
		Int("case_studies", len(c.caseStudies)).
		Int("similar_patients", len(c.similarPatients)).
		Msg("search fetched")
	return nil
}

// SubmitSearch runs a whole submission synchronously. It returns false
// without any effect when CanSubmit is false.
func (c *Controller) SubmitSearch(ctx context.Context) (bool, *Notice) {
	req, ok := c.BeginSearch(ctx)
	if !ok {
		return false, nil
	}
	return true, c.CompleteSearch(c.Execute(req))
}

// Abandon cancels an in-flight search, e.g. when the user leaves the page.
// Its eventual completion is dropped.
func (c *Controller) Abandon() {
	if c.status != model.StatusSearching {
		return
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.seq = searchSeq.Add(1)
	c.status = model.StatusIdle
	c.log.Info().Msg("in-flight search abandoned")
}

func (c *Controller) Stage() Stage {
	switch c.status {
	case model.StatusSearching:
		return StageLoading
	case model.StatusFetched:
		return StageResults
	default:
		return StagePrompt
	}
}

func (c *Controller) Status() model.SearchStatus              { return c.status }
func (c *Controller) Patients() []model.Option                { return c.patients }
func (c *Controller) Query() string                           { return c.query }
func (c *Controller) CaseStudies() []model.CaseStudySummary   { return c.caseStudies }
func (c *Controller) SimilarPatients() []model.SimilarPatient { return c.similarPatients }

// Selected returns a copy of the selected patient, or nil.
func (c *Controller) Selected() *model.Option {
	if c.selected == nil {
		return nil
	}
	sel := *c.selected
	return &sel
}

// Interpretation returns the parsed query of the last fetched response.
func (c *Controller) Interpretation() *model.ParsedInput {
	if c.response == nil {
		return nil
	}
	p := c.response.CaseStudy.Patient.ParsedInput
	return &p
}
