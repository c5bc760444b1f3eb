package mockapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docmcquery/mcquery-tui/internal/api"
)

const (
	johnID = "8f14e45f-ceea-467f-a8f0-1d1b6c2f0a01"
	weiID  = "8f14e45f-ceea-467f-a8f0-1d1b6c2f0a03"
)

func newServer(t *testing.T, opts Options) *api.Client {
	t.Helper()
	ts := httptest.NewServer(New(DefaultFixtures(), zerolog.Nop(), opts))
	t.Cleanup(ts.Close)
	c, err := api.NewClient(ts.URL, time.Second, zerolog.Nop())
	require.NoError(t, err)
	return c
}

func TestDefaultFixtures(t *testing.T) {
	fx := DefaultFixtures()
	require.Len(t, fx.Patients, 3)
	assert.Equal(t, "J4ohn", fx.Patients[0].FirstName)
	require.NotNil(t, fx.Default)
	assert.Len(t, fx.Default.CaseStudy.Results.Summaries, 2)
}

func TestLoadFixtures_Invalid(t *testing.T) {
	_, err := LoadFixtures([]byte("patients: [{first_name: A, last_name: B}]"))
	assert.Error(t, err)

	_, err = LoadFixtures([]byte("patients: {"))
	assert.Error(t, err)
}

func TestListPatients(t *testing.T) {
	c := newServer(t, Options{})
	patients, err := c.ListPatients(context.Background())
	require.NoError(t, err)
	require.Len(t, patients, 3)
	assert.Equal(t, "John Smith", patients[0].DisplayName())
}

func TestQuerySearch_Default(t *testing.T) {
	c := newServer(t, Options{})
	resp, err := c.QuerySearch(context.Background(), johnID, "chest pain")
	require.NoError(t, err)
	assert.Equal(t, "chest pain", resp.CaseStudy.Results.Query)
	assert.Equal(t, johnID, resp.CaseStudy.Patient.ParsedInput.PatientID)
	assert.Len(t, resp.CaseStudy.Results.Summaries, 2)
	assert.Len(t, resp.SimilarPatients, 2)
	assert.Equal(t, "Female, 54 yrs", resp.SimilarPatients[0].Headline())
}

func TestQuerySearch_EmptyResults(t *testing.T) {
	c := newServer(t, Options{})
	resp, err := c.QuerySearch(context.Background(), weiID, "hiccups")
	require.NoError(t, err)
	assert.Empty(t, resp.CaseStudy.Results.Summaries)
	assert.Empty(t, resp.SimilarPatients)
}

func TestQuerySearch_UnknownPatient(t *testing.T) {
	c := newServer(t, Options{})
	_, err := c.QuerySearch(context.Background(), "nobody", "fever")
	assert.True(t, api.IsNotFound(err), "want 404, got %v", err)
}

func TestQuerySearch_EmptyQuery(t *testing.T) {
	ts := httptest.NewServer(New(DefaultFixtures(), zerolog.Nop(), Options{}))
	defer ts.Close()

	res, err := http.Post(ts.URL+"/all_requests", "application/json",
		strings.NewReader(`{"patient_id":"`+johnID+`","patient_info":"  "}`))
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestQuerySearch_LatencyHonoursContext(t *testing.T) {
	c := newServer(t, Options{Latency: time.Second})
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.QuerySearch(ctx, johnID, "fever")
	var ne *api.NetworkError
	assert.True(t, errors.As(err, &ne), "want NetworkError, got %v", err)
}

func TestRequestIDEchoed(t *testing.T) {
	ts := httptest.NewServer(New(DefaultFixtures(), zerolog.Nop(), Options{}))
	defer ts.Close()

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, "abc-123", res.Header.Get("X-Request-ID"))
}
