package mockapi

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/docmcquery/mcquery-tui/internal/model"
)

//go:embed fixtures.yaml
var defaultFixtures []byte

// Fixtures is the canned data served by the mock backend. Responses are
// keyed by patient id; patients without an entry get Default.
type Fixtures struct {
	Patients  []model.Patient                 `yaml:"patients"`
	Default   *model.SearchResponse           `yaml:"default"`
	Responses map[string]model.SearchResponse `yaml:"responses"`
}

func LoadFixtures(data []byte) (*Fixtures, error) {
	var fx Fixtures
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	for i, p := range fx.Patients {
		if p.ID == "" {
			return nil, fmt.Errorf("parse fixtures: patient %d has no id", i)
		}
	}
	return &fx, nil
}

// DefaultFixtures returns the fixtures compiled into the binary.
func DefaultFixtures() *Fixtures {
	fx, err := LoadFixtures(defaultFixtures)
	if err != nil {
		panic(err)
	}
	return fx
}

func (f *Fixtures) hasPatient(id string) bool {
	for _, p := range f.Patients {
		if p.ID == id {
			return true
		}
	}
	return false
}

// responseFor returns a copy of the response for id, or false if the
// patient is unknown.
func (f *Fixtures) responseFor(id, query string) (model.SearchResponse, bool) {
	if !f.hasPatient(id) {
		return model.SearchResponse{}, false
	}
	resp, ok := f.Responses[id]
	if !ok {
		if f.Default == nil {
			return model.SearchResponse{}, true
		}
		resp = *f.Default
	}
	resp.CaseStudy.Patient.ParsedInput.PatientID = id
	resp.CaseStudy.Results.Query = query
	return resp, true
}
