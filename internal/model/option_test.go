package model

import (
	"testing"
	"unicode/utf8"
)

func TestPatientDisplayName(t *testing.T) {
	tests := []struct {
		name    string
		patient Patient
		want    string
	}{
		{
			name:    "digits stripped",
			patient: Patient{FirstName: "J4ohn", LastName: "Sm1th", ID: "p1"},
			want:    "John Smith",
		},
		{
			name:    "synthea style suffixes",
			patient: Patient{FirstName: "Dewey930", LastName: "Kuhn96", ID: "p2"},
			want:    "Dewey Kuhn",
		},
		{
			name:    "no digits",
			patient: Patient{FirstName: "Ada", LastName: "Lovelace"},
			want:    "Ada Lovelace",
		},
		{
			name:    "all digits",
			patient: Patient{FirstName: "123", LastName: "456"},
			want:    " ",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.patient.DisplayName(); got != tt.want {
				t.Errorf("DisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPatientOptionsPreservesOrder(t *testing.T) {
	opts := PatientOptions([]Patient{
		{FirstName: "B2", LastName: "Two", ID: "b"},
		{FirstName: "A1", LastName: "One", ID: "a"},
	})
	if len(opts) != 2 {
		t.Fatalf("got %d options, want 2", len(opts))
	}
	if opts[0].Value != "b" || opts[0].Label != "B Two" {
		t.Errorf("opts[0] = %+v", opts[0])
	}
	if opts[1].Value != "a" || opts[1].Label != "A One" {
		t.Errorf("opts[1] = %+v", opts[1])
	}
}

func TestFindOption(t *testing.T) {
	opts := []Option{{Value: "x", Label: "X"}, {Value: "y", Label: "Y"}}
	if got := FindOption(opts, "y"); got == nil || got.Label != "Y" {
		t.Errorf("FindOption(y) = %v", got)
	}
	if got := FindOption(opts, "z"); got != nil {
		t.Errorf("FindOption(z) = %v, want nil", got)
	}
}

func TestSimilarPatientHeadline(t *testing.T) {
	p := SimilarPatient{Summary: SimilarPatientDetails{Patient: PatientDemographics{Age: "54", Gender: "female"}}}
	if got := p.Headline(); got != "Female, 54 yrs" {
		t.Errorf("Headline() = %q", got)
	}
	p.Summary.Patient = PatientDemographics{}
	if got := p.Headline(); got != "Unknown" {
		t.Errorf("Headline() = %q, want Unknown", got)
	}
	p.Summary.Patient = PatientDemographics{Age: "40", Gender: "ženska"}
	got := p.Headline()
	if got != "Ženska, 40 yrs" {
		t.Errorf("Headline() = %q, want %q", got, "Ženska, 40 yrs")
	}
	if !utf8.ValidString(got) {
		t.Errorf("Headline() = %q is not valid UTF-8", got)
	}
}

func TestSearchStatusString(t *testing.T) {
	if StatusIdle.String() != "idle" || StatusSearching.String() != "searching" || StatusFetched.String() != "fetched" {
		t.Error("unexpected status names")
	}
}
