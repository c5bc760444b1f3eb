package model

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

type SituationalSummary struct {
	Characteristics string `json:"characteristics" yaml:"characteristics"`
	Event           string `json:"event" yaml:"event"`
	History         string `json:"history" yaml:"history"`
	Onset           string `json:"onset" yaml:"onset"`
	Outcome         string `json:"outcome" yaml:"outcome"`
	Treatment       string `json:"treatment" yaml:"treatment"`
}

type PatientDemographics struct {
	Age    string `json:"age" yaml:"age"`
	Gender string `json:"gender" yaml:"gender"`
}

type CaseStudyDetails struct {
	Notes              string               `json:"notes" yaml:"notes"`
	Patient            PatientDemographics  `json:"patient" yaml:"patient"`
	SituationalSummary []SituationalSummary `json:"situational_summary" yaml:"situational_summary"`
}

// CaseStudySummary is a retrieved publication matched to a query.
type CaseStudySummary struct {
	PubMedID string           `json:"pubmed_id" yaml:"pubmed_id"`
	Name     string           `json:"name" yaml:"name"`
	Summary  CaseStudyDetails `json:"summary" yaml:"summary"`
}

func (c CaseStudySummary) PubMedURL() string {
	return fmt.Sprintf("https://pubmed.ncbi.nlm.nih.gov/%s/", c.PubMedID)
}

type SimilarPatientDetails struct {
	ConditionsSummary              string              `json:"conditions_summary" yaml:"conditions_summary"`
	Patient                        PatientDemographics `json:"patient" yaml:"patient"`
	SymptomsAndObservationsSummary string              `json:"symptoms_and_observations_summary" yaml:"symptoms_and_observations_summary"`
}

// SimilarPatient is another patient judged similar to the searched query.
type SimilarPatient struct {
	ID      string                `json:"id" yaml:"id"`
	Summary SimilarPatientDetails `json:"summary" yaml:"summary"`
}

// Headline renders e.g. "Female, 54 yrs".
func (p SimilarPatient) Headline() string {
	gender := p.Summary.Patient.Gender
	if gender == "" {
		gender = "Unknown"
	}
	r, size := utf8.DecodeRuneInString(gender)
	gender = string(unicode.ToUpper(r)) + gender[size:]
	if p.Summary.Patient.Age == "" {
		return gender
	}
	return fmt.Sprintf("%s, %s yrs", gender, p.Summary.Patient.Age)
}

type EMRSummary struct {
	ConditionsSummary string              `json:"conditions_summary" yaml:"conditions_summary"`
	Patient           PatientDemographics `json:"patient" yaml:"patient"`
}

// ParsedInput is the backend's structured interpretation of the free-text query.
type ParsedInput struct {
	PatientID   string   `json:"patient_id" yaml:"patient_id"`
	Conditions  []string `json:"conditions" yaml:"conditions"`
	Diagnosis   []string `json:"diagnosis" yaml:"diagnosis"`
	Medications []string `json:"medications" yaml:"medications"`
	Symptoms    []string `json:"symptoms" yaml:"symptoms"`
	Treatments  []string `json:"treatments" yaml:"treatments"`
}

// Terms flattens every parsed list in a stable order.
func (p ParsedInput) Terms() []string {
	var terms []string
	for _, group := range [][]string{p.Symptoms, p.Conditions, p.Diagnosis, p.Medications, p.Treatments} {
		terms = append(terms, group...)
	}
	return terms
}

type SearchPatient struct {
	EMRSummary  EMRSummary  `json:"emr_summary" yaml:"emr_summary"`
	ParsedInput ParsedInput `json:"parsed_input" yaml:"parsed_input"`
}

type CaseStudyResults struct {
	Query     string             `json:"query" yaml:"query"`
	Summaries []CaseStudySummary `json:"summaries" yaml:"summaries"`
}

type CaseStudyEnvelope struct {
	Patient SearchPatient    `json:"patient" yaml:"patient"`
	Results CaseStudyResults `json:"results" yaml:"results"`
}

// SearchResponse is the body of POST /all_requests.
type SearchResponse struct {
	CaseStudy       CaseStudyEnvelope `json:"case_study" yaml:"case_study"`
	SimilarPatients []SimilarPatient  `json:"similar_patients" yaml:"similar_patients"`
}

// SearchRequest is the body of POST /all_requests.
type SearchRequest struct {
	PatientID   string `json:"patient_id"`
	PatientInfo string `json:"patient_info"`
}
