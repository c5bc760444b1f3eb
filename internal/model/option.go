package model

import (
	"strings"
	"unicode"
)

// Option pairs an identifier with display text. Value is unique within a
// presented list.
type Option struct {
	Value string `json:"value" yaml:"value" mapstructure:"value"`
	Label string `json:"label" yaml:"label" mapstructure:"label"`
}

// Hospital is a selectable hospital on the home page.
type Hospital = Option

// Patient is a raw record from the patient directory.
type Patient struct {
	FirstName string `json:"first_name" yaml:"first_name"`
	LastName  string `json:"last_name" yaml:"last_name"`
	ID        string `json:"id" yaml:"id"`
}

// DisplayName strips embedded digits from both name parts and joins them
// with a single space.
func (p Patient) DisplayName() string {
	return stripDigits(p.FirstName) + " " + stripDigits(p.LastName)
}

func (p Patient) Option() Option {
	return Option{Value: p.ID, Label: p.DisplayName()}
}

// PatientOptions maps directory records to options, preserving order.
func PatientOptions(patients []Patient) []Option {
	opts := make([]Option, len(patients))
	for i, p := range patients {
		opts[i] = p.Option()
	}
	return opts
}

// FindOption returns the option with the given value, or nil.
func FindOption(opts []Option, value string) *Option {
	for i := range opts {
		if opts[i].Value == value {
			return &opts[i]
		}
	}
	return nil
}

func stripDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return -1
		}
		return r
	}, s)
}
