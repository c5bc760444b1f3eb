package match

import (
	"reflect"
	"testing"
)

var labels = []string{
	"John Smith",
	"Mary Jones",
	"Johnathan Doe",
	"Sam Brown",
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []int
	}{
		{name: "empty query keeps order", query: "", want: []int{0, 1, 2, 3}},
		{name: "whitespace query keeps order", query: "  ", want: []int{0, 1, 2, 3}},
		{name: "case insensitive substring", query: "JOHN", want: []int{0, 2}},
		{name: "substring in last name", query: "jones", want: []int{1}},
		{name: "fuzzy after substring", query: "jsmth", want: []int{0}},
		{name: "no match", query: "zzz", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(tt.query, labels)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Filter(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestFilterSubstringBeforeFuzzy(t *testing.T) {
	got := Filter("sm", []string{"Sam Moore", "Al Smith"})
	// "Al Smith" contains "sm" literally; "Sam Moore" only fuzzily.
	want := []int{1, 0}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Filter = %v, want %v", got, want)
	}
}

func TestHighlights(t *testing.T) {
	if got := Highlights("smi", "John Smith"); !reflect.DeepEqual(got, []int{5, 6, 7}) {
		t.Errorf("substring highlights = %v", got)
	}
	if got := Highlights("", "John Smith"); got != nil {
		t.Errorf("empty query highlights = %v, want nil", got)
	}
	if got := Highlights("xyz", "John Smith"); got != nil {
		t.Errorf("no-match highlights = %v, want nil", got)
	}
	if got := Highlights("csr", "Clínica Sur"); !reflect.DeepEqual(got, []int{0, 8, 10}) {
		t.Errorf("accented fuzzy highlights = %v, want [0 8 10]", got)
	}
}
