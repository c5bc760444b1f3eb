package match

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Filter returns indices into labels that match query. Case-insensitive
// substring hits come first in their original order, followed by fuzzy
// hits ranked by score. An empty query matches everything.
func Filter(query string, labels []string) []int {
	query = strings.TrimSpace(query)
	if query == "" {
		all := make([]int, len(labels))
		for i := range labels {
			all[i] = i
		}
		return all
	}

	contains := buildMatcher(query)
	var out []int
	seen := make(map[int]bool)
	for i, label := range labels {
		if contains(label) {
			out = append(out, i)
			seen[i] = true
		}
	}

	matches := fuzzy.Find(query, labels)
	sort.Stable(matches)
	for _, m := range matches {
		if !seen[m.Index] {
			out = append(out, m.Index)
			seen[m.Index] = true
		}
	}
	return out
}

// Highlights returns the rune positions in label that match query, for
// rendering. Substring hits are preferred over fuzzy positions.
func Highlights(query, label string) []int {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	lowerLabel := []rune(strings.ToLower(label))
	lowerQuery := []rune(strings.ToLower(query))
	if at := runeIndex(lowerLabel, lowerQuery); at >= 0 {
		pos := make([]int, len(lowerQuery))
		for i := range lowerQuery {
			pos[i] = at + i
		}
		return pos
	}
	matches := fuzzy.Find(query, []string{label})
	if len(matches) == 0 {
		return nil
	}
	return runePositions(label, matches[0].MatchedIndexes)
}

// runePositions converts fuzzy's byte offsets into rune indexes.
func runePositions(s string, byteOffsets []int) []int {
	runeAt := make(map[int]int, len(s))
	n := 0
	for b := range s {
		runeAt[b] = n
		n++
	}
	out := make([]int, 0, len(byteOffsets))
	for _, b := range byteOffsets {
		if r, ok := runeAt[b]; ok {
			out = append(out, r)
		}
	}
	return out
}

func buildMatcher(pattern string) func(string) bool {
	pattern = strings.ToLower(pattern)
	return func(line string) bool {
		return strings.Contains(strings.ToLower(line), pattern)
	}
}

func runeIndex(haystack, needle []rune) int {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		ok := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				ok = false
				break
			}
		}
		if ok {
			return i
		}
	}
	return -1
}
