package model

// SearchStatus drives which view the search page renders.
type SearchStatus int

const (
	StatusIdle SearchStatus = iota
	StatusSearching
	StatusFetched
)

func (s SearchStatus) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusSearching:
		return "searching"
	case StatusFetched:
		return "fetched"
	default:
		return "unknown"
	}
}
