package ui

import (
	"github.com/docmcquery/mcquery-tui/internal/auth"
	"github.com/docmcquery/mcquery-tui/internal/workflow"
)

type Route int

const (
	RouteHome Route = iota
	RouteLogin
	RouteSearch
)

func (r Route) String() string {
	switch r {
	case RouteLogin:
		return "login"
	case RouteSearch:
		return "search"
	default:
		return "home"
	}
}

// NavigateMsg asks the app to switch pages. Hospital parameterises RouteLogin.
type NavigateMsg struct {
	Route    Route
	Hospital string
}

type LoggedInMsg struct {
	Session *auth.Session
}

// SignOutRequestMsg asks the app to confirm leaving the search page.
type SignOutRequestMsg struct{}

// Data fetched messages
type PatientsLoadedMsg struct {
	Result workflow.PatientsLoaded
}

type SearchDoneMsg struct {
	Result workflow.SearchCompleted
}

type BrowseResultMsg struct {
	URL string
	Err error
}

type ToastLevel int

const (
	ToastInfo ToastLevel = iota
	ToastSuccess
	ToastWarning
	ToastError
)

type ToastMsg struct {
	Level ToastLevel
	Text  string
}

// ToastFromNotice converts a workflow notice into a toast message.
func ToastFromNotice(n *workflow.Notice) ToastMsg {
	level := ToastInfo
	switch n.Level {
	case workflow.NoticeWarning:
		level = ToastWarning
	case workflow.NoticeError:
		level = ToastError
	}
	return ToastMsg{Level: level, Text: n.Text}
}
