package listquery

import (
	"roster-cli/internal/model"
	"roster-cli/internal/query"

	tea "github.com/charmbracelet/bubbletea"
)

// textSettledMsg fires when the search debounce period ends. Only the latest version
// is honored.
type textSettledMsg struct {
	version int
	text    string
}

// PageLoadedMsg carries the outcome of one list request. Seq identifies the accepted
// query (or reload) it was issued for.
type PageLoadedMsg struct {
	Seq   int
	Query query.Query
	Page  model.Page
	Err   error
}

type DeleteDoneMsg struct {
	Employee model.Employee
	Err      error
}

type departmentsLoadedMsg struct {
	departments []model.Department
	err         error
}

type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeError
)

// NoticeMsg is a transient notification for the presentation layer (minibuffer/toast).
type NoticeMsg struct {
	Text  string
	Level NoticeLevel
}

func noticeCmd(text string, level NoticeLevel) tea.Cmd {
	return func() tea.Msg { return NoticeMsg{Text: text, Level: level} }
}
