package listquery

import (
	"fmt"

	"roster-cli/internal/model"
)

// FetchErrorMessage is the fixed user-facing text of the error view.
const FetchErrorMessage = "Failed to load employees"

type Phase int

const (
	PhaseLoading Phase = iota
	PhaseReady
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseError:
		return "error"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// ViewState is what the list shows. Phase selects the variant:
//   - loading: Items/Total are whatever was displayed before the request started
//   - ready:   Items is the current page, Total the server-reported match count
//   - error:   Items empty, Total 0, Message set
type ViewState struct {
	Phase   Phase
	Items   []model.Employee
	Total   int
	Message string
}

func loadingFrom(prev ViewState) ViewState {
	return ViewState{Phase: PhaseLoading, Items: prev.Items, Total: prev.Total}
}

func readyState(p model.Page) ViewState {
	items := p.Items
	if items == nil {
		items = []model.Employee{}
	}
	total := p.Total
	if total < 0 {
		total = 0
	}
	return ViewState{Phase: PhaseReady, Items: items, Total: total}
}

func errorState(message string) ViewState {
	return ViewState{Phase: PhaseError, Items: []model.Employee{}, Message: message}
}

func (v ViewState) Loading() bool { return v.Phase == PhaseLoading }

// Err returns the error message, or "" outside the error phase.
func (v ViewState) Err() string {
	if v.Phase != PhaseError {
		return ""
	}
	return v.Message
}

// ResultsText is the one-line live summary announced above the table.
func (v ViewState) ResultsText() string {
	switch v.Phase {
	case PhaseLoading:
		return "Loading employees"
	case PhaseError:
		return "Employees failed to load"
	}
	if v.Total == 1 {
		return "1 employee found"
	}
	return fmt.Sprintf("%d employees found", v.Total)
}
