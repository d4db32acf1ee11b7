// Package listquery keeps the employee list in sync with its inputs, its location and
// the backend.
//
// Everything runs on the Bubble Tea update loop: setters mutate input cells and return
// the commands (debounce ticks, requests) that the program executes off-loop; results
// come back as messages through Update. Each accepted query is tagged with a sequence
// number and only the response carrying the latest one is applied.
package listquery

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"roster-cli/internal/model"
	"roster-cli/internal/query"

	tea "github.com/charmbracelet/bubbletea"
)

const DefaultDebounce = 250 * time.Millisecond

// Store is the slice of the backend the list needs.
type Store interface {
	ListEmployees(ctx context.Context, q query.Query) (model.Page, error)
	DeleteEmployee(ctx context.Context, id int) error
	ListDepartments(ctx context.Context) ([]model.Department, error)
}

type Options struct {
	// Debounce is the quiet period applied to search text. Zero means DefaultDebounce.
	Debounce time.Duration
	Router   Router
	Sink     Sink
}

// Inputs are the independent user-editable cells. Text is the raw search text as typed;
// the query only sees it once it has settled.
type Inputs struct {
	Text          string
	Status        query.Status
	DepartmentID  int
	HasDepartment bool
	Page          int
	PageSize      int
	Sort          query.SortKey
	Order         query.SortDir
}

func inputsFrom(q query.Query) Inputs {
	return Inputs{
		Text:          q.Text,
		Status:        q.Status,
		DepartmentID:  q.DepartmentID,
		HasDepartment: q.HasDepartment,
		Page:          q.Page,
		PageSize:      q.PageSize,
		Sort:          q.Sort,
		Order:         q.Order,
	}
}

type Controller struct {
	store    Store
	router   Router
	sink     Sink
	debounce time.Duration

	in          Inputs
	textVersion int
	settledText string

	last    query.Query
	emitted bool

	fetchSeq int
	cancel   context.CancelFunc
	view     ViewState

	departments []model.Department

	pendingDelete *model.Employee
}

func New(store Store, opts Options) *Controller {
	c := &Controller{
		store:    store,
		router:   opts.Router,
		sink:     opts.Sink,
		debounce: opts.Debounce,
	}
	if c.router == nil {
		c.router = nopRouter{}
	}
	if c.sink == nil {
		c.sink = NopSink{}
	}
	if c.debounce <= 0 {
		c.debounce = DefaultDebounce
	}
	c.in = inputsFrom(query.Default())
	c.view = ViewState{Phase: PhaseLoading, Items: []model.Employee{}}
	return c
}

// Start decodes the initial location, issues the first request and loads departments.
func (c *Controller) Start(location string) tea.Cmd {
	return tea.Batch(c.Navigate(location), c.loadDepartments())
}

// Close cancels the in-flight request, if any.
func (c *Controller) Close() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Controller) Inputs() Inputs { return c.in }
func (c *Controller) View() ViewState { return c.view }
func (c *Controller) PendingSearch() bool { return strings.TrimSpace(c.in.Text) != c.settledText }
func (c *Controller) ResultsText() string { return c.view.ResultsText() }
func (c *Controller) TotalPages() int { return query.TotalPages(c.view.Total, c.in.PageSize) }
func (c *Controller) Location() string { return query.Location(c.last) }
func (c *Controller) Departments() []model.Department {
	out := make([]model.Department, len(c.departments))
	copy(out, c.departments)
	return out
}

// Query returns the last emitted query (the default query before Start).
func (c *Controller) Query() query.Query {
	if !c.emitted {
		return query.Default()
	}
	return c.last
}

// DepartmentName resolves id against the loaded departments. Unknown ids render as
// "#<id>"; a missing department renders as an em dash.
func (c *Controller) DepartmentName(id int) string {
	if id <= 0 {
		return "—"
	}
	for _, d := range c.departments {
		if d.ID == id {
			return d.Name
		}
	}
	return "#" + strconv.Itoa(id)
}

// SetText records a keystroke. The query only changes after the text stays put for the
// debounce period, and only if its trimmed form differs from what was last settled.
func (c *Controller) SetText(raw string) tea.Cmd {
	if raw == c.in.Text {
		return nil
	}
	c.in.Text = raw
	c.textVersion++
	version := c.textVersion
	return tea.Tick(c.debounce, func(time.Time) tea.Msg {
		return textSettledMsg{version: version, text: raw}
	})
}

func (c *Controller) settleText(msg textSettledMsg) tea.Cmd {
	if msg.version != c.textVersion {
		return nil
	}
	text := strings.TrimSpace(msg.text)
	if text == c.settledText {
		c.sink.Emit(Event{Kind: EventTextDeduped, Query: c.Query()})
		return nil
	}
	c.settledText = text
	c.in.Page = query.DefaultPage
	return c.compose()
}

// ClearSearch empties the search box immediately, without waiting for the debounce.
func (c *Controller) ClearSearch() tea.Cmd {
	c.in.Text = ""
	c.textVersion++
	if c.settledText == "" {
		return nil
	}
	c.settledText = ""
	c.in.Page = query.DefaultPage
	return c.compose()
}

func (c *Controller) SetStatus(s query.Status) tea.Cmd {
	if !s.Valid() || s == c.in.Status {
		return nil
	}
	c.in.Status = s
	c.in.Page = query.DefaultPage
	return c.compose()
}

func (c *Controller) SetDepartment(id int) tea.Cmd {
	if c.in.HasDepartment && c.in.DepartmentID == id {
		return nil
	}
	c.in.HasDepartment = true
	c.in.DepartmentID = id
	c.in.Page = query.DefaultPage
	return c.compose()
}

func (c *Controller) ClearDepartment() tea.Cmd {
	if !c.in.HasDepartment {
		return nil
	}
	c.in.HasDepartment = false
	c.in.DepartmentID = 0
	c.in.Page = query.DefaultPage
	return c.compose()
}

// ClearFilters resets text, status and department and returns to page 1.
func (c *Controller) ClearFilters() tea.Cmd {
	c.in.Text = ""
	c.textVersion++
	c.settledText = ""
	c.in.Status = query.StatusAny
	c.in.HasDepartment = false
	c.in.DepartmentID = 0
	c.in.Page = query.DefaultPage
	return c.compose()
}

// SetPage moves to p, clamped to the pages the settled total allows. While a fetch
// is in flight or failed the total is unknown, so only backward moves are taken.
func (c *Controller) SetPage(p int) tea.Cmd {
	if c.view.Phase == PhaseReady {
		p = query.ClampPage(p, c.view.Total, c.in.PageSize)
	} else {
		p = max(1, min(p, c.in.Page))
	}
	if p == c.in.Page {
		return nil
	}
	c.in.Page = p
	return c.compose()
}

func (c *Controller) NextPage() tea.Cmd { return c.SetPage(c.in.Page + 1) }
func (c *Controller) PrevPage() tea.Cmd { return c.SetPage(c.in.Page - 1) }

func (c *Controller) SetPageSize(n int) tea.Cmd {
	if n < 1 || n == c.in.PageSize {
		return nil
	}
	c.in.PageSize = n
	c.in.Page = query.DefaultPage
	return c.compose()
}

func (c *Controller) ToggleSort(key query.SortKey) tea.Cmd {
	if !key.Valid() {
		return nil
	}
	if c.in.Sort == key {
		c.in.Order = c.in.Order.Flip()
	} else {
		c.in.Sort = key
		c.in.Order = query.Asc
	}
	c.in.Page = query.DefaultPage
	return c.compose()
}

// Reload re-issues the current query even though it has not changed.
func (c *Controller) Reload() tea.Cmd {
	if !c.emitted {
		return nil
	}
	c.sink.Emit(Event{Kind: EventReload, Query: c.last})
	return c.accept()
}

// Retry is Reload, offered from the error view.
func (c *Controller) Retry() tea.Cmd { return c.Reload() }

// Update routes the controller's own messages. Other messages are ignored.
func (c *Controller) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case textSettledMsg:
		return c.settleText(msg)
	case PageLoadedMsg:
		c.settlePage(msg)
	case DeleteDoneMsg:
		return c.finishDelete(msg)
	case departmentsLoadedMsg:
		c.settleDepartments(msg)
	}
	return nil
}

func (c *Controller) candidate() query.Query {
	return query.Query{
		Text:          c.settledText,
		Status:        c.in.Status,
		DepartmentID:  c.in.DepartmentID,
		HasDepartment: c.in.HasDepartment,
		Page:          c.in.Page,
		PageSize:      c.in.PageSize,
		Sort:          c.in.Sort,
		Order:         c.in.Order,
	}.Normalize()
}

// compose emits the candidate query if it differs from the last one emitted, writes it
// to the location and starts fetching it.
func (c *Controller) compose() tea.Cmd {
	q := c.candidate()
	if c.emitted && q == c.last {
		return nil
	}
	c.last = q
	c.emitted = true
	c.sink.Emit(Event{Kind: EventQueryEmitted, Query: q})
	c.writeLocation(q)
	return c.accept()
}

// accept starts a request for the last emitted query and supersedes any earlier one.
func (c *Controller) accept() tea.Cmd {
	c.Close()
	c.fetchSeq++
	seq := c.fetchSeq
	q := c.last
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel

	c.setView(loadingFrom(c.view))
	c.sink.Emit(Event{Kind: EventFetchStarted, Seq: seq, Query: q})

	store := c.store
	return func() tea.Msg {
		page, err := store.ListEmployees(ctx, q)
		return PageLoadedMsg{Seq: seq, Query: q, Page: page, Err: err}
	}
}

func (c *Controller) settlePage(msg PageLoadedMsg) {
	if msg.Seq != c.fetchSeq {
		c.sink.Emit(Event{Kind: EventFetchDiscarded, Seq: msg.Seq, Query: msg.Query, Err: msg.Err})
		return
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	if msg.Err != nil {
		if errors.Is(msg.Err, context.Canceled) {
			// Close() tore the request down; nothing to show.
			return
		}
		c.setView(errorState(FetchErrorMessage))
		c.sink.Emit(Event{Kind: EventFetchSettled, Seq: msg.Seq, Query: msg.Query, Phase: PhaseError, Err: msg.Err})
		return
	}
	c.setView(readyState(msg.Page))
	c.sink.Emit(Event{Kind: EventFetchSettled, Seq: msg.Seq, Query: msg.Query, Phase: PhaseReady, Total: c.view.Total})
}

func (c *Controller) setView(v ViewState) {
	c.view = v
	c.sink.Emit(Event{Kind: EventViewChanged, Seq: c.fetchSeq, Phase: v.Phase, Total: v.Total})
}

func (c *Controller) loadDepartments() tea.Cmd {
	store := c.store
	return func() tea.Msg {
		depts, err := store.ListDepartments(context.Background())
		return departmentsLoadedMsg{departments: depts, err: err}
	}
}

// Departments failing to load is not fatal: the filter simply offers nothing.
func (c *Controller) settleDepartments(msg departmentsLoadedMsg) {
	if msg.err != nil {
		c.departments = nil
		c.sink.Emit(Event{Kind: EventDepartmentsFailed, Err: msg.err})
		return
	}
	c.departments = msg.departments
	c.sink.Emit(Event{Kind: EventDepartmentsLoaded, Total: len(msg.departments)})
}
