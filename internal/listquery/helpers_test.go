package listquery

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"roster-cli/internal/model"
	"roster-cli/internal/query"

	tea "github.com/charmbracelet/bubbletea"
)

type fakeStore struct {
	mu          sync.Mutex
	employees   []model.Employee
	departments []model.Department

	listErr   func(query.Query) error
	deleteErr error
	deptErr   error
	delay     func(query.Query) time.Duration

	listCalls []query.Query
	ctxs      []context.Context
	deleted   []int
}

func newFakeStore(n int) *fakeStore {
	statuses := []model.EmployeeStatus{model.StatusActive, model.StatusOnLeave, model.StatusInactive}
	s := &fakeStore{
		departments: []model.Department{{ID: 1, Name: "Engineering"}, {ID: 2, Name: "Sales"}, {ID: 3, Name: "Support"}},
	}
	for i := 0; i < n; i++ {
		s.employees = append(s.employees, model.Employee{
			ID:           i + 1,
			FirstName:    fmt.Sprintf("First%02d", i+1),
			LastName:     fmt.Sprintf("Last%02d", i+1),
			Email:        fmt.Sprintf("e%02d@example.com", i+1),
			DepartmentID: i%3 + 1,
			Status:       statuses[i%3],
			Salary:       float64(50000 + i*1000),
			HireDate:     "2020-01-01",
		})
	}
	return s
}

func (s *fakeStore) ListEmployees(ctx context.Context, q query.Query) (model.Page, error) {
	s.mu.Lock()
	s.listCalls = append(s.listCalls, q)
	s.ctxs = append(s.ctxs, ctx)
	all := append([]model.Employee(nil), s.employees...)
	var delay time.Duration
	if s.delay != nil {
		delay = s.delay(q)
	}
	var err error
	if s.listErr != nil {
		err = s.listErr(q)
	}
	s.mu.Unlock()

	// Responses arrive regardless of cancellation, like a server that ignores aborts.
	if delay > 0 {
		time.Sleep(delay)
	}
	if err != nil {
		return model.Page{}, err
	}

	var matched []model.Employee
	text := strings.ToLower(q.Text)
	for _, e := range all {
		if q.Status != query.StatusAny && string(e.Status) != string(q.Status) {
			continue
		}
		if q.HasDepartment && e.DepartmentID != q.DepartmentID {
			continue
		}
		if text != "" && !strings.Contains(strings.ToLower(e.FullName()+" "+e.Email), text) {
			continue
		}
		matched = append(matched, e)
	}
	start := q.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + q.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return model.Page{Items: matched[start:end], Total: len(matched)}, nil
}

func (s *fakeStore) DeleteEmployee(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, id)
	for i, e := range s.employees {
		if e.ID == id {
			s.employees = append(s.employees[:i], s.employees[i+1:]...)
			break
		}
	}
	return nil
}

func (s *fakeStore) ListDepartments(context.Context) ([]model.Department, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deptErr != nil {
		return nil, s.deptErr
	}
	return append([]model.Department(nil), s.departments...), nil
}

func (s *fakeStore) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listCalls)
}

func (s *fakeStore) lastCall() query.Query {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listCalls[len(s.listCalls)-1]
}

type recorder struct {
	events []Event
}

func (r *recorder) Emit(e Event) { r.events = append(r.events, e) }

func (r *recorder) count(kind EventKind) int {
	n := 0
	for _, e := range r.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// phasesSince lists the view phases recorded after the first `from` events.
func (r *recorder) phasesSince(from int) []Phase {
	var out []Phase
	for _, e := range r.events[from:] {
		if e.Kind == EventViewChanged {
			out = append(out, e.Phase)
		}
	}
	return out
}

// drive runs cmd, feeds every message it produces back into c and keeps going until no
// command is left. Notices are returned instead of being fed back.
func drive(t *testing.T, c *Controller, cmd tea.Cmd) []NoticeMsg {
	t.Helper()
	var notices []NoticeMsg
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 1000 {
			t.Fatalf("command loop did not settle")
		}
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		switch msg := next().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case NoticeMsg:
			notices = append(notices, msg)
		default:
			queue = append(queue, c.Update(msg))
		}
	}
	return notices
}

func newTestController(t *testing.T, store Store, opts Options) *Controller {
	t.Helper()
	if opts.Debounce == 0 {
		opts.Debounce = time.Millisecond
	}
	c := New(store, opts)
	t.Cleanup(c.Close)
	return c
}
