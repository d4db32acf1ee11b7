package dashboard

import (
	"context"
	"fmt"

	"roster-cli/internal/model"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"
)

const ErrorMessage = "Failed to load dashboard data"

type Source interface {
	AllEmployees(ctx context.Context) ([]model.Employee, error)
	ListDepartments(ctx context.Context) ([]model.Department, error)
}

// Fetch loads employees and departments concurrently and summarizes them. Either
// request failing fails the whole load.
func Fetch(ctx context.Context, src Source) (Summary, error) {
	var (
		employees   []model.Employee
		departments []model.Department
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		employees, err = src.AllEmployees(ctx)
		if err != nil {
			return fmt.Errorf("load employees: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		departments, err = src.ListDepartments(ctx)
		if err != nil {
			return fmt.Errorf("load departments: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}
	return Summarize(employees, departments), nil
}

type Phase int

const (
	PhaseLoading Phase = iota
	PhaseReady
	PhaseError
)

type State struct {
	Phase   Phase
	Summary Summary
	Message string
}

// LiveText is the one-line status announced with the dashboard.
func (s State) LiveText() string {
	switch s.Phase {
	case PhaseLoading:
		return "Loading dashboard"
	case PhaseError:
		return "Dashboard failed to load"
	}
	return fmt.Sprintf("Dashboard loaded. %d employees total.", s.Summary.Headcount)
}

type LoadedMsg struct {
	Seq     int
	Summary Summary
	Err     error
}

// Loader drives State from the Bubble Tea loop. Only the newest load is applied.
type Loader struct {
	src    Source
	seq    int
	cancel context.CancelFunc
	state  State
}

func NewLoader(src Source) *Loader {
	return &Loader{src: src}
}

func (l *Loader) State() State { return l.state }

// Load starts a (re)load and moves to the loading phase.
func (l *Loader) Load() tea.Cmd {
	if l.cancel != nil {
		l.cancel()
	}
	l.seq++
	seq := l.seq
	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel
	l.state = State{Phase: PhaseLoading}

	src := l.src
	return func() tea.Msg {
		s, err := Fetch(ctx, src)
		return LoadedMsg{Seq: seq, Summary: s, Err: err}
	}
}

func (l *Loader) Update(msg tea.Msg) bool {
	m, ok := msg.(LoadedMsg)
	if !ok || m.Seq != l.seq {
		return false
	}
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	if m.Err != nil {
		l.state = State{Phase: PhaseError, Message: ErrorMessage}
		return true
	}
	l.state = State{Phase: PhaseReady, Summary: m.Summary}
	return true
}

func (l *Loader) Close() {
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}
