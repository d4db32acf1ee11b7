package tui

import (
	"context"
	"strconv"
	"strings"

	"roster-cli/internal/dashboard"
	"roster-cli/internal/listquery"
	"roster-cli/internal/model"
	"roster-cli/internal/nav"
	"roster-cli/internal/query"
	"roster-cli/internal/store"
)

// Backend is everything the TUI needs from the entity store. *api.Client satisfies it.
type Backend interface {
	listquery.Store
	dashboard.Source
	GetEmployee(ctx context.Context, id int) (model.Employee, error)
}

type view int

const (
	viewList view = iota
	viewDetail
	viewDashboard
	viewBookmarks
)

func (v view) String() string {
	switch v {
	case viewDetail:
		return "detail"
	case viewDashboard:
		return "dashboard"
	case viewBookmarks:
		return "bookmarks"
	}
	return "list"
}

const (
	dashboardPath = "/dashboard"
	bookmarksPath = "/bookmarks"
)

// route is a parsed TUI location.
type route struct {
	view       view
	employeeID int
}

// parseRoute maps a location to a view. Unknown paths fall back to the list.
func parseRoute(loc string) route {
	path, _, err := query.ParseLocation(loc)
	if err != nil {
		return route{view: viewList}
	}
	switch {
	case path == dashboardPath:
		return route{view: viewDashboard}
	case path == bookmarksPath:
		return route{view: viewBookmarks}
	case strings.HasPrefix(path, query.ListPath+"/"):
		id, err := strconv.Atoi(strings.TrimPrefix(path, query.ListPath+"/"))
		if err == nil && id > 0 {
			return route{view: viewDetail, employeeID: id}
		}
	}
	return route{view: viewList}
}

func employeeLocation(id int) string { return query.ListPath + "/" + strconv.Itoa(id) }

// isListLocation reports whether loc addresses the employee list itself. Unknown
// paths route to the list view but are not list entries.
func isListLocation(loc string) bool {
	path, _, err := query.ParseLocation(loc)
	return err == nil && path == query.ListPath
}

// listRouter mirrors list query changes into the history. A write that lands while
// another page is showing (a debounced search settling late) updates the list entry the
// user came from instead of the page on screen. Writes only ever replace; the history
// is seeded with a list entry, so a write with nowhere to go is dropped.
type listRouter struct{ h *nav.History }

func (r listRouter) Replace(loc string) {
	r.h.ReplaceNearest(isListLocation, loc)
}

type modalKind int

const (
	modalNone modalKind = iota
	modalConfirmDelete
	modalBookmarkName
)

type employeeLoadedMsg struct {
	seq      int
	employee model.Employee
	err      error
}

type bookmarksLoadedMsg struct {
	bookmarks []store.Bookmark
	err       error
}

type bookmarkSavedMsg struct {
	bookmark store.Bookmark
	err      error
}

type bookmarkRemovedMsg struct {
	name string
	err  error
}

type minibufferClearMsg struct{ seq int }
