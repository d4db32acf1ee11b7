package tui

import (
	"strconv"
	"strings"
	"time"

	"roster-cli/internal/dashboard"
	"roster-cli/internal/listquery"
	"roster-cli/internal/query"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case minibufferClearMsg:
		if msg.seq == m.minibufferSeq {
			m.minibufferText = ""
			m.minibufferErr = false
		}
		return m, nil

	case listquery.NoticeMsg:
		cmd := m.showMinibuffer(msg.Text, msg.Level == listquery.NoticeError)
		return m, cmd

	case employeeLoadedMsg:
		return m.applyEmployee(msg), nil

	case dashboard.LoadedMsg:
		m.dash.Update(msg)
		return m, nil

	case bookmarksLoadedMsg:
		if msg.err != nil {
			m.bookmarksErr = "Failed to load bookmarks"
			m.log.Warn().Err(msg.err).Msg("list bookmarks")
			return m, nil
		}
		m.bookmarksErr = ""
		return m.setBookmarks(msg.bookmarks)

	case bookmarkSavedMsg:
		if msg.err != nil {
			m.log.Warn().Err(msg.err).Msg("save bookmark")
			cmd := m.showMinibuffer("Bookmark failed: "+msg.err.Error(), true)
			return m, cmd
		}
		cmd := m.showMinibuffer("Bookmarked "+msg.bookmark.Name, false)
		if m.view == viewBookmarks {
			return m, tea.Batch(cmd, m.loadBookmarks())
		}
		return m, cmd

	case bookmarkRemovedMsg:
		if msg.err != nil {
			cmd := m.showMinibuffer("Remove failed: "+msg.err.Error(), true)
			return m, cmd
		}
		cmd := m.showMinibuffer("Removed "+msg.name, false)
		return m, tea.Batch(cmd, m.loadBookmarks())

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	// Everything else belongs to the list controller (debounce ticks, page loads,
	// delete results, departments) or the bookmarks list.
	cmds := []tea.Cmd{m.ctrl.Update(msg)}
	if m.view == viewBookmarks {
		var cmd tea.Cmd
		m.bookmarkList, cmd = m.bookmarkList.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.syncList()
	return m, tea.Batch(cmds...)
}

func (m appModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.modal {
	case modalConfirmDelete:
		return m.updateConfirmDelete(msg)
	case modalBookmarkName:
		return m.updateBookmarkName(msg)
	}
	if m.searching {
		return m.updateSearch(msg)
	}
	if m.view == viewBookmarks && m.bookmarkList.SettingFilter() {
		var cmd tea.Cmd
		m.bookmarkList, cmd = m.bookmarkList.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		m.resize()
		return m, nil
	case key.Matches(msg, m.keys.Back):
		return m.back()
	case key.Matches(msg, m.keys.Forward):
		return m.forward()
	case key.Matches(msg, m.keys.Dashboard):
		return m.navigate(dashboardPath)
	case key.Matches(msg, m.keys.Bookmarks):
		return m.navigate(bookmarksPath)
	case key.Matches(msg, m.keys.List):
		return m.navigate(m.ctrl.Location())
	case key.Matches(msg, m.keys.Bookmark):
		return m.openBookmarkPrompt()
	}

	switch m.view {
	case viewList:
		return m.updateListKey(msg)
	case viewDetail:
		switch {
		case key.Matches(msg, m.keys.Reload):
			return m.visit(m.hist.Current())
		case key.Matches(msg, m.keys.Close):
			return m.back()
		}
	case viewDashboard:
		switch {
		case key.Matches(msg, m.keys.Reload):
			return m, m.dash.Load()
		case key.Matches(msg, m.keys.Close):
			return m.back()
		}
	case viewBookmarks:
		return m.updateBookmarksKey(msg)
	}
	return m, nil
}

func (m appModel) updateListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.search.CursorEnd()
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.Status):
		cmd = m.ctrl.SetStatus(nextStatus(m.ctrl.Inputs().Status))
	case key.Matches(msg, m.keys.Department):
		cmd = m.cycleDepartment()
	case key.Matches(msg, m.keys.Sort):
		i, _ := strconv.Atoi(msg.String())
		if i >= 1 && i <= len(sortColumns) {
			cmd = m.ctrl.ToggleSort(sortColumns[i-1].key)
		}
	case key.Matches(msg, m.keys.PrevPage):
		cmd = m.ctrl.PrevPage()
	case key.Matches(msg, m.keys.NextPage):
		cmd = m.ctrl.NextPage()
	case key.Matches(msg, m.keys.SmallerPage):
		cmd = m.ctrl.SetPageSize(stepPageSize(m.ctrl.Inputs().PageSize, -1))
	case key.Matches(msg, m.keys.LargerPage):
		cmd = m.ctrl.SetPageSize(stepPageSize(m.ctrl.Inputs().PageSize, 1))
	case key.Matches(msg, m.keys.Reload):
		cmd = m.ctrl.Reload()
	case key.Matches(msg, m.keys.ClearFilters):
		cmd = m.ctrl.ClearFilters()
	case key.Matches(msg, m.keys.Delete):
		e, ok := m.selectedEmployee()
		if !ok {
			return m, nil
		}
		m.ctrl.RequestDelete(e)
		m.modal = modalConfirmDelete
		m.confirmFocus = confirmFocusCancel
		return m, nil
	case key.Matches(msg, m.keys.Open):
		e, ok := m.selectedEmployee()
		if !ok {
			return m, nil
		}
		return m.navigate(employeeLocation(e.ID))
	default:
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	m.syncList()
	return m, cmd
}

func (m appModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, tea.Batch(cmd, m.ctrl.SetText(m.search.Value()))
}

func (m appModel) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab", "left", "right":
		m.confirmFocus = m.confirmFocus.toggle()
		return m, nil
	case "y":
		return m.confirmDelete()
	case "n", "esc":
		m.ctrl.CancelDelete()
		m.modal = modalNone
		return m, nil
	case "enter":
		if m.confirmFocus == confirmFocusConfirm {
			return m.confirmDelete()
		}
		m.ctrl.CancelDelete()
		m.modal = modalNone
		return m, nil
	}
	return m, nil
}

func (m appModel) confirmDelete() (tea.Model, tea.Cmd) {
	m.modal = modalNone
	return m, m.ctrl.ConfirmDelete()
}

func (m appModel) openBookmarkPrompt() (tea.Model, tea.Cmd) {
	if m.bookmarks == nil {
		cmd := m.showMinibuffer("Bookmarks are unavailable", true)
		return m, cmd
	}
	m.modal = modalBookmarkName
	m.nameInput.SetValue(m.suggestBookmarkName())
	m.nameInput.CursorEnd()
	return m, m.nameInput.Focus()
}

func (m appModel) updateBookmarkName(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.modal = modalNone
		m.nameInput.Blur()
		return m, nil
	case tea.KeyEnter:
		name := strings.TrimSpace(m.nameInput.Value())
		if name == "" {
			cmd := m.showMinibuffer("Bookmark name is empty", true)
			return m, cmd
		}
		m.modal = modalNone
		m.nameInput.Blur()
		return m, m.saveBookmark(name, m.hist.Current())
	}
	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m appModel) updateBookmarksKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Close):
		return m.back()
	case key.Matches(msg, m.keys.Reload):
		return m, m.loadBookmarks()
	case key.Matches(msg, m.keys.Open):
		if it, ok := m.bookmarkList.SelectedItem().(bookmarkItem); ok {
			return m.navigate(it.b.Location)
		}
		return m, nil
	case key.Matches(msg, m.keys.Delete):
		if it, ok := m.bookmarkList.SelectedItem().(bookmarkItem); ok && m.bookmarks != nil {
			return m, m.removeBookmark(it.b.Name)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.bookmarkList, cmd = m.bookmarkList.Update(msg)
	return m, cmd
}

// navigate pushes loc onto the history and shows it.
func (m appModel) navigate(loc string) (tea.Model, tea.Cmd) {
	m.hist.Push(loc)
	return m.visit(m.hist.Current())
}

func (m appModel) back() (tea.Model, tea.Cmd) {
	loc, ok := m.hist.Back()
	if !ok {
		cmd := m.showMinibuffer("No previous page", false)
		return m, cmd
	}
	return m.visit(loc)
}

func (m appModel) forward() (tea.Model, tea.Cmd) {
	loc, ok := m.hist.Forward()
	if !ok {
		cmd := m.showMinibuffer("No next page", false)
		return m, cmd
	}
	return m.visit(loc)
}

// visit shows loc without touching the history. List locations are handed to the
// controller, which decides whether anything needs refetching.
func (m appModel) visit(loc string) (appModel, tea.Cmd) {
	r := parseRoute(loc)
	var navCmd tea.Cmd
	if r.view == viewList {
		navCmd = m.ctrl.Navigate(loc)
	}
	m, routeCmd := m.openRoute(r)
	m.syncList()
	return m, tea.Batch(navCmd, routeCmd)
}

func (m appModel) openRoute(r route) (appModel, tea.Cmd) {
	m.view = r.view
	switch r.view {
	case viewDetail:
		m.detailSeq++
		m.detailID = r.employeeID
		m.detail = nil
		m.detailErr = ""
		m.detailLoading = true
		return m, m.fetchEmployee(m.detailSeq, r.employeeID)
	case viewDashboard:
		return m, m.dash.Load()
	case viewBookmarks:
		return m, m.loadBookmarks()
	}
	return m, nil
}

func (m *appModel) showMinibuffer(text string, isErr bool) tea.Cmd {
	m.minibufferText = text
	m.minibufferErr = isErr
	m.minibufferSeq++
	seq := m.minibufferSeq
	return tea.Tick(m.noticeTTL, func(time.Time) tea.Msg { return minibufferClearMsg{seq: seq} })
}

// syncList copies the controller's state into the widgets.
func (m *appModel) syncList() {
	m.table.SetColumns(employeeColumns(m.width, m.ctrl.Query()))
	rows := employeeRows(m.ctrl.View().Items, m.ctrl.DepartmentName)
	m.table.SetRows(rows)
	if len(rows) > 0 {
		if c := m.table.Cursor(); c < 0 || c >= len(rows) {
			m.table.SetCursor(min(max(c, 0), len(rows)-1))
		}
	}
	if !m.searching && m.search.Value() != m.ctrl.Inputs().Text {
		m.search.SetValue(m.ctrl.Inputs().Text)
	}
}

func (m appModel) cycleDepartment() tea.Cmd {
	depts := m.ctrl.Departments()
	if len(depts) == 0 {
		return nil
	}
	in := m.ctrl.Inputs()
	if !in.HasDepartment {
		return m.ctrl.SetDepartment(depts[0].ID)
	}
	for i, d := range depts {
		if d.ID == in.DepartmentID && i+1 < len(depts) {
			return m.ctrl.SetDepartment(depts[i+1].ID)
		}
	}
	return m.ctrl.ClearDepartment()
}

// nextStatus cycles any -> active -> on leave -> inactive -> any.
func nextStatus(s query.Status) query.Status {
	switch s {
	case query.StatusAny:
		return query.StatusActive
	case query.StatusActive:
		return query.StatusOnLeave
	case query.StatusOnLeave:
		return query.StatusInactive
	}
	return query.StatusAny
}

// stepPageSize moves one step through query.PageSizes from the size closest to cur.
func stepPageSize(cur, dir int) int {
	idx := 0
	for i, n := range query.PageSizes {
		if n <= cur {
			idx = i
		}
	}
	idx += dir
	if idx < 0 {
		idx = 0
	}
	if idx >= len(query.PageSizes) {
		idx = len(query.PageSizes) - 1
	}
	return query.PageSizes[idx]
}
