package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"roster-cli/internal/listquery"
	"roster-cli/internal/query"

	"github.com/charmbracelet/lipgloss"
)

func (m appModel) View() string {
	top := m.viewHeader()
	bottom := m.viewFooter()
	bodyH := m.height - lipgloss.Height(top) - lipgloss.Height(bottom)

	var body string
	switch m.modal {
	case modalConfirmDelete:
		body = placeCentered(m.width, bodyH, m.viewConfirmDelete())
	case modalBookmarkName:
		body = placeCentered(m.width, bodyH, m.viewBookmarkPrompt())
	default:
		switch m.view {
		case viewDetail:
			body = m.renderDetail()
		case viewDashboard:
			body = m.renderDashboard()
		case viewBookmarks:
			body = m.renderBookmarks()
		default:
			body = m.renderList()
		}
	}
	return strings.Join([]string{top, fitPane(body, m.width, bodyH), bottom}, "\n")
}

func (m appModel) viewHeader() string {
	tabs := []struct {
		v     view
		label string
	}{
		{viewList, "Employees"},
		{viewDashboard, "Dashboard"},
		{viewBookmarks, "Bookmarks"},
	}
	parts := []string{styleTitle().Render("roster")}
	for _, t := range tabs {
		st := styleMuted().Padding(0, 1)
		if m.view == t.v || (t.v == viewList && m.view == viewDetail) {
			st = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Padding(0, 1)
		}
		parts = append(parts, st.Render(t.label))
	}
	nav := ""
	if m.hist.CanBack() {
		nav += "b"
	}
	if m.hist.CanForward() {
		nav += " f"
	}
	line := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	loc := styleChrome().Render("location ") + m.hist.Current() + styleMuted().Render("  "+strings.TrimSpace(nav))
	return fitPane(line, m.width, 1) + "\n" + fitPane(loc, m.width, 1)
}

func (m appModel) viewFooter() string {
	mini := ""
	if m.minibufferText != "" {
		if m.minibufferErr {
			mini = styleError().Render(m.minibufferText)
		} else {
			mini = lipgloss.NewStyle().Foreground(colorSuccess).Render(m.minibufferText)
		}
	}
	var helpView string
	if m.view == viewList {
		helpView = m.help.View(listKeys{m.keys})
	} else {
		helpView = m.help.View(pageKeys{m.keys})
	}
	return fitPane(mini, m.width, 1) + "\n" + helpView
}

func (m appModel) renderList() string {
	in := m.ctrl.Inputs()
	v := m.ctrl.View()

	search := m.search.View()
	if !m.searching && m.search.Value() == "" {
		search = styleMuted().Render("/ to search")
	}
	pending := ""
	if m.ctrl.PendingSearch() {
		pending = "searching…"
	}
	lines := []string{renderInputLine(m.width, search, pending)}

	dept := "Any"
	if in.HasDepartment {
		dept = m.ctrl.DepartmentName(in.DepartmentID)
	}
	status := "Any"
	if in.Status != query.StatusAny {
		status = statusStyle(string(in.Status)).Render(string(in.Status))
	}
	sep := styleMuted().Render(" " + glyphSep() + " ")
	filters := styleChrome().Render("status ") + status +
		sep + styleChrome().Render("department ") + dept +
		sep + styleChrome().Render("page size ") + fmt.Sprint(in.PageSize)
	lines = append(lines, filters)

	switch v.Phase {
	case listquery.PhaseLoading:
		lines = append(lines, m.spinner.View()+" "+v.ResultsText())
	case listquery.PhaseError:
		lines = append(lines, styleError().Render(v.Err())+styleMuted().Render("  r: retry"))
	default:
		lines = append(lines, styleChrome().Render(v.ResultsText()))
	}

	if v.Phase == listquery.PhaseReady && len(v.Items) == 0 {
		hint := "No employees match."
		if m.ctrl.Query().HasFilters() {
			hint += " Press c to clear filters."
		}
		lines = append(lines, "", styleMuted().Render(hint))
		return strings.Join(lines, "\n")
	}

	lines = append(lines, m.table.View())
	lines = append(lines, styleMuted().Render(fmt.Sprintf("Page %d of %d", in.Page, m.ctrl.TotalPages())))
	return strings.Join(lines, "\n")
}

func (m appModel) viewConfirmDelete() string {
	e, ok := m.ctrl.PendingDelete()
	if !ok {
		return ""
	}
	body := fmt.Sprintf("Delete %s?\nThis cannot be undone.", e.FullName())
	return renderConfirmModal(m.width, "Delete employee", body, "Delete", "Cancel", m.confirmFocus)
}

func (m appModel) viewBookmarkPrompt() string {
	bodyW := modalBodyWidth(m.width) - 2
	body := styleMuted().Render(m.hist.Current()) + "\n\n" +
		renderInputLine(bodyW, m.nameInput.View(), nameLength(m.nameInput.Value(), m.nameInput.CharLimit)) + "\n\n" +
		styleMuted().Render("enter: save   esc: cancel")
	return renderModalBox(m.width, "Bookmark as", body)
}

// nameLength shows how much of the bookmark name limit is used.
func nameLength(value string, limit int) string {
	n := utf8.RuneCountInString(value)
	if n == 0 {
		return ""
	}
	return fmt.Sprintf("%d/%d", n, limit)
}
