package tui

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"roster-cli/internal/api"
	"roster-cli/internal/model"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// fetchEmployee loads the detail page. Results are tagged with seq so a slow response
// for a page the user already left is ignored.
func (m appModel) fetchEmployee(seq, id int) tea.Cmd {
	b := m.backend
	return func() tea.Msg {
		e, err := b.GetEmployee(context.Background(), id)
		return employeeLoadedMsg{seq: seq, employee: e, err: err}
	}
}

func (m appModel) applyEmployee(msg employeeLoadedMsg) appModel {
	if msg.seq != m.detailSeq {
		return m
	}
	m.detailLoading = false
	if msg.err != nil {
		m.detail = nil
		if errors.Is(msg.err, api.ErrNotFound) {
			m.detailErr = "Employee #" + strconv.Itoa(m.detailID) + " not found"
		} else {
			m.detailErr = "Failed to load employee"
		}
		m.log.Warn().Err(msg.err).Int("employee_id", m.detailID).Msg("detail load failed")
		return m
	}
	e := msg.employee
	m.detail = &e
	m.detailErr = ""
	return m
}

func (m appModel) renderDetail() string {
	switch {
	case m.detailLoading:
		return m.spinner.View() + " Loading employee"
	case m.detailErr != "":
		return styleError().Render(m.detailErr) + "\n\n" + styleMuted().Render("r: retry   esc: back")
	case m.detail == nil:
		return ""
	}
	return renderEmployeeDetail(*m.detail, m.ctrl.DepartmentName, m.width)
}

func renderEmployeeDetail(e model.Employee, department func(int) string, width int) string {
	label := styleMuted().Width(12)
	row := func(k, v string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top, label.Render(k), v)
	}

	manager := "—"
	if e.ManagerID != nil {
		manager = "#" + strconv.Itoa(*e.ManagerID)
	}

	lines := []string{
		styleTitle().Render(e.FullName()) + "  " + styleMuted().Render("#"+strconv.Itoa(e.ID)),
		"",
		row("Title", e.Title),
		row("Department", department(e.DepartmentID)),
		row("Status", statusStyle(string(e.Status)).Render(e.Status.Label())),
		row("Email", e.Email),
		row("Salary", formatSalary(e.Salary)),
		row("Hired", e.HireDate),
		row("Manager", manager),
	}
	if e.AvatarURL != "" {
		lines = append(lines, row("Avatar", e.AvatarURL))
	}
	if notes := renderNotes(e.Notes, width-4); notes != "" {
		lines = append(lines, "", styleChrome().Bold(true).Render("Notes"), notes)
	}
	return strings.Join(lines, "\n")
}
