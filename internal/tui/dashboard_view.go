package tui

import (
	"strconv"
	"strings"

	"roster-cli/internal/dashboard"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

func (m appModel) renderDashboard() string {
	st := m.dash.State()
	switch st.Phase {
	case dashboard.PhaseLoading:
		return m.spinner.View() + " " + st.LiveText()
	case dashboard.PhaseError:
		return styleError().Render(st.Message) + "\n\n" + styleMuted().Render("r: retry   esc: back")
	}
	return renderSummary(st, m.width)
}

func renderSummary(st dashboard.State, width int) string {
	s := st.Summary

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorMuted).
		Padding(0, 1).
		Width(16)
	stat := func(label, value string) string {
		return card.Render(styleMuted().Render(label) + "\n" + lipgloss.NewStyle().Bold(true).Render(value))
	}
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		stat("Headcount", humanize.Comma(int64(s.Headcount))),
		stat("Active", strconv.Itoa(s.Active)),
		stat("On leave", strconv.Itoa(s.OnLeave)),
		stat("Inactive", strconv.Itoa(s.Inactive)),
		stat("Avg salary", humanize.Comma(int64(s.AvgSalary))),
		stat("Departments", strconv.Itoa(s.Departments)),
	)

	lines := []string{styleChrome().Render(st.LiveText()), "", cards, "", styleChrome().Bold(true).Render("By department")}

	maxCount := 0
	nameW := 10
	for _, d := range s.ByDepartment {
		maxCount = max(maxCount, d.Count)
		nameW = max(nameW, lipgloss.Width(d.Name))
	}
	barW := width - nameW - 12
	if barW < 5 {
		barW = 5
	}
	for _, d := range s.ByDepartment {
		n := 0
		if maxCount > 0 {
			n = d.Count * barW / maxCount
		}
		bar := lipgloss.NewStyle().Foreground(colorAccent).Render(strings.Repeat(glyphBar(), n))
		lines = append(lines, lipgloss.NewStyle().Width(nameW+2).Render(d.Name)+bar+" "+strconv.Itoa(d.Count))
	}

	if len(s.RecentHires) > 0 {
		lines = append(lines, "", styleChrome().Bold(true).Render("Recent hires"))
		for _, e := range s.RecentHires {
			lines = append(lines, glyphBullet()+" "+e.HireDate+"  "+e.FullName()+styleMuted().Render("  "+e.Title))
		}
	}
	return strings.Join(lines, "\n")
}
