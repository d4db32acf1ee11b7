package tui

import (
	"math"
	"strconv"

	"roster-cli/internal/model"
	"roster-cli/internal/query"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// sortColumns maps the first five table columns to the sort keys behind 1..5.
var sortColumns = []struct {
	key   query.SortKey
	title string
}{
	{query.SortLastName, "Last name"},
	{query.SortFirstName, "First name"},
	{query.SortSalary, "Salary"},
	{query.SortHireDate, "Hired"},
	{query.SortStatus, "Status"},
}

func newEmployeeTable() table.Model {
	// Only vertical movement: letters are list shortcuts.
	km := table.KeyMap{
		LineUp:       key.NewBinding(key.WithKeys("up", "k")),
		LineDown:     key.NewBinding(key.WithKeys("down", "j")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		GotoTop:      key.NewBinding(key.WithKeys("home", "g")),
		GotoBottom:   key.NewBinding(key.WithKeys("end", "G")),
	}

	st := table.DefaultStyles()
	st.Header = st.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorMuted).
		BorderBottom(true).
		Bold(true)
	st.Selected = st.Selected.
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(true)

	return table.New(
		table.WithFocused(true),
		table.WithKeyMap(km),
		table.WithStyles(st),
	)
}

// employeeColumns sizes the columns for width and marks the active sort column.
func employeeColumns(width int, q query.Query) []table.Column {
	fixed := []int{14, 12, 10, 10, 9}
	rest := width - 2
	for _, w := range fixed {
		rest -= w + 2
	}
	dept, email := 12, 20
	if rest > dept+email+4 {
		dept = (rest - 4) / 3
		email = rest - 4 - dept
	}

	cols := make([]table.Column, 0, len(sortColumns)+2)
	for i, c := range sortColumns {
		title := c.title
		if q.Sort == c.key {
			if q.Order == query.Desc {
				title += " " + glyphSortDesc()
			} else {
				title += " " + glyphSortAsc()
			}
		}
		cols = append(cols, table.Column{Title: strconv.Itoa(i+1) + " " + title, Width: fixed[i]})
	}
	cols = append(cols,
		table.Column{Title: "Department", Width: dept},
		table.Column{Title: "Email", Width: email},
	)
	return cols
}

func employeeRows(items []model.Employee, department func(int) string) []table.Row {
	rows := make([]table.Row, 0, len(items))
	for _, e := range items {
		rows = append(rows, table.Row{
			e.LastName,
			e.FirstName,
			formatSalary(e.Salary),
			e.HireDate,
			e.Status.Label(),
			department(e.DepartmentID),
			e.Email,
		})
	}
	return rows
}

// formatSalary renders whole currency units with thousands separators.
func formatSalary(v float64) string {
	return humanize.Comma(int64(math.Round(v)))
}
