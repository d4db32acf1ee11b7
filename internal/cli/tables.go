package cli

import (
	"encoding/json"
	"math"
	"strconv"

	"roster-cli/internal/dashboard"
	"roster-cli/internal/model"
	"roster-cli/internal/store"

	"github.com/dustin/go-humanize"
)

// employeeTable marshals as a plain employee array; the department lookup only feeds
// the table form.
type employeeTable struct {
	items       []model.Employee
	departments map[int]string
}

func newEmployeeTable(items []model.Employee, departments []model.Department) employeeTable {
	names := make(map[int]string, len(departments))
	for _, d := range departments {
		names[d.ID] = d.Name
	}
	if items == nil {
		items = []model.Employee{}
	}
	return employeeTable{items: items, departments: names}
}

func (t employeeTable) MarshalJSON() ([]byte, error) { return json.Marshal(t.items) }

func (t employeeTable) TableHeaders() []string {
	return []string{"ID", "Name", "Email", "Department", "Title", "Status", "Salary", "Hired"}
}

func (t employeeTable) TableRows() [][]string {
	rows := make([][]string, 0, len(t.items))
	for _, e := range t.items {
		dept, ok := t.departments[e.DepartmentID]
		if !ok {
			dept = "#" + strconv.Itoa(e.DepartmentID)
		}
		rows = append(rows, []string{
			strconv.Itoa(e.ID),
			e.FullName(),
			e.Email,
			dept,
			e.Title,
			e.Status.Label(),
			humanize.Comma(int64(math.Round(e.Salary))),
			e.HireDate,
		})
	}
	return rows
}

type departmentTable []model.Department

func (t departmentTable) TableHeaders() []string { return []string{"ID", "Name"} }

func (t departmentTable) TableRows() [][]string {
	rows := make([][]string, 0, len(t))
	for _, d := range t {
		rows = append(rows, []string{strconv.Itoa(d.ID), d.Name})
	}
	return rows
}

type bookmarkTable []store.Bookmark

func (t bookmarkTable) TableHeaders() []string { return []string{"Name", "Location", "Updated"} }

func (t bookmarkTable) TableRows() [][]string {
	rows := make([][]string, 0, len(t))
	for _, b := range t {
		rows = append(rows, []string{b.Name, b.Location, humanize.Time(b.UpdatedAt)})
	}
	return rows
}

// summaryTable renders the dashboard as metric/value rows.
type summaryTable struct {
	dashboard.Summary
}

func (t summaryTable) TableHeaders() []string { return []string{"Metric", "Value"} }

func (t summaryTable) TableRows() [][]string {
	s := t.Summary
	rows := [][]string{
		{"Headcount", humanize.Comma(int64(s.Headcount))},
		{"Active", humanize.Comma(int64(s.Active))},
		{"On leave", humanize.Comma(int64(s.OnLeave))},
		{"Inactive", humanize.Comma(int64(s.Inactive))},
		{"Average salary", humanize.Comma(int64(s.AvgSalary))},
		{"Departments", humanize.Comma(int64(s.Departments))},
	}
	for _, d := range s.ByDepartment {
		rows = append(rows, []string{"  " + d.Name, humanize.Comma(int64(d.Count))})
	}
	return rows
}

// mapTable renders a flat key/value payload (export results, server info).
type mapTable [][2]string

func (t mapTable) TableHeaders() []string { return []string{"Key", "Value"} }

func (t mapTable) TableRows() [][]string {
	rows := make([][]string, 0, len(t))
	for _, kv := range t {
		rows = append(rows, []string{kv[0], kv[1]})
	}
	return rows
}

func (t mapTable) MarshalJSON() ([]byte, error) {
	m := make(map[string]string, len(t))
	for _, kv := range t {
		m[kv[0]] = kv[1]
	}
	return json.Marshal(m)
}
