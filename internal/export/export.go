// Package export writes every employee matching a list query to an xlsx workbook.
package export

import (
	"context"
	"fmt"
	"strconv"

	"roster-cli/internal/dashboard"
	"roster-cli/internal/model"
	"roster-cli/internal/query"

	"github.com/xuri/excelize/v2"
)

// PageSize is the page size used while walking the query.
const PageSize = 100

const (
	SheetEmployees = "Employees"
	SheetSummary   = "Summary"
	SheetQuery     = "Query"
)

type Lister interface {
	ListEmployees(ctx context.Context, q query.Query) (model.Page, error)
}

var employeeHeader = []any{"ID", "First name", "Last name", "Email", "Department", "Title", "Status", "Salary", "Hire date", "Manager ID"}

// Collect fetches every page of q (its own page and page size are ignored).
func Collect(ctx context.Context, l Lister, q query.Query) ([]model.Employee, error) {
	q = q.Normalize()
	q.PageSize = PageSize
	var out []model.Employee
	for page := 1; ; page++ {
		q.Page = page
		p, err := l.ListEmployees(ctx, q)
		if err != nil {
			return nil, fmt.Errorf("export page %d: %w", page, err)
		}
		out = append(out, p.Items...)
		if len(p.Items) == 0 || len(out) >= p.Total || page >= query.TotalPages(p.Total, PageSize) {
			return out, nil
		}
	}
}

// Workbook collects q and renders it.
func Workbook(ctx context.Context, l Lister, q query.Query, departments []model.Department) (*excelize.File, error) {
	employees, err := Collect(ctx, l, q)
	if err != nil {
		return nil, err
	}
	return Build(employees, departments, q)
}

// Build renders the Employees, Summary and Query sheets.
func Build(employees []model.Employee, departments []model.Department, q query.Query) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetEmployees); err != nil {
		return nil, err
	}
	for _, name := range []string{SheetSummary, SheetQuery} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	if err := writeEmployees(f, bold, employees, departments); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := writeSummary(f, bold, dashboard.Summarize(employees, departments)); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := writeQuery(f, bold, q); err != nil {
		_ = f.Close()
		return nil, err
	}
	f.SetActiveSheet(0)
	return f, nil
}

func WriteFile(f *excelize.File, path string) error {
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func writeEmployees(f *excelize.File, bold int, employees []model.Employee, departments []model.Department) error {
	names := make(map[int]string, len(departments))
	for _, d := range departments {
		names[d.ID] = d.Name
	}
	if err := f.SetSheetRow(SheetEmployees, "A1", &employeeHeader); err != nil {
		return err
	}
	last, _ := excelize.CoordinatesToCellName(len(employeeHeader), 1)
	if err := f.SetCellStyle(SheetEmployees, "A1", last, bold); err != nil {
		return err
	}
	for i, e := range employees {
		dept, ok := names[e.DepartmentID]
		if !ok {
			dept = "#" + strconv.Itoa(e.DepartmentID)
		}
		var manager any = ""
		if e.ManagerID != nil {
			manager = *e.ManagerID
		}
		row := []any{e.ID, e.FirstName, e.LastName, e.Email, dept, e.Title, e.Status.Label(), e.Salary, e.HireDate, manager}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(SheetEmployees, cell, &row); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(SheetEmployees, "A", "A", 6); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetEmployees, "B", "J", 18); err != nil {
		return err
	}
	if err := f.SetPanes(SheetEmployees, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return err
	}
	lastCell, _ := excelize.CoordinatesToCellName(len(employeeHeader), len(employees)+1)
	return f.AutoFilter(SheetEmployees, "A1:"+lastCell, nil)
}

func writeSummary(f *excelize.File, bold int, s dashboard.Summary) error {
	rows := [][]any{
		{"Metric", "Value"},
		{"Headcount", s.Headcount},
		{"Active", s.Active},
		{"On leave", s.OnLeave},
		{"Inactive", s.Inactive},
		{"Average salary", s.AvgSalary},
		{"Departments", s.Departments},
		{},
		{"Department", "Employees"},
	}
	for _, d := range s.ByDepartment {
		rows = append(rows, []any{d.Name, d.Count})
	}
	for i := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(SheetSummary, cell, &rows[i]); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(SheetSummary, "A1", "B1", bold); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetSummary, "A9", "B9", bold); err != nil {
		return err
	}
	return f.SetColWidth(SheetSummary, "A", "A", 20)
}

func writeQuery(f *excelize.File, bold int, q query.Query) error {
	q = q.Normalize()
	dept := ""
	if q.HasDepartment {
		dept = strconv.Itoa(q.DepartmentID)
	}
	rows := [][]any{
		{"Parameter", "Value"},
		{"location", query.Location(q)},
		{query.ParamText, q.Text},
		{query.ParamStatus, string(q.Status)},
		{query.ParamDepartment, dept},
		{query.ParamSort, string(q.Sort)},
		{query.ParamOrder, string(q.Order)},
	}
	for i := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(SheetQuery, cell, &rows[i]); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(SheetQuery, "A1", "B1", bold); err != nil {
		return err
	}
	return f.SetColWidth(SheetQuery, "A", "B", 24)
}
