package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"roster-cli/internal/export"
	"roster-cli/internal/model"
	"roster-cli/internal/query"

	"github.com/spf13/cobra"
)

func newEmployeesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "employees",
		Aliases: []string{"emp"},
		Short:   "Employee commands",
	}

	cmd.AddCommand(newEmployeesListCmd(app))
	cmd.AddCommand(newEmployeesGetCmd(app))
	cmd.AddCommand(newEmployeesCreateCmd(app))
	cmd.AddCommand(newEmployeesUpdateCmd(app))
	cmd.AddCommand(newEmployeesDeleteCmd(app))
	cmd.AddCommand(newEmployeesExportCmd(app))

	return cmd
}

// queryFlags are the list filters shared by list and export. --location is the base;
// explicitly set flags override its parameters.
type queryFlags struct {
	location   string
	text       string
	status     string
	department int
	page       int
	pageSize   int
	sort       string
	order      string
}

func (f *queryFlags) register(cmd *cobra.Command, paging bool) {
	cmd.Flags().StringVar(&f.location, "location", "", "List location, e.g. /employees?status=active&page=2")
	cmd.Flags().StringVar(&f.text, "q", "", "Search text")
	cmd.Flags().StringVar(&f.status, "status", "", "Status filter (active|on_leave|inactive; empty for any)")
	cmd.Flags().IntVar(&f.department, "department", 0, "Department id filter")
	cmd.Flags().StringVar(&f.sort, "sort", "", "Sort key (lastName|firstName|salary|hireDate|status)")
	cmd.Flags().StringVar(&f.order, "order", "", "Sort order (asc|desc)")
	if paging {
		cmd.Flags().IntVar(&f.page, "page", 0, "Page number (1-based)")
		cmd.Flags().IntVar(&f.pageSize, "page-size", 0, "Page size")
	}
}

// build resolves the query. Malformed location parameters fall back to defaults (and
// are reported through warn); malformed flags are errors.
func (f *queryFlags) build(cmd *cobra.Command, warn func(error)) (query.Query, error) {
	path, values, err := query.ParseLocation(f.location)
	if err != nil {
		return query.Query{}, errInvalidFlag("--location", f.location, err.Error())
	}
	if path != query.ListPath {
		return query.Query{}, errInvalidFlag("--location", f.location, "not a "+query.ListPath+" location")
	}
	q, derr := query.DecodeStrict(values)
	if derr != nil && warn != nil {
		warn(derr)
	}

	changed := cmd.Flags().Changed
	if changed("q") {
		q.Text = f.text
	}
	if changed("status") {
		st := query.Status(strings.TrimSpace(f.status))
		if !st.Valid() {
			return query.Query{}, errInvalidFlag("--status", f.status, "must be active, on_leave or inactive")
		}
		q.Status = st
	}
	if changed("department") {
		if f.department <= 0 {
			q = q.WithoutDepartment()
		} else {
			q = q.WithDepartment(f.department)
		}
	}
	if changed("sort") {
		k := query.SortKey(strings.TrimSpace(f.sort))
		if !k.Valid() {
			return query.Query{}, errInvalidFlag("--sort", f.sort, "unknown sort key")
		}
		q.Sort = k
	}
	if changed("order") {
		d := query.SortDir(strings.ToLower(strings.TrimSpace(f.order)))
		if !d.Valid() {
			return query.Query{}, errInvalidFlag("--order", f.order, "must be asc or desc")
		}
		q.Order = d
	}
	if changed("page") {
		if f.page < 1 {
			return query.Query{}, errInvalidFlag("--page", strconv.Itoa(f.page), "must be >= 1")
		}
		q.Page = f.page
	}
	if changed("page-size") {
		if f.pageSize < 1 {
			return query.Query{}, errInvalidFlag("--page-size", strconv.Itoa(f.pageSize), "must be >= 1")
		}
		q.PageSize = f.pageSize
	}
	return q.Normalize(), nil
}

func newEmployeesListCmd(app *App) *cobra.Command {
	var qf queryFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List one page of employees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, app, false)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			q, err := qf.build(cmd, func(err error) { s.log.Warn().Err(err).Msg("location parameters ignored") })
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx := commandContext(cmd)
			page, err := s.client.ListEmployees(ctx, q)
			if err != nil {
				return writeErr(cmd, describe("list employees", err))
			}
			departments, err := s.client.ListDepartments(ctx)
			if err != nil {
				s.log.Warn().Err(err).Msg("departments unavailable")
				departments = nil
			}

			totalPages := query.TotalPages(page.Total, q.PageSize)
			var hints []string
			if q.Page < totalPages {
				next := q
				next.Page++
				hints = append(hints, "roster employees list --location '"+query.Location(next)+"'")
			}
			return writeOut(cmd, app, envelope{
				Data: newEmployeeTable(page.Items, departments),
				Meta: map[string]any{
					"location":   query.Location(q),
					"total":      page.Total,
					"page":       q.Page,
					"pageSize":   q.PageSize,
					"totalPages": totalPages,
				},
				Hints: hints,
			})
		},
	}

	qf.register(cmd, true)
	return cmd
}

func newEmployeesGetCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseEmployeeID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := openSession(cmd, app, false)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			e, err := s.client.GetEmployee(commandContext(cmd), id)
			if err != nil {
				return writeErr(cmd, describe("get employee", err))
			}
			if app.Format == "table" {
				departments, _ := s.client.ListDepartments(commandContext(cmd))
				return writeOut(cmd, app, envelope{Data: newEmployeeTable([]model.Employee{e}, departments)})
			}
			return writeOut(cmd, app, envelope{
				Data: e,
				Meta: map[string]any{"location": "/employees/" + strconv.Itoa(e.ID)},
			})
		},
	}
	return cmd
}

// employeeFlags are the editable fields shared by create and update.
type employeeFlags struct {
	first      string
	last       string
	email      string
	department int
	title      string
	status     string
	salary     float64
	hireDate   string
	manager    int
	avatarURL  string
	notes      string
}

func (f *employeeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.first, "first", "", "First name")
	cmd.Flags().StringVar(&f.last, "last", "", "Last name")
	cmd.Flags().StringVar(&f.email, "email", "", "Email address")
	cmd.Flags().IntVar(&f.department, "department", 0, "Department id")
	cmd.Flags().StringVar(&f.title, "title", "", "Job title")
	cmd.Flags().StringVar(&f.status, "status", string(model.StatusActive), "Status (active|on_leave|inactive)")
	cmd.Flags().Float64Var(&f.salary, "salary", 0, "Salary")
	cmd.Flags().StringVar(&f.hireDate, "hire-date", "", "Hire date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&f.manager, "manager", 0, "Manager's employee id (0 for none)")
	cmd.Flags().StringVar(&f.avatarURL, "avatar-url", "", "Avatar image URL")
	cmd.Flags().StringVar(&f.notes, "notes", "", "Notes (markdown)")
}

// apply copies the flags the user set onto in.
func (f *employeeFlags) apply(cmd *cobra.Command, in model.EmployeeInput) (model.EmployeeInput, error) {
	changed := cmd.Flags().Changed
	if changed("first") {
		in.FirstName = strings.TrimSpace(f.first)
	}
	if changed("last") {
		in.LastName = strings.TrimSpace(f.last)
	}
	if changed("email") {
		in.Email = strings.TrimSpace(f.email)
	}
	if changed("department") {
		in.DepartmentID = f.department
	}
	if changed("title") {
		in.Title = strings.TrimSpace(f.title)
	}
	if changed("status") {
		in.Status = model.EmployeeStatus(strings.TrimSpace(f.status))
	}
	if changed("salary") {
		in.Salary = f.salary
	}
	if changed("hire-date") {
		in.HireDate = strings.TrimSpace(f.hireDate)
	}
	if changed("manager") {
		if f.manager > 0 {
			id := f.manager
			in.ManagerID = &id
		} else {
			in.ManagerID = nil
		}
	}
	if changed("avatar-url") {
		in.AvatarURL = strings.TrimSpace(f.avatarURL)
	}
	if changed("notes") {
		in.Notes = f.notes
	}
	return in, validateInput(in)
}

func validateInput(in model.EmployeeInput) error {
	if in.FirstName == "" {
		return errInvalidFlag("--first", in.FirstName, "required")
	}
	if in.LastName == "" {
		return errInvalidFlag("--last", in.LastName, "required")
	}
	if !in.Status.Valid() {
		return errInvalidFlag("--status", string(in.Status), "must be active, on_leave or inactive")
	}
	if in.Salary < 0 {
		return errInvalidFlag("--salary", strconv.FormatFloat(in.Salary, 'f', -1, 64), "must not be negative")
	}
	if _, err := time.Parse(time.DateOnly, in.HireDate); err != nil {
		return errInvalidFlag("--hire-date", in.HireDate, "must be YYYY-MM-DD")
	}
	return nil
}

func newEmployeesCreateCmd(app *App) *cobra.Command {
	var ef employeeFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an employee",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			base := model.EmployeeInput{
				Status:   model.StatusActive,
				HireDate: time.Now().Format(time.DateOnly),
			}
			in, err := ef.apply(cmd, base)
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := openSession(cmd, app, false)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			e, err := s.client.CreateEmployee(commandContext(cmd), in)
			if err != nil {
				return writeErr(cmd, describe("create employee", err))
			}
			s.log.Info().Int("id", e.ID).Msg("employee created")
			return writeOut(cmd, app, envelope{
				Data:  e,
				Meta:  map[string]any{"location": query.Location(query.Default())},
				Hints: []string{"roster employees get " + strconv.Itoa(e.ID)},
			})
		},
	}

	ef.register(cmd)
	return cmd
}

func newEmployeesUpdateCmd(app *App) *cobra.Command {
	var ef employeeFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an employee (only the flags you pass change)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseEmployeeID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := openSession(cmd, app, false)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			ctx := commandContext(cmd)
			cur, err := s.client.GetEmployee(ctx, id)
			if err != nil {
				return writeErr(cmd, describe("update employee", err))
			}
			in, err := ef.apply(cmd, cur.Input())
			if err != nil {
				return writeErr(cmd, err)
			}
			e, err := s.client.UpdateEmployee(ctx, id, in)
			if err != nil {
				return writeErr(cmd, describe("update employee", err))
			}
			s.log.Info().Int("id", e.ID).Msg("employee updated")
			return writeOut(cmd, app, envelope{
				Data: e,
				Meta: map[string]any{"location": query.Location(query.Default())},
			})
		},
	}

	ef.register(cmd)
	return cmd
}

func newEmployeesDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseEmployeeID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if !yes {
				return writeErr(cmd, fmt.Errorf("refusing to delete employee #%d without --yes", id))
			}
			s, err := openSession(cmd, app, false)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			ctx := commandContext(cmd)
			e, err := s.client.GetEmployee(ctx, id)
			if err != nil {
				return writeErr(cmd, describe("delete employee", err))
			}
			if err := s.client.DeleteEmployee(ctx, id); err != nil {
				return writeErr(cmd, describe("delete employee", err))
			}
			s.log.Info().Int("id", id).Msg("employee deleted")
			return writeOut(cmd, app, envelope{
				Data: mapTable{
					{"id", strconv.Itoa(id)},
					{"message", "Deleted " + e.FullName()},
				},
			})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the deletion")
	return cmd
}

func newEmployeesExportCmd(app *App) *cobra.Command {
	var qf queryFlags
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every employee matching a list query to an xlsx workbook",
		Example: strings.TrimSpace(`
roster employees export -o everyone.xlsx
roster employees export --location '/employees?status=on_leave&sort=hireDate' -o on-leave.xlsx
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := strings.TrimSpace(out)
			if path == "" {
				return writeErr(cmd, errors.New("missing -o/--output"))
			}
			s, err := openSession(cmd, app, false)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			q, err := qf.build(cmd, func(err error) { s.log.Warn().Err(err).Msg("location parameters ignored") })
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx := commandContext(cmd)
			departments, err := s.client.ListDepartments(ctx)
			if err != nil {
				s.log.Warn().Err(err).Msg("departments unavailable")
				departments = nil
			}
			employees, err := export.Collect(ctx, s.client, q)
			if err != nil {
				return writeErr(cmd, describe("export", err))
			}
			f, err := export.Build(employees, departments, q)
			if err != nil {
				return writeErr(cmd, fmt.Errorf("export: %w", err))
			}
			if err := export.WriteFile(f, path); err != nil {
				return writeErr(cmd, fmt.Errorf("export: %w", err))
			}
			return writeOut(cmd, app, envelope{
				Data: mapTable{
					{"path", path},
					{"employees", strconv.Itoa(len(employees))},
					{"location", query.Location(q)},
				},
			})
		},
	}

	qf.register(cmd, false)
	cmd.Flags().StringVarP(&out, "output", "o", "", "Destination .xlsx file")
	return cmd
}
