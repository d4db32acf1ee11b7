package cli

import (
	"roster-cli/internal/dashboard"

	"github.com/spf13/cobra"
)

func newDepartmentsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "departments",
		Aliases: []string{"dept"},
		Short:   "Department commands",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List departments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, app, false)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			departments, err := s.client.ListDepartments(commandContext(cmd))
			if err != nil {
				return writeErr(cmd, describe("list departments", err))
			}
			return writeOut(cmd, app, envelope{
				Data: departmentTable(departments),
				Meta: map[string]any{"count": len(departments)},
			})
		},
	})
	return cmd
}

func newDashboardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Headcount, status and salary summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, app, false)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			sum, err := dashboard.Fetch(commandContext(cmd), s.client)
			if err != nil {
				s.log.Warn().Err(err).Msg("dashboard")
				return writeErr(cmd, describe(dashboard.ErrorMessage, err))
			}
			return writeOut(cmd, app, envelope{
				Data:  summaryTable{sum},
				Hints: []string{"roster --location /dashboard"},
			})
		},
	}
}
