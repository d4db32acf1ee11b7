package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"roster-cli/internal/api"
	"roster-cli/internal/config"
	"roster-cli/internal/format"
	"roster-cli/internal/logging"
	"roster-cli/internal/store"
	"roster-cli/internal/tui"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type App struct {
	ConfigPath string
	EnvFile    string
	StateDir   string
	APIURL     string
	APITimeout string
	LogFile    string
	LogLevel   string
	Theme      string
	Location   string
	PrettyJSON bool
	Format     string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:           "roster",
		Short:         "Employee directory CLI + TUI",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI (restores the last list you looked at)
  roster

  # Open the TUI on a specific list
  roster '/employees?status=active&sort=salary&order=desc'

  # Scriptable commands
  roster employees list --status on_leave --format table
  roster employees export --location '/employees?departmentId=2' -o engineering.xlsx

  # Local API for trying things out
  roster demo-server --addr 127.0.0.1:3000
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				if err := runTUI(cmd, app, app.Location); err != nil {
					return writeErr(cmd, err)
				}
				return nil
			}
			return cmd.Help()
		},
	}

	f := cmd.PersistentFlags()
	f.StringVar(&app.ConfigPath, "config", "", "Path to config.yaml (default: <state dir>/config.yaml)")
	f.StringVar(&app.EnvFile, "env-file", "", "Path to a .env file (default: ./.env when present)")
	f.StringVar(&app.StateDir, "state-dir", "", "Directory for state, bookmarks and logs (env ROSTER_STATE_DIR)")
	f.StringVar(&app.APIURL, "api-url", "", "Employee API base URL (env ROSTER_API_URL)")
	f.StringVar(&app.APITimeout, "api-timeout", "", "HTTP timeout, e.g. 5s; 0 means none (env ROSTER_API_TIMEOUT)")
	f.StringVar(&app.LogFile, "log-file", "", "Log file (env ROSTER_LOG_FILE)")
	f.StringVar(&app.LogLevel, "log-level", "", "Log level: debug|info|warn|error (env ROSTER_LOG_LEVEL)")
	f.StringVar(&app.Theme, "theme", "", "TUI theme: auto|dark|light (env ROSTER_TUI_THEME)")
	f.BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	f.StringVar(&app.Format, "format", "json", "Output format (json|table)")
	cmd.Flags().StringVar(&app.Location, "location", "", "Start the TUI at this location (/employees?..., /employees/{id}, /dashboard, /bookmarks)")

	cmd.AddCommand(newEmployeesCmd(app))
	cmd.AddCommand(newDepartmentsCmd(app))
	cmd.AddCommand(newDashboardCmd(app))
	cmd.AddCommand(newBookmarksCmd(app))
	cmd.AddCommand(newDemoServerCmd(app))
	cmd.AddCommand(newWebTUICmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

// session is everything a command needs to talk to the API.
type session struct {
	cfg    *config.Config
	log    zerolog.Logger
	client *api.Client
	store  store.Store
	closer io.Closer
}

func (s *session) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// openSession resolves config and builds the logger and API client. Interactive
// sessions log only to the file; commands also log to stderr. The logger, tagged with
// the command path, is stored in cmd's context so API calls made with it log there.
func openSession(cmd *cobra.Command, app *App, interactive bool) (*session, error) {
	cfg, err := config.Load(app.overrides())
	if err != nil {
		return nil, err
	}
	log, closer, err := logging.Init(logging.Options{
		File:    cfg.Log.File,
		Level:   cfg.LogLevel(),
		Console: !interactive,
	})
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	client, err := api.New(cfg.API.URL, api.WithTimeout(cfg.API.Timeout), api.WithLogger(log))
	if err != nil {
		_ = closer.Close()
		return nil, err
	}
	st, err := store.Open(cfg.StateDir)
	if err != nil {
		_ = closer.Close()
		return nil, err
	}
	cmd.SetContext(logging.WithFields(commandContext(cmd), log, map[string]any{
		"command": cmd.CommandPath(),
	}))
	return &session{cfg: cfg, log: log, client: client, store: st, closer: closer}, nil
}

func (app *App) overrides() config.Overrides {
	return config.Overrides{
		ConfigPath: app.ConfigPath,
		EnvFile:    app.EnvFile,
		StateDir:   app.StateDir,
		APIURL:     app.APIURL,
		APITimeout: app.APITimeout,
		LogFile:    app.LogFile,
		LogLevel:   app.LogLevel,
		Theme:      app.Theme,
	}
}

func runTUI(cmd *cobra.Command, app *App, location string) error {
	s, err := openSession(cmd, app, true)
	if err != nil {
		return err
	}
	defer s.Close()
	ctx := commandContext(cmd)

	// Bookmarks are optional in the TUI; it reports them as unavailable.
	bm, err := s.store.OpenBookmarks(ctx)
	if err != nil {
		logging.From(ctx).Warn().Err(err).Msg("open bookmarks")
		bm = nil
	} else {
		defer bm.Close()
	}

	logging.From(ctx).Info().Str("api", s.client.BaseURL()).Str("location", location).Msg("tui start")
	return tui.Run(tui.Options{
		Backend:   s.client,
		Location:  strings.TrimSpace(location),
		Bookmarks: bm,
		Sink:      logging.NewEventSink(s.log),
		Logger:    s.log,
	}, s.cfg.TUI.Theme, s.store)
}

// envelope is the JSON shape of every command's output.
type envelope struct {
	Data  any            `json:"data"`
	Meta  map[string]any `json:"meta,omitempty"`
	Hints []string       `json:"_hints,omitempty"`
}

// writeOut prints data wrapped in the envelope, or data alone as a table when
// --format table is selected.
func writeOut(cmd *cobra.Command, app *App, out envelope) error {
	var err error
	if strings.TrimSpace(app.Format) == "table" {
		err = format.Write(cmd.OutOrStdout(), out.Data, "table", false)
	} else {
		err = format.Write(cmd.OutOrStdout(), out, strings.TrimSpace(app.Format), app.PrettyJSON)
	}
	if err != nil {
		return writeErr(cmd, err)
	}
	return nil
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
