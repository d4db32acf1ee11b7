package cli

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"roster-cli/internal/webtui"

	"github.com/spf13/cobra"
)

func newWebTUICmd(app *App) *cobra.Command {
	var addr string
	var location string

	cmd := &cobra.Command{
		Use:   "webtui",
		Short: "Run the TUI in your browser (PTY + WebSocket, experimental)",
		Long: strings.TrimSpace(`
Run the TUI over the web via a server-side PTY and a browser terminal emulator.

Notes:
- Experimental demo mode (no auth).
- Each browser tab starts a TUI subprocess on the server with the same global flags.
`),
		Example: strings.TrimSpace(`
roster webtui --addr 127.0.0.1:3334
roster --api-url http://127.0.0.1:3000/api webtui --location '/employees?status=active'
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, app, false)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			srv, err := webtui.NewServer(webtui.ServerConfig{
				Addr:   strings.TrimSpace(addr),
				Args:   forwardedArgs(app, location),
				Logger: s.log,
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			listenAddr := srv.Addr()

			_ = writeOut(cmd, app, envelope{
				Data: mapTable{
					{"addr", listenAddr},
					{"api", s.client.BaseURL()},
					{"startedAt", time.Now().UTC().Format(time.RFC3339Nano)},
				},
				Hints: []string{"open http://" + hostForURL(listenAddr)},
			})
			fmt.Fprintf(cmd.ErrOrStderr(), "roster webtui running at http://%s\n", hostForURL(listenAddr))

			hs := &http.Server{Addr: listenAddr, Handler: srv.Handler(), ReadHeaderTimeout: 10 * time.Second}
			if err := serve(commandContext(cmd), hs, s.log); err != nil {
				return writeErr(cmd, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:3334", "Bind address (host:port or :port)")
	cmd.Flags().StringVar(&location, "location", "", "Location each session starts at")
	return cmd
}

// forwardedArgs are the child TUI's arguments: every global setting the user passed,
// plus the start location.
func forwardedArgs(app *App, location string) []string {
	var out []string
	add := func(flag, v string) {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, flag, v)
		}
	}
	add("--config", app.ConfigPath)
	add("--env-file", app.EnvFile)
	add("--state-dir", app.StateDir)
	add("--api-url", app.APIURL)
	add("--api-timeout", app.APITimeout)
	add("--log-file", app.LogFile)
	add("--log-level", app.LogLevel)
	add("--theme", app.Theme)
	add("--location", location)
	return out
}
