package cli

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"roster-cli/internal/fixture"

	"github.com/spf13/cobra"
)

func newDemoServerCmd(app *App) *cobra.Command {
	var addr string
	var latency time.Duration
	var seedCount int

	cmd := &cobra.Command{
		Use:   "demo-server",
		Short: "Serve an in-memory employee API with seeded data",
		Long: strings.TrimSpace(`
Serve a json-server compatible employee API backed by memory.

Data is seeded deterministically and lost on exit. --latency delays every response,
which makes loading states and out-of-order responses easy to see in the TUI.
`),
		Example: strings.TrimSpace(`
roster demo-server --addr 127.0.0.1:3000 --latency 300ms
roster --api-url http://127.0.0.1:3000/api
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if seedCount < 0 {
				return writeErr(cmd, errInvalidFlag("--seed-count", strconv.Itoa(seedCount), "must not be negative"))
			}
			listenAddr := strings.TrimSpace(addr)
			if listenAddr == "" {
				return writeErr(cmd, errInvalidFlag("--addr", addr, "required"))
			}
			s, err := openSession(cmd, app, false)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			db := fixture.Seed(seedCount)
			srv := &http.Server{
				Addr:              listenAddr,
				Handler:           fixture.NewHandler(db, fixture.Options{Latency: latency, Logger: s.log}),
				ReadHeaderTimeout: 10 * time.Second,
			}

			apiURL := "http://" + hostForURL(listenAddr) + "/api"
			_ = writeOut(cmd, app, envelope{
				Data: mapTable{
					{"addr", listenAddr},
					{"apiUrl", apiURL},
					{"employees", strconv.Itoa(db.Len())},
					{"latency", latency.String()},
					{"startedAt", time.Now().UTC().Format(time.RFC3339Nano)},
				},
				Hints: []string{"roster --api-url " + apiURL},
			})
			fmt.Fprintf(cmd.ErrOrStderr(), "Demo API running at %s (%d employees)\n", apiURL, db.Len())

			if err := serve(commandContext(cmd), srv, s.log); err != nil {
				return writeErr(cmd, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:3000", "Bind address (host:port or :port)")
	cmd.Flags().DurationVar(&latency, "latency", 0, "Delay added to every response")
	cmd.Flags().IntVar(&seedCount, "seed-count", 25, "Number of seeded employees")
	return cmd
}

// hostForURL turns a bind address into something a client can dial.
func hostForURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "localhost" + addr
	}
	return addr
}
