package cli

import (
	"fmt"

	"roster-cli/internal/docs"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

type topicTable []docs.Topic

func (t topicTable) TableHeaders() []string { return []string{"Topic", "Title"} }

func (t topicTable) TableRows() [][]string {
	rows := make([][]string, 0, len(t))
	for _, tp := range t {
		rows = append(rows, []string{tp.Name, tp.Title})
	}
	return rows
}

func newDocsCmd(app *App) *cobra.Command {
	var raw bool
	var render bool

	cmd := &cobra.Command{
		Use:   "docs [topic]",
		Short: "Show documentation topics (locations, keys, config, bookmarks)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return writeOut(cmd, app, envelope{Data: topicTable(docs.Topics())})
			}

			tp, ok := docs.Get(args[0])
			if !ok {
				return writeErr(cmd, fmt.Errorf("unknown docs topic: %q (run `roster docs` to list topics)", args[0]))
			}

			switch {
			case render:
				// GLAMOUR_STYLE picks the style; unset means auto-detect.
				out, err := glamour.RenderWithEnvironmentConfig(tp.Body)
				if err != nil {
					return writeErr(cmd, err)
				}
				_, err = fmt.Fprint(cmd.OutOrStdout(), out)
				return err
			case raw:
				_, err := fmt.Fprint(cmd.OutOrStdout(), tp.Body)
				return err
			}
			return writeOut(cmd, app, envelope{Data: map[string]any{"topic": tp.Name, "title": tp.Title, "markdown": tp.Body}})
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print raw markdown (no JSON envelope)")
	cmd.Flags().BoolVar(&render, "render", false, "Print markdown rendered for the terminal")

	return cmd
}
