package cli

import (
	"errors"

	"roster-cli/internal/store"

	"github.com/spf13/cobra"
)

func newBookmarksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "bookmarks",
		Aliases: []string{"bm"},
		Short:   "Saved locations (shared with the TUI)",
	}

	cmd.AddCommand(newBookmarksListCmd(app))
	cmd.AddCommand(newBookmarksAddCmd(app))
	cmd.AddCommand(newBookmarksRemoveCmd(app))
	cmd.AddCommand(newBookmarksOpenCmd(app))

	return cmd
}

// withBookmarks opens the bookmark database for the duration of fn.
func withBookmarks(cmd *cobra.Command, app *App, fn func(s *session, bm *store.Bookmarks) error) error {
	s, err := openSession(cmd, app, false)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer s.Close()

	bm, err := s.store.OpenBookmarks(commandContext(cmd))
	if err != nil {
		return writeErr(cmd, err)
	}
	defer bm.Close()

	if err := fn(s, bm); err != nil {
		return writeErr(cmd, err)
	}
	return nil
}

func newBookmarksListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List bookmarks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBookmarks(cmd, app, func(_ *session, bm *store.Bookmarks) error {
				xs, err := bm.List(commandContext(cmd))
				if err != nil {
					return err
				}
				if xs == nil {
					xs = []store.Bookmark{}
				}
				return writeOut(cmd, app, envelope{Data: bookmarkTable(xs), Meta: map[string]any{"count": len(xs)}})
			})
		},
	}
}

func newBookmarksAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <location>",
		Short: "Save a location under a name (replaces an existing bookmark)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBookmarks(cmd, app, func(_ *session, bm *store.Bookmarks) error {
				b, err := bm.Add(commandContext(cmd), args[0], args[1])
				if err != nil {
					return err
				}
				return writeOut(cmd, app, envelope{
					Data:  bookmarkTable{b},
					Hints: []string{"roster bookmarks open " + b.Name},
				})
			})
		},
	}
}

func newBookmarksRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <name>",
		Aliases: []string{"remove"},
		Short:   "Remove a bookmark",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBookmarks(cmd, app, func(_ *session, bm *store.Bookmarks) error {
				if err := bm.Remove(commandContext(cmd), args[0]); err != nil {
					if errors.Is(err, store.ErrBookmarkNotFound) {
						return errNotFound("bookmark", args[0])
					}
					return err
				}
				return writeOut(cmd, app, envelope{Data: mapTable{{"removed", args[0]}}})
			})
		},
	}
}

func newBookmarksOpenCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "open <name>",
		Short: "Open the TUI at a bookmark",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var location string
			err := withBookmarks(cmd, app, func(_ *session, bm *store.Bookmarks) error {
				b, err := bm.Get(commandContext(cmd), args[0])
				if err != nil {
					if errors.Is(err, store.ErrBookmarkNotFound) {
						return errNotFound("bookmark", args[0])
					}
					return err
				}
				location = b.Location
				return nil
			})
			if err != nil {
				return err
			}
			if err := runTUI(cmd, app, location); err != nil {
				return writeErr(cmd, err)
			}
			return nil
		},
	}
}
