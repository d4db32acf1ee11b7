// Package tui is the interactive employee browser.
package tui

import (
	"roster-cli/internal/query"
	"roster-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the TUI. When opts.Location is empty the location saved in st on the last
// quit is restored; on quit the current list location is saved back.
func Run(opts Options, theme string, st store.Store) error {
	applyColorProfilePreference()
	applyThemePreference(theme)
	applyGlyphPreference()

	if opts.Location == "" {
		saved, err := st.LoadState()
		if err != nil {
			opts.Logger.Warn().Err(err).Msg("load state")
		} else {
			opts.Location, opts.ListLocation = restoreLocation(saved)
		}
	}

	m := newAppModel(opts)
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if fm, ok := final.(appModel); ok {
		fm.close()
		if serr := st.SaveState(fm.state()); serr != nil {
			opts.Logger.Warn().Err(serr).Msg("save state")
		}
	}
	return err
}

// restoreLocation turns saved state into a start location plus the list location
// behind it.
func restoreLocation(st *store.State) (loc, listLoc string) {
	if st == nil || st.LastLocation == "" {
		return "", ""
	}
	listLoc = st.LastLocation
	if _, err := query.Canonical(listLoc); err != nil {
		return "", ""
	}
	switch st.View {
	case viewDashboard.String():
		return dashboardPath, listLoc
	case viewBookmarks.String():
		return bookmarksPath, listLoc
	}
	return listLoc, listLoc
}
