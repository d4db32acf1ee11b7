package tui

import (
	"context"
	"strings"

	"roster-cli/internal/store"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

type bookmarkItem struct{ b store.Bookmark }

func (i bookmarkItem) Title() string       { return i.b.Name }
func (i bookmarkItem) Description() string { return i.b.Location }
func (i bookmarkItem) FilterValue() string { return i.b.Name + " " + i.b.Location }

func newBookmarkList() list.Model {
	d := list.NewDefaultDelegate()
	d.Styles.SelectedTitle = d.Styles.SelectedTitle.Foreground(colorAccent).BorderForeground(colorAccent)
	d.Styles.SelectedDesc = d.Styles.SelectedDesc.Foreground(colorChromeFg).BorderForeground(colorAccent)

	l := list.New(nil, d, 0, 0)
	l.Title = "Bookmarks"
	l.Styles.Title = styleTitle()
	l.SetShowHelp(false)
	l.SetStatusBarItemName("bookmark", "bookmarks")
	l.DisableQuitKeybindings()
	return l
}

func (m appModel) loadBookmarks() tea.Cmd {
	b := m.bookmarks
	if b == nil {
		return nil
	}
	return func() tea.Msg {
		items, err := b.List(context.Background())
		return bookmarksLoadedMsg{bookmarks: items, err: err}
	}
}

func (m appModel) saveBookmark(name, location string) tea.Cmd {
	b := m.bookmarks
	return func() tea.Msg {
		bm, err := b.Add(context.Background(), name, location)
		return bookmarkSavedMsg{bookmark: bm, err: err}
	}
}

func (m appModel) removeBookmark(name string) tea.Cmd {
	b := m.bookmarks
	return func() tea.Msg {
		return bookmarkRemovedMsg{name: name, err: b.Remove(context.Background(), name)}
	}
}

func (m appModel) setBookmarks(bookmarks []store.Bookmark) (appModel, tea.Cmd) {
	items := make([]list.Item, 0, len(bookmarks))
	for _, b := range bookmarks {
		items = append(items, bookmarkItem{b: b})
	}
	cmd := m.bookmarkList.SetItems(items)
	return m, cmd
}

// suggestBookmarkName proposes a name for the current location.
func (m appModel) suggestBookmarkName() string {
	switch m.view {
	case viewDashboard:
		return "dashboard"
	case viewDetail:
		if m.detail != nil {
			return strings.ToLower(m.detail.FirstName + "-" + m.detail.LastName)
		}
	}
	q := m.ctrl.Query()
	parts := []string{}
	if q.Text != "" {
		parts = append(parts, q.Text)
	}
	if q.Status != "" {
		parts = append(parts, string(q.Status))
	}
	if q.HasDepartment {
		parts = append(parts, strings.ToLower(m.ctrl.DepartmentName(q.DepartmentID)))
	}
	if len(parts) == 0 {
		return "employees"
	}
	return strings.Join(parts, "-")
}

func (m appModel) renderBookmarks() string {
	if m.bookmarks == nil {
		return styleMuted().Render("Bookmarks are unavailable (no state directory).")
	}
	if m.bookmarksErr != "" {
		return styleError().Render(m.bookmarksErr)
	}
	if len(m.bookmarkList.Items()) == 0 {
		return styleTitle().Render("Bookmarks") + "\n\n" + styleMuted().Render("No bookmarks yet. Press B on any page to save one.")
	}
	return m.bookmarkList.View()
}
