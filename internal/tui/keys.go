package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Search       key.Binding
	Status       key.Binding
	Department   key.Binding
	Sort         key.Binding
	PrevPage     key.Binding
	NextPage     key.Binding
	SmallerPage  key.Binding
	LargerPage   key.Binding
	Reload       key.Binding
	ClearFilters key.Binding
	Delete       key.Binding
	Open         key.Binding
	Back         key.Binding
	Forward      key.Binding
	Bookmark     key.Binding
	Bookmarks    key.Binding
	Dashboard    key.Binding
	List         key.Binding
	Help         key.Binding
	Close        key.Binding
	Quit         key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Search:       key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Status:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "status")),
		Department:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "department")),
		Sort:         key.NewBinding(key.WithKeys("1", "2", "3", "4", "5"), key.WithHelp("1-5", "sort")),
		PrevPage:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "prev page")),
		NextPage:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next page")),
		SmallerPage:  key.NewBinding(key.WithKeys("["), key.WithHelp("[", "smaller pages")),
		LargerPage:   key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "larger pages")),
		Reload:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		ClearFilters: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear filters")),
		Delete:       key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		Open:         key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Back:         key.NewBinding(key.WithKeys("alt+left", "b"), key.WithHelp("b", "back")),
		Forward:      key.NewBinding(key.WithKeys("alt+right", "f"), key.WithHelp("f", "forward")),
		Bookmark:     key.NewBinding(key.WithKeys("B"), key.WithHelp("B", "bookmark")),
		Bookmarks:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "bookmarks")),
		Dashboard:    key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "dashboard")),
		List:         key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "employees")),
		Help:         key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Close:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// listKeys adapts the key map to help.KeyMap for the employee list.
type listKeys struct{ keyMap }

func (k listKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Status, k.Department, k.Sort, k.NextPage, k.Open, k.Help, k.Quit}
}

func (k listKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Search, k.Status, k.Department, k.ClearFilters},
		{k.Sort, k.PrevPage, k.NextPage, k.SmallerPage, k.LargerPage},
		{k.Open, k.Delete, k.Reload, k.Bookmark},
		{k.Back, k.Forward, k.Bookmarks, k.Dashboard, k.Help, k.Quit},
	}
}

// pageKeys is the help for the detail, dashboard and bookmarks views.
type pageKeys struct{ keyMap }

func (k pageKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Close, k.Back, k.Forward, k.Reload, k.List, k.Quit}
}

func (k pageKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
