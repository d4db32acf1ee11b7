package tui

import (
	"time"

	"roster-cli/internal/dashboard"
	"roster-cli/internal/listquery"
	"roster-cli/internal/model"
	"roster-cli/internal/nav"
	"roster-cli/internal/query"
	"roster-cli/internal/store"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

const defaultNoticeTTL = 4 * time.Second

type Options struct {
	Backend Backend
	// Location is the location to open. Empty means the list with default settings.
	Location string
	// ListLocation is the list behind a non-list start location (restored state).
	ListLocation string
	Bookmarks    *store.Bookmarks
	Sink         listquery.Sink
	Logger       zerolog.Logger
	Debounce     time.Duration
	NoticeTTL    time.Duration
}

type appModel struct {
	backend   Backend
	ctrl      *listquery.Controller
	hist      *nav.History
	dash      *dashboard.Loader
	bookmarks *store.Bookmarks
	log       zerolog.Logger

	width  int
	height int

	view     view
	keys     keyMap
	help     help.Model
	showHelp bool

	table     table.Model
	spinner   spinner.Model
	search    textinput.Model
	searching bool

	detailSeq     int
	detailID      int
	detail        *model.Employee
	detailErr     string
	detailLoading bool

	bookmarkList list.Model
	bookmarksErr string

	modal        modalKind
	confirmFocus confirmModalFocus
	nameInput    textinput.Model

	minibufferText string
	minibufferErr  bool
	minibufferSeq  int
	noticeTTL      time.Duration

	// startCmd is returned once from Init.
	startCmd tea.Cmd
}

func newAppModel(opts Options) appModel {
	m := appModel{
		backend:   opts.Backend,
		bookmarks: opts.Bookmarks,
		log:       opts.Logger,
		keys:      defaultKeyMap(),
		help:      help.New(),
		noticeTTL: opts.NoticeTTL,
		width:     100,
		height:    30,
	}
	if m.noticeTTL <= 0 {
		m.noticeTTL = defaultNoticeTTL
	}

	start := opts.Location
	if start == "" {
		start = query.Location(query.Default())
	}
	r := parseRoute(start)

	// The history always starts with a list entry so list writes have a home.
	listLoc := start
	if r.view != viewList {
		listLoc = opts.ListLocation
	}
	if !isListLocation(listLoc) {
		listLoc = query.Location(query.Default())
	}
	m.hist = nav.New(listLoc)
	if r.view != viewList {
		m.hist.Push(start)
	}

	m.ctrl = listquery.New(opts.Backend, listquery.Options{
		Debounce: opts.Debounce,
		Router:   listRouter{h: m.hist},
		Sink:     opts.Sink,
	})
	m.dash = dashboard.NewLoader(opts.Backend)

	m.spinner = spinner.New(spinner.WithSpinner(spinner.Dot))
	m.spinner.Style = styleMuted()

	m.search = textinput.New()
	m.search.Prompt = "Search: "
	m.search.Placeholder = "name, email or title"
	m.search.CharLimit = 120

	m.nameInput = textinput.New()
	m.nameInput.Prompt = ""
	m.nameInput.CharLimit = 64

	m.table = newEmployeeTable()
	m.bookmarkList = newBookmarkList()
	m.resize()

	var routeCmd tea.Cmd
	m, routeCmd = m.openRoute(r)
	m.startCmd = tea.Batch(m.ctrl.Start(listLoc), routeCmd)
	m.syncList()
	return m
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.startCmd)
}

// close releases in-flight requests once the program has exited.
func (m appModel) close() {
	m.ctrl.Close()
	m.dash.Close()
}

// state is what gets persisted on quit.
func (m appModel) state() *store.State {
	v := m.view
	if v == viewDetail {
		v = viewList
	}
	return &store.State{Version: 1, LastLocation: m.ctrl.Location(), View: v.String()}
}

func (m appModel) selectedEmployee() (model.Employee, bool) {
	items := m.ctrl.View().Items
	i := m.table.Cursor()
	if i < 0 || i >= len(items) {
		return model.Employee{}, false
	}
	return items[i], true
}

// chromeLines is the number of lines the list view spends outside the table.
const chromeLines = 10

func (m *appModel) resize() {
	h := m.height - chromeLines
	if m.showHelp {
		h -= 4
	}
	if h < 3 {
		h = 3
	}
	m.table.SetHeight(h)
	m.table.SetColumns(employeeColumns(m.width, m.ctrl.Query()))
	m.search.Width = m.width - len(m.search.Prompt) - 4
	m.help.Width = m.width
	m.bookmarkList.SetSize(m.width, m.height-4)
}
