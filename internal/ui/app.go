package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hermadata/console/internal/auth"
	"github.com/hermadata/console/internal/hermadata"
	"github.com/hermadata/console/internal/prefs"
	"github.com/hermadata/console/internal/querycache"
)

// View represents the current active view.
type View int

const (
	ViewLogin View = iota
	ViewDashboard
	ViewAnimals
	ViewAnimalDetail
	ViewAdopters
	ViewUsers
)

const uiTick = time.Second

// Options configures the UI.
type Options struct {
	Context   context.Context
	Client    *hermadata.Client
	Cache     *querycache.Cache
	Gate      *auth.Gate
	ThemeName string
	PageSize  int
	PrefsPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx    context.Context
	client *hermadata.Client
	cache  *querycache.Cache
	gate   *auth.Gate

	keys      keyMap
	theme     Theme
	prefsPath string
	pageSize  int

	currentView View
	width       int
	height      int
	ready       bool
	loggedIn    bool

	status    string
	statusErr bool

	login    loginState
	animals  animalsState
	detail   detailState
	adopters adoptersState
	users    usersState

	unsubStats func()
}

// New creates the root model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	m := Model{
		ctx:         ctx,
		client:      opts.Client,
		cache:       opts.Cache,
		gate:        opts.Gate,
		keys:        defaultKeyMap(),
		theme:       GetTheme(opts.ThemeName),
		prefsPath:   prefsPath,
		pageSize:    pageSize,
		currentView: ViewLogin,
	}
	m.login = newLoginState()
	m.animals = newAnimalsState(pageSize)
	m.detail = newDetailState()
	m.adopters = newAdoptersState(pageSize)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tickCmd(),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.detail.initViewport(msg.Width, msg.Height)
		}
		m.ready = true
		m.detail.resizeViewport(msg.Width, msg.Height)
		m.updateDetailViewport()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case loginResultMsg:
		return m.handleLoginResult(msg)

	case dataMsg:
		if msg.err != nil && msg.view == m.currentView {
			m.setError(errorLine(msg.err))
		}
		m.updateDetailViewport()
		return m, nil

	case actionMsg:
		if msg.err != nil {
			m.setError(errorLine(msg.err))
		} else {
			m.setStatus(msg.note)
		}
		m.updateDetailViewport()
		return m, nil

	case exportDoneMsg:
		if msg.err != nil {
			m.setError(errorLine(msg.err))
		} else {
			m.setStatus("exported to " + msg.path)
		}
		return m, nil
	}
	return m, nil
}

// handleTick syncs session state with the gate and schedules the next
// frame. A token rejected anywhere in the background shows up here as
// authenticated flipping to false.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	authed := m.gate.Authenticated()
	if m.loggedIn && !authed {
		m = m.resetToLogin("session expired, log in again")
	}
	m.loggedIn = authed
	m.updateDetailViewport()
	return m, tickCmd()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Ctrl+C always quits, even mid-input.
	if msg.String() == "ctrl+c" {
		m.cancelSubscriptions()
		return m, tea.Quit
	}

	if m.currentView == ViewLogin {
		return m.handleLoginKey(msg)
	}

	if !m.typing() {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.cancelSubscriptions()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Logout):
			m.gate.Logout()
			return m.resetToLogin("logged out"), nil
		case key.Matches(msg, m.keys.CycleTheme):
			m.theme = NextTheme(m.theme.Name)
			_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name, PageSize: m.pageSize})
			return m, nil
		case key.Matches(msg, m.keys.ViewDashboard):
			return m.switchView(ViewDashboard)
		case key.Matches(msg, m.keys.ViewAnimals):
			return m.switchView(ViewAnimals)
		case key.Matches(msg, m.keys.ViewAdopters):
			return m.switchView(ViewAdopters)
		case key.Matches(msg, m.keys.ViewUsers):
			if m.gate.Allows(auth.SuperuserOnly) {
				return m.switchView(ViewUsers)
			}
			m.setError("user administration requires superuser")
			return m, nil
		case key.Matches(msg, m.keys.NextTab):
			return m.switchView(m.nextView(1))
		case key.Matches(msg, m.keys.PrevTab):
			return m.switchView(m.nextView(-1))
		}
	}

	switch m.currentView {
	case ViewDashboard:
		return m.handleDashboardKey(msg)
	case ViewAnimals:
		return m.handleAnimalsKey(msg)
	case ViewAnimalDetail:
		return m.handleDetailKey(msg)
	case ViewAdopters:
		return m.handleAdoptersKey(msg)
	case ViewUsers:
		return m.handleUsersKey(msg)
	}
	return m, nil
}

// typing reports whether a text input currently owns the keyboard.
func (m Model) typing() bool {
	switch m.currentView {
	case ViewAnimals:
		return m.animals.filterEditing
	case ViewAnimalDetail:
		return m.detail.editingChip
	case ViewAdopters:
		return m.adopters.adding
	}
	return false
}

// switchView moves to a view, re-pins its cache keys and kicks off its
// reads. Stale cached data renders immediately; the fetch revalidates.
func (m Model) switchView(v View) (Model, tea.Cmd) {
	m.cancelSubscriptions()
	m.currentView = v
	m.status, m.statusErr = "", false

	switch v {
	case ViewDashboard:
		m.unsubStats = m.cache.Subscribe(hermadata.StatsKey(), func(querycache.Entry) {})
		return m, m.fetchStatsCmd()
	case ViewAnimals:
		m.animals.unsub = m.cache.Subscribe(hermadata.AnimalSearchKey(m.animals.query), func(querycache.Entry) {})
		return m, m.searchAnimalsCmd()
	case ViewAnimalDetail:
		m.detail.unsub = m.cache.Subscribe(hermadata.AnimalKey(m.detail.id), func(querycache.Entry) {})
		m.detail.unsubDocs = m.cache.Subscribe(hermadata.AnimalDocumentsKey(m.detail.id), func(querycache.Entry) {})
		m.detail.unsubRaces = m.cache.Subscribe(hermadata.RacesKey(), func(querycache.Entry) {})
		return m, m.fetchAnimalDetailCmd()
	case ViewAdopters:
		m.adopters.unsub = m.cache.Subscribe(hermadata.AdopterSearchKey(m.adopters.query), func(querycache.Entry) {})
		return m, m.searchAdoptersCmd()
	case ViewUsers:
		m.users.unsub = m.cache.Subscribe(hermadata.UsersKey(), func(querycache.Entry) {})
		return m, m.fetchUsersCmd()
	}
	return m, nil
}

// nextView cycles the tab order; the users tab is skipped for standard
// operators.
func (m Model) nextView(dir int) View {
	order := []View{ViewDashboard, ViewAnimals, ViewAdopters}
	if m.gate.Allows(auth.SuperuserOnly) {
		order = append(order, ViewUsers)
	}
	current := 0
	for i, v := range order {
		if v == m.currentView {
			current = i
			break
		}
	}
	next := (current + dir + len(order)) % len(order)
	return order[next]
}

func (m Model) resetToLogin(note string) Model {
	m.cancelSubscriptions()
	m.currentView = ViewLogin
	m.login = newLoginState()
	m.setStatus(note)
	return m
}

func (m *Model) cancelSubscriptions() {
	for _, cancel := range []*func(){
		&m.unsubStats,
		&m.animals.unsub,
		&m.detail.unsub,
		&m.detail.unsubDocs,
		&m.detail.unsubRaces,
		&m.adopters.unsub,
		&m.users.unsub,
	} {
		if *cancel != nil {
			(*cancel)()
			*cancel = nil
		}
	}
}

func (m *Model) setStatus(note string) {
	m.status = note
	m.statusErr = false
}

func (m *Model) setError(line string) {
	m.status = line
	m.statusErr = true
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}
	var content string
	switch m.currentView {
	case ViewLogin:
		content = m.renderLogin()
	case ViewDashboard:
		content = m.renderDashboard()
	case ViewAnimals:
		content = m.renderAnimals()
	case ViewAnimalDetail:
		content = m.renderDetail()
	case ViewAdopters:
		content = m.renderAdopters()
	case ViewUsers:
		content = m.renderUsers()
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		content,
		m.renderFooter(),
	)
}

// Messages

type tickMsg time.Time

type loginResultMsg struct{ err error }

// dataMsg reports a completed read for a view; the data itself lives in
// the cache and is re-read at render time.
type dataMsg struct {
	view View
	err  error
}

type actionMsg struct {
	note string
	err  error
}

type exportDoneMsg struct {
	path string
	err  error
}

// Commands

func tickCmd() tea.Cmd {
	return tea.Tick(uiTick, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Run starts the Bubble Tea program and blocks until quit.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
