package ui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zapdeck/zapdeck/internal/config"
	"github.com/zapdeck/zapdeck/internal/creds"
	"github.com/zapdeck/zapdeck/internal/hub"
	"github.com/zapdeck/zapdeck/internal/prefs"
)

// View represents the current active view.
type View int

const (
	ViewDevices View = iota
	ViewChat
	ViewLogic
)

const (
	// refreshEvery is the UI's snapshot cadence. The engine updates on
	// its own; the UI just re-reads.
	refreshEvery = time.Second
	// slowRefreshEvery spaces out the session-list and assistant-health
	// refetches that back up the push channel.
	slowRefreshEvery = 30 * time.Second
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Hub       *hub.Hub
	Account   creds.Account
	Config    config.Config
	ThemeName string
	PrefsPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	hub       *hub.Hub
	account   creds.Account
	config    config.Config
	prefsPath string

	// UI state
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool

	// Data state
	snapshot    hub.Snapshot
	lastRefresh time.Time

	// Devices state
	sessionCursor int
	addingSession bool
	sessionInput  textinput.Model

	// Chat state
	contactCursor int
	composing     bool
	replyInput    textinput.Model

	// Logic state
	logicCursor int
	logicFiles  []string
	logicError  string

	// Footer notice for command results
	notice   string
	noticeAt time.Time
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Dracula"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	sessionInput := textinput.New()
	sessionInput.Placeholder = "device name (e.g. vendas)"
	sessionInput.CharLimit = 48

	replyInput := textinput.New()
	replyInput.Placeholder = "type a reply"
	replyInput.CharLimit = 512

	return Model{
		ctx:          ctx,
		hub:          opts.Hub,
		account:      opts.Account,
		config:       opts.Config,
		prefsPath:    prefsPath,
		theme:        GetTheme(themeName),
		currentView:  ViewDevices,
		sessionInput: sessionInput,
		replyInput:   replyInput,
	}
}

// Run starts the TUI and blocks until the user quits or the context is
// cancelled.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	program := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		// Shutdown via signal is a clean exit, not a failure.
		return nil
	}
	return err
}

// Messages.
type (
	tickMsg     time.Time
	slowTickMsg time.Time

	// cmdResultMsg reports the outcome of an operator command. Errors
	// land in the footer notice; state is never updated speculatively.
	cmdResultMsg struct {
		action string
		err    error
	}

	logicFilesMsg struct {
		files []string
		err   error
	}
)

func tickCmd() tea.Cmd {
	return tea.Tick(refreshEvery, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func slowTickCmd() tea.Cmd {
	return tea.Tick(slowRefreshEvery, func(t time.Time) tea.Msg { return slowTickMsg(t) })
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), slowTickCmd())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tickMsg:
		m.refreshSnapshot()
		if m.notice != "" && time.Since(m.noticeAt) > 6*time.Second {
			m.notice = ""
		}
		return m, tickCmd()

	case slowTickMsg:
		return m, tea.Batch(m.slowRefreshCmd(), slowTickCmd())

	case cmdResultMsg:
		if msg.err != nil {
			m.setNotice(msg.action + " failed: " + msg.err.Error())
		} else if msg.action != "" {
			if msg.action == "send" {
				m.replyInput.SetValue("")
			}
			m.setNotice(msg.action + " ok")
		}
		m.refreshSnapshot()
		return m, nil

	case logicFilesMsg:
		if msg.err != nil {
			m.logicError = msg.err.Error()
		} else {
			m.logicError = ""
			m.logicFiles = msg.files
			if m.logicCursor >= len(m.logicFiles) {
				m.logicCursor = max(0, len(m.logicFiles)-1)
			}
		}
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

func (m *Model) refreshSnapshot() {
	m.snapshot = m.hub.Snapshot()
	m.lastRefresh = time.Now()
	m.clampCursors()
}

func (m *Model) clampCursors() {
	if n := len(m.snapshot.Sessions); m.sessionCursor >= n {
		m.sessionCursor = max(0, n-1)
	}
	if n := len(m.snapshot.Contacts); m.contactCursor >= n {
		m.contactCursor = max(0, n-1)
	}
}

func (m *Model) setNotice(text string) {
	m.notice = text
	m.noticeAt = time.Now()
}

// slowRefreshCmd re-reads the session list and assistant health in the
// background. Both are best effort; the push channel remains the
// source of truth.
func (m Model) slowRefreshCmd() tea.Cmd {
	ctx, h := m.ctx, m.hub
	return func() tea.Msg {
		h.RefreshSessions(ctx)
		h.CheckAssistant(ctx)
		return cmdResultMsg{}
	}
}

func (m Model) fetchLogicFilesCmd() tea.Cmd {
	ctx, h := m.ctx, m.hub
	return func() tea.Msg {
		files, err := h.ListLogicFiles(ctx)
		return logicFilesMsg{files: files, err: err}
	}
}
