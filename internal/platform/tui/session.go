package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/lanecross/internal/core"
	"github.com/vovakirdan/lanecross/internal/multiplayer"
)

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenSolo
	screenVersus
	screenScores
)

// SessionModel manages the full session flow: menu -> game -> menu.
// It is the top-level model for both local and SSH sessions. While a game
// is on screen the session is listed in the spectator registry.
type SessionModel struct {
	opts      Options
	config    core.RuntimeConfig
	sessionID multiplayer.SessionID
	screen    sessionScreen
	menu      MenuModel
	solo      Model
	versus    VersusModel
	scores    ScoreboardModel
	lastSeed  string // normalized seed of the last game, for the scoreboard
	quitting  bool
}

// NewSessionModel creates a new session model starting at the menu.
func NewSessionModel(opts Options, cfg core.RuntimeConfig) SessionModel {
	return SessionModel{
		opts:      opts,
		config:    cfg,
		sessionID: opts.sessionID(),
		menu:      NewMenuModel(cfg, opts.Preset),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenSolo:
		return m.updateSolo(msg)
	case screenVersus:
		return m.updateVersus(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		if _, ok := msg.(TickMsg); ok {
			return m, nil
		}
		return m.updateMenu(msg)
	}
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}

	switch m.menu.Choice() {
	case ChoiceQuit:
		m.quitting = true
		return m, tea.Quit

	case ChoiceSolo:
		m.applyMenu()
		m.solo = NewModel(m.opts, m.config)
		m.lastSeed = m.solo.Seed()
		m.register(multiplayer.MatchModeSolo, multiplayer.SoloSource{
			Name: m.opts.player(),
			Cell: m.solo.Snapshots(),
		})
		m.screen = screenSolo
		return m, m.solo.Init()

	case ChoiceVersus:
		m.applyMenu()
		m.versus = NewVersusModel(m.opts, m.config)
		m.lastSeed = m.versus.Match().Seed()
		m.register(multiplayer.MatchModeVersus, m.versus.Match())
		m.screen = screenVersus
		return m, m.versus.Init()

	case ChoiceScores:
		m.applyMenu()
		m.scores = NewScoreboardModel(m.opts.Store, m.lastSeed, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenScores
		return m, m.scores.Init()
	}

	return m, cmd
}

// applyMenu keeps the seed and difficulty picked in the menu for the next
// screens and for the next visit to the menu.
func (m *SessionModel) applyMenu() {
	m.opts.Preset = m.menu.Preset()
	m.config = m.menu.Config()
}

func (m SessionModel) updateSolo(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.solo.Update(msg)
	if solo, ok := next.(Model); ok {
		m.solo = solo
	}
	m.lastSeed = m.solo.Seed()

	switch {
	case m.solo.IsQuitting():
		m.unregister()
		m.quitting = true
		return m, tea.Quit
	case m.solo.BackToMenu():
		return m.backToMenu()
	}
	return m, cmd
}

func (m SessionModel) updateVersus(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.versus.Update(msg)
	if versus, ok := next.(VersusModel); ok {
		m.versus = versus
	}

	switch {
	case m.versus.IsQuitting():
		m.unregister()
		m.quitting = true
		return m, tea.Quit
	case m.versus.BackToMenu():
		return m.backToMenu()
	}
	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(TickMsg); ok {
		return m, nil
	}

	next, cmd := m.scores.Update(msg)
	if scores, ok := next.(ScoreboardModel); ok {
		m.scores = scores
	}

	switch {
	case m.scores.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scores.IsGoingBack():
		return m.backToMenu()
	}
	return m, cmd
}

func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.unregister()
	m.screen = screenMenu
	m.menu = NewMenuModel(m.config, m.opts.Preset)
	return m, m.menu.Init()
}

func (m SessionModel) register(mode multiplayer.MatchMode, source multiplayer.FrameSource) {
	if m.opts.Sessions == nil {
		return
	}
	m.opts.Sessions.Register(multiplayer.SessionInfo{
		ID:        m.sessionID,
		Mode:      mode,
		Player:    m.opts.player(),
		StartedAt: time.Now(),
	}, source)
}

func (m SessionModel) unregister() {
	if m.opts.Sessions != nil {
		m.opts.Sessions.Unregister(m.sessionID)
	}
}

// View renders the current screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenSolo:
		return m.solo.View()
	case screenVersus:
		return m.versus.View()
	case screenScores:
		return m.scores.View()
	default:
		return m.menu.View()
	}
}

// ID returns the session ID used in the spectator registry.
func (m SessionModel) ID() multiplayer.SessionID {
	return m.sessionID
}

// Close stops any running match and removes the session from the registry.
func (m SessionModel) Close() {
	if m.screen == screenVersus {
		m.versus.Match().Stop()
	}
	m.unregister()
}

// RunSession runs the menu-driven session in the local terminal.
func RunSession(opts Options, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewSessionModel(opts, cfg),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if sm, ok := final.(SessionModel); ok {
		sm.Close()
	}
	return err
}
