package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/lanecross/internal/core"
	"github.com/vovakirdan/lanecross/internal/crossing"
	"github.com/vovakirdan/lanecross/internal/multiplayer"
)

// versusRedrawRate is how often the split screen is repainted. The worlds
// themselves tick on their own goroutines.
const versusRedrawRate = 30

const boardGap = 4

// VersusModel shows two worlds side by side: player 1 on W/A/S/D, player 2
// on the arrow keys.
type VersusModel struct {
	match      *multiplayer.VersusMatch
	screen     *core.Screen
	opts       Options
	config     core.RuntimeConfig
	keys       *KeyMapper
	standalone bool
	quitting   bool
	backToMenu bool
}

// NewVersusModel creates the match from cfg.Seed. The match starts in Init.
func NewVersusModel(opts Options, cfg core.RuntimeConfig) VersusModel {
	match := multiplayer.NewVersusMatch(opts.versusConfig(cfg.Seed))
	match.SetLogger(opts.logger())
	if opts.Store != nil {
		match.SetResultSaver(opts.Store)
	}

	return VersusModel{
		match:  match,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:   opts,
		config: cfg,
		keys:   NewKeyMapper(),
	}
}

// Init starts both runners and the redraw loop.
func (m VersusModel) Init() tea.Cmd {
	m.match.Start(m.opts.context())
	return tickCmd(versusRedrawRate)
}

// Update handles messages.
func (m VersusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if m.quitting || m.backToMenu {
			return m, nil
		}
		return m, tickCmd(versusRedrawRate)
	}
	return m, nil
}

func (m VersusModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if p, a, ok := m.keys.MapVersusKey(msg); ok {
		m.match.Push(p, a)
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	switch {
	case isQuit:
		m.match.Stop()
		m.quitting = true
		return m, tea.Quit

	case action == core.ActionBack:
		m.match.Stop()
		m.backToMenu = true
		if m.standalone {
			return m, tea.Quit
		}

	case action == core.ActionRestart:
		m.match.Restart(m.opts.context())
	}
	return m, nil
}

// View renders both boards.
func (m VersusModel) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	s1, s2 := m.match.Snapshots()

	bw, bh := crossing.BoardSize(s1.GridWidth, s1.GridHeight)
	x0 := max((m.screen.Width()-2*bw-boardGap)/2, 0)
	y0 := max((m.screen.Height()-bh-1)/2, 0) + 1

	m.screen.DrawTextColored(x0, y0-1, crossing.HUDLine("P1", s1), core.ColorBrightCyan)
	crossing.DrawBoard(m.screen, s1, x0, y0, core.ColorCyan)

	x1 := x0 + bw + boardGap
	m.screen.DrawTextColored(x1, y0-1, crossing.HUDLine("P2", s2), core.ColorBrightYellow)
	crossing.DrawBoard(m.screen, s2, x1, y0, core.ColorYellow)

	if outcome := m.match.Outcome(); outcome != multiplayer.OutcomePending {
		crossing.DrawMessage(m.screen, outcome.String(), "R: rematch on the same seed  |  Esc: menu")
	}

	m.screen.DrawTextCentered(m.screen.Height()-1, "P1: WASD  |  P2: Arrows  |  R: Restart  |  Esc: Menu  |  Q: Quit")
	return RenderScreen(m.screen)
}

// Match returns the running match.
func (m VersusModel) Match() *multiplayer.VersusMatch {
	return m.match
}

// IsQuitting returns true if user requested to quit entirely.
func (m VersusModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m VersusModel) BackToMenu() bool {
	return m.backToMenu
}

// RunVersus plays a local two-player match in the terminal.
func RunVersus(opts Options, cfg core.RuntimeConfig) error {
	model := NewVersusModel(opts, cfg)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	model.match.Stop()
	return err
}
