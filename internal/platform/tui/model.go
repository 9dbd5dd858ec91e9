package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/lanecross/internal/core"
	"github.com/vovakirdan/lanecross/internal/crossing"
	"github.com/vovakirdan/lanecross/internal/multiplayer"
)

// Model is the Bubble Tea model for a solo run.
type Model struct {
	game       *crossing.Game
	screen     *core.Screen
	opts       Options
	config     core.RuntimeConfig
	keys       *KeyMapper
	cell       *multiplayer.SnapshotCell
	inputFrame core.InputFrame
	gameState  core.GameState
	standalone bool // quit instead of returning to a menu
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewModel creates a solo model and starts the run with cfg.Seed.
func NewModel(opts Options, cfg core.RuntimeConfig) Model {
	if cfg.TickRate < 1 {
		cfg.TickRate = opts.crossingConfig().Simulation.TickRate
	}

	game := crossing.NewGame(opts.gameOptions())
	game.Reset(cfg)

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:       opts,
		config:     cfg,
		keys:       NewKeyMapper(),
		cell:       &multiplayer.SnapshotCell{},
		inputFrame: core.NewInputFrame(),
		gameState:  game.State(),
	}
	m.cell.Store(game.World().Snapshot())
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input. Moves are queued in arrival order
// and applied on the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.inputFrame.Has(core.ActionBack) && (m.gameState.GameOver || m.gameState.Paused) {
		m.backToMenu = true
		if m.standalone {
			return m, tea.Quit
		}
	}

	return m, nil
}

// handleTick runs one simulation step.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) {
		m.game.Restart()
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.inputFrame.Clear()
		m.cell.Store(m.game.World().Snapshot())
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.cell.Store(m.game.World().Snapshot())

	// Save score on game over (once)
	if m.gameState.GameOver && !m.scoreSaved {
		m.saveScore()
		m.scoreSaved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

func (m Model) saveScore() {
	if m.opts.Store == nil || m.gameState.Score == 0 {
		return
	}
	seed := m.game.World().NormalizedSeed()
	if _, err := m.opts.Store.SaveScore(m.opts.player(), seed, m.gameState.Score); err != nil {
		m.opts.logger().Warn("could not save score", "player", m.opts.player(), "seed", seed, "err", err)
	}
}

// saveScreenshot writes the current screen to ~/.lanecross/screenshots.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".lanecross", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	name := fmt.Sprintf("%s_%s_%s.txt", m.game.ID(), m.game.World().NormalizedSeed(), time.Now().Format("20060102_150405"))
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	m.screen.DrawTextCentered(m.screen.Height()-1, "Move: WASD/Arrows  |  P: Pause  |  R: Restart  |  Q: Quit")
	return RenderScreen(m.screen)
}

// Snapshots exposes the run to spectators.
func (m Model) Snapshots() *multiplayer.SnapshotCell {
	return m.cell
}

// Seed returns the normalized seed of the current run.
func (m Model) Seed() string {
	return m.game.World().NormalizedSeed()
}

// State returns the last game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run plays a single solo run in the terminal.
func Run(opts Options, cfg core.RuntimeConfig) error {
	model := NewModel(opts, cfg)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
