package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/lanecross/internal/config"
	"github.com/vovakirdan/lanecross/internal/core"
	"github.com/vovakirdan/lanecross/internal/crossing"
)

// MenuChoice is what the user picked in the start menu.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoiceSolo
	ChoiceVersus
	ChoiceScores
	ChoiceQuit
)

// Menu rows, top to bottom.
const (
	rowSeed = iota
	rowDifficulty
	rowSolo
	rowVersus
	rowScores
	rowQuit
	menuRows
)

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	menuHintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuModel is the start menu: a seed field, a difficulty picker and the
// mode list.
type MenuModel struct {
	seed      textinput.Model
	cursor    int
	preset    int
	width     int
	height    int
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	choice    MenuChoice
}

// NewMenuModel creates a new menu model. cfg.Seed pre-fills the seed field.
func NewMenuModel(cfg core.RuntimeConfig, preset config.DifficultyPreset) MenuModel {
	ti := textinput.New()
	ti.Placeholder = "random"
	ti.CharLimit = 64
	ti.Width = 2 * crossing.SeedLength
	ti.Prompt = ""
	ti.SetValue(cfg.Seed)
	ti.Focus()

	idx := slices.Index(config.Presets, preset)
	if idx < 0 {
		idx = slices.Index(config.Presets, config.DifficultyNormal)
	}

	return MenuModel{
		seed:      ti,
		cursor:    rowSeed,
		preset:    idx,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	var cmd tea.Cmd
	m.seed, cmd = m.seed.Update(msg)
	return m, cmd
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.choice = ChoiceQuit
		return m, tea.Quit

	case MenuActionUp:
		m.cursor = (m.cursor + menuRows - 1) % menuRows
		return m, m.syncFocus()

	case MenuActionDown:
		m.cursor = (m.cursor + 1) % menuRows
		return m, m.syncFocus()

	case MenuActionLeft:
		if m.cursor == rowDifficulty {
			m.preset = (m.preset + len(config.Presets) - 1) % len(config.Presets)
			return m, nil
		}

	case MenuActionRight:
		if m.cursor == rowDifficulty {
			m.preset = (m.preset + 1) % len(config.Presets)
			return m, nil
		}

	case MenuActionSelect:
		switch m.cursor {
		case rowVersus:
			m.choice = ChoiceVersus
		case rowScores:
			m.choice = ChoiceScores
		case rowQuit:
			m.choice = ChoiceQuit
		default:
			// Enter on the seed field or difficulty starts a solo run.
			m.choice = ChoiceSolo
		}
		return m, tea.Quit
	}

	if m.cursor != rowSeed {
		if msg.String() == "q" {
			m.choice = ChoiceQuit
			return m, tea.Quit
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.seed, cmd = m.seed.Update(msg)
	return m, cmd
}

func (m *MenuModel) syncFocus() tea.Cmd {
	if m.cursor == rowSeed {
		return m.seed.Focus()
	}
	m.seed.Blur()
	return nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.choice != ChoiceNone {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("L A N E   C R O S S I N G"), m.width))
	b.WriteString("\n\n")

	rows := [menuRows]string{
		rowSeed:       "Seed:       " + m.seed.View(),
		rowDifficulty: fmt.Sprintf("Difficulty: < %s >", config.Presets[m.preset]),
		rowSolo:       "Solo",
		rowVersus:     "Versus (same keyboard)",
		rowScores:     "High scores",
		rowQuit:       "Quit",
	}
	for i, row := range rows {
		cursor := "  "
		if i == m.cursor {
			cursor = menuCursorStyle.Render("> ")
		}
		b.WriteString(centerText(cursor+row, m.width))
		b.WriteString("\n")
		if i == rowDifficulty {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(centerText(menuHintStyle.Render("Up/Down: Navigate  |  Left/Right: Difficulty  |  Enter: Select  |  Esc: Quit"), m.width))
	b.WriteString("\n")

	return b.String()
}

// Choice returns what the user picked, or ChoiceNone.
func (m MenuModel) Choice() MenuChoice {
	return m.choice
}

// Seed returns the raw seed text; empty means random.
func (m MenuModel) Seed() string {
	return strings.TrimSpace(m.seed.Value())
}

// Preset returns the selected difficulty preset.
func (m MenuModel) Preset() config.DifficultyPreset {
	return config.Presets[m.preset]
}

// Config returns the runtime config with the chosen seed and current size.
func (m MenuModel) Config() core.RuntimeConfig {
	cfg := m.config
	cfg.Seed = m.Seed()
	return cfg
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Choice MenuChoice
	Preset config.DifficultyPreset
	Config core.RuntimeConfig
}

// RunMenu runs the menu on its own and returns the selection.
func RunMenu(cfg core.RuntimeConfig, preset config.DifficultyPreset) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(cfg, preset), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Choice: ChoiceQuit, Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok || m.Choice() == ChoiceNone {
		return MenuResult{Choice: ChoiceQuit, Config: cfg}, nil
	}

	return MenuResult{Choice: m.Choice(), Preset: m.Preset(), Config: m.Config()}, nil
}
