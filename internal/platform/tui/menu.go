package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/cardrive/internal/config"
	"github.com/vovakirdan/cardrive/internal/core"
	"github.com/vovakirdan/cardrive/internal/games/cardrive"
	"github.com/vovakirdan/cardrive/internal/storage"
)

var (
	menuTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	menuDimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuModel is the Bubble Tea model for the difficulty picker shown before a run.
type MenuModel struct {
	presets        []config.DifficultyPreset
	cursor         int
	width          int
	height         int
	best           int // Best distance on record, 0 when unknown
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	selected       *config.DifficultyPreset
	openScoreboard bool // True if user pressed Tab for scoreboard
}

// NewMenuModel creates a new menu model. The cursor starts on initial,
// or on the normal preset when initial is empty.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig, initial config.DifficultyPreset) MenuModel {
	if initial == "" {
		initial = config.DifficultyNormal
	}

	m := MenuModel{
		presets:   config.Presets,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
	for i, p := range m.presets {
		if p == initial {
			m.cursor = i
		}
	}

	if store != nil {
		if best, err := store.HighScore(cardrive.GameID); err == nil {
			m.best = best
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
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

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		selected := m.presets[m.cursor]
		m.selected = &selected
		return m, tea.Quit

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("C A R   D R I V E"), m.width))
	b.WriteString("\n\n")

	if m.best > 0 {
		b.WriteString(centerText(fmt.Sprintf("Best run: %d m", m.best), m.width))
		b.WriteString("\n\n")
	}

	b.WriteString(centerText("Choose a difficulty", m.width))
	b.WriteString("\n\n")

	for i, p := range m.presets {
		line := fmt.Sprintf("  %-7s %s", p, p.Description())
		if i == m.cursor {
			line = menuSelectedStyle.Render(fmt.Sprintf("> %-7s %s", p, p.Description()))
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Drive  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(menuDimStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the chosen preset, or nil if none selected.
func (m MenuModel) Selected() *config.DifficultyPreset {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
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
	Difficulty      config.DifficultyPreset
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig, initial config.DifficultyPreset) (MenuResult, error) {
	p := tea.NewProgram(
		NewMenuModel(store, cfg, initial),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.Selected() != nil:
		result.Difficulty = *m.Selected()
	default:
		result.Quit = true
	}
	return result, nil
}
