package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cardrive/internal/core"
	"github.com/vovakirdan/cardrive/internal/games/cardrive"
	"github.com/vovakirdan/cardrive/internal/registry"
	"github.com/vovakirdan/cardrive/internal/storage"
)

// Publisher receives a game snapshot after every tick.
type Publisher interface {
	Publish(v any)
}

// Snapshotter is implemented by games that expose their state to spectators.
type Snapshotter interface {
	Snapshot() cardrive.Snapshot
}

// Options are the collaborators of a game session. All fields are optional.
type Options struct {
	Store      *storage.Store
	Spectators Publisher
	Difficulty string
	Logger     *log.Logger

	// Session identifies this game in spectator frames when several
	// sessions share one Publisher.
	Session string
}

// Model is the Bubble Tea model that drives a game: key events feed the
// held-key state, ticks step the simulation and every frame is rendered.
type Model struct {
	game      registry.Game
	screen    *core.Screen
	config    core.RuntimeConfig
	opts      Options
	keyMapper *KeyMapper
	keys      *KeyState
	state     core.GameState
	clock     func() time.Time

	embedded   bool // Inside a SessionModel; back returns to its menu
	quitting   bool
	backToMenu bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	return Model{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:    cfg,
		opts:      opts,
		keyMapper: NewKeyMapper(),
		keys:      NewKeyState(),
		clock:     time.Now,
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
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
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		if err := m.saveScreenshot(); err != nil {
			m.opts.Logger.Warn("screenshot failed", "err", err)
		}
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	// Back to the menu only between runs or while paused
	if action == core.ActionBack {
		if !m.state.Playing || m.state.Paused {
			m.backToMenu = true
			if !m.embedded {
				return m, tea.Quit
			}
		}
		return m, nil
	}

	m.keys.Press(action, m.clock())
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	result := m.game.Step(m.keys.Frame(now))
	m.state = result.State

	for _, ev := range result.Events {
		if ev.Kind == core.EventRunEnded {
			m.saveRun(ev)
		}
	}

	if m.opts.Spectators != nil {
		if s, ok := m.game.(Snapshotter); ok {
			snap := s.Snapshot()
			snap.Session = m.opts.Session
			m.opts.Spectators.Publish(snap)
		}
	}

	return m, tickCmd(m.config.TickRate)
}

// saveRun stores a finished run. Failures are logged; the game continues.
func (m Model) saveRun(ev core.Event) {
	if m.opts.Store == nil || ev.Score <= 0 {
		return
	}
	_, err := m.opts.Store.SaveRun(storage.RunRecord{
		GameID:     m.game.ID(),
		Score:      ev.Score,
		TopSpeed:   ev.TopSpeed,
		Ticks:      ev.Ticks,
		Difficulty: m.opts.Difficulty,
	})
	if err != nil {
		m.opts.Logger.Warn("could not save run", "err", err)
	}
}

// saveScreenshot writes the current frame to ~/.cardrive/screenshots.
func (m Model) saveScreenshot() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("tui: cannot get home directory: %w", err)
	}
	dir := filepath.Join(home, ".cardrive", "screenshots")
	return writeScreenshot(m.game, m.screen, dir, m.clock())
}

// writeScreenshot renders game into screen and saves it as plain text.
func writeScreenshot(game registry.Game, screen *core.Screen, dir string, now time.Time) error {
	game.Render(screen)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("tui: cannot create screenshot directory: %w", err)
	}

	filename := fmt.Sprintf("%s_%s.txt", game.ID(), now.Format("20060102_150405"))
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(screen.String()), 0o600); err != nil {
		return fmt.Errorf("tui: cannot write screenshot: %w", err)
	}
	return nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for game and blocks until it exits.
// Reports whether the user asked to go back to the menu.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) (backToMenu bool, err error) {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(Model)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
