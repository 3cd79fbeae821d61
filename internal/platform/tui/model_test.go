package tui

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cardrive/internal/config"
	"github.com/vovakirdan/cardrive/internal/core"
	"github.com/vovakirdan/cardrive/internal/games/cardrive"
	"github.com/vovakirdan/cardrive/internal/storage"
)

var testConfig = core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 42}

type recordingPublisher struct {
	published []any
}

func (p *recordingPublisher) Publish(v any) {
	p.published = append(p.published, v)
}

func newTestModel(t *testing.T, opts Options) (Model, time.Time) {
	t.Helper()
	logger := log.New(io.Discard)
	game := cardrive.New(
		cardrive.WithConfig(config.DefaultCarDriveConfig()),
		cardrive.WithLogger(logger),
	)
	opts.Logger = logger

	t0 := time.Unix(1000, 0)
	m := NewModel(game, testConfig, opts)
	m.clock = func() time.Time { return t0 }
	m.Init()
	return m, t0
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model
}

func TestModelStartsRunOnEnter(t *testing.T) {
	m, t0 := newTestModel(t, Options{})

	if !strings.Contains(m.View(), "Press ENTER to start") {
		t.Error("expected the start prompt before the first run")
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, TickMsg(t0.Add(16*time.Millisecond)))

	if !m.state.Playing {
		t.Fatal("expected the run to start")
	}
	if strings.Contains(m.View(), "Press ENTER") {
		t.Error("prompt should be hidden while playing")
	}
}

func TestModelSteering(t *testing.T) {
	m, t0 := newTestModel(t, Options{})
	game := m.game.(*cardrive.Game)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, TickMsg(t0.Add(16*time.Millisecond)))

	m = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	for i := 2; i <= 4; i++ {
		m = update(t, m, TickMsg(t0.Add(time.Duration(i)*16*time.Millisecond)))
	}

	snap := game.Snapshot()
	if snap.Player == nil || snap.Player.X >= 0 {
		t.Errorf("expected the truck to move left, got %+v", snap.Player)
	}
}

func TestModelPublishesSnapshots(t *testing.T) {
	pub := &recordingPublisher{}
	m, t0 := newTestModel(t, Options{Spectators: pub})

	update(t, m, TickMsg(t0))

	if len(pub.published) != 1 {
		t.Fatalf("expected 1 snapshot, got %d", len(pub.published))
	}
	snap, ok := pub.published[0].(cardrive.Snapshot)
	if !ok {
		t.Fatalf("published %T, expected cardrive.Snapshot", pub.published[0])
	}
	if snap.Phase != "NotStarted" || snap.Tick != 1 {
		t.Errorf("unexpected snapshot %+v", snap)
	}
}

func TestModelTagsFramesWithSession(t *testing.T) {
	pub := &recordingPublisher{}
	a, t0 := newTestModel(t, Options{Spectators: pub, Session: "ana-1"})
	b, _ := newTestModel(t, Options{Spectators: pub, Session: "bob-2"})

	update(t, a, TickMsg(t0))
	update(t, b, TickMsg(t0))

	if len(pub.published) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(pub.published))
	}

	frames := make([][]byte, 2)
	for i, v := range pub.published {
		data, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("Marshal() failed: %v", err)
		}
		frames[i] = data
	}
	if string(frames[0]) == string(frames[1]) {
		t.Fatalf("frames from two sessions should differ, both were %s", frames[0])
	}

	for i, want := range []string{"ana-1", "bob-2"} {
		var frame map[string]any
		if err := json.Unmarshal(frames[i], &frame); err != nil {
			t.Fatalf("Unmarshal() failed: %v", err)
		}
		if frame["session"] != want {
			t.Errorf("frame %d session = %v, expected %q", i, frame["session"], want)
		}
	}
}

func TestModelOmitsEmptySession(t *testing.T) {
	pub := &recordingPublisher{}
	m, t0 := newTestModel(t, Options{Spectators: pub})
	update(t, m, TickMsg(t0))

	data, err := json.Marshal(pub.published[0])
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	if strings.Contains(string(data), `"session"`) {
		t.Errorf("local frame should not carry a session: %s", data)
	}
}

func TestModelSavesRun(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	m, _ := newTestModel(t, Options{Store: store, Difficulty: "hard"})
	m.saveRun(core.Event{Kind: core.EventRunEnded, Score: 420, TopSpeed: 0.13, Ticks: 400})
	m.saveRun(core.Event{Kind: core.EventRunEnded, Score: 0})

	runs, err := store.TopRuns(cardrive.GameID, 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 saved run, got %d", len(runs))
	}
	if runs[0].Score != 420 || runs[0].Difficulty != "hard" || runs[0].Ticks != 400 {
		t.Errorf("unexpected run %+v", runs[0])
	}
}

func TestModelBackToMenu(t *testing.T) {
	m, t0 := newTestModel(t, Options{})

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("back should work between runs")
	}

	m, _ = newTestModel(t, Options{})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, TickMsg(t0.Add(16*time.Millisecond)))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Error("back should be ignored during a run")
	}
}

func TestModelQuit(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

	if !m.IsQuitting() || m.View() != "" {
		t.Error("expected quit with an empty view")
	}
}

func TestModelResize(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	if m.screen.Width() != 100 || m.screen.Height() != 30 {
		t.Errorf("screen is %dx%d, expected 100x30", m.screen.Width(), m.screen.Height())
	}
}

func TestWriteScreenshot(t *testing.T) {
	m, t0 := newTestModel(t, Options{})
	dir := filepath.Join(t.TempDir(), "shots")

	if err := writeScreenshot(m.game, m.screen, dir, t0); err != nil {
		t.Fatalf("writeScreenshot() failed: %v", err)
	}

	name := "cardrive_" + t0.Format("20060102_150405") + ".txt"
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("screenshot not written: %v", err)
	}
	if !strings.Contains(string(data), "Distance : 0 m") {
		t.Error("screenshot should contain the HUD")
	}
}
