package tui

import (
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cardrive/internal/config"
	"github.com/vovakirdan/cardrive/internal/games/cardrive"
	"github.com/vovakirdan/cardrive/internal/storage"
)

func menuUpdate(t *testing.T, m MenuModel, msg tea.Msg) MenuModel {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(MenuModel)
}

func TestMenuDefaultsToNormal(t *testing.T) {
	m := NewMenuModel(nil, testConfig, "")
	m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.Selected() == nil || *m.Selected() != config.DifficultyNormal {
		t.Errorf("expected normal, got %v", m.Selected())
	}
}

func TestMenuNavigation(t *testing.T) {
	m := NewMenuModel(nil, testConfig, config.DifficultyEasy)

	m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyUp}) // Already at the top
	for i := 0; i < 10; i++ {
		m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.Selected() == nil || *m.Selected() != config.DifficultyFixed {
		t.Errorf("expected the last preset, got %v", m.Selected())
	}
}

func TestMenuScoreboardAndQuit(t *testing.T) {
	m := menuUpdate(t, NewMenuModel(nil, testConfig, ""), tea.KeyMsg{Type: tea.KeyTab})
	if !m.WantsScoreboard() {
		t.Error("tab should open the scoreboard")
	}

	m = menuUpdate(t, NewMenuModel(nil, testConfig, ""), tea.KeyMsg{Type: tea.KeyEsc})
	if !m.IsQuitting() {
		t.Error("esc should leave the menu")
	}
}

func TestMenuShowsBestRun(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()
	store.SaveRun(storage.RunRecord{GameID: cardrive.GameID, Score: 1234})

	view := NewMenuModel(store, testConfig, "").View()
	if !strings.Contains(view, "Best run: 1234 m") {
		t.Errorf("expected the best run in the menu:\n%s", view)
	}
	for _, p := range config.Presets {
		if !strings.Contains(view, p.Description()) {
			t.Errorf("menu should describe %s", p)
		}
	}
}

func TestSessionFlow(t *testing.T) {
	s := NewSessionModel(testConfig, Options{Logger: log.New(io.Discard)})

	step := func(msg tea.Msg) {
		t.Helper()
		next, _ := s.Update(msg)
		s = next.(SessionModel)
	}

	step(tea.KeyMsg{Type: tea.KeyEnter})
	if s.screen != screenGame {
		t.Fatal("selecting a preset should start the game")
	}
	if s.difficulty != config.DifficultyNormal {
		t.Errorf("difficulty = %q, expected normal", s.difficulty)
	}

	step(TickMsg(time.Now()))
	step(tea.KeyMsg{Type: tea.KeyEsc})
	if s.screen != screenMenu {
		t.Fatal("back between runs should return to the menu")
	}

	step(tea.KeyMsg{Type: tea.KeyTab})
	if s.screen != screenScores {
		t.Fatal("tab should open the scoreboard")
	}
	if !strings.Contains(s.View(), "No runs recorded yet") {
		t.Error("scoreboard without a store should be empty")
	}

	step(tea.KeyMsg{Type: tea.KeyEsc})
	if s.screen != screenMenu {
		t.Fatal("back from the scoreboard should return to the menu")
	}

	step(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if !s.quitting {
		t.Error("q should end the session")
	}
}

func TestSessionTagsSpectatorFrames(t *testing.T) {
	pub := &recordingPublisher{}
	s := NewSessionModel(testConfig, Options{
		Logger:     log.New(io.Discard),
		Spectators: pub,
		Session:    sessionID("ana", 3),
	})

	next, _ := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	s = next.(SessionModel)
	next, _ = s.Update(TickMsg(time.Now()))
	s = next.(SessionModel)

	if len(pub.published) != 1 {
		t.Fatalf("expected 1 snapshot, got %d", len(pub.published))
	}
	snap := pub.published[0].(cardrive.Snapshot)
	if snap.Session != "ana-3" {
		t.Errorf("Session = %q, expected %q", snap.Session, "ana-3")
	}
}

func TestSessionID(t *testing.T) {
	tests := []struct {
		user string
		n    uint64
		want string
	}{
		{"ana", 1, "ana-1"},
		{"ana", 2, "ana-2"},
		{"", 7, "anonymous-7"},
	}

	for _, tc := range tests {
		if got := sessionID(tc.user, tc.n); got != tc.want {
			t.Errorf("sessionID(%q, %d) = %q, expected %q", tc.user, tc.n, got, tc.want)
		}
	}
}
