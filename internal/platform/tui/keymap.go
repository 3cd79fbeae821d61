package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/cardrive/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "left", "h", "a":
		return core.ActionLeft, false
	case "right", "l", "d":
		return core.ActionRight, false
	case "enter", " ":
		return core.ActionStart, false
	case "p":
		return core.ActionPause, false
	case "b", "esc":
		return core.ActionBack, false
	}

	return core.ActionNone, false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}

// Hold windows for KeyState. Terminals report key presses only, so a key
// counts as held until no auto-repeat arrives within the window.
const (
	// InitialHold covers the auto-repeat delay after the first press.
	InitialHold = 500 * time.Millisecond
	// RepeatHold covers the interval between auto-repeat events.
	RepeatHold = 120 * time.Millisecond
)

type keyPress struct {
	last     time.Time
	repeated bool
}

// KeyState is the held-key map. Key events write it; the tick loop samples
// it into an InputFrame.
type KeyState struct {
	InitialHold time.Duration
	RepeatHold  time.Duration

	held map[core.Action]keyPress
}

// NewKeyState creates an empty key state with the default hold windows.
func NewKeyState() *KeyState {
	return &KeyState{
		InitialHold: InitialHold,
		RepeatHold:  RepeatHold,
		held:        make(map[core.Action]keyPress),
	}
}

// opposite returns the steering action that a press of a cancels.
func opposite(a core.Action) core.Action {
	switch a {
	case core.ActionLeft:
		return core.ActionRight
	case core.ActionRight:
		return core.ActionLeft
	}
	return core.ActionNone
}

// Press records a key press at now.
func (k *KeyState) Press(a core.Action, now time.Time) {
	if a == core.ActionNone {
		return
	}
	// Terminals only repeat the most recent key
	if o := opposite(a); o != core.ActionNone {
		delete(k.held, o)
	}

	p, ok := k.held[a]
	if ok && now.Sub(p.last) < k.window(p) {
		p.repeated = true
	} else {
		p = keyPress{}
	}
	p.last = now
	k.held[a] = p
}

// Release forgets a key immediately.
func (k *KeyState) Release(a core.Action) {
	delete(k.held, a)
}

// Reset releases every key.
func (k *KeyState) Reset() {
	clear(k.held)
}

// Frame returns the actions held at now, dropping expired keys.
func (k *KeyState) Frame(now time.Time) core.InputFrame {
	frame := core.NewInputFrame()
	for a, p := range k.held {
		if now.Sub(p.last) >= k.window(p) {
			delete(k.held, a)
			continue
		}
		frame.Set(a)
	}
	return frame
}

func (k *KeyState) window(p keyPress) time.Duration {
	if p.repeated {
		return k.RepeatHold
	}
	return k.InitialHold
}
