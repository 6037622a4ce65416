package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/termfolio/pixelsmash/internal/core"
)

// DefaultHoldTicks is how long a movement key counts as held after its
// last press. Terminal auto-repeat refreshes it well inside this window.
const DefaultHoldTicks = 9

// KeyMap defines the key bindings of a match.
type KeyMap struct {
	Left    key.Binding
	Right   key.Binding
	Launch  key.Binding
	Pause   key.Binding
	Restart key.Binding
	Retry   key.Binding
	Quit    key.Binding

	Screenshot key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Pause, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right},
		{k.Launch, k.Pause, k.Restart, k.Retry},
		{k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "right"),
		),
		Launch: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start"),
		),
		Pause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Retry: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "retry submit"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "q", "ctrl+c"),
			key.WithHelp("q/esc", "quit"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
	}
}

// KeyMapper translates Bubble Tea key messages to game actions.
//
// Terminals only report key presses, so continuous actions are emulated:
// a movement key stays held for holdTicks ticks after it was last seen.
// Pressing the opposite direction releases the other one at once.
type KeyMapper struct {
	keys      KeyMap
	holdTicks int
	held      map[core.Action]int // remaining ticks per continuous action
}

// NewKeyMapper creates a key mapper with default bindings. A holdTicks of
// zero or less uses DefaultHoldTicks.
func NewKeyMapper(holdTicks int) *KeyMapper {
	if holdTicks <= 0 {
		holdTicks = DefaultHoldTicks
	}
	return &KeyMapper{
		keys:      DefaultKeyMap(),
		holdTicks: holdTicks,
		held:      make(map[core.Action]int),
	}
}

// Keys returns the bindings in use.
func (km *KeyMapper) Keys() KeyMap {
	return km.keys
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch {
	case key.Matches(msg, km.keys.Quit):
		return core.ActionQuit, true
	case key.Matches(msg, km.keys.Left):
		return core.ActionLeft, false
	case key.Matches(msg, km.keys.Right):
		return core.ActionRight, false
	case key.Matches(msg, km.keys.Launch):
		return core.ActionLaunch, false
	case key.Matches(msg, km.keys.Pause):
		return core.ActionPause, false
	case key.Matches(msg, km.keys.Restart):
		return core.ActionRestart, false
	case key.Matches(msg, km.keys.Retry):
		return core.ActionRetry, false
	}
	return core.ActionNone, false
}

// Press records a key message. Continuous actions start (or refresh) their
// hold window; any other action is returned for the caller to dispatch.
func (km *KeyMapper) Press(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	action, isQuit = km.MapKey(msg)
	if !action.Continuous() {
		return action, isQuit
	}

	switch action {
	case core.ActionLeft:
		delete(km.held, core.ActionRight)
	case core.ActionRight:
		delete(km.held, core.ActionLeft)
	}
	km.held[action] = km.holdTicks
	return core.ActionNone, false
}

// Advance fills frame with the actions held during this tick and ages the
// hold windows by one tick.
func (km *KeyMapper) Advance(frame *core.InputFrame) {
	for action, ticks := range km.held {
		frame.Set(action)
		if ticks <= 1 {
			delete(km.held, action)
			continue
		}
		km.held[action] = ticks - 1
	}
}

// Release drops every held action.
func (km *KeyMapper) Release() {
	clear(km.held)
}
