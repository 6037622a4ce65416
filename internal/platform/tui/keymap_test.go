package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/termfolio/pixelsmash/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper(0)

	tests := []struct {
		name       string
		msg        tea.KeyMsg
		wantAction core.Action
		wantQuit   bool
	}{
		{"enter launches", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionLaunch, false},
		{"space pauses", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionPause, false},
		{"r restarts", runeKey('r'), core.ActionRestart, false},
		{"s retries", runeKey('s'), core.ActionRetry, false},
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"a moves left", runeKey('a'), core.ActionLeft, false},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"d moves right", runeKey('d'), core.ActionRight, false},
		{"q quits", runeKey('q'), core.ActionQuit, true},
		{"esc quits", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionQuit, true},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound key", runeKey('x'), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.wantAction || quit != tt.wantQuit {
				t.Errorf("MapKey(%q) = (%v, %v), expected (%v, %v)",
					tt.msg.String(), action, quit, tt.wantAction, tt.wantQuit)
			}
		})
	}
}

func TestPressHoldsMovement(t *testing.T) {
	km := NewKeyMapper(3)

	if action, _ := km.Press(tea.KeyMsg{Type: tea.KeyLeft}); action != core.ActionNone {
		t.Fatalf("Press(left) returned %v, movement should be held instead", action)
	}

	frame := core.NewInputFrame()
	for tick := 1; tick <= 3; tick++ {
		km.Advance(&frame)
		if !frame.Has(core.ActionLeft) {
			t.Fatalf("left released after %d ticks, expected 3", tick-1)
		}
		frame.Clear()
	}

	km.Advance(&frame)
	if frame.Has(core.ActionLeft) {
		t.Error("left still held after its hold window")
	}
}

func TestPressRefreshesHold(t *testing.T) {
	km := NewKeyMapper(2)
	frame := core.NewInputFrame()

	km.Press(runeKey('d'))
	km.Advance(&frame)
	frame.Clear()

	// Auto-repeat delivers the key again before the window closes
	km.Press(runeKey('d'))
	for i := 0; i < 2; i++ {
		km.Advance(&frame)
		if !frame.Has(core.ActionRight) {
			t.Fatalf("right released on tick %d after refresh", i+1)
		}
		frame.Clear()
	}
}

func TestOppositeDirectionReleases(t *testing.T) {
	km := NewKeyMapper(5)
	frame := core.NewInputFrame()

	km.Press(tea.KeyMsg{Type: tea.KeyLeft})
	km.Press(tea.KeyMsg{Type: tea.KeyRight})
	km.Advance(&frame)

	if frame.Has(core.ActionLeft) {
		t.Error("left should be released by pressing right")
	}
	if !frame.Has(core.ActionRight) {
		t.Error("right should be held")
	}
}

func TestReleaseDropsHeldKeys(t *testing.T) {
	km := NewKeyMapper(5)
	frame := core.NewInputFrame()

	km.Press(runeKey('a'))
	km.Release()
	km.Advance(&frame)

	if frame.Has(core.ActionLeft) {
		t.Error("Release() should drop held keys")
	}
}

func TestPressPassesEvents(t *testing.T) {
	km := NewKeyMapper(0)

	action, quit := km.Press(tea.KeyMsg{Type: tea.KeyEnter})
	if action != core.ActionLaunch || quit {
		t.Errorf("Press(enter) = (%v, %v)", action, quit)
	}

	frame := core.NewInputFrame()
	km.Advance(&frame)
	if len(frame.Actions) != 0 {
		t.Errorf("one-shot keys must not be held, frame = %v", frame.Actions)
	}
}
