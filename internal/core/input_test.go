package core

import "testing"

func TestInputFrame(t *testing.T) {
	var f InputFrame // zero value must be usable
	if f.Has(ActionLeft) {
		t.Fatal("empty frame reports an action")
	}

	f.Set(ActionLeft)
	f.Set(ActionPause)
	if !f.Has(ActionLeft) || !f.Has(ActionPause) || f.Has(ActionRight) {
		t.Errorf("unexpected frame contents: %v", f.Actions)
	}

	f.Clear()
	if f.Has(ActionLeft) {
		t.Error("Clear left actions behind")
	}
}

func TestActionContinuous(t *testing.T) {
	tests := []struct {
		action Action
		want   bool
	}{
		{ActionLeft, true},
		{ActionRight, true},
		{ActionLaunch, false},
		{ActionPause, false},
		{ActionRestart, false},
		{ActionQuit, false},
	}

	for _, tc := range tests {
		t.Run(tc.action.String(), func(t *testing.T) {
			if got := tc.action.Continuous(); got != tc.want {
				t.Errorf("Continuous() = %v, expected %v", got, tc.want)
			}
		})
	}
}
