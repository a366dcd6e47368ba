package mapnav

import (
	"testing"
)

func TestCommandString(t *testing.T) {
	tests := []struct {
		cmd  Command
		want string
	}{
		{PanTo(10, 20), "PanTo(10, 20)"},
		{PanByDelta(-3, 4), "PanByDelta(-3, 4)"},
		{Nudge(South), "Nudge(South)"},
		{ZoomIn(2, true, 5, 6), "ZoomIn(2, true, 5, 6)"},
		{ZoomOut(1, false, 7, 8), "ZoomOut(1, false, 7, 8)"},
		{ResetView(), "ResetView()"},
		{Command{}, "Command(?)"},
	}
	for _, tt := range tests {
		if got := tt.cmd.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestCommandApply(t *testing.T) {
	engine := &recordEngine{}
	cmds := []Command{
		PanTo(1, 2),
		PanByDelta(3, 4),
		Nudge(West),
		ZoomIn(1, true, 5, 6),
		ZoomOut(2, false, 7, 8),
		ResetView(),
	}
	for _, c := range cmds {
		if !c.Apply(engine) {
			t.Errorf("%s: Apply should report the engine result", c)
		}
	}
	for i, c := range cmds {
		if engine.calls[i] != c.String() {
			t.Errorf("call %d = %q, want %q", i, engine.calls[i], c.String())
		}
	}
	if (Command{}).Apply(engine) {
		t.Error("zero command should not change the engine")
	}
	if len(engine.calls) != len(cmds) {
		t.Errorf("zero command reached the engine: %v", engine.calls)
	}
}

func TestEnumStrings(t *testing.T) {
	if ActionPointerDown.String() != "pointer-down" || PointerAction(99).String() != "unknown" {
		t.Error("PointerAction.String mismatch")
	}
	if North.String() != "North" || DirectionUnknown.String() != "Unknown" {
		t.Error("Direction.String mismatch")
	}
	if WaitForSecondUp.String() != "WaitForSecondUp" {
		t.Error("TapState.String mismatch")
	}
}

func TestEventAccessors(t *testing.T) {
	var empty Event
	if empty.X() != 0 || empty.Y() != 0 {
		t.Error("empty event should report the origin")
	}
	e := ev(ActionMove, 0, 0, pt(4, 3, 9), pt(5, 1, 1))
	if e.X() != 3 || e.Y() != 9 {
		t.Errorf("X, Y = %v, %v", e.X(), e.Y())
	}
	if _, ok := e.pointerAt(2); ok {
		t.Error("pointerAt out of range should fail")
	}
	if p, ok := e.pointerAt(1); !ok || p.ID != 5 {
		t.Errorf("pointerAt(1) = %+v, %v", p, ok)
	}
}
