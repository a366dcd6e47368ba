package mapnav

import "fmt"

// CommandKind identifies a navigation command.
type CommandKind uint8

const (
	CommandPanTo CommandKind = iota + 1
	CommandPanByDelta
	CommandNudge
	CommandZoomIn
	CommandZoomOut
	CommandResetView
)

// Command is a one-shot navigation request produced by a recognizer.
// X and Y hold the point for PanTo and zooms, and the delta for PanByDelta.
type Command struct {
	Kind      CommandKind
	X, Y      int
	Steps     int
	Anchored  bool
	Direction Direction
}

// PanTo returns a command that centers the view on (x, y).
func PanTo(x, y int) Command {
	return Command{Kind: CommandPanTo, X: x, Y: y}
}

// PanByDelta returns a command that shifts the view by (dx, dy) pixels.
func PanByDelta(dx, dy int) Command {
	return Command{Kind: CommandPanByDelta, X: dx, Y: dy}
}

// Nudge returns a command that shifts the view one notch in dir.
func Nudge(dir Direction) Command {
	return Command{Kind: CommandNudge, Direction: dir}
}

// ZoomIn returns a zoom-in command of steps levels around (x, y).
func ZoomIn(steps int, anchored bool, x, y int) Command {
	return Command{Kind: CommandZoomIn, Steps: steps, Anchored: anchored, X: x, Y: y}
}

// ZoomOut returns a zoom-out command of steps levels around (x, y).
func ZoomOut(steps int, anchored bool, x, y int) Command {
	return Command{Kind: CommandZoomOut, Steps: steps, Anchored: anchored, X: x, Y: y}
}

// ResetView returns a command that restores the initial view.
func ResetView() Command {
	return Command{Kind: CommandResetView}
}

// Apply forwards the command to e and returns e's state-changed result.
func (c Command) Apply(e Engine) bool {
	switch c.Kind {
	case CommandPanTo:
		return e.PanTo(c.X, c.Y)
	case CommandPanByDelta:
		return e.PanByDelta(c.X, c.Y)
	case CommandNudge:
		return e.Nudge(c.Direction)
	case CommandZoomIn:
		return e.ZoomIn(c.Steps, c.Anchored, c.X, c.Y)
	case CommandZoomOut:
		return e.ZoomOut(c.Steps, c.Anchored, c.X, c.Y)
	case CommandResetView:
		return e.ResetView()
	default:
		return false
	}
}

func (c Command) String() string {
	switch c.Kind {
	case CommandPanTo:
		return fmt.Sprintf("PanTo(%d, %d)", c.X, c.Y)
	case CommandPanByDelta:
		return fmt.Sprintf("PanByDelta(%d, %d)", c.X, c.Y)
	case CommandNudge:
		return fmt.Sprintf("Nudge(%s)", c.Direction)
	case CommandZoomIn:
		return fmt.Sprintf("ZoomIn(%d, %t, %d, %d)", c.Steps, c.Anchored, c.X, c.Y)
	case CommandZoomOut:
		return fmt.Sprintf("ZoomOut(%d, %t, %d, %d)", c.Steps, c.Anchored, c.X, c.Y)
	case CommandResetView:
		return "ResetView()"
	default:
		return "Command(?)"
	}
}

// CommandSink receives commands from recognizers.
type CommandSink interface {
	Emit(cmd Command)
}

// CommandFunc adapts a function to CommandSink.
type CommandFunc func(Command)

func (f CommandFunc) Emit(cmd Command) { f(cmd) }
