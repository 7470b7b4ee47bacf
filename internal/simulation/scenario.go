package simulation

import (
	"fmt"

	"github.com/nvandessel/gridnet/internal/models"
	"github.com/nvandessel/gridnet/internal/network"
	"github.com/nvandessel/gridnet/internal/session"
)

// Action names a view-to-core action.
type Action string

const (
	ActionToggle     Action = "toggle"
	ActionPaint      Action = "paint"
	ActionActivate   Action = "activate"
	ActionClear      Action = "clear"
	ActionSetPattern Action = "set-pattern"
)

// Step is one action applied to the session.
type Step struct {
	Action  Action
	Cell    int            // toggle and paint
	Pattern models.Pattern // set-pattern

	// Label is an optional human-readable tag for failure output.
	Label string
}

func (s Step) String() string {
	switch s.Action {
	case ActionToggle, ActionPaint:
		return fmt.Sprintf("%s(%d)", s.Action, s.Cell)
	case ActionSetPattern:
		return fmt.Sprintf("%s(%s)", s.Action, s.Pattern)
	default:
		return string(s.Action)
	}
}

// Toggle returns a toggle step.
func Toggle(cell int) Step { return Step{Action: ActionToggle, Cell: cell} }

// Paint returns a paint step.
func Paint(cell int) Step { return Step{Action: ActionPaint, Cell: cell} }

// Activate returns an activate step.
func Activate() Step { return Step{Action: ActionActivate} }

// Clear returns a clear step.
func Clear() Step { return Step{Action: ActionClear} }

// SetPattern returns a set-pattern step.
func SetPattern(p models.Pattern) Step { return Step{Action: ActionSetPattern, Pattern: p} }

// Reveal returns the steps that set p and press activate twice.
func Reveal(p models.Pattern) []Step {
	return []Step{SetPattern(p), Activate(), Activate()}
}

// Scenario defines a complete scripted session.
type Scenario struct {
	Name  string
	Steps []Step

	// Network, when non-nil, replaces the reference network.
	Network *network.Network
}

// StepResult captures the outcome of a single step.
type StepResult struct {
	Index    int
	Step     Step
	Before   session.Snapshot
	Snapshot session.Snapshot
	Err      error

	// Emitted counts listener notifications caused by this step.
	Emitted int
}

// Result captures all steps and every snapshot the listener received.
type Result struct {
	Name    string
	Network *network.Network
	Steps   []StepResult
	Emitted []session.Snapshot
}

// Final returns the snapshot after the last step.
func (r Result) Final() session.Snapshot {
	if len(r.Steps) == 0 {
		return session.Snapshot{}
	}
	return r.Steps[len(r.Steps)-1].Snapshot
}
