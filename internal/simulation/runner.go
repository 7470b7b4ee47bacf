package simulation

import (
	"fmt"
	"testing"

	"github.com/nvandessel/gridnet/internal/network"
	"github.com/nvandessel/gridnet/internal/session"
)

// Runner executes scenarios against a fresh session each run.
type Runner struct {
	t *testing.T
}

// NewRunner creates a simulation runner with a sandboxed HOME directory.
func NewRunner(t *testing.T) *Runner {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	return &Runner{t: t}
}

// Run executes the scenario and returns the collected results.
func (r *Runner) Run(scenario Scenario) Result {
	r.t.Helper()

	net := scenario.Network
	if net == nil {
		net = network.Default()
	}

	result := Result{Name: scenario.Name, Network: net}

	cfg := session.DefaultConfig()
	cfg.Network = net
	cfg.Listener = func(snap session.Snapshot) {
		result.Emitted = append(result.Emitted, snap)
	}
	state := session.NewState(cfg)

	result.Steps = make([]StepResult, len(scenario.Steps))
	for i, step := range scenario.Steps {
		emittedBefore := len(result.Emitted)
		before := state.Snapshot()

		snap, err := apply(state, step)

		result.Steps[i] = StepResult{
			Index:    i,
			Step:     step,
			Before:   before,
			Snapshot: snap,
			Err:      err,
			Emitted:  len(result.Emitted) - emittedBefore,
		}
	}
	return result
}

func apply(state *session.State, step Step) (session.Snapshot, error) {
	switch step.Action {
	case ActionToggle:
		return state.Toggle(step.Cell)
	case ActionPaint:
		return state.Paint(step.Cell)
	case ActionActivate:
		return state.Activate()
	case ActionClear:
		return state.Clear(), nil
	case ActionSetPattern:
		return state.SetPattern(step.Pattern)
	default:
		return state.Snapshot(), fmt.Errorf("unknown action %q", step.Action)
	}
}
