package models

import (
	"encoding/json"
	"fmt"

	"github.com/nvandessel/gridnet/internal/constants"
)

// Phase is a step of the two-click reveal protocol.
type Phase int

const (
	// PhaseIdle means the grid is empty and the action button is disabled.
	PhaseIdle Phase = iota
	// PhaseArmed means the grid has input and nothing has been computed yet.
	PhaseArmed
	// PhaseHiddenComputed means the hidden layer is computed and displayed.
	PhaseHiddenComputed
	// PhaseCompleted means the output layer and label are displayed.
	PhaseCompleted
)

// String returns a string representation of the phase
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseArmed:
		return "armed"
	case PhaseHiddenComputed:
		return "hidden-computed"
	case PhaseCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// ActionEnabled reports whether the action button accepts a click in this phase.
func (p Phase) ActionEnabled() bool {
	return p == PhaseArmed || p == PhaseHiddenComputed
}

// Caption returns the action button text shown in this phase.
func (p Phase) Caption() string {
	switch p {
	case PhaseArmed, PhaseHiddenComputed:
		return constants.CaptionCalculate
	case PhaseCompleted:
		return constants.CaptionComplete
	default:
		return constants.CaptionReady
	}
}

// HiddenComputed reports whether hidden activations exist in this phase.
func (p Phase) HiddenComputed() bool {
	return p == PhaseHiddenComputed || p == PhaseCompleted
}

// MarshalJSON encodes the phase as its string name.
func (p Phase) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON decodes a phase from its string name.
func (p *Phase) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParsePhase(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParsePhase maps a phase name back to its Phase value.
func ParsePhase(s string) (Phase, error) {
	for _, p := range []Phase{PhaseIdle, PhaseArmed, PhaseHiddenComputed, PhaseCompleted} {
		if p.String() == s {
			return p, nil
		}
	}
	return PhaseIdle, fmt.Errorf("unknown phase %q", s)
}
