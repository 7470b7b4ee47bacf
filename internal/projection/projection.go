// Package projection derives the highlight state a view renders from a
// session's pattern, phase and computed activations.
//
// Project is a pure function: it holds no state and is recomputed in full
// after every action.
package projection

import (
	"encoding/json"
	"fmt"

	"github.com/nvandessel/gridnet/internal/constants"
	"github.com/nvandessel/gridnet/internal/models"
	"github.com/nvandessel/gridnet/internal/network"
)

// Level is the display tier of a hidden unit or an input-to-hidden edge.
type Level int

const (
	LevelNone Level = iota
	LevelPartial
	LevelFull
)

// String returns a string representation of the level
func (l Level) String() string {
	switch l {
	case LevelNone:
		return "none"
	case LevelPartial:
		return "partial"
	case LevelFull:
		return "full"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the level as its string name.
func (l Level) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// UnmarshalJSON decodes a level from its string name.
func (l *Level) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "none":
		*l = LevelNone
	case "partial":
		*l = LevelPartial
	case "full":
		*l = LevelFull
	default:
		return fmt.Errorf("unknown level %q", s)
	}
	return nil
}

// LevelFor maps a hidden activation to its display tier.
func LevelFor(activation int) Level {
	switch {
	case activation >= constants.FullLevelThreshold:
		return LevelFull
	case activation >= 1:
		return LevelPartial
	default:
		return LevelNone
	}
}

// Input is the session state a projection is computed from.
type Input struct {
	Pattern models.Pattern
	Phase   models.Phase
	Hidden  models.HiddenActivations
	Output  models.OutputActivations
}

// Highlights describes which entities a view should render as active.
type Highlights struct {
	// Inputs lists filled cell indices; each lights its input node.
	Inputs []int `json:"inputs"`

	// GridLinks[i] is true when the connector from cell i to input node i is lit.
	GridLinks []bool `json:"grid_links"`

	// Hidden holds one level per hidden unit. All none until the hidden layer is computed.
	Hidden []Level `json:"hidden"`

	// InputEdges[i][h] is the level of the edge from input i to hidden unit h.
	InputEdges [][]Level `json:"input_edges"`

	// OutputEdges[h][o] is true when the edge from hidden h to output o is lit.
	OutputEdges [][]bool `json:"output_edges"`

	// Outputs lists firing output indices once the output layer is computed.
	Outputs []int `json:"outputs"`

	// LabelLinks[o] is true when the connector from output o to the label is lit.
	LabelLinks []bool `json:"label_links"`

	// Label is true once the classification is displayed.
	Label bool `json:"label"`
}

// Project computes the highlight descriptor for the given state.
func Project(n *network.Network, in Input) Highlights {
	hl := Highlights{
		Inputs:      in.Pattern.Filled(),
		GridLinks:   make([]bool, constants.CellCount),
		Hidden:      make([]Level, constants.HiddenCount),
		InputEdges:  make([][]Level, constants.CellCount),
		OutputEdges: make([][]bool, constants.HiddenCount),
		Outputs:     []int{},
		LabelLinks:  make([]bool, constants.OutputCount),
	}
	for i := range hl.InputEdges {
		hl.InputEdges[i] = make([]Level, constants.HiddenCount)
	}
	for h := range hl.OutputEdges {
		hl.OutputEdges[h] = make([]bool, constants.OutputCount)
	}

	for i, bit := range in.Pattern {
		hl.GridLinks[i] = bit == 1
	}

	hiddenReady := in.Phase.HiddenComputed() && len(in.Hidden) == constants.HiddenCount
	if !hiddenReady {
		return hl
	}

	for h, act := range in.Hidden {
		hl.Hidden[h] = LevelFor(act)
	}
	for i, bit := range in.Pattern {
		if bit != 1 {
			continue
		}
		for h := range hl.Hidden {
			if n.Weight(i, h) > 0 && hl.Hidden[h] != LevelNone {
				hl.InputEdges[i][h] = hl.Hidden[h]
			}
		}
	}

	outputReady := in.Phase == models.PhaseCompleted && len(in.Output) == constants.OutputCount
	if !outputReady {
		return hl
	}

	for o, bit := range in.Output {
		if bit == 1 {
			hl.Outputs = append(hl.Outputs, o)
			hl.LabelLinks[o] = true
		}
	}
	for h, act := range in.Hidden {
		for o, bit := range in.Output {
			if n.Connected(h, o) && act >= 1 && bit == 1 {
				hl.OutputEdges[h][o] = true
			}
		}
	}
	hl.Label = true

	return hl
}
