package models

import "github.com/nvandessel/gridnet/internal/constants"

// HiddenActivations holds the raw weighted sum of each hidden unit.
// Values are not clamped; an empty slice means the layer has not been computed.
type HiddenActivations []int

// OutputActivations holds one bit per output unit.
// An empty slice means the layer has not been computed.
type OutputActivations []int

// Classification is the human-readable label derived from the output layer.
// The empty classification means the output layer has not been computed.
type Classification string

const (
	ClassHorizontal Classification = constants.LabelHorizontal
	ClassVertical   Classification = constants.LabelVertical
	ClassAmbiguous  Classification = constants.LabelAmbiguous
)

// Display returns the label shown in the result box, or the pending placeholder.
func (c Classification) Display() string {
	if c == "" {
		return constants.LabelPending
	}
	return string(c)
}
