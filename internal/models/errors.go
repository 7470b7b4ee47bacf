package models

import "fmt"

// OutOfRangeError reports a cell index outside [0, CellCount).
type OutOfRangeError struct {
	Index int `json:"index"`
	Limit int `json:"limit"`
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("cell index %d out of range [0,%d)", e.Index, e.Limit)
}

// ShapeMismatchError reports a vector or matrix whose shape or element values
// do not fit the fixed network.
type ShapeMismatchError struct {
	What string `json:"what"` // "pattern", "hidden", "output", "weights", "mask"
	Want string `json:"want"`
	Got  string `json:"got"`
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("%s shape mismatch: want %s, got %s", e.What, e.Want, e.Got)
}

// InvalidActionError reports an action that the current phase forbids,
// such as activating an empty grid or a completed session.
type InvalidActionError struct {
	Action string `json:"action"`
	Phase  Phase  `json:"phase"`
}

func (e *InvalidActionError) Error() string {
	return fmt.Sprintf("action %q not allowed in phase %s", e.Action, e.Phase)
}
