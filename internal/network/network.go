// Package network implements the fixed-weight 4-4-2 feed-forward classifier.
//
// The engine is pure and stateless: every function computes its result from the
// network's constant weights and the vector it is given. Hidden units are raw
// weighted sums with no bias and no nonlinearity; output units are a strict
// threshold-OR over the hidden units they are connected to.
package network

import (
	"fmt"

	"github.com/nvandessel/gridnet/internal/constants"
	"github.com/nvandessel/gridnet/internal/models"
)

// WeightMatrix maps input index -> hidden index -> weight.
type WeightMatrix [][]int

// ConnectionMask marks which hidden units (rows) feed which output units (columns).
type ConnectionMask [][]bool

// Network holds the constant weights of the classifier.
type Network struct {
	weights WeightMatrix
	mask    ConnectionMask
}

// DefaultWeights returns the reference input-to-hidden weights.
// Hidden units detect, in order: left column, right column, top row, bottom row.
func DefaultWeights() WeightMatrix {
	return WeightMatrix{
		{1, 0, 1, 0}, // top-left
		{0, 1, 1, 0}, // top-right
		{1, 0, 0, 1}, // bottom-left
		{0, 1, 0, 1}, // bottom-right
	}
}

// DefaultMask returns the reference hidden-to-output connections.
// Row detectors feed output 0 ("一"), column detectors feed output 1 ("1").
func DefaultMask() ConnectionMask {
	return ConnectionMask{
		{false, true},
		{false, true},
		{true, false},
		{true, false},
	}
}

// Default returns the reference network.
func Default() *Network {
	return &Network{weights: DefaultWeights(), mask: DefaultMask()}
}

// New creates a network from the given weights and mask after validating
// their shapes. Weights must be binary. The inputs are copied.
func New(weights WeightMatrix, mask ConnectionMask) (*Network, error) {
	if err := validateWeights(weights); err != nil {
		return nil, err
	}
	if err := validateMask(mask); err != nil {
		return nil, err
	}

	n := &Network{
		weights: make(WeightMatrix, len(weights)),
		mask:    make(ConnectionMask, len(mask)),
	}
	for i, row := range weights {
		n.weights[i] = append([]int(nil), row...)
	}
	for h, row := range mask {
		n.mask[h] = append([]bool(nil), row...)
	}
	return n, nil
}

// Weight returns the input-to-hidden weight for (i, h).
func (n *Network) Weight(i, h int) int {
	return n.weights[i][h]
}

// Connected reports whether hidden unit h feeds output unit o.
func (n *Network) Connected(h, o int) bool {
	return n.mask[h][o]
}

// Weights returns a copy of the input-to-hidden weights.
func (n *Network) Weights() WeightMatrix {
	out := make(WeightMatrix, len(n.weights))
	for i, row := range n.weights {
		out[i] = append([]int(nil), row...)
	}
	return out
}

// Mask returns a copy of the hidden-to-output connection mask.
func (n *Network) Mask() ConnectionMask {
	out := make(ConnectionMask, len(n.mask))
	for h, row := range n.mask {
		out[h] = append([]bool(nil), row...)
	}
	return out
}

func validateWeights(w WeightMatrix) error {
	if len(w) != constants.CellCount {
		return &models.ShapeMismatchError{
			What: "weights",
			Want: fmt.Sprintf("%d rows", constants.CellCount),
			Got:  fmt.Sprintf("%d rows", len(w)),
		}
	}
	for i, row := range w {
		if len(row) != constants.HiddenCount {
			return &models.ShapeMismatchError{
				What: "weights",
				Want: fmt.Sprintf("%d columns", constants.HiddenCount),
				Got:  fmt.Sprintf("%d columns in row %d", len(row), i),
			}
		}
		for h, v := range row {
			if v != 0 && v != 1 {
				return &models.ShapeMismatchError{
					What: "weights",
					Want: "values in {0,1}",
					Got:  fmt.Sprintf("weights[%d][%d] = %d", i, h, v),
				}
			}
		}
	}
	return nil
}

func validateMask(m ConnectionMask) error {
	if len(m) != constants.HiddenCount {
		return &models.ShapeMismatchError{
			What: "mask",
			Want: fmt.Sprintf("%d rows", constants.HiddenCount),
			Got:  fmt.Sprintf("%d rows", len(m)),
		}
	}
	for h, row := range m {
		if len(row) != constants.OutputCount {
			return &models.ShapeMismatchError{
				What: "mask",
				Want: fmt.Sprintf("%d columns", constants.OutputCount),
				Got:  fmt.Sprintf("%d columns in row %d", len(row), h),
			}
		}
	}
	return nil
}
