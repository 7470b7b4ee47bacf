package network

import (
	"fmt"

	"github.com/nvandessel/gridnet/internal/constants"
	"github.com/nvandessel/gridnet/internal/models"
)

// ComputeHidden returns, for each hidden unit h, the sum over inputs i of
// pattern[i] * weights[i][h]. The sum is returned as-is.
func (n *Network) ComputeHidden(pattern []int) (models.HiddenActivations, error) {
	if _, err := models.PatternFromBits(pattern); err != nil {
		return nil, err
	}

	hidden := make(models.HiddenActivations, constants.HiddenCount)
	for h := range hidden {
		sum := 0
		for i, in := range pattern {
			sum += in * n.weights[i][h]
		}
		hidden[h] = sum
	}
	return hidden, nil
}

// ComputeOutput returns 1 for each output unit that has at least one connected
// hidden unit whose activation is strictly greater than OutputFireThreshold.
func (n *Network) ComputeOutput(hidden []int) (models.OutputActivations, error) {
	if len(hidden) != constants.HiddenCount {
		return nil, &models.ShapeMismatchError{
			What: "hidden",
			Want: fmt.Sprintf("length %d", constants.HiddenCount),
			Got:  fmt.Sprintf("length %d", len(hidden)),
		}
	}

	output := make(models.OutputActivations, constants.OutputCount)
	for o := range output {
		for h, act := range hidden {
			if n.mask[h][o] && act > constants.OutputFireThreshold {
				output[o] = 1
				break
			}
		}
	}
	return output, nil
}

// Classify maps the output bits to a label. Both-fire and neither-fire share
// the ambiguous label.
func Classify(output []int) (models.Classification, error) {
	if len(output) != constants.OutputCount {
		return "", &models.ShapeMismatchError{
			What: "output",
			Want: fmt.Sprintf("length %d", constants.OutputCount),
			Got:  fmt.Sprintf("length %d", len(output)),
		}
	}

	switch {
	case output[0] == 1 && output[1] == 0:
		return models.ClassHorizontal, nil
	case output[0] == 0 && output[1] == 1:
		return models.ClassVertical, nil
	case output[0] == 1 && output[1] == 1:
		return models.ClassAmbiguous, nil
	case output[0] == 0 && output[1] == 0:
		return models.ClassAmbiguous, nil
	default:
		return "", &models.ShapeMismatchError{
			What: "output",
			Want: "elements in {0,1}",
			Got:  fmt.Sprintf("%v", output),
		}
	}
}

// Result is a complete forward pass.
type Result struct {
	Pattern        models.Pattern           `json:"pattern"`
	Hidden         models.HiddenActivations `json:"hidden"`
	Output         models.OutputActivations `json:"output"`
	Classification models.Classification    `json:"classification"`
}

// Forward runs both layers and classifies in one call. Interactive sessions
// step through the layers one click at a time instead.
func (n *Network) Forward(pattern models.Pattern) (Result, error) {
	hidden, err := n.ComputeHidden(pattern.Bits())
	if err != nil {
		return Result{}, fmt.Errorf("compute hidden: %w", err)
	}
	output, err := n.ComputeOutput(hidden)
	if err != nil {
		return Result{}, fmt.Errorf("compute output: %w", err)
	}
	class, err := Classify(output)
	if err != nil {
		return Result{}, fmt.Errorf("classify: %w", err)
	}
	return Result{
		Pattern:        pattern,
		Hidden:         hidden,
		Output:         output,
		Classification: class,
	}, nil
}
