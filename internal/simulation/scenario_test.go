package simulation

import (
	"fmt"
	"testing"

	"github.com/nvandessel/gridnet/internal/models"
	"github.com/nvandessel/gridnet/internal/network"
)

var (
	idle     = models.PhaseIdle
	armed    = models.PhaseArmed
	hidden   = models.PhaseHiddenComputed
	complete = models.PhaseCompleted
)

func TestScenarios(t *testing.T) {
	tests := []struct {
		name   string
		steps  []Step
		phases []models.Phase
		label  models.Classification
	}{
		{
			name:   "top row is horizontal",
			steps:  []Step{Toggle(0), Toggle(1), Activate(), Activate()},
			phases: []models.Phase{armed, armed, hidden, complete},
			label:  models.ClassHorizontal,
		},
		{
			name:   "left column is vertical",
			steps:  []Step{Toggle(0), Toggle(2), Activate(), Activate()},
			phases: []models.Phase{armed, armed, hidden, complete},
			label:  models.ClassVertical,
		},
		{
			name:   "single cell stays below threshold",
			steps:  []Step{Toggle(0), Activate(), Activate()},
			phases: []models.Phase{armed, hidden, complete},
			label:  models.ClassAmbiguous,
		},
		{
			name:   "full grid fires both outputs",
			steps:  Reveal(models.Pattern{1, 1, 1, 1}),
			phases: []models.Phase{armed, hidden, complete},
			label:  models.ClassAmbiguous,
		},
		{
			name:   "edit after completion restarts the reveal",
			steps:  []Step{Toggle(2), Toggle(3), Activate(), Activate(), Toggle(3), Toggle(0), Activate(), Activate()},
			phases: []models.Phase{armed, armed, hidden, complete, armed, armed, hidden, complete},
			label:  models.ClassVertical,
		},
		{
			name:   "clearing mid reveal goes idle",
			steps:  []Step{Toggle(1), Activate(), Clear(), Clear()},
			phases: []models.Phase{armed, hidden, idle, idle},
			label:  "",
		},
		{
			name:   "drag paint only fills",
			steps:  []Step{Paint(0), Paint(0), Paint(1), Paint(0), Activate(), Activate()},
			phases: []models.Phase{armed, armed, armed, armed, hidden, complete},
			label:  models.ClassHorizontal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRunner(t)
			result := r.Run(Scenario{Name: tt.name, Steps: tt.steps})

			AssertNoErrors(t, result)
			AssertInvariants(t, result)
			AssertPhases(t, result, tt.phases...)
			AssertFinalLabel(t, result, tt.label)
		})
	}
}

func TestScenario_RejectedActions(t *testing.T) {
	r := NewRunner(t)
	result := r.Run(Scenario{
		Name: "rejections",
		Steps: []Step{
			Activate(), // idle
			Toggle(4),  // out of range
			Paint(-1),  // out of range
			Toggle(3),  // ok
			Activate(), // ok
			Activate(), // ok
			Activate(), // completed
			SetPattern(models.Pattern{0, 3, 0, 0}),
		},
	})

	AssertInvariants(t, result)

	var actionErr *models.InvalidActionError
	var rangeErr *models.OutOfRangeError
	var shapeErr *models.ShapeMismatchError
	AssertErrorAs(t, result, 0, &actionErr)
	AssertErrorAs(t, result, 1, &rangeErr)
	AssertErrorAs(t, result, 2, &rangeErr)
	AssertErrorAs(t, result, 6, &actionErr)
	AssertErrorAs(t, result, 7, &shapeErr)

	// Only the three successful steps notify the listener.
	AssertEmissions(t, result, 3)
}

func TestScenario_PaintNoOpEmitsNothing(t *testing.T) {
	r := NewRunner(t)
	result := r.Run(Scenario{
		Name:  "paint-no-op",
		Steps: []Step{Paint(2), Paint(2), Paint(2)},
	})

	AssertInvariants(t, result)
	AssertEmissions(t, result, 1)
	if result.Steps[1].Emitted != 0 || result.Steps[2].Emitted != 0 {
		t.Error("painting a filled cell should not emit")
	}
}

// TestExhaustive_AllPatterns reveals every pattern and checks each snapshot
// against a fresh recomputation.
func TestExhaustive_AllPatterns(t *testing.T) {
	r := NewRunner(t)

	for bits := 0; bits < 16; bits++ {
		p := models.Pattern{bits >> 3 & 1, bits >> 2 & 1, bits >> 1 & 1, bits & 1}
		result := r.Run(Scenario{Name: p.String(), Steps: Reveal(p)})

		AssertInvariants(t, result)
		if !p.HasInput() {
			var actionErr *models.InvalidActionError
			AssertErrorAs(t, result, 1, &actionErr)
			AssertErrorAs(t, result, 2, &actionErr)
			continue
		}
		AssertNoErrors(t, result)
		if result.Final().Classification == "" {
			t.Errorf("%s: no label after full reveal", p)
		}
	}
}

// TestExhaustive_EditAtEveryPhase toggles each cell at each phase of every
// reveal and checks that no stale activation survives.
func TestExhaustive_EditAtEveryPhase(t *testing.T) {
	r := NewRunner(t)

	for bits := 1; bits < 16; bits++ {
		p := models.Pattern{bits >> 3 & 1, bits >> 2 & 1, bits >> 1 & 1, bits & 1}
		for activations := 0; activations <= 2; activations++ {
			for cell := 0; cell < 4; cell++ {
				steps := []Step{SetPattern(p)}
				for i := 0; i < activations; i++ {
					steps = append(steps, Activate())
				}
				steps = append(steps, Toggle(cell), Activate(), Activate())

				name := fmt.Sprintf("%s/%d-activations/toggle-%d", p, activations, cell)
				result := r.Run(Scenario{Name: name, Steps: steps})
				AssertInvariants(t, result)

				edit := result.Steps[activations+1].Snapshot
				if len(edit.Hidden) != 0 || len(edit.Output) != 0 {
					t.Errorf("%s: activations survived the edit", name)
				}
			}
		}
	}
}

func TestScenario_CustomNetwork(t *testing.T) {
	// Every hidden unit feeds both outputs.
	mask := network.ConnectionMask{{true, true}, {true, true}, {true, true}, {true, true}}
	net, err := network.New(network.DefaultWeights(), mask)
	if err != nil {
		t.Fatalf("network.New: %v", err)
	}

	r := NewRunner(t)
	result := r.Run(Scenario{
		Name:    "fully-connected-output",
		Network: net,
		Steps:   Reveal(models.Pattern{1, 1, 0, 0}),
	})

	AssertNoErrors(t, result)
	AssertInvariants(t, result)
	AssertFinalLabel(t, result, models.ClassAmbiguous)
}
