// Package simulation provides a scripted-session test harness for validating
// the reveal protocol end to end.
//
// The harness drives a real session.State on a real network with no mocks.
// Scenarios are ordered lists of view actions. The runner records the
// snapshot, error and listener emissions of every step so tests can make
// property-based assertions over the whole run.
//
// Usage:
//
//	func TestTopRow(t *testing.T) {
//	    r := simulation.NewRunner(t)
//	    result := r.Run(simulation.Scenario{
//	        Name:  "top-row",
//	        Steps: []simulation.Step{simulation.Toggle(0), simulation.Toggle(1), simulation.Activate(), simulation.Activate()},
//	    })
//	    simulation.AssertFinalLabel(t, result, models.ClassHorizontal)
//	    simulation.AssertInvariants(t, result)
//	}
package simulation
