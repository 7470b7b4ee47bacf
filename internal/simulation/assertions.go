package simulation

import (
	"errors"
	"reflect"
	"testing"

	"github.com/nvandessel/gridnet/internal/models"
	"github.com/nvandessel/gridnet/internal/network"
	"github.com/nvandessel/gridnet/internal/projection"
	"github.com/nvandessel/gridnet/internal/session"
)

// AssertInvariants checks every step of a run against the protocol rules:
// failed steps change nothing and emit nothing, and every snapshot is
// internally consistent with its pattern and phase.
func AssertInvariants(t *testing.T, result Result) {
	t.Helper()
	for _, sr := range result.Steps {
		if sr.Err != nil {
			if !reflect.DeepEqual(sr.Before, sr.Snapshot) {
				t.Errorf("%s: step %d %s: failed step changed state", result.Name, sr.Index, sr.Step)
			}
			if sr.Emitted != 0 {
				t.Errorf("%s: step %d %s: failed step emitted %d snapshots", result.Name, sr.Index, sr.Step, sr.Emitted)
			}
			continue
		}

		switch {
		case sr.Emitted > 1:
			t.Errorf("%s: step %d %s: emitted %d snapshots, want at most 1", result.Name, sr.Index, sr.Step, sr.Emitted)
		case sr.Emitted == 0 && !reflect.DeepEqual(sr.Before, sr.Snapshot):
			t.Errorf("%s: step %d %s: state changed without an emission", result.Name, sr.Index, sr.Step)
		}

		checkSnapshot(t, result, sr)
	}
}

// checkSnapshot verifies one snapshot's internal consistency.
func checkSnapshot(t *testing.T, result Result, sr StepResult) {
	t.Helper()
	snap := sr.Snapshot
	where := func(format string, args ...interface{}) {
		t.Helper()
		prefix := []interface{}{result.Name, sr.Index, sr.Step}
		t.Errorf("%s: step %d %s: "+format, append(prefix, args...)...)
	}

	if snap.Pattern.HasInput() == (snap.Phase == models.PhaseIdle) {
		where("phase %s inconsistent with pattern %s", snap.Phase, snap.Pattern)
	}
	if got, want := len(snap.Hidden) > 0, snap.Phase.HiddenComputed(); got != want {
		where("hidden %v present=%v in phase %s", snap.Hidden, got, snap.Phase)
	}
	completed := snap.Phase == models.PhaseCompleted
	if got := len(snap.Output) > 0; got != completed {
		where("output %v present=%v in phase %s", snap.Output, got, snap.Phase)
	}
	if got := snap.Classification != ""; got != completed {
		where("classification %q present=%v in phase %s", snap.Classification, got, snap.Phase)
	}
	if snap.ActionEnabled != snap.Phase.ActionEnabled() {
		where("action enabled = %v in phase %s", snap.ActionEnabled, snap.Phase)
	}
	if snap.Highlights.Label != completed {
		where("label highlight = %v in phase %s", snap.Highlights.Label, snap.Phase)
	}

	if snap.Phase.HiddenComputed() {
		want, err := result.Network.ComputeHidden(snap.Pattern.Bits())
		if err != nil {
			where("recompute hidden: %v", err)
		} else if !reflect.DeepEqual(snap.Hidden, want) {
			where("stale hidden %v, pattern %s gives %v", snap.Hidden, snap.Pattern, want)
		}
	} else {
		for h, lvl := range snap.Highlights.Hidden {
			if lvl != projection.LevelNone {
				where("hidden %d highlighted %s before the hidden step", h, lvl)
			}
		}
	}

	if completed {
		checkOutput(t, result.Network, snap, where)
	}
}

func checkOutput(t *testing.T, net *network.Network, snap session.Snapshot, where func(string, ...interface{})) {
	t.Helper()
	want, err := net.ComputeOutput(snap.Hidden)
	if err != nil {
		where("recompute output: %v", err)
		return
	}
	if !reflect.DeepEqual(snap.Output, want) {
		where("output %v, hidden %v gives %v", snap.Output, snap.Hidden, want)
	}
	class, err := network.Classify(snap.Output)
	if err != nil {
		where("classify: %v", err)
		return
	}
	if snap.Classification != class {
		where("classification %q, output gives %q", snap.Classification, class)
	}
}

// AssertPhases asserts the phase after each step.
func AssertPhases(t *testing.T, result Result, want ...models.Phase) {
	t.Helper()
	if len(want) != len(result.Steps) {
		t.Fatalf("AssertPhases: %d phases for %d steps", len(want), len(result.Steps))
	}
	for i, sr := range result.Steps {
		if sr.Snapshot.Phase != want[i] {
			t.Errorf("AssertPhases: %s: step %d %s: phase %s, want %s", result.Name, i, sr.Step, sr.Snapshot.Phase, want[i])
		}
	}
}

// AssertErrorAs asserts that step index failed with an error matching target,
// which must be a pointer to an error type as for errors.As.
func AssertErrorAs(t *testing.T, result Result, index int, target interface{}) {
	t.Helper()
	sr := result.Steps[index]
	if sr.Err == nil {
		t.Errorf("AssertErrorAs: %s: step %d %s succeeded, want error", result.Name, index, sr.Step)
		return
	}
	if !errors.As(sr.Err, target) {
		t.Errorf("AssertErrorAs: %s: step %d %s: error %v has wrong type", result.Name, index, sr.Step, sr.Err)
	}
}

// AssertNoErrors asserts that every step succeeded.
func AssertNoErrors(t *testing.T, result Result) {
	t.Helper()
	for _, sr := range result.Steps {
		if sr.Err != nil {
			t.Errorf("AssertNoErrors: %s: step %d %s: %v", result.Name, sr.Index, sr.Step, sr.Err)
		}
	}
}

// AssertFinalLabel asserts the classification after the last step.
func AssertFinalLabel(t *testing.T, result Result, want models.Classification) {
	t.Helper()
	if got := result.Final().Classification; got != want {
		t.Errorf("AssertFinalLabel: %s: classification %q, want %q", result.Name, got, want)
	}
}

// AssertEmissions asserts the total number of listener notifications.
func AssertEmissions(t *testing.T, result Result, want int) {
	t.Helper()
	if got := len(result.Emitted); got != want {
		t.Errorf("AssertEmissions: %s: %d snapshots emitted, want %d", result.Name, got, want)
	}
}
