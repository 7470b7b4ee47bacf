package network

import (
	"errors"
	"testing"

	"github.com/nvandessel/gridnet/internal/models"
)

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name    string
		weights WeightMatrix
		mask    ConnectionMask
		wantErr bool
	}{
		{"defaults", DefaultWeights(), DefaultMask(), false},
		{"missing weight row", DefaultWeights()[:3], DefaultMask(), true},
		{"short weight row", WeightMatrix{{1, 0, 1}, {0, 1, 1, 0}, {1, 0, 0, 1}, {0, 1, 0, 1}}, DefaultMask(), true},
		{"non-binary weight", WeightMatrix{{2, 0, 1, 0}, {0, 1, 1, 0}, {1, 0, 0, 1}, {0, 1, 0, 1}}, DefaultMask(), true},
		{"missing mask row", DefaultWeights(), DefaultMask()[:2], true},
		{"wide mask row", DefaultWeights(), ConnectionMask{{true, false, true}, {false, true}, {true, false}, {true, false}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := New(tt.weights, tt.mask)
			if tt.wantErr {
				var shapeErr *models.ShapeMismatchError
				if !errors.As(err, &shapeErr) {
					t.Fatalf("New() error = %v, want *ShapeMismatchError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("New() unexpected error: %v", err)
			}
			if n == nil {
				t.Fatal("New() returned nil network")
			}
		})
	}
}

func TestNew_CopiesInputs(t *testing.T) {
	w := DefaultWeights()
	m := DefaultMask()
	n, err := New(w, m)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	w[0][0] = 0
	m[0][1] = false

	if n.Weight(0, 0) != 1 {
		t.Error("network weights changed after caller mutated input")
	}
	if !n.Connected(0, 1) {
		t.Error("network mask changed after caller mutated input")
	}
}

func TestAccessors_ReturnCopies(t *testing.T) {
	n := Default()

	w := n.Weights()
	w[1][1] = 0
	if n.Weight(1, 1) != 1 {
		t.Error("Weights() must return a copy")
	}

	m := n.Mask()
	m[2][0] = false
	if !n.Connected(2, 0) {
		t.Error("Mask() must return a copy")
	}
}

func TestDefaultMask_RowsAreOneHot(t *testing.T) {
	for h, row := range DefaultMask() {
		count := 0
		for _, c := range row {
			if c {
				count++
			}
		}
		if count != 1 {
			t.Errorf("mask row %d has %d connections, want 1", h, count)
		}
	}
}
