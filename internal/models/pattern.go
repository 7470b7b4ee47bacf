// Package models defines the core data types for gridnet: the input pattern,
// layer activations, interaction phases, classifications and error kinds.
package models

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nvandessel/gridnet/internal/constants"
)

// Pattern is the 2×2 grid state, one bit per cell.
// Indices: top-left=0, top-right=1, bottom-left=2, bottom-right=3.
type Pattern [constants.CellCount]int

// HasInput reports whether any cell is filled.
func (p Pattern) HasInput() bool {
	for _, b := range p {
		if b == 1 {
			return true
		}
	}
	return false
}

// Bits returns the pattern as a freshly allocated slice.
func (p Pattern) Bits() []int {
	out := make([]int, len(p))
	copy(out, p[:])
	return out
}

// Filled returns the indices of filled cells in ascending order.
func (p Pattern) Filled() []int {
	out := make([]int, 0, len(p))
	for i, b := range p {
		if b == 1 {
			out = append(out, i)
		}
	}
	return out
}

// String renders the pattern as a bit string, e.g. "1100".
func (p Pattern) String() string {
	var b strings.Builder
	for _, bit := range p {
		b.WriteString(strconv.Itoa(bit))
	}
	return b.String()
}

// Grid renders the pattern as two rows using '#' for filled and '.' for empty cells.
func (p Pattern) Grid() string {
	cell := func(i int) byte {
		if p[i] == 1 {
			return '#'
		}
		return '.'
	}
	return fmt.Sprintf("%c%c\n%c%c\n", cell(0), cell(1), cell(2), cell(3))
}

// PatternFromBits builds a Pattern from a slice, validating length and bit values.
func PatternFromBits(bits []int) (Pattern, error) {
	var p Pattern
	if len(bits) != len(p) {
		return p, &ShapeMismatchError{
			What: "pattern",
			Want: fmt.Sprintf("length %d", len(p)),
			Got:  fmt.Sprintf("length %d", len(bits)),
		}
	}
	for i, b := range bits {
		if b != 0 && b != 1 {
			return Pattern{}, &ShapeMismatchError{
				What: "pattern",
				Want: "elements in {0,1}",
				Got:  fmt.Sprintf("element %d = %d", i, b),
			}
		}
		p[i] = b
	}
	return p, nil
}

// ParsePattern parses a pattern written as "1100", "1,1,0,0" or "1 1 0 0".
func ParsePattern(s string) (Pattern, error) {
	cleaned := strings.NewReplacer(",", "", " ", "", "\t", "").Replace(strings.TrimSpace(s))
	bits := make([]int, 0, len(cleaned))
	for i, r := range cleaned {
		switch r {
		case '0':
			bits = append(bits, 0)
		case '1':
			bits = append(bits, 1)
		default:
			return Pattern{}, &ShapeMismatchError{
				What: "pattern",
				Want: "characters in {0,1}",
				Got:  fmt.Sprintf("%q at position %d", r, i),
			}
		}
	}
	return PatternFromBits(bits)
}
