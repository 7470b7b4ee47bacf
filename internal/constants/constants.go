// Package constants provides named constants used throughout the gridnet codebase.
// This centralizes network dimensions, thresholds and display strings.
package constants

// Network dimensions. The network is a fixed 4-4-2 feed-forward net over a 2×2 grid.
const (
	// CellCount is the number of grid cells and input units.
	// Indices: top-left=0, top-right=1, bottom-left=2, bottom-right=3.
	CellCount = 4

	// HiddenCount is the number of hidden units.
	HiddenCount = 4

	// OutputCount is the number of output units.
	OutputCount = 2
)

// Activation thresholds.
const (
	// OutputFireThreshold is the value a connected hidden sum must strictly exceed
	// for its output unit to fire. A sum of exactly 1 does not fire.
	OutputFireThreshold = 1

	// FullLevelThreshold is the minimum hidden sum displayed as fully activated.
	// Sums of 1 up to this value are displayed as partially activated.
	FullLevelThreshold = 2
)

// Classification labels.
const (
	// LabelHorizontal is shown when only output 0 fires.
	LabelHorizontal = "一"

	// LabelVertical is shown when only output 1 fires.
	LabelVertical = "1"

	// LabelAmbiguous is shown when both outputs fire and when neither does.
	LabelAmbiguous = "一 or 1"

	// LabelPending is shown in place of a label before the output layer is computed.
	LabelPending = "?"
)

// Action button captions, one per interaction phase.
const (
	CaptionReady     = "Ready"
	CaptionCalculate = "Calculate"
	CaptionComplete  = "Complete"
)

// HiddenUnitNames are display names for the hidden units, in index order.
// Each hidden unit detects one line of the grid.
var HiddenUnitNames = [HiddenCount]string{
	"left-vertical",
	"right-vertical",
	"top-horizontal",
	"bottom-horizontal",
}

// OutputUnitNames are display names for the output units, in index order.
var OutputUnitNames = [OutputCount]string{
	`"一"`,
	`"1"`,
}

// CellNames are display names for the grid cells, in index order.
var CellNames = [CellCount]string{
	"top-left",
	"top-right",
	"bottom-left",
	"bottom-right",
}
