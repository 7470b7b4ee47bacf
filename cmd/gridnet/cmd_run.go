package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/nvandessel/gridnet/internal/constants"
	"github.com/nvandessel/gridnet/internal/models"
	"github.com/nvandessel/gridnet/internal/session"
	"github.com/spf13/cobra"
)

// maxSteps is the number of activate presses needed to complete a reveal.
const maxSteps = 2

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <pattern>",
		Short: "Classify a pattern, printing each reveal step",
		Long: `Set the grid to a pattern and press activate up to --steps times.

The pattern lists cells in reading order: top-left, top-right,
bottom-left, bottom-right.

Examples:
  gridnet run 1100             # top row, full reveal
  gridnet run 1,0,1,0 --steps 1
  gridnet run 0101 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			steps, _ := cmd.Flags().GetInt("steps")

			deps, err := loadRuntime(cmd)
			if err != nil {
				return err
			}
			defer deps.Close()

			snaps, err := reveal(deps, args[0], steps)
			if err != nil {
				return err
			}

			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(snaps)
			}
			for i, snap := range snaps {
				printStep(cmd.OutOrStdout(), i, snap)
			}
			return nil
		},
	}

	cmd.Flags().Int("steps", maxSteps, "Activate presses to apply (0, 1 or 2)")

	return cmd
}

// reveal creates a session, sets the pattern and activates steps times.
// It returns the snapshot after the pattern is set followed by one per step.
func reveal(deps *runtimeDeps, raw string, steps int) ([]session.Snapshot, error) {
	if steps < 0 || steps > maxSteps {
		return nil, fmt.Errorf("--steps must be between 0 and %d, got %d", maxSteps, steps)
	}

	pattern, err := models.ParsePattern(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern: %w", err)
	}

	state, err := deps.newSession()
	if err != nil {
		return nil, err
	}

	snap, err := state.SetPattern(pattern)
	if err != nil {
		return nil, err
	}
	snaps := []session.Snapshot{snap}

	for i := 0; i < steps; i++ {
		snap, err := state.Activate()
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		snaps = append(snaps, snap)
	}
	return snaps, nil
}

func printStep(w io.Writer, step int, snap session.Snapshot) {
	fmt.Fprintf(w, "Step %d: %s [%s]\n", step, snap.Phase, snap.ActionCaption)
	if step == 0 {
		fmt.Fprint(w, snap.Pattern.Grid())
	}
	if len(snap.Hidden) > 0 && len(snap.Output) == 0 {
		for h, v := range snap.Hidden {
			fmt.Fprintf(w, "  %-18s %d (%s)\n", constants.HiddenUnitNames[h], v, snap.Highlights.Hidden[h])
		}
	}
	if len(snap.Output) > 0 {
		for o, v := range snap.Output {
			fmt.Fprintf(w, "  output %-11s %d\n", constants.OutputUnitNames[o], v)
		}
	}
	fmt.Fprintf(w, "  label: %s\n", snap.Label)
}
