package main

import (
	"encoding/json"
	"fmt"

	"github.com/nvandessel/gridnet/internal/visualization"
	"github.com/spf13/cobra"
)

func newGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph <pattern>",
		Short: "Render the network for a pattern",
		Long: `Output the network in DOT (Graphviz) or JSON format with the highlights
for a pattern after --steps activate presses.

Examples:
  gridnet graph 1100 | dot -Tsvg > top-row.svg
  gridnet graph 1010 --steps 1 --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatName, _ := cmd.Flags().GetString("format")
			steps, _ := cmd.Flags().GetInt("steps")

			format, err := visualization.ParseFormat(formatName)
			if err != nil {
				return err
			}

			deps, err := loadRuntime(cmd)
			if err != nil {
				return err
			}
			defer deps.Close()

			snaps, err := reveal(deps, args[0], steps)
			if err != nil {
				return err
			}
			snap := snaps[len(snaps)-1]

			net, err := deps.cfg.BuildNetwork()
			if err != nil {
				return fmt.Errorf("build network: %w", err)
			}

			switch format {
			case visualization.FormatJSON:
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(visualization.RenderJSON(net, snap)); err != nil {
					return fmt.Errorf("encode JSON: %w", err)
				}
			default:
				fmt.Fprint(cmd.OutOrStdout(), visualization.RenderDOT(net, snap))
			}
			return nil
		},
	}

	cmd.Flags().String("format", "dot", "Output format: dot or json")
	cmd.Flags().Int("steps", maxSteps, "Activate presses to apply before rendering (0, 1 or 2)")

	return cmd
}
