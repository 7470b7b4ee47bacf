package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0-dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gridnet",
		Short: "Two-by-two pixel grid line classifier",
		Long: `gridnet classifies a painted 2x2 pixel pattern as a horizontal ("一") or
vertical ("1") line with a fixed 4-4-2 network, revealing the hidden and
output layers one step at a time.`,
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON (for agent consumption)")
	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.gridnet/config.yaml)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newServeCmd(),
		newMCPServerCmd(),
		newRunCmd(),
		newGraphCmd(),
		newConfigCmd(),
	)

	return rootCmd
}
