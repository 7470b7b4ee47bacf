package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nvandessel/gridnet/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect gridnet configuration",
		Long: `View gridnet configuration settings.

Configuration is read from ~/.gridnet/config.yaml (or --config) and then
overridden by GRIDNET_LOG_LEVEL, GRIDNET_ADDR and GRIDNET_OPEN_BROWSER.

Examples:
  gridnet config list
  gridnet config list --json`,
	}

	cmd.AddCommand(newConfigListCmd())

	return cmd
}

func newConfigListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all configuration settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			path, _ := cmd.Flags().GetString("config")

			cfg, err := config.Load(path)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			net, err := cfg.BuildNetwork()
			if err != nil {
				return fmt.Errorf("invalid network: %w", err)
			}

			// Report the effective weights, not just the overrides.
			effective := *cfg
			effective.Network = config.NetworkConfig{
				InputToHidden:  net.Weights(),
				HiddenToOutput: net.Mask(),
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				return json.NewEncoder(out).Encode(effective)
			}

			fmt.Fprintln(out, "Logging Settings:")
			fmt.Fprintf(out, "  logging.level:        %s\n", valueOrDefault(cfg.Logging.Level, "info"))
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Server Settings:")
			fmt.Fprintf(out, "  server.addr:          %s\n", valueOrDefault(cfg.Server.Addr, "localhost:0"))
			fmt.Fprintf(out, "  server.open_browser:  %v\n", cfg.Server.OpenBrowser)
			fmt.Fprintln(out)
			fmt.Fprintf(out, "Network Settings (%s):\n", networkSource(cfg.Network))

			data, err := yaml.Marshal(effective.Network)
			if err != nil {
				return fmt.Errorf("marshal network: %w", err)
			}
			fmt.Fprint(out, indent(string(data), "  "))
			return nil
		},
	}
}

func networkSource(nc config.NetworkConfig) string {
	if len(nc.InputToHidden) == 0 && len(nc.HiddenToOutput) == 0 {
		return "reference"
	}
	return "overridden"
}

func valueOrDefault(value, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}

func indent(s, prefix string) string {
	s = strings.TrimRight(s, "\n")
	return prefix + strings.ReplaceAll(s, "\n", "\n"+prefix) + "\n"
}
