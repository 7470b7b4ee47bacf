package main

import (
	"fmt"

	"github.com/nvandessel/gridnet/internal/mcp"
	"github.com/spf13/cobra"
)

func newMCPServerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp-server",
		Short: "Run an MCP server over stdio",
		Long: `Run a Model Context Protocol server on stdin/stdout so an agent can drive
a gridnet session with the gridnet_toggle, gridnet_paint, gridnet_activate,
gridnet_clear and gridnet_state tools.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := loadRuntime(cmd)
			if err != nil {
				return err
			}
			defer deps.Close()

			state, err := deps.newSession()
			if err != nil {
				return err
			}

			server, err := mcp.NewServer(&mcp.Config{
				Name:    "gridnet",
				Version: version,
				State:   state,
				Logger:  deps.logger,
			})
			if err != nil {
				return fmt.Errorf("failed to create MCP server: %w", err)
			}

			if err := server.Run(cmd.Context()); err != nil {
				return fmt.Errorf("MCP server error: %w", err)
			}
			return nil
		},
	}
}
