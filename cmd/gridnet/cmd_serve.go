package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/nvandessel/gridnet/internal/visualization"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the interactive grid page on localhost",
		Long: `Start a local HTTP server with the interactive grid page.

Paint cells, then press Calculate twice: the first press reveals the hidden
layer, the second reveals the output layer and the label.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := loadRuntime(cmd)
			if err != nil {
				return err
			}
			defer deps.Close()

			if cmd.Flags().Changed("addr") {
				deps.cfg.Server.Addr, _ = cmd.Flags().GetString("addr")
				if err := deps.cfg.Validate(); err != nil {
					return fmt.Errorf("invalid --addr: %w", err)
				}
			}
			noOpen, _ := cmd.Flags().GetBool("no-open")

			state, err := deps.newSession()
			if err != nil {
				return err
			}

			srv := visualization.NewServer(state, deps.cfg.Server.Addr, deps.logger)
			return runViewServer(cmd, srv, !noOpen && deps.cfg.Server.OpenBrowser)
		},
	}

	cmd.Flags().String("addr", "", "Listen address (loopback only, default from config)")
	cmd.Flags().Bool("no-open", false, "Don't open browser after starting the server")

	return cmd
}

// runViewServer starts the view server and blocks until Ctrl-C.
func runViewServer(cmd *cobra.Command, srv *visualization.Server, openBrowser bool) error {
	srvCtx, srvCancel := context.WithCancel(cmd.Context())
	defer srvCancel()

	sigCh := make(chan os.Signal, 1)
	notifySignals(sigCh)

	go func() {
		select {
		case <-sigCh:
			srvCancel()
		case <-srvCtx.Done():
		}
	}()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe(srvCtx) }()

	// Wait for server to start
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if srv.Addr() != "" {
			break
		}
		select {
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		case <-time.After(10 * time.Millisecond):
		}
	}

	addr := srv.Addr()
	if addr == "" {
		return fmt.Errorf("server failed to start")
	}

	url := "http://" + addr
	fmt.Fprintf(cmd.OutOrStdout(), "Grid server running at %s\n", url)
	fmt.Fprintf(cmd.OutOrStdout(), "Press Ctrl-C to stop.\n")

	if openBrowser {
		if err := visualization.OpenBrowser(url); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Could not open browser: %v\nOpen %s manually.\n", err, url)
		}
	}

	// Block until server exits
	if err := <-errCh; err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
