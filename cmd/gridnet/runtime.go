package main

import (
	"fmt"
	"log/slog"

	"github.com/nvandessel/gridnet/internal/config"
	"github.com/nvandessel/gridnet/internal/logging"
	"github.com/nvandessel/gridnet/internal/session"
	"github.com/spf13/cobra"
)

// runtimeDeps holds what every session-driving command needs.
type runtimeDeps struct {
	cfg         *config.GridnetConfig
	logger      *slog.Logger
	transitions *logging.TransitionLogger
}

// loadRuntime loads and validates configuration and builds the loggers.
func loadRuntime(cmd *cobra.Command) (*runtimeDeps, error) {
	path, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	deps := &runtimeDeps{
		cfg:    cfg,
		logger: logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr()),
	}
	if dir, err := config.Dir(); err == nil {
		deps.transitions = logging.NewTransitionLogger(dir, cfg.Logging.Level)
	}
	return deps, nil
}

// newSession creates a session on the configured network.
func (d *runtimeDeps) newSession() (*session.State, error) {
	net, err := d.cfg.BuildNetwork()
	if err != nil {
		return nil, fmt.Errorf("build network: %w", err)
	}
	state := session.NewState(session.Config{
		Network:     net,
		Logger:      d.logger,
		Transitions: d.transitions,
	})
	d.logger.Debug("session created", "session", state.ID())
	return state, nil
}

// Close releases the transition log.
func (d *runtimeDeps) Close() {
	d.transitions.Close()
}
