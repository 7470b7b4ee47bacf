// Package mcp provides an MCP (Model Context Protocol) server that lets an
// agent drive a gridnet session over stdio.
package mcp

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/nvandessel/gridnet/internal/logging"
	"github.com/nvandessel/gridnet/internal/session"
)

// Server wraps the MCP SDK server around a single session.
type Server struct {
	server *sdk.Server
	logger *slog.Logger

	// stateMu serializes tool calls; the session has no locking of its own.
	stateMu sync.Mutex
	state   *session.State
}

// Config holds server configuration.
type Config struct {
	Name    string // Server name (e.g., "gridnet")
	Version string // Server version

	// State is the session driven by tool calls. Default: a fresh session.
	State  *session.State
	Logger *slog.Logger
}

// NewServer creates a new MCP server with gridnet tools.
func NewServer(cfg *Config) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("nil config")
	}

	state := cfg.State
	if state == nil {
		state = session.NewState(session.DefaultConfig())
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	mcpServer := sdk.NewServer(&sdk.Implementation{
		Name:    cfg.Name,
		Version: cfg.Version,
	}, &sdk.ServerOptions{
		InitializedHandler: func(ctx context.Context, req *sdk.InitializedRequest) {
			logger.Debug("mcp client initialized", "session", state.ID())
		},
	})

	s := &Server{
		server: mcpServer,
		logger: logger,
		state:  state,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Run starts the MCP server over stdio transport.
// This blocks until the client disconnects or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	notifySignals(sigChan)

	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	s.logger.Debug("mcp server starting", "session", s.state.ID())
	return s.server.Run(ctx, &sdk.StdioTransport{})
}

// Snapshot returns the current session state.
func (s *Server) Snapshot() session.Snapshot {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	return s.state.Snapshot()
}
