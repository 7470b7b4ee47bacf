package visualization

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/nvandessel/gridnet/internal/logging"
	"github.com/nvandessel/gridnet/internal/models"
	"github.com/nvandessel/gridnet/internal/session"
)

// DefaultAddr lets the OS pick a free loopback port.
const DefaultAddr = "localhost:0"

// Server serves the interactive grid page and forwards view actions to a session.
// The session itself has no locking, so every request holds stateMu for the
// whole action.
type Server struct {
	state      *session.State
	logger     *slog.Logger
	listenAddr string

	stateMu sync.Mutex

	httpServer *http.Server
	listener   net.Listener
	mu         sync.Mutex
	addr       string
}

// NewServer creates a view server for state. An empty listenAddr uses DefaultAddr.
func NewServer(state *session.State, listenAddr string, logger *slog.Logger) *Server {
	if listenAddr == "" {
		listenAddr = DefaultAddr
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Server{
		state:      state,
		logger:     logger,
		listenAddr: listenAddr,
	}
}

// Addr returns the address the server is listening on (e.g., "localhost:PORT").
// Returns empty string if the server hasn't started yet.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// Handler returns the HTTP routes served by the view.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/api/state", s.handleState)
	mux.HandleFunc("/api/toggle", s.handleCellAction(s.state.Toggle))
	mux.HandleFunc("/api/paint", s.handleCellAction(s.state.Paint))
	mux.HandleFunc("/api/activate", s.handleActivate)
	mux.HandleFunc("/api/clear", s.handleClear)
	mux.HandleFunc("/api/graph", s.handleGraph)
	return mux
}

// ListenAndServe starts the HTTP server and blocks until the context is
// cancelled. Returns nil on clean shutdown.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.listenAddr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	s.mu.Lock()
	s.listener = ln
	s.addr = ln.Addr().String()
	s.httpServer = &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 10 * time.Second}
	s.mu.Unlock()

	s.logger.Debug("view server listening", "addr", s.Addr(), "session", s.state.ID())

	// Graceful shutdown when context is cancelled.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.httpServer.Shutdown(shutdownCtx)
	}()

	err = s.httpServer.Serve(ln)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// handleIndex serves the grid page with the current snapshot embedded.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	html, err := RenderHTML(s.snapshot())
	if err != nil {
		http.Error(w, "render error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(html)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	writeJSON(w, http.StatusOK, s.snapshot())
}

// handleCellAction adapts a per-cell session action to a POST ?cell=i endpoint.
func (s *Server) handleCellAction(action func(int) (session.Snapshot, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			methodNotAllowed(w, http.MethodPost)
			return
		}
		raw := r.URL.Query().Get("cell")
		if raw == "" {
			writeError(w, http.StatusBadRequest, errors.New("missing 'cell' query parameter"))
			return
		}
		cell, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid cell %q: %w", raw, err))
			return
		}

		s.stateMu.Lock()
		snap, err := action(cell)
		s.stateMu.Unlock()

		s.respond(w, snap, err)
	}
}

func (s *Server) handleActivate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	s.stateMu.Lock()
	snap, err := s.state.Activate()
	s.stateMu.Unlock()

	s.respond(w, snap, err)
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	s.stateMu.Lock()
	snap := s.state.Clear()
	s.stateMu.Unlock()

	writeJSON(w, http.StatusOK, snap)
}

// handleGraph renders the network with the current highlights.
func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	format, err := ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	snap := s.snapshot()
	switch format {
	case FormatJSON:
		writeJSON(w, http.StatusOK, RenderJSON(s.state.Network(), snap))
	default:
		w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
		w.Write([]byte(RenderDOT(s.state.Network(), snap)))
	}
}

func (s *Server) snapshot() session.Snapshot {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	return s.state.Snapshot()
}

// respond writes the snapshot, or maps a session error to an HTTP status.
func (s *Server) respond(w http.ResponseWriter, snap session.Snapshot, err error) {
	if err != nil {
		s.logger.Debug("view action failed", "session", snap.SessionID, "error", err)
		writeError(w, StatusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// StatusFor maps a session error to the HTTP status reported to the view.
func StatusFor(err error) int {
	var (
		rangeErr  *models.OutOfRangeError
		shapeErr  *models.ShapeMismatchError
		actionErr *models.InvalidActionError
	)
	switch {
	case errors.As(err, &rangeErr), errors.As(err, &shapeErr):
		return http.StatusBadRequest
	case errors.As(err, &actionErr):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func methodNotAllowed(w http.ResponseWriter, allow string) {
	w.Header().Set("Allow", allow)
	writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed, use %s", allow))
}
