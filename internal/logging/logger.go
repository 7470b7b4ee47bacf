// Package logging provides leveled logging and transition tracing for gridnet.
// It offers two complementary outputs:
//   - A leveled slog.Logger for stderr (operational output)
//   - A TransitionLogger for structured JSONL phase transitions (~/.gridnet/transitions.jsonl)
package logging

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// LevelTrace is a custom slog level below Debug.
// At this level every emitted snapshot is logged in full.
const LevelTrace = slog.LevelDebug - 4

// ParseLevel maps a string level name to a slog.Level.
// Supported values: "info", "debug", "trace" (case-insensitive).
// Unknown values default to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "trace":
		return LevelTrace
	default:
		return slog.LevelInfo
	}
}

// NewLogger creates a leveled slog.Logger writing to w.
func NewLogger(level string, w io.Writer) *slog.Logger {
	lvl := ParseLevel(level)
	opts := &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == LevelTrace {
					a.Value = slog.StringValue("TRACE")
				}
			}
			return a
		},
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Discard returns a logger that drops everything. Used as the default when
// no logger is configured.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Transition is one phase change caused by a session action.
type Transition struct {
	SessionID      string `json:"session_id"`
	Action         string `json:"action"`
	From           string `json:"from"`
	To             string `json:"to"`
	Pattern        string `json:"pattern"`
	Classification string `json:"classification,omitempty"`
	Error          string `json:"error,omitempty"`
}

// TransitionLogger writes phase transitions to a JSONL file.
// It is safe for concurrent use. A nil TransitionLogger is safe to use;
// all methods are no-ops on nil receiver.
type TransitionLogger struct {
	mu   sync.Mutex
	file *os.File
}

// NewTransitionLogger creates a transition logger writing to dir/transitions.jsonl.
// At "info" level (the default), returns nil and no file is created.
// At "debug" or "trace" level, the file is opened for append.
// Returns nil if the file cannot be opened. All methods are nil-safe.
func NewTransitionLogger(dir string, level string) *TransitionLogger {
	if ParseLevel(level) == slog.LevelInfo {
		return nil
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil
	}

	path := filepath.Join(dir, "transitions.jsonl")
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil
	}

	return &TransitionLogger{file: f}
}

// Log writes a transition as a single JSONL line with a "time" field.
// Safe to call on nil receiver.
func (tl *TransitionLogger) Log(t Transition) {
	if tl == nil || tl.file == nil {
		return
	}

	entry := struct {
		Time string `json:"time"`
		Transition
	}{
		Time:       time.Now().UTC().Format(time.RFC3339Nano),
		Transition: t,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	data = append(data, '\n')

	tl.mu.Lock()
	defer tl.mu.Unlock()
	if tl.file == nil {
		return
	}
	_, _ = tl.file.Write(data)
}

// Close closes the underlying file. Safe to call on nil receiver.
func (tl *TransitionLogger) Close() {
	if tl == nil {
		return
	}

	tl.mu.Lock()
	defer tl.mu.Unlock()

	if tl.file != nil {
		tl.file.Close()
		tl.file = nil
	}
}
