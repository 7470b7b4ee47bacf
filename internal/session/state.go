// Package session holds the mutable state of one interactive classification
// session: the painted pattern, the reveal phase and the activations computed
// so far. It gates which inference step an action triggers.
//
// A State is a single-actor object with no internal locking. Callers that may
// receive actions concurrently must serialize them.
package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/nvandessel/gridnet/internal/constants"
	"github.com/nvandessel/gridnet/internal/logging"
	"github.com/nvandessel/gridnet/internal/models"
	"github.com/nvandessel/gridnet/internal/network"
)

// Listener receives the snapshot emitted after every successful action.
type Listener func(Snapshot)

// Config holds session dependencies. Zero values fall back to defaults.
type Config struct {
	// Network is the classifier. Default: network.Default().
	Network *network.Network

	// Logger receives operational logs. Default: discard.
	Logger *slog.Logger

	// Transitions receives one entry per action. May be nil.
	Transitions *logging.TransitionLogger

	// Listener is notified after every successful action. May be nil.
	Listener Listener
}

// DefaultConfig returns the default session configuration.
func DefaultConfig() Config {
	return Config{
		Network: network.Default(),
		Logger:  logging.Discard(),
	}
}

// State is one session's pattern, phase and computed activations.
type State struct {
	id          string
	net         *network.Network
	logger      *slog.Logger
	transitions *logging.TransitionLogger
	listener    Listener

	pattern models.Pattern
	phase   models.Phase
	hidden  models.HiddenActivations
	output  models.OutputActivations
	class   models.Classification
}

// NewState creates an idle session with an empty grid.
func NewState(cfg Config) *State {
	if cfg.Network == nil {
		cfg.Network = network.Default()
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Discard()
	}
	return &State{
		id:          uuid.NewString(),
		net:         cfg.Network,
		logger:      cfg.Logger,
		transitions: cfg.Transitions,
		listener:    cfg.Listener,
		phase:       models.PhaseIdle,
	}
}

// ID returns the session identifier.
func (s *State) ID() string { return s.id }

// Network returns the classifier this session runs.
func (s *State) Network() *network.Network { return s.net }

// Pattern returns a copy of the current pattern.
func (s *State) Pattern() models.Pattern { return s.pattern }

// Phase returns the current reveal phase.
func (s *State) Phase() models.Phase { return s.phase }

// SetListener replaces the state-change listener.
func (s *State) SetListener(l Listener) { s.listener = l }

// Toggle flips the cell at index and discards any computed activations.
func (s *State) Toggle(index int) (Snapshot, error) {
	if err := checkIndex(index); err != nil {
		return s.reject("toggle", err)
	}

	from := s.phase
	s.pattern[index] ^= 1
	s.invalidate()
	return s.commit("toggle", from), nil
}

// Paint fills the cell at index if it is empty. Painting a filled cell leaves
// the session untouched and emits nothing, so a drag across the grid only
// ever adds cells.
func (s *State) Paint(index int) (Snapshot, error) {
	if err := checkIndex(index); err != nil {
		return s.reject("paint", err)
	}
	if s.pattern[index] == 1 {
		return s.Snapshot(), nil
	}
	return s.Toggle(index)
}

// SetPattern replaces the whole pattern and discards any computed activations.
func (s *State) SetPattern(p models.Pattern) (Snapshot, error) {
	if _, err := models.PatternFromBits(p[:]); err != nil {
		return s.reject("set-pattern", err)
	}

	from := s.phase
	s.pattern = p
	s.invalidate()
	return s.commit("set-pattern", from), nil
}

// Clear empties the grid, discards all activations and returns to idle.
// It is idempotent and never fails.
func (s *State) Clear() Snapshot {
	from := s.phase
	s.pattern = models.Pattern{}
	s.invalidate()
	return s.commit("clear", from)
}

// Activate advances the reveal by one step: the first click computes the
// hidden layer, the second computes the output layer and the label.
// Activating an empty or completed session fails with *models.InvalidActionError
// and leaves the session unchanged.
func (s *State) Activate() (Snapshot, error) {
	from := s.phase

	switch s.phase {
	case models.PhaseIdle, models.PhaseCompleted:
		return s.reject("activate", &models.InvalidActionError{Action: "activate", Phase: s.phase})

	case models.PhaseArmed:
		hidden, err := s.net.ComputeHidden(s.pattern.Bits())
		if err != nil {
			return s.reject("activate", fmt.Errorf("compute hidden: %w", err))
		}
		s.hidden = hidden
		s.phase = models.PhaseHiddenComputed

	case models.PhaseHiddenComputed:
		output, err := s.net.ComputeOutput(s.hidden)
		if err != nil {
			return s.reject("activate", fmt.Errorf("compute output: %w", err))
		}
		class, err := network.Classify(output)
		if err != nil {
			return s.reject("activate", fmt.Errorf("classify: %w", err))
		}
		s.output = output
		s.class = class
		s.phase = models.PhaseCompleted

	default:
		return s.reject("activate", fmt.Errorf("unknown phase %d", int(s.phase)))
	}

	return s.commit("activate", from), nil
}

// invalidate drops computed activations and re-derives the phase from the pattern.
func (s *State) invalidate() {
	s.hidden = nil
	s.output = nil
	s.class = ""
	if s.pattern.HasInput() {
		s.phase = models.PhaseArmed
	} else {
		s.phase = models.PhaseIdle
	}
}

// commit records a successful action, notifies the listener and returns the snapshot.
func (s *State) commit(action string, from models.Phase) Snapshot {
	snap := s.Snapshot()

	s.logger.Debug("session action",
		"session", s.id,
		"action", action,
		"from", from.String(),
		"to", s.phase.String(),
		"pattern", s.pattern.String())
	s.logger.Log(context.Background(), logging.LevelTrace, "snapshot emitted", "session", s.id, "snapshot", snap)

	s.transitions.Log(logging.Transition{
		SessionID:      s.id,
		Action:         action,
		From:           from.String(),
		To:             s.phase.String(),
		Pattern:        s.pattern.String(),
		Classification: string(s.class),
	})

	if s.listener != nil {
		s.listener(snap)
	}
	return snap
}

// reject records a failed action and returns the unchanged snapshot with err.
func (s *State) reject(action string, err error) (Snapshot, error) {
	s.logger.Debug("session action rejected", "session", s.id, "action", action, "phase", s.phase.String(), "error", err)
	s.transitions.Log(logging.Transition{
		SessionID: s.id,
		Action:    action,
		From:      s.phase.String(),
		To:        s.phase.String(),
		Pattern:   s.pattern.String(),
		Error:     err.Error(),
	})
	return s.Snapshot(), err
}

func checkIndex(index int) error {
	if index < 0 || index >= constants.CellCount {
		return &models.OutOfRangeError{Index: index, Limit: constants.CellCount}
	}
	return nil
}
