package session

import (
	"github.com/nvandessel/gridnet/internal/models"
	"github.com/nvandessel/gridnet/internal/projection"
)

// Snapshot is an immutable copy of a session's state plus the derived
// highlights a view renders.
type Snapshot struct {
	SessionID      string                   `json:"session_id"`
	Pattern        models.Pattern           `json:"pattern"`
	Phase          models.Phase             `json:"phase"`
	Hidden         models.HiddenActivations `json:"hidden"`
	Output         models.OutputActivations `json:"output"`
	Classification models.Classification    `json:"classification,omitempty"`
	Label          string                   `json:"label"`
	ActionEnabled  bool                     `json:"action_enabled"`
	ActionCaption  string                   `json:"action_caption"`
	Highlights     projection.Highlights    `json:"highlights"`
}

// Snapshot returns the current state. Hidden and Output are empty until computed.
func (s *State) Snapshot() Snapshot {
	hidden := make(models.HiddenActivations, len(s.hidden))
	copy(hidden, s.hidden)
	output := make(models.OutputActivations, len(s.output))
	copy(output, s.output)

	return Snapshot{
		SessionID:      s.id,
		Pattern:        s.pattern,
		Phase:          s.phase,
		Hidden:         hidden,
		Output:         output,
		Classification: s.class,
		Label:          s.class.Display(),
		ActionEnabled:  s.phase.ActionEnabled(),
		ActionCaption:  s.phase.Caption(),
		Highlights: projection.Project(s.net, projection.Input{
			Pattern: s.pattern,
			Phase:   s.phase,
			Hidden:  hidden,
			Output:  output,
		}),
	}
}
