package compass

import "fmt"

// Phase is one stage of the memory-processing flow. The flow is linear and
// entirely backend-driven: the client only mirrors the value reported by the
// most recent server response and never computes a transition itself.
type Phase string

const (
	PhaseExternalize Phase = "externalize"
	PhaseReframe     Phase = "reframe"
	PhaseDistance    Phase = "distance"
	PhaseRelease     Phase = "release"
)

// Phases lists the stages in flow order.
var Phases = []Phase{PhaseExternalize, PhaseReframe, PhaseDistance, PhaseRelease}

// Rank returns the position of p in the flow, or -1 for unknown values.
// Ranks back the never-regress invariant: a later reported phase is adopted,
// an earlier one never overrides it.
func (p Phase) Rank() int {
	for i, ph := range Phases {
		if p == ph {
			return i
		}
	}
	return -1
}

// ParsePhase converts a wire value into a Phase. Unknown strings are
// rejected rather than silently defaulted.
func ParsePhase(s string) (Phase, error) {
	p := Phase(s)
	if p.Rank() < 0 {
		return "", fmt.Errorf("unknown phase %q: %w", s, ErrValidation)
	}
	return p, nil
}
