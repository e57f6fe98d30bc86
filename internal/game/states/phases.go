package states

import "fmt"

// GamePhase represents the current phase of a session
type GamePhase int

const (
	// PhaseInitializing - Engine and map creation
	PhaseInitializing GamePhase = iota

	// PhaseRunning - Simulation ticks are processed
	PhaseRunning

	// PhaseWon - The opponent lost its last command center
	PhaseWon

	// PhaseLost - The human lost its last command center
	PhaseLost

	// PhaseReset - Map, pools and planner are being rebuilt
	PhaseReset
)

// String returns the string representation of a GamePhase
func (p GamePhase) String() string {
	switch p {
	case PhaseInitializing:
		return "Initializing"
	case PhaseRunning:
		return "Running"
	case PhaseWon:
		return "Won"
	case PhaseLost:
		return "Lost"
	case PhaseReset:
		return "Reset"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

// IsTerminal returns true once the game has a verdict
func (p GamePhase) IsTerminal() bool {
	return p == PhaseWon || p == PhaseLost
}

// CanReceiveActions returns true if gameplay commands are accepted in this phase
func (p GamePhase) CanReceiveActions() bool {
	return p == PhaseRunning
}

// AllowedTransitions returns the valid phases this phase can transition to
func (p GamePhase) AllowedTransitions() []GamePhase {
	switch p {
	case PhaseInitializing:
		return []GamePhase{PhaseRunning}
	case PhaseRunning:
		return []GamePhase{PhaseWon, PhaseLost, PhaseReset}
	case PhaseWon, PhaseLost:
		return []GamePhase{PhaseReset}
	case PhaseReset:
		return []GamePhase{PhaseRunning}
	default:
		return []GamePhase{}
	}
}

// CanTransitionTo checks if a transition from this phase to the target phase is allowed
func (p GamePhase) CanTransitionTo(target GamePhase) bool {
	for _, phase := range p.AllowedTransitions() {
		if phase == target {
			return true
		}
	}
	return false
}

// ParsePhase converts a string to a GamePhase
func ParsePhase(s string) GamePhase {
	switch s {
	case "Running":
		return PhaseRunning
	case "Won":
		return PhaseWon
	case "Lost":
		return PhaseLost
	case "Reset":
		return PhaseReset
	default:
		return PhaseInitializing
	}
}
