package planner

import "fmt"

// State is the opponent's position in its build order.
type State int

const (
	StateInit State = iota
	StateCommandCenterBuilt
	StateMineBuilt
	StateLocatingEnemy
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateCommandCenterBuilt:
		return "command_center_built"
	case StateMineBuilt:
		return "mine_built"
	case StateLocatingEnemy:
		return "locating_enemy"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// Action is what the planner does when it is allowed to act in a state.
type Action int

const (
	ActionCreateCC Action = iota
	ActionCreateMine
	ActionNextMine
	ActionCreateTurret
)

func (a Action) String() string {
	switch a {
	case ActionCreateCC:
		return "create_cc"
	case ActionCreateMine:
		return "create_mine"
	case ActionNextMine:
		return "next_mine"
	case ActionCreateTurret:
		return "create_turret"
	default:
		return fmt.Sprintf("unknown(%d)", int(a))
	}
}

// stateActions maps each state to the single action dispatched from it.
var stateActions = map[State]Action{
	StateInit:               ActionCreateCC,
	StateCommandCenterBuilt: ActionCreateMine,
	StateMineBuilt:          ActionNextMine,
	StateLocatingEnemy:      ActionCreateTurret,
}

// transitions lists the states each (state, action) pair may lead to.
// Staying put is listed explicitly where the action can be a no-op.
var transitions = map[State]map[Action][]State{
	StateInit: {
		ActionCreateCC: {StateCommandCenterBuilt, StateInit},
	},
	StateCommandCenterBuilt: {
		ActionCreateMine: {StateMineBuilt},
	},
	StateMineBuilt: {
		ActionNextMine: {StateMineBuilt, StateLocatingEnemy},
	},
	StateLocatingEnemy: {
		ActionCreateTurret: {StateMineBuilt, StateLocatingEnemy},
	},
}

// ActionFor returns the action the planner dispatches in s.
func ActionFor(s State) (Action, bool) {
	a, ok := stateActions[s]
	return a, ok
}

// CanTransition reports whether action in from may end in to.
func CanTransition(from State, action Action, to State) bool {
	for _, s := range transitions[from][action] {
		if s == to {
			return true
		}
	}
	return false
}
