package states

import (
	"fmt"
	"time"

	"github.com/mitchelldurbincs/HexDominion/internal/game/core"
)

// InitializingState represents engine construction
type InitializingState struct{}

func NewInitializingState() State { return &InitializingState{} }

func (s *InitializingState) Phase() GamePhase { return PhaseInitializing }

func (s *InitializingState) Enter(ctx *GameContext) error {
	ctx.Logger.Debug().Msg("Entering Initializing state")
	return nil
}

func (s *InitializingState) Exit(ctx *GameContext) error {
	ctx.Logger.Debug().Msg("Exiting Initializing state")
	return nil
}

func (s *InitializingState) Validate(*GameContext) error { return nil }

// RunningState represents active gameplay
type RunningState struct{}

func NewRunningState() State { return &RunningState{} }

func (s *RunningState) Phase() GamePhase { return PhaseRunning }

func (s *RunningState) Enter(ctx *GameContext) error {
	ctx.StartTime = time.Now()
	ctx.EndTime = time.Time{}
	ctx.Winner = core.FactionNone
	ctx.Logger.Info().
		Time("start_time", ctx.StartTime).
		Msg("Game started")
	return nil
}

func (s *RunningState) Exit(ctx *GameContext) error {
	ctx.Logger.Info().
		Dur("elapsed", ctx.GetElapsedTime()).
		Msg("Exiting running state")
	return nil
}

func (s *RunningState) Validate(*GameContext) error { return nil }

// verdictState is shared by the win and loss phases
type verdictState struct {
	phase  GamePhase
	winner core.Faction
}

func NewWonState() State  { return &verdictState{phase: PhaseWon, winner: core.FactionHuman} }
func NewLostState() State { return &verdictState{phase: PhaseLost, winner: core.FactionCPU} }

func (s *verdictState) Phase() GamePhase { return s.phase }

func (s *verdictState) Enter(ctx *GameContext) error {
	ctx.EndTime = time.Now()
	ctx.Logger.Info().
		Str("winner", ctx.Winner.String()).
		Dur("duration", ctx.GetElapsedTime()).
		Msg("Game over")
	return nil
}

func (s *verdictState) Exit(ctx *GameContext) error {
	ctx.Logger.Debug().Str("phase", s.phase.String()).Msg("Leaving game over screen")
	return nil
}

// Validate requires the winner to be recorded before the transition.
func (s *verdictState) Validate(ctx *GameContext) error {
	if ctx.Winner != s.winner {
		return fmt.Errorf("%w: %s requires winner %s, got %s", core.ErrInvalidFaction, s.phase, s.winner, ctx.Winner)
	}
	return nil
}

// ResetState represents a restart in progress
type ResetState struct{}

func NewResetState() State { return &ResetState{} }

func (s *ResetState) Phase() GamePhase { return PhaseReset }

func (s *ResetState) Enter(ctx *GameContext) error {
	ctx.Winner = core.FactionNone
	ctx.EndTime = time.Time{}
	ctx.Logger.Info().Int("restarts", ctx.Restarts).Msg("Resetting game")
	return nil
}

func (s *ResetState) Exit(ctx *GameContext) error {
	ctx.Restarts++
	return nil
}

func (s *ResetState) Validate(*GameContext) error { return nil }
