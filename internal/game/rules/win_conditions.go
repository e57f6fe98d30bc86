package rules

import (
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/HexDominion/internal/game/core"
)

// Outcome is the verdict of a game-over check from the human's point of view.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWin
	OutcomeLose
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWin:
		return "win"
	case OutcomeLose:
		return "lose"
	default:
		return "none"
	}
}

// Winner maps the outcome to the winning faction.
func (o Outcome) Winner() core.Faction {
	switch o {
	case OutcomeWin:
		return core.FactionHuman
	case OutcomeLose:
		return core.FactionCPU
	default:
		return core.FactionNone
	}
}

// GameOverInput is the session state the check needs besides the grid.
type GameOverInput struct {
	// Pristine is true until either faction places a building.
	Pristine bool
	// The counters hold command centers ever placed per faction. A side
	// that never had one can neither lose nor be beaten.
	HumanCommandCentersPlaced int
	CPUCommandCentersPlaced   int
}

// WinConditionChecker handles game over detection and winner determination
type WinConditionChecker struct {
	logger zerolog.Logger
}

// NewWinConditionChecker creates a new win condition checker
func NewWinConditionChecker(logger zerolog.Logger) *WinConditionChecker {
	return &WinConditionChecker{
		logger: logger.With().Str("component", "WinConditionChecker").Logger(),
	}
}

// CheckGameOver evaluates command center survival. The loss check runs
// after the win check and overrides it, so losing both sides' last command
// centers in one tick is a loss.
func (wc *WinConditionChecker) CheckGameOver(g *core.Grid, in GameOverInput) Outcome {
	if in.Pristine {
		return OutcomeNone
	}

	humanCCs := len(g.FindOwnedBuildings(core.KindCommandCenter, core.FactionHuman))
	cpuCCs := len(g.FindOwnedBuildings(core.KindCommandCenter, core.FactionCPU))

	outcome := OutcomeNone
	if in.CPUCommandCentersPlaced > 0 && cpuCCs == 0 {
		outcome = OutcomeWin
	}
	if in.HumanCommandCentersPlaced > 0 && humanCCs == 0 {
		outcome = OutcomeLose
	}

	wc.logger.Debug().
		Int("human_command_centers", humanCCs).
		Int("cpu_command_centers", cpuCCs).
		Str("outcome", outcome.String()).
		Msg("Game over check complete")
	if outcome != OutcomeNone {
		wc.logger.Info().Str("winner", outcome.Winner().String()).Msg("Winner determined")
	}
	return outcome
}
