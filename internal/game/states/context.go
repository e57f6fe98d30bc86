package states

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/HexDominion/internal/game/core"
)

// GameContext provides session information to states for making decisions
type GameContext struct {
	// GameID uniquely identifies this session
	GameID string

	// Logger for state-specific logging
	Logger zerolog.Logger

	// StartTime is when PhaseRunning was last entered
	StartTime time.Time

	// EndTime is when a verdict was reached
	EndTime time.Time

	// Winner is FactionNone until the game ends
	Winner core.Faction

	// Restarts counts completed resets
	Restarts int
}

// NewGameContext creates a new game context
func NewGameContext(gameID string, logger zerolog.Logger) *GameContext {
	return &GameContext{
		GameID: gameID,
		Logger: logger.With().Str("game_id", gameID).Logger(),
	}
}

// GetElapsedTime returns the time since the current round started, frozen once it ends
func (gc *GameContext) GetElapsedTime() time.Duration {
	if gc.StartTime.IsZero() {
		return 0
	}
	if !gc.EndTime.IsZero() {
		return gc.EndTime.Sub(gc.StartTime)
	}
	return time.Since(gc.StartTime)
}
