package game

import (
	"time"

	"github.com/mitchelldurbincs/HexDominion/internal/game/core"
	"github.com/mitchelldurbincs/HexDominion/internal/game/events"
	"github.com/mitchelldurbincs/HexDominion/internal/game/planner"
	"github.com/mitchelldurbincs/HexDominion/internal/game/rules"
	"github.com/mitchelldurbincs/HexDominion/internal/game/states"
)

// Grid returns the live grid. Renderers read it between ticks and must not
// mutate it.
func (e *Engine) Grid() *core.Grid { return e.grid }

// Snapshot returns a deep copy of the grid.
func (e *Engine) Snapshot() *core.Grid { return e.grid.Clone() }

func (e *Engine) GameID() string                     { return e.gameID }
func (e *Engine) EventBus() *events.EventBus         { return e.eventBus }
func (e *Engine) StateMachine() *states.StateMachine { return e.stateMachine }
func (e *Engine) CurrentTick() int                   { return e.tick }
func (e *Engine) CurrentFrame() int                  { return e.frame }
func (e *Engine) FramesPerTick() int                 { return e.framesPerTick }
func (e *Engine) Difficulty() string                 { return e.difficulty }
func (e *Engine) Levels() planner.Levels             { return e.levels }
func (e *Engine) PlannerState() planner.State        { return e.planner.State() }
func (e *Engine) Pristine() bool                     { return e.pristine }
func (e *Engine) IsGameOver() bool                   { return e.gameOver }
func (e *Engine) Outcome() rules.Outcome             { return e.outcome }
func (e *Engine) Phase() states.GamePhase            { return e.stateMachine.CurrentPhase() }
func (e *Engine) Selection() core.Coordinate         { return e.selection }
func (e *Engine) InvalidSelection() bool             { return e.invalidSelection }
func (e *Engine) Templates() core.Templates          { return e.templates }

// PlacementMask reports, in grid order, where the human could place kind.
func (e *Engine) PlacementMask(kind core.BuildingKind) []bool {
	return e.placement.Mask(e.grid, kind, core.FactionHuman, e.pristine)
}

// Pool returns the resource pool of f.
func (e *Engine) Pool(f core.Faction) int { return e.pools[f] }

// Armed reports the armed building kind, if any.
func (e *Engine) Armed() (core.BuildingKind, bool) { return e.armedKind, e.armed }

// CooldownRemaining returns the seconds left before kind can be built again.
func (e *Engine) CooldownRemaining(kind core.BuildingKind) int {
	return e.cooldowns.Remaining(kind)
}

// Cooldowns returns the active countdowns by kind.
func (e *Engine) Cooldowns() map[core.BuildingKind]int { return e.cooldowns.Snapshot() }

// AdvanceClock feeds wall-clock time to the build cooldowns.
func (e *Engine) AdvanceClock(elapsed time.Duration) {
	for _, kind := range e.cooldowns.Advance(elapsed) {
		e.logger.Debug().Str("kind", kind.String()).Msg("Cooldown expired")
	}
}

// Winner returns the winning faction, or FactionNone while running.
func (e *Engine) Winner() core.Faction { return e.outcome.Winner() }

// GameState is the coarse state shown to players.
func (e *Engine) GameState() string {
	switch e.outcome {
	case rules.OutcomeWin:
		return "Win"
	case rules.OutcomeLose:
		return "Lose"
	default:
		return "Running"
	}
}

// SelectedCellInfo describes what sits on the selected cell.
func (e *Engine) SelectedCellInfo() string {
	return DescribeCell(e.grid.At(e.selection))
}

// DescribeCell names the building, or failing that the terrain, of a cell.
func DescribeCell(c *core.Cell) string {
	if c == nil {
		return ""
	}
	if c.HasRealBuilding() {
		return c.Building.Kind.DisplayName()
	}
	switch c.Terrain {
	case core.TerrainImpassable:
		return "Impassable"
	case core.TerrainResource:
		return "Resource Deposit"
	default:
		return ""
	}
}
