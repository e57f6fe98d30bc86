package game

import (
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/HexDominion/internal/game/core"
	"github.com/mitchelldurbincs/HexDominion/internal/game/events"
)

// BuildManager places buildings and runs the economy. Only the human pays
// for buildings and waits on cooldowns; the opponent builds for free.
type BuildManager struct {
	engine *Engine
	logger zerolog.Logger
}

// NewBuildManager creates a new build manager
func NewBuildManager(engine *Engine) *BuildManager {
	return &BuildManager{
		engine: engine,
		logger: engine.logger.With().Str("component", "BuildManager").Logger(),
	}
}

func spendsResources(f core.Faction) bool { return f == core.FactionHuman }

// AttemptBuild places kind at the given cell for faction. It fails without
// touching the pool, grid or cooldowns when the pool is short, the kind is
// cooling down, or the cell is off-grid, impassable or occupied. On success
// the cost is deducted, the cooldown starts and territory is recomputed.
func (bm *BuildManager) AttemptBuild(kind core.BuildingKind, at core.Coordinate, faction core.Faction) (*core.Building, error) {
	e := bm.engine
	tpl, err := e.templates.Get(kind)
	if err != nil {
		return nil, core.WrapPlacementError(kind, at, err)
	}

	if spendsResources(faction) {
		if e.pools[faction] < tpl.Cost {
			return nil, core.WrapPlacementError(kind, at, core.ErrInsufficientResources)
		}
		if !e.cooldowns.Ready(kind) {
			return nil, core.WrapPlacementError(kind, at, core.ErrCooldownActive)
		}
	}

	cell := e.grid.At(at)
	switch {
	case cell == nil:
		return nil, core.WrapPlacementError(kind, at, core.ErrInvalidCoordinates)
	case cell.IsImpassable():
		return nil, core.WrapPlacementError(kind, at, core.ErrImpassable)
	case cell.HasRealBuilding():
		return nil, core.WrapPlacementError(kind, at, core.ErrCellOccupied)
	}

	b := core.NewBuilding(e.allocateID(), tpl, faction, e.tick)
	cell.Building = b
	cell.Owner = faction
	cell.LandingProgress = 0

	if spendsResources(faction) {
		e.pools[faction] -= tpl.Cost
		e.cooldowns.Start(kind, tpl.Cooldown)
	}
	e.pristine = false
	if kind == core.KindCommandCenter {
		e.ccsPlaced[faction]++
	}

	e.eventBus.Publish(events.NewBuildingPlacedEvent(e.gameID, b, at, e.tick))
	e.recomputeTerritory()

	bm.logger.Info().
		Int("building_id", b.ID).
		Str("kind", kind.String()).
		Str("owner", faction.String()).
		Str("at", at.String()).
		Int("pool", e.pools[faction]).
		Int("tick", e.tick).
		Msg("Building placed")
	return b, nil
}

// GatherResources credits the human pool for every landed human refinery.
func (bm *BuildManager) GatherResources(tick int) int {
	e := bm.engine
	refineries := 0
	for _, ref := range e.grid.FindOwnedBuildings(core.KindRefinery, core.FactionHuman) {
		if ref.Cell.IsLanded() {
			refineries++
		}
	}

	amount := refineries * e.refineryIncome
	if amount == 0 {
		return 0
	}
	e.pools[core.FactionHuman] += amount

	e.eventBus.Publish(events.NewResourcesGatheredEvent(
		e.gameID,
		core.FactionHuman,
		amount,
		e.pools[core.FactionHuman],
		refineries,
		tick,
	))
	bm.logger.Debug().
		Int("tick", tick).
		Int("refineries", refineries).
		Int("amount", amount).
		Int("pool", e.pools[core.FactionHuman]).
		Msg("Resources gathered")
	return amount
}
