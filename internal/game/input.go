package game

import (
	"errors"

	"github.com/mitchelldurbincs/HexDominion/internal/common"
	"github.com/mitchelldurbincs/HexDominion/internal/game/combat"
	"github.com/mitchelldurbincs/HexDominion/internal/game/core"
	"github.com/mitchelldurbincs/HexDominion/internal/game/events"
	"github.com/mitchelldurbincs/HexDominion/internal/game/states"
)

// This file holds the human-facing operations. They are reached through
// Engine.Apply and validated by the command processor first.

// SelectCell moves the selection to (x, y) and drops any armed build.
func (e *Engine) SelectCell(x, y int) error {
	if !e.grid.InBounds(x, y) {
		return core.ErrInvalidCoordinates
	}
	e.selection = core.NewCoordinate(x, y)
	e.disarm()
	return nil
}

// MoveSelection shifts the selection, clamped to the grid, and drops any
// armed build.
func (e *Engine) MoveSelection(dx, dy int) error {
	e.selection = common.ClampCoordinate(e.selection.Add(core.NewCoordinate(dx, dy)), e.grid.W, e.grid.H)
	e.disarm()
	return nil
}

// ArmBuild arms kind on the selected cell and shows its preview. Arming the
// kind that is already armed confirms it.
func (e *Engine) ArmBuild(kind core.BuildingKind) error {
	if err := e.requireRunning(); err != nil {
		return err
	}
	if e.armed && e.armedKind == kind {
		return e.ConfirmBuild()
	}

	e.armed = false
	e.recomputeWithoutPreview()
	if err := e.placement.CanArm(e.grid, kind, e.selection, core.FactionHuman); err != nil {
		e.recomputeTerritory()
		return core.WrapPlacementError(kind, e.selection, err)
	}

	e.armed = true
	e.armedKind = kind
	e.recomputeTerritory()
	e.logger.Debug().
		Str("kind", kind.String()).
		Str("at", e.selection.String()).
		Bool("invalid_selection", e.invalidSelection).
		Msg("Build armed")
	return nil
}

// ConfirmBuild places the armed building on the selected cell. A rejected
// placement keeps the build armed so the preview and its invalid flag stay
// visible.
func (e *Engine) ConfirmBuild() error {
	if err := e.requireRunning(); err != nil {
		return err
	}
	if !e.armed {
		return core.ErrNoBuildArmed
	}
	kind, at := e.armedKind, e.selection

	e.recomputeWithoutPreview()
	if err := e.placement.CheckSite(e.grid, kind, at, core.FactionHuman, e.pristine); err != nil {
		e.recomputeTerritory()
		return core.WrapPlacementError(kind, at, err)
	}

	e.armed = false
	if _, err := e.buildManager.AttemptBuild(kind, at, core.FactionHuman); err != nil {
		e.armed = true
		e.recomputeTerritory()
		return err
	}
	return nil
}

// CancelBuild drops the armed build and its preview.
func (e *Engine) CancelBuild() error {
	if !e.armed {
		return core.ErrNoBuildArmed
	}
	e.disarm()
	return nil
}

// Demolish removes one of the human's own buildings.
func (e *Engine) Demolish(x, y int) error {
	if err := e.requireRunning(); err != nil {
		return err
	}
	cell := e.grid.GetCell(x, y)
	if cell == nil {
		return core.ErrInvalidCoordinates
	}
	if !cell.HasRealBuilding() || cell.Building.Owner != core.FactionHuman {
		return core.ErrNoBuilding
	}

	at := core.NewCoordinate(x, y)
	b := combat.Demolish(cell)
	e.eventBus.Publish(events.NewBuildingDestroyedEvent(e.gameID, b, at, events.CauseDemolish, e.tick))
	e.recomputeTerritory()
	e.logger.Info().
		Int("building_id", b.ID).
		Str("kind", b.Kind.String()).
		Str("at", at.String()).
		Msg("Building demolished")
	return nil
}

// SetDifficulty changes the planner cadence without resetting its progress.
func (e *Engine) SetDifficulty(level string) error {
	divisor, err := e.levels.Divisor(level)
	if err != nil {
		return err
	}
	e.difficulty = level
	e.planner.SetDivisor(divisor)
	e.logger.Info().Str("difficulty", level).Int("divisor", divisor).Msg("Difficulty changed")
	return nil
}

// Restart rebuilds the round from scratch through the Reset phase.
func (e *Engine) Restart() error {
	if err := e.stateMachine.Restart("restart requested", e.rebuild); err != nil {
		return err
	}
	e.publishStarted()
	return nil
}

func (e *Engine) disarm() {
	if !e.armed {
		return
	}
	e.armed = false
	e.recomputeTerritory()
}

func (e *Engine) requireRunning() error {
	if e.gameOver {
		return core.ErrGameOver
	}
	if phase := e.stateMachine.CurrentPhase(); phase != states.PhaseRunning {
		return errors.New("game is in " + phase.String() + " phase")
	}
	return nil
}
