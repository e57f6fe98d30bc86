package core

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCoordinates    = errors.New("invalid coordinates")
	ErrCellOccupied          = errors.New("cell occupied")
	ErrImpassable            = errors.New("cell is impassable")
	ErrInsufficientResources = errors.New("insufficient resources")
	ErrCooldownActive        = errors.New("building cooldown active")
	ErrOutsideTerritory      = errors.New("cell outside owned territory")
	ErrEnemyTerritory        = errors.New("cell inside enemy territory")
	ErrNotResourceDeposit    = errors.New("cell is not a resource deposit")
	ErrNoBuildArmed          = errors.New("no build armed")
	ErrNoBuilding            = errors.New("no building on cell")
	ErrUnknownBuilding       = errors.New("unknown building kind")
	ErrGameOver              = errors.New("game is over")
	ErrInvalidDifficulty     = errors.New("invalid difficulty level")
	ErrInvalidCommand        = errors.New("invalid command")
	ErrInvalidFaction        = errors.New("invalid faction")
)

// PlacementError describes a rejected construction attempt.
type PlacementError struct {
	Kind  BuildingKind
	Coord Coordinate
	Err   error
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("build %s at %s: %v", e.Kind, e.Coord, e.Err)
}

func (e *PlacementError) Unwrap() error { return e.Err }

// WrapPlacementError attaches the building kind and target cell to err.
func WrapPlacementError(kind BuildingKind, coord Coordinate, err error) error {
	if err == nil {
		return nil
	}
	return &PlacementError{Kind: kind, Coord: coord, Err: err}
}

// WrapCommandError prefixes err with a description of the command.
func WrapCommandError(cmd Command, err error) error {
	if err == nil {
		return nil
	}
	if cmd == nil {
		return fmt.Errorf("command: %w", err)
	}
	return fmt.Errorf("%s: %w", DescribeCommand(cmd), err)
}

// WrapGameStateError adds tick and phase context.
func WrapGameStateError(tick int, phase string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("game tick %d [%s]: %w", tick, phase, err)
}
