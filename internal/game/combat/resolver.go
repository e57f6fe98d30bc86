// Package combat resolves turret fire once per simulation tick.
package combat

import (
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/HexDominion/internal/game/core"
)

// Hit is one turret engagement.
type Hit struct {
	AttackerID int
	Attacker   core.Coordinate
	Target     *core.Building
	At         core.Coordinate
	Damage     int
	Destroyed  bool
}

// Idle is a turret that found nothing to shoot.
type Idle struct {
	TurretID int
	At       core.Coordinate
}

// Destroyed records a building removed from the grid.
type Destroyed struct {
	Building *core.Building
	At       core.Coordinate
}

// Outcome collects everything one pass changed.
type Outcome struct {
	Hits      []Hit
	Idle      []Idle
	Destroyed []Destroyed
}

type Resolver struct {
	logger zerolog.Logger
}

func NewResolver(logger zerolog.Logger) *Resolver {
	return &Resolver{logger: logger.With().Str("component", "CombatResolver").Logger()}
}

type candidate struct {
	ref      core.CellRef
	building *core.Building
}

// snapshot lists turrets, refineries and command centers, each group in
// column-major order. The building pointer is kept so later lookups can tell
// whether the cell still holds the same building.
func snapshot(g *core.Grid) []candidate {
	var out []candidate
	for _, kind := range []core.BuildingKind{core.KindTurret, core.KindRefinery, core.KindCommandCenter} {
		for _, ref := range g.FindBuildings(kind) {
			out = append(out, candidate{ref: ref, building: ref.Cell.Building})
		}
	}
	return out
}

func (c candidate) alive() bool {
	return c.ref.Cell.Building == c.building && !c.building.IsDestroyed()
}

// Resolve lets every landed turret fire at the first landed enemy building
// strictly closer than its range. Destroyed buildings are cleared from the
// grid; recomputing territory is left to the caller.
func (r *Resolver) Resolve(g *core.Grid) Outcome {
	var out Outcome
	all := snapshot(g)

	for _, t := range all {
		turret := t.building
		if !turret.IsTurret() {
			break
		}
		if !t.alive() || !t.ref.Cell.IsLanded() {
			continue
		}

		engaged := false
		for _, c := range all {
			if !c.alive() || !c.ref.Cell.IsLanded() {
				continue
			}
			if c.building.Owner == turret.Owner {
				continue
			}
			d := t.ref.Coord.EuclideanDistance(c.ref.Coord)
			if d <= 0 || d >= float64(turret.Range) {
				continue
			}

			c.building.HP -= turret.Damage
			hit := Hit{
				AttackerID: turret.ID,
				Attacker:   t.ref.Coord,
				Target:     c.building,
				At:         c.ref.Coord,
				Damage:     turret.Damage,
			}
			if c.building.IsDestroyed() {
				hit.Destroyed = true
				destroy(c.ref.Cell)
				out.Destroyed = append(out.Destroyed, Destroyed{Building: c.building, At: c.ref.Coord})
				r.logger.Info().
					Int("building_id", c.building.ID).
					Str("kind", c.building.Kind.String()).
					Str("owner", c.building.Owner.String()).
					Int("attacker_id", turret.ID).
					Msg("Building destroyed")
			}
			out.Hits = append(out.Hits, hit)
			engaged = true
			break
		}

		if !engaged {
			out.Idle = append(out.Idle, Idle{TurretID: turret.ID, At: t.ref.Coord})
		}
	}

	r.logger.Debug().
		Int("hits", len(out.Hits)).
		Int("idle", len(out.Idle)).
		Int("destroyed", len(out.Destroyed)).
		Msg("Combat resolved")
	return out
}

func destroy(c *core.Cell) {
	c.Building = nil
	c.Owner = core.FactionNone
	c.Influence = core.NoInfluence
	c.LandingProgress = 0
}

// Demolish removes the building on c, as if destroyed.
func Demolish(c *core.Cell) *core.Building {
	b := c.Building
	if b == nil || b.IsPlaceholder() {
		return nil
	}
	destroy(c)
	return b
}
