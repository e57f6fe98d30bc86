package game

import (
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/HexDominion/internal/common"
	"github.com/mitchelldurbincs/HexDominion/internal/game/core"
)

// ScriptedHuman plays the human side in headless matches and demos. It
// mirrors the opponent's build order: a command center next to a deposit,
// refineries on owned deposits, then turrets as close to the enemy command
// center as its territory allows.
type ScriptedHuman struct {
	rng    *rand.Rand
	logger zerolog.Logger
}

func NewScriptedHuman(rng *rand.Rand, logger zerolog.Logger) *ScriptedHuman {
	return &ScriptedHuman{
		rng:    rng,
		logger: logger.With().Str("component", "ScriptedHuman").Logger(),
	}
}

// NextCommands returns the commands for the current tick, or nil when there
// is nothing affordable to build.
func (s *ScriptedHuman) NextCommands(e *Engine) []core.Command {
	if e.IsGameOver() {
		return nil
	}
	g := e.Grid()

	if len(g.FindOwnedBuildings(core.KindCommandCenter, core.FactionHuman)) == 0 {
		if at, ok := s.commandCenterSite(e); ok {
			return s.build(e, core.KindCommandCenter, at)
		}
		return nil
	}

	if s.affordable(e, core.KindRefinery) {
		for _, dep := range g.FindTerrain(core.TerrainResource) {
			if dep.Cell.Owner == core.FactionHuman && !dep.Cell.HasRealBuilding() {
				return s.build(e, core.KindRefinery, dep.Coord)
			}
		}
	}

	if s.affordable(e, core.KindTurret) {
		if at, ok := s.turretSite(e); ok {
			return s.build(e, core.KindTurret, at)
		}
	}
	return nil
}

func (s *ScriptedHuman) affordable(e *Engine, kind core.BuildingKind) bool {
	tpl, err := e.Templates().Get(kind)
	if err != nil {
		return false
	}
	return e.Pool(core.FactionHuman) >= tpl.Cost && e.CooldownRemaining(kind) == 0
}

// commandCenterSite scans deposits from the far end of the grid so the two
// sides start apart.
func (s *ScriptedHuman) commandCenterSite(e *Engine) (core.Coordinate, bool) {
	if !s.affordable(e, core.KindCommandCenter) {
		return core.Coordinate{}, false
	}
	mask := e.PlacementMask(core.KindCommandCenter)
	deposits := e.Grid().FindTerrain(core.TerrainResource)
	for i := len(deposits) - 1; i >= 0; i-- {
		dep := deposits[i]
		if dep.Cell.Owner == core.FactionCPU {
			continue
		}
		for _, dx := range []int{-1, 1} {
			at := dep.Coord.Add(core.NewCoordinate(dx, 0))
			if !e.Grid().InBounds(at.X, at.Y) {
				continue
			}
			if mask[at.ToIndex(e.Grid().H)] {
				return at, true
			}
		}
	}
	return core.Coordinate{}, false
}

// turretSite picks the legal cell nearest the enemy command center, breaking
// ties at random. Without a visible enemy it picks any legal cell.
func (s *ScriptedHuman) turretSite(e *Engine) (core.Coordinate, bool) {
	g := e.Grid()
	sites := e.placement.LegalSites(g, core.KindTurret, core.FactionHuman, e.Pristine())
	if len(sites) == 0 {
		return core.Coordinate{}, false
	}

	enemy := g.FindOwnedBuildings(core.KindCommandCenter, core.FactionCPU)
	if len(enemy) == 0 {
		return sites[s.rng.Intn(len(sites))], true
	}

	target := enemy[0].Coord
	best := []core.Coordinate{}
	bestDist := -1
	for _, at := range sites {
		d := common.HexDistance(at, target)
		switch {
		case bestDist < 0 || d < bestDist:
			best = append(best[:0], at)
			bestDist = d
		case d == bestDist:
			best = append(best, at)
		}
	}
	return best[s.rng.Intn(len(best))], true
}

// build selects the cell and presses the build key twice.
func (s *ScriptedHuman) build(e *Engine, kind core.BuildingKind, at core.Coordinate) []core.Command {
	s.logger.Debug().
		Str("kind", kind.String()).
		Str("at", at.String()).
		Int("tick", e.CurrentTick()).
		Msg("Scripted build")
	return []core.Command{
		&core.SelectCellCommand{X: at.X, Y: at.Y},
		&core.ArmBuildCommand{Kind: kind},
		&core.ArmBuildCommand{Kind: kind},
	}
}
