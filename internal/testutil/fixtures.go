package testutil

import (
	"github.com/mitchelldurbincs/HexDominion/internal/game/core"
)

// CreateTestGrid creates an empty grid with the given dimensions
func CreateTestGrid(width, height int) *core.Grid {
	return core.NewGrid(width, height)
}

// WithTerrain marks every coordinate with terrain t.
func WithTerrain(g *core.Grid, t core.Terrain, coords ...core.Coordinate) *core.Grid {
	for _, c := range coords {
		if cell := g.At(c); cell != nil {
			cell.Terrain = t
		}
	}
	return g
}

// PlaceLanded puts a fully landed building on the grid and claims its cell.
// It does not propagate territory.
func PlaceLanded(g *core.Grid, id, x, y int, kind core.BuildingKind, owner core.Faction) *core.Building {
	tpl := core.DefaultTemplates()[kind]
	b := core.NewBuilding(id, tpl, owner, 0)
	cell := g.GetCell(x, y)
	cell.Building = b
	cell.Owner = owner
	cell.LandingProgress = core.LandingComplete
	return b
}

// CreateDuelSetup creates a 20x8 grid with one command center per faction,
// ten columns apart: Human at (2,3), Cpu at (12,3).
func CreateDuelSetup() *core.Grid {
	g := CreateTestGrid(20, 8)
	PlaceLanded(g, 1, 2, 3, core.KindCommandCenter, core.FactionHuman)
	PlaceLanded(g, 2, 12, 3, core.KindCommandCenter, core.FactionCPU)
	return g
}
