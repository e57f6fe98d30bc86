package mapgen

import (
	"math/rand"

	"github.com/mitchelldurbincs/HexDominion/internal/game/core"
)

// MapConfig holds configuration for map generation
type MapConfig struct {
	Width            int
	Height           int
	ResourceDeposits int
	ImpassableTiles  int
	ElevatedTiles    int // cosmetic only
}

// DefaultMapConfig returns the stock 20x8 layout
func DefaultMapConfig() MapConfig {
	return MapConfig{
		Width:            20,
		Height:           8,
		ResourceDeposits: 5,
		ImpassableTiles:  20,
		ElevatedTiles:    6,
	}
}

// Generator handles map generation with deterministic RNG
type Generator struct {
	config MapConfig
	rng    *rand.Rand
}

// NewGenerator creates a new map generator
func NewGenerator(config MapConfig, rng *rand.Rand) *Generator {
	return &Generator{
		config: config,
		rng:    rng,
	}
}

// GenerateMap creates a new grid with deposits, impassable and elevated tiles.
// Features never share a cell; when the grid is too small the counts are
// capped by the attempt budget instead of looping forever.
func (g *Generator) GenerateMap() *core.Grid {
	grid := core.NewGrid(g.config.Width, g.config.Height)

	g.scatter(grid, g.config.ResourceDeposits, func(c *core.Cell) {
		c.Terrain = core.TerrainResource
	})
	g.scatter(grid, g.config.ImpassableTiles, func(c *core.Cell) {
		c.Terrain = core.TerrainImpassable
	})
	g.scatter(grid, g.config.ElevatedTiles, func(c *core.Cell) {
		c.Elevated = true
	})

	return grid
}

// scatter applies mark to want distinct blank cells.
func (g *Generator) scatter(grid *core.Grid, want int, mark func(*core.Cell)) int {
	placed := 0
	maxAttempts := want * 10
	for attempts := 0; placed < want && attempts < maxAttempts; attempts++ {
		c := grid.GetCell(g.rng.Intn(grid.W), g.rng.Intn(grid.H))
		if c.Terrain != core.TerrainNone || c.Elevated {
			continue
		}
		mark(c)
		placed++
	}
	return placed
}
