package mapgen

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/HexDominion/internal/game/core"
)

// newTestRNG provides a random number generator with a fixed seed for deterministic tests.
func newTestRNG() *rand.Rand {
	return rand.New(rand.NewSource(12345))
}

func count(grid *core.Grid) (deposits, impassable, elevated int) {
	for _, c := range grid.C {
		switch c.Terrain {
		case core.TerrainResource:
			deposits++
		case core.TerrainImpassable:
			impassable++
		}
		if c.Elevated {
			elevated++
		}
	}
	return
}

func TestDefaultMapConfig(t *testing.T) {
	config := DefaultMapConfig()

	assert.Equal(t, 20, config.Width)
	assert.Equal(t, 8, config.Height)
	assert.Equal(t, 5, config.ResourceDeposits)
	assert.Equal(t, 20, config.ImpassableTiles)
	assert.Equal(t, 6, config.ElevatedTiles)
}

func TestNewGenerator(t *testing.T) {
	config := DefaultMapConfig()
	rng := newTestRNG()
	generator := NewGenerator(config, rng)

	require.NotNil(t, generator)
	assert.Equal(t, config, generator.config)
	assert.Same(t, rng, generator.rng)
}

func TestGenerateMap(t *testing.T) {
	grid := NewGenerator(DefaultMapConfig(), newTestRNG()).GenerateMap()

	assert.Equal(t, 20, grid.W)
	assert.Equal(t, 8, grid.H)
	deposits, impassable, elevated := count(grid)
	assert.Equal(t, 5, deposits)
	assert.Equal(t, 20, impassable)
	assert.Equal(t, 6, elevated)

	for _, c := range grid.C {
		assert.Nil(t, c.Building)
		assert.Equal(t, core.FactionNone, c.Owner)
		assert.Equal(t, core.NoInfluence, c.Influence)
		if c.Elevated {
			assert.Equal(t, core.TerrainNone, c.Terrain, "features never share a cell")
		}
	}
}

func TestGenerateMapIsDeterministic(t *testing.T) {
	a := NewGenerator(DefaultMapConfig(), rand.New(rand.NewSource(99))).GenerateMap()
	b := NewGenerator(DefaultMapConfig(), rand.New(rand.NewSource(99))).GenerateMap()

	for i := range a.C {
		assert.Equal(t, a.C[i].Terrain, b.C[i].Terrain)
		assert.Equal(t, a.C[i].Elevated, b.C[i].Elevated)
	}
}

func TestGenerateMapTerminatesOnCrowdedGrid(t *testing.T) {
	config := MapConfig{Width: 2, Height: 2, ResourceDeposits: 3, ImpassableTiles: 10, ElevatedTiles: 10}

	grid := NewGenerator(config, newTestRNG()).GenerateMap()

	deposits, impassable, elevated := count(grid)
	assert.LessOrEqual(t, deposits+impassable+elevated, 4)
	assert.LessOrEqual(t, deposits, 3)
}
