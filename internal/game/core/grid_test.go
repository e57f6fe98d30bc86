package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGrid(t *testing.T) {
	g := NewGrid(20, 8)

	assert.Equal(t, 20, g.W)
	assert.Equal(t, 8, g.H)
	require.Len(t, g.C, 160)
	for i, c := range g.C {
		assert.Equal(t, FactionNone, c.Owner, "cell %d should be unowned", i)
		assert.Equal(t, NoInfluence, c.Influence, "cell %d should have no influence", i)
		assert.Nil(t, c.Building)
	}
}

func TestGrid_IdxIsColumnMajor(t *testing.T) {
	g := NewGrid(4, 3)
	assert.Equal(t, 0, g.Idx(0, 0))
	assert.Equal(t, 2, g.Idx(0, 2))
	assert.Equal(t, 3, g.Idx(1, 0))
	x, y := g.XY(7)
	assert.Equal(t, 2, x)
	assert.Equal(t, 1, y)
}

func TestGrid_GetCell(t *testing.T) {
	g := NewGrid(5, 5)
	g.GetCell(2, 3).Terrain = TerrainResource

	assert.True(t, g.GetCell(2, 3).IsResource())
	assert.Same(t, g.GetCell(2, 3), g.At(Coordinate{2, 3}))
	assert.Nil(t, g.GetCell(-1, 0))
	assert.Nil(t, g.GetCell(5, 0))
}

func TestGrid_FindBuildingsInGridOrder(t *testing.T) {
	g := NewGrid(6, 4)
	tpl := DefaultTemplates()[KindTurret]
	g.GetCell(4, 1).Building = NewBuilding(1, tpl, FactionCPU, 0)
	g.GetCell(1, 3).Building = NewBuilding(2, tpl, FactionHuman, 0)
	g.GetCell(1, 0).Building = NewBuilding(3, DefaultTemplates()[KindRefinery], FactionHuman, 0)

	turrets := g.FindBuildings(KindTurret)
	require.Len(t, turrets, 2)
	assert.Equal(t, Coordinate{1, 3}, turrets[0].Coord)
	assert.Equal(t, Coordinate{4, 1}, turrets[1].Coord)

	cpu := g.FindOwnedBuildings(KindTurret, FactionCPU)
	require.Len(t, cpu, 1)
	assert.Equal(t, 1, cpu[0].Cell.Building.ID)
	assert.True(t, g.HasAnyBuilding())
}

func TestGrid_HasAnyBuildingIgnoresPlaceholder(t *testing.T) {
	g := NewGrid(3, 3)
	g.GetCell(1, 1).Building = NewPlaceholder(2)
	assert.False(t, g.HasAnyBuilding())
	assert.True(t, g.GetCell(1, 1).IsBuildable())
}

func TestCell_IsBuildable(t *testing.T) {
	tests := []struct {
		name     string
		cell     Cell
		expected bool
	}{
		{"empty", Cell{}, true},
		{"deposit", Cell{Terrain: TerrainResource}, true},
		{"impassable", Cell{Terrain: TerrainImpassable}, false},
		{"occupied", Cell{Building: &Building{Kind: KindTurret}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.cell.IsBuildable())
		})
	}
}

func TestGrid_CloneIsDeep(t *testing.T) {
	g := NewGrid(3, 3)
	g.GetCell(1, 1).Building = NewBuilding(7, DefaultTemplates()[KindCommandCenter], FactionHuman, 0)

	clone := g.Clone()
	clone.GetCell(1, 1).Building.HP = 1
	clone.GetCell(0, 0).Owner = FactionCPU

	assert.Equal(t, 500, g.GetCell(1, 1).Building.HP)
	assert.Equal(t, FactionNone, g.GetCell(0, 0).Owner)
}

func TestFaction_Opponent(t *testing.T) {
	assert.Equal(t, FactionCPU, FactionHuman.Opponent())
	assert.Equal(t, FactionHuman, FactionCPU.Opponent())
	assert.Equal(t, FactionNone, FactionPending.Opponent())
	assert.Equal(t, "pending", FactionPending.String())
}
