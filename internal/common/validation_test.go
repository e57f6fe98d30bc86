package common

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mitchelldurbincs/HexDominion/internal/game/core"
)

func TestIsValidCoordinate(t *testing.T) {
	tests := []struct {
		name          string
		x, y          int
		width, height int
		expected      bool
	}{
		{"origin", 0, 0, 20, 8, true},
		{"last cell", 19, 7, 20, 8, true},
		{"x too large", 20, 0, 20, 8, false},
		{"y too large", 0, 8, 20, 8, false},
		{"negative", -1, 0, 20, 8, false},
		{"empty grid", 0, 0, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsValidCoordinate(tt.x, tt.y, tt.width, tt.height))
			assert.Equal(t, tt.expected, IsValidCoordinateStruct(core.NewCoordinate(tt.x, tt.y), tt.width, tt.height))
		})
	}
}

func TestIsAdjacent(t *testing.T) {
	tests := []struct {
		name           string
		x1, y1, x2, y2 int
		expected       bool
	}{
		{"above", 2, 2, 2, 1, true},
		{"right", 2, 2, 3, 2, true},
		{"even column lower diagonal", 2, 2, 3, 3, true},
		{"even column upper diagonal", 2, 2, 3, 1, false},
		{"odd column upper diagonal", 3, 2, 4, 1, true},
		{"odd column lower diagonal", 3, 2, 4, 3, false},
		{"same cell", 2, 2, 2, 2, false},
		{"two apart", 2, 2, 4, 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsAdjacent(tt.x1, tt.y1, tt.x2, tt.y2))
		})
	}
}

func TestClampCoordinate(t *testing.T) {
	assert.Equal(t, core.NewCoordinate(0, 7), ClampCoordinate(core.NewCoordinate(-3, 9), 20, 8))
	assert.Equal(t, core.NewCoordinate(19, 0), ClampCoordinate(core.NewCoordinate(25, -1), 20, 8))
	assert.Equal(t, core.NewCoordinate(4, 4), ClampCoordinate(core.NewCoordinate(4, 4), 20, 8))
}
