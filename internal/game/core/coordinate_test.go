package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCoordinate(t *testing.T) {
	c := NewCoordinate(3, 5)
	assert.Equal(t, 3, c.X)
	assert.Equal(t, 5, c.Y)
}

func TestCoordinate_IndexRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		coord    Coordinate
		height   int
		expected int
	}{
		{"Origin", Coordinate{0, 0}, 8, 0},
		{"BottomOfFirstColumn", Coordinate{0, 7}, 8, 7},
		{"TopOfSecondColumn", Coordinate{1, 0}, 8, 8},
		{"Middle", Coordinate{5, 3}, 8, 43},
		{"LastCell", Coordinate{19, 7}, 8, 159},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := tt.coord.ToIndex(tt.height)
			assert.Equal(t, tt.expected, idx)
			assert.Equal(t, tt.coord, FromIndex(idx, tt.height))
		})
	}
}

func TestCoordinate_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		coord    Coordinate
		expected bool
	}{
		{"origin", Coordinate{0, 0}, true},
		{"last", Coordinate{19, 7}, true},
		{"negative column", Coordinate{-1, 0}, false},
		{"negative row", Coordinate{0, -1}, false},
		{"column overflow", Coordinate{20, 0}, false},
		{"row overflow", Coordinate{0, 8}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.coord.IsValid(20, 8))
		})
	}
}

func TestCoordinate_Neighbors(t *testing.T) {
	t.Run("even column uses lower diagonals", func(t *testing.T) {
		n := Coordinate{4, 3}.Neighbors()
		assert.Equal(t, [6]Coordinate{
			{4, 2}, {4, 4}, {3, 3}, {5, 3}, {3, 4}, {5, 4},
		}, n)
	})

	t.Run("odd column uses upper diagonals", func(t *testing.T) {
		n := Coordinate{5, 3}.Neighbors()
		assert.Equal(t, [6]Coordinate{
			{5, 2}, {5, 4}, {4, 3}, {6, 3}, {4, 2}, {6, 2},
		}, n)
	})
}

func TestCoordinate_AdjacencyIsSymmetric(t *testing.T) {
	for x := 0; x < 6; x++ {
		for y := 0; y < 6; y++ {
			c := Coordinate{x, y}
			for _, n := range c.Neighbors() {
				assert.True(t, n.IsAdjacentTo(c), "%s should be adjacent to %s", n, c)
			}
		}
	}
}

func TestCoordinate_ValidNeighbors(t *testing.T) {
	tests := []struct {
		name  string
		coord Coordinate
		count int
	}{
		{"top-left even column", Coordinate{0, 0}, 3},
		{"bottom-left even column", Coordinate{0, 7}, 2},
		{"top of odd column", Coordinate{1, 0}, 3},
		{"interior", Coordinate{4, 4}, 6},
		{"right edge odd column", Coordinate{19, 4}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid := tt.coord.ValidNeighbors(20, 8)
			assert.Len(t, valid, tt.count)
			for _, n := range valid {
				assert.True(t, n.IsValid(20, 8))
			}
		})
	}
}

func TestCoordinate_EuclideanDistance(t *testing.T) {
	tests := []struct {
		name     string
		from, to Coordinate
		expected float64
	}{
		{"same cell", Coordinate{2, 2}, Coordinate{2, 2}, 0},
		{"horizontal", Coordinate{0, 0}, Coordinate{5, 0}, 5},
		{"vertical", Coordinate{0, 0}, Coordinate{0, 3}, 3},
		{"pythagorean", Coordinate{1, 1}, Coordinate{4, 5}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, tt.from.EuclideanDistance(tt.to), 1e-9)
			assert.InDelta(t, tt.expected, tt.to.EuclideanDistance(tt.from), 1e-9)
		})
	}
}

func TestCoordinate_DirectionTo(t *testing.T) {
	origin := Coordinate{10, 4}
	assert.Equal(t, DirectionLeft, origin.DirectionTo(Coordinate{3, 0}))
	assert.Equal(t, DirectionRight, origin.DirectionTo(Coordinate{12, 7}))
	assert.Equal(t, DirectionSame, origin.DirectionTo(Coordinate{10, 0}))
	assert.Equal(t, "left", DirectionLeft.String())
	assert.Equal(t, "same", DirectionSame.String())
}

func TestCoordinate_String(t *testing.T) {
	assert.Equal(t, "(3,7)", Coordinate{3, 7}.String())
	assert.True(t, Coordinate{1, 2}.Equal(Coordinate{1, 2}))
	assert.Equal(t, Coordinate{4, 6}, Coordinate{1, 2}.Add(Coordinate{3, 4}))
}
