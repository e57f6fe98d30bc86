package core

import (
	"fmt"
	"math"
)

// Coordinate addresses a cell by column (X) and row (Y).
//
// The grid uses an offset hex layout: even columns are drawn half a cell
// lower than odd columns, so the diagonal neighbours of a cell depend on the
// parity of its column.
type Coordinate struct {
	X, Y int
}

// NewCoordinate creates a new coordinate with the given column and row
func NewCoordinate(x, y int) Coordinate {
	return Coordinate{X: x, Y: y}
}

// FromIndex creates a coordinate from a grid index using column-major ordering
func FromIndex(idx, height int) Coordinate {
	return Coordinate{
		X: idx / height,
		Y: idx % height,
	}
}

// IsValid checks if the coordinate is within the given bounds
func (c Coordinate) IsValid(width, height int) bool {
	return c.X >= 0 && c.X < width && c.Y >= 0 && c.Y < height
}

// ToIndex converts the coordinate to a grid index using column-major ordering
func (c Coordinate) ToIndex(height int) int {
	return c.X*height + c.Y
}

// IsEvenColumn reports whether the coordinate sits in an even column
func (c Coordinate) IsEvenColumn() bool {
	return c.X%2 == 0
}

// Neighbors returns the six hex neighbours of this coordinate.
// Order: up, down, left, right, then the two diagonals. Propagation relies on
// this order being stable.
func (c Coordinate) Neighbors() [6]Coordinate {
	diag := -1
	if c.IsEvenColumn() {
		diag = 1
	}
	return [6]Coordinate{
		{X: c.X, Y: c.Y - 1},
		{X: c.X, Y: c.Y + 1},
		{X: c.X - 1, Y: c.Y},
		{X: c.X + 1, Y: c.Y},
		{X: c.X - 1, Y: c.Y + diag},
		{X: c.X + 1, Y: c.Y + diag},
	}
}

// ValidNeighbors returns only the neighbors that are within the given bounds
func (c Coordinate) ValidNeighbors(width, height int) []Coordinate {
	neighbors := c.Neighbors()
	valid := make([]Coordinate, 0, len(neighbors))

	for _, n := range neighbors {
		if n.IsValid(width, height) {
			valid = append(valid, n)
		}
	}

	return valid
}

// IsAdjacentTo checks if other is one of the six hex neighbours
func (c Coordinate) IsAdjacentTo(other Coordinate) bool {
	for _, n := range c.Neighbors() {
		if n == other {
			return true
		}
	}
	return false
}

// EuclideanDistance is the plane distance over raw (column, row) values.
// It is not a hex distance; turret range is measured with it.
func (c Coordinate) EuclideanDistance(other Coordinate) float64 {
	dx := float64(other.X - c.X)
	dy := float64(other.Y - c.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// Add returns a new coordinate that is the sum of this coordinate and another
func (c Coordinate) Add(other Coordinate) Coordinate {
	return Coordinate{
		X: c.X + other.X,
		Y: c.Y + other.Y,
	}
}

// Equal checks if two coordinates are equal
func (c Coordinate) Equal(other Coordinate) bool {
	return c.X == other.X && c.Y == other.Y
}

// String returns a string representation of the coordinate
func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Direction is the side of the map an enemy lies on, relative to a column.
type Direction int

const (
	DirectionLeft  Direction = -1
	DirectionSame  Direction = 0
	DirectionRight Direction = 1
)

// DirectionTo compares columns only.
func (c Coordinate) DirectionTo(other Coordinate) Direction {
	switch {
	case other.X < c.X:
		return DirectionLeft
	case other.X > c.X:
		return DirectionRight
	default:
		return DirectionSame
	}
}

func (d Direction) String() string {
	switch d {
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	default:
		return "same"
	}
}
