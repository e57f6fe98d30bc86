package common

import "github.com/mitchelldurbincs/HexDominion/internal/game/core"

// IsValidCoordinate checks if the given coordinates are within the bounds of the grid
func IsValidCoordinate(x, y, width, height int) bool {
	return x >= 0 && x < width && y >= 0 && y < height
}

// IsValidCoordinateStruct checks if the given coordinate struct is within the bounds of the grid
func IsValidCoordinateStruct(c core.Coordinate, width, height int) bool {
	return c.IsValid(width, height)
}

// IsAdjacent checks if two cells share a hex edge
func IsAdjacent(x1, y1, x2, y2 int) bool {
	return core.NewCoordinate(x1, y1).IsAdjacentTo(core.NewCoordinate(x2, y2))
}

// ClampCoordinate moves c onto the nearest in-bounds cell.
func ClampCoordinate(c core.Coordinate, width, height int) core.Coordinate {
	return core.Coordinate{
		X: Clamp(c.X, 0, width-1),
		Y: Clamp(c.Y, 0, height-1),
	}
}
