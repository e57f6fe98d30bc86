package common

import "github.com/mitchelldurbincs/HexDominion/internal/game/core"

// Abs returns the absolute value of an integer
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Min returns the minimum of two integers
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the maximum of two integers
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi int) int {
	return Max(lo, Min(x, hi))
}

// HexDistance is the number of hex steps between two cells. Even columns sit
// half a row lower than odd ones, so offsets are converted to axial first.
func HexDistance(from, to core.Coordinate) int {
	q1, r1 := toAxial(from)
	q2, r2 := toAxial(to)
	dq := q2 - q1
	dr := r2 - r1
	return (Abs(dq) + Abs(dr) + Abs(dq+dr)) / 2
}

func toAxial(c core.Coordinate) (q, r int) {
	return c.X, c.Y - (c.X+(c.X&1))/2
}

// EuclideanDistance is the plane distance turrets use for range checks.
func EuclideanDistance(from, to core.Coordinate) float64 {
	return from.EuclideanDistance(to)
}
