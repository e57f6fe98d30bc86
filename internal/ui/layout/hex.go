// Package layout maps grid cells to screen positions for the flat-topped hex
// board. Odd columns sit half a row higher than even ones, which matches the
// neighbor rule of core.Grid.
package layout

import "math"

var sqrt3 = math.Sqrt(3)

// Hex is the screen geometry of a board.
type Hex struct {
	Size    float64 // center to corner
	OffsetX float64
	OffsetY float64
	W, H    int // grid dimensions
}

// NewHex builds a layout for a w×h grid with the board's top-left corner at
// (offsetX, offsetY).
func NewHex(size float64, w, h int, offsetX, offsetY float64) *Hex {
	return &Hex{Size: size, OffsetX: offsetX, OffsetY: offsetY, W: w, H: h}
}

// Center returns the pixel center of cell (x, y).
func (l *Hex) Center(x, y int) (float64, float64) {
	cx := l.OffsetX + l.Size + 1.5*l.Size*float64(x)
	cy := l.OffsetY + sqrt3*l.Size*(float64(y)+1)
	if x%2 != 0 {
		cy -= sqrt3 / 2 * l.Size
	}
	return cx, cy
}

// Corners returns the six corners of cell (x, y), starting east and going
// clockwise in screen space.
func (l *Hex) Corners(x, y int) [6][2]float64 {
	cx, cy := l.Center(x, y)
	var out [6][2]float64
	for i := range out {
		a := math.Pi / 3 * float64(i)
		out[i] = [2]float64{cx + l.Size*math.Cos(a), cy + l.Size*math.Sin(a)}
	}
	return out
}

// Bounds returns the pixel size of the whole board including offsets.
func (l *Hex) Bounds() (int, int) {
	w := l.OffsetX + l.Size*(1.5*float64(l.W)+0.5)
	h := l.OffsetY + sqrt3*l.Size*(float64(l.H)+0.5)
	return int(math.Ceil(w)), int(math.Ceil(h))
}

// CellAt returns the cell under pixel (px, py).
func (l *Hex) CellAt(px, py float64) (int, int, bool) {
	col := int(math.Round((px - l.OffsetX - l.Size) / (1.5 * l.Size)))
	row := int(math.Round((py-l.OffsetY)/(sqrt3*l.Size))) - 1

	bestX, bestY := -1, -1
	best := math.Inf(1)
	for x := col - 1; x <= col+1; x++ {
		for y := row - 1; y <= row+1; y++ {
			if x < 0 || y < 0 || x >= l.W || y >= l.H {
				continue
			}
			cx, cy := l.Center(x, y)
			if d := math.Hypot(px-cx, py-cy); d < best {
				best, bestX, bestY = d, x, y
			}
		}
	}
	// Inside the hexagon means within the inner radius for sure; corners
	// between the inner and outer radius resolve to the nearest center.
	if bestX < 0 || best > l.Size {
		return 0, 0, false
	}
	return bestX, bestY, true
}
