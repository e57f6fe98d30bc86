package common

import (
	"image/color"

	"github.com/mitchelldurbincs/HexDominion/internal/game/core"
)

// FactionColors defines the territory color of each faction
var FactionColors = map[core.Faction]color.Color{
	core.FactionNone:    color.RGBA{60, 64, 72, 255},   // neutral slate
	core.FactionHuman:   color.RGBA{50, 110, 210, 255}, // blue
	core.FactionCPU:     color.RGBA{200, 60, 50, 255},  // red
	core.FactionPending: color.RGBA{90, 170, 120, 255}, // preview green
}

// Tile colors
var (
	ImpassableColor = color.RGBA{25, 25, 25, 255}
	ResourceColor   = color.RGBA{230, 190, 60, 255}
	ElevatedColor   = color.RGBA{110, 110, 120, 255}
	BuildingColor   = color.White
)

// UI colors
var (
	BackgroundColor = color.RGBA{12, 12, 16, 255}
	GridLineColor   = color.RGBA{40, 40, 48, 255}
	SelectionColor  = color.White
	InvalidColor    = color.RGBA{255, 40, 40, 255}
)

// FactionColor returns the territory color of f, falling back to neutral.
func FactionColor(f core.Faction) color.Color {
	if c, ok := FactionColors[f]; ok {
		return c
	}
	return FactionColors[core.FactionNone]
}

// RGB converts a configured [r,g,b] triple to an opaque color.
func RGB(rgb [3]int) color.RGBA {
	return color.RGBA{R: uint8(rgb[0]), G: uint8(rgb[1]), B: uint8(rgb[2]), A: 255}
}

// Shade scales the color channels of c by f in [0,1]; alpha is kept.
func Shade(c color.Color, f float64) color.RGBA {
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	r, g, b, a := c.RGBA()
	return color.RGBA{
		R: uint8(float64(r>>8) * f),
		G: uint8(float64(g>>8) * f),
		B: uint8(float64(b>>8) * f),
		A: uint8(a >> 8),
	}
}
