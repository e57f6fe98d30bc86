package renderer

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// HoverColor is premultiplied, like every color handed to drawTriangles.
var HoverColor = color.RGBA{48, 48, 48, 48}

// DrawSelection outlines the selected cell, in the invalid color when the
// armed preview there is not placeable.
func (br *BoardRenderer) DrawSelection(screen *ebiten.Image, x, y int, invalid bool) {
	clr := br.palette.Selection
	if invalid {
		clr = br.palette.Invalid
		br.fillHex(screen, x, y, 1, withAlpha(clr, 80))
	}
	br.strokeHex(screen, x, y, 1, clr, 3)
}

// DrawHover tints the cell under the cursor.
func (br *BoardRenderer) DrawHover(screen *ebiten.Image, x, y int) {
	br.fillHex(screen, x, y, 1, HoverColor)
}

// DrawPlacementMask marks every cell where the armed kind could be built.
func (br *BoardRenderer) DrawPlacementMask(screen *ebiten.Image, h int, mask []bool) {
	marker := withAlpha(br.palette.Selection, 60)
	for i, ok := range mask {
		if ok {
			br.fillHex(screen, i/h, i%h, 0.3, marker)
		}
	}
}

func withAlpha(c color.Color, a uint8) color.Color {
	r, g, b, _ := c.RGBA()
	// premultiplied
	f := uint32(a)
	return color.RGBA{
		R: uint8((r >> 8) * f / 255),
		G: uint8((g >> 8) * f / 255),
		B: uint8((b >> 8) * f / 255),
		A: a,
	}
}
