package renderer

import (
	"image"
	"image/color"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"github.com/mitchelldurbincs/HexDominion/internal/common"
	"github.com/mitchelldurbincs/HexDominion/internal/config"
	"github.com/mitchelldurbincs/HexDominion/internal/game/core"
	"github.com/mitchelldurbincs/HexDominion/internal/ui/layout"
)

// Palette holds every color the board uses.
type Palette struct {
	Factions   map[core.Faction]color.Color
	Impassable color.Color
	Resource   color.Color
	Elevated   color.Color
	Building   color.Color
	Background color.Color
	GridLines  color.Color
	Selection  color.Color
	Invalid    color.Color
}

// DefaultPalette uses the built-in colors.
func DefaultPalette() Palette {
	return Palette{
		Factions:   common.FactionColors,
		Impassable: common.ImpassableColor,
		Resource:   common.ResourceColor,
		Elevated:   common.ElevatedColor,
		Building:   common.BuildingColor,
		Background: common.BackgroundColor,
		GridLines:  common.GridLineColor,
		Selection:  common.SelectionColor,
		Invalid:    common.InvalidColor,
	}
}

// PaletteFromConfig reads the colors section of the configuration.
func PaletteFromConfig(c config.ColorsConfig) Palette {
	p := DefaultPalette()
	p.Factions = map[core.Faction]color.Color{
		core.FactionNone:    common.RGB(c.Factions.Neutral),
		core.FactionHuman:   common.RGB(c.Factions.Human),
		core.FactionCPU:     common.RGB(c.Factions.CPU),
		core.FactionPending: common.RGB(c.Factions.Pending),
	}
	p.Impassable = common.RGB(c.Tiles.Impassable)
	p.Resource = common.RGB(c.Tiles.Resource)
	p.Elevated = common.RGB(c.Tiles.Elevated)
	p.Background = common.RGB(c.UI.Background)
	p.GridLines = common.RGB(c.UI.GridLines)
	p.Selection = common.RGB(c.UI.Selection)
	p.Invalid = common.RGB(c.UI.Invalid)
	return p
}

func (p Palette) faction(f core.Faction) color.Color {
	if c, ok := p.Factions[f]; ok {
		return c
	}
	return common.FactionColor(f)
}

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// BoardRenderer draws the hex grid.
type BoardRenderer struct {
	layout          *layout.Hex
	palette         Palette
	defaultFont     font.Face
	showCoordinates bool
}

// NewBoardRenderer returns a renderer ready to use.
func NewBoardRenderer(l *layout.Hex, p Palette, f font.Face) *BoardRenderer {
	return &BoardRenderer{layout: l, palette: p, defaultFont: f}
}

// SetShowCoordinates labels every cell with its column and row.
func (br *BoardRenderer) SetShowCoordinates(on bool) {
	br.showCoordinates = on
}

// Draw renders the board on the supplied Ebiten screen.
func (br *BoardRenderer) Draw(screen *ebiten.Image, g *core.Grid) {
	if g == nil {
		return
	}
	for i := range g.C {
		x, y := g.XY(i)
		br.drawCell(screen, x, y, &g.C[i])
	}
	// Buildings go on top so a landing building can overlap the cell above.
	for i := range g.C {
		if g.C[i].Building != nil {
			x, y := g.XY(i)
			br.drawBuilding(screen, x, y, &g.C[i])
		}
	}
}

func (br *BoardRenderer) drawCell(screen *ebiten.Image, x, y int, c *core.Cell) {
	var fill color.Color
	switch {
	case c.IsImpassable():
		fill = br.palette.Impassable
	default:
		fill = br.palette.faction(c.Owner)
		if c.Elevated {
			fill = blend(fill, br.palette.Elevated)
		}
	}
	br.fillHex(screen, x, y, 1, fill)
	br.strokeHex(screen, x, y, 1, br.palette.GridLines, 1)

	if c.IsResource() {
		br.fillHex(screen, x, y, 0.45, br.palette.Resource)
	}

	if br.showCoordinates && br.defaultFont != nil {
		cx, cy := br.layout.Center(x, y)
		label := strconv.Itoa(x) + "," + strconv.Itoa(y)
		text.Draw(screen, label, br.defaultFont, int(cx)-len(label)*3, int(cy+br.layout.Size*0.7), br.palette.GridLines)
	}
}

// drawBuilding draws the building symbol, dropping in from above while it
// lands, with a health bar once damaged.
func (br *BoardRenderer) drawBuilding(screen *ebiten.Image, x, y int, c *core.Cell) {
	b := c.Building
	cx, cy := br.layout.Center(x, y)
	drop := float64(core.LandingComplete-c.LandingProgress) / core.LandingComplete * br.layout.Size * 2
	fx, fy := float32(cx), float32(cy-drop)
	s := float32(br.layout.Size)
	col := br.palette.Building
	if !c.IsLanded() {
		col = common.Shade(col, 0.6)
	}

	switch b.Kind {
	case core.KindCommandCenter:
		vector.DrawFilledCircle(screen, fx, fy, s*0.5, col, true)
		vector.StrokeCircle(screen, fx, fy, s*0.5, 2, br.palette.faction(b.Owner), true)
	case core.KindTurret:
		vector.DrawFilledRect(screen, fx-s*0.25, fy-s*0.15, s*0.5, s*0.4, col, true)
		vector.StrokeLine(screen, fx, fy, fx, fy-s*0.55, 3, col, true)
	case core.KindRefinery:
		vector.DrawFilledRect(screen, fx-s*0.3, fy-s*0.3, s*0.6, s*0.6, col, true)
		vector.StrokeRect(screen, fx-s*0.3, fy-s*0.3, s*0.6, s*0.6, 2, br.palette.faction(b.Owner), true)
	default:
		vector.StrokeCircle(screen, fx, fy, s*0.5, 2, br.palette.Selection, true)
		return
	}

	if b.HP < b.MaxHP {
		w := s * 1.2
		left := float32(cx) - w/2
		top := float32(cy) + s*0.55
		vector.DrawFilledRect(screen, left, top, w, 3, br.palette.Invalid, false)
		vector.DrawFilledRect(screen, left, top, w*float32(b.HPFraction()), 3, br.palette.Resource, false)
	}
}

func (br *BoardRenderer) hexPath(x, y int, scale float64) *vector.Path {
	cx, cy := br.layout.Center(x, y)
	var path vector.Path
	for i, c := range br.layout.Corners(x, y) {
		px := float32(cx + (c[0]-cx)*scale)
		py := float32(cy + (c[1]-cy)*scale)
		if i == 0 {
			path.MoveTo(px, py)
		} else {
			path.LineTo(px, py)
		}
	}
	path.Close()
	return &path
}

func (br *BoardRenderer) fillHex(screen *ebiten.Image, x, y int, scale float64, clr color.Color) {
	vs, is := br.hexPath(x, y, scale).AppendVerticesAndIndicesForFilling(nil, nil)
	drawTriangles(screen, vs, is, clr)
}

func (br *BoardRenderer) strokeHex(screen *ebiten.Image, x, y int, scale float64, clr color.Color, width float32) {
	op := &vector.StrokeOptions{Width: width, LineJoin: vector.LineJoinRound}
	vs, is := br.hexPath(x, y, scale).AppendVerticesAndIndicesForStroke(nil, nil, op)
	drawTriangles(screen, vs, is, clr)
}

func drawTriangles(screen *ebiten.Image, vs []ebiten.Vertex, is []uint16, clr color.Color) {
	r, g, b, a := clr.RGBA()
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = float32(r) / 0xffff
		vs[i].ColorG = float32(g) / 0xffff
		vs[i].ColorB = float32(b) / 0xffff
		vs[i].ColorA = float32(a) / 0xffff
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true, ColorScaleMode: ebiten.ColorScaleModePremultipliedAlpha}
	screen.DrawTriangles(vs, is, whiteSubImage, op)
}

// blend mixes two colors evenly.
func blend(a, b color.Color) color.Color {
	ar, ag, ab, _ := a.RGBA()
	br, bg, bb, _ := b.RGBA()
	return color.RGBA{
		R: uint8((ar + br) >> 9),
		G: uint8((ag + bg) >> 9),
		B: uint8((ab + bb) >> 9),
		A: 255,
	}
}
