package ui

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"sort"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/rs/zerolog"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/mitchelldurbincs/HexDominion/internal/config"
	"github.com/mitchelldurbincs/HexDominion/internal/game"
	"github.com/mitchelldurbincs/HexDominion/internal/game/core"
	"github.com/mitchelldurbincs/HexDominion/internal/ui/input"
	"github.com/mitchelldurbincs/HexDominion/internal/ui/layout"
	"github.com/mitchelldurbincs/HexDominion/internal/ui/renderer"
)

const (
	boardMargin  = 12
	hudHeight    = 96
	statusFrames = 120
)

// Game is the ebiten front end for one engine: it feeds keyboard and mouse
// gestures in as commands and advances the engine one frame per Update.
type Game struct {
	engine  *game.Engine
	layout  *layout.Hex
	board   *renderer.BoardRenderer
	input   *input.Handler
	face    font.Face
	logger  zerolog.Logger
	palette renderer.Palette

	width, height int
	frameTime     time.Duration

	status      string
	statusTimer int
}

// NewGame sizes the window to fit the board plus the status panel.
func NewGame(engine *game.Engine, cfg *config.Config, logger zerolog.Logger) *Game {
	g := engine.Grid()
	l := layout.NewHex(float64(cfg.UI.Hex.Size), g.W, g.H, boardMargin, boardMargin)

	bw, bh := l.Bounds()
	width := max(cfg.UI.Window.Width, bw+boardMargin)
	height := max(cfg.UI.Window.Height, bh+boardMargin+hudHeight)

	palette := renderer.PaletteFromConfig(cfg.Colors)
	board := renderer.NewBoardRenderer(l, palette, basicfont.Face7x13)
	board.SetShowCoordinates(cfg.Development.ShowCoordinates)

	return &Game{
		engine:    engine,
		layout:    l,
		board:     board,
		input:     input.NewHandler(l, engine.Levels().Names()),
		face:      basicfont.Face7x13,
		logger:    logger.With().Str("component", "UIGame").Logger(),
		palette:   palette,
		width:     width,
		height:    height,
		frameTime: time.Second / time.Duration(ebiten.TPS()),
	}
}

// WindowSize returns the size NewGame chose.
func (g *Game) WindowSize() (int, int) {
	return g.width, g.height
}

// Update proceeds the game state.
func (g *Game) Update() error {
	ctx := context.Background()

	if cmds := g.input.Update(g.engine.Selection()); len(cmds) > 0 {
		if err := g.engine.Apply(ctx, cmds...); err != nil && !errors.Is(err, core.ErrNoBuildArmed) {
			g.logger.Debug().Err(err).Msg("Command rejected")
			g.showStatus(err.Error())
		}
	}

	if g.statusTimer > 0 {
		g.statusTimer--
	}

	g.engine.AdvanceClock(g.frameTime)
	if _, err := g.engine.AdvanceFrame(ctx); err != nil && !errors.Is(err, core.ErrGameOver) {
		g.logger.Error().Err(err).Msg("Frame failed")
		return err
	}
	return nil
}

func (g *Game) showStatus(msg string) {
	g.status = msg
	g.statusTimer = statusFrames
}

// Draw renders the game screen.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.palette.Background)

	grid := g.engine.Grid()
	g.board.Draw(screen, grid)

	if kind, armed := g.engine.Armed(); armed {
		g.board.DrawPlacementMask(screen, grid.H, g.engine.PlacementMask(kind))
	}
	if x, y, ok := g.input.Hovered(); ok {
		g.board.DrawHover(screen, x, y)
	}
	sel := g.engine.Selection()
	g.board.DrawSelection(screen, sel.X, sel.Y, g.engine.InvalidSelection())

	g.drawHUD(screen)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	top := g.height - hudHeight + 14
	e := g.engine

	armed := "-"
	if kind, ok := e.Armed(); ok {
		armed = kind.DisplayName()
	}
	text.Draw(screen, fmt.Sprintf("Resources: %d   Armed: %s   Selected: %s",
		e.Pool(core.FactionHuman), armed, e.SelectedCellInfo()), g.face, boardMargin, top, color.White)

	text.Draw(screen, "Cooldowns: "+cooldownLine(e), g.face, boardMargin, top+16, color.Gray{Y: 200})

	human, cpu := e.Stats(core.FactionHuman), e.Stats(core.FactionCPU)
	text.Draw(screen, fmt.Sprintf("Territory  you %d  cpu %d   Difficulty: %s   Tick: %d",
		human.Cells, cpu.Cells, e.Difficulty(), e.CurrentTick()), g.face, boardMargin, top+32, color.Gray{Y: 200})

	levels := g.input.Levels()
	keys := make([]string, len(levels))
	for i, l := range levels {
		keys[i] = fmt.Sprintf("F%d %s", i+1, l)
	}
	text.Draw(screen, "1/2/3 arm (twice builds)  Enter build  Esc cancel  arrows move  D demolish  R restart  "+
		strings.Join(keys, " "), g.face, boardMargin, top+48, color.Gray{Y: 140})

	if g.statusTimer > 0 && g.status != "" {
		text.Draw(screen, g.status, g.face, boardMargin, top+64, g.palette.Invalid)
	}

	if e.IsGameOver() {
		banner := "YOU WIN - press R to play again"
		if e.GameState() == "Lose" {
			banner = "YOU LOSE - press R to try again"
		}
		ebitenutil.DebugPrintAt(screen, banner, g.width/2-len(banner)*3, boardMargin/2)
	}
}

func cooldownLine(e *game.Engine) string {
	cds := e.Cooldowns()
	if len(cds) == 0 {
		return "ready"
	}
	parts := make([]string, 0, len(cds))
	for kind, left := range cds {
		parts = append(parts, fmt.Sprintf("%s %ds", kind.DisplayName(), left))
	}
	sort.Strings(parts)
	return strings.Join(parts, "  ")
}

// Layout defines the Ebitengine screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return g.width, g.height
}
