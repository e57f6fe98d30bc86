package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/mitchelldurbincs/HexDominion/internal/game/core"
	"github.com/mitchelldurbincs/HexDominion/internal/ui/layout"
)

// buildKeys arms the buildable kinds in hotkey order.
var buildKeys = []ebiten.Key{ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3}

// difficultyKeys pick a level by position in the sorted level list.
var difficultyKeys = []ebiten.Key{ebiten.KeyF1, ebiten.KeyF2, ebiten.KeyF3, ebiten.KeyF4}

var arrowMoves = []struct {
	key    ebiten.Key
	dx, dy int
}{
	{ebiten.KeyArrowUp, 0, -1},
	{ebiten.KeyArrowDown, 0, 1},
	{ebiten.KeyArrowLeft, -1, 0},
	{ebiten.KeyArrowRight, 1, 0},
}

// Handler turns keyboard and mouse gestures into engine commands.
//
//	click        select cell
//	arrows       move selection
//	1 / 2 / 3    arm command center / turret / refinery (press again to build)
//	Enter        confirm armed build
//	Esc, right   cancel armed build
//	D            demolish own building at selection
//	F1..F4       difficulty
//	R            restart
type Handler struct {
	layout *layout.Hex
	levels []string

	hoverX, hoverY int
	hovering       bool
}

func NewHandler(l *layout.Hex, levels []string) *Handler {
	return &Handler{layout: l, levels: levels}
}

// Update reads this frame's input. selection is the engine's current
// selected cell, used by demolish.
func (h *Handler) Update(selection core.Coordinate) []core.Command {
	var cmds []core.Command

	mx, my := ebiten.CursorPosition()
	h.hoverX, h.hoverY, h.hovering = h.layout.CellAt(float64(mx), float64(my))

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && h.hovering {
		cmds = append(cmds, &core.SelectCellCommand{X: h.hoverX, Y: h.hoverY})
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		cmds = append(cmds, &core.CancelBuildCommand{})
	}

	for _, m := range arrowMoves {
		if inpututil.IsKeyJustPressed(m.key) {
			cmds = append(cmds, &core.MoveSelectionCommand{DX: m.dx, DY: m.dy})
		}
	}

	for i, key := range buildKeys {
		if i < len(core.BuildableKinds) && inpututil.IsKeyJustPressed(key) {
			cmds = append(cmds, &core.ArmBuildCommand{Kind: core.BuildableKinds[i]})
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		cmds = append(cmds, &core.ConfirmBuildCommand{})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		cmds = append(cmds, &core.DemolishCommand{X: selection.X, Y: selection.Y})
	}

	for i, key := range difficultyKeys {
		if i < len(h.levels) && inpututil.IsKeyJustPressed(key) {
			cmds = append(cmds, &core.SetDifficultyCommand{Level: h.levels[i]})
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		cmds = append(cmds, &core.RestartCommand{})
	}
	return cmds
}

// Hovered returns the cell under the cursor, if any.
func (h *Handler) Hovered() (int, int, bool) {
	return h.hoverX, h.hoverY, h.hovering
}

// Levels returns the difficulty names bound to F1 onwards.
func (h *Handler) Levels() []string {
	return h.levels
}
