package game

import (
	"strings"

	"github.com/mitchelldurbincs/HexDominion/internal/game/core"
)

// This file contains the text rendering of the hex grid used by the
// headless runner and the session snapshot.

// ANSI color codes
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorWhite  = "\033[37m"
	ColorGray   = "\033[90m"
)

const (
	EmptySymbol         = "·"
	CommandCenterSymbol = "♔"
	TurretSymbol        = "†"
	RefinerySymbol      = "⬢"
	PlaceholderSymbol   = "◌"
	ImpassableSymbol    = "▲"
	DepositSymbol       = "◆"
)

var factionColors = map[core.Faction]string{
	core.FactionHuman:   ColorBlue,
	core.FactionCPU:     ColorRed,
	core.FactionPending: ColorGreen,
}

var factionLetters = map[core.Faction]byte{
	core.FactionHuman:   'H',
	core.FactionCPU:     'C',
	core.FactionPending: 'P',
}

// Board returns a colored rendering of the grid. Odd columns are drawn half
// a row above even ones, matching the hex adjacency.
func (e *Engine) Board() string {
	return renderBoard(e.grid, true)
}

// PlainBoard is Board without ANSI colors.
func (e *Engine) PlainBoard() string {
	return renderBoard(e.grid, false)
}

func renderBoard(g *core.Grid, colored bool) string {
	var sb strings.Builder
	sb.Grow((g.W*3*12 + 8) * (2*g.H + 2))

	sb.WriteString("   ")
	for x := 0; x < g.W; x++ {
		sb.WriteString(core.IntToStringFixedWidth(x, 2))
		sb.WriteString(" ")
	}
	sb.WriteString("\n")

	for y := 0; y < g.H; y++ {
		for _, parity := range []int{1, 0} {
			if parity == 0 {
				sb.WriteString(core.IntToStringFixedWidth(y, 2))
				sb.WriteString(" ")
			} else {
				sb.WriteString("   ")
			}
			for x := 0; x < g.W; x++ {
				if x%2 != parity {
					sb.WriteString("   ")
					continue
				}
				writeCell(&sb, g.GetCell(x, y), colored)
				sb.WriteString(" ")
			}
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(CommandCenterSymbol + "=command center " + TurretSymbol + "=turret " + RefinerySymbol + "=refinery ")
	sb.WriteString(DepositSymbol + "=deposit " + ImpassableSymbol + "=impassable " + PlaceholderSymbol + "=preview H/C=owner\n")
	return sb.String()
}

// writeCell writes a two-glyph cell: owner letter then contents.
func writeCell(sb *strings.Builder, c *core.Cell, colored bool) {
	if colored {
		color, ok := factionColors[c.Owner]
		if !ok {
			color = ColorGray
		}
		if c.InvalidSelection {
			color = ColorYellow
		}
		sb.WriteString(color)
	}

	if letter, ok := factionLetters[c.Owner]; ok {
		sb.WriteByte(letter)
	} else {
		sb.WriteByte(' ')
	}
	sb.WriteString(cellSymbol(c))

	if colored {
		sb.WriteString(ColorReset)
	}
}

func cellSymbol(c *core.Cell) string {
	if b := c.Building; b != nil {
		switch b.Kind {
		case core.KindCommandCenter:
			return CommandCenterSymbol
		case core.KindTurret:
			return TurretSymbol
		case core.KindRefinery:
			return RefinerySymbol
		default:
			return PlaceholderSymbol
		}
	}
	switch c.Terrain {
	case core.TerrainImpassable:
		return ImpassableSymbol
	case core.TerrainResource:
		return DepositSymbol
	default:
		return EmptySymbol
	}
}
