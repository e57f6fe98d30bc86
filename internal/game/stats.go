package game

import "github.com/mitchelldurbincs/HexDominion/internal/game/core"

// FactionStats is a per-tick summary of one faction's holdings.
type FactionStats struct {
	Cells          int
	Buildings      int
	CommandCenters int
	Turrets        int
	Refineries     int
	Landing        int
	Pool           int
}

// updateStats recounts holdings with a full scan; the grid is small enough
// that incremental bookkeeping buys nothing.
func (e *Engine) updateStats() {
	next := map[core.Faction]FactionStats{
		core.FactionHuman: {Pool: e.pools[core.FactionHuman]},
		core.FactionCPU:   {Pool: e.pools[core.FactionCPU]},
	}

	for i := range e.grid.C {
		c := &e.grid.C[i]
		if s, ok := next[c.Owner]; ok {
			s.Cells++
			next[c.Owner] = s
		}
		if !c.HasRealBuilding() {
			continue
		}
		s, ok := next[c.Building.Owner]
		if !ok {
			continue
		}
		s.Buildings++
		switch c.Building.Kind {
		case core.KindCommandCenter:
			s.CommandCenters++
		case core.KindTurret:
			s.Turrets++
		case core.KindRefinery:
			s.Refineries++
		}
		if !c.IsLanded() {
			s.Landing++
		}
		next[c.Building.Owner] = s
	}

	for f, s := range next {
		prev, seen := e.stats[f]
		if seen && prev.CommandCenters > 0 && s.CommandCenters == 0 {
			e.logger.Info().Str("faction", f.String()).Int("tick", e.tick).Msg("Faction lost its last command center")
		}
	}
	e.stats = next
	e.logger.Debug().
		Int("human_cells", next[core.FactionHuman].Cells).
		Int("cpu_cells", next[core.FactionCPU].Cells).
		Msg("Faction stats updated")
}

// Stats returns the last computed summary for f.
func (e *Engine) Stats(f core.Faction) FactionStats {
	return e.stats[f]
}
