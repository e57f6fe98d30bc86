// Package territory computes area-of-influence ownership over the hex grid.
//
// Every building seeds its cell with its area as remaining influence. Passes
// then run from the highest score down to 1; a cell holding score S hands
// S-1 and its owner to every neighbour nobody has claimed yet. The first
// claimant wins, and claims within one pass happen in column-major order.
package territory

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/HexDominion/internal/game/core"
)

// Preview describes the human's armed-but-unconfirmed build.
type Preview struct {
	Armed    bool
	Kind     core.BuildingKind
	Cell     core.Coordinate
	Pristine bool // no real building has been placed yet
}

// Result summarises one Recompute call.
type Result struct {
	Changed          bool // any cell changed owner
	InvalidSelection bool
	PreviewPlaced    bool
}

// Engine recomputes ownership. It holds no grid state between calls.
type Engine struct {
	templates core.Templates
	logger    zerolog.Logger
}

func NewEngine(templates core.Templates, logger zerolog.Logger) *Engine {
	return &Engine{
		templates: templates,
		logger:    logger.With().Str("component", "TerritoryEngine").Logger(),
	}
}

// Recompute resets and repropagates ownership for g. A nil preview means no
// build is armed.
func (e *Engine) Recompute(g *core.Grid, preview *Preview) Result {
	before := snapshotOwners(g)

	reset(g)
	propagate(g)

	var res Result
	if preview != nil && preview.Armed {
		cell := g.At(preview.Cell)
		switch {
		case cell == nil:
		case cell.Owner == core.FactionNone && !preview.Pristine:
			cell.InvalidSelection = true
			res.InvalidSelection = true
		case cell.Building == nil:
			tpl, err := e.templates.Get(preview.Kind)
			if err != nil {
				e.logger.Warn().Err(err).Msg("Preview for unknown building kind ignored")
				break
			}
			reset(g)
			cell.Building = core.NewPlaceholder(tpl.Area)
			propagate(g)
			res.PreviewPlaced = true
		}
	}

	for i := range g.C {
		if g.C[i].Owner != before[i] {
			res.Changed = true
			break
		}
	}

	e.logger.Debug().
		Bool("changed", res.Changed).
		Bool("invalid_selection", res.InvalidSelection).
		Bool("preview", res.PreviewPlaced).
		Msg("Territory recomputed")
	return res
}

// reset clears every transient value. Building cells keep their building's owner.
func reset(g *core.Grid) {
	for i := range g.C {
		c := &g.C[i]
		if c.Building != nil && c.Building.IsPlaceholder() {
			c.Building = nil
		}
		c.InvalidSelection = false
		c.Influence = core.NoInfluence
		c.Owner = core.FactionNone
		if c.Building != nil {
			c.Owner = c.Building.Owner
		}
	}
}

// propagate runs the seed pass and the descending score passes. Each score
// has a bucket of cell indices; a bucket is sorted before it is drained so
// claims happen in the same order as a column-major scan of the grid.
func propagate(g *core.Grid) {
	maxScore := 0
	for i := range g.C {
		if b := g.C[i].Building; b != nil && b.Area > maxScore {
			maxScore = b.Area
		}
	}
	if maxScore == 0 {
		return
	}

	buckets := make([][]int, maxScore+1)
	for i := range g.C {
		c := &g.C[i]
		if c.Building == nil {
			continue
		}
		c.Influence = c.Building.Area
		c.Owner = c.Building.Owner
		if c.Influence > 0 {
			buckets[c.Influence] = append(buckets[c.Influence], i)
		}
	}

	for score := maxScore; score >= 1; score-- {
		bucket := buckets[score]
		sort.Ints(bucket)
		for _, idx := range bucket {
			src := &g.C[idx]
			for _, n := range g.CoordOf(idx).Neighbors() {
				if !g.InBounds(n.X, n.Y) {
					continue
				}
				nIdx := g.Idx(n.X, n.Y)
				dst := &g.C[nIdx]
				if dst.Owner != core.FactionNone || dst.Influence != core.NoInfluence {
					continue
				}
				dst.Influence = score - 1
				dst.Owner = src.Owner
				if score-1 >= 1 {
					buckets[score-1] = append(buckets[score-1], nIdx)
				}
			}
		}
	}
}

func snapshotOwners(g *core.Grid) []core.Faction {
	owners := make([]core.Faction, len(g.C))
	for i := range g.C {
		owners[i] = g.C[i].Owner
	}
	return owners
}

// Counts is the number of cells held by each faction.
type Counts struct {
	Human   int
	CPU     int
	Pending int
	None    int
}

// Count tallies territory owners.
func Count(g *core.Grid) Counts {
	var c Counts
	for i := range g.C {
		switch g.C[i].Owner {
		case core.FactionHuman:
			c.Human++
		case core.FactionCPU:
			c.CPU++
		case core.FactionPending:
			c.Pending++
		default:
			c.None++
		}
	}
	return c
}
