// Package planner drives the scripted opponent.
//
// The opponent follows a fixed build order: a command center next to the
// first free resource deposit, a refinery, more refineries while owned
// deposits remain, then turrets on the side of its territory facing the
// human command center. It acts once every Divisor simulation ticks.
package planner

import (
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/HexDominion/internal/game/core"
)

// DefaultMaxAttempts bounds the random draws for a turret site.
const DefaultMaxAttempts = 64

// Builder places a building for the opponent. Placement is free of cost
// and cooldown; the implementation recomputes territory before returning.
type Builder interface {
	PlaceBuilding(kind core.BuildingKind, at core.Coordinate, owner core.Faction) (*core.Building, error)
}

// StepResult describes what a single Step did.
type StepResult struct {
	Acted  bool // the step counter allowed an action this tick
	Action Action
	From   State
	To     State
	Placed *core.Building
	At     core.Coordinate
}

// Transitioned reports whether the planner changed state.
func (r StepResult) Transitioned() bool { return r.Acted && r.From != r.To }

type Planner struct {
	state       State
	counter     int
	divisor     int
	maxAttempts int
	faction     core.Faction

	builder Builder
	rng     *rand.Rand
	logger  zerolog.Logger
}

// Config carries the tunables of a Planner.
type Config struct {
	Divisor     int
	MaxAttempts int
	Rng         *rand.Rand
	Logger      zerolog.Logger
}

func New(builder Builder, cfg Config) *Planner {
	if cfg.Divisor <= 0 {
		cfg.Divisor = DefaultLevels()[DefaultDifficulty]
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.Rng == nil {
		cfg.Rng = rand.New(rand.NewSource(1))
	}
	return &Planner{
		state:       StateInit,
		divisor:     cfg.Divisor,
		maxAttempts: cfg.MaxAttempts,
		faction:     core.FactionCPU,
		builder:     builder,
		rng:         cfg.Rng,
		logger:      cfg.Logger.With().Str("component", "Planner").Logger(),
	}
}

func (p *Planner) State() State { return p.state }
func (p *Planner) Counter() int { return p.counter }
func (p *Planner) Divisor() int { return p.divisor }

// SetDivisor changes the cadence without resetting progress.
func (p *Planner) SetDivisor(d int) {
	if d > 0 {
		p.divisor = d
	}
}

// Reset returns the planner to its initial state.
func (p *Planner) Reset() {
	p.state = StateInit
	p.counter = 0
}

// Step advances the step counter and, when it is a multiple of the divisor,
// dispatches the action of the current state.
func (p *Planner) Step(g *core.Grid, tick int) StepResult {
	p.counter++
	if p.counter%p.divisor != 0 {
		return StepResult{From: p.state, To: p.state}
	}

	action, ok := ActionFor(p.state)
	if !ok {
		p.logger.Error().Str("state", p.state.String()).Msg("No action for planner state")
		return StepResult{From: p.state, To: p.state}
	}

	res := StepResult{Acted: true, Action: action, From: p.state}
	var next State
	switch action {
	case ActionCreateCC:
		next = p.createCC(g, &res)
	case ActionCreateMine:
		next = p.createMine(g, &res)
	case ActionNextMine:
		next = p.nextMine(g, &res)
	case ActionCreateTurret:
		next = p.createTurret(g, &res)
	}

	if !CanTransition(p.state, action, next) {
		p.logger.Error().
			Str("from", p.state.String()).
			Str("action", action.String()).
			Str("to", next.String()).
			Msg("Illegal planner transition rejected")
		next = p.state
	}
	p.state = next
	res.To = next

	ev := p.logger.Debug()
	if res.Transitioned() {
		ev = p.logger.Info()
	}
	ev.Int("tick", tick).
		Str("action", action.String()).
		Str("from", res.From.String()).
		Str("to", res.To.String()).
		Bool("placed", res.Placed != nil).
		Msg("Planner step")
	return res
}

func (p *Planner) place(kind core.BuildingKind, at core.Coordinate, res *StepResult) bool {
	b, err := p.builder.PlaceBuilding(kind, at, p.faction)
	if err != nil {
		p.logger.Debug().Err(err).Str("kind", kind.String()).Str("at", at.String()).Msg("Planner placement failed")
		return false
	}
	res.Placed = b
	res.At = at
	return true
}

// availableDeposits are deposits without a building that the human does not own.
func availableDeposits(g *core.Grid, faction core.Faction) []core.CellRef {
	var out []core.CellRef
	for _, ref := range g.FindTerrain(core.TerrainResource) {
		c := ref.Cell
		if c.HasRealBuilding() {
			continue
		}
		if c.Owner == core.FactionNone || c.Owner == faction {
			out = append(out, ref)
		}
	}
	return out
}

func (p *Planner) createCC(g *core.Grid, res *StepResult) State {
	for _, dep := range availableDeposits(g, p.faction) {
		for _, dx := range []int{1, -1} {
			at := core.Coordinate{X: dep.Coord.X + dx, Y: dep.Coord.Y}
			cell := g.At(at)
			if cell == nil || !cell.IsBuildable() {
				continue
			}
			if p.place(core.KindCommandCenter, at, res) {
				return StateCommandCenterBuilt
			}
		}
	}
	p.logger.Debug().Msg("No site for command center")
	return StateInit
}

// createMine advances even when no deposit is free so the opponent moves on to turrets.
func (p *Planner) createMine(g *core.Grid, res *StepResult) State {
	if deps := availableDeposits(g, p.faction); len(deps) > 0 {
		p.place(core.KindRefinery, deps[0].Coord, res)
	}
	return StateMineBuilt
}

func (p *Planner) nextMine(g *core.Grid, res *StepResult) State {
	for _, dep := range g.FindTerrain(core.TerrainResource) {
		if dep.Cell.Owner != p.faction || dep.Cell.HasRealBuilding() {
			continue
		}
		if p.place(core.KindRefinery, dep.Coord, res) {
			return StateMineBuilt
		}
	}
	return StateLocatingEnemy
}

// turretCandidates filters the opponent's territory to the half facing the enemy.
func (p *Planner) turretCandidates(g *core.Grid) []core.CellRef {
	own := g.FindOwnedCells(p.faction)

	ownCCs := g.FindOwnedBuildings(core.KindCommandCenter, p.faction)
	enemyCCs := g.FindOwnedBuildings(core.KindCommandCenter, p.faction.Opponent())
	if len(ownCCs) == 0 || len(enemyCCs) == 0 {
		return own
	}

	cc := ownCCs[0].Coord
	facing := cc.DirectionTo(enemyCCs[0].Coord)
	if facing == core.DirectionSame {
		facing = core.DirectionRight
	}
	filtered := own[:0:0]
	for _, ref := range own {
		if sideOf(ref.Coord, cc) == facing {
			filtered = append(filtered, ref)
		}
	}
	return filtered
}

// sideOf classifies a cell against the command center column. Cells in the
// same column count as the right side.
func sideOf(cell, cc core.Coordinate) core.Direction {
	if cell.X < cc.X {
		return core.DirectionLeft
	}
	return core.DirectionRight
}

func (p *Planner) createTurret(g *core.Grid, res *StepResult) State {
	candidates := buildable(p.turretCandidates(g))
	if len(candidates) == 0 {
		p.logger.Debug().Msg("No buildable owned cells for turret")
		return StateLocatingEnemy
	}

	total := len(candidates)
	for attempt := 0; attempt < p.maxAttempts && len(candidates) > 0; attempt++ {
		i := p.rng.Intn(len(candidates))
		if p.place(core.KindTurret, candidates[i].Coord, res) {
			return StateMineBuilt
		}
		candidates[i] = candidates[len(candidates)-1]
		candidates = candidates[:len(candidates)-1]
	}

	p.logger.Debug().
		Int("candidates", total).
		Int("attempts", p.maxAttempts).
		Msg("Turret placement exhausted attempts")
	return StateLocatingEnemy
}

func buildable(refs []core.CellRef) []core.CellRef {
	out := make([]core.CellRef, 0, len(refs))
	for _, ref := range refs {
		if ref.Cell.IsBuildable() {
			out = append(out, ref)
		}
	}
	return out
}
