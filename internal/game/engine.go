package game

import (
	"context"
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/HexDominion/internal/game/combat"
	"github.com/mitchelldurbincs/HexDominion/internal/game/core"
	"github.com/mitchelldurbincs/HexDominion/internal/game/events"
	"github.com/mitchelldurbincs/HexDominion/internal/game/mapgen"
	"github.com/mitchelldurbincs/HexDominion/internal/game/planner"
	"github.com/mitchelldurbincs/HexDominion/internal/game/processor"
	"github.com/mitchelldurbincs/HexDominion/internal/game/rules"
	"github.com/mitchelldurbincs/HexDominion/internal/game/states"
	"github.com/mitchelldurbincs/HexDominion/internal/game/territory"
)

// GameConfig holds configuration for creating a new game engine
type GameConfig struct {
	Map       mapgen.MapConfig
	Templates core.Templates

	StartingPool   int
	RefineryIncome int

	Difficulty         string
	Levels             planner.Levels
	PlannerMaxAttempts int

	FramesPerTick int
	LandingStep   int

	// Grid, when set, replaces map generation. Restart goes back to a copy of it.
	Grid *core.Grid

	Rng      *rand.Rand
	Seed     int64
	GameID   string
	Logger   zerolog.Logger
	EventBus *events.EventBus
}

// Engine owns the whole simulation state of one session: the grid, pools,
// cooldowns, the opponent planner and the human's selection. It is not safe
// for concurrent use; hosts serialise access.
type Engine struct {
	grid        *core.Grid
	initialGrid *core.Grid
	templates   core.Templates

	territory    *territory.Engine
	planner      *planner.Planner
	combat       *combat.Resolver
	winCondition *rules.WinConditionChecker
	placement    *rules.PlacementChecker

	commandProcessor *processor.CommandProcessor
	buildManager     *BuildManager
	tickProcessor    *TickProcessor
	cooldowns        *Cooldowns

	eventBus     *events.EventBus
	stateMachine *states.StateMachine
	gameID       string
	logger       zerolog.Logger
	rng          *rand.Rand
	seed         int64

	mapConfig      mapgen.MapConfig
	startingPool   int
	refineryIncome int
	levels         planner.Levels
	difficulty     string
	framesPerTick  int
	landingStep    int

	pools map[core.Faction]int
	stats map[core.Faction]FactionStats

	selection        core.Coordinate
	armed            bool
	armedKind        core.BuildingKind
	invalidSelection bool

	// pristine stays true until either faction places a building.
	pristine  bool
	ccsPlaced map[core.Faction]int

	tick     int
	frame    int
	nextID   int
	outcome  rules.Outcome
	gameOver bool
}

// NewEngine creates a game engine via the EngineInitializer
func NewEngine(ctx context.Context, cfg GameConfig) (*Engine, error) {
	return NewEngineInitializer(cfg).Initialize(ctx)
}

// Apply validates and executes human commands in order.
func (e *Engine) Apply(ctx context.Context, cmds ...core.Command) error {
	return e.commandProcessor.Process(ctx, e, cmds)
}

// Tick runs one simulation tick.
func (e *Engine) Tick(ctx context.Context) error {
	return e.tickProcessor.ProcessTick(ctx)
}

// AdvanceFrame moves every landing building closer to the ground and runs a
// tick every FramesPerTick frames. It reports whether a tick ran.
func (e *Engine) AdvanceFrame(ctx context.Context) (bool, error) {
	e.frame++
	e.advanceLanding()

	if e.frame%e.framesPerTick != 0 || !e.stateMachine.CurrentPhase().CanReceiveActions() {
		return false, nil
	}
	if err := e.Tick(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// Step advances frames until one tick has run. Hosts without a render loop
// use it to keep landing and ticks in step.
func (e *Engine) Step(ctx context.Context) error {
	if e.gameOver {
		return core.WrapGameStateError(e.tick, "step", core.ErrGameOver)
	}
	for i := 0; i < e.framesPerTick; i++ {
		ticked, err := e.AdvanceFrame(ctx)
		if err != nil || ticked {
			return err
		}
	}
	return nil
}

// landingIncrement decelerates as the building nears the ground.
func landingIncrement(progress, step int) int {
	return 1 + step*(core.LandingComplete-progress)/core.LandingComplete
}

func (e *Engine) advanceLanding() {
	for i := range e.grid.C {
		c := &e.grid.C[i]
		if !c.HasRealBuilding() || c.IsLanded() {
			continue
		}
		c.LandingProgress += landingIncrement(c.LandingProgress, e.landingStep)
		if c.LandingProgress > core.LandingComplete {
			c.LandingProgress = core.LandingComplete
		}
	}
}

// PlaceBuilding places an opponent building. It lets the planner build
// through the same path as the human, without cost or cooldown.
func (e *Engine) PlaceBuilding(kind core.BuildingKind, at core.Coordinate, owner core.Faction) (*core.Building, error) {
	return e.buildManager.AttemptBuild(kind, at, owner)
}

// recomputeTerritory repropagates ownership, including the armed preview,
// and publishes the new owners when they changed.
func (e *Engine) recomputeTerritory() territory.Result {
	var preview *territory.Preview
	if e.armed {
		preview = &territory.Preview{
			Armed:    true,
			Kind:     e.armedKind,
			Cell:     e.selection,
			Pristine: e.pristine,
		}
	}
	res := e.territory.Recompute(e.grid, preview)
	e.invalidSelection = res.InvalidSelection
	if res.Changed {
		e.eventBus.Publish(events.NewTerritoryChangedEvent(e.gameID, e.grid))
	}
	return res
}

// recomputeWithoutPreview repropagates real buildings only. Placement
// checks must see the territory the preview would not be part of.
func (e *Engine) recomputeWithoutPreview() {
	e.territory.Recompute(e.grid, nil)
}

func (e *Engine) allocateID() int {
	e.nextID++
	return e.nextID
}

// checkGameOver evaluates the verdict and ends the session when there is one.
func (e *Engine) checkGameOver(logger zerolog.Logger) {
	if e.gameOver {
		return
	}
	outcome := e.winCondition.CheckGameOver(e.grid, rules.GameOverInput{
		Pristine:                  e.pristine,
		HumanCommandCentersPlaced: e.ccsPlaced[core.FactionHuman],
		CPUCommandCentersPlaced:   e.ccsPlaced[core.FactionCPU],
	})
	if outcome == rules.OutcomeNone {
		return
	}

	e.outcome = outcome
	e.gameOver = true
	e.armed = false

	ctx := e.stateMachine.GetContext()
	if err := e.stateMachine.EndWith(outcome.Winner(), "command center destroyed"); err != nil {
		logger.Error().Err(err).Msg("Failed to transition to verdict state")
	}
	e.eventBus.Publish(events.NewGameEndedEvent(
		e.gameID,
		outcome.Winner(),
		outcome.String(),
		ctx.GetElapsedTime(),
		e.tick,
	))
	logger.Info().
		Str("outcome", outcome.String()).
		Str("winner", outcome.Winner().String()).
		Int("tick", e.tick).
		Msg("Game over")
}
