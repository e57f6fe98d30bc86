package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
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

// EngineInitializer handles the complex initialization of a game engine
type EngineInitializer struct {
	config GameConfig
	logger zerolog.Logger
}

// NewEngineInitializer creates a new engine initializer
func NewEngineInitializer(cfg GameConfig) *EngineInitializer {
	return &EngineInitializer{
		config: cfg,
		logger: cfg.Logger.With().Str("component", "GameEngine").Logger(),
	}
}

// Initialize creates and initializes a new game engine
func (ei *EngineInitializer) Initialize(ctx context.Context) (*Engine, error) {
	select {
	case <-ctx.Done():
		ei.logger.Error().Err(ctx.Err()).Msg("Engine creation cancelled or timed out during initial phase")
		return nil, ctx.Err()
	default:
	}

	if err := ei.setupDefaults(); err != nil {
		return nil, err
	}

	divisor, err := ei.config.Levels.Divisor(ei.config.Difficulty)
	if err != nil {
		return nil, fmt.Errorf("planner setup failed: %w", err)
	}

	engine := ei.createEngine(divisor)

	if err := engine.rebuild(); err != nil {
		return nil, fmt.Errorf("map generation failed: %w", err)
	}

	if err := engine.stateMachine.TransitionTo(states.PhaseRunning, "Game setup complete"); err != nil {
		ei.logger.Error().Err(err).Msg("Failed to transition to Running state")
		return nil, fmt.Errorf("state machine initialization failed: %w", err)
	}

	engine.publishStarted()

	ei.logger.Info().
		Str("game_id", engine.gameID).
		Int("width", engine.grid.W).
		Int("height", engine.grid.H).
		Str("difficulty", engine.difficulty).
		Int64("seed", engine.seed).
		Msg("Engine created successfully")

	return engine, nil
}

// setupDefaults fills missing configuration
func (ei *EngineInitializer) setupDefaults() error {
	c := &ei.config
	if c.Map.Width == 0 || c.Map.Height == 0 {
		c.Map = mapgen.DefaultMapConfig()
	}
	if c.Grid != nil {
		c.Map.Width, c.Map.Height = c.Grid.W, c.Grid.H
	}
	if c.Map.Width <= 0 || c.Map.Height <= 0 {
		return fmt.Errorf("%w: grid %dx%d", core.ErrInvalidCoordinates, c.Map.Width, c.Map.Height)
	}
	if c.Templates == nil {
		c.Templates = core.DefaultTemplates()
	}
	if c.Levels == nil {
		c.Levels = planner.DefaultLevels()
	}
	if c.Difficulty == "" {
		c.Difficulty = planner.DefaultDifficulty
	}
	if c.FramesPerTick <= 0 {
		c.FramesPerTick = 60
	}
	if c.LandingStep <= 0 {
		c.LandingStep = 4
	}
	if c.Rng == nil {
		if c.Seed == 0 {
			c.Seed = time.Now().UnixNano()
		}
		ei.logger.Debug().Int64("seed", c.Seed).Msg("No RNG provided, creating new seeded RNG")
		c.Rng = rand.New(rand.NewSource(c.Seed))
	}
	if c.GameID == "" {
		c.GameID = uuid.New().String()
	}
	if c.EventBus == nil {
		c.EventBus = events.NewEventBus()
	}
	return nil
}

// createEngine wires the components together
func (ei *EngineInitializer) createEngine(divisor int) *Engine {
	c := ei.config
	logger := ei.logger.With().Str("game_id", c.GameID).Logger()

	gameContext := states.NewGameContext(c.GameID, logger)
	stateMachine := states.NewStateMachine(gameContext, c.EventBus)

	engine := &Engine{
		templates:      c.Templates,
		territory:      territory.NewEngine(c.Templates, logger),
		combat:         combat.NewResolver(logger),
		winCondition:   rules.NewWinConditionChecker(logger),
		placement:      rules.NewPlacementChecker(),
		cooldowns:      NewCooldowns(),
		eventBus:       c.EventBus,
		stateMachine:   stateMachine,
		gameID:         c.GameID,
		logger:         logger,
		rng:            c.Rng,
		seed:           c.Seed,
		mapConfig:      c.Map,
		startingPool:   c.StartingPool,
		refineryIncome: c.RefineryIncome,
		levels:         c.Levels,
		difficulty:     c.Difficulty,
		framesPerTick:  c.FramesPerTick,
		landingStep:    c.LandingStep,
	}
	if c.Grid != nil {
		engine.initialGrid = c.Grid.Clone()
	}

	engine.planner = planner.New(engine, planner.Config{
		Divisor:     divisor,
		MaxAttempts: c.PlannerMaxAttempts,
		Rng:         c.Rng,
		Logger:      logger,
	})
	engine.commandProcessor = processor.NewCommandProcessor(
		logger,
		events.NewEventPublisherAdapter(c.EventBus),
		c.GameID,
	)
	engine.buildManager = NewBuildManager(engine)
	engine.tickProcessor = NewTickProcessor(engine)

	return engine
}

// rebuild resets every piece of per-round state: map, pools, cooldowns,
// planner, ids and the selection.
func (e *Engine) rebuild() error {
	if e.initialGrid != nil {
		e.grid = e.initialGrid.Clone()
	} else {
		e.grid = mapgen.NewGenerator(e.mapConfig, e.rng).GenerateMap()
	}
	if e.grid.W <= 0 || e.grid.H <= 0 {
		return fmt.Errorf("%w: grid %dx%d", core.ErrInvalidCoordinates, e.grid.W, e.grid.H)
	}

	e.pools = map[core.Faction]int{
		core.FactionHuman: e.startingPool,
		core.FactionCPU:   0,
	}
	e.stats = make(map[core.Faction]FactionStats)
	e.cooldowns.Reset()
	e.planner.Reset()

	e.selection = core.Coordinate{}
	e.armed = false
	e.invalidSelection = false

	e.pristine = !e.grid.HasAnyBuilding()
	e.ccsPlaced = map[core.Faction]int{
		core.FactionHuman: len(e.grid.FindOwnedBuildings(core.KindCommandCenter, core.FactionHuman)),
		core.FactionCPU:   len(e.grid.FindOwnedBuildings(core.KindCommandCenter, core.FactionCPU)),
	}
	e.nextID = 0
	for i := range e.grid.C {
		if b := e.grid.C[i].Building; b != nil && b.ID > e.nextID {
			e.nextID = b.ID
		}
	}

	e.tick = 0
	e.frame = 0
	e.outcome = rules.OutcomeNone
	e.gameOver = false

	e.recomputeWithoutPreview()
	e.updateStats()
	return nil
}

func (e *Engine) publishStarted() {
	e.eventBus.Publish(events.NewGameStartedEvent(e.gameID, e.grid.W, e.grid.H, e.difficulty, e.seed))
	e.eventBus.Publish(events.NewTerritoryChangedEvent(e.gameID, e.grid))
}
