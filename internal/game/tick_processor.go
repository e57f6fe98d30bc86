package game

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/HexDominion/internal/game/combat"
	"github.com/mitchelldurbincs/HexDominion/internal/game/core"
	"github.com/mitchelldurbincs/HexDominion/internal/game/events"
)

// TickProcessor handles the orchestration of a single simulation tick:
// territory, income, planner, combat, then the game-over check.
type TickProcessor struct {
	engine *Engine
	logger zerolog.Logger
}

// NewTickProcessor creates a new tick processor
func NewTickProcessor(engine *Engine) *TickProcessor {
	return &TickProcessor{
		engine: engine,
		logger: engine.logger.With().Str("component", "TickProcessor").Logger(),
	}
}

// ProcessTick executes a complete simulation tick
func (tp *TickProcessor) ProcessTick(ctx context.Context) error {
	if err := tp.checkContext(ctx, "before starting"); err != nil {
		return err
	}
	if err := tp.validateGameState(); err != nil {
		return err
	}

	e := tp.engine
	e.tick++
	tickLogger := tp.logger.With().Int("tick", e.tick).Logger()
	tickLogger.Debug().Msg("Starting simulation tick")

	tickStart := time.Now()
	e.eventBus.Publish(events.NewTickStartedEvent(e.gameID, e.tick))

	e.recomputeTerritory()
	e.buildManager.GatherResources(e.tick)

	if err := tp.checkContext(ctx, "before planner"); err != nil {
		return core.WrapGameStateError(e.tick, "planner", fmt.Errorf("context cancelled: %w", err))
	}
	tp.processPlannerPhase(tickLogger)

	if err := tp.checkContext(ctx, "before combat"); err != nil {
		return core.WrapGameStateError(e.tick, "combat", fmt.Errorf("context cancelled: %w", err))
	}
	tp.processCombatPhase(tickLogger)

	e.updateStats()
	e.checkGameOver(tickLogger)

	e.eventBus.Publish(events.NewTickEndedEvent(e.gameID, e.tick, time.Since(tickStart)))
	tickLogger.Debug().Msg("Simulation tick finished")
	return nil
}

// checkContext checks if the context is cancelled
func (tp *TickProcessor) checkContext(ctx context.Context, phase string) error {
	select {
	case <-ctx.Done():
		tp.logger.Warn().
			Err(ctx.Err()).
			Int("tick", tp.engine.tick).
			Str("phase", phase).
			Msg("Simulation tick cancelled or timed out")
		return ctx.Err()
	default:
		return nil
	}
}

// validateGameState ensures the game can still be ticked
func (tp *TickProcessor) validateGameState() error {
	e := tp.engine
	if e.gameOver {
		tp.logger.Warn().Int("tick", e.tick).Msg("Attempted to tick game that is already over")
		return core.WrapGameStateError(e.tick, "tick", core.ErrGameOver)
	}

	phase := e.stateMachine.CurrentPhase()
	if !phase.CanReceiveActions() {
		tp.logger.Warn().
			Str("current_phase", phase.String()).
			Int("tick", e.tick).
			Msg("Attempted to tick game in phase that cannot run")
		return fmt.Errorf("game is in %s phase and cannot be ticked", phase)
	}
	return nil
}

func (tp *TickProcessor) processPlannerPhase(logger zerolog.Logger) {
	e := tp.engine
	res := e.planner.Step(e.grid, e.tick)
	if !res.Transitioned() {
		return
	}
	e.eventBus.Publish(events.NewPlannerTransitionEvent(
		e.gameID,
		res.From.String(),
		res.To.String(),
		res.Action.String(),
		e.tick,
	))
	logger.Debug().
		Str("from", res.From.String()).
		Str("to", res.To.String()).
		Msg("Planner advanced")
}

// processCombatPhase resolves turret fire and republishes the outcome.
// Territory is recomputed once when anything was destroyed.
func (tp *TickProcessor) processCombatPhase(logger zerolog.Logger) combat.Outcome {
	e := tp.engine
	out := e.combat.Resolve(e.grid)

	for _, hit := range out.Hits {
		e.eventBus.Publish(events.NewBuildingDamagedEvent(
			e.gameID, hit.Target, hit.At, hit.AttackerID, hit.Attacker, hit.Damage, e.tick,
		))
	}
	for _, d := range out.Destroyed {
		e.eventBus.Publish(events.NewBuildingDestroyedEvent(e.gameID, d.Building, d.At, events.CauseCombat, e.tick))
	}
	for _, idle := range out.Idle {
		e.eventBus.Publish(events.NewTurretIdleEvent(e.gameID, idle.TurretID, idle.At, e.tick))
	}

	if len(out.Destroyed) > 0 {
		e.recomputeTerritory()
		logger.Info().Int("destroyed", len(out.Destroyed)).Msg("Buildings destroyed in combat")
	}
	return out
}
