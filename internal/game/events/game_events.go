package events

import (
	"time"

	"github.com/mitchelldurbincs/HexDominion/internal/game/core"
)

// Event type constants
const (
	TypeGameStarted       = "game.started"
	TypeGameEnded         = "game.ended"
	TypeTickStarted       = "tick.started"
	TypeTickEnded         = "tick.ended"
	TypeCommandProcessed  = "command.processed"
	TypeCommandRejected   = "command.rejected"
	TypeBuildingPlaced    = "building.placed"
	TypeBuildingDamaged   = "building.damaged"
	TypeBuildingDestroyed = "building.destroyed"
	TypeTurretIdle        = "turret.idle"
	TypeTerritoryChanged  = "territory.changed"
	TypeResourcesGathered = "resources.gathered"
	TypePlannerTransition = "planner.transition"
	TypeStateTransition   = "state.transition"
)

// GameStartedEvent is published when a new session begins or restarts
type GameStartedEvent struct {
	BaseEvent
	MapWidth   int
	MapHeight  int
	Difficulty string
	Seed       int64
}

// NewGameStartedEvent creates a new GameStartedEvent
func NewGameStartedEvent(gameID string, width, height int, difficulty string, seed int64) *GameStartedEvent {
	return &GameStartedEvent{
		BaseEvent:  newBase(TypeGameStarted, gameID),
		MapWidth:   width,
		MapHeight:  height,
		Difficulty: difficulty,
		Seed:       seed,
	}
}

// GameEndedEvent is published when the game-over evaluator reaches a verdict
type GameEndedEvent struct {
	BaseEvent
	Metadata  EventMetadata
	Winner    core.Faction
	Outcome   string
	Duration  time.Duration
	FinalTick int
}

// NewGameEndedEvent creates a new GameEndedEvent
func NewGameEndedEvent(gameID string, winner core.Faction, outcome string, duration time.Duration, finalTick int) *GameEndedEvent {
	return &GameEndedEvent{
		BaseEvent: newBase(TypeGameEnded, gameID),
		Metadata:  EventMetadata{Tick: finalTick, Faction: winner.String()},
		Winner:    winner,
		Outcome:   outcome,
		Duration:  duration,
		FinalTick: finalTick,
	}
}

// TickStartedEvent is published at the beginning of each simulation tick
type TickStartedEvent struct {
	BaseEvent
	TickNumber int
}

// NewTickStartedEvent creates a new TickStartedEvent
func NewTickStartedEvent(gameID string, tick int) *TickStartedEvent {
	return &TickStartedEvent{
		BaseEvent:  newBase(TypeTickStarted, gameID),
		TickNumber: tick,
	}
}

// TickEndedEvent is published at the end of each simulation tick
type TickEndedEvent struct {
	BaseEvent
	TickNumber    int
	ProcessedTime time.Duration
}

// NewTickEndedEvent creates a new TickEndedEvent
func NewTickEndedEvent(gameID string, tick int, processedTime time.Duration) *TickEndedEvent {
	return &TickEndedEvent{
		BaseEvent:     newBase(TypeTickEnded, gameID),
		TickNumber:    tick,
		ProcessedTime: processedTime,
	}
}

// CommandProcessedEvent is published after a human command was applied
type CommandProcessedEvent struct {
	BaseEvent
	Metadata EventMetadata
	Command  core.Command
	Result   string
}

// NewCommandProcessedEvent creates a new CommandProcessedEvent
func NewCommandProcessedEvent(gameID string, cmd core.Command, result string, tick int) *CommandProcessedEvent {
	return &CommandProcessedEvent{
		BaseEvent: newBase(TypeCommandProcessed, gameID),
		Metadata:  EventMetadata{Tick: tick, Faction: core.FactionHuman.String()},
		Command:   cmd,
		Result:    result,
	}
}

// CommandRejectedEvent is published when a human command fails validation or placement
type CommandRejectedEvent struct {
	BaseEvent
	Metadata EventMetadata
	Command  core.Command
	Reason   string
}

// NewCommandRejectedEvent creates a new CommandRejectedEvent
func NewCommandRejectedEvent(gameID string, cmd core.Command, reason string, tick int) *CommandRejectedEvent {
	return &CommandRejectedEvent{
		BaseEvent: newBase(TypeCommandRejected, gameID),
		Metadata:  EventMetadata{Tick: tick, Faction: core.FactionHuman.String()},
		Command:   cmd,
		Reason:    reason,
	}
}

// BuildingPlacedEvent carries everything a renderer needs to start the landing effect
type BuildingPlacedEvent struct {
	BaseEvent
	Metadata   EventMetadata
	BuildingID int
	Location   core.Coordinate
	Kind       core.BuildingKind
	Owner      core.Faction
}

// NewBuildingPlacedEvent creates a new BuildingPlacedEvent
func NewBuildingPlacedEvent(gameID string, b *core.Building, at core.Coordinate, tick int) *BuildingPlacedEvent {
	return &BuildingPlacedEvent{
		BaseEvent:  newBase(TypeBuildingPlaced, gameID),
		Metadata:   EventMetadata{Tick: tick, Faction: b.Owner.String()},
		BuildingID: b.ID,
		Location:   at,
		Kind:       b.Kind,
		Owner:      b.Owner,
	}
}

// BuildingDamagedEvent is published for every successful turret engagement
type BuildingDamagedEvent struct {
	BaseEvent
	Metadata   EventMetadata
	BuildingID int
	AttackerID int
	Location   core.Coordinate
	Attacker   core.Coordinate
	Damage     int
	HPFraction float64
}

// NewBuildingDamagedEvent creates a new BuildingDamagedEvent
func NewBuildingDamagedEvent(gameID string, target *core.Building, at core.Coordinate, attackerID int, from core.Coordinate, damage int, tick int) *BuildingDamagedEvent {
	return &BuildingDamagedEvent{
		BaseEvent:  newBase(TypeBuildingDamaged, gameID),
		Metadata:   EventMetadata{Tick: tick, Faction: target.Owner.String()},
		BuildingID: target.ID,
		AttackerID: attackerID,
		Location:   at,
		Attacker:   from,
		Damage:     damage,
		HPFraction: target.HPFraction(),
	}
}

// BuildingDestroyedEvent is published when a building leaves the grid
type BuildingDestroyedEvent struct {
	BaseEvent
	Metadata   EventMetadata
	BuildingID int
	Location   core.Coordinate
	Kind       core.BuildingKind
	Owner      core.Faction
	Cause      string
}

// Destruction causes.
const (
	CauseCombat   = "combat"
	CauseDemolish = "demolish"
)

// NewBuildingDestroyedEvent creates a new BuildingDestroyedEvent
func NewBuildingDestroyedEvent(gameID string, b *core.Building, at core.Coordinate, cause string, tick int) *BuildingDestroyedEvent {
	return &BuildingDestroyedEvent{
		BaseEvent:  newBase(TypeBuildingDestroyed, gameID),
		Metadata:   EventMetadata{Tick: tick, Faction: b.Owner.String()},
		BuildingID: b.ID,
		Location:   at,
		Kind:       b.Kind,
		Owner:      b.Owner,
		Cause:      cause,
	}
}

// TurretIdleEvent is published when a turret finds nothing in range.
// Renderers use it to stop the firing animation.
type TurretIdleEvent struct {
	BaseEvent
	BuildingID int
	Location   core.Coordinate
	Tick       int
}

// NewTurretIdleEvent creates a new TurretIdleEvent
func NewTurretIdleEvent(gameID string, id int, at core.Coordinate, tick int) *TurretIdleEvent {
	return &TurretIdleEvent{
		BaseEvent:  newBase(TypeTurretIdle, gameID),
		BuildingID: id,
		Location:   at,
		Tick:       tick,
	}
}

// TerritoryChangedEvent holds the owner of every cell in column-major order
type TerritoryChangedEvent struct {
	BaseEvent
	Width      int
	Height     int
	Owners     []core.Faction
	HumanCells int
	CPUCells   int
}

// NewTerritoryChangedEvent creates a new TerritoryChangedEvent from a grid
func NewTerritoryChangedEvent(gameID string, g *core.Grid) *TerritoryChangedEvent {
	ev := &TerritoryChangedEvent{
		BaseEvent: newBase(TypeTerritoryChanged, gameID),
		Width:     g.W,
		Height:    g.H,
		Owners:    make([]core.Faction, len(g.C)),
	}
	for i := range g.C {
		ev.Owners[i] = g.C[i].Owner
		switch g.C[i].Owner {
		case core.FactionHuman:
			ev.HumanCells++
		case core.FactionCPU:
			ev.CPUCells++
		}
	}
	return ev
}

// ResourcesGatheredEvent is published when refineries add to a pool
type ResourcesGatheredEvent struct {
	BaseEvent
	Metadata   EventMetadata
	Amount     int
	Pool       int
	Refineries int
}

// NewResourcesGatheredEvent creates a new ResourcesGatheredEvent
func NewResourcesGatheredEvent(gameID string, faction core.Faction, amount, pool, refineries, tick int) *ResourcesGatheredEvent {
	return &ResourcesGatheredEvent{
		BaseEvent:  newBase(TypeResourcesGathered, gameID),
		Metadata:   EventMetadata{Tick: tick, Faction: faction.String()},
		Amount:     amount,
		Pool:       pool,
		Refineries: refineries,
	}
}

// PlannerTransitionEvent is published when the opponent planner changes state
type PlannerTransitionEvent struct {
	BaseEvent
	Metadata  EventMetadata
	FromState string
	ToState   string
	Action    string
}

// NewPlannerTransitionEvent creates a new PlannerTransitionEvent
func NewPlannerTransitionEvent(gameID, from, to, action string, tick int) *PlannerTransitionEvent {
	return &PlannerTransitionEvent{
		BaseEvent: newBase(TypePlannerTransition, gameID),
		Metadata:  EventMetadata{Tick: tick, Faction: core.FactionCPU.String()},
		FromState: from,
		ToState:   to,
		Action:    action,
	}
}

// StateTransitionEvent is published when the session state machine transitions between phases
type StateTransitionEvent struct {
	BaseEvent
	FromPhase string
	ToPhase   string
	Reason    string
}

// NewStateTransitionEvent creates a new StateTransitionEvent
func NewStateTransitionEvent(gameID, fromPhase, toPhase, reason string) *StateTransitionEvent {
	return &StateTransitionEvent{
		BaseEvent: newBase(TypeStateTransition, gameID),
		FromPhase: fromPhase,
		ToPhase:   toPhase,
		Reason:    reason,
	}
}
