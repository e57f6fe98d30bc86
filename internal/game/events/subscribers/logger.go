package subscribers

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/HexDominion/internal/game/core"
	"github.com/mitchelldurbincs/HexDominion/internal/game/events"
)

// LoggerSubscriber logs events to structured logs
type LoggerSubscriber struct {
	id              string
	logger          zerolog.Logger
	logLevel        zerolog.Level
	eventTypeFilter map[string]bool // If non-nil, only log these event types
	devMode         bool            // If true, log full event details
}

// NewLoggerSubscriber creates a new logger subscriber
func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

// ID returns the subscriber's unique identifier
func (ls *LoggerSubscriber) ID() string {
	return ls.id
}

// SetEventFilter sets which event types to log (nil means log all)
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.eventTypeFilter = nil
		return
	}

	ls.eventTypeFilter = make(map[string]bool)
	for _, eventType := range eventTypes {
		ls.eventTypeFilter[eventType] = true
	}
}

// SetDevMode enables or disables development mode logging
func (ls *LoggerSubscriber) SetDevMode(enabled bool) {
	ls.devMode = enabled
}

// InterestedIn returns true if the subscriber wants to receive this event type
func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	if ls.eventTypeFilter == nil {
		return true
	}
	return ls.eventTypeFilter[eventType]
}

// HandleEvent processes an event by logging it
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	eventLogger := ls.logger.With().
		Str("event_type", event.Type()).
		Str("game_id", event.GameID()).
		Time("timestamp", event.Timestamp()).
		Logger()

	logEvent := eventLogger.WithLevel(ls.logLevel)
	if ls.logLevel == zerolog.NoLevel {
		logEvent = eventLogger.Info()
	}

	switch e := event.(type) {
	case *events.GameStartedEvent:
		logEvent.
			Int("map_width", e.MapWidth).
			Int("map_height", e.MapHeight).
			Str("difficulty", e.Difficulty).
			Int64("seed", e.Seed)

	case *events.GameEndedEvent:
		logEvent.
			Str("winner", e.Winner.String()).
			Str("outcome", e.Outcome).
			Dur("duration", e.Duration).
			Int("final_tick", e.FinalTick)

	case *events.TickStartedEvent:
		logEvent.Int("tick", e.TickNumber)

	case *events.TickEndedEvent:
		logEvent.
			Int("tick", e.TickNumber).
			Dur("process_time", e.ProcessedTime)

	case *events.CommandProcessedEvent:
		logEvent.
			Str("command", core.DescribeCommand(e.Command)).
			Str("result", e.Result).
			Int("tick", e.Metadata.Tick)

	case *events.CommandRejectedEvent:
		logEvent.
			Str("command", core.DescribeCommand(e.Command)).
			Str("reason", e.Reason).
			Int("tick", e.Metadata.Tick)

	case *events.BuildingPlacedEvent:
		logEvent.
			Int("building_id", e.BuildingID).
			Str("kind", e.Kind.String()).
			Str("owner", e.Owner.String()).
			Int("x", e.Location.X).
			Int("y", e.Location.Y)

	case *events.BuildingDamagedEvent:
		logEvent.
			Int("building_id", e.BuildingID).
			Int("attacker_id", e.AttackerID).
			Int("damage", e.Damage).
			Float64("hp_fraction", e.HPFraction)

	case *events.BuildingDestroyedEvent:
		logEvent.
			Int("building_id", e.BuildingID).
			Str("kind", e.Kind.String()).
			Str("owner", e.Owner.String()).
			Str("cause", e.Cause)

	case *events.TurretIdleEvent:
		logEvent.Int("building_id", e.BuildingID)

	case *events.TerritoryChangedEvent:
		logEvent.
			Int("human_cells", e.HumanCells).
			Int("cpu_cells", e.CPUCells)

	case *events.ResourcesGatheredEvent:
		logEvent.
			Str("faction", e.Metadata.Faction).
			Int("amount", e.Amount).
			Int("pool", e.Pool).
			Int("refineries", e.Refineries)

	case *events.PlannerTransitionEvent:
		logEvent.
			Str("from", e.FromState).
			Str("to", e.ToState).
			Str("action", e.Action)

	case *events.StateTransitionEvent:
		logEvent.
			Str("from", e.FromPhase).
			Str("to", e.ToPhase).
			Str("reason", e.Reason)
	}

	if ls.devMode {
		if jsonData, err := json.Marshal(event); err == nil {
			logEvent.RawJSON("event_data", jsonData)
		}
	}

	logEvent.Msg("Game event")
}
