package gameserver

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	gameengine "github.com/mitchelldurbincs/HexDominion/internal/game"
	"github.com/mitchelldurbincs/HexDominion/internal/game/core"
	"github.com/mitchelldurbincs/HexDominion/internal/game/events"
)

// stringField reads an optional string field.
func stringField(s *structpb.Struct, key string) string {
	if s == nil {
		return ""
	}
	return s.GetFields()[key].GetStringValue()
}

// intField reads an optional integral number field. A missing field is 0.
func intField(s *structpb.Struct, key string) (int, error) {
	if s == nil {
		return 0, nil
	}
	v, ok := s.GetFields()[key]
	if !ok {
		return 0, nil
	}
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, fmt.Errorf("%w: field %q is not a number", core.ErrInvalidCommand, key)
	}
	if n.NumberValue != math.Trunc(n.NumberValue) || math.Abs(n.NumberValue) > math.MaxInt32 {
		return 0, fmt.Errorf("%w: field %q is not an integer", core.ErrInvalidCommand, key)
	}
	return int(n.NumberValue), nil
}

// commandFromStruct decodes one command object, e.g.
// {"type": "select_cell", "x": 3, "y": 4} or {"type": "arm_build", "kind": "turret"}.
func commandFromStruct(s *structpb.Struct) (core.Command, error) {
	typ := stringField(s, "type")
	ints := func(a, b string) (int, int, error) {
		x, err := intField(s, a)
		if err != nil {
			return 0, 0, err
		}
		y, err := intField(s, b)
		return x, y, err
	}

	switch typ {
	case core.CommandSelectCell.String():
		x, y, err := ints("x", "y")
		if err != nil {
			return nil, err
		}
		return &core.SelectCellCommand{X: x, Y: y}, nil
	case core.CommandMoveSelection.String():
		dx, dy, err := ints("dx", "dy")
		if err != nil {
			return nil, err
		}
		return &core.MoveSelectionCommand{DX: dx, DY: dy}, nil
	case core.CommandArmBuild.String():
		kind, err := core.ParseBuildingKind(stringField(s, "kind"))
		if err != nil {
			return nil, err
		}
		return &core.ArmBuildCommand{Kind: kind}, nil
	case core.CommandConfirmBuild.String():
		return &core.ConfirmBuildCommand{}, nil
	case core.CommandCancelBuild.String():
		return &core.CancelBuildCommand{}, nil
	case core.CommandDemolish.String():
		x, y, err := ints("x", "y")
		if err != nil {
			return nil, err
		}
		return &core.DemolishCommand{X: x, Y: y}, nil
	case core.CommandSetDifficulty.String():
		return &core.SetDifficultyCommand{Level: stringField(s, "level")}, nil
	case core.CommandRestart.String():
		return &core.RestartCommand{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown command type %q", core.ErrInvalidCommand, typ)
	}
}

// commandsFromRequest decodes the "commands" list of a SubmitCommands request.
func commandsFromRequest(req *structpb.Struct) ([]core.Command, error) {
	list := req.GetFields()["commands"].GetListValue()
	if list == nil || len(list.GetValues()) == 0 {
		return nil, fmt.Errorf("%w: no commands", core.ErrInvalidCommand)
	}
	cmds := make([]core.Command, 0, len(list.GetValues()))
	for i, v := range list.GetValues() {
		obj := v.GetStructValue()
		if obj == nil {
			return nil, fmt.Errorf("%w: command %d is not an object", core.ErrInvalidCommand, i)
		}
		cmd, err := commandFromStruct(obj)
		if err != nil {
			return nil, fmt.Errorf("command %d: %w", i, err)
		}
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}

func coordMap(c core.Coordinate) map[string]interface{} {
	return map[string]interface{}{"x": c.X, "y": c.Y}
}

// eventToStruct flattens a domain event for the event stream. Every message
// carries "type", "game_id" and "timestamp"; the rest depends on the type.
func eventToStruct(ev events.Event) (*structpb.Struct, error) {
	m := map[string]interface{}{
		"type":      ev.Type(),
		"game_id":   ev.GameID(),
		"timestamp": ev.Timestamp().UTC().Format(time.RFC3339Nano),
	}

	switch e := ev.(type) {
	case *events.GameStartedEvent:
		m["width"] = e.MapWidth
		m["height"] = e.MapHeight
		m["difficulty"] = e.Difficulty
		m["seed"] = float64(e.Seed)
	case *events.GameEndedEvent:
		m["winner"] = e.Winner.String()
		m["outcome"] = e.Outcome
		m["final_tick"] = e.FinalTick
		m["duration_ms"] = e.Duration.Milliseconds()
	case *events.TickStartedEvent:
		m["tick"] = e.TickNumber
	case *events.TickEndedEvent:
		m["tick"] = e.TickNumber
		m["duration_us"] = e.ProcessedTime.Microseconds()
	case *events.CommandProcessedEvent:
		m["tick"] = e.Metadata.Tick
		m["command"] = core.DescribeCommand(e.Command)
		m["result"] = e.Result
	case *events.CommandRejectedEvent:
		m["tick"] = e.Metadata.Tick
		m["command"] = core.DescribeCommand(e.Command)
		m["reason"] = e.Reason
	case *events.BuildingPlacedEvent:
		m["tick"] = e.Metadata.Tick
		m["building_id"] = e.BuildingID
		m["kind"] = e.Kind.String()
		m["owner"] = e.Owner.String()
		m["at"] = coordMap(e.Location)
	case *events.BuildingDamagedEvent:
		m["tick"] = e.Metadata.Tick
		m["building_id"] = e.BuildingID
		m["attacker_id"] = e.AttackerID
		m["at"] = coordMap(e.Location)
		m["from"] = coordMap(e.Attacker)
		m["damage"] = e.Damage
		m["hp_fraction"] = e.HPFraction
	case *events.BuildingDestroyedEvent:
		m["tick"] = e.Metadata.Tick
		m["building_id"] = e.BuildingID
		m["kind"] = e.Kind.String()
		m["owner"] = e.Owner.String()
		m["at"] = coordMap(e.Location)
		m["cause"] = e.Cause
	case *events.TurretIdleEvent:
		m["tick"] = e.Tick
		m["building_id"] = e.BuildingID
		m["at"] = coordMap(e.Location)
	case *events.TerritoryChangedEvent:
		m["human_cells"] = e.HumanCells
		m["cpu_cells"] = e.CPUCells
	case *events.ResourcesGatheredEvent:
		m["tick"] = e.Metadata.Tick
		m["faction"] = e.Metadata.Faction
		m["amount"] = e.Amount
		m["pool"] = e.Pool
		m["refineries"] = e.Refineries
	case *events.PlannerTransitionEvent:
		m["tick"] = e.Metadata.Tick
		m["from"] = e.FromState
		m["to"] = e.ToState
		m["action"] = e.Action
	case *events.StateTransitionEvent:
		m["from"] = e.FromPhase
		m["to"] = e.ToPhase
		m["reason"] = e.Reason
	}
	return newStruct(m)
}

// snapshotToStruct renders the engine state. Cells are listed in grid order
// (column-major, index x*height+y).
func snapshotToStruct(sessionID string, e *gameengine.Engine) (*structpb.Struct, error) {
	g := e.Grid()
	cells := make([]interface{}, 0, len(g.C))
	for i := range g.C {
		c := &g.C[i]
		cell := map[string]interface{}{
			"owner":   c.Owner.String(),
			"terrain": c.Terrain.String(),
		}
		if c.Elevated {
			cell["elevated"] = true
		}
		if c.InvalidSelection {
			cell["invalid_selection"] = true
		}
		if b := c.Building; b != nil {
			cell["building"] = map[string]interface{}{
				"id":      b.ID,
				"kind":    b.Kind.String(),
				"owner":   b.Owner.String(),
				"hp":      b.HP,
				"max_hp":  b.MaxHP,
				"landing": c.LandingProgress,
			}
		}
		cells = append(cells, cell)
	}

	cooldowns := map[string]interface{}{}
	for kind, left := range e.Cooldowns() {
		cooldowns[kind.String()] = left
	}
	armed := ""
	if kind, ok := e.Armed(); ok {
		armed = kind.String()
	}

	return newStruct(map[string]interface{}{
		"session_id":        sessionID,
		"game_id":           e.GameID(),
		"tick":              e.CurrentTick(),
		"phase":             e.Phase().String(),
		"state":             e.GameState(),
		"winner":            e.Winner().String(),
		"difficulty":        e.Difficulty(),
		"planner_state":     e.PlannerState().String(),
		"pristine":          e.Pristine(),
		"pool":              e.Pool(core.FactionHuman),
		"width":             g.W,
		"height":            g.H,
		"selection":         coordMap(e.Selection()),
		"selected_info":     e.SelectedCellInfo(),
		"armed":             armed,
		"invalid_selection": e.InvalidSelection(),
		"cooldowns":         cooldowns,
		"cells":             cells,
		"board":             e.PlainBoard(),
	})
}

// newStruct converts m, normalising Go integer types to float64 first since
// structpb only accepts a fixed set of value types.
func newStruct(m map[string]interface{}) (*structpb.Struct, error) {
	return structpb.NewStruct(normalize(m).(map[string]interface{}))
}

func normalize(v interface{}) interface{} {
	switch x := v.(type) {
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case map[string]interface{}:
		for k, inner := range x {
			x[k] = normalize(inner)
		}
		return x
	case []interface{}:
		for i, inner := range x {
			x[i] = normalize(inner)
		}
		return x
	default:
		return v
	}
}

// toStatus maps engine and session errors onto gRPC status codes.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(interface{ GRPCStatus() *status.Status }); ok {
		return err
	}

	var code codes.Code
	switch {
	case errors.Is(err, ErrSessionNotFound):
		code = codes.NotFound
	case errors.Is(err, ErrServerAtCapacity):
		code = codes.ResourceExhausted
	case errors.Is(err, ErrMissingSessionID),
		errors.Is(err, core.ErrInvalidCoordinates),
		errors.Is(err, core.ErrUnknownBuilding),
		errors.Is(err, core.ErrInvalidDifficulty),
		errors.Is(err, core.ErrInvalidFaction),
		errors.Is(err, core.ErrInvalidCommand):
		code = codes.InvalidArgument
	case errors.Is(err, core.ErrGameOver),
		errors.Is(err, core.ErrInsufficientResources),
		errors.Is(err, core.ErrCooldownActive),
		errors.Is(err, core.ErrCellOccupied),
		errors.Is(err, core.ErrImpassable),
		errors.Is(err, core.ErrOutsideTerritory),
		errors.Is(err, core.ErrEnemyTerritory),
		errors.Is(err, core.ErrNotResourceDeposit),
		errors.Is(err, core.ErrNoBuildArmed),
		errors.Is(err, core.ErrNoBuilding):
		code = codes.FailedPrecondition
	case errors.Is(err, context.Canceled):
		code = codes.Canceled
	case errors.Is(err, context.DeadlineExceeded):
		code = codes.DeadlineExceeded
	default:
		code = codes.Internal
	}
	return status.Error(code, err.Error())
}
